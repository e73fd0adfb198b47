package store_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rahayucraft/studio-management/internal/core/datamodel/user"
	"github.com/rahayucraft/studio-management/internal/storage"
	"github.com/rahayucraft/studio-management/internal/storage/memory"
	"github.com/rahayucraft/studio-management/internal/store"
)

func TestStore(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Domain Store Suite")
}

// brokenRepository fails every Save but still answers Loads from memory,
// so hydration works while persistence does not.
type brokenRepository struct {
	inner   *memory.Repository
	saveErr error
	saves   int
}

func (r *brokenRepository) Load(ctx context.Context, key storage.Key) ([]byte, bool, error) {
	return r.inner.Load(ctx, key)
}

func (r *brokenRepository) Save(ctx context.Context, key storage.Key, doc []byte) error {
	r.saves++
	return r.saveErr
}

func (r *brokenRepository) Close() error {
	return nil
}

var _ = Describe("Store", func() {
	var (
		ctx    context.Context
		logger *slog.Logger
	)

	BeforeEach(func() {
		ctx = context.Background()
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	})

	Describe("hydration", func() {
		Context("when storage is empty", func() {
			It("should fall back to the seed dataset", func() {
				// Given
				repo := memory.New()

				// When
				st, err := store.New(ctx, repo, logger)

				// Then
				Expect(err).ToNot(HaveOccurred())
				st.View(func(s *store.State) {
					Expect(s.Users).To(HaveLen(4))
					Expect(s.Workshops).To(HaveLen(2))
					Expect(s.Users[0].Name).To(Equal("Sari Rahayu"))
				})
			})
		})

		Context("when storage holds a prior write", func() {
			It("should load the stored collection instead of the seed", func() {
				// Given: a first store writes a mutation
				repo := memory.New()
				first, err := store.New(ctx, repo, logger)
				Expect(err).ToNot(HaveOccurred())

				first.Update(ctx, func(s *store.State) []storage.Key {
					s.Users = append(s.Users, user.User{
						ID: 99, Name: "Putri Maharani", Email: "putri@mail.com",
						Role: user.RoleCustomer, Status: user.StatusActive,
					})
					return []storage.Key{storage.KeyUsers}
				})

				// When: a second store hydrates from the same repository
				second, err := store.New(ctx, repo, logger)
				Expect(err).ToNot(HaveOccurred())

				// Then
				second.View(func(s *store.State) {
					Expect(s.Users).To(HaveLen(5))
					Expect(s.FindUser(99)).ToNot(BeNil())
					Expect(s.FindUser(99).Name).To(Equal("Putri Maharani"))
				})
			})
		})

		Context("when a stored document is corrupt", func() {
			It("should keep the seed for that collection and not fail startup", func() {
				// Given
				repo := memory.New()
				Expect(repo.Save(ctx, storage.KeyUsers, []byte("{this is not json"))).To(Succeed())

				// When
				st, err := store.New(ctx, repo, logger)

				// Then
				Expect(err).ToNot(HaveOccurred())
				st.View(func(s *store.State) {
					Expect(s.Users).To(HaveLen(4))
					Expect(s.Users[0].Email).To(Equal("sari@rahayucraft.id"))
				})
			})
		})

		Context("when the repository cannot be read", func() {
			It("should fail hydration", func() {
				// Given
				repo := &failingLoadRepository{err: errors.New("connection refused")}

				// When
				_, err := store.New(ctx, repo, logger)

				// Then
				Expect(err).To(HaveOccurred())
			})
		})
	})

	Describe("Update", func() {
		It("should persist every touched collection", func() {
			// Given
			repo := memory.New()
			st, err := store.New(ctx, repo, logger)
			Expect(err).ToNot(HaveOccurred())

			// When
			st.Update(ctx, func(s *store.State) []storage.Key {
				s.Users[0].Phone = "+62 811 0000 1111"
				return []storage.Key{storage.KeyUsers}
			})

			// Then
			doc, ok, err := repo.Load(ctx, storage.KeyUsers)
			Expect(err).ToNot(HaveOccurred())
			Expect(ok).To(BeTrue())
			Expect(string(doc)).To(ContainSubstring("+62 811 0000 1111"))
		})

		Context("when persistence fails", func() {
			It("should keep the in-memory mutation", func() {
				// Given
				repo := &brokenRepository{inner: memory.New(), saveErr: errors.New("disk full")}
				st, err := store.New(ctx, repo, logger)
				Expect(err).ToNot(HaveOccurred())

				// When
				st.Update(ctx, func(s *store.State) []storage.Key {
					s.Users[0].Phone = "+62 811 2222 3333"
					return []storage.Key{storage.KeyUsers}
				})

				// Then: the write was attempted, the state stands
				Expect(repo.saves).To(Equal(1))
				st.View(func(s *store.State) {
					Expect(s.Users[0].Phone).To(Equal("+62 811 2222 3333"))
				})
			})
		})
	})

	Describe("CurrentUser", func() {
		It("should report no session by default", func() {
			// Given
			st, err := store.New(ctx, memory.New(), logger)
			Expect(err).ToNot(HaveOccurred())

			// When
			_, ok := st.CurrentUser()

			// Then
			Expect(ok).To(BeFalse())
		})

		It("should return a copy of the stored snapshot", func() {
			// Given
			st, err := store.New(ctx, memory.New(), logger)
			Expect(err).ToNot(HaveOccurred())

			st.Update(ctx, func(s *store.State) []storage.Key {
				snapshot := *s.FindUser(1)
				s.CurrentUser = &snapshot
				return []storage.Key{storage.KeyCurrentUser}
			})

			// When
			u, ok := st.CurrentUser()

			// Then
			Expect(ok).To(BeTrue())
			Expect(u.ID).To(Equal(int64(1)))
		})
	})
})

type failingLoadRepository struct {
	err error
}

func (r *failingLoadRepository) Load(context.Context, storage.Key) ([]byte, bool, error) {
	return nil, false, r.err
}

func (r *failingLoadRepository) Save(context.Context, storage.Key, []byte) error {
	return nil
}

func (r *failingLoadRepository) Close() error {
	return nil
}
