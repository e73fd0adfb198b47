package auth_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/rahayucraft/studio-management/internal"
	"github.com/rahayucraft/studio-management/internal/auth"
	"github.com/rahayucraft/studio-management/internal/storage"
	"github.com/rahayucraft/studio-management/internal/storage/memory"
	"github.com/rahayucraft/studio-management/internal/store"
)

func TestAuthService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Auth Service Suite")
}

// failingTokenGenerator simulates a broken signer.
type failingTokenGenerator struct {
	err error
}

func (f *failingTokenGenerator) GenerateAccessToken(int64, string, string, string) (string, error) {
	return "", f.err
}

func (f *failingTokenGenerator) GenerateRefreshToken(int64, string, string, string) (string, error) {
	return "", f.err
}

func (f *failingTokenGenerator) ValidateAccessToken(string) (*auth.Claims, error) {
	return nil, f.err
}

func (f *failingTokenGenerator) ValidateRefreshToken(string) (*auth.Claims, error) {
	return nil, f.err
}

var _ = Describe("AuthService", func() {
	const password = "rahayu123"

	var (
		ctx     context.Context
		st      *store.Store
		service *auth.Service
	)

	BeforeEach(func() {
		ctx = context.Background()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		var err error
		st, err = store.New(ctx, memory.New(), logger)
		Expect(err).ToNot(HaveOccurred())

		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		Expect(err).ToNot(HaveOccurred())
		st.Update(ctx, func(s *store.State) []storage.Key {
			for i := range s.Users {
				s.Users[i].PasswordHash = string(hash)
			}
			return nil
		})

		tokens := auth.NewJWTTokenGenerator(internal.SecurityConfig{
			AccessTokenSecret:  "test-access-secret",
			RefreshTokenSecret: "test-refresh-secret",
		})
		service = auth.NewService(st, tokens, bcrypt.MinCost, logger)
	})

	Describe("Authenticate", func() {
		It("should issue a token pair and store the session snapshot", func() {
			// When
			session, tokens, err := service.Authenticate(ctx, auth.LoginDTO{
				Email:    "sari@rahayucraft.id",
				Password: password,
			})

			// Then
			Expect(err).ToNot(HaveOccurred())
			Expect(session.ID).To(Equal(int64(1)))
			Expect(session.PasswordHash).To(BeEmpty())
			Expect(tokens.AccessToken).ToNot(BeEmpty())
			Expect(tokens.RefreshToken).ToNot(BeEmpty())
			Expect(tokens.AccessToken).ToNot(Equal(tokens.RefreshToken))

			current, ok := st.CurrentUser()
			Expect(ok).To(BeTrue())
			Expect(current.ID).To(Equal(int64(1)))
			Expect(current.PasswordHash).To(BeEmpty())
		})

		It("should record the login in the activity log", func() {
			// When
			_, _, err := service.Authenticate(ctx, auth.LoginDTO{
				Email:    "sari@rahayucraft.id",
				Password: password,
			})

			// Then
			Expect(err).ToNot(HaveOccurred())
			st.View(func(s *store.State) {
				Expect(s.ActivityLog).ToNot(BeEmpty())
				Expect(s.ActivityLog[0].Action).To(Equal("log in"))
				Expect(s.ActivityLog[0].User).To(Equal("Sari Rahayu"))
			})
		})

		Context("when the password is wrong", func() {
			It("should reject the credentials", func() {
				// When
				_, _, err := service.Authenticate(ctx, auth.LoginDTO{
					Email:    "sari@rahayucraft.id",
					Password: "wrong",
				})

				// Then
				Expect(err).To(Equal(internal.ErrInvalidCredentials))
				_, ok := st.CurrentUser()
				Expect(ok).To(BeFalse())
			})
		})

		Context("when the email is unknown", func() {
			It("should reject the credentials", func() {
				// When
				_, _, err := service.Authenticate(ctx, auth.LoginDTO{
					Email:    "nobody@mail.com",
					Password: password,
				})

				// Then
				Expect(err).To(Equal(internal.ErrInvalidCredentials))
			})
		})

		Context("when the account is inactive", func() {
			It("should reject the login even with the correct password", func() {
				// Given: seed user 4 is inactive
				// When
				_, _, err := service.Authenticate(ctx, auth.LoginDTO{
					Email:    "agus.wijaya@mail.com",
					Password: password,
				})

				// Then
				Expect(err).To(Equal(internal.ErrUserInactive))
			})
		})

		Context("when token signing fails", func() {
			It("should surface an internal error", func() {
				// Given
				logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
				broken := auth.NewService(st, &failingTokenGenerator{err: errors.New("hsm offline")}, bcrypt.MinCost, logger)

				// When
				_, _, err := broken.Authenticate(ctx, auth.LoginDTO{
					Email:    "sari@rahayucraft.id",
					Password: password,
				})

				// Then
				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Type).To(Equal(internal.ErrorTypeInternal))
			})
		})
	})

	Describe("Refresh", func() {
		It("should exchange a valid refresh token for a new pair", func() {
			// Given
			_, tokens, err := service.Authenticate(ctx, auth.LoginDTO{
				Email:    "sari@rahayucraft.id",
				Password: password,
			})
			Expect(err).ToNot(HaveOccurred())

			// When
			renewed, err := service.Refresh(ctx, tokens.RefreshToken)

			// Then
			Expect(err).ToNot(HaveOccurred())
			Expect(renewed.AccessToken).ToNot(BeEmpty())
			Expect(renewed.RefreshToken).ToNot(BeEmpty())
		})

		Context("when the token is garbage", func() {
			It("should reject it", func() {
				// When
				_, err := service.Refresh(ctx, "not-a-token")

				// Then
				Expect(err).To(Equal(internal.ErrInvalidToken))
			})
		})

		Context("when an access token is presented as a refresh token", func() {
			It("should reject it", func() {
				// Given: the two kinds are signed with distinct secrets
				_, tokens, err := service.Authenticate(ctx, auth.LoginDTO{
					Email:    "sari@rahayucraft.id",
					Password: password,
				})
				Expect(err).ToNot(HaveOccurred())

				// When
				_, err = service.Refresh(ctx, tokens.AccessToken)

				// Then
				Expect(err).To(Equal(internal.ErrInvalidToken))
			})
		})

		Context("when the account went inactive after login", func() {
			It("should reject the refresh", func() {
				// Given
				_, tokens, err := service.Authenticate(ctx, auth.LoginDTO{
					Email:    "sari@rahayucraft.id",
					Password: password,
				})
				Expect(err).ToNot(HaveOccurred())

				st.Update(ctx, func(s *store.State) []storage.Key {
					s.FindUser(1).Status = "inactive"
					return nil
				})

				// When
				_, err = service.Refresh(ctx, tokens.RefreshToken)

				// Then
				Expect(err).To(Equal(internal.ErrUserInactive))
			})
		})
	})

	Describe("Logout", func() {
		It("should clear the session snapshot", func() {
			// Given
			_, _, err := service.Authenticate(ctx, auth.LoginDTO{
				Email:    "sari@rahayucraft.id",
				Password: password,
			})
			Expect(err).ToNot(HaveOccurred())

			// When
			service.Logout(ctx)

			// Then
			_, outcome := service.CurrentUser(ctx)
			Expect(outcome).To(Equal(internal.OutcomeNotFound))
		})
	})

	Describe("ValidateAccessToken", func() {
		It("should round-trip the claims", func() {
			// Given
			_, tokens, err := service.Authenticate(ctx, auth.LoginDTO{
				Email:    "sari@rahayucraft.id",
				Password: password,
			})
			Expect(err).ToNot(HaveOccurred())

			// When
			claims, err := service.ValidateAccessToken(tokens.AccessToken)

			// Then
			Expect(err).ToNot(HaveOccurred())
			Expect(claims.UserID).To(Equal(int64(1)))
			Expect(claims.Email).To(Equal("sari@rahayucraft.id"))
			Expect(claims.Role).To(Equal("Admin"))
		})
	})
})
