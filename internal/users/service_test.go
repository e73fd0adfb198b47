package users_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rahayucraft/studio-management/internal"
	"github.com/rahayucraft/studio-management/internal/core/datamodel/employee"
	"github.com/rahayucraft/studio-management/internal/core/datamodel/user"
	"github.com/rahayucraft/studio-management/internal/storage"
	"github.com/rahayucraft/studio-management/internal/storage/memory"
	"github.com/rahayucraft/studio-management/internal/store"
	"github.com/rahayucraft/studio-management/internal/users"
)

func TestUserService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "User Service Suite")
}

var _ = Describe("UserService", func() {
	var (
		ctx     context.Context
		st      *store.Store
		service *users.Service
	)

	BeforeEach(func() {
		ctx = context.Background()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		var err error
		st, err = store.New(ctx, memory.New(), logger)
		Expect(err).ToNot(HaveOccurred())

		service = users.NewService(st, logger)
	})

	Describe("Create", func() {
		It("should default a missing status to active", func() {
			// When
			created, err := service.Create(ctx, users.CreateUserDTO{
				ID: 10, Name: "Putri Maharani", Email: "putri@mail.com", Role: user.RoleCustomer,
			})

			// Then
			Expect(err).ToNot(HaveOccurred())
			Expect(created.Status).To(Equal(user.StatusActive))
		})

		Context("when the id is already taken", func() {
			It("should reject the user with a conflict", func() {
				// When
				_, err := service.Create(ctx, users.CreateUserDTO{
					ID: 1, Name: "Impostor", Email: "impostor@mail.com", Role: user.RoleCustomer,
				})

				// Then
				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Code).To(Equal(internal.ErrCodeDuplicateID))
			})
		})

		Context("when the role is unknown", func() {
			It("should fail validation", func() {
				// When
				_, err := service.Create(ctx, users.CreateUserDTO{
					ID: 11, Name: "Nobody", Email: "nobody@mail.com", Role: "Wizard",
				})

				// Then
				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Code).To(Equal(internal.ErrCodeUnknownRole))
			})
		})
	})

	Describe("promotion bridge", func() {
		It("should synthesize an employee record when a user becomes Employee", func() {
			// Given: seed user 3 is a customer with no HR record
			role := user.RoleEmployee

			// When
			updated, outcome, err := service.Update(ctx, 3, users.UpdateUserDTO{Role: &role})

			// Then
			Expect(err).ToNot(HaveOccurred())
			Expect(outcome).To(Equal(internal.OutcomeOK))
			Expect(updated.Role).To(Equal(user.RoleEmployee))

			st.View(func(s *store.State) {
				e := s.FindEmployeeByEmail("dewi.lestari@mail.com")
				Expect(e).ToNot(BeNil())
				Expect(e.Name).To(Equal("Dewi Lestari"))
				Expect(e.Position).To(Equal(employee.DefaultPosition))
				Expect(e.ID).To(Equal(int64(2)))
			})
		})

		It("should not duplicate the record when the email already has one", func() {
			// Given: seed user 2 (Budi) already has employee record 1.
			// Flip him away and back again.
			customer := user.RoleCustomer
			employeeRole := user.RoleEmployee
			_, _, err := service.Update(ctx, 2, users.UpdateUserDTO{Role: &customer})
			Expect(err).ToNot(HaveOccurred())

			// When
			_, outcome, err := service.Update(ctx, 2, users.UpdateUserDTO{Role: &employeeRole})

			// Then
			Expect(err).ToNot(HaveOccurred())
			Expect(outcome).To(Equal(internal.OutcomeOK))
			st.View(func(s *store.State) {
				Expect(s.Employees).To(HaveLen(1))
			})
		})

		It("should expose the bridge as an explicit promotion operation", func() {
			// When
			record, outcome := service.PromoteToEmployee(ctx, 4)

			// Then
			Expect(outcome).To(Equal(internal.OutcomeOK))
			Expect(record.Email).To(Equal("agus.wijaya@mail.com"))
			Expect(record.HireDate).ToNot(BeEmpty())
		})
	})

	Describe("UpdateRolePermissions", func() {
		It("should replace the mapping and cascade onto every role holder", func() {
			// Given: users 3 and 4 are customers
			perms := user.PermissionSet{ManageOrders: true, ManageReturns: true}

			// When
			err := service.UpdateRolePermissions(ctx, user.RoleCustomer, perms)

			// Then
			Expect(err).ToNot(HaveOccurred())
			st.View(func(s *store.State) {
				Expect(s.RolePermissions[user.RoleCustomer]).To(Equal(perms))
				Expect(s.FindUser(3).Permissions).ToNot(BeNil())
				Expect(*s.FindUser(3).Permissions).To(Equal(perms))
				Expect(s.FindUser(4).Permissions).ToNot(BeNil())
				Expect(*s.FindUser(4).Permissions).To(Equal(perms))
				// Other roles are untouched
				Expect(s.FindUser(2).Permissions).To(BeNil())
				// Admin stays all-true no matter what the mapping says
				Expect(s.EffectivePermissions(s.FindUser(1))).To(Equal(user.AllPermissions()))
			})
		})

		It("should change what the role holders can effectively do", func() {
			// Given
			st.View(func(s *store.State) {
				Expect(s.EffectivePermissions(s.FindUser(3)).Can("orders")).To(BeFalse())
			})

			// When
			err := service.UpdateRolePermissions(ctx, user.RoleCustomer, user.PermissionSet{ManageOrders: true})

			// Then
			Expect(err).ToNot(HaveOccurred())
			st.View(func(s *store.State) {
				Expect(s.EffectivePermissions(s.FindUser(3)).Can("orders")).To(BeTrue())
				Expect(s.EffectivePermissions(s.FindUser(3)).Can("users")).To(BeFalse())
			})
		})

		It("should stop honoring a cascaded set once the user leaves the role", func() {
			// Given: Employee role holders were granted order management
			err := service.UpdateRolePermissions(ctx, user.RoleEmployee, user.PermissionSet{ManageOrders: true})
			Expect(err).ToNot(HaveOccurred())

			// When: seed user 2 is demoted to Customer
			customer := user.RoleCustomer
			_, outcome, err := service.Update(ctx, 2, users.UpdateUserDTO{Role: &customer})

			// Then: the effective check follows the new role, not the
			// permissions mirrored from the old one
			Expect(err).ToNot(HaveOccurred())
			Expect(outcome).To(Equal(internal.OutcomeOK))
			st.View(func(s *store.State) {
				u := s.FindUser(2)
				Expect(u.Permissions).To(BeNil())
				Expect(s.EffectivePermissions(u).Can("orders")).To(BeFalse())
			})
		})

		Context("when the role is Admin", func() {
			It("should reject the edit", func() {
				// When
				err := service.UpdateRolePermissions(ctx, user.RoleAdmin, user.PermissionSet{})

				// Then
				Expect(err).To(Equal(internal.ErrAdminRoleReserved))
			})
		})

		Context("when the role is unknown", func() {
			It("should fail validation", func() {
				// When
				err := service.UpdateRolePermissions(ctx, "Wizard", user.PermissionSet{})

				// Then
				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Code).To(Equal(internal.ErrCodeUnknownRole))
			})
		})
	})

	Describe("Update", func() {
		It("should shallow-merge only the provided fields", func() {
			// Given
			phone := "+62 811 9999 0000"

			// When
			updated, outcome, err := service.Update(ctx, 3, users.UpdateUserDTO{Phone: &phone})

			// Then
			Expect(err).ToNot(HaveOccurred())
			Expect(outcome).To(Equal(internal.OutcomeOK))
			Expect(updated.Phone).To(Equal(phone))
			Expect(updated.Name).To(Equal("Dewi Lestari"))
			Expect(updated.Email).To(Equal("dewi.lestari@mail.com"))
		})

		It("should refresh the session snapshot when the session user changes", func() {
			// Given: user 1 is the active session
			st.Update(ctx, func(s *store.State) []storage.Key {
				snapshot := *s.FindUser(1)
				s.CurrentUser = &snapshot
				return nil
			})
			name := "Sari R. Handayani"

			// When
			_, outcome, err := service.Update(ctx, 1, users.UpdateUserDTO{Name: &name})

			// Then
			Expect(err).ToNot(HaveOccurred())
			Expect(outcome).To(Equal(internal.OutcomeOK))
			u, ok := st.CurrentUser()
			Expect(ok).To(BeTrue())
			Expect(u.Name).To(Equal(name))
		})

		Context("when the user does not exist", func() {
			It("should return not found", func() {
				// When
				name := "Ghost"
				_, outcome, err := service.Update(ctx, 404, users.UpdateUserDTO{Name: &name})

				// Then
				Expect(err).ToNot(HaveOccurred())
				Expect(outcome).To(Equal(internal.OutcomeNotFound))
			})
		})
	})

	Describe("Delete", func() {
		It("should remove the user", func() {
			// When
			outcome := service.Delete(ctx, 4)

			// Then
			Expect(outcome).To(Equal(internal.OutcomeOK))
			Expect(service.List(ctx)).To(HaveLen(3))
		})
	})
})
