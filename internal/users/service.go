package users

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rahayucraft/studio-management/internal"
	"github.com/rahayucraft/studio-management/internal/core/datamodel/employee"
	"github.com/rahayucraft/studio-management/internal/core/datamodel/user"
	"github.com/rahayucraft/studio-management/internal/notifications"
	"github.com/rahayucraft/studio-management/internal/storage"
	"github.com/rahayucraft/studio-management/internal/store"
)

// Service owns the user collection, the role-permission mapping and the
// user-to-employee promotion bridge.
type Service struct {
	store  *store.Store
	logger *slog.Logger
}

func NewService(st *store.Store, logger *slog.Logger) *Service {
	return &Service{store: st, logger: logger}
}

func (s *Service) List(ctx context.Context) []user.User {
	var out []user.User
	s.store.View(func(st *store.State) {
		out = append([]user.User{}, st.Users...)
	})
	return out
}

func (s *Service) Get(ctx context.Context, id int64) (user.User, internal.Outcome) {
	var (
		found   user.User
		outcome = internal.OutcomeNotFound
	)
	s.store.View(func(st *store.State) {
		if u := st.FindUser(id); u != nil {
			found = *u
			outcome = internal.OutcomeOK
		}
	})
	return found, outcome
}

func (s *Service) Create(ctx context.Context, dto CreateUserDTO) (user.User, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("user validation failed", "error", err, "user_id", dto.ID)
		return user.User{}, err
	}

	var (
		created   user.User
		duplicate bool
	)
	actor := internal.ActorName(ctx)
	s.store.Update(ctx, func(st *store.State) []storage.Key {
		if st.FindUser(dto.ID) != nil {
			duplicate = true
			return nil
		}
		created = user.User{
			ID:           dto.ID,
			Name:         dto.Name,
			Email:        dto.Email,
			Phone:        dto.Phone,
			Document:     dto.Document,
			Address:      dto.Address,
			Role:         dto.Role,
			Status:       statusOrDefault(dto.Status),
			ProfilePhoto: dto.ProfilePhoto,
		}
		st.Users = append(st.Users, created)
		notifications.RecordMutation(st, actor, "user", created.ID, "create")
		return []storage.Key{storage.KeyUsers, storage.KeyActivityLog}
	})

	if duplicate {
		return user.User{}, internal.NewConflictError(
			fmt.Sprintf("user id %d already exists", dto.ID), internal.ErrCodeDuplicateID)
	}

	s.logger.Info("user created", "user_id", created.ID, "role", created.Role)
	return created, nil
}

// Update shallow-merges the patch over the stored user. Changing the role
// to Employee runs the promotion bridge inside the same state transition;
// if the updated user is the active session user, the session snapshot is
// refreshed with the merged data.
func (s *Service) Update(ctx context.Context, id int64, dto UpdateUserDTO) (user.User, internal.Outcome, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("user patch validation failed", "error", err, "user_id", id)
		return user.User{}, internal.OutcomeOK, err
	}

	var (
		updated  user.User
		outcome  = internal.OutcomeNotFound
		promoted bool
	)
	actor := internal.ActorName(ctx)
	s.store.Update(ctx, func(st *store.State) []storage.Key {
		u := st.FindUser(id)
		if u == nil {
			return nil
		}
		outcome = internal.OutcomeOK

		previousRole := u.Role
		applyUserPatch(u, dto)

		keys := []storage.Key{storage.KeyUsers, storage.KeyActivityLog}

		if previousRole != user.RoleEmployee && u.Role == user.RoleEmployee {
			if synthesizeEmployee(st, u) {
				promoted = true
				keys = append(keys, storage.KeyEmployees)
				notifications.Push(st, "employee",
					fmt.Sprintf("%s joined the team", u.Name), "/employees")
				keys = append(keys, storage.KeyNotifications)
			}
		}

		if st.CurrentUser != nil && st.CurrentUser.ID == u.ID {
			snapshot := *u
			st.CurrentUser = &snapshot
			keys = append(keys, storage.KeyCurrentUser)
		}

		notifications.RecordMutation(st, actor, "user", u.ID, "update")
		updated = *u
		return keys
	})

	if outcome != internal.OutcomeOK {
		s.logger.Warn("user not found for update", "user_id", id)
		return user.User{}, outcome, nil
	}

	s.logger.Info("user updated", "user_id", id, "promoted_to_employee", promoted)
	return updated, outcome, nil
}

func (s *Service) Delete(ctx context.Context, id int64) internal.Outcome {
	outcome := internal.OutcomeNotFound
	actor := internal.ActorName(ctx)
	s.store.Update(ctx, func(st *store.State) []storage.Key {
		for i := range st.Users {
			if st.Users[i].ID == id {
				st.Users = append(st.Users[:i], st.Users[i+1:]...)
				outcome = internal.OutcomeOK
				notifications.RecordMutation(st, actor, "user", id, "delete")
				return []storage.Key{storage.KeyUsers, storage.KeyActivityLog}
			}
		}
		return nil
	})

	if !outcome.OK() {
		s.logger.Warn("user not found for delete", "user_id", id)
	}
	return outcome
}

// RolePermissions returns a copy of the stored mapping.
func (s *Service) RolePermissions(ctx context.Context) user.RolePermissions {
	out := user.RolePermissions{}
	s.store.View(func(st *store.State) {
		for role, perms := range st.RolePermissions {
			out[role] = perms
		}
	})
	return out
}

// UpdateRolePermissions replaces the permission set for a role and
// cascades the new set onto every user currently holding that role.
// Admin is excluded: its permissions are computed all-true at check time.
func (s *Service) UpdateRolePermissions(ctx context.Context, role string, perms user.PermissionSet) error {
	if role == user.RoleAdmin {
		s.logger.Warn("attempt to edit admin permissions rejected")
		return internal.ErrAdminRoleReserved
	}
	if !user.ValidRole(role) {
		return internal.NewValidationError(
			fmt.Sprintf("unknown role %q", role), internal.ErrCodeUnknownRole)
	}

	actor := internal.ActorName(ctx)
	var cascaded int
	s.store.Update(ctx, func(st *store.State) []storage.Key {
		st.RolePermissions[role] = perms
		for i := range st.Users {
			if st.Users[i].Role == role {
				p := perms
				st.Users[i].Permissions = &p
				cascaded++
			}
		}
		if st.CurrentUser != nil && st.CurrentUser.Role == role {
			p := perms
			st.CurrentUser.Permissions = &p
		}
		notifications.Record(st, actor,
			fmt.Sprintf("update %s permissions", role),
			fmt.Sprintf("permissions replaced for %d user(s)", cascaded), "update")
		return []storage.Key{storage.KeyRolePermissions, storage.KeyUsers, storage.KeyCurrentUser, storage.KeyActivityLog}
	})

	s.logger.Info("role permissions updated", "role", role, "cascaded_users", cascaded)
	return nil
}

// PromoteToEmployee is the explicit form of the role-change bridge: it
// flips the user's role to Employee and synthesizes the HR record when
// none exists for that email.
func (s *Service) PromoteToEmployee(ctx context.Context, userID int64) (employee.Employee, internal.Outcome) {
	role := user.RoleEmployee
	updated, outcome, err := s.Update(ctx, userID, UpdateUserDTO{Role: &role})
	if err != nil || !outcome.OK() {
		return employee.Employee{}, outcome
	}

	var record employee.Employee
	s.store.View(func(st *store.State) {
		if e := st.FindEmployeeByEmail(updated.Email); e != nil {
			record = *e
		}
	})
	return record, internal.OutcomeOK
}

// synthesizeEmployee creates the HR record for a freshly promoted user.
// Returns false when an employee with the same email already exists, so
// repeating the promotion never duplicates records.
func synthesizeEmployee(st *store.State, u *user.User) bool {
	if st.FindEmployeeByEmail(u.Email) != nil {
		return false
	}

	var maxID int64
	for i := range st.Employees {
		if st.Employees[i].ID > maxID {
			maxID = st.Employees[i].ID
		}
	}

	st.Employees = append(st.Employees, employee.Employee{
		ID:               maxID + 1,
		Name:             u.Name,
		Email:            u.Email,
		Phone:            u.Phone,
		Document:         u.Document,
		Address:          u.Address,
		Position:         employee.DefaultPosition,
		Salary:           employee.DefaultSalary,
		Schedule:         employee.DefaultSchedule,
		HireDate:         store.Today(),
		Status:           employee.DefaultStatus,
		EmergencyContact: employee.EmergencyContact{},
		Certifications:   []string{},
	})
	return true
}

func applyUserPatch(u *user.User, dto UpdateUserDTO) {
	if dto.Name != nil {
		u.Name = *dto.Name
	}
	if dto.Email != nil {
		u.Email = *dto.Email
	}
	if dto.Phone != nil {
		u.Phone = *dto.Phone
	}
	if dto.Document != nil {
		u.Document = *dto.Document
	}
	if dto.Address != nil {
		u.Address = *dto.Address
	}
	if dto.Role != nil && *dto.Role != u.Role {
		u.Role = *dto.Role
		// The mirror belongs to the old role's cascade; drop it so the
		// stored user matches what Effective now resolves.
		u.Permissions = nil
	}
	if dto.Status != nil {
		u.Status = *dto.Status
	}
	if dto.Orders != nil {
		u.Orders = *dto.Orders
	}
	if dto.ProfilePhoto != nil {
		u.ProfilePhoto = *dto.ProfilePhoto
	}
}

func statusOrDefault(status string) string {
	if status == "" {
		return user.StatusActive
	}
	return status
}
