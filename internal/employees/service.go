package employees

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rahayucraft/studio-management/internal"
	"github.com/rahayucraft/studio-management/internal/core/datamodel/employee"
	"github.com/rahayucraft/studio-management/internal/notifications"
	"github.com/rahayucraft/studio-management/internal/storage"
	"github.com/rahayucraft/studio-management/internal/store"
)

type Service struct {
	store  *store.Store
	logger *slog.Logger
}

func NewService(st *store.Store, logger *slog.Logger) *Service {
	return &Service{store: st, logger: logger}
}

func (s *Service) List(ctx context.Context) []employee.Employee {
	var out []employee.Employee
	s.store.View(func(st *store.State) {
		out = append([]employee.Employee{}, st.Employees...)
	})
	return out
}

func (s *Service) Get(ctx context.Context, id int64) (employee.Employee, internal.Outcome) {
	var (
		found   employee.Employee
		outcome = internal.OutcomeNotFound
	)
	s.store.View(func(st *store.State) {
		if e := st.FindEmployee(id); e != nil {
			found = *e
			outcome = internal.OutcomeOK
		}
	})
	return found, outcome
}

func (s *Service) Create(ctx context.Context, dto CreateEmployeeDTO) (employee.Employee, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("employee validation failed", "error", err, "employee_id", dto.ID)
		return employee.Employee{}, err
	}

	var (
		created   employee.Employee
		duplicate bool
	)
	actor := internal.ActorName(ctx)
	s.store.Update(ctx, func(st *store.State) []storage.Key {
		if st.FindEmployee(dto.ID) != nil {
			duplicate = true
			return nil
		}
		hireDate := dto.HireDate
		if hireDate == "" {
			hireDate = store.Today()
		}
		certifications := dto.Certifications
		if certifications == nil {
			certifications = []string{}
		}
		created = employee.Employee{
			ID:               dto.ID,
			Name:             dto.Name,
			Email:            dto.Email,
			Phone:            dto.Phone,
			Document:         dto.Document,
			Address:          dto.Address,
			Position:         firstNonEmpty(dto.Position, employee.DefaultPosition),
			Salary:           dto.Salary,
			Schedule:         firstNonEmpty(dto.Schedule, employee.DefaultSchedule),
			HireDate:         hireDate,
			Status:           employee.DefaultStatus,
			EmergencyContact: dto.EmergencyContact,
			Certifications:   certifications,
		}
		st.Employees = append(st.Employees, created)
		notifications.RecordMutation(st, actor, "employee", created.ID, "create")
		return []storage.Key{storage.KeyEmployees, storage.KeyActivityLog}
	})

	if duplicate {
		return employee.Employee{}, internal.NewConflictError(
			fmt.Sprintf("employee id %d already exists", dto.ID), internal.ErrCodeDuplicateID)
	}

	s.logger.Info("employee created", "employee_id", created.ID)
	return created, nil
}

func (s *Service) Update(ctx context.Context, id int64, dto UpdateEmployeeDTO) (employee.Employee, internal.Outcome) {
	var (
		updated employee.Employee
		outcome = internal.OutcomeNotFound
	)
	actor := internal.ActorName(ctx)
	s.store.Update(ctx, func(st *store.State) []storage.Key {
		e := st.FindEmployee(id)
		if e == nil {
			return nil
		}
		outcome = internal.OutcomeOK
		applyEmployeePatch(e, dto)
		notifications.RecordMutation(st, actor, "employee", e.ID, "update")
		updated = *e
		return []storage.Key{storage.KeyEmployees, storage.KeyActivityLog}
	})

	if !outcome.OK() {
		s.logger.Warn("employee not found for update", "employee_id", id)
	}
	return updated, outcome
}

func (s *Service) Delete(ctx context.Context, id int64) internal.Outcome {
	outcome := internal.OutcomeNotFound
	actor := internal.ActorName(ctx)
	s.store.Update(ctx, func(st *store.State) []storage.Key {
		for i := range st.Employees {
			if st.Employees[i].ID == id {
				st.Employees = append(st.Employees[:i], st.Employees[i+1:]...)
				outcome = internal.OutcomeOK
				notifications.RecordMutation(st, actor, "employee", id, "delete")
				return []storage.Key{storage.KeyEmployees, storage.KeyActivityLog}
			}
		}
		return nil
	})

	if !outcome.OK() {
		s.logger.Warn("employee not found for delete", "employee_id", id)
	}
	return outcome
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
