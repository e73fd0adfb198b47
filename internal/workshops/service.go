package workshops

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rahayucraft/studio-management/internal"
	"github.com/rahayucraft/studio-management/internal/core/datamodel/user"
	"github.com/rahayucraft/studio-management/internal/core/datamodel/workshop"
	"github.com/rahayucraft/studio-management/internal/notifications"
	"github.com/rahayucraft/studio-management/internal/storage"
	"github.com/rahayucraft/studio-management/internal/store"
)

// Service owns the workshop collection and its enrollment state machine:
// Scheduled -> Full (at capacity) -> Completed (explicit, terminal).
type Service struct {
	store  *store.Store
	logger *slog.Logger
}

func NewService(st *store.Store, logger *slog.Logger) *Service {
	return &Service{store: st, logger: logger}
}

func (s *Service) List(ctx context.Context) []workshop.Workshop {
	var out []workshop.Workshop
	s.store.View(func(st *store.State) {
		out = append([]workshop.Workshop{}, st.Workshops...)
	})
	return out
}

func (s *Service) Get(ctx context.Context, id int64) (workshop.Workshop, internal.Outcome) {
	var (
		found   workshop.Workshop
		outcome = internal.OutcomeNotFound
	)
	s.store.View(func(st *store.State) {
		if w := st.FindWorkshop(id); w != nil {
			found = *w
			outcome = internal.OutcomeOK
		}
	})
	return found, outcome
}

func (s *Service) Create(ctx context.Context, dto CreateWorkshopDTO) (workshop.Workshop, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("workshop validation failed", "error", err, "workshop_id", dto.ID)
		return workshop.Workshop{}, err
	}

	var (
		created   workshop.Workshop
		duplicate bool
	)
	actor := internal.ActorName(ctx)
	s.store.Update(ctx, func(st *store.State) []storage.Key {
		if st.FindWorkshop(dto.ID) != nil {
			duplicate = true
			return nil
		}
		created = workshop.Workshop{
			ID:            dto.ID,
			Name:          dto.Name,
			Description:   dto.Description,
			Instructor:    dto.Instructor,
			Date:          dto.Date,
			Duration:      dto.Duration,
			MaxCapacity:   dto.MaxCapacity,
			Price:         dto.Price,
			Status:        workshop.StatusScheduled,
			EnrolledUsers: []workshop.Enrollment{},
		}
		st.Workshops = append(st.Workshops, created)
		notifications.RecordMutation(st, actor, "workshop", created.ID, "create")
		return []storage.Key{storage.KeyWorkshops, storage.KeyActivityLog}
	})

	if duplicate {
		return workshop.Workshop{}, internal.NewConflictError(
			fmt.Sprintf("workshop id %d already exists", dto.ID), internal.ErrCodeDuplicateID)
	}

	s.logger.Info("workshop created", "workshop_id", created.ID, "max_capacity", created.MaxCapacity)
	return created, nil
}

func (s *Service) Update(ctx context.Context, id int64, dto UpdateWorkshopDTO) (workshop.Workshop, internal.Outcome, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("workshop patch validation failed", "error", err, "workshop_id", id)
		return workshop.Workshop{}, internal.OutcomeOK, err
	}

	var (
		updated workshop.Workshop
		outcome = internal.OutcomeNotFound
		shrunk  bool
	)
	actor := internal.ActorName(ctx)
	s.store.Update(ctx, func(st *store.State) []storage.Key {
		w := st.FindWorkshop(id)
		if w == nil {
			return nil
		}
		// Capacity can never drop below the seats already taken.
		if dto.MaxCapacity != nil && *dto.MaxCapacity < w.Students {
			outcome = internal.OutcomePreconditionFailed
			shrunk = true
			return nil
		}
		outcome = internal.OutcomeOK
		applyWorkshopPatch(w, dto)
		notifications.RecordMutation(st, actor, "workshop", w.ID, "update")
		updated = *w
		return []storage.Key{storage.KeyWorkshops, storage.KeyActivityLog}
	})

	if shrunk {
		s.logger.Warn("capacity patch rejected: below current enrollment", "workshop_id", id)
		return workshop.Workshop{}, internal.OutcomePreconditionFailed, internal.ErrCapacityBelowEnrollment
	}
	if !outcome.OK() {
		s.logger.Warn("workshop not found for update", "workshop_id", id)
		return workshop.Workshop{}, outcome, nil
	}
	return updated, outcome, nil
}

func (s *Service) Delete(ctx context.Context, id int64) internal.Outcome {
	outcome := internal.OutcomeNotFound
	actor := internal.ActorName(ctx)
	s.store.Update(ctx, func(st *store.State) []storage.Key {
		for i := range st.Workshops {
			if st.Workshops[i].ID == id {
				st.Workshops = append(st.Workshops[:i], st.Workshops[i+1:]...)
				outcome = internal.OutcomeOK
				notifications.RecordMutation(st, actor, "workshop", id, "delete")
				return []storage.Key{storage.KeyWorkshops, storage.KeyActivityLog}
			}
		}
		return nil
	})

	if !outcome.OK() {
		s.logger.Warn("workshop not found for delete", "workshop_id", id)
	}
	return outcome
}

// Enroll signs a user up for a workshop as one atomic state transition:
// the enrollment snapshot is appended, the student count and revenue
// advance together, the workshop flips to Full exactly when capacity is
// hit, and the user's role becomes Student. A full or completed workshop
// rejects the enrollment with no state change; the capacity check is
// re-evaluated on every call.
func (s *Service) Enroll(ctx context.Context, workshopID, userID int64, override EnrollmentDTO) (workshop.Workshop, internal.Outcome, error) {
	var (
		result    workshop.Workshop
		outcome   = internal.OutcomeNotFound
		missing   string
		full      bool
		completed bool
	)
	actor := internal.ActorName(ctx)
	s.store.Update(ctx, func(st *store.State) []storage.Key {
		w := st.FindWorkshop(workshopID)
		if w == nil {
			missing = "workshop"
			return nil
		}
		u := st.FindUser(userID)
		if u == nil {
			missing = "user"
			return nil
		}
		if w.Status == workshop.StatusCompleted {
			outcome = internal.OutcomePreconditionFailed
			completed = true
			return nil
		}
		if w.Students >= w.MaxCapacity {
			outcome = internal.OutcomePreconditionFailed
			full = true
			return nil
		}

		enrollment := workshop.Enrollment{
			UserID:     u.ID,
			Name:       firstNonEmpty(override.Name, u.Name),
			Email:      firstNonEmpty(override.Email, u.Email),
			Phone:      firstNonEmpty(override.Phone, u.Phone),
			Experience: override.Experience,
			EnrolledAt: store.Today(),
		}
		w.EnrolledUsers = append(w.EnrolledUsers, enrollment)
		w.Students++
		w.Revenue += w.Price
		if w.Students == w.MaxCapacity {
			w.Status = workshop.StatusFull
		}

		// Enrollment overwrites whatever role the user had; the
		// permission mirror follows the role.
		u.Role = user.RoleStudent
		u.Permissions = nil

		keys := []storage.Key{storage.KeyWorkshops, storage.KeyUsers, storage.KeyActivityLog, storage.KeyNotifications}
		if st.CurrentUser != nil && st.CurrentUser.ID == u.ID {
			snapshot := *u
			st.CurrentUser = &snapshot
			keys = append(keys, storage.KeyCurrentUser)
		}

		notifications.Push(st, "workshop",
			fmt.Sprintf("%s enrolled in %s", enrollment.Name, w.Name), "/workshops")
		notifications.Record(st, actor, "enroll in workshop",
			fmt.Sprintf("user #%d -> workshop #%d", u.ID, w.ID), "update")

		outcome = internal.OutcomeOK
		result = *w
		return keys
	})

	switch {
	case completed:
		s.logger.Warn("enrollment rejected: workshop completed", "workshop_id", workshopID, "user_id", userID)
		return workshop.Workshop{}, internal.OutcomePreconditionFailed, internal.ErrWorkshopCompleted
	case full:
		s.logger.Warn("enrollment rejected: workshop full", "workshop_id", workshopID, "user_id", userID)
		return workshop.Workshop{}, internal.OutcomePreconditionFailed, internal.ErrWorkshopFull
	case outcome == internal.OutcomeNotFound:
		s.logger.Warn("enrollment target missing", "missing", missing, "workshop_id", workshopID, "user_id", userID)
		if missing == "user" {
			return workshop.Workshop{}, outcome, internal.ErrUserNotFound
		}
		return workshop.Workshop{}, outcome, internal.ErrWorkshopNotFound
	}

	s.logger.Info("user enrolled",
		"workshop_id", workshopID,
		"user_id", userID,
		"students", result.Students,
		"status", result.Status)
	return result, internal.OutcomeOK, nil
}

// Complete marks the workshop Completed (terminal) and reverts every
// enrolled user to Customer. The revert is unconditional even when the
// user is still enrolled in other active workshops; there is no
// enrollment reference counting across workshops.
func (s *Service) Complete(ctx context.Context, workshopID int64) (workshop.Workshop, internal.Outcome) {
	var (
		result   workshop.Workshop
		outcome  = internal.OutcomeNotFound
		reverted int
	)
	actor := internal.ActorName(ctx)
	s.store.Update(ctx, func(st *store.State) []storage.Key {
		w := st.FindWorkshop(workshopID)
		if w == nil {
			return nil
		}
		outcome = internal.OutcomeOK

		w.Status = workshop.StatusCompleted

		keys := []storage.Key{storage.KeyWorkshops, storage.KeyUsers, storage.KeyActivityLog}
		for _, enrollment := range w.EnrolledUsers {
			if u := st.FindUser(enrollment.UserID); u != nil {
				u.Role = user.RoleCustomer
				u.Permissions = nil
				reverted++
				if st.CurrentUser != nil && st.CurrentUser.ID == u.ID {
					snapshot := *u
					st.CurrentUser = &snapshot
					keys = append(keys, storage.KeyCurrentUser)
				}
			}
		}

		notifications.Record(st, actor, "complete workshop",
			fmt.Sprintf("workshop #%d completed, %d student(s) reverted", w.ID, reverted), "update")
		result = *w
		return keys
	})

	if !outcome.OK() {
		s.logger.Warn("workshop not found for completion", "workshop_id", workshopID)
		return workshop.Workshop{}, outcome
	}

	s.logger.Info("workshop completed", "workshop_id", workshopID, "students_reverted", reverted)
	return result, outcome
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
