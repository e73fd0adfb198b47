package returns

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rahayucraft/studio-management/internal"
	"github.com/rahayucraft/studio-management/internal/core/datamodel/returns"
	"github.com/rahayucraft/studio-management/internal/core/events"
	"github.com/rahayucraft/studio-management/internal/notifications"
	"github.com/rahayucraft/studio-management/internal/storage"
	"github.com/rahayucraft/studio-management/internal/store"
)

// Service owns the return/refund collection and its approval workflow:
// Pending -> Approved | Rejected, then Refunded from Approved as a
// separate manual action. Responding publishes the email dispatch event
// only after the state transition has committed.
type Service struct {
	store  *store.Store
	bus    *events.EventBus
	logger *slog.Logger
}

func NewService(st *store.Store, bus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{store: st, bus: bus, logger: logger}
}

func (s *Service) List(ctx context.Context) []returns.Return {
	var out []returns.Return
	s.store.View(func(st *store.State) {
		out = append([]returns.Return{}, st.Returns...)
	})
	return out
}

func (s *Service) Get(ctx context.Context, id int64) (returns.Return, internal.Outcome) {
	var (
		found   returns.Return
		outcome = internal.OutcomeNotFound
	)
	s.store.View(func(st *store.State) {
		if r := st.FindReturn(id); r != nil {
			found = *r
			outcome = internal.OutcomeOK
		}
	})
	return found, outcome
}

func (s *Service) Create(ctx context.Context, dto CreateReturnDTO) (returns.Return, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("return validation failed", "error", err, "return_id", dto.ID)
		return returns.Return{}, err
	}

	var (
		created   returns.Return
		duplicate bool
	)
	actor := internal.ActorName(ctx)
	s.store.Update(ctx, func(st *store.State) []storage.Key {
		if st.FindReturn(dto.ID) != nil {
			duplicate = true
			return nil
		}
		daysLeft := dto.DaysLeft
		if daysLeft == 0 {
			daysLeft = 14
		}
		created = returns.Return{
			ID:           dto.ID,
			OrderNumber:  dto.OrderNumber,
			UserID:       dto.UserID,
			CustomerName: dto.CustomerName,
			Reason:       dto.Reason,
			Products:     dto.Products,
			Status:       returns.StatusPending,
			RequestDate:  store.Today(),
			DaysLeft:     daysLeft,
		}
		st.Returns = append(st.Returns, created)
		notifications.Push(st, "return",
			fmt.Sprintf("Return requested for order %s", created.OrderNumber), "/returns")
		notifications.RecordMutation(st, actor, "return", created.ID, "create")
		return []storage.Key{storage.KeyReturns, storage.KeyNotifications, storage.KeyActivityLog}
	})

	if duplicate {
		return returns.Return{}, internal.NewConflictError(
			fmt.Sprintf("return id %d already exists", dto.ID), internal.ErrCodeDuplicateID)
	}

	s.logger.Info("return created", "return_id", created.ID, "order_number", created.OrderNumber)
	return created, nil
}

func (s *Service) Update(ctx context.Context, id int64, dto UpdateReturnDTO) (returns.Return, internal.Outcome) {
	var (
		updated returns.Return
		outcome = internal.OutcomeNotFound
	)
	actor := internal.ActorName(ctx)
	s.store.Update(ctx, func(st *store.State) []storage.Key {
		r := st.FindReturn(id)
		if r == nil {
			return nil
		}
		outcome = internal.OutcomeOK
		if dto.Reason != nil {
			r.Reason = *dto.Reason
		}
		if dto.DaysLeft != nil {
			r.DaysLeft = *dto.DaysLeft
		}
		notifications.RecordMutation(st, actor, "return", r.ID, "update")
		updated = *r
		return []storage.Key{storage.KeyReturns, storage.KeyActivityLog}
	})

	if !outcome.OK() {
		s.logger.Warn("return not found for update", "return_id", id)
	}
	return updated, outcome
}

func (s *Service) Delete(ctx context.Context, id int64) internal.Outcome {
	outcome := internal.OutcomeNotFound
	actor := internal.ActorName(ctx)
	s.store.Update(ctx, func(st *store.State) []storage.Key {
		for i := range st.Returns {
			if st.Returns[i].ID == id {
				st.Returns = append(st.Returns[:i], st.Returns[i+1:]...)
				outcome = internal.OutcomeOK
				notifications.RecordMutation(st, actor, "return", id, "delete")
				return []storage.Key{storage.KeyReturns, storage.KeyActivityLog}
			}
		}
		return nil
	})

	if !outcome.OK() {
		s.logger.Warn("return not found for delete", "return_id", id)
	}
	return outcome
}

// Respond decides a pending return. The status flip, processed date and
// admin response commit as one transition; the customer email goes out
// afterwards, fire-and-forget, and its failure never reverts the status.
func (s *Service) Respond(ctx context.Context, id int64, dto RespondDTO) (returns.Return, internal.Outcome, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("return response validation failed", "error", err, "return_id", id)
		return returns.Return{}, internal.OutcomeOK, err
	}

	var (
		updated        returns.Return
		outcome        = internal.OutcomeNotFound
		recipientName  string
		recipientEmail string
	)
	actor := internal.ActorName(ctx)
	s.store.Update(ctx, func(st *store.State) []storage.Key {
		r := st.FindReturn(id)
		if r == nil {
			return nil
		}
		outcome = internal.OutcomeOK

		if dto.Approved {
			r.Status = returns.StatusApproved
		} else {
			r.Status = returns.StatusRejected
		}
		r.ProcessedDate = store.Today()
		r.AdminResponse = &returns.AdminResponse{
			Approved:    dto.Approved,
			Reason:      dto.Reason,
			Message:     dto.Message,
			Alternative: dto.Alternative,
		}

		recipientName = r.CustomerName
		if u := st.FindUser(r.UserID); u != nil {
			recipientEmail = u.Email
			if recipientName == "" {
				recipientName = u.Name
			}
		}

		notifications.Push(st, "return",
			fmt.Sprintf("Return %s %s", r.OrderNumber, r.Status), "/returns")
		notifications.Record(st, actor, "respond to return",
			fmt.Sprintf("return #%d %s", r.ID, r.Status), "update")
		updated = *r
		return []storage.Key{storage.KeyReturns, storage.KeyNotifications, storage.KeyActivityLog}
	})

	if !outcome.OK() {
		s.logger.Warn("return not found for response", "return_id", id)
		return returns.Return{}, outcome, nil
	}

	// The transition above has already committed; delivery is advisory.
	if recipientEmail != "" {
		s.bus.Publish(ctx, events.NewReturnRespondedEvent(
			updated.ID, updated.OrderNumber, recipientName, recipientEmail,
			dto.Approved, dto.Reason, dto.Message, dto.Alternative))
	} else {
		s.logger.Warn("no recipient email resolved for return response", "return_id", id, "user_id", updated.UserID)
	}

	s.logger.Info("return responded",
		"return_id", id,
		"status", updated.Status,
		"approved", dto.Approved)
	return updated, outcome, nil
}

// MarkRefunded moves an approved return to Refunded. Any other current
// status is a precondition failure.
func (s *Service) MarkRefunded(ctx context.Context, id int64) (returns.Return, internal.Outcome, error) {
	var (
		updated     returns.Return
		outcome     = internal.OutcomeNotFound
		notApproved bool
	)
	actor := internal.ActorName(ctx)
	s.store.Update(ctx, func(st *store.State) []storage.Key {
		r := st.FindReturn(id)
		if r == nil {
			return nil
		}
		if !r.CanBeRefunded() {
			outcome = internal.OutcomePreconditionFailed
			notApproved = true
			return nil
		}
		outcome = internal.OutcomeOK
		r.Status = returns.StatusRefunded
		notifications.Record(st, actor, "refund return",
			fmt.Sprintf("return #%d refunded", r.ID), "update")
		updated = *r
		return []storage.Key{storage.KeyReturns, storage.KeyActivityLog}
	})

	switch {
	case notApproved:
		s.logger.Warn("refund rejected: return not approved", "return_id", id)
		return returns.Return{}, outcome, internal.NewPreconditionError(
			"only approved returns can be refunded", internal.ErrCodeValidationFailed)
	case !outcome.OK():
		s.logger.Warn("return not found for refund", "return_id", id)
		return returns.Return{}, outcome, nil
	}

	s.logger.Info("return refunded", "return_id", id)
	return updated, outcome, nil
}
