package orders

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/rahayucraft/studio-management/internal"
	"github.com/rahayucraft/studio-management/internal/core/datamodel/order"
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

func (s *Service) List(ctx context.Context) []order.Order {
	var out []order.Order
	s.store.View(func(st *store.State) {
		out = append([]order.Order{}, st.Orders...)
	})
	return out
}

func (s *Service) Get(ctx context.Context, id int64) (order.Order, internal.Outcome) {
	var (
		found   order.Order
		outcome = internal.OutcomeNotFound
	)
	s.store.View(func(st *store.State) {
		if o := st.FindOrder(id); o != nil {
			found = *o
			outcome = internal.OutcomeOK
		}
	})
	return found, outcome
}

func (s *Service) Create(ctx context.Context, dto CreateOrderDTO) (order.Order, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("order validation failed", "error", err, "order_id", dto.ID)
		return order.Order{}, err
	}

	var (
		created   order.Order
		duplicate bool
	)
	actor := internal.ActorName(ctx)
	s.store.Update(ctx, func(st *store.State) []storage.Key {
		if st.FindOrder(dto.ID) != nil {
			duplicate = true
			return nil
		}
		status := dto.Status
		if status == "" {
			status = order.StatusPending
		}
		date := dto.Date
		if date == "" {
			date = store.Today()
		}
		created = order.Order{
			ID:            dto.ID,
			OrderNumber:   firstNonEmpty(dto.OrderNumber, newOrderNumber()),
			UserID:        dto.UserID,
			CustomerName:  dto.CustomerName,
			CustomerEmail: dto.CustomerEmail,
			Products:      dto.Products,
			Status:        status,
			Date:          date,
			Notes:         dto.Notes,
		}
		created.Total = created.ComputeTotal()
		st.Orders = append(st.Orders, created)
		notifications.Push(st, "order",
			fmt.Sprintf("New order %s from %s", created.OrderNumber, created.CustomerName), "/orders")
		notifications.RecordMutation(st, actor, "order", created.ID, "create")
		return []storage.Key{storage.KeyOrders, storage.KeyNotifications, storage.KeyActivityLog}
	})

	if duplicate {
		return order.Order{}, internal.NewConflictError(
			fmt.Sprintf("order id %d already exists", dto.ID), internal.ErrCodeDuplicateID)
	}

	s.logger.Info("order created",
		"order_id", created.ID,
		"order_number", created.OrderNumber,
		"total", created.Total)
	return created, nil
}

func (s *Service) Update(ctx context.Context, id int64, dto UpdateOrderDTO) (order.Order, internal.Outcome) {
	var (
		updated order.Order
		outcome = internal.OutcomeNotFound
	)
	actor := internal.ActorName(ctx)
	s.store.Update(ctx, func(st *store.State) []storage.Key {
		o := st.FindOrder(id)
		if o == nil {
			return nil
		}
		outcome = internal.OutcomeOK
		applyOrderPatch(o, dto)
		notifications.RecordMutation(st, actor, "order", o.ID, "update")
		updated = *o
		return []storage.Key{storage.KeyOrders, storage.KeyActivityLog}
	})

	if !outcome.OK() {
		s.logger.Warn("order not found for update", "order_id", id)
	}
	return updated, outcome
}

func (s *Service) Delete(ctx context.Context, id int64) internal.Outcome {
	outcome := internal.OutcomeNotFound
	actor := internal.ActorName(ctx)
	s.store.Update(ctx, func(st *store.State) []storage.Key {
		for i := range st.Orders {
			if st.Orders[i].ID == id {
				st.Orders = append(st.Orders[:i], st.Orders[i+1:]...)
				outcome = internal.OutcomeOK
				notifications.RecordMutation(st, actor, "order", id, "delete")
				return []storage.Key{storage.KeyOrders, storage.KeyActivityLog}
			}
		}
		return nil
	})

	if !outcome.OK() {
		s.logger.Warn("order not found for delete", "order_id", id)
	}
	return outcome
}

// newOrderNumber derives a short human-readable reference from a random
// UUID, e.g. ORD-9F2C41A7.
func newOrderNumber() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "ORD-" + strings.ToUpper(raw[:8])
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
