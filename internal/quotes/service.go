package quotes

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rahayucraft/studio-management/internal"
	"github.com/rahayucraft/studio-management/internal/core/datamodel/quote"
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

func (s *Service) List(ctx context.Context) []quote.Quote {
	var out []quote.Quote
	s.store.View(func(st *store.State) {
		out = append([]quote.Quote{}, st.Quotes...)
	})
	return out
}

func (s *Service) Get(ctx context.Context, id int64) (quote.Quote, internal.Outcome) {
	var (
		found   quote.Quote
		outcome = internal.OutcomeNotFound
	)
	s.store.View(func(st *store.State) {
		if q := st.FindQuote(id); q != nil {
			found = *q
			outcome = internal.OutcomeOK
		}
	})
	return found, outcome
}

func (s *Service) Create(ctx context.Context, dto CreateQuoteDTO) (quote.Quote, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("quote validation failed", "error", err, "quote_id", dto.ID)
		return quote.Quote{}, err
	}

	var (
		created   quote.Quote
		duplicate bool
	)
	actor := internal.ActorName(ctx)
	s.store.Update(ctx, func(st *store.State) []storage.Key {
		if st.FindQuote(dto.ID) != nil {
			duplicate = true
			return nil
		}
		daysLeft := dto.DaysLeft
		if daysLeft == 0 {
			daysLeft = 7
		}
		created = quote.Quote{
			ID:            dto.ID,
			CustomerName:  dto.CustomerName,
			CustomerEmail: dto.CustomerEmail,
			Service:       dto.Service,
			Description:   dto.Description,
			Amount:        dto.Amount,
			Status:        quote.StatusPending,
			DaysLeft:      daysLeft,
			RequestDate:   store.Today(),
		}
		st.Quotes = append(st.Quotes, created)
		notifications.Push(st, "quote",
			fmt.Sprintf("Quote request from %s", created.CustomerName), "/quotes")
		notifications.RecordMutation(st, actor, "quote", created.ID, "create")
		return []storage.Key{storage.KeyQuotes, storage.KeyNotifications, storage.KeyActivityLog}
	})

	if duplicate {
		return quote.Quote{}, internal.NewConflictError(
			fmt.Sprintf("quote id %d already exists", dto.ID), internal.ErrCodeDuplicateID)
	}

	s.logger.Info("quote created", "quote_id", created.ID)
	return created, nil
}

func (s *Service) Update(ctx context.Context, id int64, dto UpdateQuoteDTO) (quote.Quote, internal.Outcome) {
	var (
		updated quote.Quote
		outcome = internal.OutcomeNotFound
	)
	actor := internal.ActorName(ctx)
	s.store.Update(ctx, func(st *store.State) []storage.Key {
		q := st.FindQuote(id)
		if q == nil {
			return nil
		}
		outcome = internal.OutcomeOK
		applyQuotePatch(q, dto)
		notifications.RecordMutation(st, actor, "quote", q.ID, "update")
		updated = *q
		return []storage.Key{storage.KeyQuotes, storage.KeyActivityLog}
	})

	if !outcome.OK() {
		s.logger.Warn("quote not found for update", "quote_id", id)
	}
	return updated, outcome
}

func (s *Service) Delete(ctx context.Context, id int64) internal.Outcome {
	outcome := internal.OutcomeNotFound
	actor := internal.ActorName(ctx)
	s.store.Update(ctx, func(st *store.State) []storage.Key {
		for i := range st.Quotes {
			if st.Quotes[i].ID == id {
				st.Quotes = append(st.Quotes[:i], st.Quotes[i+1:]...)
				outcome = internal.OutcomeOK
				notifications.RecordMutation(st, actor, "quote", id, "delete")
				return []storage.Key{storage.KeyQuotes, storage.KeyActivityLog}
			}
		}
		return nil
	})

	if !outcome.OK() {
		s.logger.Warn("quote not found for delete", "quote_id", id)
	}
	return outcome
}
