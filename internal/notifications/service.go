package notifications

import (
	"context"
	"log/slog"

	"github.com/rahayucraft/studio-management/internal"
	"github.com/rahayucraft/studio-management/internal/core/datamodel/audit"
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

func (s *Service) List(ctx context.Context) []audit.Notification {
	var out []audit.Notification
	s.store.View(func(st *store.State) {
		out = append([]audit.Notification{}, st.Notifications...)
	})
	return out
}

func (s *Service) Add(ctx context.Context, typ, message, link string) {
	s.store.Update(ctx, func(st *store.State) []storage.Key {
		Push(st, typ, message, link)
		return []storage.Key{storage.KeyNotifications}
	})
	s.logger.Info("notification added", "type", typ)
}

func (s *Service) MarkRead(ctx context.Context, id string) internal.Outcome {
	outcome := internal.OutcomeNotFound
	s.store.Update(ctx, func(st *store.State) []storage.Key {
		for i := range st.Notifications {
			if st.Notifications[i].ID == id {
				st.Notifications[i].Read = true
				outcome = internal.OutcomeOK
				return []storage.Key{storage.KeyNotifications}
			}
		}
		return nil
	})
	if !outcome.OK() {
		s.logger.Debug("notification not found for mark read", "id", id)
	}
	return outcome
}

func (s *Service) Clear(ctx context.Context) {
	s.store.Update(ctx, func(st *store.State) []storage.Key {
		st.Notifications = []audit.Notification{}
		return []storage.Key{storage.KeyNotifications}
	})
	s.logger.Info("notifications cleared")
}

func (s *Service) Activity(ctx context.Context) []audit.Entry {
	var out []audit.Entry
	s.store.View(func(st *store.State) {
		out = append([]audit.Entry{}, st.ActivityLog...)
	})
	return out
}

// LogActivity records an administrative action attributed to the request's
// actor, falling back to the System label when unauthenticated.
func (s *Service) LogActivity(ctx context.Context, action, details, kind string) {
	actor := internal.ActorName(ctx)
	s.store.Update(ctx, func(st *store.State) []storage.Key {
		Record(st, actor, action, details, kind)
		return []storage.Key{storage.KeyActivityLog}
	})
}
