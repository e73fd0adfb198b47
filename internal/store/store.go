package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rahayucraft/studio-management/internal/core/datamodel/user"
	"github.com/rahayucraft/studio-management/internal/storage"
)

// Store is the domain store: the single owner of all business collections.
// It is constructed once per process, hydrated from durable storage, and
// injected into the domain services. Mutations run under one writer lock;
// each touched collection is persisted best-effort after the mutation, so
// "succeeded in memory" and "survived to storage" are separate guarantees.
type Store struct {
	mu      sync.RWMutex
	state   State
	repo    storage.Repository
	logger  *slog.Logger
	metrics *Metrics
}

type Option func(*Store)

func WithMetrics(m *Metrics) Option {
	return func(s *Store) { s.metrics = m }
}

// New hydrates every collection from the repository, seeding any missing
// one from the fixed default dataset.
func New(ctx context.Context, repo storage.Repository, logger *slog.Logger, opts ...Option) (*Store, error) {
	s := &Store{
		repo:   repo,
		logger: logger,
		state:  DefaultState(),
	}
	for _, opt := range opts {
		opt(s)
	}

	for _, key := range storage.AllKeys() {
		doc, ok, err := repo.Load(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("load collection %s: %w", key, err)
		}
		if !ok {
			logger.Debug("collection absent, keeping seed data", "key", key)
			continue
		}
		if err := s.state.unmarshalCollection(key, doc); err != nil {
			// A corrupt document falls back to the seed for that
			// collection rather than failing startup.
			logger.Error("failed to decode stored collection, using defaults",
				"key", key, "error", err)
		}
	}

	logger.Info("domain store hydrated",
		"users", len(s.state.Users),
		"products", len(s.state.Products),
		"workshops", len(s.state.Workshops),
		"orders", len(s.state.Orders))

	return s, nil
}

// NewFromDefaults skips hydration and starts from the seed dataset. The
// seeder uses it to reset durable storage to a known state.
func NewFromDefaults(repo storage.Repository, logger *slog.Logger) *Store {
	return &Store{
		repo:   repo,
		logger: logger,
		state:  DefaultState(),
	}
}

// Update runs fn under the writer lock. fn returns the keys of every
// collection it touched; those are persisted before the lock is released.
// Persistence failures are logged and ignored.
func (s *Store) Update(ctx context.Context, fn func(st *State) []storage.Key) {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := fn(&s.state)
	s.persist(ctx, keys)
}

// View runs fn under the reader lock. fn must not mutate the state.
func (s *Store) View(fn func(st *State)) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fn(&s.state)
}

// PersistAll rewrites every collection, used by the seeder.
func (s *Store) PersistAll(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.persist(ctx, storage.AllKeys())
}

func (s *Store) persist(ctx context.Context, keys []storage.Key) {
	for _, key := range keys {
		doc, err := s.state.marshalCollection(key)
		if err != nil {
			s.logger.Error("failed to encode collection", "key", key, "error", err)
			s.observePersist(key, false)
			continue
		}
		if err := s.repo.Save(ctx, key, doc); err != nil {
			// Best-effort: the in-memory mutation stands.
			s.logger.Error("failed to persist collection", "key", key, "error", err)
			s.observePersist(key, false)
			continue
		}
		s.observePersist(key, true)
	}
}

func (s *Store) observePersist(key storage.Key, ok bool) {
	if s.metrics != nil {
		s.metrics.ObservePersist(string(key), ok)
	}
}

func (st *State) marshalCollection(key storage.Key) ([]byte, error) {
	v, err := st.collectionRef(key)
	if err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

func (st *State) unmarshalCollection(key storage.Key, doc []byte) error {
	v, err := st.collectionRef(key)
	if err != nil {
		return err
	}
	return json.Unmarshal(doc, v)
}

func (st *State) collectionRef(key storage.Key) (interface{}, error) {
	switch key {
	case storage.KeyUsers:
		return &st.Users, nil
	case storage.KeyEmployees:
		return &st.Employees, nil
	case storage.KeyProducts:
		return &st.Products, nil
	case storage.KeySuppliers:
		return &st.Suppliers, nil
	case storage.KeyWorkshops:
		return &st.Workshops, nil
	case storage.KeyOrders:
		return &st.Orders, nil
	case storage.KeyQuotes:
		return &st.Quotes, nil
	case storage.KeyReturns:
		return &st.Returns, nil
	case storage.KeyBlogPosts:
		return &st.BlogPosts, nil
	case storage.KeyRolePermissions:
		return &st.RolePermissions, nil
	case storage.KeyCurrentUser:
		return &st.CurrentUser, nil
	case storage.KeyNotifications:
		return &st.Notifications, nil
	case storage.KeyActivityLog:
		return &st.ActivityLog, nil
	default:
		return nil, fmt.Errorf("unknown collection key %q", key)
	}
}

// CurrentUser returns a copy of the active session snapshot, if any.
func (s *Store) CurrentUser() (user.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state.CurrentUser == nil {
		return user.User{}, false
	}
	return *s.state.CurrentUser, true
}

// Today is the date stamp format used across the collections.
func Today() string {
	return time.Now().Format("2006-01-02")
}
