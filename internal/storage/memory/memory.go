package memory

import (
	"context"
	"sync"

	"github.com/rahayucraft/studio-management/internal/storage"
)

// Repository keeps collections in a process-local map. Used in tests and
// as the fallback driver.
type Repository struct {
	mu   sync.RWMutex
	docs map[storage.Key][]byte
}

func New() *Repository {
	return &Repository{docs: make(map[storage.Key][]byte)}
}

func (r *Repository) Load(_ context.Context, key storage.Key) ([]byte, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, ok := r.docs[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(doc))
	copy(out, doc)
	return out, true, nil
}

func (r *Repository) Save(_ context.Context, key storage.Key, doc []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := make([]byte, len(doc))
	copy(stored, doc)
	r.docs[key] = stored
	return nil
}

func (r *Repository) Close() error {
	return nil
}
