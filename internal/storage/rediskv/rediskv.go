package rediskv

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rahayucraft/studio-management/internal/storage"
)

const keyPrefix = "studio:collections:"

// Repository keeps each collection under one redis string key. Values
// never expire; most-recent-write-wins.
type Repository struct {
	client *redis.Client
}

func New(addr string, db int) (*Repository, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, DB: db})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Repository{client: client}, nil
}

func (r *Repository) Load(ctx context.Context, key storage.Key) ([]byte, bool, error) {
	doc, err := r.client.Get(ctx, keyPrefix+string(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return doc, true, nil
}

func (r *Repository) Save(ctx context.Context, key storage.Key, doc []byte) error {
	return r.client.Set(ctx, keyPrefix+string(key), doc, 0).Err()
}

func (r *Repository) Close() error {
	return r.client.Close()
}
