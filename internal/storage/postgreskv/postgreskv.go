package postgreskv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/rahayucraft/studio-management/internal/storage"
)

// Repository stores one JSON document per collection in the collections
// table created by the goose migrations.
type Repository struct {
	db *sqlx.DB
}

func New(dsn string) (*Repository, error) {
	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Load(ctx context.Context, key storage.Key) ([]byte, bool, error) {
	var doc []byte
	err := r.db.GetContext(ctx, &doc, "SELECT doc FROM collections WHERE key = $1", string(key))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return doc, true, nil
}

func (r *Repository) Save(ctx context.Context, key storage.Key, doc []byte) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO collections (key, doc, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET doc = EXCLUDED.doc, updated_at = now()
`, string(key), doc)
	return err
}

func (r *Repository) Close() error {
	return r.db.Close()
}
