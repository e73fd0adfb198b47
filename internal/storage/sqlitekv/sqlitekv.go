package sqlitekv

import (
	"context"
	"errors"
	"time"

	"github.com/rahayucraft/studio-management/internal/storage"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type collectionRow struct {
	Key       string    `gorm:"primaryKey;column:key"`
	Doc       []byte    `gorm:"column:doc;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (collectionRow) TableName() string {
	return "collections"
}

// Repository persists each collection as one JSON document in a sqlite
// file, keyed by collection name.
type Repository struct {
	db *gorm.DB
}

func New(path string) (*Repository, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&collectionRow{}); err != nil {
		return nil, err
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Load(ctx context.Context, key storage.Key) ([]byte, bool, error) {
	var row collectionRow
	err := r.db.WithContext(ctx).Where("key = ?", string(key)).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return row.Doc, true, nil
}

func (r *Repository) Save(ctx context.Context, key storage.Key, doc []byte) error {
	row := collectionRow{Key: string(key), Doc: doc, UpdatedAt: time.Now()}
	return r.db.WithContext(ctx).Save(&row).Error
}

func (r *Repository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
