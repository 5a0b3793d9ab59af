package storage

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// kvRecord holds one serialized collection per row. The fallback store keeps
// the whole collection as a single value under a fixed key, mirroring the
// browser-storage layout it replaces.
type kvRecord struct {
	Key   string `gorm:"primaryKey;size:64"`
	Value []byte
}

func (kvRecord) TableName() string { return "kv_records" }

// KVStore is durable key-value storage backed by an embedded SQLite database.
type KVStore struct {
	db *gorm.DB
}

// OpenKVStore opens (creating if needed) the key-value database at path.
func OpenKVStore(path string) (*KVStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, errors.Wrap(err, "could not open key-value store")
	}
	if err := db.AutoMigrate(&kvRecord{}); err != nil {
		return nil, errors.Wrap(err, "key-value store migration failed")
	}
	return &KVStore{db: db}, nil
}

// Get returns the value stored under key, or nil when the key is absent.
func (s *KVStore) Get(ctx context.Context, key string) ([]byte, error) {
	var rec kvRecord
	err := s.db.WithContext(ctx).First(&rec, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "could not read key %q", key)
	}
	return rec.Value, nil
}

// Put stores value under key, replacing any previous value.
func (s *KVStore) Put(ctx context.Context, key string, value []byte) error {
	rec := kvRecord{Key: key, Value: value}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&rec).Error
	if err != nil {
		return errors.Wrapf(err, "could not write key %q", key)
	}
	return nil
}
