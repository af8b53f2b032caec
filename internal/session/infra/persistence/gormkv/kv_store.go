package gormkv

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"GeoCoin/internal/session/port"
)

type KVStore struct {
	db *gorm.DB
}

// NewKVStore 会自动建表。
func NewKVStore(db *gorm.DB) (*KVStore, error) {
	if err := db.AutoMigrate(&KVEntry{}); err != nil {
		return nil, err
	}
	return &KVStore{db: db}, nil
}

func (s *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	var m KVEntry
	err := s.db.WithContext(ctx).Where("k = ?", key).First(&m).Error
	switch {
	case err == nil:
		return m.Value, true, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return "", false, nil
	default:
		return "", false, err
	}
}

// Set upsert：mysql 走 ON DUPLICATE KEY UPDATE，postgres 走 ON CONFLICT。
func (s *KVStore) Set(ctx context.Context, key, value string) error {
	return upsert(s.db.WithContext(ctx), key, value)
}

// SetMany 所有 key 在一个事务里 upsert，中途失败整体回滚。
func (s *KVStore) SetMany(ctx context.Context, entries []port.Entry) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, e := range entries {
			if err := upsert(tx, e.Key, e.Value); err != nil {
				return err
			}
		}
		return nil
	})
}

func upsert(db *gorm.DB, key, value string) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "k"}},
		DoUpdates: clause.AssignmentColumns([]string{"v", "updated_at"}),
	}).Create(&KVEntry{Key: key, Value: value}).Error
}

func (s *KVStore) Close(ctx context.Context) error {
	_ = ctx
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
