package bolt

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"GeoCoin/internal/session/port"
)

// KVStore 把会话 key 存进一个 bolt bucket，默认后端。
type KVStore struct {
	db     *bbolt.DB
	bucket []byte
}

// NewKVStore bucket 需已存在（infrastructure/bolt.Open 会创建）。
func NewKVStore(db *bbolt.DB, bucket string) *KVStore {
	return &KVStore{db: db, bucket: []byte(bucket)}
}

func (s *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	var (
		value string
		ok    bool
	)
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(s.bucket)
		if b == nil {
			return fmt.Errorf("bolt bucket %q not found", s.bucket)
		}
		// Get 返回的切片只在事务内有效，这里转成 string 拷贝出来
		if v := b.Get([]byte(key)); v != nil {
			value, ok = string(v), true
		}
		return nil
	})
	return value, ok, err
}

func (s *KVStore) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(s.bucket)
		if err != nil {
			return err
		}
		return b.Put([]byte(key), []byte(value))
	})
}

// SetMany 在同一个 bolt 写事务里写入全部 key。
func (s *KVStore) SetMany(ctx context.Context, entries []port.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(s.bucket)
		if err != nil {
			return err
		}
		for _, e := range entries {
			if err := b.Put([]byte(e.Key), []byte(e.Value)); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *KVStore) Close(ctx context.Context) error {
	_ = ctx
	return s.db.Close()
}
