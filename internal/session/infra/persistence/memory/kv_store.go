package memory

import (
	"context"
	"sync"

	"GeoCoin/internal/session/port"
)

// KVStore 进程内存储，测试和 store.driver=memory 时使用。
type KVStore struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewKVStore() *KVStore {
	return &KVStore{data: make(map[string]string)}
}

func (s *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *KVStore) Set(ctx context.Context, key, value string) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *KVStore) SetMany(ctx context.Context, entries []port.Entry) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range entries {
		s.data[e.Key] = e.Value
	}
	return nil
}

// Delete 测试用：模拟缺失的 key。
func (s *KVStore) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
}

func (s *KVStore) Close(ctx context.Context) error {
	_ = ctx
	return nil
}
