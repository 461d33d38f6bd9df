package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/phrazzld/fitload/internal/store"
)

// KVStore is a map-backed store.KeyValueStore.
type KVStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// Ensure KVStore implements store.KeyValueStore interface
var _ store.KeyValueStore = (*KVStore)(nil)

// NewKVStore creates an empty KVStore.
func NewKVStore() *KVStore {
	return &KVStore{data: make(map[string][]byte)}
}

// Get implements store.KeyValueStore.Get.
func (s *KVStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.data[key]
	if !ok {
		return nil, fmt.Errorf("%w: key %q", store.ErrNotFound, key)
	}
	return append([]byte(nil), value...), nil
}

// Set implements store.KeyValueStore.Set.
func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = append([]byte(nil), value...)
	return nil
}

// Remove implements store.KeyValueStore.Remove.
func (s *KVStore) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)
	return nil
}
