package memory

import (
	"context"
	"sync"

	"techtranslator/internal/repository"
)

var _ repository.KVStore = (*KVStore)(nil)

// KVStore keeps values in process memory. Values do not survive a restart.
type KVStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewKVStore creates an empty in-memory store
func NewKVStore() *KVStore {
	return &KVStore{values: make(map[string]string)}
}

// Get returns the value stored under key
func (s *KVStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]
	return value, ok, nil
}

// Set stores value under key
func (s *KVStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	return nil
}

// Delete removes key
func (s *KVStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, key)
	return nil
}
