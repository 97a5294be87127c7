package repository

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// MemoryStore is an in-process KeyValueStore. It does not survive restarts
// and is used for tests and the "memory" storage driver.
type MemoryStore struct {
	data   map[string]string
	mu     sync.RWMutex
	logger *zap.Logger
}

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore(logger *zap.Logger) *MemoryStore {
	return &MemoryStore{
		data:   make(map[string]string),
		logger: logger,
	}
}

// Get returns the value stored under key
func (s *MemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := validateKey(key); err != nil {
		return "", false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.data[key]
	return value, ok, nil
}

// Set stores value under key, replacing any previous value
func (s *MemoryStore) Set(ctx context.Context, key, value string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = value

	if s.logger != nil {
		s.logger.Debug("memory store: value written",
			zap.String("key", key),
			zap.Int("size_bytes", len(value)),
		)
	}

	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)
	return nil
}

// Keys returns all stored keys in sorted order
func (s *MemoryStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}

// Clear removes every key
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = make(map[string]string)
}
