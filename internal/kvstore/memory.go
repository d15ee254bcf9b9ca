package kvstore

import (
	"context"
	"sync"
)

// MemoryStore keeps values in process memory. Values are copied on the way
// in and out so callers cannot mutate stored bytes.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: map[string][]byte{}}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, ErrKeyRequired
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneBytes(value), nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	if key == "" {
		return ErrKeyRequired
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = cloneBytes(value)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	if key == "" {
		return ErrKeyRequired
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

// SetMany writes every entry under a single lock.
func (s *MemoryStore) SetMany(_ context.Context, entries map[string][]byte) error {
	for key := range entries {
		if key == "" {
			return ErrKeyRequired
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, value := range entries {
		s.values[key] = cloneBytes(value)
	}
	return nil
}

// Snapshot returns a copy of every stored entry.
func (s *MemoryStore) Snapshot() map[string][]byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string][]byte, len(s.values))
	for key, value := range s.values {
		out[key] = cloneBytes(value)
	}
	return out
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
