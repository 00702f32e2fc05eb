package persist

import (
	"context"
	"sync"
)

// MemStore is an in-memory Store. The default when no database is
// configured, and the test double everywhere.
type MemStore struct {
	mu    sync.RWMutex
	slots map[string]map[string][]byte
}

func NewMemStore() *MemStore {
	return &MemStore{slots: make(map[string]map[string][]byte)}
}

func (s *MemStore) Get(_ context.Context, slot, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.slots[slot][key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, true, nil
}

func (s *MemStore) Put(_ context.Context, slot, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := s.slots[slot]
	if m == nil {
		m = make(map[string][]byte)
		s.slots[slot] = m
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	m[key] = cp
	return nil
}

func (s *MemStore) Clear(_ context.Context, slot string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.slots, slot)
	return nil
}
