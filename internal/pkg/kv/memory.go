package kv

import "sync"

// MemoryStore keeps everything in a map. It is the test backend and the
// fallback when no persistence is configured. The mutex keeps individual
// calls race-free; it deliberately does not serialize read-modify-write
// sequences spanning multiple calls.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemory() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

func (s *MemoryStore) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *MemoryStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

func (s *MemoryStore) Close() error { return nil }
