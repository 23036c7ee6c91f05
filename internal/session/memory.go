package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	attrs     Attributes
	expiresAt time.Time
}

// MemoryStore is an in-process Store used by tests and by local setups that
// run without Redis. Expiry is checked lazily on Get.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry)}
}

func (s *MemoryStore) Get(_ context.Context, token string) (*Attributes, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[token]
	if !ok {
		return nil, nil
	}
	if time.Now().After(e.expiresAt) {
		delete(s.entries, token)
		return nil, nil
	}
	attrs := e.attrs
	return &attrs, nil
}

func (s *MemoryStore) Set(_ context.Context, token string, attrs *Attributes, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[token] = memoryEntry{attrs: *attrs, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, token)
	return nil
}

var _ Store = (*MemoryStore)(nil)
