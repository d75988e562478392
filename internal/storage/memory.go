package storage

import (
	"context"
	"sync"

	"leadengine/pkg/platform/sentinel"
)

// InMemoryStore keeps visitor state in a map. It backs tests and single-node
// development runs.
type InMemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{values: make(map[string]string)}
}

func (s *InMemoryStore) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if v, ok := s.values[key]; ok {
		return v, nil
	}
	return "", sentinel.ErrNotFound
}

func (s *InMemoryStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

// Len returns the number of stored keys across all scopes.
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}

// Clear wipes every key, the server-side equivalent of a storage clear.
func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = make(map[string]string)
}

// UnavailableStore fails every call with sentinel.ErrUnavailable. It models
// disabled storage (private browsing, quota exceeded) and is used in tests and
// when no backend could be reached.
type UnavailableStore struct{}

func (UnavailableStore) Get(context.Context, string) (string, error) {
	return "", sentinel.ErrUnavailable
}

func (UnavailableStore) Set(context.Context, string, string) error {
	return sentinel.ErrUnavailable
}

func (UnavailableStore) Delete(context.Context, string) error {
	return sentinel.ErrUnavailable
}
