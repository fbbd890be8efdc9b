package registration

import (
	"context"
	"fmt"
	"sync"

	domain "ticclub/internal/domain/registration"
)

// MemoryStore keeps registrations for the lifetime of the process.
type MemoryStore struct {
	mu    sync.RWMutex
	items []domain.Registration
	ids   map[string]bool
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{ids: make(map[string]bool)}
}

// Add appends a registration.
// PRE: value has a non-empty unique ID
// POST: value is the last element returned by List
func (s *MemoryStore) Add(_ context.Context, value domain.Registration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ids[value.ID] {
		return fmt.Errorf("registration %s already exists", value.ID)
	}
	value.Positions = append([]string(nil), value.Positions...)
	s.items = append(s.items, value)
	s.ids[value.ID] = true
	return nil
}

// List returns a copy of all registrations in insertion order.
func (s *MemoryStore) List(_ context.Context) ([]domain.Registration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Registration, len(s.items))
	copy(out, s.items)
	return out, nil
}

// Count returns the number of stored registrations.
func (s *MemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items), nil
}
