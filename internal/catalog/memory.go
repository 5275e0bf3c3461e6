package catalog

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/rozgarmap/district-stats/internal/domain"
)

// MemoryStore is a mutex-guarded in-memory Store, used when no database is
// configured and throughout the test suites. Records keep insertion order.
type MemoryStore struct {
	mu      sync.RWMutex
	records []domain.District
}

// NewMemoryStore creates a MemoryStore preloaded with the given records.
func NewMemoryStore(records ...domain.District) *MemoryStore {
	return &MemoryStore{records: records}
}

func (s *MemoryStore) FindByName(_ context.Context, name string) (*domain.District, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.records {
		if strings.EqualFold(s.records[i].Name, name) {
			d := s.records[i]
			return &d, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) FindByNameInState(_ context.Context, name, state string) (*domain.District, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.records {
		if containsFold(name, s.records[i].Name) && containsFold(s.records[i].State, state) {
			d := s.records[i]
			return &d, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) FindExactInState(_ context.Context, name, state string) (*domain.District, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.records {
		if strings.EqualFold(s.records[i].Name, name) && containsFold(s.records[i].State, state) {
			d := s.records[i]
			return &d, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) ListByState(_ context.Context, state string, limit int) ([]domain.District, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.District
	for i := range s.records {
		if containsFold(s.records[i].State, state) {
			out = append(out, s.records[i])
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (s *MemoryStore) ListNames(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.records))
	for i := range s.records {
		names = append(names, s.records[i].Name)
	}
	sort.Strings(names)
	return names, nil
}

func (s *MemoryStore) ListNamesByState(_ context.Context, state string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var names []string
	for i := range s.records {
		if strings.EqualFold(s.records[i].State, state) {
			names = append(names, s.records[i].Name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (s *MemoryStore) ListStates(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]bool)
	var states []string
	for i := range s.records {
		if !seen[s.records[i].State] {
			seen[s.records[i].State] = true
			states = append(states, s.records[i].State)
		}
	}
	sort.Strings(states)
	return states, nil
}

func (s *MemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}

func (s *MemoryStore) ReplaceAll(_ context.Context, records []domain.District) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append([]domain.District(nil), records...)
	return nil
}

// containsFold reports whether s contains substr, case-insensitively.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
