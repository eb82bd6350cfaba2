package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/boardpack/internal/core/domain"
	"github.com/custodia-labs/boardpack/internal/core/ports/driven"
)

// Ensure PeriodStore implements the interface.
var _ driven.PeriodStore = (*PeriodStore)(nil)

// PeriodStore is an in-memory implementation of driven.PeriodStore.
// It has no view of artefacts; the period service guards deletion.
type PeriodStore struct {
	mu      sync.RWMutex
	periods map[domain.PeriodID]domain.Period
}

// NewPeriodStore creates a new in-memory period store.
func NewPeriodStore() *PeriodStore {
	return &PeriodStore{
		periods: make(map[domain.PeriodID]domain.Period),
	}
}

// Create stores a new period.
func (s *PeriodStore) Create(_ context.Context, period domain.Period) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.periods[period.ID]; exists {
		return domain.ErrAlreadyExists
	}
	s.periods[period.ID] = period
	return nil
}

// Get retrieves a period by ID.
func (s *PeriodStore) Get(_ context.Context, id domain.PeriodID) (*domain.Period, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	period, ok := s.periods[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &period, nil
}

// List returns all periods in ascending order.
func (s *PeriodStore) List(_ context.Context) ([]domain.Period, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Period, 0, len(s.periods))
	for _, period := range s.periods {
		result = append(result, period)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// SetHistorical updates the historical flag.
func (s *PeriodStore) SetHistorical(_ context.Context, id domain.PeriodID, historical bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	period, ok := s.periods[id]
	if !ok {
		return domain.ErrNotFound
	}
	period.Historical = historical
	s.periods[id] = period
	return nil
}

// Delete removes a period.
func (s *PeriodStore) Delete(_ context.Context, id domain.PeriodID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.periods[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.periods, id)
	return nil
}
