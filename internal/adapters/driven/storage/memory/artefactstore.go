package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/boardpack/internal/core/domain"
	"github.com/custodia-labs/boardpack/internal/core/ports/driven"
)

// Ensure ArtefactStore implements the interface.
var _ driven.ArtefactStore = (*ArtefactStore)(nil)

// ArtefactStore is an in-memory implementation of driven.ArtefactStore.
type ArtefactStore struct {
	mu        sync.RWMutex
	artefacts map[string]domain.Artefact
}

// NewArtefactStore creates a new in-memory artefact store.
func NewArtefactStore() *ArtefactStore {
	return &ArtefactStore{
		artefacts: make(map[string]domain.Artefact),
	}
}

// Save stores or updates an artefact.
func (s *ArtefactStore) Save(_ context.Context, artefact *domain.Artefact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.artefacts[artefact.ID] = *artefact
	return nil
}

// Get retrieves an artefact by ID.
func (s *ArtefactStore) Get(_ context.Context, id string) (*domain.Artefact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	artefact, ok := s.artefacts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &artefact, nil
}

// ListByPeriod returns a period's artefacts ordered by creation time.
func (s *ArtefactStore) ListByPeriod(_ context.Context, periodID domain.PeriodID) ([]domain.Artefact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []domain.Artefact
	for _, a := range s.artefacts {
		if a.PeriodID == periodID {
			result = append(result, a)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// CountByPeriod returns the number of artefacts under a period.
func (s *ArtefactStore) CountByPeriod(_ context.Context, periodID domain.PeriodID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, a := range s.artefacts {
		if a.PeriodID == periodID {
			n++
		}
	}
	return n, nil
}

// Delete removes an artefact.
func (s *ArtefactStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.artefacts, id)
	return nil
}
