package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/boardpack/internal/core/domain"
	"github.com/custodia-labs/boardpack/internal/core/ports/driven"
)

// Ensure ActionStore implements the interface.
var _ driven.ActionStore = (*ActionStore)(nil)

// ActionStore is an in-memory implementation of driven.ActionStore.
type ActionStore struct {
	mu      sync.RWMutex
	actions map[string]domain.ActionItem
}

// NewActionStore creates a new in-memory action store.
func NewActionStore() *ActionStore {
	return &ActionStore{
		actions: make(map[string]domain.ActionItem),
	}
}

// Save stores or updates an action item.
func (s *ActionStore) Save(_ context.Context, action *domain.ActionItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.actions[action.ID] = *action
	return nil
}

// Get retrieves an action item by ID.
func (s *ActionStore) Get(_ context.Context, id string) (*domain.ActionItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	action, ok := s.actions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &action, nil
}

// ListByOrigin returns actions raised in a period, oldest first.
func (s *ActionStore) ListByOrigin(_ context.Context, periodID domain.PeriodID) ([]domain.ActionItem, error) {
	return s.filter(func(a domain.ActionItem) bool {
		return a.OriginPeriod == periodID
	}), nil
}

// ListOpenBefore returns actions not done raised before periodID.
func (s *ActionStore) ListOpenBefore(_ context.Context, periodID domain.PeriodID) ([]domain.ActionItem, error) {
	return s.filter(func(a domain.ActionItem) bool {
		return a.OriginPeriod.Before(periodID) && a.CarriesOver()
	}), nil
}

// ReplaceForArtefact swaps the actions sourced from an artefact.
func (s *ActionStore) ReplaceForArtefact(_ context.Context, artefactID string, actions []domain.ActionItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleteByArtefact(artefactID)
	for _, a := range actions {
		s.actions[a.ID] = a
	}
	return nil
}

// DeleteByArtefact removes actions sourced from an artefact.
func (s *ActionStore) DeleteByArtefact(_ context.Context, artefactID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleteByArtefact(artefactID)
	return nil
}

func (s *ActionStore) deleteByArtefact(artefactID string) {
	for id, a := range s.actions {
		if a.SourceArtefactID != nil && *a.SourceArtefactID == artefactID {
			delete(s.actions, id)
		}
	}
}

func (s *ActionStore) filter(match func(domain.ActionItem) bool) []domain.ActionItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []domain.ActionItem
	for _, a := range s.actions {
		if match(a) {
			result = append(result, a)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result
}
