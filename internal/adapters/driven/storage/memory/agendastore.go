package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/custodia-labs/boardpack/internal/core/domain"
	"github.com/custodia-labs/boardpack/internal/core/ports/driven"
)

// Ensure AgendaStore implements the interface.
var _ driven.AgendaStore = (*AgendaStore)(nil)

// AgendaStore is an in-memory implementation of driven.AgendaStore.
// Version allocation happens under the write lock.
type AgendaStore struct {
	mu      sync.RWMutex
	agendas map[string]domain.Agenda
}

// NewAgendaStore creates a new in-memory agenda store.
func NewAgendaStore() *AgendaStore {
	return &AgendaStore{
		agendas: make(map[string]domain.Agenda),
	}
}

// CreateNextVersion assigns the next version for the period and stores the agenda.
func (s *AgendaStore) CreateNextVersion(_ context.Context, agenda *domain.Agenda, render driven.RenderFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.agendas[agenda.ID]; exists {
		return domain.ErrAlreadyExists
	}
	var versions []int
	for _, a := range s.agendas {
		if a.PeriodID == agenda.PeriodID {
			versions = append(versions, a.Version)
		}
	}
	agenda.Version = domain.NextVersion(versions)
	if render != nil {
		agenda.Markdown = render(agenda)
	}
	s.agendas[agenda.ID] = *agenda
	return nil
}

// Get retrieves an agenda by ID.
func (s *AgendaStore) Get(_ context.Context, id string) (*domain.Agenda, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	agenda, ok := s.agendas[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &agenda, nil
}

// GetVersion retrieves one version of a period's agenda.
func (s *AgendaStore) GetVersion(_ context.Context, periodID domain.PeriodID, version int) (*domain.Agenda, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.agendas {
		if a.PeriodID == periodID && a.Version == version {
			return &a, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Latest returns the highest version for a period.
func (s *AgendaStore) Latest(ctx context.Context, periodID domain.PeriodID) (*domain.Agenda, error) {
	list, err := s.ListByPeriod(ctx, periodID)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, domain.ErrNotFound
	}
	latest := list[len(list)-1]
	return &latest, nil
}

// ListByPeriod returns a period's agendas by ascending version.
func (s *AgendaStore) ListByPeriod(_ context.Context, periodID domain.PeriodID) ([]domain.Agenda, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []domain.Agenda
	for _, a := range s.agendas {
		if a.PeriodID == periodID {
			result = append(result, a)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Version < result[j].Version })
	return result, nil
}

// Finalize marks an agenda final.
func (s *AgendaStore) Finalize(_ context.Context, agenda *domain.Agenda) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.agendas[agenda.ID]
	if !ok {
		return domain.ErrNotFound
	}
	stored.Status = domain.AgendaFinal
	stored.Markdown = agenda.Markdown
	if agenda.FinalizedAt != nil {
		stored.FinalizedAt = agenda.FinalizedAt
	} else {
		now := time.Now()
		stored.FinalizedAt = &now
	}
	s.agendas[agenda.ID] = stored
	return nil
}
