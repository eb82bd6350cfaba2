package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/boardpack/internal/core/domain"
	"github.com/custodia-labs/boardpack/internal/core/ports/driven"
)

// Ensure ExtractionStore implements the interface.
var _ driven.ExtractionStore = (*ExtractionStore)(nil)

// ExtractionStore is an in-memory implementation of driven.ExtractionStore.
// Extractions are keyed by artefact and kind.
type ExtractionStore struct {
	mu          sync.RWMutex
	extractions map[extractionKey]domain.Extraction
}

type extractionKey struct {
	artefactID string
	kind       domain.ExtractionKind
}

// NewExtractionStore creates a new in-memory extraction store.
func NewExtractionStore() *ExtractionStore {
	return &ExtractionStore{
		extractions: make(map[extractionKey]domain.Extraction),
	}
}

// Save inserts an extraction, replacing one with the same artefact and kind.
func (s *ExtractionStore) Save(_ context.Context, extraction *domain.Extraction) error {
	if err := extraction.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.extractions[extractionKey{extraction.ArtefactID, extraction.Kind}] = *extraction
	return nil
}

// ListByPeriod returns all extractions for a period.
func (s *ExtractionStore) ListByPeriod(_ context.Context, periodID domain.PeriodID) ([]domain.Extraction, error) {
	return s.filter(func(e domain.Extraction) bool {
		return e.PeriodID == periodID
	}), nil
}

// ListByPeriodAndKind returns a period's extractions of one kind.
func (s *ExtractionStore) ListByPeriodAndKind(
	_ context.Context,
	periodID domain.PeriodID,
	kind domain.ExtractionKind,
) ([]domain.Extraction, error) {
	return s.filter(func(e domain.Extraction) bool {
		return e.PeriodID == periodID && e.Kind == kind
	}), nil
}

// ListByPeriods returns extractions of the given kinds for any of the periods.
func (s *ExtractionStore) ListByPeriods(
	_ context.Context,
	periodIDs []domain.PeriodID,
	kinds []domain.ExtractionKind,
) ([]domain.Extraction, error) {
	periods := make(map[domain.PeriodID]bool, len(periodIDs))
	for _, p := range periodIDs {
		periods[p] = true
	}
	wanted := make(map[domain.ExtractionKind]bool, len(kinds))
	for _, k := range kinds {
		wanted[k] = true
	}
	return s.filter(func(e domain.Extraction) bool {
		return periods[e.PeriodID] && (len(wanted) == 0 || wanted[e.Kind])
	}), nil
}

// DeleteByArtefact removes every extraction of an artefact.
func (s *ExtractionStore) DeleteByArtefact(_ context.Context, artefactID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.extractions {
		if key.artefactID == artefactID {
			delete(s.extractions, key)
		}
	}
	return nil
}

// filter returns matching extractions ordered by period, creation time and ID.
func (s *ExtractionStore) filter(match func(domain.Extraction) bool) []domain.Extraction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []domain.Extraction
	for _, e := range s.extractions {
		if match(e) {
			result = append(result, e)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if a.PeriodID != b.PeriodID {
			return a.PeriodID < b.PeriodID
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	return result
}
