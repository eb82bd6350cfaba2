package services

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/boardpack/internal/core/domain"
	"github.com/custodia-labs/boardpack/internal/core/ports/driven"
	"github.com/custodia-labs/boardpack/internal/core/ports/driving"
)

// Ensure PeriodService implements the interface.
var _ driving.PeriodService = (*PeriodService)(nil)

// PeriodService manages board periods.
type PeriodService struct {
	periodStore   driven.PeriodStore
	artefactStore driven.ArtefactStore
	location      *time.Location
	now           func() time.Time
}

// NewPeriodService creates a new period service. loc is the reference
// zone that decides which month "now" falls in; nil means UTC.
func NewPeriodService(
	periodStore driven.PeriodStore,
	artefactStore driven.ArtefactStore,
	loc *time.Location,
) *PeriodService {
	if loc == nil {
		loc = time.UTC
	}
	return &PeriodService{
		periodStore:   periodStore,
		artefactStore: artefactStore,
		location:      loc,
		now:           time.Now,
	}
}

// Create adds a period.
func (s *PeriodService) Create(
	ctx context.Context,
	id domain.PeriodID,
	historical bool,
	createdBy string,
) (*domain.Period, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	period := domain.Period{
		ID:         id,
		Label:      domain.FormatLabel(id),
		Historical: historical,
		CreatedBy:  createdBy,
		CreatedAt:  s.now(),
	}
	if err := s.periodStore.Create(ctx, period); err != nil {
		return nil, fmt.Errorf("create period %s: %w", id, err)
	}
	return &period, nil
}

// Get retrieves a period by ID.
func (s *PeriodService) Get(ctx context.Context, id domain.PeriodID) (*domain.Period, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return s.periodStore.Get(ctx, id)
}

// List returns all periods in ascending order.
func (s *PeriodService) List(ctx context.Context) ([]domain.Period, error) {
	return s.periodStore.List(ctx)
}

// SetHistorical updates the historical flag.
func (s *PeriodService) SetHistorical(ctx context.Context, id domain.PeriodID, historical bool) error {
	if err := id.Validate(); err != nil {
		return err
	}
	return s.periodStore.SetHistorical(ctx, id, historical)
}

// Delete removes a period. Refused while artefacts reference it.
func (s *PeriodService) Delete(ctx context.Context, id domain.PeriodID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	n, err := s.artefactStore.CountByPeriod(ctx, id)
	if err != nil {
		return fmt.Errorf("count artefacts: %w", err)
	}
	if n > 0 {
		return fmt.Errorf("%w: %s has %d artefact(s)", domain.ErrPeriodInUse, id, n)
	}
	return s.periodStore.Delete(ctx, id)
}

// Current returns the period containing "now" in the reference zone.
func (s *PeriodService) Current() domain.PeriodID {
	return domain.CurrentPeriod(s.now(), s.location)
}

// ensurePeriod returns the period or a wrapped ErrNotFound.
func ensurePeriod(ctx context.Context, store driven.PeriodStore, id domain.PeriodID) (*domain.Period, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	p, err := store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("period %s: %w", id, err)
	}
	return p, nil
}
