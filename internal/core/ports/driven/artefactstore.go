package driven

import (
	"context"

	"github.com/custodia-labs/boardpack/internal/core/domain"
)

// ArtefactStore persists artefacts.
type ArtefactStore interface {
	// Save stores or updates an artefact.
	Save(ctx context.Context, artefact *domain.Artefact) error

	// Get retrieves an artefact by ID.
	Get(ctx context.Context, id string) (*domain.Artefact, error)

	// ListByPeriod returns a period's artefacts ordered by creation time.
	ListByPeriod(ctx context.Context, periodID domain.PeriodID) ([]domain.Artefact, error)

	// CountByPeriod returns the number of artefacts under a period.
	CountByPeriod(ctx context.Context, periodID domain.PeriodID) (int, error)

	// Delete removes an artefact. Callers remove dependent extractions
	// and actions first; stores with foreign keys may cascade as well.
	Delete(ctx context.Context, id string) error
}
