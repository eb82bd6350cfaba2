package driven

import (
	"context"

	"github.com/custodia-labs/boardpack/internal/core/domain"
)

// ExtractionStore persists canonical extractions keyed by period,
// artefact and kind. Reads observe prior writes within a request.
type ExtractionStore interface {
	// Save inserts an extraction, replacing any existing one for the
	// same artefact and kind.
	Save(ctx context.Context, extraction *domain.Extraction) error

	// ListByPeriod returns all extractions for a period.
	ListByPeriod(ctx context.Context, periodID domain.PeriodID) ([]domain.Extraction, error)

	// ListByPeriodAndKind returns a period's extractions of one kind.
	ListByPeriodAndKind(
		ctx context.Context,
		periodID domain.PeriodID,
		kind domain.ExtractionKind,
	) ([]domain.Extraction, error)

	// ListByPeriods returns extractions of the given kinds for any of the
	// periods. An empty kinds slice means all kinds.
	ListByPeriods(
		ctx context.Context,
		periodIDs []domain.PeriodID,
		kinds []domain.ExtractionKind,
	) ([]domain.Extraction, error)

	// DeleteByArtefact removes every extraction of an artefact.
	DeleteByArtefact(ctx context.Context, artefactID string) error
}
