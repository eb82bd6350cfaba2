package driving

import (
	"context"

	"github.com/custodia-labs/boardpack/internal/core/domain"
)

// ExtractionOutcome reports the result of extracting one artefact.
type ExtractionOutcome struct {
	ArtefactID string
	Kind       domain.ExtractionKind

	// Extraction is set on success.
	Extraction *domain.Extraction

	// Dropped counts malformed entries removed during normalisation.
	Dropped int

	// Err is the artefact-scoped failure, if any.
	Err error
}

// ExtractionService derives canonical facts from artefact text.
type ExtractionService interface {
	// ExtractArtefact extracts and stores the facts of one artefact,
	// replacing any previous extraction of the same kind.
	ExtractArtefact(ctx context.Context, artefactID string) (*ExtractionOutcome, error)

	// ExtractPeriod extracts every extractable artefact of a period.
	// A failing artefact is reported in its outcome and never aborts the rest.
	ExtractPeriod(ctx context.Context, periodID domain.PeriodID) ([]ExtractionOutcome, error)

	// ListByPeriod returns a period's stored extractions.
	ListByPeriod(ctx context.Context, periodID domain.PeriodID) ([]domain.Extraction, error)
}
