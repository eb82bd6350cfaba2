package driving

import (
	"context"

	"github.com/custodia-labs/boardpack/internal/core/domain"
)

// ArtefactService manages the documents attached to a period.
type ArtefactService interface {
	// Upload stores a file and extracts its text. A text extraction failure
	// does not fail the upload: the artefact is kept with ParseError set.
	Upload(ctx context.Context, periodID domain.PeriodID, kind domain.ArtefactKind, file domain.RawFile) (*domain.Artefact, error)

	// AddNote stores an authored board note as a notes artefact.
	AddNote(ctx context.Context, periodID domain.PeriodID, text string) (*domain.Artefact, error)

	// Get retrieves an artefact by ID.
	Get(ctx context.Context, id string) (*domain.Artefact, error)

	// ListByPeriod returns a period's artefacts.
	ListByPeriod(ctx context.Context, periodID domain.PeriodID) ([]domain.Artefact, error)

	// Delete removes an artefact with its extractions and sourced actions.
	Delete(ctx context.Context, id string) error
}
