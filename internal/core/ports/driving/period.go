package driving

import (
	"context"

	"github.com/custodia-labs/boardpack/internal/core/domain"
)

// PeriodService manages board periods.
type PeriodService interface {
	// Create adds a period. Returns domain.ErrAlreadyExists for duplicates.
	Create(ctx context.Context, id domain.PeriodID, historical bool, createdBy string) (*domain.Period, error)

	// Get retrieves a period by ID.
	Get(ctx context.Context, id domain.PeriodID) (*domain.Period, error)

	// List returns all periods in ascending order.
	List(ctx context.Context) ([]domain.Period, error)

	// SetHistorical updates the historical flag.
	SetHistorical(ctx context.Context, id domain.PeriodID, historical bool) error

	// Delete removes a period with no artefacts.
	Delete(ctx context.Context, id domain.PeriodID) error

	// Current returns the period containing "now" in the reference zone.
	Current() domain.PeriodID
}
