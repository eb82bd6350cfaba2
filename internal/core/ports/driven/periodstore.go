package driven

import (
	"context"

	"github.com/custodia-labs/boardpack/internal/core/domain"
)

// PeriodStore persists periods.
type PeriodStore interface {
	// Create stores a new period. Returns domain.ErrAlreadyExists for duplicates.
	Create(ctx context.Context, period domain.Period) error

	// Get retrieves a period by ID.
	Get(ctx context.Context, id domain.PeriodID) (*domain.Period, error)

	// List returns all periods in ascending order.
	List(ctx context.Context) ([]domain.Period, error)

	// SetHistorical updates the historical flag, the only mutable attribute.
	SetHistorical(ctx context.Context, id domain.PeriodID, historical bool) error

	// Delete removes a period. Stores that can see artefacts return
	// domain.ErrPeriodInUse while any reference the period.
	Delete(ctx context.Context, id domain.PeriodID) error
}
