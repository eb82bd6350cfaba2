package driving

import (
	"context"

	"github.com/custodia-labs/boardpack/internal/core/domain"
)

// ActionService tracks action items across periods.
type ActionService interface {
	// Create stores a manually raised action.
	Create(ctx context.Context, action domain.ActionItem) (*domain.ActionItem, error)

	// Get retrieves an action by ID.
	Get(ctx context.Context, id string) (*domain.ActionItem, error)

	// List returns the actions raised in a period.
	List(ctx context.Context, periodID domain.PeriodID) ([]domain.ActionItem, error)

	// UpdateStatus changes an action's status.
	UpdateStatus(ctx context.Context, id string, status domain.ActionStatus) (*domain.ActionItem, error)

	// CarryOver returns outstanding actions from earlier periods in
	// carry-over order.
	CarryOver(ctx context.Context, periodID domain.PeriodID) ([]domain.ActionItem, error)
}
