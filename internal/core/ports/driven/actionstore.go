package driven

import (
	"context"

	"github.com/custodia-labs/boardpack/internal/core/domain"
)

// ActionStore persists action items.
type ActionStore interface {
	// Save stores or updates an action item.
	Save(ctx context.Context, action *domain.ActionItem) error

	// Get retrieves an action item by ID.
	Get(ctx context.Context, id string) (*domain.ActionItem, error)

	// ListByOrigin returns actions raised in a period.
	ListByOrigin(ctx context.Context, periodID domain.PeriodID) ([]domain.ActionItem, error)

	// ListOpenBefore returns actions not done whose origin period is
	// strictly before periodID. Order is unspecified.
	ListOpenBefore(ctx context.Context, periodID domain.PeriodID) ([]domain.ActionItem, error)

	// ReplaceForArtefact deletes actions sourced from an artefact and
	// stores the given ones in their place.
	ReplaceForArtefact(ctx context.Context, artefactID string, actions []domain.ActionItem) error

	// DeleteByArtefact removes actions sourced from an artefact.
	DeleteByArtefact(ctx context.Context, artefactID string) error
}
