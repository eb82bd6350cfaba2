package driven

import (
	"context"

	"github.com/custodia-labs/boardpack/internal/core/domain"
)

// RenderFunc renders an agenda once its version is known.
type RenderFunc func(agenda *domain.Agenda) string

// AgendaStore persists agenda versions.
type AgendaStore interface {
	// CreateNextVersion assigns agenda.Version = 1 + max existing version
	// for agenda.PeriodID, sets agenda.Markdown = render(agenda) and inserts
	// it. Reading the maximum and inserting are one atomic step; concurrent
	// callers never receive the same version. render must be pure.
	CreateNextVersion(ctx context.Context, agenda *domain.Agenda, render RenderFunc) error

	// Get retrieves an agenda by ID.
	Get(ctx context.Context, id string) (*domain.Agenda, error)

	// GetVersion retrieves a specific version of a period's agenda.
	GetVersion(ctx context.Context, periodID domain.PeriodID, version int) (*domain.Agenda, error)

	// Latest returns the highest version for a period.
	Latest(ctx context.Context, periodID domain.PeriodID) (*domain.Agenda, error)

	// ListByPeriod returns a period's agendas by ascending version.
	ListByPeriod(ctx context.Context, periodID domain.PeriodID) ([]domain.Agenda, error)

	// Finalize marks an agenda final and records when. Markdown is
	// re-rendered by the caller and stored alongside.
	Finalize(ctx context.Context, agenda *domain.Agenda) error
}
