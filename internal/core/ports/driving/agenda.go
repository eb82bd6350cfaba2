package driving

import (
	"context"

	"github.com/custodia-labs/boardpack/internal/core/domain"
)

// AgendaService generates and manages agenda versions.
type AgendaService interface {
	// Generate assembles, drafts, checks and stores a new agenda version.
	// Nothing is persisted when any stage fails.
	Generate(ctx context.Context, periodID domain.PeriodID) (*domain.Agenda, error)

	// Finalize marks an agenda final. Finalising a final agenda is a no-op.
	Finalize(ctx context.Context, agendaID string) (*domain.Agenda, error)

	// Get retrieves an agenda by ID.
	Get(ctx context.Context, agendaID string) (*domain.Agenda, error)

	// GetVersion retrieves one version of a period's agenda.
	GetVersion(ctx context.Context, periodID domain.PeriodID, version int) (*domain.Agenda, error)

	// Latest returns the newest version for a period.
	Latest(ctx context.Context, periodID domain.PeriodID) (*domain.Agenda, error)

	// ListByPeriod returns all versions for a period.
	ListByPeriod(ctx context.Context, periodID domain.PeriodID) ([]domain.Agenda, error)
}
