package mcp

import (
	"github.com/custodia-labs/boardpack/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the MCP server.
type Ports struct {
	// Period lists board periods.
	Period driving.PeriodService

	// Agenda generates and reads agendas.
	Agenda driving.AgendaService

	// Action reports carried-over action items. Optional.
	Action driving.ActionService

	// Artefact lists a period's artefacts. Optional.
	Artefact driving.ArtefactService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Period == nil {
		return ErrMissingPeriodService
	}
	if p.Agenda == nil {
		return ErrMissingAgendaService
	}
	return nil
}
