package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/boardpack/internal/core/domain"
)

// ListPeriodsInput is the input schema for the list_periods tool.
type ListPeriodsInput struct{}

// PeriodOutput describes one period.
type PeriodOutput struct {
	ID         string `json:"id"`
	Label      string `json:"label"`
	Historical bool   `json:"historical"`
}

// ListPeriodsOutput is the output schema for the list_periods tool.
type ListPeriodsOutput struct {
	Periods []PeriodOutput `json:"periods"`
	Current string         `json:"current"`
	Count   int            `json:"count"`
}

// PeriodInput selects a period.
type PeriodInput struct {
	Period string `json:"period" jsonschema:"the period in YYYY-MM form"`
}

// ArtefactOutput describes one artefact.
type ArtefactOutput struct {
	ID         string `json:"id"`
	Kind       string `json:"kind"`
	Filename   string `json:"filename,omitempty"`
	HasText    bool   `json:"has_text"`
	ParseError string `json:"parse_error,omitempty"`
}

// ListArtefactsOutput is the output schema for the list_artefacts tool.
type ListArtefactsOutput struct {
	Artefacts []ArtefactOutput `json:"artefacts"`
	Count     int              `json:"count"`
}

// GetAgendaInput is the input schema for the get_agenda tool.
type GetAgendaInput struct {
	Period  string `json:"period" jsonschema:"the period in YYYY-MM form"`
	Version int    `json:"version,omitempty" jsonschema:"agenda version (default latest)"`
}

// AgendaOutput is the output schema for agenda tools.
type AgendaOutput struct {
	ID       string `json:"id"`
	Period   string `json:"period"`
	Version  int    `json:"version"`
	Status   string `json:"status"`
	Markdown string `json:"markdown"`
}

// ActionOutput describes one action item.
type ActionOutput struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Owner        string `json:"owner,omitempty"`
	Status       string `json:"status"`
	DueDate      string `json:"due_date,omitempty"`
	OriginPeriod string `json:"origin_period"`
}

// CarryOverOutput is the output schema for the carry_over_actions tool.
type CarryOverOutput struct {
	Actions []ActionOutput `json:"actions"`
	Count   int            `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_periods",
		Description: "List board periods and the current period",
	}, s.handleListPeriods)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "generate_agenda",
		Description: "Generate the next draft agenda version for a period",
	}, s.handleGenerateAgenda)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_agenda",
		Description: "Read an agenda for a period, the latest version by default",
	}, s.handleGetAgenda)

	if s.ports.Action != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "carry_over_actions",
			Description: "List outstanding action items carried into a period",
		}, s.handleCarryOver)
	}

	if s.ports.Artefact != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "list_artefacts",
			Description: "List the artefacts attached to a period",
		}, s.handleListArtefacts)
	}
}

func (s *Server) handleListPeriods(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListPeriodsInput,
) (*mcp.CallToolResult, ListPeriodsOutput, error) {
	periods, err := s.ports.Period.List(ctx)
	if err != nil {
		return nil, ListPeriodsOutput{}, fmt.Errorf("listing periods: %w", err)
	}

	output := ListPeriodsOutput{
		Periods: make([]PeriodOutput, len(periods)),
		Current: string(s.ports.Period.Current()),
		Count:   len(periods),
	}
	for i := range periods {
		output.Periods[i] = PeriodOutput{
			ID:         string(periods[i].ID),
			Label:      periods[i].Label,
			Historical: periods[i].Historical,
		}
	}
	return nil, output, nil
}

func (s *Server) handleGenerateAgenda(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input PeriodInput,
) (*mcp.CallToolResult, AgendaOutput, error) {
	period, err := domain.ParsePeriodID(input.Period)
	if err != nil {
		return nil, AgendaOutput{}, err
	}
	agenda, err := s.ports.Agenda.Generate(ctx, period)
	if err != nil {
		return nil, AgendaOutput{}, fmt.Errorf("generating agenda: %w", err)
	}
	return nil, agendaOutput(agenda), nil
}

func (s *Server) handleGetAgenda(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetAgendaInput,
) (*mcp.CallToolResult, AgendaOutput, error) {
	period, err := domain.ParsePeriodID(input.Period)
	if err != nil {
		return nil, AgendaOutput{}, err
	}

	var agenda *domain.Agenda
	if input.Version > 0 {
		agenda, err = s.ports.Agenda.GetVersion(ctx, period, input.Version)
	} else {
		agenda, err = s.ports.Agenda.Latest(ctx, period)
	}
	if err != nil {
		return nil, AgendaOutput{}, fmt.Errorf("getting agenda: %w", err)
	}
	return nil, agendaOutput(agenda), nil
}

func (s *Server) handleCarryOver(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input PeriodInput,
) (*mcp.CallToolResult, CarryOverOutput, error) {
	period, err := domain.ParsePeriodID(input.Period)
	if err != nil {
		return nil, CarryOverOutput{}, err
	}
	actions, err := s.ports.Action.CarryOver(ctx, period)
	if err != nil {
		return nil, CarryOverOutput{}, fmt.Errorf("listing carry-over actions: %w", err)
	}

	output := CarryOverOutput{
		Actions: make([]ActionOutput, len(actions)),
		Count:   len(actions),
	}
	for i := range actions {
		a := &actions[i]
		out := ActionOutput{
			ID:           a.ID,
			Title:        a.Title,
			Owner:        a.Owner,
			Status:       string(a.Status),
			OriginPeriod: string(a.OriginPeriod),
		}
		if a.DueDate != nil {
			out.DueDate = a.DueDate.Format(domain.DateLayout)
		}
		output.Actions[i] = out
	}
	return nil, output, nil
}

func (s *Server) handleListArtefacts(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input PeriodInput,
) (*mcp.CallToolResult, ListArtefactsOutput, error) {
	period, err := domain.ParsePeriodID(input.Period)
	if err != nil {
		return nil, ListArtefactsOutput{}, err
	}
	artefacts, err := s.ports.Artefact.ListByPeriod(ctx, period)
	if err != nil {
		return nil, ListArtefactsOutput{}, fmt.Errorf("listing artefacts: %w", err)
	}

	output := ListArtefactsOutput{
		Artefacts: make([]ArtefactOutput, len(artefacts)),
		Count:     len(artefacts),
	}
	for i := range artefacts {
		a := &artefacts[i]
		out := ArtefactOutput{
			ID:       a.ID,
			Kind:     string(a.Kind),
			Filename: a.Filename,
			HasText:  a.HasText(),
		}
		if a.ParseError != nil {
			out.ParseError = *a.ParseError
		}
		output.Artefacts[i] = out
	}
	return nil, output, nil
}

func agendaOutput(a *domain.Agenda) AgendaOutput {
	return AgendaOutput{
		ID:       a.ID,
		Period:   string(a.PeriodID),
		Version:  a.Version,
		Status:   string(a.Status),
		Markdown: a.Markdown,
	}
}
