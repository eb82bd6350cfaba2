package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/boardpack/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for boardpack resources.
	uriScheme = "boardpack://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "periods",
		Name:        "periods",
		Description: "All board periods",
		MIMEType:    "application/json",
	}, s.handlePeriodsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "agendas/{periodId}",
		Name:        "period-agenda",
		Description: "Latest agenda of a period",
		MIMEType:    "text/markdown",
	}, s.handleAgendaResource)
}

// handlePeriodsResource returns the period list as JSON.
func (s *Server) handlePeriodsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	periods, err := s.ports.Period.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing periods: %w", err)
	}

	infos := make([]PeriodOutput, len(periods))
	for i := range periods {
		infos[i] = PeriodOutput{
			ID:         string(periods[i].ID),
			Label:      periods[i].Label,
			Historical: periods[i].Historical,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling periods: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleAgendaResource returns the latest agenda text of a period.
func (s *Server) handleAgendaResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	period := extractPeriodID(req.Params.URI)
	if period == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	agenda, err := s.ports.Agenda.Latest(ctx, period)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting agenda: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/markdown",
			Text:     agenda.Markdown,
		}},
	}, nil
}

// extractPeriodID extracts a valid period from boardpack://agendas/{periodId}.
func extractPeriodID(uri string) domain.PeriodID {
	const prefix = uriScheme + "agendas/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	id, err := domain.ParsePeriodID(strings.TrimPrefix(uri, prefix))
	if err != nil {
		return ""
	}
	return id
}
