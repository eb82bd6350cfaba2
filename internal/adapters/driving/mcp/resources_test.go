package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/boardpack/internal/core/domain"
)

func TestExtractPeriodID(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected domain.PeriodID
	}{
		{name: "valid agenda URI", uri: "boardpack://agendas/2025-02", expected: "2025-02"},
		{name: "invalid period", uri: "boardpack://agendas/2025-2", expected: ""},
		{name: "invalid prefix", uri: "file://agendas/2025-02", expected: ""},
		{name: "empty URI", uri: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractPeriodID(tt.uri))
		})
	}
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handlePeriodsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns periods", func(t *testing.T) {
		server := newTestServer(t, &Ports{
			Period: &mockPeriodService{periods: []domain.Period{{ID: "2025-02", Label: "February 2025"}}},
			Agenda: &mockAgendaService{},
		})

		result, err := server.handlePeriodsResource(ctx, makeReadResourceRequest("boardpack://periods"))
		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)
		assert.Contains(t, result.Contents[0].Text, `"id": "2025-02"`)
		assert.Contains(t, result.Contents[0].Text, "February 2025")
	})

	t.Run("empty list", func(t *testing.T) {
		server := newTestServer(t, &Ports{Period: &mockPeriodService{}, Agenda: &mockAgendaService{}})

		result, err := server.handlePeriodsResource(ctx, makeReadResourceRequest("boardpack://periods"))
		require.NoError(t, err)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})

	t.Run("returns error on list failure", func(t *testing.T) {
		server := newTestServer(t, &Ports{
			Period: &mockPeriodService{err: errors.New("database error")},
			Agenda: &mockAgendaService{},
		})

		_, err := server.handlePeriodsResource(ctx, makeReadResourceRequest("boardpack://periods"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "listing periods")
	})
}

func TestServer_handleAgendaResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns latest agenda text", func(t *testing.T) {
		server := newTestServer(t, &Ports{Period: &mockPeriodService{}, Agenda: &mockAgendaService{agenda: testAgenda()}})

		result, err := server.handleAgendaResource(ctx, makeReadResourceRequest("boardpack://agendas/2025-02"))
		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "text/markdown", result.Contents[0].MIMEType)
		assert.Equal(t, "# Board Agenda: February 2025\n", result.Contents[0].Text)
	})

	t.Run("invalid URI returns not found", func(t *testing.T) {
		server := newTestServer(t, &Ports{Period: &mockPeriodService{}, Agenda: &mockAgendaService{agenda: testAgenda()}})

		_, err := server.handleAgendaResource(ctx, makeReadResourceRequest("boardpack://agendas/latest"))
		require.Error(t, err)
	})

	t.Run("missing agenda returns not found", func(t *testing.T) {
		server := newTestServer(t, &Ports{Period: &mockPeriodService{}, Agenda: &mockAgendaService{err: domain.ErrNotFound}})

		_, err := server.handleAgendaResource(ctx, makeReadResourceRequest("boardpack://agendas/2025-02"))
		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("store failure is wrapped", func(t *testing.T) {
		server := newTestServer(t, &Ports{Period: &mockPeriodService{}, Agenda: &mockAgendaService{err: errors.New("disk full")}})

		_, err := server.handleAgendaResource(ctx, makeReadResourceRequest("boardpack://agendas/2025-02"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "getting agenda")
	})
}
