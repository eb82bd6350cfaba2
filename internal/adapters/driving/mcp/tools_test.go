package mcp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/boardpack/internal/core/domain"
)

func testAgenda() *domain.Agenda {
	return &domain.Agenda{
		ID:       "agenda-1",
		PeriodID: "2025-02",
		Version:  2,
		Status:   domain.AgendaDraft,
		Markdown: "# Board Agenda: February 2025\n",
	}
}

func TestServer_handleListPeriods(t *testing.T) {
	ctx := context.Background()

	t.Run("returns periods and current", func(t *testing.T) {
		periods := &mockPeriodService{
			periods: []domain.Period{
				{ID: "2025-01", Label: "January 2025", Historical: true},
				{ID: "2025-02", Label: "February 2025"},
			},
			current: "2025-02",
		}
		server := newTestServer(t, &Ports{Period: periods, Agenda: &mockAgendaService{}})

		_, output, err := server.handleListPeriods(ctx, nil, ListPeriodsInput{})
		require.NoError(t, err)
		assert.Equal(t, 2, output.Count)
		assert.Equal(t, "2025-02", output.Current)
		assert.Equal(t, PeriodOutput{ID: "2025-01", Label: "January 2025", Historical: true}, output.Periods[0])
	})

	t.Run("returns error on list failure", func(t *testing.T) {
		server := newTestServer(t, &Ports{
			Period: &mockPeriodService{err: errors.New("database error")},
			Agenda: &mockAgendaService{},
		})

		_, _, err := server.handleListPeriods(ctx, nil, ListPeriodsInput{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "listing periods")
	})
}

func TestServer_handleGenerateAgenda(t *testing.T) {
	ctx := context.Background()

	t.Run("generates agenda", func(t *testing.T) {
		agendas := &mockAgendaService{agenda: testAgenda()}
		server := newTestServer(t, &Ports{Period: &mockPeriodService{}, Agenda: agendas})

		_, output, err := server.handleGenerateAgenda(ctx, nil, PeriodInput{Period: "2025-02"})
		require.NoError(t, err)
		assert.Equal(t, []domain.PeriodID{"2025-02"}, agendas.generated)
		assert.Equal(t, AgendaOutput{
			ID:       "agenda-1",
			Period:   "2025-02",
			Version:  2,
			Status:   "draft",
			Markdown: "# Board Agenda: February 2025\n",
		}, output)
	})

	t.Run("invalid period rejected", func(t *testing.T) {
		agendas := &mockAgendaService{agenda: testAgenda()}
		server := newTestServer(t, &Ports{Period: &mockPeriodService{}, Agenda: agendas})

		_, _, err := server.handleGenerateAgenda(ctx, nil, PeriodInput{Period: "2025-13"})
		assert.ErrorIs(t, err, domain.ErrInvalidPeriod)
		assert.Empty(t, agendas.generated)
	})

	t.Run("generation failure", func(t *testing.T) {
		server := newTestServer(t, &Ports{
			Period: &mockPeriodService{},
			Agenda: &mockAgendaService{err: domain.ErrLLMUnavailable},
		})

		_, _, err := server.handleGenerateAgenda(ctx, nil, PeriodInput{Period: "2025-02"})
		assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
	})
}

func TestServer_handleGetAgenda(t *testing.T) {
	ctx := context.Background()

	t.Run("latest by default", func(t *testing.T) {
		agendas := &mockAgendaService{agenda: testAgenda()}
		server := newTestServer(t, &Ports{Period: &mockPeriodService{}, Agenda: agendas})

		_, output, err := server.handleGetAgenda(ctx, nil, GetAgendaInput{Period: "2025-02"})
		require.NoError(t, err)
		assert.Equal(t, 2, output.Version)
		assert.Empty(t, agendas.versions)
	})

	t.Run("explicit version", func(t *testing.T) {
		agendas := &mockAgendaService{agenda: testAgenda()}
		server := newTestServer(t, &Ports{Period: &mockPeriodService{}, Agenda: agendas})

		_, _, err := server.handleGetAgenda(ctx, nil, GetAgendaInput{Period: "2025-02", Version: 1})
		require.NoError(t, err)
		assert.Equal(t, []int{1}, agendas.versions)
	})

	t.Run("not found", func(t *testing.T) {
		server := newTestServer(t, &Ports{
			Period: &mockPeriodService{},
			Agenda: &mockAgendaService{err: domain.ErrNotFound},
		})

		_, _, err := server.handleGetAgenda(ctx, nil, GetAgendaInput{Period: "2025-02"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestServer_handleCarryOver(t *testing.T) {
	due := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	actions := &mockActionService{actions: []domain.ActionItem{
		{ID: "a1", Title: "Review budget", Owner: "Alice", Status: domain.ActionOpen, DueDate: &due, OriginPeriod: "2025-01"},
		{ID: "a2", Title: "Hire analyst", Status: domain.ActionInProgress, OriginPeriod: "2024-12"},
	}}
	server := newTestServer(t, &Ports{Period: &mockPeriodService{}, Agenda: &mockAgendaService{}, Action: actions})

	_, output, err := server.handleCarryOver(context.Background(), nil, PeriodInput{Period: "2025-02"})
	require.NoError(t, err)
	require.Equal(t, 2, output.Count)
	assert.Equal(t, ActionOutput{
		ID: "a1", Title: "Review budget", Owner: "Alice", Status: "open",
		DueDate: "2025-03-01", OriginPeriod: "2025-01",
	}, output.Actions[0])
	assert.Empty(t, output.Actions[1].DueDate)
}

func TestServer_handleListArtefacts(t *testing.T) {
	text := "Revenue 120,000"
	parseErr := "unsupported type"
	artefacts := &mockArtefactService{artefacts: []domain.Artefact{
		{ID: "fin-1", Kind: domain.ArtefactFinance, Filename: "finance.xlsx", Text: &text},
		{ID: "scan-1", Kind: domain.ArtefactOther, Filename: "scan.tiff", ParseError: &parseErr},
	}}
	server := newTestServer(t, &Ports{Period: &mockPeriodService{}, Agenda: &mockAgendaService{}, Artefact: artefacts})

	_, output, err := server.handleListArtefacts(context.Background(), nil, PeriodInput{Period: "2025-02"})
	require.NoError(t, err)
	assert.Equal(t, 2, output.Count)
	assert.True(t, output.Artefacts[0].HasText)
	assert.False(t, output.Artefacts[1].HasText)
	assert.Equal(t, "unsupported type", output.Artefacts[1].ParseError)
}
