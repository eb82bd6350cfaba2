package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/boardpack/internal/core/domain"
)

// mockPeriodService is a mock implementation of driving.PeriodService.
type mockPeriodService struct {
	periods []domain.Period
	current domain.PeriodID
	err     error
}

func (m *mockPeriodService) Create(_ context.Context, id domain.PeriodID, historical bool, by string) (*domain.Period, error) {
	return &domain.Period{ID: id, Historical: historical, CreatedBy: by}, m.err
}

func (m *mockPeriodService) Get(_ context.Context, id domain.PeriodID) (*domain.Period, error) {
	for i := range m.periods {
		if m.periods[i].ID == id {
			return &m.periods[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockPeriodService) List(_ context.Context) ([]domain.Period, error) {
	return m.periods, m.err
}

func (m *mockPeriodService) SetHistorical(_ context.Context, _ domain.PeriodID, _ bool) error {
	return m.err
}

func (m *mockPeriodService) Delete(_ context.Context, _ domain.PeriodID) error {
	return m.err
}

func (m *mockPeriodService) Current() domain.PeriodID {
	return m.current
}

// mockAgendaService is a mock implementation of driving.AgendaService.
type mockAgendaService struct {
	agenda    *domain.Agenda
	agendas   []domain.Agenda
	err       error
	generated []domain.PeriodID
	versions  []int
}

func (m *mockAgendaService) Generate(_ context.Context, periodID domain.PeriodID) (*domain.Agenda, error) {
	m.generated = append(m.generated, periodID)
	return m.agenda, m.err
}

func (m *mockAgendaService) Finalize(_ context.Context, _ string) (*domain.Agenda, error) {
	return m.agenda, m.err
}

func (m *mockAgendaService) Get(_ context.Context, _ string) (*domain.Agenda, error) {
	return m.agenda, m.err
}

func (m *mockAgendaService) GetVersion(_ context.Context, _ domain.PeriodID, version int) (*domain.Agenda, error) {
	m.versions = append(m.versions, version)
	return m.agenda, m.err
}

func (m *mockAgendaService) Latest(_ context.Context, _ domain.PeriodID) (*domain.Agenda, error) {
	return m.agenda, m.err
}

func (m *mockAgendaService) ListByPeriod(_ context.Context, _ domain.PeriodID) ([]domain.Agenda, error) {
	return m.agendas, m.err
}

// mockActionService is a mock implementation of driving.ActionService.
type mockActionService struct {
	actions []domain.ActionItem
	err     error
}

func (m *mockActionService) Create(_ context.Context, a domain.ActionItem) (*domain.ActionItem, error) {
	return &a, m.err
}

func (m *mockActionService) Get(_ context.Context, _ string) (*domain.ActionItem, error) {
	return nil, domain.ErrNotFound
}

func (m *mockActionService) List(_ context.Context, _ domain.PeriodID) ([]domain.ActionItem, error) {
	return m.actions, m.err
}

func (m *mockActionService) UpdateStatus(_ context.Context, _ string, _ domain.ActionStatus) (*domain.ActionItem, error) {
	return nil, m.err
}

func (m *mockActionService) CarryOver(_ context.Context, _ domain.PeriodID) ([]domain.ActionItem, error) {
	return m.actions, m.err
}

// mockArtefactService is a mock implementation of driving.ArtefactService.
type mockArtefactService struct {
	artefacts []domain.Artefact
	err       error
}

func (m *mockArtefactService) Upload(_ context.Context, _ domain.PeriodID, _ domain.ArtefactKind, _ domain.RawFile) (*domain.Artefact, error) {
	return nil, m.err
}

func (m *mockArtefactService) AddNote(_ context.Context, _ domain.PeriodID, _ string) (*domain.Artefact, error) {
	return nil, m.err
}

func (m *mockArtefactService) Get(_ context.Context, _ string) (*domain.Artefact, error) {
	return nil, domain.ErrNotFound
}

func (m *mockArtefactService) ListByPeriod(_ context.Context, _ domain.PeriodID) ([]domain.Artefact, error) {
	return m.artefacts, m.err
}

func (m *mockArtefactService) Delete(_ context.Context, _ string) error {
	return m.err
}

func newTestServer(t *testing.T, ports *Ports) *Server {
	t.Helper()
	server, err := NewServer(ports)
	require.NoError(t, err)
	return server
}
