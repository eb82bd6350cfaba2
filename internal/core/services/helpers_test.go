package services

import (
	"context"
	"sync"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/boardpack/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/boardpack/internal/core/domain"
	"github.com/custodia-labs/boardpack/internal/core/ports/driven"
)

// fixedNow is the clock used across service tests.
var fixedNow = time.Date(2025, time.February, 10, 9, 0, 0, 0, time.UTC)

// fixture bundles the in-memory stores a service test needs.
type fixture struct {
	periods     *memory.PeriodStore
	artefacts   *memory.ArtefactStore
	extractions *memory.ExtractionStore
	actions     *memory.ActionStore
	agendas     *memory.AgendaStore
}

func newFixture() *fixture {
	return &fixture{
		periods:     memory.NewPeriodStore(),
		artefacts:   memory.NewArtefactStore(),
		extractions: memory.NewExtractionStore(),
		actions:     memory.NewActionStore(),
		agendas:     memory.NewAgendaStore(),
	}
}

func (f *fixture) addPeriod(t *testing.T, id domain.PeriodID) {
	t.Helper()
	require.NoError(t, f.periods.Create(context.Background(), domain.Period{
		ID:        id,
		Label:     domain.FormatLabel(id),
		CreatedAt: fixedNow,
	}))
}

// addArtefact stores an artefact with the given ID. Empty text leaves
// the artefact without text.
func (f *fixture) addArtefact(t *testing.T, id string, period domain.PeriodID, kind domain.ArtefactKind, text string) *domain.Artefact {
	t.Helper()
	a := &domain.Artefact{
		ID:        id,
		PeriodID:  period,
		Kind:      kind,
		Filename:  id + ".txt",
		MIMEType:  "text/plain",
		CreatedAt: fixedNow,
	}
	if text != "" {
		a.Text = &text
	}
	require.NoError(t, f.artefacts.Save(context.Background(), a))
	return a
}

func (f *fixture) addExtraction(t *testing.T, e domain.Extraction) {
	t.Helper()
	if e.ID == "" {
		e.ID = e.ArtefactID + "-" + string(e.Kind)
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = fixedNow
	}
	require.NoError(t, f.extractions.Save(context.Background(), &e))
}

func (f *fixture) addAction(t *testing.T, a domain.ActionItem) {
	t.Helper()
	if a.Status == "" {
		a.Status = domain.ActionOpen
	}
	require.NoError(t, f.actions.Save(context.Background(), &a))
}

// fakeExtractor returns canned JSON per artefact ID.
type fakeExtractor struct {
	mu        sync.Mutex
	responses map[string]string
	errs      map[string]error
	calls     []driven.ExtractRequest
}

func newFakeExtractor() *fakeExtractor {
	return &fakeExtractor{
		responses: make(map[string]string),
		errs:      make(map[string]error),
	}
}

func (f *fakeExtractor) Extract(_ context.Context, req driven.ExtractRequest) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, req)
	if err := f.errs[req.ArtefactID]; err != nil {
		return nil, err
	}
	return []byte(f.responses[req.ArtefactID]), nil
}

func (f *fakeExtractor) Version() string { return "fake-1" }

func (f *fakeExtractor) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// mockDrafter is a testify mock of driven.AgendaDrafter.
type mockDrafter struct {
	mock.Mock
}

func (m *mockDrafter) Draft(ctx context.Context, req driven.DraftRequest) ([]byte, error) {
	args := m.Called(ctx, req)
	raw, _ := args.Get(0).([]byte)
	return raw, args.Error(1)
}

// forPart matches draft requests for one part.
func forPart(part driven.DraftPart) any {
	return mock.MatchedBy(func(req driven.DraftRequest) bool {
		return req.Profile.Part == part
	})
}

func ptr[T any](v T) *T {
	return &v
}

func ref(artefactID string) domain.EvidenceRef {
	return domain.ArtefactRef(artefactID)
}
