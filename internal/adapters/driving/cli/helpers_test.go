package cli

import (
	"bytes"
	"context"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/boardpack/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/boardpack/internal/core/domain"
	"github.com/custodia-labs/boardpack/internal/core/ports/driven"
	"github.com/custodia-labs/boardpack/internal/core/services"
	"github.com/custodia-labs/boardpack/internal/normalisers"
)

// stubDrafter returns a fixed agenda draft.
type stubDrafter struct{}

func (stubDrafter) Draft(context.Context, driven.DraftRequest) ([]byte, error) {
	return []byte(`{"sections":[{"key":"actions","title":"Actions","bullets":[{"text":"Confirm the office move date.","evidence_refs":[]}]}]}`), nil
}

// testEnv holds the services installed by setupTestServices.
type testEnv struct {
	periods  *services.PeriodService
	actions  *services.ActionService
	config   *memory.ConfigStore
	settings *services.SettingsService
}

// setupTestServices installs real services over in-memory stores.
func setupTestServices(t *testing.T) *testEnv {
	t.Helper()

	ps := memory.NewPeriodStore()
	as := memory.NewArtefactStore()
	es := memory.NewExtractionStore()
	acs := memory.NewActionStore()
	ags := memory.NewAgendaStore()

	agendaSettings := domain.DefaultAppSettings().Agenda
	agendaSettings.SplitDrafting = false

	env := &testEnv{
		periods: services.NewPeriodService(ps, as, time.UTC),
		actions: services.NewActionService(ps, acs),
		config:  memory.NewConfigStore(),
	}
	env.settings = services.NewSettingsService(env.config, nil)

	extraction := services.NewExtractionService(as, es, acs, nil, domain.DefaultAppSettings().Extraction)
	agenda := services.NewAgendaService(ps, as, es, acs, ags, stubDrafter{}, agendaSettings)
	agenda.SetExtractionService(extraction)

	SetServices(&Services{
		Period:     env.periods,
		Artefact:   services.NewArtefactService(ps, as, es, acs, normalisers.Default()),
		Extraction: extraction,
		Action:     env.actions,
		Agenda:     agenda,
		Settings:   env.settings,
	})
	t.Cleanup(func() { SetServices(nil) })
	return env
}

// execute runs the root command and returns its combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		resetFlags()
	})
	err := rootCmd.Execute()
	return buf.String(), err
}

func resetFlags() {
	periodHistorical = false
	periodCreatedBy = ""
	uploadMIME = ""
	agendaVersion = 0
	agendaJSON = false
	actionOwner = ""
	actionDue = ""
}

func createPeriod(t *testing.T, env *testEnv, id domain.PeriodID) {
	t.Helper()
	_, err := env.periods.Create(context.Background(), id, false, "test")
	require.NoError(t, err)
}
