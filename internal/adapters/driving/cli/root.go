// Package cli implements the boardpack command line. Commands talk to the
// core through driving ports held in package state; Execute installs them
// through a Bootstrap function once flags are parsed.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/boardpack/internal/core/ports/driving"
	"github.com/custodia-labs/boardpack/internal/logger"
)

// Options are the global flags passed to Bootstrap.
type Options struct {
	DataDir string
	Verbose bool
}

// Services aggregates the driving ports used by the commands.
type Services struct {
	Period     driving.PeriodService
	Artefact   driving.ArtefactService
	Extraction driving.ExtractionService
	Action     driving.ActionService
	Agenda     driving.AgendaService
	Settings   driving.SettingsService

	// Close releases whatever Bootstrap opened. May be nil.
	Close func() error
}

// Bootstrap builds the services for one invocation.
type Bootstrap func(ctx context.Context, opts Options) (*Services, error)

var (
	version = "dev"

	periodService     driving.PeriodService
	artefactService   driving.ArtefactService
	extractionService driving.ExtractionService
	actionService     driving.ActionService
	agendaService     driving.AgendaService
	settingsService   driving.SettingsService

	bootstrap    Bootstrap
	closeService func() error

	dataDir string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "boardpack",
	Short: "Monthly board pack and agenda builder",
	Long: `boardpack collects a month's board artefacts (finance reports, timesheets,
leave records, minutes and notes), extracts their facts and assembles an
evidence-referenced board agenda.

Periods are calendar months written YYYY-MM.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
		return teardown()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default ~/.boardpack)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// Execute runs the root command.
func Execute(ctx context.Context, v string, boot Bootstrap) error {
	if v != "" {
		version = v
	}
	bootstrap = boot
	err := rootCmd.ExecuteContext(ctx)
	if cerr := teardown(); err == nil {
		err = cerr
	}
	return err
}

// SetServices installs services directly, bypassing Bootstrap.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	periodService = s.Period
	artefactService = s.Artefact
	extractionService = s.Extraction
	actionService = s.Action
	agendaService = s.Agenda
	settingsService = s.Settings
	closeService = s.Close
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	if bootstrap == nil || cmd == versionCmd {
		return nil
	}
	s, err := bootstrap(cmd.Context(), Options{DataDir: dataDir, Verbose: verbose})
	if err != nil {
		return fmt.Errorf("initialise: %w", err)
	}
	SetServices(s)
	return nil
}

func teardown() error {
	if closeService == nil {
		return nil
	}
	fn := closeService
	closeService = nil
	return fn()
}

// errNotConfigured reports a missing service.
func errNotConfigured(name string) error {
	return errors.New(name + " service not configured")
}
