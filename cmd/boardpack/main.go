// Command boardpack builds monthly board agendas from board-pack artefacts.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/custodia-labs/boardpack/internal/adapters/driven/ai"
	"github.com/custodia-labs/boardpack/internal/adapters/driven/config/file"
	"github.com/custodia-labs/boardpack/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/boardpack/internal/adapters/driving/cli"
	"github.com/custodia-labs/boardpack/internal/core/services"
	"github.com/custodia-labs/boardpack/internal/logger"
	"github.com/custodia-labs/boardpack/internal/normalisers"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.Execute(ctx, version, bootstrap)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// bootstrap opens the stores and wires the services for one invocation.
func bootstrap(_ context.Context, opts cli.Options) (*cli.Services, error) {
	dir := opts.DataDir
	if dir == "" {
		d, err := file.DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}

	config, err := file.NewConfigStore(dir)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	prompts, err := file.NewPromptStore(filepath.Join(dir, "prompts"))
	if err != nil {
		return nil, fmt.Errorf("prompts: %w", err)
	}

	settingsService := services.NewSettingsService(config, ai.NewConfigValidator())
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("settings: %w", err)
	}
	if err := settingsService.Validate(); err != nil {
		logger.Warn("settings: %v", err)
	}

	loc, err := time.LoadLocation(settings.Agenda.Timezone)
	if err != nil {
		logger.Warn("timezone %q: %v; using UTC", settings.Agenda.Timezone, err)
		loc = time.UTC
	}

	store, err := sqlite.NewStore(filepath.Join(dir, "data"))
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}
	logger.Debug("database: %s", store.Path())

	llm, err := ai.Init(&settings.LLM, prompts)
	if err != nil {
		logger.Warn("%v", err)
		llm = &ai.InitResult{}
	}
	if llm.LLMService != nil {
		logger.Debug("llm: %s", llm.LLMService.ModelName())
	}

	periods, artefacts := store.PeriodStore(), store.ArtefactStore()
	extractions, actions, agendas := store.ExtractionStore(), store.ActionStore(), store.AgendaStore()

	extractionService := services.NewExtractionService(artefacts, extractions, actions, llm.Extractor, settings.Extraction)
	agendaService := services.NewAgendaService(
		periods, artefacts, extractions, actions, agendas, llm.Drafter, settings.Agenda,
	)
	agendaService.SetExtractionService(extractionService)

	return &cli.Services{
		Period:     services.NewPeriodService(periods, artefacts, loc),
		Artefact:   services.NewArtefactService(periods, artefacts, extractions, actions, normalisers.Default()),
		Extraction: extractionService,
		Action:     services.NewActionService(periods, actions),
		Agenda:     agendaService,
		Settings:   settingsService,
		Close: func() error {
			llm.Close()
			return store.Close()
		},
	}, nil
}
