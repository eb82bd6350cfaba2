package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/custodia-labs/boardpack/internal/core/domain"
	"github.com/custodia-labs/boardpack/internal/core/ports/driven"
	"github.com/custodia-labs/boardpack/internal/core/ports/driving"
	"github.com/custodia-labs/boardpack/internal/logger"
	"github.com/custodia-labs/boardpack/internal/metrics"
)

// Ensure AgendaService implements the interface.
var _ driving.AgendaService = (*AgendaService)(nil)

// missingSections maps a required artefact kind to the section that
// reports its absence.
var missingSections = map[domain.ArtefactKind]domain.SectionKey{
	domain.ArtefactFinance:      domain.SectionFinance,
	domain.ArtefactProductivity: domain.SectionProductivity,
	domain.ArtefactMinutes:      domain.SectionHotTopics,
}

// AgendaService assembles board agendas.
type AgendaService struct {
	periodStore     driven.PeriodStore
	artefactStore   driven.ArtefactStore
	extractionStore driven.ExtractionStore
	actionStore     driven.ActionStore
	agendaStore     driven.AgendaStore
	drafter         driven.AgendaDrafter
	extraction      driving.ExtractionService
	aggregator      *Aggregator
	ledger          *EvidenceLedger
	settings        domain.AgendaSettings
	validate        *validator.Validate
	locks           keyedMutex
	now             func() time.Time
}

// NewAgendaService creates a new agenda service. A nil drafter leaves
// existing agendas readable but Generate returns domain.ErrLLMUnavailable.
func NewAgendaService(
	periodStore driven.PeriodStore,
	artefactStore driven.ArtefactStore,
	extractionStore driven.ExtractionStore,
	actionStore driven.ActionStore,
	agendaStore driven.AgendaStore,
	drafter driven.AgendaDrafter,
	settings domain.AgendaSettings,
) *AgendaService {
	return &AgendaService{
		periodStore:     periodStore,
		artefactStore:   artefactStore,
		extractionStore: extractionStore,
		actionStore:     actionStore,
		agendaStore:     agendaStore,
		drafter:         drafter,
		aggregator:      NewAggregator(extractionStore, settings),
		ledger:          NewEvidenceLedger(settings.EvidencePolicy),
		settings:        settings,
		validate:        validator.New(validator.WithRequiredStructEnabled()),
		now:             time.Now,
	}
}

// SetExtractionService lets Generate extract artefacts that have text but
// no extraction yet. Without it such artefacts count as not provided.
func (s *AgendaService) SetExtractionService(extraction driving.ExtractionService) {
	s.extraction = extraction
}

// Generate produces and stores the next agenda version for a period.
func (s *AgendaService) Generate(ctx context.Context, periodID domain.PeriodID) (*domain.Agenda, error) {
	agenda, err := s.generate(ctx, periodID)
	if err != nil {
		metrics.Generations.WithLabelValues(metrics.ResultFailure).Inc()
		return nil, err
	}
	metrics.Generations.WithLabelValues(metrics.ResultSuccess).Inc()
	return agenda, nil
}

func (s *AgendaService) generate(ctx context.Context, periodID domain.PeriodID) (*domain.Agenda, error) {
	if s.drafter == nil {
		return nil, domain.ErrLLMUnavailable
	}
	period, err := ensurePeriod(ctx, s.periodStore, periodID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.lock(string(periodID))
	defer unlock()

	logger.Section("collecting")
	payload, err := s.collect(ctx, period)
	if err != nil {
		return nil, err
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode agenda payload: %w", err)
	}

	logger.Section("drafting")
	parts := []driven.DraftPart{driven.DraftFull}
	if s.settings.SplitDrafting {
		parts = []driven.DraftPart{driven.DraftCore, driven.DraftPeople}
	}
	var drafted []domain.Section
	for _, part := range parts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sections, err := s.draft(ctx, part, body)
		if err != nil {
			return nil, err
		}
		drafted = append(drafted, sections...)
	}

	logger.Section("merging")
	model := domain.AgendaModel{
		Language:  s.settings.Language,
		FactsOnly: s.settings.FactsOnly,
		Sections:  mergeSections(drafted),
	}
	report, err := s.ledger.Check(&model, payload.KnownArtefactIDs(), payload.ActionNumbers())
	if err != nil {
		return nil, err
	}
	logger.Debug("evidence: %d reference(s) removed, %d violation(s)", report.RemovedRefs, len(report.Violations))
	addMissingNotices(&model, payload.Missing)
	model.Sections = dropEmptySections(model.Sections)
	domain.OrderSections(model.Sections)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger.Section("persisting")
	agenda := &domain.Agenda{
		ID:        uuid.New().String(),
		PeriodID:  periodID,
		Status:    domain.AgendaDraft,
		Model:     model,
		CreatedAt: s.now(),
	}
	label := period.Label
	render := func(a *domain.Agenda) string { return a.Render(label) }
	if err := s.agendaStore.CreateNextVersion(ctx, agenda, render); err != nil {
		return nil, fmt.Errorf("store agenda for %s: %w", periodID, err)
	}
	logger.Info("generated agenda %s version %d", periodID, agenda.Version)
	return agenda, nil
}

// collect gathers the current period's data and the comparison context.
func (s *AgendaService) collect(ctx context.Context, period *domain.Period) (*AgendaPayload, error) {
	artefacts, err := s.artefactStore.ListByPeriod(ctx, period.ID)
	if err != nil {
		return nil, fmt.Errorf("list artefacts: %w", err)
	}
	extractions, err := s.extractionStore.ListByPeriod(ctx, period.ID)
	if err != nil {
		return nil, fmt.Errorf("list extractions: %w", err)
	}
	extractions, err = s.extractPending(ctx, artefacts, extractions)
	if err != nil {
		return nil, err
	}
	carryOver, err := s.actionStore.ListOpenBefore(ctx, period.ID)
	if err != nil {
		return nil, fmt.Errorf("list carry-over actions: %w", err)
	}
	domain.SortCarryOver(carryOver)

	comparison, err := s.aggregator.Compare(ctx, period.ID)
	if err != nil {
		return nil, err
	}

	return buildPayload(payloadInput{
		period:      period,
		settings:    s.settings,
		artefacts:   artefacts,
		extractions: extractions,
		carryOver:   carryOver,
		comparison:  comparison,
	}), nil
}

// extractPending extracts text-bearing artefacts that have no extraction.
// A failure is scoped to its artefact: it is logged and the kind is later
// reported as not provided.
func (s *AgendaService) extractPending(
	ctx context.Context,
	artefacts []domain.Artefact,
	extractions []domain.Extraction,
) ([]domain.Extraction, error) {
	if s.extraction == nil {
		return extractions, nil
	}
	done := make(map[string]bool, len(extractions))
	for _, e := range extractions {
		done[e.ArtefactID] = true
	}
	for _, a := range artefacts {
		if _, ok := a.Kind.ExtractionKind(); !ok || !a.HasText() || done[a.ID] {
			continue
		}
		outcome, err := s.extraction.ExtractArtefact(ctx, a.ID)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if err != nil {
			logger.Warn("extraction of %s before drafting failed: %v", a.ID, err)
			continue
		}
		if outcome.Extraction != nil {
			extractions = append(extractions, *outcome.Extraction)
		}
	}
	return extractions, nil
}

// draftResponse is the schema every drafting response must satisfy.
type draftResponse struct {
	Sections []domain.Section `json:"sections" validate:"required,dive"`
}

// draft runs one drafting call and decodes its response. Sections outside
// the part's responsibility are kept; merge ordering places them.
func (s *AgendaService) draft(ctx context.Context, part driven.DraftPart, payload []byte) ([]domain.Section, error) {
	raw, err := s.drafter.Draft(ctx, driven.DraftRequest{
		Profile: driven.DraftProfile{
			Language:  s.settings.Language,
			FactsOnly: s.settings.FactsOnly,
			Part:      part,
		},
		Payload: payload,
	})
	if err != nil {
		return nil, fmt.Errorf("draft %s: %w", part, err)
	}

	stage := "draft:" + string(part)
	var resp draftResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, &domain.ExtractionParseError{Stage: stage, Err: err}
	}
	if err := s.validate.Struct(resp); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			err = fmt.Errorf("%s failed %q", verrs[0].Namespace(), verrs[0].Tag())
		}
		return nil, &domain.ExtractionParseError{Stage: stage, Err: err}
	}
	logger.Debug("%s: %d section(s)", stage, len(resp.Sections))
	return resp.Sections, nil
}

// mergeSections concatenates sections sharing a key in arrival order.
// The first title seen for a key wins.
func mergeSections(sections []domain.Section) []domain.Section {
	merged := make([]domain.Section, 0, len(sections))
	index := make(map[domain.SectionKey]int)
	for _, section := range sections {
		if i, ok := index[section.Key]; ok {
			merged[i].Bullets = append(merged[i].Bullets, section.Bullets...)
			continue
		}
		index[section.Key] = len(merged)
		merged = append(merged, domain.Section{
			Key:     section.Key,
			Title:   section.Title,
			Bullets: append([]domain.Bullet{}, section.Bullets...),
		})
	}
	return merged
}

// addMissingNotices prepends a "not provided" bullet for each missing kind.
func addMissingNotices(model *domain.AgendaModel, missing []domain.ArtefactKind) {
	for _, kind := range missing {
		key, ok := missingSections[kind]
		if !ok {
			continue
		}
		section := model.Section(key)
		if section == nil {
			model.Sections = append(model.Sections, domain.Section{Key: key, Title: key.DefaultTitle()})
			section = &model.Sections[len(model.Sections)-1]
		}
		notice := domain.Bullet{Text: MissingNotice(kind), EvidenceRefs: []domain.EvidenceRef{}}
		section.Bullets = append([]domain.Bullet{notice}, section.Bullets...)
	}
}

// MissingNotice is the bullet text for a document kind with no text.
func MissingNotice(kind domain.ArtefactKind) string {
	name := string(kind)
	if name == "" {
		return "Data not provided for this period."
	}
	return strings.ToUpper(name[:1]) + name[1:] + " not provided for this period."
}

func dropEmptySections(sections []domain.Section) []domain.Section {
	kept := sections[:0]
	for _, section := range sections {
		if len(section.Bullets) > 0 {
			kept = append(kept, section)
		}
	}
	return kept
}

// Finalize marks an agenda final and re-renders it with its final status.
func (s *AgendaService) Finalize(ctx context.Context, agendaID string) (*domain.Agenda, error) {
	agenda, err := s.agendaStore.Get(ctx, agendaID)
	if err != nil {
		return nil, fmt.Errorf("agenda %s: %w", agendaID, err)
	}
	if agenda.Status == domain.AgendaFinal {
		return agenda, nil
	}

	unlock := s.locks.lock(string(agenda.PeriodID))
	defer unlock()

	label := domain.FormatLabel(agenda.PeriodID)
	if period, err := s.periodStore.Get(ctx, agenda.PeriodID); err == nil && period.Label != "" {
		label = period.Label
	}
	finalizedAt := s.now()
	agenda.Status = domain.AgendaFinal
	agenda.FinalizedAt = &finalizedAt
	agenda.Markdown = agenda.Render(label)
	if err := s.agendaStore.Finalize(ctx, agenda); err != nil {
		return nil, fmt.Errorf("finalize agenda %s: %w", agendaID, err)
	}
	return agenda, nil
}

// Get retrieves an agenda by ID.
func (s *AgendaService) Get(ctx context.Context, agendaID string) (*domain.Agenda, error) {
	return s.agendaStore.Get(ctx, agendaID)
}

// GetVersion retrieves one version of a period's agenda.
func (s *AgendaService) GetVersion(ctx context.Context, periodID domain.PeriodID, version int) (*domain.Agenda, error) {
	if err := periodID.Validate(); err != nil {
		return nil, err
	}
	return s.agendaStore.GetVersion(ctx, periodID, version)
}

// Latest returns the newest agenda version for a period.
func (s *AgendaService) Latest(ctx context.Context, periodID domain.PeriodID) (*domain.Agenda, error) {
	if err := periodID.Validate(); err != nil {
		return nil, err
	}
	return s.agendaStore.Latest(ctx, periodID)
}

// ListByPeriod returns every version of a period's agenda.
func (s *AgendaService) ListByPeriod(ctx context.Context, periodID domain.PeriodID) ([]domain.Agenda, error) {
	if err := periodID.Validate(); err != nil {
		return nil, err
	}
	return s.agendaStore.ListByPeriod(ctx, periodID)
}

// keyedMutex serialises work per key. Entries are never removed; there is
// one per period ever generated in the process lifetime.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*sync.Mutex)
	}
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}
