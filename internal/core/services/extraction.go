package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/boardpack/internal/core/domain"
	"github.com/custodia-labs/boardpack/internal/core/ports/driven"
	"github.com/custodia-labs/boardpack/internal/core/ports/driving"
	"github.com/custodia-labs/boardpack/internal/extraction"
	"github.com/custodia-labs/boardpack/internal/logger"
	"github.com/custodia-labs/boardpack/internal/metrics"
)

// Ensure ExtractionService implements the interface.
var _ driving.ExtractionService = (*ExtractionService)(nil)

// ExtractionService derives canonical facts from artefact text.
type ExtractionService struct {
	artefactStore   driven.ArtefactStore
	extractionStore driven.ExtractionStore
	actionStore     driven.ActionStore
	extractor       driven.StructuredExtractor
	limiter         *rate.Limiter
	concurrency     int
	now             func() time.Time
}

// NewExtractionService creates a new extraction service. A nil extractor
// leaves the service able to list extractions but not to create them.
func NewExtractionService(
	artefactStore driven.ArtefactStore,
	extractionStore driven.ExtractionStore,
	actionStore driven.ActionStore,
	extractor driven.StructuredExtractor,
	settings domain.ExtractionSettings,
) *ExtractionService {
	concurrency := settings.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	limit := rate.Inf
	if settings.RequestsPerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(settings.RequestsPerMinute))
	}
	return &ExtractionService{
		artefactStore:   artefactStore,
		extractionStore: extractionStore,
		actionStore:     actionStore,
		extractor:       extractor,
		limiter:         rate.NewLimiter(limit, 1),
		concurrency:     concurrency,
		now:             time.Now,
	}
}

// ExtractArtefact extracts and stores the facts of one artefact.
func (s *ExtractionService) ExtractArtefact(ctx context.Context, artefactID string) (*driving.ExtractionOutcome, error) {
	artefact, err := s.artefactStore.Get(ctx, artefactID)
	if err != nil {
		return nil, fmt.Errorf("artefact %s: %w", artefactID, err)
	}
	outcome := s.extract(ctx, artefact)
	if outcome.Err != nil {
		return nil, outcome.Err
	}
	return &outcome, nil
}

// ExtractPeriod extracts every extractable artefact of a period in parallel.
// Outcomes are returned in artefact order.
func (s *ExtractionService) ExtractPeriod(ctx context.Context, periodID domain.PeriodID) ([]driving.ExtractionOutcome, error) {
	if err := periodID.Validate(); err != nil {
		return nil, err
	}
	artefacts, err := s.artefactStore.ListByPeriod(ctx, periodID)
	if err != nil {
		return nil, fmt.Errorf("list artefacts: %w", err)
	}

	var targets []domain.Artefact
	for _, a := range artefacts {
		if _, ok := a.Kind.ExtractionKind(); ok {
			targets = append(targets, a)
		}
	}

	logger.Section("Extraction")
	logger.Info("extracting %d artefact(s) for %s", len(targets), periodID)

	outcomes := make([]driving.ExtractionOutcome, len(targets))
	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i := range targets {
		g.Go(func() error {
			outcomes[i] = s.extract(ctx, &targets[i])
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return outcomes, err
	}
	return outcomes, nil
}

// ListByPeriod returns a period's stored extractions.
func (s *ExtractionService) ListByPeriod(ctx context.Context, periodID domain.PeriodID) ([]domain.Extraction, error) {
	if err := periodID.Validate(); err != nil {
		return nil, err
	}
	return s.extractionStore.ListByPeriod(ctx, periodID)
}

// extract runs one artefact through extraction, normalisation and storage.
// Every failure is scoped to the artefact and reported in the outcome.
func (s *ExtractionService) extract(ctx context.Context, artefact *domain.Artefact) driving.ExtractionOutcome {
	kind, ok := artefact.Kind.ExtractionKind()
	outcome := driving.ExtractionOutcome{ArtefactID: artefact.ID, Kind: kind}
	if !ok {
		outcome.Err = fmt.Errorf("%w: %s artefacts are not extracted", domain.ErrUnsupportedType, artefact.Kind)
		return outcome
	}

	start := time.Now()
	ext, drops, err := s.run(ctx, artefact, kind)
	metrics.ExtractionDuration.WithLabelValues(string(kind)).Observe(time.Since(start).Seconds())
	outcome.Dropped = len(drops)
	if err != nil {
		metrics.Extractions.WithLabelValues(string(kind), metrics.ResultFailure).Inc()
		logger.Warn("extraction of %s (%s) failed: %v", artefact.ID, kind, err)
		outcome.Err = err
		return outcome
	}
	metrics.Extractions.WithLabelValues(string(kind), metrics.ResultSuccess).Inc()
	outcome.Extraction = ext
	return outcome
}

func (s *ExtractionService) run(
	ctx context.Context,
	artefact *domain.Artefact,
	kind domain.ExtractionKind,
) (*domain.Extraction, []extraction.Drop, error) {
	if !artefact.HasText() {
		return nil, nil, fmt.Errorf("artefact %s: %w", artefact.ID, domain.ErrNoText)
	}
	if s.extractor == nil {
		return nil, nil, domain.ErrLLMUnavailable
	}
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, nil, fmt.Errorf("wait for rate limit: %w", err)
	}

	raw, err := s.extractor.Extract(ctx, driven.ExtractRequest{
		ArtefactID: artefact.ID,
		PeriodID:   artefact.PeriodID,
		Kind:       kind,
		Text:       *artefact.Text,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("extract %s from %s: %w", kind, artefact.ID, err)
	}

	ext, drops, err := extraction.Normalise(kind, artefact.ID, raw)
	if err != nil {
		return nil, nil, err
	}
	for _, d := range drops {
		logger.Warn("dropped %s entry from %s: %s", kind, artefact.ID, d)
	}
	if len(drops) > 0 {
		metrics.NormalisationDrops.WithLabelValues(string(kind)).Add(float64(len(drops)))
	}

	ext.ID = uuid.NewString()
	ext.PeriodID = artefact.PeriodID
	ext.ExtractorVersion = s.extractor.Version()
	ext.CreatedAt = s.now()

	if err := s.extractionStore.Save(ctx, ext); err != nil {
		return nil, drops, fmt.Errorf("save extraction: %w", err)
	}
	if ext.Minutes != nil {
		if err := s.syncActions(ctx, artefact, ext.Minutes.ActionItems); err != nil {
			return nil, drops, err
		}
	}
	return ext, drops, nil
}

// syncActions replaces the actions sourced from a minutes artefact with its
// proposed actions. An action that survives re-extraction under the same
// title keeps its ID and status.
func (s *ExtractionService) syncActions(
	ctx context.Context,
	artefact *domain.Artefact,
	proposed []domain.ProposedAction,
) error {
	existing, err := s.actionStore.ListByOrigin(ctx, artefact.PeriodID)
	if err != nil {
		return fmt.Errorf("list actions: %w", err)
	}
	previous := make(map[string]domain.ActionItem)
	for _, a := range existing {
		if a.SourceArtefactID != nil && *a.SourceArtefactID == artefact.ID {
			previous[titleKey(a.Title)] = a
		}
	}

	now := s.now()
	actions := make([]domain.ActionItem, 0, len(proposed))
	for _, p := range proposed {
		action := actionFromProposal(p, artefact, now)
		if prev, ok := previous[titleKey(p.Title)]; ok {
			action.ID = prev.ID
			action.Status = prev.Status
			action.CreatedAt = prev.CreatedAt
			delete(previous, titleKey(p.Title))
		}
		actions = append(actions, action)
	}

	if err := s.actionStore.ReplaceForArtefact(ctx, artefact.ID, actions); err != nil {
		return fmt.Errorf("replace actions: %w", err)
	}
	return nil
}

func actionFromProposal(p domain.ProposedAction, artefact *domain.Artefact, now time.Time) domain.ActionItem {
	sourceID := artefact.ID
	action := domain.ActionItem{
		ID:               uuid.NewString(),
		Title:            p.Title,
		Status:           domain.ActionOpen,
		OriginPeriod:     artefact.PeriodID,
		SourceArtefactID: &sourceID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if p.Owner != nil {
		action.Owner = *p.Owner
	}
	if p.DueDate != nil {
		if due, err := time.Parse(domain.DateLayout, *p.DueDate); err == nil {
			action.DueDate = &due
		}
	}
	if !p.Source.IsEmpty() {
		src := p.Source
		action.Source = &src
	}
	return action
}

func titleKey(title string) string {
	return strings.ToLower(strings.Join(strings.Fields(title), " "))
}

// IsArtefactScoped reports whether err is a per-artefact extraction failure
// rather than an infrastructure fault.
func IsArtefactScoped(err error) bool {
	return errors.Is(err, domain.ErrParse) ||
		errors.Is(err, domain.ErrNoText) ||
		errors.Is(err, domain.ErrUnsupportedType)
}
