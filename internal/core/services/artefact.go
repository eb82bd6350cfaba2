package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/boardpack/internal/core/domain"
	"github.com/custodia-labs/boardpack/internal/core/ports/driven"
	"github.com/custodia-labs/boardpack/internal/core/ports/driving"
	"github.com/custodia-labs/boardpack/internal/logger"
)

// Ensure ArtefactService implements the interface.
var _ driving.ArtefactService = (*ArtefactService)(nil)

// MaxUploadSize bounds the raw size of one uploaded file.
const MaxUploadSize = 25 << 20

// notesMIMEType is recorded on authored notes.
const notesMIMEType = "text/plain"

// ArtefactService manages the documents attached to a period.
type ArtefactService struct {
	periodStore     driven.PeriodStore
	artefactStore   driven.ArtefactStore
	extractionStore driven.ExtractionStore
	actionStore     driven.ActionStore
	extractors      driven.TextExtractorRegistry
	now             func() time.Time
}

// NewArtefactService creates a new artefact service.
func NewArtefactService(
	periodStore driven.PeriodStore,
	artefactStore driven.ArtefactStore,
	extractionStore driven.ExtractionStore,
	actionStore driven.ActionStore,
	extractors driven.TextExtractorRegistry,
) *ArtefactService {
	return &ArtefactService{
		periodStore:     periodStore,
		artefactStore:   artefactStore,
		extractionStore: extractionStore,
		actionStore:     actionStore,
		extractors:      extractors,
		now:             time.Now,
	}
}

// Upload stores a file and extracts its text.
func (s *ArtefactService) Upload(
	ctx context.Context,
	periodID domain.PeriodID,
	kind domain.ArtefactKind,
	file domain.RawFile,
) (*domain.Artefact, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: artefact kind %q", domain.ErrUnsupportedType, kind)
	}
	if kind == domain.ArtefactNotes {
		return nil, fmt.Errorf("%w: notes are added as text, not uploaded", domain.ErrInvalidInput)
	}
	if len(file.Content) == 0 {
		return nil, fmt.Errorf("%w: empty file", domain.ErrInvalidInput)
	}
	if len(file.Content) > MaxUploadSize {
		return nil, fmt.Errorf("%w: file exceeds %d bytes", domain.ErrInvalidInput, MaxUploadSize)
	}
	if _, err := ensurePeriod(ctx, s.periodStore, periodID); err != nil {
		return nil, err
	}

	artefact := &domain.Artefact{
		ID:        uuid.NewString(),
		PeriodID:  periodID,
		Kind:      kind,
		Filename:  file.Filename,
		MIMEType:  file.MIMEType,
		Size:      int64(len(file.Content)),
		CreatedAt: s.now(),
	}

	text, err := s.extractText(ctx, &file)
	if err != nil {
		msg := err.Error()
		artefact.ParseError = &msg
		logger.Warn("text extraction failed for %s (%s): %v", file.Filename, file.MIMEType, err)
	} else {
		artefact.Text = &text
	}

	if err := s.artefactStore.Save(ctx, artefact); err != nil {
		return nil, fmt.Errorf("save artefact: %w", err)
	}
	return artefact, nil
}

func (s *ArtefactService) extractText(ctx context.Context, file *domain.RawFile) (string, error) {
	if s.extractors == nil {
		return "", domain.ErrUnsupportedType
	}
	text, err := s.extractors.Extract(ctx, file)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", domain.ErrNoText
	}
	return text, nil
}

// AddNote stores an authored board note.
func (s *ArtefactService) AddNote(ctx context.Context, periodID domain.PeriodID, text string) (*domain.Artefact, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: empty note", domain.ErrInvalidInput)
	}
	if _, err := ensurePeriod(ctx, s.periodStore, periodID); err != nil {
		return nil, err
	}
	artefact := &domain.Artefact{
		ID:        uuid.NewString(),
		PeriodID:  periodID,
		Kind:      domain.ArtefactNotes,
		MIMEType:  notesMIMEType,
		Size:      int64(len(text)),
		Text:      &text,
		CreatedAt: s.now(),
	}
	if err := s.artefactStore.Save(ctx, artefact); err != nil {
		return nil, fmt.Errorf("save note: %w", err)
	}
	return artefact, nil
}

// Get retrieves an artefact by ID.
func (s *ArtefactService) Get(ctx context.Context, id string) (*domain.Artefact, error) {
	return s.artefactStore.Get(ctx, id)
}

// ListByPeriod returns a period's artefacts.
func (s *ArtefactService) ListByPeriod(ctx context.Context, periodID domain.PeriodID) ([]domain.Artefact, error) {
	if err := periodID.Validate(); err != nil {
		return nil, err
	}
	return s.artefactStore.ListByPeriod(ctx, periodID)
}

// Delete removes an artefact with its extractions and sourced actions.
func (s *ArtefactService) Delete(ctx context.Context, id string) error {
	if _, err := s.artefactStore.Get(ctx, id); err != nil {
		return err
	}
	if err := s.extractionStore.DeleteByArtefact(ctx, id); err != nil {
		return fmt.Errorf("delete extractions: %w", err)
	}
	if err := s.actionStore.DeleteByArtefact(ctx, id); err != nil {
		return fmt.Errorf("delete actions: %w", err)
	}
	if err := s.artefactStore.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete artefact: %w", err)
	}
	return nil
}
