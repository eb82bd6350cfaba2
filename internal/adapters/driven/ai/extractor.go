package ai

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/boardpack/internal/core/domain"
	"github.com/custodia-labs/boardpack/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.StructuredExtractor = (*Extractor)(nil)

const (
	extractMaxTokens = 4096
	draftMaxTokens   = 4096
)

const extractSystem = "You read board-pack documents and return the facts they contain " +
	"as a single JSON object. Copy numbers exactly as written. Never invent values."

// extractPrompts maps each extraction kind to its prompt template.
var extractPrompts = map[domain.ExtractionKind]string{
	domain.ExtractionFinance:      driven.PromptExtractFinance,
	domain.ExtractionProductivity: driven.PromptExtractProductivity,
	domain.ExtractionAbsence:      driven.PromptExtractAbsence,
	domain.ExtractionMinutes:      driven.PromptExtractMinutes,
}

// Extractor produces raw extraction JSON by prompting an LLM.
type Extractor struct {
	llm     driven.LLMService
	prompts driven.PromptStore
}

// NewExtractor creates an LLM-backed structured extractor.
func NewExtractor(llm driven.LLMService, prompts driven.PromptStore) *Extractor {
	return &Extractor{llm: llm, prompts: prompts}
}

// SetPromptStore replaces the prompt store.
func (e *Extractor) SetPromptStore(store driven.PromptStore) {
	e.prompts = store
}

// Extract returns the model's JSON answer for the requested kind.
func (e *Extractor) Extract(ctx context.Context, req driven.ExtractRequest) ([]byte, error) {
	if e.llm == nil {
		return nil, domain.ErrLLMUnavailable
	}
	name, ok := extractPrompts[req.Kind]
	if !ok {
		return nil, fmt.Errorf("%w: extraction kind %q", domain.ErrUnsupportedType, req.Kind)
	}
	tmpl, err := loadPrompt(e.prompts, name)
	if err != nil {
		return nil, err
	}

	out, err := e.llm.Chat(ctx, []driven.ChatMessage{
		{Role: "system", Content: extractSystem},
		{Role: "user", Content: fmt.Sprintf(tmpl, req.ArtefactID, req.Text)},
	}, driven.ChatOptions{MaxTokens: extractMaxTokens, JSON: true})
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", req.Kind, err)
	}
	return []byte(stripFences(out)), nil
}

// Version identifies the model and the revision of the extraction prompts,
// so edited prompts are visible on stored extractions.
func (e *Extractor) Version() string {
	model := "none"
	if e.llm != nil {
		model = e.llm.ModelName()
	}
	h := sha256.New()
	for _, kind := range []domain.ExtractionKind{
		domain.ExtractionFinance, domain.ExtractionProductivity,
		domain.ExtractionAbsence, domain.ExtractionMinutes,
	} {
		tmpl, err := loadPrompt(e.prompts, extractPrompts[kind])
		if err != nil {
			return model + "+prompts-unknown"
		}
		h.Write([]byte(tmpl))
		h.Write([]byte{0})
	}
	return model + "+prompts-" + hex.EncodeToString(h.Sum(nil))[:8]
}

func loadPrompt(store driven.PromptStore, name string) (string, error) {
	if store == nil {
		return "", errors.New("no prompt store configured")
	}
	tmpl, err := store.Load(name)
	if err != nil {
		return "", fmt.Errorf("load prompt %s: %w", name, err)
	}
	return tmpl, nil
}

// stripFences removes a Markdown code fence and any prose around the
// outermost JSON object.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		if nl := strings.IndexByte(s, '\n'); nl >= 0 {
			s = s[nl+1:]
		}
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	start, end := strings.IndexByte(s, '{'), strings.LastIndexByte(s, '}')
	if start >= 0 && end > start {
		return s[start : end+1]
	}
	return strings.TrimSpace(s)
}
