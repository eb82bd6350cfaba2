package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/boardpack/internal/core/domain"
	"github.com/custodia-labs/boardpack/internal/core/ports/driven"
)

// Ensure Drafter implements the interface.
var _ driven.AgendaDrafter = (*Drafter)(nil)

const (
	factsOnlyClause = "State only facts present in the payload. No speculation, advice or forecasts."
	openClause      = "You may add brief context where the payload supports it."
)

// Drafter drafts agenda sections by prompting an LLM.
type Drafter struct {
	llm     driven.LLMService
	prompts driven.PromptStore
}

// NewDrafter creates an LLM-backed agenda drafter.
func NewDrafter(llm driven.LLMService, prompts driven.PromptStore) *Drafter {
	return &Drafter{llm: llm, prompts: prompts}
}

// SetPromptStore replaces the prompt store.
func (d *Drafter) SetPromptStore(store driven.PromptStore) {
	d.prompts = store
}

// Draft asks the model for the sections of req.Profile.Part.
func (d *Drafter) Draft(ctx context.Context, req driven.DraftRequest) ([]byte, error) {
	if d.llm == nil {
		return nil, domain.ErrLLMUnavailable
	}
	system, err := loadPrompt(d.prompts, driven.PromptAgendaSystem)
	if err != nil {
		return nil, err
	}
	user, err := loadPrompt(d.prompts, driven.PromptAgendaDraft)
	if err != nil {
		return nil, err
	}

	clause := openClause
	if req.Profile.FactsOnly {
		clause = factsOnlyClause
	}
	language := req.Profile.Language
	if language == "" {
		language = "en"
	}
	keys := make([]string, 0, 5)
	for _, k := range req.Profile.Part.Sections() {
		keys = append(keys, string(k))
	}

	out, err := d.llm.Chat(ctx, []driven.ChatMessage{
		{Role: "system", Content: fmt.Sprintf(system, language, clause)},
		{Role: "user", Content: fmt.Sprintf(user, strings.Join(keys, ", "), req.Payload)},
	}, driven.ChatOptions{MaxTokens: draftMaxTokens, JSON: true})
	if err != nil {
		return nil, fmt.Errorf("draft %s: %w", req.Profile.Part, err)
	}
	return []byte(stripFences(out)), nil
}
