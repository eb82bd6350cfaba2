package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/custodia-labs/boardpack/internal/core/ports/driven"
)

// Ensure PromptStore implements the interface.
var _ driven.PromptStore = (*PromptStore)(nil)

// PromptStore loads LLM prompts from user-editable files on disk, falling
// back to embedded defaults. The directory and default files are created on
// the first Load, never in the constructor.
type PromptStore struct {
	mu        sync.RWMutex
	promptDir string
	cache     map[string]string
	initOnce  sync.Once
	initErr   error
}

// defaultPrompts are written to the prompt directory on first use and
// served when a file is missing.
//
//nolint:lll // Prompt content is intentionally long and should not be wrapped.
var defaultPrompts = map[string]string{
	driven.PromptExtractFinance: `Extract the financial figures from the management report below.
Return one JSON object:
{"currency": "<ISO code>", "metrics": [{"name": "", "value": 0, "currency": "", "period_scope": "month|ytd|fy", "source": {"artefact_id": "%[1]s", "page": null, "quote": ""}}],
 "highlights": [{"text": "", "source": {...}}], "outliers": [{"text": "", "source": {...}}]}
Copy each figure exactly as a plain number. Quote the line each figure came from.

Document %[1]s:
%[2]s`,

	driven.PromptExtractProductivity: `Extract team and per-person productive hours from the timesheet summary below.
Return one JSON object:
{"team": {"chargeable_hours": 0, "internal_hours": 0, "available_hours": null},
 "people": [{"person_name": "", "chargeable_hours": 0, "internal_hours": 0, "available_hours": null, "source": {"artefact_id": "%[1]s", "row": null, "quote": ""}}],
 "highlights": [""], "concerns": [""]}
Report hours, not percentages. Leave a field null when the document does not give it.

Document %[1]s:
%[2]s`,

	driven.PromptExtractAbsence: `Extract leave taken per person from the absence report below.
Return one JSON object:
{"unit": "days|hours", "entries": [{"person_name": "", "type": "sick|annual|wellbeing|alternative", "days": 0, "hours": null, "start_date": "YYYY-MM-DD", "end_date": "YYYY-MM-DD", "sources": [{"artefact_id": "%[1]s", "row": null, "quote": ""}]}]}
Use the leave type label exactly as the report names it when unsure.

Document %[1]s:
%[2]s`,

	driven.PromptExtractMinutes: `Extract the discussion topics, decisions and action items from the meeting minutes below.
Return one JSON object:
{"topics": [{"title": "", "summary": "", "source": {"artefact_id": "%[1]s", "page": null, "quote": ""}}],
 "decisions": [{"text": "", "source": {...}}],
 "action_items": [{"title": "", "owner": null, "due_date": "YYYY-MM-DD or null", "status": "open|in_progress|done", "source": {...}}]}

Document %[1]s:
%[2]s`,

	driven.PromptAgendaSystem: `You draft the monthly board agenda for a professional services firm.
Write in language "%s". %s
Every bullet that states a number must carry at least one evidence_refs entry
pointing at an artefact_id from the payload. Respond with JSON only.`,

	driven.PromptAgendaDraft: `Draft these agenda sections: %s.
Return {"sections": [{"key": "<section key>", "title": "", "bullets": [{"text": "", "key_topic": false, "evidence_refs": [{"artefact_id": "", "page": null, "row": null, "quote": ""}]}]}]}.
Board notes are key topics. Mention people who only appear in absence data.

Payload:
%s`,
}

// NewPromptStore creates a new file-based prompt store.
// If promptDir is empty, defaults to ~/.boardpack/prompts/.
//
// The constructor does not perform any I/O - directory creation and
// file writes happen lazily on first Load() call.
func NewPromptStore(promptDir string) (*PromptStore, error) {
	if promptDir == "" {
		dir, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		promptDir = filepath.Join(dir, "prompts")
	}

	return &PromptStore{
		promptDir: promptDir,
		cache:     make(map[string]string),
	}, nil
}

// Load returns the prompt template for the given name.
// On first call, initialises the prompt directory and creates default files.
// Returns cached value if available, otherwise loads from file.
// Falls back to embedded default if file doesn't exist.
func (s *PromptStore) Load(name string) (string, error) {
	// Ensure directory and defaults exist (lazy init)
	s.initOnce.Do(s.initialise)
	if s.initErr != nil {
		// Fall back to embedded defaults if init failed
		if prompt, ok := defaultPrompts[name]; ok {
			return prompt, nil
		}
		return "", fmt.Errorf("prompt store init failed: %w", s.initErr)
	}

	// Check cache first (read lock)
	s.mu.RLock()
	if prompt, ok := s.cache[name]; ok {
		s.mu.RUnlock()
		return prompt, nil
	}
	s.mu.RUnlock()

	// Load from file (no lock held during I/O)
	prompt, err := s.loadFromFile(name)
	if err != nil {
		// Fall back to embedded default
		if defaultPrompt, ok := defaultPrompts[name]; ok {
			return defaultPrompt, nil
		}
		return "", fmt.Errorf("load prompt %q: %w", name, err)
	}

	// Cache the result (write lock)
	// Use double-check pattern to avoid overwriting concurrent loads
	s.mu.Lock()
	if _, ok := s.cache[name]; !ok {
		s.cache[name] = prompt
	} else {
		// Another goroutine loaded it first, use their value
		prompt = s.cache[name]
	}
	s.mu.Unlock()

	return prompt, nil
}

// Reload clears the prompt cache, forcing fresh loads from disk.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}

// Dir returns the prompt directory path.
func (s *PromptStore) Dir() string {
	return s.promptDir
}

// initialise creates the prompt directory and default files.
// Called once via sync.Once on first Load().
func (s *PromptStore) initialise() {
	// Create directory
	if err := os.MkdirAll(s.promptDir, 0700); err != nil {
		s.initErr = fmt.Errorf("create prompt directory: %w", err)
		return
	}

	// Create default prompt files (only if they don't exist)
	for name, content := range defaultPrompts {
		path := filepath.Join(s.promptDir, name+".txt")
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := os.WriteFile(path, []byte(content), 0600); err != nil {
				s.initErr = fmt.Errorf("create default prompt %q: %w", name, err)
				return
			}
		}
	}

	// Create README
	if err := s.createReadme(); err != nil {
		s.initErr = err
	}
}

// loadFromFile reads a prompt from disk.
func (s *PromptStore) loadFromFile(name string) (string, error) {
	path := filepath.Join(s.promptDir, name+".txt")
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// createReadme writes a README file explaining the prompts directory.
func (s *PromptStore) createReadme() error {
	path := filepath.Join(s.promptDir, "README.md")
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return nil // Already exists or stat error (ignore)
	}

	content := `# boardpack prompts

Templates used when extracting facts from board-pack documents and drafting
the agenda. Edit a file to change the wording; delete it to restore the
default on next use.

## Files

- ` + "`extract_finance.txt`, `extract_productivity.txt`, `extract_absence.txt`, `extract_minutes.txt`" + `
  take the artefact id and the document text (` + "`%[1]s`, `%[2]s`" + `).
- ` + "`agenda_system.txt`" + ` takes the language and the facts-only clause.
- ` + "`agenda_draft.txt`" + ` takes the section keys and the JSON payload.

Keep the placeholders. Changing an extraction prompt changes the extractor
version recorded on new extractions.
`
	return os.WriteFile(path, []byte(content), 0600)
}
