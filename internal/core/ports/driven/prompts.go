package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files, embed them in the binary,
// or fetch them from a remote configuration service.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// Returns the prompt content and any error encountered.
	// If the prompt is not found, implementations should return a sensible default
	// or an error, depending on whether the prompt is required.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	// This is useful when prompts may have been edited on disk.
	Reload()
}

// Well-known prompt names used throughout the application.
// These constants define the contract between prompt consumers and providers.
const (
	// PromptExtractFinance extracts finance metrics.
	// The template expects %s (artefact id) and %s (document text).
	PromptExtractFinance = "extract_finance"

	// PromptExtractProductivity extracts team and per-person hours.
	// The template expects %s (artefact id) and %s (document text).
	PromptExtractProductivity = "extract_productivity"

	// PromptExtractAbsence extracts per-person absence.
	// The template expects %s (artefact id) and %s (document text).
	PromptExtractAbsence = "extract_absence"

	// PromptExtractMinutes extracts topics, decisions and actions.
	// The template expects %s (artefact id) and %s (document text).
	PromptExtractMinutes = "extract_minutes"

	// PromptAgendaSystem is the drafting system prompt.
	// The template expects %s (language) and %s (facts-only clause).
	PromptAgendaSystem = "agenda_system"

	// PromptAgendaDraft is the drafting user prompt.
	// The template expects %s (comma-separated section keys) and %s (JSON payload).
	PromptAgendaDraft = "agenda_draft"
)

// PromptStoreAware is an optional interface for services that can use custom prompts.
// Services implementing this interface can have their prompt templates customised
// by injecting a PromptStore after construction.
type PromptStoreAware interface {
	// SetPromptStore sets the prompt store for loading customisable prompts.
	// If not set, the service should use hardcoded default prompts.
	SetPromptStore(store PromptStore)
}
