package domain

const unknownDescription = "Unknown"

// AIProvider identifies an LLM service provider.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is a local Ollama instance (OpenAI-compatible endpoint).
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderAnthropic
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	default:
		return unknownDescription
	}
}

// LLMSettings holds LLM provider configuration.
type LLMSettings struct {
	// Provider is the LLM service provider.
	Provider AIProvider

	// Model is the LLM model name.
	Model string

	// BaseURL is the API endpoint (for Ollama or compatible gateways).
	BaseURL string

	// APIKey is the API key (for OpenAI/Anthropic).
	APIKey string
}

// IsConfigured returns true if the LLM provider is set up.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	return true
}

// EvidencePolicy decides what happens to numeric bullets without evidence.
type EvidencePolicy string

// Evidence policies.
const (
	// EvidenceStrip removes offending bullets from the agenda.
	EvidenceStrip EvidencePolicy = "strip"

	// EvidenceReject fails the generation.
	EvidenceReject EvidencePolicy = "reject"
)

// IsValid returns true if the policy is recognised.
func (p EvidencePolicy) IsValid() bool {
	return p == EvidenceStrip || p == EvidenceReject
}

// AgendaSettings configures agenda generation.
type AgendaSettings struct {
	// Language is the output language tag passed to the drafter (e.g. "en").
	Language string

	// FactsOnly suppresses speculative language in drafted bullets.
	FactsOnly bool

	// FYStartMonth is the first month of the financial year (4 = April).
	FYStartMonth int

	// TrendWindow is the number of prior periods in the trend view.
	TrendWindow int

	// Timezone is the IANA zone used to decide the current period.
	Timezone string

	// SplitDrafting issues separate core and people drafting calls.
	SplitDrafting bool

	// EvidencePolicy handles numeric bullets without evidence.
	EvidencePolicy EvidencePolicy
}

// ExtractionSettings configures the per-artefact extraction fan-out.
type ExtractionSettings struct {
	// Concurrency bounds parallel artefact extractions.
	Concurrency int

	// RequestsPerMinute bounds LLM extraction calls. Zero disables limiting.
	RequestsPerMinute int
}

// AppSettings holds all application configuration.
type AppSettings struct {
	// LLM holds LLM provider settings.
	LLM LLMSettings

	// Agenda holds agenda generation settings.
	Agenda AgendaSettings

	// Extraction holds extraction fan-out settings.
	Extraction ExtractionSettings
}

// DefaultAppSettings returns the default settings.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		LLM: LLMSettings{},
		Agenda: AgendaSettings{
			Language:       "en",
			FactsOnly:      true,
			FYStartMonth:   4,
			TrendWindow:    3,
			Timezone:       "Pacific/Auckland",
			SplitDrafting:  true,
			EvidencePolicy: EvidenceStrip,
		},
		Extraction: ExtractionSettings{
			Concurrency:       4,
			RequestsPerMinute: 30,
		},
	}
}

// AllLLMProviders returns providers that support LLM operations.
func AllLLMProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
		AIProviderAnthropic,
	}
}

// DefaultLLMModel returns the default model for a provider.
func DefaultLLMModel(p AIProvider) string {
	switch p {
	case AIProviderOllama:
		return "llama3.1"
	case AIProviderOpenAI:
		return "gpt-4o-mini"
	case AIProviderAnthropic:
		return "claude-3-5-sonnet-latest"
	default:
		return ""
	}
}
