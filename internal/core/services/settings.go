package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/boardpack/internal/core/domain"
	"github.com/custodia-labs/boardpack/internal/core/ports/driven"
	"github.com/custodia-labs/boardpack/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyLLMProvider       = "llm.provider"
	keyLLMModel          = "llm.model"
	keyLLMBaseURL        = "llm.base_url"
	keyLLMAPIKey         = "llm.api_key"
	keyAgendaLanguage    = "agenda.language"
	keyAgendaFactsOnly   = "agenda.facts_only"
	keyAgendaFYStart     = "agenda.fy_start_month"
	keyAgendaTrendWindow = "agenda.trend_window"
	keyAgendaTimezone    = "agenda.timezone"
	keyAgendaSplit       = "agenda.split_drafting"
	keyAgendaEvidence    = "agenda.evidence_policy"
	keyExtractConc       = "extraction.concurrency"
	keyExtractRPM        = "extraction.requests_per_minute"
)

// defaultOllamaURL is used when Ollama is selected without a base URL.
const defaultOllamaURL = "http://localhost:11434/v1"

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	aiValidator driven.AIConfigValidator
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore, aiValidator driven.AIConfigValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		aiValidator: aiValidator,
	}
}

// Get retrieves current application settings. Missing or invalid values
// fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		LLM: domain.LLMSettings{
			Provider: s.getProvider(keyLLMProvider, defaults.LLM.Provider),
			Model:    s.getString(keyLLMModel, defaults.LLM.Model),
			BaseURL:  s.configStore.GetString(keyLLMBaseURL),
			APIKey:   s.configStore.GetString(keyLLMAPIKey),
		},
		Agenda: domain.AgendaSettings{
			Language:       s.getString(keyAgendaLanguage, defaults.Agenda.Language),
			FactsOnly:      s.getBool(keyAgendaFactsOnly, defaults.Agenda.FactsOnly),
			FYStartMonth:   s.getIntIn(keyAgendaFYStart, 1, 12, defaults.Agenda.FYStartMonth),
			TrendWindow:    s.getIntIn(keyAgendaTrendWindow, 1, 24, defaults.Agenda.TrendWindow),
			Timezone:       s.getString(keyAgendaTimezone, defaults.Agenda.Timezone),
			SplitDrafting:  s.getBool(keyAgendaSplit, defaults.Agenda.SplitDrafting),
			EvidencePolicy: s.getPolicy(defaults.Agenda.EvidencePolicy),
		},
		Extraction: domain.ExtractionSettings{
			Concurrency:       s.getIntIn(keyExtractConc, 1, 64, defaults.Extraction.Concurrency),
			RequestsPerMinute: s.getIntIn(keyExtractRPM, 0, 10000, defaults.Extraction.RequestsPerMinute),
		},
	}
	if settings.LLM.Model == "" {
		settings.LLM.Model = domain.DefaultLLMModel(settings.LLM.Provider)
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key   string
		value any
	}{
		{keyLLMProvider, settings.LLM.Provider.String()},
		{keyLLMModel, settings.LLM.Model},
		{keyLLMBaseURL, settings.LLM.BaseURL},
		{keyAgendaLanguage, settings.Agenda.Language},
		{keyAgendaFactsOnly, settings.Agenda.FactsOnly},
		{keyAgendaFYStart, settings.Agenda.FYStartMonth},
		{keyAgendaTrendWindow, settings.Agenda.TrendWindow},
		{keyAgendaTimezone, settings.Agenda.Timezone},
		{keyAgendaSplit, settings.Agenda.SplitDrafting},
		{keyAgendaEvidence, string(settings.Agenda.EvidencePolicy)},
		{keyExtractConc, settings.Extraction.Concurrency},
		{keyExtractRPM, settings.Extraction.RequestsPerMinute},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	// An empty key keeps the stored one.
	if settings.LLM.APIKey != "" {
		if err := s.configStore.Set(keyLLMAPIKey, settings.LLM.APIKey); err != nil {
			return fmt.Errorf("save %s: %w", keyLLMAPIKey, err)
		}
	}
	return nil
}

// SetLLMProvider configures the LLM provider. An empty model selects the
// provider default; an empty base URL selects the local default for Ollama.
func (s *SettingsService) SetLLMProvider(provider domain.AIProvider, model, baseURL, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("%w: LLM provider %q", domain.ErrInvalidInput, provider)
	}
	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("%w: API key required for %s", domain.ErrInvalidInput, provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.LLM.Provider = provider
	settings.LLM.Model = model
	if model == "" {
		settings.LLM.Model = domain.DefaultLLMModel(provider)
	}
	settings.LLM.BaseURL = baseURL
	if baseURL == "" && provider.IsLocal() {
		settings.LLM.BaseURL = defaultOllamaURL
	}
	settings.LLM.APIKey = apiKey

	return s.Save(settings)
}

// Validate checks the stored settings for consistency.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	var errs []error
	if raw := s.configStore.GetString(keyLLMProvider); raw != "" && !domain.AIProvider(raw).IsValid() {
		errs = append(errs, fmt.Errorf("unknown LLM provider %q", raw))
	}
	if settings.LLM.Provider != "" && !settings.LLM.IsConfigured() {
		errs = append(errs, fmt.Errorf("LLM provider %s is missing an API key", settings.LLM.Provider))
	}
	if raw := s.configStore.GetString(keyAgendaEvidence); raw != "" && !domain.EvidencePolicy(raw).IsValid() {
		errs = append(errs, fmt.Errorf("unknown evidence policy %q", raw))
	}
	if _, err := time.LoadLocation(settings.Agenda.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("timezone %q: %w", settings.Agenda.Timezone, err))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, errors.Join(errs...))
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// ValidateLLMConfig validates the current LLM configuration by pinging the provider.
func (s *SettingsService) ValidateLLMConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateLLM(&settings.LLM)
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

// getIntIn reads an int, falling back when absent or outside [lo, hi].
func (s *SettingsService) getIntIn(key string, lo, hi, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	val := s.configStore.GetInt(key)
	if val < lo || val > hi {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getProvider(key string, defaultVal domain.AIProvider) domain.AIProvider {
	provider := domain.AIProvider(s.configStore.GetString(key))
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}

func (s *SettingsService) getPolicy(defaultVal domain.EvidencePolicy) domain.EvidencePolicy {
	policy := domain.EvidencePolicy(s.configStore.GetString(keyAgendaEvidence))
	if !policy.IsValid() {
		return defaultVal
	}
	return policy
}
