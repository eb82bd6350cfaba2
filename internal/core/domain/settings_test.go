package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAIProvider(t *testing.T) {
	tests := []struct {
		provider AIProvider
		valid    bool
		needsKey bool
		local    bool
		desc     string
		model    string
	}{
		{AIProviderOllama, true, false, true, "Ollama (local)", "llama3.1"},
		{AIProviderOpenAI, true, true, false, "OpenAI (cloud)", "gpt-4o-mini"},
		{AIProviderAnthropic, true, true, false, "Anthropic (cloud)", "claude-3-5-sonnet-latest"},
		{"cohere", false, false, false, "Unknown", ""},
	}
	for _, tt := range tests {
		t.Run(string(tt.provider), func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.provider.IsValid())
			assert.Equal(t, tt.needsKey, tt.provider.RequiresAPIKey())
			assert.Equal(t, tt.local, tt.provider.IsLocal())
			assert.Equal(t, tt.desc, tt.provider.Description())
			assert.Equal(t, tt.model, DefaultLLMModel(tt.provider))
		})
	}
	assert.Len(t, AllLLMProviders(), 3)
}

func TestLLMSettings_IsConfigured(t *testing.T) {
	assert.False(t, LLMSettings{}.IsConfigured())
	assert.True(t, LLMSettings{Provider: AIProviderOllama}.IsConfigured())
	assert.False(t, LLMSettings{Provider: AIProviderOpenAI}.IsConfigured())
	assert.True(t, LLMSettings{Provider: AIProviderOpenAI, APIKey: "sk"}.IsConfigured())
}

func TestEvidencePolicy(t *testing.T) {
	assert.True(t, EvidenceStrip.IsValid())
	assert.True(t, EvidenceReject.IsValid())
	assert.False(t, EvidencePolicy("warn").IsValid())
}

func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()
	assert.Equal(t, "en", s.Agenda.Language)
	assert.True(t, s.Agenda.FactsOnly)
	assert.Equal(t, 4, s.Agenda.FYStartMonth)
	assert.Equal(t, 3, s.Agenda.TrendWindow)
	assert.Equal(t, "Pacific/Auckland", s.Agenda.Timezone)
	assert.True(t, s.Agenda.SplitDrafting)
	assert.Equal(t, EvidenceStrip, s.Agenda.EvidencePolicy)
	assert.Equal(t, 4, s.Extraction.Concurrency)
	assert.False(t, s.LLM.IsConfigured())
}
