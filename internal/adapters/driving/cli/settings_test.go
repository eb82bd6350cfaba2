package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/boardpack/internal/core/domain"
)

// Test helper functions in settings.go

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Short key",
			input:    "abc123",
			expected: "****",
		},
		{
			name:     "Exactly 8 chars",
			input:    "12345678",
			expected: "****",
		},
		{
			name:     "Long key",
			input:    "sk-1234567890abcdef",
			expected: "sk-1...cdef",
		},
		{
			name:     "Very long key",
			input:    "sk-proj-1234567890abcdefghijklmnop",
			expected: "sk-p...mnop",
		},
		{
			name:     "Empty key",
			input:    "",
			expected: "****",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := maskAPIKey(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestParseChoice(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		maxVal     int
		defaultVal int
		expected   int
	}{
		{
			name:       "Empty input returns default",
			input:      "",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Valid choice within range",
			input:      "3",
			maxVal:     5,
			defaultVal: 1,
			expected:   3,
		},
		{
			name:       "Choice below minimum returns default",
			input:      "0",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Choice above maximum returns default",
			input:      "6",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Invalid input returns default",
			input:      "abc",
			maxVal:     5,
			defaultVal: 2,
			expected:   2,
		},
		{
			name:       "Negative number returns default",
			input:      "-1",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Whitespace returns default",
			input:      "   ",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Maximum value is valid",
			input:      "5",
			maxVal:     5,
			defaultVal: 1,
			expected:   5,
		},
		{
			name:       "Minimum value is valid",
			input:      "1",
			maxVal:     5,
			defaultVal: 3,
			expected:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parseChoice(tt.input, tt.maxVal, tt.defaultVal)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestParseYesNo(t *testing.T) {
	assert.True(t, parseYesNo("Y", false))
	assert.True(t, parseYesNo("yes", false))
	assert.False(t, parseYesNo("no", true))
	assert.True(t, parseYesNo("", true))
	assert.False(t, parseYesNo("maybe", false))
}

func withStdin(t *testing.T, input string) {
	t.Helper()
	old := stdin
	stdin = strings.NewReader(input)
	t.Cleanup(func() { stdin = old })
}

func TestSettingsShow_Defaults(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "settings")
	require.NoError(t, err)
	assert.Contains(t, out, "[LLM]")
	assert.Contains(t, out, "Status: not configured")
	assert.Contains(t, out, "Language: en")
	assert.Contains(t, out, "Financial year starts: month 4")
	assert.Contains(t, out, "Timezone: Pacific/Auckland")
	assert.Contains(t, out, "Evidence policy: strip")
	assert.Contains(t, out, "Concurrency: 4")
	assert.Contains(t, out, "Configuration is valid.")
}

func TestSettingsLLM_Ollama(t *testing.T) {
	env := setupTestServices(t)
	withStdin(t, "1\n\n\n")

	out, err := execute(t, "settings", "llm")
	require.NoError(t, err)
	assert.Contains(t, out, "Validating configuration... OK")
	assert.Contains(t, out, "LLM provider configured: Ollama (local) (llama3.1)")

	settings, err := env.settings.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.AIProviderOllama, settings.LLM.Provider)
	assert.Equal(t, "http://localhost:11434/v1", settings.LLM.BaseURL)
}

func TestSettingsLLM_OpenAIKeyMasked(t *testing.T) {
	setupTestServices(t)
	withStdin(t, "2\ngpt-4o\nsk-test-1234567890\n")

	_, err := execute(t, "settings", "llm")
	require.NoError(t, err)

	out, err := execute(t, "settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Provider: OpenAI (cloud)")
	assert.Contains(t, out, "Model: gpt-4o")
	assert.Contains(t, out, "API Key: sk-t...7890")
	assert.NotContains(t, out, "sk-test-1234567890")
}

func TestSettingsLLM_MissingKey(t *testing.T) {
	setupTestServices(t)
	withStdin(t, "3\n\n\n")

	_, err := execute(t, "settings", "llm")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key is required")
}

func TestSettingsAgenda(t *testing.T) {
	env := setupTestServices(t)
	withStdin(t, "fr\nno\n7\n6\n\nno\nreject\n")

	out, err := execute(t, "settings", "agenda")
	require.NoError(t, err)
	assert.Contains(t, out, "Agenda settings saved.")

	settings, err := env.settings.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.AgendaSettings{
		Language:       "fr",
		FactsOnly:      false,
		FYStartMonth:   7,
		TrendWindow:    6,
		Timezone:       "Pacific/Auckland",
		SplitDrafting:  false,
		EvidencePolicy: domain.EvidenceReject,
	}, settings.Agenda)
}
