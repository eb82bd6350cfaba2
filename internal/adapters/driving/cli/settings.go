package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/boardpack/internal/core/domain"
)

// stdin is read by the interactive settings commands.
var stdin io.Reader = os.Stdin

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the LLM provider and agenda generation options.

Settings are stored in ~/.boardpack/config.toml.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsLLMCmd = &cobra.Command{
	Use:   "llm",
	Short: "Configure LLM provider",
	Long:  `Configure the LLM provider used for extraction and agenda drafting.`,
	RunE:  runSettingsLLM,
}

var settingsAgendaCmd = &cobra.Command{
	Use:   "agenda",
	Short: "Configure agenda generation",
	Long:  `Set the agenda language, financial year, trend window and evidence policy.`,
	RunE:  runSettingsAgenda,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsLLMCmd)
	settingsCmd.AddCommand(settingsAgendaCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[LLM]")
	cmd.Printf("  Provider: %s\n", settings.LLM.Provider.Description())
	cmd.Printf("  Model: %s\n", settings.LLM.Model)
	if settings.LLM.BaseURL != "" || settings.LLM.Provider.IsLocal() {
		cmd.Printf("  Base URL: %s\n", settings.LLM.BaseURL)
	}
	if settings.LLM.Provider.RequiresAPIKey() {
		if settings.LLM.APIKey != "" {
			cmd.Printf("  API Key: %s\n", maskAPIKey(settings.LLM.APIKey))
		} else {
			cmd.Printf("  API Key: (not set)\n")
		}
	}
	status := "configured"
	if !settings.LLM.IsConfigured() {
		status = "not configured"
	}
	cmd.Printf("  Status: %s\n", status)
	cmd.Println()

	a := settings.Agenda
	cmd.Println("[Agenda]")
	cmd.Printf("  Language: %s\n", a.Language)
	cmd.Printf("  Facts only: %s\n", yesNo(a.FactsOnly))
	cmd.Printf("  Financial year starts: month %d\n", a.FYStartMonth)
	cmd.Printf("  Trend window: %d periods\n", a.TrendWindow)
	cmd.Printf("  Timezone: %s\n", a.Timezone)
	cmd.Printf("  Split drafting: %s\n", yesNo(a.SplitDrafting))
	cmd.Printf("  Evidence policy: %s\n", a.EvidencePolicy)
	cmd.Println()

	cmd.Println("[Extraction]")
	cmd.Printf("  Concurrency: %d\n", settings.Extraction.Concurrency)
	cmd.Printf("  Requests per minute: %d\n", settings.Extraction.RequestsPerMinute)
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'boardpack settings llm' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsLLM(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}
	return configureLLMProvider(cmd, bufio.NewReader(stdin))
}

func configureLLMProvider(cmd *cobra.Command, reader *bufio.Reader) error {
	cmd.Println("Select LLM Provider")
	providers := domain.AllLLMProviders()
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	input := readLine(reader)
	idx := parseChoice(input, len(providers), 1)
	selectedProvider := providers[idx-1]

	defaultModel := domain.DefaultLLMModel(selectedProvider)
	cmd.Printf("Enter model name [%s]: ", defaultModel)
	model := readLine(reader)
	if model == "" {
		model = defaultModel
	}

	var baseURL string
	if selectedProvider.IsLocal() {
		cmd.Print("Enter base URL [default]: ")
		baseURL = readLine(reader)
	}

	var apiKey string
	if selectedProvider.RequiresAPIKey() {
		cmd.Print("Enter API key: ")
		apiKey = readPassword(reader)
		cmd.Println()
		if apiKey == "" {
			return errors.New("API key is required for this provider")
		}
	}

	if err := settingsService.SetLLMProvider(selectedProvider, model, baseURL, apiKey); err != nil {
		return fmt.Errorf("failed to configure LLM provider: %w", err)
	}

	cmd.Print("Validating configuration... ")
	if err := settingsService.ValidateLLMConfig(); err != nil {
		cmd.Printf("FAILED: %v\n", err)
		return fmt.Errorf("LLM configuration validation failed: %w", err)
	}
	cmd.Println("OK")

	cmd.Printf("LLM provider configured: %s (%s)\n\n", selectedProvider.Description(), model)
	return nil
}

func runSettingsAgenda(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	reader := bufio.NewReader(stdin)
	a := &settings.Agenda

	cmd.Printf("Language [%s]: ", a.Language)
	if v := readLine(reader); v != "" {
		a.Language = v
	}
	cmd.Printf("Facts only (yes/no) [%s]: ", yesNo(a.FactsOnly))
	a.FactsOnly = parseYesNo(readLine(reader), a.FactsOnly)
	cmd.Printf("Financial year start month (1-12) [%d]: ", a.FYStartMonth)
	a.FYStartMonth = parseChoice(readLine(reader), 12, a.FYStartMonth)
	cmd.Printf("Trend window in periods (1-12) [%d]: ", a.TrendWindow)
	a.TrendWindow = parseChoice(readLine(reader), 12, a.TrendWindow)
	cmd.Printf("Timezone [%s]: ", a.Timezone)
	if v := readLine(reader); v != "" {
		a.Timezone = v
	}
	cmd.Printf("Split drafting (yes/no) [%s]: ", yesNo(a.SplitDrafting))
	a.SplitDrafting = parseYesNo(readLine(reader), a.SplitDrafting)
	cmd.Printf("Evidence policy (strip/reject) [%s]: ", a.EvidencePolicy)
	if v := domain.EvidencePolicy(strings.ToLower(readLine(reader))); v.IsValid() {
		a.EvidencePolicy = v
	}

	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
	} else {
		cmd.Println("Agenda settings saved.")
	}
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

func parseYesNo(input string, defaultVal bool) bool {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "y", "yes", "true":
		return true
	case "n", "no", "false":
		return false
	default:
		return defaultVal
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// readPassword reads without echo when stdin is a terminal.
func readPassword(reader *bufio.Reader) string {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	return readLine(reader)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
