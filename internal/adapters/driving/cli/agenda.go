package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/boardpack/internal/core/domain"
)

var agendaCmd = &cobra.Command{
	Use:   "agenda",
	Short: "Generate and view board agendas",
}

var agendaGenerateCmd = &cobra.Command{
	Use:   "generate [YYYY-MM]",
	Short: "Generate the next agenda version for a period",
	Long: `Collects the period's extractions, carry-over actions and comparisons
with earlier periods, drafts the agenda and stores it as a new draft version.
Numeric claims without evidence are stripped or rejected according to the
agenda.evidence_policy setting.`,
	Args: cobra.ExactArgs(1),
	RunE: runAgendaGenerate,
}

var agendaShowCmd = &cobra.Command{
	Use:   "show [YYYY-MM]",
	Short: "Print an agenda",
	Args:  cobra.ExactArgs(1),
	RunE:  runAgendaShow,
}

var agendaListCmd = &cobra.Command{
	Use:   "list [YYYY-MM]",
	Short: "List agenda versions for a period",
	Args:  cobra.ExactArgs(1),
	RunE:  runAgendaList,
}

var agendaFinalizeCmd = &cobra.Command{
	Use:     "finalize [agenda-id]",
	Aliases: []string{"finalise"},
	Short:   "Mark an agenda version final",
	Args:    cobra.ExactArgs(1),
	RunE:    runAgendaFinalize,
}

var (
	agendaVersion int
	agendaJSON    bool
)

func init() {
	agendaShowCmd.Flags().IntVar(&agendaVersion, "version", 0, "agenda version (default latest)")
	agendaShowCmd.Flags().BoolVar(&agendaJSON, "json", false, "output the agenda model as JSON")

	agendaCmd.AddCommand(agendaGenerateCmd)
	agendaCmd.AddCommand(agendaShowCmd)
	agendaCmd.AddCommand(agendaListCmd)
	agendaCmd.AddCommand(agendaFinalizeCmd)
	rootCmd.AddCommand(agendaCmd)
}

func runAgendaGenerate(cmd *cobra.Command, args []string) error {
	if agendaService == nil {
		return errNotConfigured("agenda")
	}
	period, err := parsePeriod(args[0])
	if err != nil {
		return err
	}

	agenda, err := agendaService.Generate(cmd.Context(), period)
	if err != nil {
		if errors.Is(err, domain.ErrLLMUnavailable) {
			return fmt.Errorf("agenda generation failed: %w (run 'boardpack settings llm')", err)
		}
		return fmt.Errorf("agenda generation failed: %w", err)
	}

	cmd.Printf("Generated agenda %s version %d (%s)\n\n", agenda.ID, agenda.Version, agenda.Status)
	cmd.Print(agenda.Markdown)
	return nil
}

func runAgendaShow(cmd *cobra.Command, args []string) error {
	if agendaService == nil {
		return errNotConfigured("agenda")
	}
	period, err := parsePeriod(args[0])
	if err != nil {
		return err
	}

	var agenda *domain.Agenda
	if agendaVersion > 0 {
		agenda, err = agendaService.GetVersion(cmd.Context(), period, agendaVersion)
	} else {
		agenda, err = agendaService.Latest(cmd.Context(), period)
	}
	if err != nil {
		return fmt.Errorf("failed to get agenda: %w", err)
	}

	if agendaJSON {
		data, err := json.MarshalIndent(agenda.Model, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal agenda: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}
	cmd.Print(agenda.Markdown)
	return nil
}

func runAgendaList(cmd *cobra.Command, args []string) error {
	if agendaService == nil {
		return errNotConfigured("agenda")
	}
	period, err := parsePeriod(args[0])
	if err != nil {
		return err
	}
	agendas, err := agendaService.ListByPeriod(cmd.Context(), period)
	if err != nil {
		return fmt.Errorf("failed to list agendas: %w", err)
	}
	if len(agendas) == 0 {
		cmd.Printf("No agendas found for period: %s\n", period)
		return nil
	}

	cmd.Printf("Agendas for period %s:\n\n", period)
	for i := range agendas {
		a := &agendas[i]
		cmd.Printf("  v%d  %-5s  %s  %s\n", a.Version, a.Status, a.CreatedAt.Format(timestampLayout), a.ID)
	}
	return nil
}

func runAgendaFinalize(cmd *cobra.Command, args []string) error {
	if agendaService == nil {
		return errNotConfigured("agenda")
	}
	agenda, err := agendaService.Finalize(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to finalize agenda: %w", err)
	}
	cmd.Printf("Agenda %s version %d is final.\n", agenda.PeriodID, agenda.Version)
	return nil
}
