package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/boardpack/internal/core/ports/driving"
)

var extractCmd = &cobra.Command{
	Use:   "extract [artefact-id]",
	Short: "Extract facts from an artefact",
	Long: `Runs structured extraction on an artefact's text and stores the result,
replacing any previous extraction of the same artefact. Minutes extraction
also replaces the action items proposed by those minutes.

Use 'extract period' to extract every artefact of a period.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

var extractPeriodCmd = &cobra.Command{
	Use:   "period [YYYY-MM]",
	Short: "Extract facts from every artefact of a period",
	Args:  cobra.ExactArgs(1),
	RunE:  runExtractPeriod,
}

func init() {
	extractCmd.AddCommand(extractPeriodCmd)
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	if extractionService == nil {
		return errNotConfigured("extraction")
	}
	outcome, err := extractionService.ExtractArtefact(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}
	printOutcome(cmd, outcome)
	return nil
}

func runExtractPeriod(cmd *cobra.Command, args []string) error {
	if extractionService == nil {
		return errNotConfigured("extraction")
	}
	period, err := parsePeriod(args[0])
	if err != nil {
		return err
	}

	cmd.Printf("Extracting artefacts for %s...\n", period)
	outcomes, err := extractionService.ExtractPeriod(cmd.Context(), period)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}
	if len(outcomes) == 0 {
		cmd.Println("No extractable artefacts.")
		return nil
	}

	failed := 0
	for i := range outcomes {
		printOutcome(cmd, &outcomes[i])
		if outcomes[i].Err != nil {
			failed++
		}
	}
	cmd.Printf("\nExtracted %d of %d artefacts (%d failed)\n", len(outcomes)-failed, len(outcomes), failed)
	return nil
}

func printOutcome(cmd *cobra.Command, o *driving.ExtractionOutcome) {
	if o.Err != nil {
		cmd.Printf("  %s  %-12s FAILED: %v\n", o.ArtefactID, o.Kind, o.Err)
		return
	}
	line := fmt.Sprintf("  %s  %-12s ok", o.ArtefactID, o.Kind)
	if o.Dropped > 0 {
		line += fmt.Sprintf(" (%d malformed entries dropped)", o.Dropped)
	}
	cmd.Println(line)
}
