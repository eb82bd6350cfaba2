package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/boardpack/internal/core/domain"
)

var periodCmd = &cobra.Command{
	Use:   "period",
	Short: "Manage board periods",
	Long:  `Create, list and delete monthly board periods (YYYY-MM).`,
}

var periodCreateCmd = &cobra.Command{
	Use:   "create [YYYY-MM]",
	Short: "Create a period",
	Args:  cobra.ExactArgs(1),
	RunE:  runPeriodCreate,
}

var periodListCmd = &cobra.Command{
	Use:   "list",
	Short: "List periods",
	Args:  cobra.NoArgs,
	RunE:  runPeriodList,
}

var periodCurrentCmd = &cobra.Command{
	Use:   "current",
	Short: "Print the current period",
	Args:  cobra.NoArgs,
	RunE:  runPeriodCurrent,
}

var periodHistoricalCmd = &cobra.Command{
	Use:   "historical [YYYY-MM] [true|false]",
	Short: "Mark a period as historical",
	Long:  `Historical periods are backfilled for comparison only.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runPeriodHistorical,
}

var periodDeleteCmd = &cobra.Command{
	Use:   "delete [YYYY-MM]",
	Short: "Delete a period with no artefacts",
	Args:  cobra.ExactArgs(1),
	RunE:  runPeriodDelete,
}

var (
	periodHistorical bool
	periodCreatedBy  string
)

func init() {
	periodCreateCmd.Flags().BoolVar(&periodHistorical, "historical", false, "backfilled period used for comparison only")
	periodCreateCmd.Flags().StringVar(&periodCreatedBy, "by", "", "who created the period")

	periodCmd.AddCommand(periodCreateCmd)
	periodCmd.AddCommand(periodListCmd)
	periodCmd.AddCommand(periodCurrentCmd)
	periodCmd.AddCommand(periodHistoricalCmd)
	periodCmd.AddCommand(periodDeleteCmd)
	rootCmd.AddCommand(periodCmd)
}

func parsePeriod(s string) (domain.PeriodID, error) {
	id, err := domain.ParsePeriodID(s)
	if err != nil {
		return "", fmt.Errorf("period %q: %w", s, err)
	}
	return id, nil
}

func runPeriodCreate(cmd *cobra.Command, args []string) error {
	if periodService == nil {
		return errNotConfigured("period")
	}
	id, err := parsePeriod(args[0])
	if err != nil {
		return err
	}
	period, err := periodService.Create(cmd.Context(), id, periodHistorical, periodCreatedBy)
	if err != nil {
		return fmt.Errorf("failed to create period: %w", err)
	}
	cmd.Printf("Created period %s (%s)\n", period.ID, period.Label)
	return nil
}

func runPeriodList(cmd *cobra.Command, _ []string) error {
	if periodService == nil {
		return errNotConfigured("period")
	}
	periods, err := periodService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list periods: %w", err)
	}
	if len(periods) == 0 {
		cmd.Println("No periods yet. Create one with 'boardpack period create YYYY-MM'.")
		return nil
	}

	cmd.Println("Periods:")
	cmd.Println()
	for i := range periods {
		flag := ""
		if periods[i].Historical {
			flag = " [historical]"
		}
		cmd.Printf("  %s  %s%s\n", periods[i].ID, periods[i].Label, flag)
	}
	cmd.Println()
	cmd.Printf("Total: %d periods\n", len(periods))
	return nil
}

func runPeriodCurrent(cmd *cobra.Command, _ []string) error {
	if periodService == nil {
		return errNotConfigured("period")
	}
	id := periodService.Current()
	cmd.Printf("%s (%s)\n", id, domain.FormatLabel(id))
	return nil
}

func runPeriodHistorical(cmd *cobra.Command, args []string) error {
	if periodService == nil {
		return errNotConfigured("period")
	}
	id, err := parsePeriod(args[0])
	if err != nil {
		return err
	}
	historical, err := strconv.ParseBool(args[1])
	if err != nil {
		return fmt.Errorf("%w: historical must be true or false", domain.ErrInvalidInput)
	}
	if err := periodService.SetHistorical(cmd.Context(), id, historical); err != nil {
		return fmt.Errorf("failed to update period: %w", err)
	}
	cmd.Printf("Period %s historical: %t\n", id, historical)
	return nil
}

func runPeriodDelete(cmd *cobra.Command, args []string) error {
	if periodService == nil {
		return errNotConfigured("period")
	}
	id, err := parsePeriod(args[0])
	if err != nil {
		return err
	}
	if err := periodService.Delete(cmd.Context(), id); err != nil {
		return fmt.Errorf("failed to delete period: %w", err)
	}
	cmd.Printf("Deleted period: %s\n", id)
	return nil
}
