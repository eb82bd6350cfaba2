package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/boardpack/internal/core/domain"
)

var actionCmd = &cobra.Command{
	Use:   "action",
	Short: "Track board action items",
	Long: `Action items are raised in a period and carry over to later periods
until they are done.`,
}

var actionAddCmd = &cobra.Command{
	Use:   "add [YYYY-MM] [title]",
	Short: "Raise an action in a period",
	Args:  cobra.ExactArgs(2),
	RunE:  runActionAdd,
}

var actionListCmd = &cobra.Command{
	Use:   "list [YYYY-MM]",
	Short: "List actions raised in a period",
	Args:  cobra.ExactArgs(1),
	RunE:  runActionList,
}

var actionCarryCmd = &cobra.Command{
	Use:   "carry [YYYY-MM]",
	Short: "List outstanding actions carried into a period",
	Args:  cobra.ExactArgs(1),
	RunE:  runActionCarry,
}

var actionStatusCmd = &cobra.Command{
	Use:   "status [action-id] [open|in_progress|done]",
	Short: "Update an action's status",
	Args:  cobra.ExactArgs(2),
	RunE:  runActionStatus,
}

var (
	actionOwner string
	actionDue   string
)

func init() {
	actionAddCmd.Flags().StringVar(&actionOwner, "owner", "", "person responsible")
	actionAddCmd.Flags().StringVar(&actionDue, "due", "", "due date (YYYY-MM-DD)")

	actionCmd.AddCommand(actionAddCmd)
	actionCmd.AddCommand(actionListCmd)
	actionCmd.AddCommand(actionCarryCmd)
	actionCmd.AddCommand(actionStatusCmd)
	rootCmd.AddCommand(actionCmd)
}

func runActionAdd(cmd *cobra.Command, args []string) error {
	if actionService == nil {
		return errNotConfigured("action")
	}
	period, err := parsePeriod(args[0])
	if err != nil {
		return err
	}

	item := domain.ActionItem{
		Title:        args[1],
		Owner:        actionOwner,
		OriginPeriod: period,
	}
	if actionDue != "" {
		due, err := time.Parse(domain.DateLayout, actionDue)
		if err != nil {
			return fmt.Errorf("%w: due date must be YYYY-MM-DD", domain.ErrInvalidInput)
		}
		item.DueDate = &due
	}

	created, err := actionService.Create(cmd.Context(), item)
	if err != nil {
		return fmt.Errorf("failed to add action: %w", err)
	}
	cmd.Printf("Added action %s\n", created.ID)
	return nil
}

func runActionList(cmd *cobra.Command, args []string) error {
	if actionService == nil {
		return errNotConfigured("action")
	}
	period, err := parsePeriod(args[0])
	if err != nil {
		return err
	}
	actions, err := actionService.List(cmd.Context(), period)
	if err != nil {
		return fmt.Errorf("failed to list actions: %w", err)
	}
	if len(actions) == 0 {
		cmd.Printf("No actions raised in %s\n", period)
		return nil
	}
	cmd.Printf("Actions raised in %s:\n\n", period)
	printActions(cmd, actions)
	return nil
}

func runActionCarry(cmd *cobra.Command, args []string) error {
	if actionService == nil {
		return errNotConfigured("action")
	}
	period, err := parsePeriod(args[0])
	if err != nil {
		return err
	}
	actions, err := actionService.CarryOver(cmd.Context(), period)
	if err != nil {
		return fmt.Errorf("failed to list carry-over actions: %w", err)
	}
	if len(actions) == 0 {
		cmd.Printf("No outstanding actions carried into %s\n", period)
		return nil
	}
	cmd.Printf("Carried into %s:\n\n", period)
	printActions(cmd, actions)
	return nil
}

func runActionStatus(cmd *cobra.Command, args []string) error {
	if actionService == nil {
		return errNotConfigured("action")
	}
	status := domain.ActionStatus(strings.ToLower(args[1]))
	action, err := actionService.UpdateStatus(cmd.Context(), args[0], status)
	if err != nil {
		return fmt.Errorf("failed to update action: %w", err)
	}
	cmd.Printf("Action %s is now %s\n", action.ID, action.Status)
	return nil
}

func printActions(cmd *cobra.Command, actions []domain.ActionItem) {
	for i := range actions {
		a := &actions[i]
		cmd.Printf("  [%s] %s\n", a.Status, a.Title)
		cmd.Printf("    ID: %s  Raised: %s", a.ID, a.OriginPeriod)
		if a.Owner != "" {
			cmd.Printf("  Owner: %s", a.Owner)
		}
		if a.DueDate != nil {
			cmd.Printf("  Due: %s", a.DueDate.Format(domain.DateLayout))
		}
		cmd.Println()
	}
}
