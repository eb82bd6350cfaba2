package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/boardpack/internal/core/domain"
)

const timestampLayout = "2006-01-02 15:04:05"

var artefactCmd = &cobra.Command{
	Use:     "artefact",
	Aliases: []string{"artifact"},
	Short:   "Manage period artefacts",
	Long: `Upload, list, view or delete the documents attached to a period.

Kinds: finance, productivity, minutes, absence, other. Board notes are added
with 'artefact note'.`,
}

var artefactUploadCmd = &cobra.Command{
	Use:   "upload [period] [kind] [file]",
	Short: "Upload a file to a period",
	Args:  cobra.ExactArgs(3),
	RunE:  runArtefactUpload,
}

var artefactNoteCmd = &cobra.Command{
	Use:   "note [period] [text]",
	Short: "Add a board note to a period",
	Args:  cobra.ExactArgs(2),
	RunE:  runArtefactNote,
}

var artefactListCmd = &cobra.Command{
	Use:   "list [period]",
	Short: "List artefacts for a period",
	Args:  cobra.ExactArgs(1),
	RunE:  runArtefactList,
}

var artefactShowCmd = &cobra.Command{
	Use:   "show [artefact-id]",
	Short: "Show artefact info and extracted text",
	Args:  cobra.ExactArgs(1),
	RunE:  runArtefactShow,
}

var artefactDeleteCmd = &cobra.Command{
	Use:   "delete [artefact-id]",
	Short: "Delete an artefact with its extractions and actions",
	Args:  cobra.ExactArgs(1),
	RunE:  runArtefactDelete,
}

// uploadMIME overrides the MIME type inferred from the file extension.
var uploadMIME string

func init() {
	artefactUploadCmd.Flags().StringVar(&uploadMIME, "mime", "", "MIME type (default: from file extension)")

	artefactCmd.AddCommand(artefactUploadCmd)
	artefactCmd.AddCommand(artefactNoteCmd)
	artefactCmd.AddCommand(artefactListCmd)
	artefactCmd.AddCommand(artefactShowCmd)
	artefactCmd.AddCommand(artefactDeleteCmd)
	rootCmd.AddCommand(artefactCmd)
}

func runArtefactUpload(cmd *cobra.Command, args []string) error {
	if artefactService == nil {
		return errNotConfigured("artefact")
	}
	period, err := parsePeriod(args[0])
	if err != nil {
		return err
	}
	kind := domain.ArtefactKind(strings.ToLower(args[1]))

	content, err := os.ReadFile(args[2])
	if err != nil {
		return fmt.Errorf("read %s: %w", args[2], err)
	}

	artefact, err := artefactService.Upload(cmd.Context(), period, kind, domain.RawFile{
		Filename: filepath.Base(args[2]),
		MIMEType: uploadMIME,
		Content:  content,
	})
	if err != nil {
		return fmt.Errorf("failed to upload artefact: %w", err)
	}

	cmd.Printf("Uploaded %s as %s artefact %s\n", artefact.Filename, artefact.Kind, artefact.ID)
	if artefact.ParseError != nil {
		cmd.Printf("Warning: text extraction failed: %s\n", *artefact.ParseError)
	}
	return nil
}

func runArtefactNote(cmd *cobra.Command, args []string) error {
	if artefactService == nil {
		return errNotConfigured("artefact")
	}
	period, err := parsePeriod(args[0])
	if err != nil {
		return err
	}
	artefact, err := artefactService.AddNote(cmd.Context(), period, args[1])
	if err != nil {
		return fmt.Errorf("failed to add note: %w", err)
	}
	cmd.Printf("Added note %s to %s\n", artefact.ID, period)
	return nil
}

func runArtefactList(cmd *cobra.Command, args []string) error {
	if artefactService == nil {
		return errNotConfigured("artefact")
	}
	period, err := parsePeriod(args[0])
	if err != nil {
		return err
	}
	artefacts, err := artefactService.ListByPeriod(cmd.Context(), period)
	if err != nil {
		return fmt.Errorf("failed to list artefacts: %w", err)
	}

	if len(artefacts) == 0 {
		cmd.Printf("No artefacts found for period: %s\n", period)
		return nil
	}

	cmd.Printf("Artefacts for period %s:\n\n", period)
	for i := range artefacts {
		a := &artefacts[i]
		cmd.Printf("  %s\n", a.ID)
		cmd.Printf("    Kind: %s\n", a.Kind)
		if a.Filename != "" {
			cmd.Printf("    File: %s\n", a.Filename)
		}
		cmd.Printf("    Text: %s\n", textStatus(a))
		cmd.Println()
	}

	cmd.Printf("Total: %d artefacts\n", len(artefacts))
	return nil
}

func runArtefactShow(cmd *cobra.Command, args []string) error {
	if artefactService == nil {
		return errNotConfigured("artefact")
	}
	a, err := artefactService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get artefact: %w", err)
	}

	cmd.Printf("Artefact: %s\n\n", a.ID)
	cmd.Printf("  Period:   %s\n", a.PeriodID)
	cmd.Printf("  Kind:     %s\n", a.Kind)
	if a.Filename != "" {
		cmd.Printf("  File:     %s\n", a.Filename)
	}
	cmd.Printf("  Type:     %s\n", a.MIMEType)
	cmd.Printf("  Size:     %d bytes\n", a.Size)
	cmd.Printf("  Created:  %s\n", a.CreatedAt.Format(timestampLayout))
	cmd.Printf("  Text:     %s\n", textStatus(a))

	if a.HasText() {
		cmd.Println()
		cmd.Println(*a.Text)
	}
	return nil
}

func runArtefactDelete(cmd *cobra.Command, args []string) error {
	if artefactService == nil {
		return errNotConfigured("artefact")
	}
	if err := artefactService.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to delete artefact: %w", err)
	}
	cmd.Printf("Deleted artefact: %s\n", args[0])
	return nil
}

func textStatus(a *domain.Artefact) string {
	switch {
	case a.ParseError != nil:
		return "failed (" + *a.ParseError + ")"
	case a.HasText():
		return fmt.Sprintf("%d characters", len([]rune(*a.Text)))
	default:
		return "none"
	}
}
