package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lherron/lexq/internal/cli/appctx"
	"github.com/lherron/lexq/internal/domain"
	"github.com/lherron/lexq/internal/id"
)

var rmCmd = &cobra.Command{
	Use:   "rm <FORM-OR-SENSE-ID>...",
	Short: "Remove forms or senses from their lexeme",
	Long: `Removes forms and senses. Each removal is saved as a new revision of the
owning lexeme. Removed IDs are never handed out again.

Examples:
  lexq rm L12-F3
  lexq rm L12-F3 L12-S1 --summary "duplicates"
`,
	Args: cobra.MinimumNArgs(1),
	RunE: appctx.WithApp(appctx.WithActor(), runRm),
}

var rmSummary string

func init() {
	rootCmd.AddCommand(rmCmd)

	rmCmd.Flags().StringVar(&rmSummary, "summary", "", "Edit summary appended to the generated one")
}

func runRm(app *appctx.App, cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	for _, arg := range args {
		subID := strings.ToUpper(strings.TrimSpace(arg))
		kind, _, err := id.Parse(subID)
		if err != nil || (kind != id.TypeForm && kind != id.TypeSense) {
			return exitError(2, fmt.Errorf("invalid form or sense ID %q", arg))
		}
		lexemeID, _ := id.LexemeOf(subID)

		if err := app.Store.Permissions.CanEdit(ctx, app.Actor, lexemeID, false); err != nil {
			return exitError(1, err)
		}
		lexeme, revision, err := app.Store.Lexemes.Get(ctx, lexemeID)
		if err != nil {
			return exitError(1, err)
		}

		var removed bool
		if kind == id.TypeForm {
			removed = lexeme.RemoveForm(subID)
		} else {
			removed = lexeme.RemoveSense(subID)
		}
		if !removed {
			return exitError(1, fmt.Errorf("%s %s not found", kind, subID))
		}

		summary := "Removed " + subID
		if rmSummary != "" {
			summary += ": " + rmSummary
		}
		newRevision, err := app.Store.Lexemes.Save(ctx, lexeme, revision, domain.EditInfo{Actor: app.Actor, Summary: summary})
		if err != nil {
			return exitError(1, fmt.Errorf("failed to save %s: %w", lexemeID, err))
		}
		app.Logger.Info("removed", "id", subID, "lexeme", lexemeID, "revision", newRevision)
		fmt.Fprintf(out, "✓ Removed %s (%s revision %d)\n", subID, lexemeID, newRevision)
	}
	return nil
}
