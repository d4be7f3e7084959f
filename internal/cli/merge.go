package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lherron/lexq/internal/cli/appctx"
	"github.com/lherron/lexq/internal/guid"
	"github.com/lherron/lexq/internal/interactor"
	"github.com/lherron/lexq/internal/merge"
	"github.com/lherron/lexq/internal/render"
	"github.com/lherron/lexq/internal/statements"
)

var mergeCmd = &cobra.Command{
	Use:   "merge <SOURCE-ID> <TARGET-ID>",
	Short: "Merge one lexeme into another",
	Long: `Merge folds the source lexeme into the target lexeme and turns the source
into a redirect to the target.

Lemmas the target lacks are copied over, statements move to the target with
new GUIDs, and forms and senses of the source either join a matching form or
sense of the target or are added as new ones. The merge is refused if the
lexemes have different languages, lexical categories or conflicting lemmas,
or if either has a statement pointing at the other.

Use --dry-run to print the change to the target as a diff without saving.

Examples:
  lexq merge L12 L7
  lexq merge L12 L7 --summary "duplicate entry"
  lexq merge L12 L7 --dry-run
`,
	Args: cobra.ExactArgs(2),
	RunE: appctx.WithApp(appctx.WithActor(), runMerge),
}

var (
	mergeSummary string
	mergeBot     bool
	mergeDryRun  bool
)

func init() {
	rootCmd.AddCommand(mergeCmd)

	mergeCmd.Flags().StringVar(&mergeSummary, "summary", "", "Edit summary appended to the generated one")
	mergeCmd.Flags().BoolVar(&mergeBot, "bot", false, "Flag the edits as bot edits (requires the bot role)")
	mergeCmd.Flags().BoolVar(&mergeDryRun, "dry-run", false, "Show the merged target as a diff without saving")
}

func runMerge(app *appctx.App, cmd *cobra.Command, args []string) error {
	sourceID, err := normalizeLexemeID(args[0])
	if err != nil {
		return err
	}
	targetID, err := normalizeLexemeID(args[1])
	if err != nil {
		return err
	}

	merger := merge.NewLexemeMerger(statements.NewMerger(guid.NewGenerator()))
	it := interactor.New(app.Store.Lexemes, app.Store.Permissions, app.Store.Watchlist, merger, app.Logger)

	result, err := it.MergeLexemes(cmd.Context(), interactor.Request{
		SourceID: sourceID,
		TargetID: targetID,
		Actor:    app.Actor,
		Summary:  mergeSummary,
		Bot:      mergeBot,
		DryRun:   mergeDryRun,
	})
	if err != nil {
		return exitError(1, err)
	}

	out := cmd.OutOrStdout()
	if result.DryRun {
		diff, err := render.LexemeDiff(result.Before, result.After)
		if err != nil {
			return exitError(1, err)
		}
		fmt.Fprint(out, diff)
	}
	fmt.Fprintln(out, render.MergeSummary(result.SourceID, result.TargetID, result.TargetRevision, result.DryRun))
	return nil
}
