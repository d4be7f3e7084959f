package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lherron/lexq/internal/cli/appctx"
)

var watchCmd = &cobra.Command{
	Use:   "watch <LEXEME-ID>",
	Short: "Add a lexeme to your watchlist",
	Long: `Add a lexeme to the acting actor's watchlist. Watchers of a merged lexeme
also watch the lexeme it was merged into.`,
	Args: cobra.ExactArgs(1),
	RunE: appctx.WithApp(appctx.WithActor(), runWatch),
}

var watchersCmd = &cobra.Command{
	Use:   "watchers <LEXEME-ID>",
	Short: "List the actors watching a lexeme",
	Args:  cobra.ExactArgs(1),
	RunE:  appctx.WithApp(appctx.DefaultOptions(), runWatchers),
}

func init() {
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(watchersCmd)
}

func runWatch(app *appctx.App, cmd *cobra.Command, args []string) error {
	lexemeID, err := normalizeLexemeID(args[0])
	if err != nil {
		return err
	}

	if err := app.Store.Watchlist.Watch(cmd.Context(), app.Actor, lexemeID); err != nil {
		return exitError(1, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ %s is watching %s\n", app.Actor, lexemeID)
	return nil
}

func runWatchers(app *appctx.App, cmd *cobra.Command, args []string) error {
	lexemeID, err := normalizeLexemeID(args[0])
	if err != nil {
		return err
	}

	watchers, err := app.Store.Watchlist.Watchers(cmd.Context(), lexemeID)
	if err != nil {
		return exitError(1, err)
	}
	for _, w := range watchers {
		fmt.Fprintln(cmd.OutOrStdout(), w)
	}
	return nil
}
