package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lherron/lexq/internal/cli/appctx"
	"github.com/lherron/lexq/internal/domain"
)

var catCmd = &cobra.Command{
	Use:   "cat <LEXEME-ID>",
	Short: "Print a lexeme",
	Long: `Print a lexeme document. A lexeme that was merged away is a redirect;
use --follow to print the lexeme it redirects to instead.`,
	Args: cobra.ExactArgs(1),
	RunE: appctx.WithApp(appctx.DefaultOptions(), runCat),
}

var catFollow bool

func init() {
	rootCmd.AddCommand(catCmd)

	catCmd.Flags().BoolVar(&catFollow, "follow", false, "Follow redirects")
}

func runCat(app *appctx.App, cmd *cobra.Command, args []string) error {
	lexemeID, err := normalizeLexemeID(args[0])
	if err != nil {
		return err
	}

	if catFollow {
		if lexemeID, err = app.Store.Lexemes.ResolveRedirect(cmd.Context(), lexemeID); err != nil {
			return exitError(1, err)
		}
	}

	lexeme, _, err := app.Store.Lexemes.Get(cmd.Context(), lexemeID)
	if err != nil {
		var redirect *domain.RedirectError
		if errors.As(err, &redirect) {
			return exitError(1, fmt.Errorf("%w (use --follow)", err))
		}
		return exitError(1, err)
	}

	r, err := newRenderer(app, cmd)
	if err != nil {
		return exitError(2, err)
	}
	return r.Render(lexeme)
}
