package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lherron/lexq/internal/cli/appctx"
)

var protectCmd = &cobra.Command{
	Use:   "protect <LEXEME-ID>",
	Short: "Restrict edits of a lexeme to admins, or lift that with --off",
	Args:  cobra.ExactArgs(1),
	RunE:  appctx.WithApp(appctx.WithActor(), runProtect),
}

var protectOff bool

func init() {
	rootCmd.AddCommand(protectCmd)

	protectCmd.Flags().BoolVar(&protectOff, "off", false, "Unprotect the lexeme")
}

func runProtect(app *appctx.App, cmd *cobra.Command, args []string) error {
	lexemeID, err := normalizeLexemeID(args[0])
	if err != nil {
		return err
	}

	actor, err := app.Store.Permissions.GetActor(cmd.Context(), app.Actor)
	if err != nil {
		return exitError(1, err)
	}
	if actor == nil || actor.Role != "admin" || actor.Blocked {
		return exitError(1, fmt.Errorf("only admins may change protection"))
	}

	if err := app.Store.Lexemes.SetProtected(cmd.Context(), lexemeID, !protectOff); err != nil {
		return exitError(1, err)
	}
	if protectOff {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Unprotected %s\n", lexemeID)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Protected %s\n", lexemeID)
	}
	return nil
}
