package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lherron/lexq/internal/cli/appctx"
)

var actorCmd = &cobra.Command{
	Use:   "actor",
	Short: "Manage the actors allowed to edit lexemes",
}

var actorAddCmd = &cobra.Command{
	Use:   "add <slug>",
	Short: "Register an actor",
	Long: `Register an actor with a role:
  editor  may edit unprotected lexemes
  admin   may also edit protected lexemes
  bot     may flag its edits as bot edits`,
	Args: cobra.ExactArgs(1),
	RunE: appctx.WithApp(appctx.DefaultOptions(), runActorAdd),
}

var actorBlockCmd = &cobra.Command{
	Use:   "block <slug>",
	Short: "Block an actor from editing, or unblock it with --off",
	Args:  cobra.ExactArgs(1),
	RunE:  appctx.WithApp(appctx.DefaultOptions(), runActorBlock),
}

var (
	actorRole     string
	actorBlockOff bool
)

func init() {
	rootCmd.AddCommand(actorCmd)
	actorCmd.AddCommand(actorAddCmd)
	actorCmd.AddCommand(actorBlockCmd)

	actorAddCmd.Flags().StringVar(&actorRole, "role", "editor", "Actor role: editor, admin, bot")
	actorBlockCmd.Flags().BoolVar(&actorBlockOff, "off", false, "Unblock the actor")
}

func runActorAdd(app *appctx.App, cmd *cobra.Command, args []string) error {
	if err := app.Store.Permissions.AddActor(cmd.Context(), args[0], actorRole); err != nil {
		return exitError(1, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Added %s actor %s\n", actorRole, args[0])
	return nil
}

func runActorBlock(app *appctx.App, cmd *cobra.Command, args []string) error {
	if err := app.Store.Permissions.SetBlocked(cmd.Context(), args[0], !actorBlockOff); err != nil {
		return exitError(1, err)
	}
	if actorBlockOff {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Unblocked %s\n", args[0])
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Blocked %s\n", args[0])
	}
	return nil
}
