package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lherron/lexq/internal/cli/appctx"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Print the current actor",
	Long:  `Displays the acting actor, resolved from --as or LEXQ_ACTOR, and its role.`,
	RunE:  appctx.WithApp(appctx.WithActor(), runWhoami),
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

func runWhoami(app *appctx.App, cmd *cobra.Command, args []string) error {
	actor, err := app.Store.Permissions.GetActor(cmd.Context(), app.Actor)
	if err != nil {
		return exitError(1, err)
	}

	if app.Config.Output != "table" {
		r, err := newRenderer(app, cmd)
		if err != nil {
			return exitError(2, err)
		}
		return r.Render(map[string]interface{}{
			"actor":   actor,
			"db_path": app.Config.DBPath,
		})
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Actor:    %s\n", actor.Slug)
	fmt.Fprintf(cmd.OutOrStdout(), "Role:     %s\n", actor.Role)
	if actor.Blocked {
		fmt.Fprintf(cmd.OutOrStdout(), "Status:   blocked\n")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Database: %s\n", app.Config.DBPath)
	return nil
}
