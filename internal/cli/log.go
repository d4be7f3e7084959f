package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/lherron/lexq/internal/cli/appctx"
	"github.com/lherron/lexq/internal/render"
)

var logCmd = &cobra.Command{
	Use:   "log <LEXEME-ID>",
	Short: "Show the revision history of a lexeme",
	Args:  cobra.ExactArgs(1),
	RunE:  appctx.WithApp(appctx.DefaultOptions(), runLog),
}

func init() {
	rootCmd.AddCommand(logCmd)
}

type logEntry struct {
	Revision       int64   `json:"revision" yaml:"revision"`
	Actor          string  `json:"actor" yaml:"actor"`
	Summary        string  `json:"summary" yaml:"summary"`
	Bot            bool    `json:"bot" yaml:"bot"`
	RedirectTarget *string `json:"redirect_target,omitempty" yaml:"redirect_target,omitempty"`
	CreatedAt      string  `json:"created_at" yaml:"created_at"`
}

func runLog(app *appctx.App, cmd *cobra.Command, args []string) error {
	lexemeID, err := normalizeLexemeID(args[0])
	if err != nil {
		return err
	}

	history, err := app.Store.Lexemes.History(cmd.Context(), lexemeID)
	if err != nil {
		return exitError(1, err)
	}

	r, err := newRenderer(app, cmd)
	if err != nil {
		return exitError(2, err)
	}

	if app.Config.Output == string(render.FormatTable) {
		rows := make([][]string, 0, len(history))
		for _, rev := range history {
			flags := ""
			if rev.Bot {
				flags = "bot"
			}
			rows = append(rows, []string{strconv.FormatInt(rev.Revision, 10), rev.CreatedAt, rev.Actor, flags, rev.Summary})
		}
		return r.RenderTable([]string{"REV", "TIME", "ACTOR", "FLAGS", "SUMMARY"}, rows)
	}

	entries := make([]logEntry, 0, len(history))
	for _, rev := range history {
		entries = append(entries, logEntry{
			Revision:       rev.Revision,
			Actor:          rev.Actor,
			Summary:        rev.Summary,
			Bot:            rev.Bot,
			RedirectTarget: rev.RedirectTarget,
			CreatedAt:      rev.CreatedAt,
		})
	}
	return r.Render(entries)
}
