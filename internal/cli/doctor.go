package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lherron/lexq/internal/cli/appctx"
	"github.com/lherron/lexq/internal/db"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the lexeme ID sequence for drift",
	Long: `Doctor checks that the lexeme ID sequence is ahead of every stored lexeme,
so a new lexeme never gets an ID that is already taken. Use --fix to move the
sequence forward when it is behind.`,
	RunE: appctx.WithApp(appctx.DefaultOptions(), runDoctor),
}

var doctorFix bool

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Auto-repair issues")
}

func runDoctor(app *appctx.App, cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	specs := db.DefaultSequenceSpecs()

	drifts, err := db.SequenceDrifts(app.DB, specs)
	if err != nil {
		return exitError(1, err)
	}
	if len(drifts) == 0 {
		fmt.Fprintln(out, "✓ ID sequences are consistent")
		return nil
	}

	for _, d := range drifts {
		fmt.Fprintf(out, "⚠ %s is at %d but %s holds ID %d\n", d.SeqTable, d.SeqValue, d.EntityTable, d.MaxID)
	}
	if !doctorFix {
		return exitError(1, fmt.Errorf("%d sequence(s) drifted (run with --fix to repair)", len(drifts)))
	}

	fixed, err := db.FixSequenceDrifts(app.DB, specs)
	if err != nil {
		return exitError(1, err)
	}
	for _, d := range fixed {
		fmt.Fprintf(out, "✓ Moved %s to %d\n", d.SeqTable, d.MaxID)
	}
	return nil
}
