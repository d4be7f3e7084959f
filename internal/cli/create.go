package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lherron/lexq/internal/cli/appctx"
	"github.com/lherron/lexq/internal/domain"
)

var createCmd = &cobra.Command{
	Use:   "create --file <path>",
	Short: "Create a lexeme from a JSON or YAML document",
	Long: `Create stores a new lexeme. The lexeme, its forms and its senses get fresh
IDs, and every statement gets a fresh GUID; IDs present in the document are
ignored.

Examples:
  lexq create --file color.json
  lexq create --file color.yaml --summary "import"
  cat color.json | lexq create --file -
`,
	Args: cobra.NoArgs,
	RunE: appctx.WithApp(appctx.WithActor(), runCreate),
}

var (
	createFile    string
	createSummary string
)

func init() {
	rootCmd.AddCommand(createCmd)

	createCmd.Flags().StringVarP(&createFile, "file", "f", "", "Lexeme document (.json, .yaml, or - for JSON on stdin)")
	createCmd.Flags().StringVar(&createSummary, "summary", "", "Edit summary")
	createCmd.MarkFlagRequired("file")
}

func runCreate(app *appctx.App, cmd *cobra.Command, args []string) error {
	draft, err := readLexemeDocument(cmd, createFile)
	if err != nil {
		return exitError(2, err)
	}

	result, err := app.Store.Lexemes.Create(cmd.Context(), domain.EditInfo{Actor: app.Actor, Summary: createSummary}, draft)
	if err != nil {
		return exitError(1, fmt.Errorf("failed to create lexeme: %w", err))
	}
	app.Logger.Info("lexeme created", "lexeme", result.Lexeme.ID, "actor", app.Actor)

	r, err := newRenderer(app, cmd)
	if err != nil {
		return exitError(2, err)
	}
	return r.Render(result.Lexeme)
}
