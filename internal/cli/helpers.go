package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/lherron/lexq/internal/cli/appctx"
	"github.com/lherron/lexq/internal/domain"
	"github.com/lherron/lexq/internal/render"
)

// ExitError carries the process exit code for a failed command: 2 for bad
// input, 1 for everything else
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func exitError(code int, err error) error {
	if err == nil {
		return nil
	}
	return &ExitError{Code: code, Err: err}
}

// ExitCode maps an error returned by Execute to a process exit code
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ee *ExitError
	if errors.As(err, &ee) {
		return ee.Code
	}
	return 1
}

// newRenderer builds a renderer for the configured output format
func newRenderer(app *appctx.App, cmd *cobra.Command) (*render.Renderer, error) {
	format, err := render.ParseFormat(app.Config.Output)
	if err != nil {
		return nil, err
	}
	return render.NewRenderer(cmd.OutOrStdout(), render.Options{Format: format}), nil
}

// readLexemeDocument reads a lexeme from path ("-" for stdin). Files ending
// in .yaml or .yml are decoded as YAML, everything else as JSON.
func readLexemeDocument(cmd *cobra.Command, path string) (*domain.Lexeme, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var lexeme domain.Lexeme
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &lexeme)
	default:
		err = json.Unmarshal(data, &lexeme)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse lexeme document %s: %w", path, err)
	}
	return &lexeme, nil
}

// normalizeLexemeID accepts lexeme IDs case-insensitively
func normalizeLexemeID(s string) (string, error) {
	lexemeID := strings.ToUpper(strings.TrimSpace(s))
	if err := domain.ValidateLexemeID(lexemeID); err != nil {
		return "", exitError(2, err)
	}
	return lexemeID, nil
}
