// Package appctx provides a shared bootstrap helper for CLI commands.
// It centralizes config loading, logger setup, database opening, and actor
// resolution to reduce boilerplate across commands.
package appctx

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/lherron/lexq/internal/config"
	"github.com/lherron/lexq/internal/db"
	"github.com/lherron/lexq/internal/store"
)

// App holds the shared application context for commands.
type App struct {
	// Config is the loaded configuration
	Config *config.Config

	// Logger writes structured logs to the command's stderr
	Logger *slog.Logger

	// DB is the opened database connection (nil if NeedsDB is false)
	DB *db.DB

	// Store wraps DB (nil if NeedsDB is false)
	Store *store.Store

	// Actor is the resolved actor slug (empty if NeedsActor is false)
	Actor string
}

// Close releases resources held by the App.
// Safe to call multiple times.
func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
		a.DB = nil
		a.Store = nil
	}
}

// Options configures the bootstrap behavior.
type Options struct {
	// NeedsDB indicates whether to open the database.
	NeedsDB bool

	// NeedsActor indicates whether to resolve the current actor.
	// Requires NeedsDB to also be true.
	NeedsActor bool
}

// DefaultOptions returns default options (DB required, no actor).
func DefaultOptions() Options {
	return Options{NeedsDB: true}
}

// WithActor returns options that require both DB and actor.
func WithActor() Options {
	return Options{NeedsDB: true, NeedsActor: true}
}

// RunFunc is the signature for command run functions.
type RunFunc func(app *App, cmd *cobra.Command, args []string) error

// WithApp wraps a command's run function with shared bootstrap logic.
// The database is closed automatically when the wrapped function returns.
func WithApp(opts Options, fn RunFunc) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		app, err := Bootstrap(cmd, opts)
		if err != nil {
			return err
		}
		defer app.Close()

		return fn(app, cmd, args)
	}
}

// Bootstrap initializes the App according to the given options.
// Callers are responsible for calling App.Close() when done.
func Bootstrap(cmd *cobra.Command, opts Options) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if dbFlag := cmd.Flag("db"); dbFlag != nil {
		if dbPath := dbFlag.Value.String(); dbPath != "" {
			cfg.DBPath = dbPath
		}
	}
	if outputFlag := cmd.Flag("output"); outputFlag != nil && outputFlag.Changed {
		cfg.Output = outputFlag.Value.String()
	}

	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}
	app := &App{
		Config: cfg,
		Logger: slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})),
	}

	if opts.NeedsDB {
		database, err := db.Open(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		if err := database.RequiresMigrationError(); err != nil {
			database.Close()
			return nil, err
		}
		app.DB = database
		app.Store = store.New(database)
	}

	if opts.NeedsActor {
		if app.DB == nil {
			return nil, fmt.Errorf("actor resolution requires database (set NeedsDB: true)")
		}

		actor, err := resolveActor(cmd.Context(), app, cmd)
		if err != nil {
			app.Close()
			return nil, err
		}
		app.Actor = actor
	}

	return app, nil
}

// resolveActor resolves the current actor from the --as flag or config and
// checks that it is registered.
func resolveActor(ctx context.Context, app *App, cmd *cobra.Command) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	var slug string
	if asFlag := cmd.Flag("as"); asFlag != nil {
		slug = asFlag.Value.String()
	}
	if slug == "" {
		slug = app.Config.Actor()
	}
	if slug == "" {
		return "", fmt.Errorf("no actor configured (set LEXQ_ACTOR or use --as flag)")
	}

	actor, err := app.Store.Permissions.GetActor(ctx, slug)
	if err != nil {
		return "", fmt.Errorf("failed to resolve actor: %w", err)
	}
	if actor == nil {
		return "", fmt.Errorf("unknown actor %q (register it with 'lexq actor add')", slug)
	}
	return actor.Slug, nil
}
