package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lherron/lexq/internal/config"
	"github.com/lherron/lexq/internal/db"
	"github.com/lherron/lexq/internal/store"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the lexq database",
	Long: `Initialize creates the SQLite database, runs migrations, and seeds an
admin actor when the database is new.`,
	RunE: runInit,
}

var initAdmin string

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().StringVar(&initAdmin, "admin", "local-admin", "Slug of the admin actor to seed")
}

func runInit(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return exitError(1, fmt.Errorf("failed to load config: %w", err))
	}
	if dbPath := cmd.Flag("db").Value.String(); dbPath != "" {
		cfg.DBPath = dbPath
	}

	dbExists := false
	if _, err := os.Stat(cfg.DBPath); err == nil {
		dbExists = true
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return exitError(1, fmt.Errorf("failed to open database: %w", err))
	}
	defer database.Close()

	if err := database.Migrate(); err != nil {
		return exitError(1, fmt.Errorf("failed to run migrations: %w", err))
	}

	out := cmd.OutOrStdout()
	if dbExists {
		fmt.Fprintf(out, "✓ Database already initialized at %s\n", cfg.DBPath)
		fmt.Fprintf(out, "✓ Migrations applied\n")
		return nil
	}

	if initAdmin != "" {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		if err := store.New(database).Permissions.AddActor(ctx, initAdmin, "admin"); err != nil {
			return exitError(1, fmt.Errorf("failed to seed admin actor: %w", err))
		}
	}

	fmt.Fprintf(out, "✓ Initialized new database at %s\n", cfg.DBPath)
	if initAdmin != "" {
		fmt.Fprintf(out, "✓ Seeded admin actor: %s\n", initAdmin)
	}
	return nil
}
