package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lherron/lexq/internal/config"
	"github.com/lherron/lexq/internal/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run any pending database migrations",
	Long: `Migrate applies any pending SQL migrations to the database.

Migrations are embedded in the lexq binary and tracked in the schema_migrations
table. It is safe to run multiple times. Use --status to show the current
migration status without applying anything.`,
	RunE: runMigrate,
}

var migrateStatus bool

func init() {
	rootCmd.AddCommand(migrateCmd)

	migrateCmd.Flags().BoolVar(&migrateStatus, "status", false, "Show current migration status")
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return exitError(1, fmt.Errorf("failed to load config: %w", err))
	}
	if dbPath := cmd.Flag("db").Value.String(); dbPath != "" {
		cfg.DBPath = dbPath
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return exitError(1, fmt.Errorf("failed to open database: %w", err))
	}
	defer database.Close()

	out := cmd.OutOrStdout()
	if migrateStatus {
		applied, pending, err := database.MigrationStatus()
		if err != nil {
			return exitError(1, err)
		}
		fmt.Fprintf(out, "Database: %s\n", cfg.DBPath)
		fmt.Fprintf(out, "Applied:  %d\n", len(applied))
		for _, m := range pending {
			fmt.Fprintf(out, "Pending:  %s\n", m)
		}
		return nil
	}

	applied, err := database.MigrateWithInfo()
	if err != nil {
		return exitError(1, fmt.Errorf("migration failed: %w", err))
	}
	if len(applied) == 0 {
		fmt.Fprintln(out, "Database is up to date")
		return nil
	}
	for _, m := range applied {
		fmt.Fprintf(out, "✓ Applied %s\n", m)
	}
	return nil
}
