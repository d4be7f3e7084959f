package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "lexq",
	Short: "Store, inspect and merge lexemes",
	Long: `lexq keeps lexemes (words with their forms, senses and statements) in a
SQLite database and merges duplicate lexemes into one, leaving a redirect
behind.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to database file (overrides LEXQ_DB_PATH)")
	rootCmd.PersistentFlags().String("as", "", "Actor to perform action as (overrides LEXQ_ACTOR)")
	rootCmd.PersistentFlags().StringP("output", "o", "json", "Output format: json, yaml, table (overrides LEXQ_OUTPUT; table applies to listings, lexeme documents print as json)")
}
