package cmd

import (
	"github.com/abhisek/fluence/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fluence",
	Short: "Hindi-English vocabulary quiz",
	Long: "Fluence — terminal vocabulary game that schedules Hindi-English flashcard\n" +
		"questions with spaced repetition and coaches you with AI feedback.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides FLUENCE_DB env var)")
	rootCmd.PersistentFlags().String("student", "", "Question bank selector (overrides player name aliases)")
	rootCmd.PersistentFlags().String("questions-dir", "", "Local directory holding question bank files")
	rootCmd.PersistentFlags().String("questions-url", "", "Base URL question bank files are fetched from")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(insightsCmd)
	rootCmd.AddCommand(topicsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then FLUENCE_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
