package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/tango/internal/config"
	"github.com/abhisek/tango/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "tango",
	Short: "Vocabulary study in the terminal",
	Long:  "Tango drills vocabulary with flashcards, quizzes and typing, and schedules spaced review.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, nil, "")
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides TANGO_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default $XDG_CONFIG_HOME/tango/config.toml)")

	rootCmd.AddCommand(studyCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(topicsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the config file named by --config, or the default one.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return config.Config{}, err
		}
		path = p
	}
	return config.Load(path)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the config file, then TANGO_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}
