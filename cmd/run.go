package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abhisek/tango/internal/app"
	"github.com/abhisek/tango/internal/config"
	"github.com/abhisek/tango/internal/logger"
	"github.com/abhisek/tango/internal/screens/home"
	"github.com/abhisek/tango/internal/session"
)

// runApp loads config, opens the backend, and launches the TUI. study,
// when non-nil, opens that session directly.
func runApp(cmd *cobra.Command, study *session.Config, title string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log, closeLog := tuiLogger(cfg)
	defer closeLog()

	b, err := openBackend(cmd, cfg, log)
	if err != nil {
		return err
	}
	defer b.Close()

	mode, err := session.ParseMode(cfg.Study.Mode)
	if err != nil {
		return fmt.Errorf("study mode: %w", err)
	}

	log.Info("starting tui", "user", cfg.User, "direct", study != nil)
	return app.Run(app.Options{
		Content:  b.Content,
		Progress: b.Progress,
		History:  b.History,
		UserID:   cfg.User,
		Logger:   log,
		Defaults: home.Defaults{
			Mode:      mode,
			TimeLimit: cfg.Study.TimeLimit,
			TestCount: cfg.Study.TestCount,
		},
		Study:      study,
		StudyTitle: title,
	})
}

// tuiLogger logs to a file so the terminal stays clean. When the file
// cannot be opened logs are dropped.
func tuiLogger(cfg config.Config) (*slog.Logger, func()) {
	path := cfg.Log.File
	if path == "" {
		path = logger.DefaultFile()
	}
	f, err := logger.OpenFile(path)
	if err != nil {
		return logger.New(io.Discard, cfg.Log.Level), func() {}
	}
	return logger.New(f, cfg.Log.Level), func() { f.Close() }
}
