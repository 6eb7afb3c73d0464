package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abhisek/tango/internal/config"
	"github.com/abhisek/tango/internal/content"
	"github.com/abhisek/tango/internal/progress"
	"github.com/abhisek/tango/internal/remote"
	"github.com/abhisek/tango/internal/store"
)

// backend is where study data lives: the local database or a tango server.
type backend struct {
	Content  content.Store
	Progress progress.Service
	History  progress.History
	close    func() error
}

func (b *backend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

// openBackend connects to the configured server, or opens the local
// database when no server URL is set.
func openBackend(cmd *cobra.Command, cfg config.Config, log *slog.Logger) (*backend, error) {
	if cfg.Remote.URL != "" {
		c, err := remote.New(cfg.Remote.URL, cfg.Remote.Secret, cfg.User, cfg.Remote.Timeout)
		if err != nil {
			return nil, fmt.Errorf("remote backend: %w", err)
		}
		log.Info("using remote backend", "url", cfg.Remote.URL, "user", cfg.User)
		return &backend{Content: c, Progress: c, History: c}, nil
	}

	st, err := openStore(cmd, cfg)
	if err != nil {
		return nil, err
	}
	prog := st.ProgressRepo()
	return &backend{Content: st.ContentRepo(), Progress: prog, History: prog, close: st.Close}, nil
}

// openStore opens the local database. Import always writes locally.
func openStore(cmd *cobra.Command, cfg config.Config) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}
