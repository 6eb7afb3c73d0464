package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/tango/internal/auth"
	"github.com/abhisek/tango/internal/logger"
	"github.com/abhisek/tango/internal/server"
	"github.com/abhisek/tango/internal/telemetry"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the local database over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Server.Addr = addr
		}

		log := logger.New(os.Stdout, cfg.Log.Level)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		shutdown, err := telemetry.Setup(ctx, "tango-server")
		if err != nil {
			log.Warn("tracing disabled", "error", err)
		}
		defer shutdown(context.Background())

		signer, err := auth.NewSigner(cfg.Server.Secret)
		if err != nil {
			return fmt.Errorf("server secret: %w", err)
		}

		st, err := openStore(cmd, cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		prog := st.ProgressRepo()
		h := server.NewRouter(server.Deps{
			Content:  st.ContentRepo(),
			Progress: prog,
			History:  prog,
			Signer:   signer,
			Logger:   log,
		})
		return server.Serve(ctx, cfg.Server.Addr, h, log)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides config)")
}
