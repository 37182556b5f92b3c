package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/donor/internal/api"
	"github.com/MikeSquared-Agency/donor/internal/donation"
)

// shutdownTimeout bounds how long in-flight requests may take to finish.
const shutdownTimeout = 10 * time.Second

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve extraction and sampling over HTTP for the donation flow",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		slog.Info("donor starting", "port", cfg.Port, "questionnaire", cfg.QuestionnaireVersion)

		schema := schemaFor(cfg)
		srv := api.NewServer(cfg.Port, func() *donation.Flow { return newFlow(cfg) }, schema.Version, int64(cfg.MaxUploadMB)<<20)

		errCh := make(chan error, 1)
		go func() {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()

		slog.Info("donor ready", "port", cfg.Port)

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-sigCh:
		case err := <-errCh:
			slog.Error("HTTP server error", "error", err)
			return err
		}

		slog.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			slog.Error("HTTP server shutdown", "error", err)
			return err
		}
		slog.Info("donor stopped")
		return nil
	},
}
