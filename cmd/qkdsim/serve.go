package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/qkdlab/qkdsim/internal/config"
	"github.com/qkdlab/qkdsim/internal/server"
	"github.com/qkdlab/qkdsim/pkg/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the simulator web UI and JSON API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.DevMode})
		log.Info().Int("port", cfg.Port).Int("max_qubits", cfg.MaxQubits).Msg("Starting qkdsim")

		srv := server.New(server.Config{
			Port:      cfg.Port,
			Log:       log,
			MaxQubits: cfg.MaxQubits,
			DevMode:   cfg.DevMode,
		})

		errCh := make(chan error, 1)
		go func() { errCh <- srv.Start() }()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		select {
		case err := <-errCh:
			return err
		case sig := <-quit:
			log.Info().Str("signal", sig.String()).Msg("Shutting down")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("Server forced to shutdown")
			return err
		}
		log.Info().Msg("Server stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
