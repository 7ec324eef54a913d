package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sandevgo/intake/pkg/log"
	"github.com/sandevgo/intake/pkg/srv"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the Intake services",
	Long:  `Initializes and starts all configured transports (HTTP API, Telegram) and background workers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		// logger setup
		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting intake")

		services, cleanups, err := NewServices(ctx)
		if err != nil {
			logger.Error().Err(err).Msg("failed to initialize services")
			return err
		}

		// Start services
		srv.StartServices(ctx, services)

		// Wait for shutdown signal; storage closes after the transports drain.
		_ = srv.ShutdownServices(ctx, shutdownTimeout, services)
		_ = srv.ShutdownServices(ctx, shutdownTimeout, cleanups)
		logger.Info().Msg("intake has been shut down gracefully")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}
