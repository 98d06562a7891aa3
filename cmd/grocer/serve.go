package main

import (
	"github.com/sicko7947/grocer/api"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the lists over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("addr") {
			cfg.Server.Addr = serveAddr
		}

		app := api.NewApp(api.NewHandler(svc, logger))

		// Start server in a goroutine
		errCh := make(chan error, 1)
		go func() {
			logger.Info().Str("address", cfg.Server.Addr).Str("backend", cfg.Storage.Backend).Msg("Starting HTTP server")
			errCh <- app.Listen(cfg.Server.Addr)
		}()

		// Wait for a signal or a listener failure
		select {
		case err := <-errCh:
			return err
		case <-cmd.Context().Done():
		}

		logger.Info().Msg("Shutting down server...")

		if err := app.ShutdownWithTimeout(cfg.Server.ShutdownTimeout); err != nil {
			logger.Error().Err(err).Msg("Server forced to shutdown")
			return err
		}

		logger.Info().Msg("Server stopped")
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, :3000)")
	rootCmd.AddCommand(serveCmd)
}
