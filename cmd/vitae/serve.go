package main

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tsawler/vitae/internal/server"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the parser over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := e.load()
			if err != nil {
				return err
			}
			defer logger.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := server.New(server.Options{
				BodyLimit: cfg.Server.BodyLimit,
				Configure: pipeline(cfg.Parse),
			}, logger)

			logger.Info("starting the vitae server", zap.String("version", version))

			errc := make(chan error, 1)
			go func() {
				errc <- srv.Listen(cfg.Server.Addr)
			}()

			select {
			case err := <-errc:
				return err
			case <-ctx.Done():
			}

			logger.Info("shutting down")
			return srv.Shutdown(shutdownTimeout)
		},
	}

	cmd.Flags().String("addr", ":8080", "address to listen on")
	e.v.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))

	return cmd
}
