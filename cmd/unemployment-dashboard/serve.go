package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/iwvelando/unemployment-dashboard/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the interactive dashboard over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}

	flags := cmd.Flags()
	flags.String("address", "", "HTTP listen address (overrides config)")
	flags.Float64("rate-limit", 0, "requests per second allowed per client, 0 disables (overrides config)")
	flags.Bool("gzip", true, "compress responses (overrides config)")
	_ = a.v.BindPFlag("server.address", flags.Lookup("address"))
	_ = a.v.BindPFlag("server.rateLimit", flags.Lookup("rate-limit"))
	_ = a.v.BindPFlag("server.gzip", flags.Lookup("gzip"))
	return cmd
}

func (a *app) serve(ctx context.Context) error {
	ds, err := a.loadDataset()
	if err != nil {
		a.logger.Fatal("failed to load dataset",
			zap.String("op", "main"),
			zap.String("path", a.conf.Dataset.Path),
			zap.Error(err),
		)
	}

	handler, err := server.NewHandler(a.logger, ds, server.OptionsFromConfig(a.conf.Server, version))
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              a.conf.Server.Address,
		Handler:           handler,
		ReadTimeout:       a.conf.Server.ReadTimeout,
		ReadHeaderTimeout: a.conf.Server.ReadTimeout,
		WriteTimeout:      a.conf.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("dashboard listening",
			zap.String("op", "main"),
			zap.String("address", srv.Addr),
			zap.String("version", version),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	a.logger.Info("shutting down", zap.String("op", "main"))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
