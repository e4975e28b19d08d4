package main

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-hook-notify/core"
	"github.com/spf13/cobra"
)

func newServeCommand(flags *globalFlags) *cobra.Command {
	var addr string
	var migrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the webhook server",
		RunE: func(cmd *cobra.Command, args []string) error {
			runtime := flags.runtime()
			runtime.HTTP.Addr = strings.TrimSpace(addr)
			return runWithSignals(func(ctx context.Context) error {
				return serve(ctx, flags, runtime, migrate)
			})
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides http.addr")
	cmd.Flags().BoolVar(&migrate, "migrate", true, "apply migrations before serving")
	return cmd
}

func serve(ctx context.Context, flags *globalFlags, runtime core.Config, migrate bool) error {
	a, err := flags.openApp(ctx, runtime)
	if err != nil {
		return err
	}
	defer a.Close()

	if migrate {
		if err := a.service.Migrate(ctx); err != nil {
			return err
		}
	}
	handler, err := a.service.Handler()
	if err != nil {
		return err
	}

	hubCtx, stopHub := context.WithCancel(ctx)
	defer stopHub()
	go a.service.Hub().Run(hubCtx)

	srv := &http.Server{
		Addr:              a.config.HTTP.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		core.LogInfo(ctx, a.logger, "server starting", map[string]any{
			"addr":   a.config.HTTP.Addr,
			"driver": a.config.Database.Driver,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.HTTP.ShutdownTimeout())
	defer cancel()
	core.LogInfo(shutdownCtx, a.logger, "server shutting down", nil)
	stopHub()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return ctx.Err()
}

func newMigrateCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the webhook configuration schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := flags.openApp(ctx, flags.runtime())
			if err != nil {
				return err
			}
			defer a.Close()
			return a.service.Migrate(ctx)
		},
	}
}
