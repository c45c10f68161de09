package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/earthboundkid/versioninfo/v2"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dynoinc/shiftboard/internal/otel/metric"
	"github.com/dynoinc/shiftboard/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard API and metrics over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		slog.InfoContext(ctx, "running version", "version", versioninfo.Short())

		mp, err := metric.NewProvider()
		if err != nil {
			return fmt.Errorf("setting up metrics: %w", err)
		}

		svc, cleanup, err := newService(ctx, mp)
		if err != nil {
			return fmt.Errorf("setting up dashboard: %w", err)
		}
		defer func() {
			if err := cleanup(context.Background()); err != nil {
				slog.Warn("error shutting down tracing", "error", err)
			}
			if err := mp.Shutdown(context.Background()); err != nil {
				slog.Warn("error shutting down metrics", "error", err)
			}
		}()

		server := &http.Server{
			BaseContext: func(listener net.Listener) context.Context { return ctx },
			Addr:        cfg.HTTPAddr,
			Handler:     web.New(svc, mp.Handler),
		}

		wg, ctx := errgroup.WithContext(ctx)
		wg.Go(func() error {
			slog.InfoContext(ctx, "starting HTTP server", "addr", cfg.HTTPAddr)
			if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("HTTP server error: %w", err)
			}

			return nil
		})
		wg.Go(func() error {
			c := make(chan os.Signal, 1)
			signal.Notify(c, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

			select {
			case <-ctx.Done():
			case <-c:
				slog.Info("shutting down")
				cancel()
			}

			return server.Shutdown(context.Background())
		})

		if err := wg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}
