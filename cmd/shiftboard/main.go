package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/earthboundkid/versioninfo/v2"
	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/dynoinc/shiftboard/internal/dashboard"
	"github.com/dynoinc/shiftboard/internal/dataset"
	"github.com/dynoinc/shiftboard/internal/otel/trace"
)

type Config struct {
	// Dataset configuration
	DatasetFile string `split_words:"true" default:"data/shifts.yaml"`
	FiscalYear  int    `split_words:"true" default:"2025"`

	// HTTP configuration
	HTTPAddr string `split_words:"true" default:"127.0.0.1:5001"`

	// Observability configuration
	LogLevel  slog.Level `split_words:"true" default:"INFO"`
	SentryDSN string     `split_words:"true"`
	Telemetry trace.Config
}

var cfg Config

var rootCmd = &cobra.Command{
	Use:           "shiftboard",
	Short:         "Warehouse shift performance dashboard",
	Version:       versioninfo.Short(),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(".env"); err == nil {
			if err := godotenv.Load(); err != nil {
				return fmt.Errorf("loading .env file: %w", err)
			}
		}

		if err := envconfig.Process("shiftboard", &cfg); err != nil {
			return fmt.Errorf("loading configuration: %w", err)
		}

		slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
			Level:      cfg.LogLevel,
			TimeFormat: time.Kitchen,
		})))
		return nil
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "List the environment variables shiftboard reads",
	RunE: func(cmd *cobra.Command, args []string) error {
		return envconfig.Usagef("shiftboard", &Config{}, cmd.OutOrStdout(), envconfig.DefaultTableFormat)
	},
}

func init() {
	rootCmd.AddCommand(configCmd, serveCmd, mcpCmd, reportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("shiftboard failed", "error", err)
		os.Exit(1)
	}
}

// newService loads the configured dataset and builds the dashboard service
// on top of it. A nil meter provider records nothing.
func newService(ctx context.Context, mp metric.MeterProvider) (*dashboard.Service, func(context.Context) error, error) {
	sentryEnabled := cfg.SentryDSN != ""
	if sentryEnabled {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Release:          versioninfo.Short(),
			EnableTracing:    true,
			TracesSampleRate: 1.0,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("initializing sentry: %w", err)
		}
	}

	tp, shutdown := trace.NewProvider(cfg.Telemetry, sentryEnabled)
	cleanup := func(ctx context.Context) error {
		if sentryEnabled {
			defer sentry.Flush(2 * time.Second)
		}
		return shutdown(ctx)
	}

	ds, err := dataset.Load(ctx, cfg.DatasetFile)
	if err != nil {
		_ = cleanup(ctx)
		return nil, nil, err
	}
	slog.DebugContext(ctx, "loaded dataset", "file", cfg.DatasetFile, "shifts", len(ds.Shifts()))

	if mp == nil {
		mp = noop.NewMeterProvider()
	}
	svc, err := dashboard.New(dataset.NewStore(ds), cfg.FiscalYear, tp, mp)
	if err != nil {
		_ = cleanup(ctx)
		return nil, nil, err
	}

	return svc, cleanup, nil
}
