package trace

import (
	"context"
	"log/slog"

	sentryotel "github.com/getsentry/sentry-go/otel"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdkTrace "go.opentelemetry.io/otel/sdk/trace"
)

type Config struct {
	SampleRate float64 `split_words:"true" default:"0.1"`
}

// NewProvider builds the process tracer provider and installs it globally.
// Spans are handed to Sentry when it is enabled and logged at debug level
// otherwise.
func NewProvider(c Config, sentryEnabled bool) (*sdkTrace.TracerProvider, func(context.Context) error) {
	opts := []sdkTrace.TracerProviderOption{
		sdkTrace.WithSampler(NewForceBasedSampler(c.SampleRate)),
	}
	if sentryEnabled {
		opts = append(opts, sdkTrace.WithSpanProcessor(sentryotel.NewSentrySpanProcessor()))
		otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			sentryotel.NewSentryPropagator(),
		))
	} else {
		opts = append(opts, sdkTrace.WithBatcher(NewLogExporter(slog.Default())))
		otel.SetTextMapPropagator(propagation.TraceContext{})
	}

	tp := sdkTrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)
	return tp, tp.Shutdown
}
