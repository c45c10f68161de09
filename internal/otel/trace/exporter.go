package trace

import (
	"context"
	"log/slog"

	sdkTrace "go.opentelemetry.io/otel/sdk/trace"
)

// logExporter writes each finished span as a debug log line. It stands in
// for a real backend when Sentry is not configured.
type logExporter struct {
	logger *slog.Logger
}

func NewLogExporter(logger *slog.Logger) sdkTrace.SpanExporter {
	return &logExporter{logger: logger}
}

func (e *logExporter) ExportSpans(ctx context.Context, spans []sdkTrace.ReadOnlySpan) error {
	for _, span := range spans {
		e.logger.DebugContext(ctx, "span",
			"name", span.Name(),
			"trace_id", span.SpanContext().TraceID().String(),
			"duration", span.EndTime().Sub(span.StartTime()),
			"status", span.Status().Code.String(),
		)
	}
	return nil
}

func (e *logExporter) Shutdown(ctx context.Context) error {
	return nil
}
