package httpapi

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const handlerSpanPrefix = "httpapi.Handler."

var apiTracer = otel.Tracer("fbref-crawler/internal/interfaces/httpapi")

// startSpan opens a span for handler entry points only. Middleware and
// response helpers run under the otelhttp server span and get nothing.
func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	handler, ok := handlerSpanName(name)
	if !ok || !trace.SpanContextFromContext(ctx).IsValid() {
		return ctx, trace.SpanFromContext(context.Background())
	}
	return apiTracer.Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.String("fbref.handler", handler)),
	)
}

func handlerSpanName(name string) (string, bool) {
	handler, ok := strings.CutPrefix(name, handlerSpanPrefix)
	if !ok || handler == "" {
		return "", false
	}
	return handler, true
}
