package usecase

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var pipelineTracer = otel.Tracer("fbref-crawler/internal/usecase")

// Span attribute keys shared by the pipeline services.
const (
	attrLeague   = attribute.Key("fbref.league")
	attrClub     = attribute.Key("fbref.club")
	attrDataType = attribute.Key("fbref.data_type")
	attrKind     = attribute.Key("fbref.extraction_kind")
	attrDir      = attribute.Key("fbref.snapshot_dir")
)

// startUsecaseSpan only opens a child span; a request that arrived without a
// sampled parent (CLI runs without tracing, health probes) stays span-free.
func startUsecaseSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if name == "" || !trace.SpanContextFromContext(ctx).IsValid() {
		return ctx, trace.SpanFromContext(context.Background())
	}
	return pipelineTracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// endUsecaseSpan records err on span before ending it.
func endUsecaseSpan(span trace.Span, err error) {
	if err != nil && span.IsRecording() {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
