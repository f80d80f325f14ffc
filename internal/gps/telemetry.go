package gps

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// startRepair creates the span covering one trace repair
func (p *Pipeline) startRepair(ctx context.Context, t *Trace) (context.Context, trace.Span) {
	return p.tracer.Start(ctx, "gps.repair",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.Int("trace.samples", t.Len()),
			attribute.Int("trace.signals", len(t.Signals)),
			attribute.String("gps.delta_units", string(p.opts.Units)),
			attribute.Bool("gps.strict", p.opts.Strict),
		),
	)
}

// startStage creates a child span for a pipeline stage
func (p *Pipeline) startStage(ctx context.Context, stage Stage) (context.Context, trace.Span) {
	return p.tracer.Start(ctx, fmt.Sprintf("gps.stage.%s", stage),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.String("gps.stage", stage.String())),
	)
}

func failStage(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

func finishRepair(span trace.Span, res *Result) {
	span.SetAttributes(
		attribute.Int("gps.patches", len(res.Patches)),
		attribute.Int("gps.replaced", res.ReplacedCount()),
		attribute.Float64("gps.distance_m", res.TotalDistance()),
	)
	span.SetStatus(codes.Ok, "")
}
