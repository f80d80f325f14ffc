package gps

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"tracekit/internal/config"
	"tracekit/internal/infrastructure"
)

// Stage is a step of the repair pipeline
type Stage int

const (
	StagePending Stage = iota
	StageClassify
	StageExtractPatches
	StageRepairSignals
	StageRecomputeDistance
	StageAnnotateReplaced
	StageDone
)

func (s Stage) String() string {
	switch s {
	case StagePending:
		return "pending"
	case StageClassify:
		return "classify"
	case StageExtractPatches:
		return "extract_patches"
	case StageRepairSignals:
		return "repair_signals"
	case StageRecomputeDistance:
		return "recompute_distance"
	case StageAnnotateReplaced:
		return "annotate_replaced"
	case StageDone:
		return "done"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// run tracks the stage of one repair. Stages only move forward one at a time.
type run struct {
	stage   Stage
	started time.Time
}

func (r *run) advance(next Stage) error {
	if next != r.stage+1 {
		return fmt.Errorf("%w: %s cannot follow %s", ErrStageOrder, next, r.stage)
	}
	r.stage = next
	return nil
}

// Pipeline repairs traces: classify, extract patches, repair signals,
// recompute distance and annotate replaced samples.
type Pipeline struct {
	opts    Options
	tracer  trace.Tracer
	metrics *infrastructure.RepairMetrics
	logger  *slog.Logger
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithTracer sets the tracer used for stage spans
func WithTracer(tracer trace.Tracer) Option {
	return func(p *Pipeline) {
		p.tracer = tracer
	}
}

// WithMetrics sets the repair metric instruments
func WithMetrics(metrics *infrastructure.RepairMetrics) Option {
	return func(p *Pipeline) {
		p.metrics = metrics
	}
}

// WithLogger sets the pipeline logger
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// NewPipeline creates a repair pipeline
func NewPipeline(opts Options, options ...Option) *Pipeline {
	p := &Pipeline{
		opts:   opts,
		tracer: otel.Tracer(config.AppName),
		logger: infrastructure.GetLogger(),
	}
	for _, option := range options {
		option(p)
	}
	p.logger = infrastructure.WithComponent(p.logger, "gps")
	return p
}

// Options returns the pipeline options
func (p *Pipeline) Options() Options {
	return p.opts
}

// Repair runs every stage over t. Every signal of t is repaired with the
// patch list derived from its position signals. t is not modified.
func (p *Pipeline) Repair(ctx context.Context, t *Trace) (*Result, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	ctx, span := p.startRepair(ctx, t)
	defer span.End()

	r := &run{started: time.Now()}
	res := &Result{Signals: make(map[string][]float64, len(t.Signals))}

	err := p.execute(ctx, r, StageClassify, func() error {
		keep, err := Classify(t.Signals[t.Latitude], t.Signals[t.Longitude], p.opts)
		res.Mask = keep
		return err
	})
	if err == nil {
		err = p.execute(ctx, r, StageExtractPatches, func() error {
			patches, err := ExtractPatches(res.Mask, p.opts.Strict)
			res.Patches = patches
			return err
		})
	}
	if err == nil {
		err = p.execute(ctx, r, StageRepairSignals, func() error {
			for _, name := range t.Names() {
				repaired, err := RepairSignal(t.Signals[name], res.Patches)
				if err != nil {
					return fmt.Errorf("repair %s: %w", name, err)
				}
				res.Signals[name] = repaired
			}
			return nil
		})
	}
	if err == nil {
		err = p.execute(ctx, r, StageRecomputeDistance, func() error {
			res.Steps = StepDistances(res.Signals[t.Latitude], res.Signals[t.Longitude], p.opts.Units)
			res.CumulativeDistance = CumulativeDistance(res.Steps)
			return nil
		})
	}
	if err == nil {
		err = p.execute(ctx, r, StageAnnotateReplaced, func() error {
			res.Replaced = make([]bool, len(res.Mask))
			for i, keep := range res.Mask {
				res.Replaced[i] = !keep
			}
			return nil
		})
	}
	if err == nil {
		err = r.advance(StageDone)
	}
	if err != nil {
		infrastructure.RecordError(ctx, err)
		p.logger.ErrorContext(ctx, "trace repair failed",
			slog.String("stage", r.stage.String()),
			slog.String("error", err.Error()))
		return nil, err
	}

	elapsed := time.Since(r.started)
	p.metrics.RecordRepair(ctx, res.ReplacedCount(), len(res.Patches), elapsed)
	finishRepair(span, res)

	p.logger.DebugContext(ctx, "trace repaired",
		slog.Int("samples", t.Len()),
		slog.Int("patches", len(res.Patches)),
		slog.Int("replaced", res.ReplacedCount()),
		slog.Float64("distance_m", res.TotalDistance()),
		slog.Duration("duration", elapsed))

	return res, nil
}

// execute advances r to stage and runs fn inside a stage span
func (p *Pipeline) execute(ctx context.Context, r *run, stage Stage, fn func() error) error {
	if err := r.advance(stage); err != nil {
		return err
	}

	_, span := p.startStage(ctx, stage)
	defer span.End()

	if err := fn(); err != nil {
		failStage(span, err)
		return fmt.Errorf("%s: %w", stage, err)
	}
	return nil
}
