package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"golang.org/x/sync/errgroup"

	"tracekit/internal/config"
	"tracekit/internal/dataprocessing"
	"tracekit/internal/exporter"
	"tracekit/internal/files"
	"tracekit/internal/gps"
	"tracekit/internal/infrastructure"
)

// Runner repairs and saves trace files with bounded parallelism
type Runner struct {
	cfg      *config.Config
	prefs    *dataprocessing.Preferences
	pipeline *gps.Pipeline
	writer   *exporter.CSVWriter
	files    *files.Manager
	metrics  *infrastructure.RepairMetrics
	logger   *slog.Logger

	gpsOptions []gps.Option
}

// Option configures a Runner
type Option func(*Runner)

// WithPreferences enables column discarding and rounding
func WithPreferences(prefs *dataprocessing.Preferences) Option {
	return func(r *Runner) {
		r.prefs = prefs
	}
}

// WithMetrics records file and repair metrics
func WithMetrics(metrics *infrastructure.RepairMetrics) Option {
	return func(r *Runner) {
		r.metrics = metrics
		r.gpsOptions = append(r.gpsOptions, gps.WithMetrics(metrics))
	}
}

// WithPipelineOptions passes options through to the repair pipeline
func WithPipelineOptions(options ...gps.Option) Option {
	return func(r *Runner) {
		r.gpsOptions = append(r.gpsOptions, options...)
	}
}

// WithLogger sets the runner logger
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
		r.gpsOptions = append(r.gpsOptions, gps.WithLogger(logger))
	}
}

// NewRunner creates a batch runner from cfg
func NewRunner(cfg *config.Config, options ...Option) *Runner {
	r := &Runner{
		cfg:    cfg,
		writer: exporter.NewCSVWriter(cfg.Paths.OutputDir),
		files:  files.NewManager(cfg.Paths.OutputDir),
		logger: infrastructure.GetLogger(),
	}
	for _, option := range options {
		option(r)
	}
	r.pipeline = gps.NewPipeline(gps.OptionsFromConfig(cfg.GPS), r.gpsOptions...)
	r.logger = infrastructure.WithComponent(r.logger, "batch")
	return r
}

// Run processes every path and returns one report per path in input
// order. A failing file does not stop the others; the returned error
// joins every per-file failure.
func (r *Runner) Run(ctx context.Context, paths []string) ([]FileReport, error) {
	ctx = infrastructure.EnsureRunID(ctx)
	started := time.Now()

	r.logger.InfoContext(ctx, "batch started",
		slog.Int("files", len(paths)),
		slog.Int("workers", r.workers()))

	reports := make([]FileReport, len(paths))
	var g errgroup.Group
	g.SetLimit(r.workers())

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				reports[i] = FileReport{Input: path, Err: err}
				return nil
			}
			reports[i] = r.ProcessFile(ctx, path)
			return nil
		})
	}
	_ = g.Wait()

	var errs []error
	for _, report := range reports {
		if report.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", report.Input, report.Err))
		}
	}

	r.logger.InfoContext(ctx, "batch finished",
		slog.Int("files", len(paths)),
		slog.Int("failed", len(errs)),
		slog.Duration("duration", time.Since(started)))

	return reports, errors.Join(errs...)
}

func (r *Runner) workers() int {
	if r.cfg.Processing.Workers < 1 {
		return 1
	}
	return r.cfg.Processing.Workers
}

// ProcessFile loads, repairs and saves a single trace
func (r *Runner) ProcessFile(ctx context.Context, path string) FileReport {
	ctx = infrastructure.WithTraceFile(ctx, path)
	started := time.Now()

	report := FileReport{Input: path, Serial: files.ExtractSerial(filepath.Base(path))}
	err := r.process(ctx, path, &report)
	report.Duration = time.Since(started)
	report.Err = err

	r.metrics.RecordFile(ctx, err)
	if err != nil {
		infrastructure.WithError(r.logger, err).ErrorContext(ctx, "trace file failed")
		return report
	}

	r.logger.InfoContext(ctx, "trace file processed",
		slog.String("output", report.Output),
		slog.Int("patches", report.Summary.Patches),
		slog.Int("replaced", report.Summary.Replaced),
		slog.String("compression", report.Compression))
	return report
}

func (r *Runner) process(ctx context.Context, path string, report *FileReport) error {
	var err error
	if report.InputSize, err = r.files.GetFileSize(path); err != nil {
		return err
	}

	df, err := load(path)
	if err != nil {
		return err
	}

	df, res, err := r.pipeline.RepairFrame(ctx, df)
	if err != nil {
		return err
	}

	opts := r.pipeline.Options()
	report.Summary = gps.Summarize(res, res.Signals[opts.LatitudeColumn], res.Signals[opts.LongitudeColumn])

	// Discard follows repair; all-zero signals are still repair inputs
	if r.prefs != nil {
		df = dataprocessing.Discard(df, r.prefs, r.cfg.Processing.DropEmpty,
			config.ReplacedColumn, config.CumulativeColumn)
		if df, err = dataprocessing.Squish(df, r.prefs); err != nil {
			return err
		}
	}

	writeOpts := exporter.WriteOptions{
		Suffix:    r.cfg.Processing.Suffix,
		SaveIndex: r.cfg.Processing.SaveIndex,
	}
	if report.Output, err = r.writer.WriteFrame(df, path, writeOpts); err != nil {
		return err
	}
	if r.cfg.Processing.ExportXLSX {
		if report.Workbook, err = r.writer.WriteXLSX(df, path, writeOpts); err != nil {
			return err
		}
	}

	if report.OutputSize, err = r.files.GetFileSize(report.Output); err != nil {
		return err
	}
	report.Compression = files.Compression(report.InputSize, report.OutputSize)
	return nil
}

func load(path string) (dataframe.DataFrame, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return dataprocessing.ReadXLSX(path)
	}
	return dataprocessing.ReadCSV(path)
}
