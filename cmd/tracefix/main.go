package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"tracekit/internal/batch"
	"tracekit/internal/config"
	"tracekit/internal/dataprocessing"
	"tracekit/internal/files"
	"tracekit/internal/gps"
	"tracekit/internal/infrastructure"
	"tracekit/internal/validation"
)

// options holds the command line flags
type options struct {
	dir     string
	ignore  string
	cascade bool
	latest  bool
	prefs   string
	workers int
	xlsx    bool
	strict  bool
	// files named on the command line bypass discovery
	files []string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "tracefix:", err)
		os.Exit(1)
	}
}

func parseFlags(args []string, cfg *config.Config) (*options, error) {
	fs := flag.NewFlagSet("tracefix", flag.ContinueOnError)
	opts := &options{}
	fs.StringVar(&opts.dir, "dir", cfg.Paths.InputDir, "directory containing trace CSV files")
	fs.StringVar(&opts.ignore, "ignore", cfg.Processing.Ignore, "skip files whose name contains this text")
	fs.BoolVar(&opts.cascade, "cascade", cfg.Processing.Cascade, "search sub-directories")
	fs.BoolVar(&opts.latest, "latest", false, "only process the most recent file")
	fs.StringVar(&opts.prefs, "prefs", cfg.Paths.PrefsFile, "column preferences file (json or yaml)")
	fs.IntVar(&opts.workers, "workers", cfg.Processing.Workers, "files processed in parallel")
	fs.BoolVar(&opts.xlsx, "xlsx", cfg.Processing.ExportXLSX, "also write an xlsx workbook")
	fs.BoolVar(&opts.strict, "strict", cfg.GPS.StrictPatches, "fail traces that end inside an invalid run")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	opts.files = fs.Args()
	if opts.dir == "" && len(opts.files) == 0 {
		return nil, errors.New("no input: pass -dir or file paths")
	}

	cfg.Paths.InputDir = opts.dir
	cfg.Paths.PrefsFile = opts.prefs
	cfg.Processing.Ignore = opts.ignore
	cfg.Processing.Cascade = opts.cascade
	cfg.Processing.Workers = opts.workers
	cfg.Processing.ExportXLSX = opts.xlsx
	cfg.GPS.StrictPatches = opts.strict
	return opts, cfg.Validate()
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	opts, err := parseFlags(args, cfg)
	if err != nil {
		return err
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer infrastructure.CloseLogFile()

	providers, err := infrastructure.InitializeOTel(cfg.Telemetry, os.Stderr, logger)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			logger.Warn("telemetry shutdown failed", slog.String("error", err.Error()))
		}
	}()

	metrics, err := infrastructure.CreateRepairMetrics(providers.Meter)
	if err != nil {
		return fmt.Errorf("failed to create metrics: %w", err)
	}
	if stopMetrics := serveMetrics(cfg.Telemetry.MetricsAddr, providers.PrometheusHTTP, logger); stopMetrics != nil {
		defer stopMetrics()
	}

	validator := validation.NewFileValidator(logger)
	if cfg.Paths.OutputDir != "" {
		if err := validator.ValidateOutputDirectory(cfg.Paths.OutputDir); err != nil {
			return err
		}
	}

	paths, err := inputPaths(cfg, opts, validator)
	if err != nil {
		return err
	}

	runnerOpts := []batch.Option{
		batch.WithLogger(logger),
		batch.WithMetrics(metrics),
		batch.WithPipelineOptions(gps.WithTracer(providers.Tracer)),
	}
	if cfg.Paths.PrefsFile != "" {
		prefs, err := dataprocessing.LoadPreferences(cfg.Paths.PrefsFile)
		if err != nil {
			return err
		}
		runnerOpts = append(runnerOpts, batch.WithPreferences(prefs))
	}

	reports, runErr := batch.NewRunner(cfg, runnerOpts...).Run(ctx, paths)
	for _, report := range reports {
		fmt.Fprintln(stdout, report)
	}
	fmt.Fprintln(stdout, batch.Summarize(reports))
	return runErr
}

// inputPaths resolves the files to process from explicit arguments or
// from directory discovery
func inputPaths(cfg *config.Config, opts *options, validator *validation.FileValidator) ([]string, error) {
	if len(opts.files) > 0 {
		return opts.files, validator.ValidateTraceFiles(opts.files)
	}
	if err := validator.ValidateInputDirectory(cfg.Paths.InputDir); err != nil {
		return nil, err
	}

	discovery := files.NewDiscovery("")
	if opts.latest {
		latest, err := discovery.MostRecentCSV(cfg.Paths.InputDir, cfg.Processing.Ignore, cfg.Processing.Cascade)
		if err != nil {
			return nil, err
		}
		return []string{latest.Path}, nil
	}

	found, err := discovery.FindCSVFiles(cfg.Paths.InputDir, cfg.Processing.Ignore, cfg.Processing.Cascade)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("%w in %s", files.ErrNoCSVFiles, cfg.Paths.InputDir)
	}
	return files.Paths(found), nil
}

// serveMetrics exposes the prometheus handler on addr until the returned
// stop function is called
func serveMetrics(addr string, handler http.Handler, logger *slog.Logger) func() {
	if addr == "" || handler == nil {
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)
	server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", slog.String("error", err.Error()))
		}
	}()
	logger.Info("serving metrics", slog.String("addr", addr))

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(ctx)
	}
}
