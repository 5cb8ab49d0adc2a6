package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	service "github.com/okian/birdplot/internal/app"
	"github.com/okian/birdplot/internal/adapters/render"
	"github.com/okian/birdplot/internal/config"
	"github.com/okian/birdplot/internal/domain/radar"
	"github.com/okian/birdplot/pkg/logger"
	"github.com/okian/birdplot/pkg/metrics"
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stderr)
	stop()

	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "birdplot:", err)
		os.Exit(1)
	}
}

// cliFlags holds command line values. Empty strings and unset flags leave the
// configuration untouched.
type cliFlags struct {
	configPath string
	data       string
	graphType  string
	outputDir  string
	report     string
	metrics    string
	seed       int64
	seedSet    bool
}

func parseFlags(args []string, stderr io.Writer) (cliFlags, error) {
	var f cliFlags
	fs := flag.NewFlagSet("birdplot", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&f.configPath, "config", "", "path to a TOML or YAML config file (default: $BIRDPLOT_CONFIG or ./config.toml)")
	fs.StringVar(&f.data, "data", "", "path to the CSV data file (default: data.csv)")
	fs.StringVar(&f.graphType, "graph-type", "", "charts to generate: scatter, radar or all (default: scatter)")
	fs.StringVar(&f.outputDir, "out", "", "output directory (default: output)")
	fs.StringVar(&f.report, "report", "", "write a JSON run report to this path")
	fs.StringVar(&f.metrics, "metrics", "", "write Prometheus metrics to this textfile")
	fs.Int64Var(&f.seed, "seed", 0, "seed for overlap estimation (0 = unseeded)")

	if err := fs.Parse(args); err != nil {
		return f, err
	}
	if fs.NArg() > 0 {
		return f, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	fs.Visit(func(fl *flag.Flag) {
		if fl.Name == "seed" {
			f.seedSet = true
		}
	})
	return f, nil
}

// apply overrides configuration values with the flags that were given.
func (f cliFlags) apply(cfg *config.Config) {
	if f.data != "" {
		cfg.Data = f.data
	}
	if f.graphType != "" {
		cfg.GraphType = f.graphType
	}
	if f.outputDir != "" {
		cfg.Paths.OutputDir = f.outputDir
	}
	if f.report != "" {
		cfg.Output.Report = f.report
	}
	if f.metrics != "" {
		cfg.Output.MetricsTextfile = f.metrics
	}
	if f.seedSet {
		cfg.Chart.Seed = f.seed
	}
}

func run(ctx context.Context, args []string, stderr io.Writer) error {
	flags, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	// Load configuration (defaults -> optional file -> env), then flags.
	cfg, err := config.Load(ctx, flags.configPath)
	if err != nil {
		return err
	}
	flags.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := logger.InitWithWriter(stderr, cfg.LogFormat); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Named("birdplot")

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	mm := metrics.NewManager(metrics.WithRuntimeCollectors(cfg.Output.MetricsTextfile != ""))
	defer writeMetrics(ctx, log, mm, cfg.Output.MetricsTextfile)

	svc, err := newService(ctx, cfg, log, mm)
	if err != nil {
		return err
	}

	rep, err := svc.RunFile(ctx, cfg.Data)
	if err != nil {
		log.Error(ctx, "run failed", logger.Error(err))
		return err
	}

	if cfg.Output.Report != "" {
		if err := rep.WriteFile(cfg.Output.Report); err != nil {
			return err
		}
		log.Info(ctx, "report written", logger.String("path", cfg.Output.Report))
	}
	return nil
}

// newService wires the renderer, estimator and metrics from cfg.
func newService(ctx context.Context, cfg *config.Config, log logger.Logger, mm *metrics.Manager) (*service.Service, error) {
	style, err := render.NewStyle(cfg.Colors)
	if err != nil {
		return nil, err
	}
	icons, err := render.LoadIcons(ctx, cfg.Paths.BirdsDir, log)
	if err != nil {
		return nil, err
	}

	renderer := render.New(
		render.WithCanvasSize(cfg.Chart.CanvasSize()),
		render.WithMaxValue(cfg.Chart.MaxValue),
		render.WithGridStep(cfg.Chart.GridStep),
		render.WithStyle(style),
		render.WithIcons(icons, cfg.Chart.IconZoom),
	)
	estimator := radar.NewEstimator(
		radar.WithSamples(cfg.Chart.Samples),
		radar.WithSeed(cfg.Chart.Seed),
	)

	return service.New(
		service.WithGraphType(cfg.GraphType),
		service.WithMaxValue(cfg.Chart.MaxValue),
		service.WithOutputDir(cfg.Paths.OutputDir),
		service.WithRenderer(renderer),
		service.WithEstimator(estimator),
		service.WithMetrics(mm),
		service.WithLogger(log),
	), nil
}

func writeMetrics(ctx context.Context, log logger.Logger, mm *metrics.Manager, path string) {
	if path == "" {
		return
	}
	if err := mm.WriteTextfile(path); err != nil {
		log.Warn(ctx, "metrics textfile not written", logger.String("path", path), logger.Error(err))
		return
	}
	log.Debug(ctx, "metrics textfile written", logger.String("path", path))
}
