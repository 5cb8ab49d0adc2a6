// Package service runs a birdplot batch: it projects the table, plans every
// chart, estimates overlaps and renders the charts one at a time.
package service

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/okian/birdplot/internal/adapters/render"
	"github.com/okian/birdplot/internal/adapters/report"
	"github.com/okian/birdplot/internal/adapters/table"
	"github.com/okian/birdplot/internal/domain/model"
	"github.com/okian/birdplot/internal/domain/projection"
	"github.com/okian/birdplot/internal/domain/radar"
	"github.com/okian/birdplot/pkg/logger"
	"github.com/okian/birdplot/pkg/metrics"
)

// Graph types.
const (
	GraphScatter = "scatter"
	GraphRadar   = "radar"
	GraphAll     = "all"
)

// Renderer draws charts into images.
type Renderer interface {
	Scatter(points []model.ProjectedPoint) image.Image
	Radar(chart render.RadarChart) (image.Image, error)
}

// OverlapEstimator estimates the shared area of two radar polygons in percent.
type OverlapEstimator interface {
	Estimate(a, b radar.Polygon) (float64, error)
}

// ImageWriter persists a rendered chart.
type ImageWriter func(path string, img image.Image) error

// Service generates the charts of one table.
type Service struct {
	graphType string
	maxValue  float64
	layout    Layout

	renderer  Renderer
	estimator OverlapEstimator
	write     ImageWriter
	metrics   *metrics.Manager
	logger    logger.Logger
	now       func() time.Time
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithGraphType selects scatter, radar or all.
func WithGraphType(graphType string) Option {
	return func(s *Service) {
		if graphType != "" {
			s.graphType = graphType
		}
	}
}

// WithMaxValue sets the projection bound.
func WithMaxValue(v float64) Option {
	return func(s *Service) {
		if v > 0 {
			s.maxValue = v
		}
	}
}

// WithOutputDir sets the root of the output layout.
func WithOutputDir(dir string) Option {
	return func(s *Service) {
		if dir != "" {
			s.layout = Layout{Root: dir}
		}
	}
}

// WithRenderer sets the chart renderer.
func WithRenderer(r Renderer) Option {
	return func(s *Service) {
		if r != nil {
			s.renderer = r
		}
	}
}

// WithEstimator sets the overlap estimator.
func WithEstimator(e OverlapEstimator) Option {
	return func(s *Service) {
		if e != nil {
			s.estimator = e
		}
	}
}

// WithImageWriter replaces the PNG writer.
func WithImageWriter(w ImageWriter) Option {
	return func(s *Service) {
		if w != nil {
			s.write = w
		}
	}
}

// WithMetrics records run metrics on m.
func WithMetrics(m *metrics.Manager) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock sets the time source used for the report.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		graphType: GraphScatter,
		maxValue:  projection.DefaultMaxValue,
		layout:    Layout{Root: "output"},
		write:     render.WritePNG,
		logger:    logger.Nop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.renderer == nil {
		s.renderer = render.New(render.WithMaxValue(s.maxValue))
	}
	if s.estimator == nil {
		s.estimator = radar.NewEstimator()
	}
	return s
}

// RunFile loads the table at path and runs it.
func (s *Service) RunFile(ctx context.Context, path string) (*report.Report, error) {
	records, err := table.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	s.logger.Info(ctx, "table loaded", logger.String("path", path), logger.Int("records", len(records)))
	return s.Run(ctx, records)
}

// Run generates the configured charts. Every chart is planned, and every
// overlap estimated, before the first one is rendered; a planning failure
// leaves the output directory untouched. Cancellation is checked between
// charts.
func (s *Service) Run(ctx context.Context, records []model.PersonRecord) (*report.Report, error) {
	start := s.now()
	if len(records) == 0 {
		return nil, ErrNoRecords
	}
	if s.metrics != nil {
		s.metrics.SetRecordsLoaded(len(records))
	}

	rep := report.New(s.graphType, s.maxValue, start)
	rep.Records = len(records)

	jobs, err := s.plan(records, rep)
	if err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "charts planned",
		logger.String("graphType", s.graphType),
		logger.Int("charts", len(jobs)),
	)

	for _, j := range jobs {
		if err := ctx.Err(); err != nil {
			return rep, fmt.Errorf("run interrupted: %w", err)
		}
		if err := s.draw(ctx, j); err != nil {
			return rep, err
		}
		rep.AddFile(j.path)
	}

	took := s.now().Sub(start)
	rep.Finish(took)
	if s.metrics != nil {
		s.metrics.RecordRun(took, s.now())
	}
	s.logger.Info(ctx, "run complete",
		logger.String("runID", rep.RunID),
		logger.Int("charts", len(rep.Files)),
		logger.Duration("took", took),
	)
	return rep, nil
}

func (s *Service) draw(ctx context.Context, j job) error {
	began := time.Now()
	var (
		img image.Image
		err error
	)
	if j.kind == metrics.KindScatter {
		img = s.renderer.Scatter(j.points)
	} else {
		img, err = s.renderer.Radar(j.chart)
	}
	if err == nil {
		err = s.write(j.path, img)
	}
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordChartError(j.kind)
		}
		s.logger.Error(ctx, "chart failed", logger.String("path", j.path), logger.Error(err))
		return fmt.Errorf("render %s: %w", j.path, err)
	}

	if s.metrics != nil {
		s.metrics.RecordChartRendered(j.kind, time.Since(began))
	}
	s.logger.Info(ctx, "chart saved", logger.String("kind", j.kind), logger.String("path", j.path))
	return nil
}
