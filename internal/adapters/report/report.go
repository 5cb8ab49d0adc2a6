// Package report records what a run produced as a JSON document.
package report

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/okian/birdplot/internal/domain/model"
)

// ErrWrite is returned when the report cannot be written.
var ErrWrite = errors.New("write report")

// Overlap is the estimated overlap of one comparison chart.
type Overlap struct {
	A       string  `json:"a"`
	B       string  `json:"b"`
	Percent float64 `json:"percent"`
	File    string  `json:"file,omitempty"`
}

// Report summarises one run.
type Report struct {
	RunID       string                 `json:"run_id"`
	GeneratedAt time.Time              `json:"generated_at"`
	GraphType   string                 `json:"graph_type"`
	MaxValue    float64                `json:"max_value"`
	Records     int                    `json:"records"`
	Points      []model.ProjectedPoint `json:"points,omitempty"`
	Overlaps    []Overlap              `json:"overlaps,omitempty"`
	Files       []string               `json:"files"`
	DurationMS  int64                  `json:"duration_ms"`
}

// New starts a report with a fresh run id.
func New(graphType string, maxValue float64, startedAt time.Time) *Report {
	return &Report{
		RunID:       uuid.NewString(),
		GeneratedAt: startedAt.UTC(),
		GraphType:   graphType,
		MaxValue:    maxValue,
		Files:       []string{},
	}
}

// AddFile records a written chart.
func (r *Report) AddFile(path string) {
	r.Files = append(r.Files, path)
}

// AddOverlap records the overlap of a comparison chart.
func (r *Report) AddOverlap(a, b string, percent float64, file string) {
	r.Overlaps = append(r.Overlaps, Overlap{A: a, B: b, Percent: percent, File: file})
}

// Finish stamps the run duration.
func (r *Report) Finish(took time.Duration) {
	r.DurationMS = took.Milliseconds()
}

// Encode writes the report as indented JSON.
func (r *Report) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}

// WriteFile writes the report to path, creating parent directories.
func (r *Report) WriteFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if err := r.Encode(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}

// Read decodes a report written by WriteFile.
func Read(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decode report %s: %w", path, err)
	}
	return &r, nil
}
