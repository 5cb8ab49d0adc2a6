package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/okian/birdplot/internal/sampledata"
	"github.com/okian/birdplot/pkg/logger"
)

// Default configuration constants.
const (
	defaultPeople   = 8
	defaultMaxScore = 20
)

func main() {
	var (
		people   = flag.Int("people", defaultPeople, "Number of people to generate")
		seed     = flag.Int64("seed", 0, "Random seed (0 = time based)")
		maxScore = flag.Float64("max-score", defaultMaxScore, "Upper bound of generated scores")
		notes    = flag.Bool("notes", true, "Fill the Note column")
		output   = flag.String("output", "-", "Output CSV file (- for stdout)")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	ctx := context.Background()
	log := logger.Named("sample-data")

	gen := sampledata.New(
		sampledata.WithSeed(*seed),
		sampledata.WithMaxScore(*maxScore),
		sampledata.WithNotes(*notes),
		sampledata.WithLogger(log),
	)
	if err := write(*output, func(w io.Writer) error {
		return sampledata.WriteCSV(w, gen.People(ctx, *people))
	}); err != nil {
		log.Error(ctx, "sample data not written", logger.Error(err))
		os.Exit(1)
	}
	log.Info(ctx, "sample data written", logger.String("output", *output), logger.Int("people", *people))
}

func write(path string, fn func(io.Writer) error) error {
	if path == "-" {
		return fn(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := fn(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
