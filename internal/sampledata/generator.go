// Package sampledata generates synthetic score tables for demos and tests.
package sampledata

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/okian/birdplot/internal/domain/model"
	"github.com/okian/birdplot/pkg/logger"
)

// Profile is the score shape of a generated person.
type Profile int

// Profiles, drawn uniformly.
const (
	ProfileBalanced Profile = iota
	ProfileDove
	ProfileOwl
	ProfilePeacock
	ProfileEagle
	ProfileWide
	profileCount
)

// Score ranges as fractions of the maximum score.
const (
	dominantMin   = 0.6
	dominantRange = 0.4
	minorMin      = 0.0
	minorRange    = 0.5
	balancedMin   = 0.3
	balancedRange = 0.3
)

var notes = []string{"", "", "lead", "new hire", "remote", "mentor"}

// Generator produces PersonRecords. It is not safe for concurrent use.
type Generator struct {
	rng      *rand.Rand
	maxScore float64
	withNote bool
	logger   logger.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed makes the output reproducible. Zero keeps a time-seeded source.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		if seed != 0 {
			g.rng = rand.New(rand.NewSource(seed)) //nolint:gosec // demo data
		}
	}
}

// WithMaxScore sets the upper bound of generated scores.
func WithMaxScore(v float64) Option {
	return func(g *Generator) {
		if v > 0 {
			g.maxScore = v
		}
	}
}

// WithNotes fills the Note column from a small pool.
func WithNotes(enabled bool) Option {
	return func(g *Generator) {
		g.withNote = enabled
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// New creates a Generator with scores up to 20.
func New(opts ...Option) *Generator {
	g := &Generator{
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // demo data
		maxScore: 20,
		logger:   logger.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// People returns n records with unique names and random profiles.
func (g *Generator) People(ctx context.Context, n int) []model.PersonRecord {
	out := make([]model.PersonRecord, 0, max(n, 0))
	seen := make(map[string]struct{}, max(n, 0))
	for len(out) < n {
		r := g.Person(Profile(g.rng.Intn(int(profileCount))))
		if _, dup := seen[r.Name]; dup {
			continue
		}
		seen[r.Name] = struct{}{}
		out = append(out, r)
	}
	g.logger.Debug(ctx, "generated people", logger.Int("count", len(out)))
	return out
}

// Person returns one record of the given profile.
func (g *Generator) Person(p Profile) model.PersonRecord {
	id, err := uuid.NewRandomFromReader(g.rng)
	if err != nil {
		id = uuid.New()
	}
	r := model.PersonRecord{Name: "P-" + id.String()[:8]}
	if g.withNote {
		r.Note = notes[g.rng.Intn(len(notes))]
	}

	for _, t := range model.Traits {
		setScore(&r, t, g.score(p, t))
	}
	return r
}

func (g *Generator) score(p Profile, t model.Trait) float64 {
	var lo, span float64
	switch {
	case p == ProfileBalanced:
		lo, span = balancedMin, balancedRange
	case p == ProfileWide:
		lo, span = 0, 1
	case dominant(p) == t:
		lo, span = dominantMin, dominantRange
	default:
		lo, span = minorMin, minorRange
	}
	return math.Round((lo + g.rng.Float64()*span) * g.maxScore)
}

func dominant(p Profile) model.Trait {
	switch p {
	case ProfileDove:
		return model.Dove
	case ProfileOwl:
		return model.Owl
	case ProfilePeacock:
		return model.Peacock
	case ProfileEagle:
		return model.Eagle
	default:
		return ""
	}
}

func setScore(r *model.PersonRecord, t model.Trait, v float64) {
	switch t {
	case model.Dove:
		r.Dove = v
	case model.Owl:
		r.Owl = v
	case model.Peacock:
		r.Peacock = v
	case model.Eagle:
		r.Eagle = v
	}
}
