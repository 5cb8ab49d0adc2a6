// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"math"
	"strings"

	"github.com/okian/birdplot/internal/validation"
)

// Trait names one of the four bird archetypes.
type Trait string

// The four archetypes. The string values double as table column names.
const (
	Dove    Trait = "Dove"
	Owl     Trait = "Owl"
	Peacock Trait = "Peacock"
	Eagle   Trait = "Eagle"
)

// Traits lists every trait in table column order.
var Traits = []Trait{Dove, Owl, Peacock, Eagle}

// RadarOrder is the fixed category order of radar charts: clockwise from
// bottom-right (Owl, Dove, Peacock, Eagle). Angles are assigned in this order.
var RadarOrder = []Trait{Owl, Dove, Peacock, Eagle}

// PersonRecord is one row of the input table. A NaN trait marks a missing
// value and is rejected by Validate.
type PersonRecord struct {
	Name    string  `json:"name" validate:"required"`
	Note    string  `json:"note,omitempty"`
	Dove    float64 `json:"dove" validate:"min=0"`
	Owl     float64 `json:"owl" validate:"min=0"`
	Peacock float64 `json:"peacock" validate:"min=0"`
	Eagle   float64 `json:"eagle" validate:"min=0"`
}

// Score returns the score for a single trait. Unknown traits yield NaN.
func (p PersonRecord) Score(t Trait) float64 {
	switch t {
	case Dove:
		return p.Dove
	case Owl:
		return p.Owl
	case Peacock:
		return p.Peacock
	case Eagle:
		return p.Eagle
	default:
		return math.NaN()
	}
}

// Scores returns the scores in the given trait order.
func (p PersonRecord) Scores(order []Trait) []float64 {
	out := make([]float64, len(order))
	for i, t := range order {
		out[i] = p.Score(t)
	}
	return out
}

// Title is the chart title for the record: the name, followed by the note
// when there is one.
func (p PersonRecord) Title() string {
	note := strings.TrimSpace(p.Note)
	if note == "" || strings.EqualFold(note, "nan") {
		return p.Name
	}
	return p.Name + ", " + note
}

// Validate checks that every trait is present and non-negative. row is the
// 1-based data row used in error messages (0 when unknown).
func (p PersonRecord) Validate(row int) error {
	for _, t := range Traits {
		v := p.Score(t)
		if math.IsNaN(v) {
			return &MissingColumnError{Record: p.Name, Row: row, Field: string(t)}
		}
		if math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s=%v for record %q", ErrInvalidScore, t, v, p.Name)
		}
	}
	if err := validation.ValidateStruct(&p); err != nil {
		if err.HasField("Name") {
			return &MissingColumnError{Row: row, Field: "Name"}
		}
		return fmt.Errorf("%w: record %q: %s", ErrInvalidScore, p.Name, err.Error())
	}
	return nil
}

// AdjustedScores holds integer trait scores after the dominant-trait boost.
// It only feeds the projection and is never displayed.
type AdjustedScores struct {
	Dove    int
	Owl     int
	Peacock int
	Eagle   int
}

// ProjectedPoint is a record's position on the biplot. X and Y lie in
// [-max_value, max_value] and depend on the whole batch they were computed in.
type ProjectedPoint struct {
	Name string  `json:"name"`
	Note string  `json:"note,omitempty"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// Label is the text shown in the point's name box.
func (pp ProjectedPoint) Label() string {
	return strings.TrimSpace(pp.Name + " " + pp.Note)
}
