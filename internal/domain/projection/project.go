package projection

import (
	"fmt"
	"math"

	"github.com/okian/birdplot/internal/domain/model"
)

// BoostFactor amplifies a record's dominant trait(s) before projection.
const BoostFactor = 1.2

// Boost returns integer trait scores where every trait equal to the record's
// maximum is multiplied by BoostFactor. All values are truncated toward zero.
func Boost(p model.PersonRecord) model.AdjustedScores {
	peak := math.Max(math.Max(p.Dove, p.Owl), math.Max(p.Peacock, p.Eagle))
	adjust := func(v float64) int {
		if v == peak {
			v *= BoostFactor
		}
		return int(v)
	}
	return model.AdjustedScores{
		Dove:    adjust(p.Dove),
		Owl:     adjust(p.Owl),
		Peacock: adjust(p.Peacock),
		Eagle:   adjust(p.Eagle),
	}
}

// Axes combines adjusted scores into the raw (unscaled) biplot axes.
// X contrasts people-oriented (Dove, Owl) against assertive (Peacock, Eagle);
// Y contrasts warm (Peacock, Dove) against task-oriented (Eagle, Owl).
func Axes(a model.AdjustedScores) (rawX, rawY float64) {
	rawX = float64((a.Dove + a.Owl) - (a.Peacock + a.Eagle))
	rawY = float64((a.Peacock + a.Dove) - (a.Eagle + a.Owl))
	return rawX, rawY
}

// Project computes the biplot position of every record. It validates the
// whole batch before computing anything, so an invalid record yields an
// error and no points.
func Project(records []model.PersonRecord, maxValue float64) ([]model.ProjectedPoint, error) {
	for i, r := range records {
		if err := r.Validate(i + 1); err != nil {
			return nil, fmt.Errorf("project: %w", err)
		}
	}

	xs := make([]float64, len(records))
	ys := make([]float64, len(records))
	for i, r := range records {
		xs[i], ys[i] = Axes(Boost(r))
	}

	xs = Scale(xs, maxValue)
	ys = Scale(ys, maxValue)

	points := make([]model.ProjectedPoint, len(records))
	for i, r := range records {
		points[i] = model.ProjectedPoint{Name: r.Name, Note: r.Note, X: xs[i], Y: ys[i]}
	}
	return points, nil
}
