// Package radar computes radar ("spider") chart geometry and estimates how
// much two radar polygons overlap.
package radar

import (
	"fmt"
	"math"

	"github.com/okian/birdplot/internal/domain/model"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// StartAngle is the angle of the first category, in radians.
const StartAngle = -math.Pi / 4

// Angles returns n evenly spaced angles starting at StartAngle and covering
// the full circle, followed by the first angle again to close the polygon.
// n <= 0 yields an empty slice.
func Angles(n int) []float64 {
	if n <= 0 {
		return []float64{}
	}
	step := 2 * math.Pi / float64(n)
	angles := make([]float64, n+1)
	for i := range n {
		angles[i] = StartAngle + float64(i)*step
	}
	angles[n] = angles[0]
	return angles
}

// ToCartesian converts one polar pair to a point.
func ToCartesian(angle, magnitude float64) vec.Vec2 {
	return vec.Vec2{X: magnitude * math.Cos(angle), Y: magnitude * math.Sin(angle)}
}

// Polygon is a closed radar polygon: Angles[i] pairs with Magnitudes[i] and
// the last pair repeats the first.
type Polygon struct {
	Categories []model.Trait
	Angles     []float64
	Magnitudes []float64
}

// NewPolygon builds a closed polygon from per-category magnitudes. The
// category order is kept as given.
func NewPolygon(categories []model.Trait, magnitudes []float64) (Polygon, error) {
	if len(categories) != len(magnitudes) {
		return Polygon{}, fmt.Errorf("%w: %d categories, %d magnitudes", ErrLengthMismatch, len(categories), len(magnitudes))
	}
	p := Polygon{
		Categories: append([]model.Trait(nil), categories...),
		Angles:     Angles(len(categories)),
		Magnitudes: make([]float64, 0, len(magnitudes)+1),
	}
	p.Magnitudes = append(p.Magnitudes, magnitudes...)
	if len(magnitudes) > 0 {
		p.Magnitudes = append(p.Magnitudes, magnitudes[0])
	}
	return p, nil
}

// PolygonFor builds the radar polygon of a record in model.RadarOrder.
func PolygonFor(p model.PersonRecord) Polygon {
	poly, _ := NewPolygon(model.RadarOrder, p.Scores(model.RadarOrder))
	return poly
}

// Len is the number of categories (vertices without the closing duplicate).
func (p Polygon) Len() int {
	if len(p.Angles) == 0 {
		return 0
	}
	return len(p.Angles) - 1
}

// Points returns the closed vertex sequence in Cartesian coordinates.
func (p Polygon) Points() []vec.Vec2 {
	pts := make([]vec.Vec2, len(p.Angles))
	for i, a := range p.Angles {
		pts[i] = ToCartesian(a, p.Magnitudes[i])
	}
	return pts
}

// Max returns the largest magnitude, or 0 for an empty polygon.
func (p Polygon) Max() float64 {
	var m float64
	for _, v := range p.Magnitudes {
		m = math.Max(m, v)
	}
	return m
}

// Bounds returns the bounding box of the polygon's vertices.
func (p Polygon) Bounds() rect.Rect {
	return boundsOf(p.Points())
}

func boundsOf(pts []vec.Vec2) rect.Rect {
	if len(pts) == 0 {
		return rect.Rect{}
	}
	r := rect.Rect{LLx: pts[0].X, LLy: pts[0].Y, URx: pts[0].X, URy: pts[0].Y}
	for _, pt := range pts[1:] {
		r.LLx = math.Min(r.LLx, pt.X)
		r.LLy = math.Min(r.LLy, pt.Y)
		r.URx = math.Max(r.URx, pt.X)
		r.URy = math.Max(r.URy, pt.Y)
	}
	return r
}

func union(a, b rect.Rect) rect.Rect {
	return rect.Rect{
		LLx: math.Min(a.LLx, b.LLx),
		LLy: math.Min(a.LLy, b.LLy),
		URx: math.Max(a.URx, b.URx),
		URy: math.Max(a.URy, b.URy),
	}
}

// Contains reports whether pt lies inside the closed vertex ring using the
// even-odd rule. Points on an edge may land on either side.
func Contains(ring []vec.Vec2, pt vec.Vec2) bool {
	inside := false
	n := len(ring)
	if n < 3 {
		return false
	}
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := ring[i], ring[j]
		if (a.Y > pt.Y) == (b.Y > pt.Y) {
			continue
		}
		d := b.Sub(a)
		x := a.X + d.X*(pt.Y-a.Y)/d.Y
		if pt.X < x {
			inside = !inside
		}
	}
	return inside
}
