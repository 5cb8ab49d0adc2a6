package render

import (
	"image"
	"image/color"
	"math"
	"strconv"

	"seehuhn.de/go/geom/vec"

	"github.com/okian/birdplot/internal/domain/radar"
)

const (
	polygonAlpha = 0.55
	compareAlpha = 0.45
	labelOffset  = 0.1 // of the largest value in a series
	markerHalf   = 3.0
)

// Series is one polygon of a radar chart.
type Series struct {
	Label   string
	Polygon radar.Polygon
}

// RadarChart describes one radar image: a single series, or two for a
// comparison.
type RadarChart struct {
	Title  string
	Series []Series
}

// Radar draws the polygons of chart over the radar grid.
func (r *Renderer) Radar(chart RadarChart) (image.Image, error) {
	if len(chart.Series) == 0 {
		return nil, ErrNoSeries
	}

	ext := r.maxValue
	for _, s := range chart.Series {
		ext = max(ext, s.Polygon.Max()*(1+2*labelOffset))
	}
	c := newCanvas(r.width, r.height, ext)
	r.background(c)
	r.grid(c)

	colors := []color.NRGBA{r.style.Polygon, r.style.PolygonCompare}
	alphas := []float64{polygonAlpha, compareAlpha}
	for i, s := range chart.Series {
		col := colors[i%len(colors)]
		c.polygon(s.Polygon.Points(), WithAlpha(col, alphas[i%len(alphas)]), col, 1)
	}
	for _, s := range chart.Series {
		r.vertices(c, s.Polygon)
	}
	if len(chart.Series) > 1 {
		r.legend(c, chart.Series, colors)
	}

	r.title(c, chart.Title)
	r.date(c)
	return c.img, nil
}

// grid draws the diagonals, centre axes and dashed circles every grid step.
func (r *Renderer) grid(c *canvas) {
	m := r.maxValue
	c.line(vec.Vec2{X: -m, Y: -m}, vec.Vec2{X: m, Y: m}, gridGray, 0.5, nil)
	c.line(vec.Vec2{X: -m, Y: m}, vec.Vec2{X: m, Y: -m}, gridGray, 0.5, nil)
	c.line(vec.Vec2{X: -c.ext}, vec.Vec2{X: c.ext}, axisBlack, 0.5, nil)
	c.line(vec.Vec2{Y: -c.ext}, vec.Vec2{Y: c.ext}, axisBlack, 0.5, nil)
	for radius := r.gridStep; radius <= m+1e-9; radius += r.gridStep {
		c.circle(vec.Vec2{}, radius, faintInk, 1, dashed)
	}
}

// vertices marks each vertex with an x and labels it with its value, offset
// perpendicular to the spoke.
func (r *Renderer) vertices(c *canvas, p radar.Polygon) {
	n := p.Len()
	if n == 0 {
		return
	}
	offset := labelOffset * p.Max()
	pts := p.Points()
	for i := 0; i < n; i++ {
		pt := pts[i]
		c.cross(pt, markerHalf, axisBlack)
		a := p.Angles[i]
		perp := vec.Vec2{X: -math.Sin(a), Y: math.Cos(a)}.Mul(offset)
		c.textAt(pt.Add(perp), formatValue(p.Magnitudes[i]), 0.9, axisBlack)
	}
}

func (r *Renderer) legend(c *canvas, series []Series, colors []color.NRGBA) {
	x := c.plot.LLx
	y := c.plot.URy + 14*c.unit
	sw := 8 * c.unit
	for i, s := range series {
		col := colors[i%len(colors)]
		c.gc.SetFillColor(col)
		c.gc.BeginPath()
		c.gc.MoveTo(x, y-sw/2)
		c.gc.LineTo(x+sw, y-sw/2)
		c.gc.LineTo(x+sw, y+sw/2)
		c.gc.LineTo(x, y+sw/2)
		c.gc.Close()
		c.gc.Fill()
		c.text(s.Label, x+sw*1.5, y, alignStart, alignCenter, horizontal, 0.9, textInk)
		y += 16 * c.unit
	}
}

// formatValue prints integers without a fraction and other values with one
// decimal.
func formatValue(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}
