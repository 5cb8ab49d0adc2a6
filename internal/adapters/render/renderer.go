// Package render draws the scatter and radar charts onto RGBA images with
// draw2d and writes them as PNG files.
package render

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"time"

	"github.com/llgcode/draw2d/draw2dimg"
	"seehuhn.de/go/geom/vec"

	"github.com/okian/birdplot/internal/domain/model"
)

// Chart text.
const (
	ScatterTitle = "Personality Distribution (Bird Parameters)"
	dateLayout   = "2006-01-02"
)

var (
	gridGray  = color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
	axisBlack = color.NRGBA{A: 0xff}
	faintInk  = color.NRGBA{A: 0x33}
	textInk   = color.NRGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xff}
	dashed    = []float64{6, 4}
)

// Renderer draws charts. It is safe to reuse across charts but not for
// concurrent use.
type Renderer struct {
	width    int
	height   int
	maxValue float64
	gridStep float64
	iconZoom float64
	style    Style
	icons    Icons
	now      func() time.Time
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithCanvasSize sets the output size in pixels.
func WithCanvasSize(width, height int) Option {
	return func(r *Renderer) {
		if width > 0 && height > 0 {
			r.width, r.height = width, height
		}
	}
}

// WithMaxValue sets the half-width of the plotted square.
func WithMaxValue(v float64) Option {
	return func(r *Renderer) {
		if v > 0 {
			r.maxValue = v
		}
	}
}

// WithGridStep sets the radius step of the radar grid circles.
func WithGridStep(v float64) Option {
	return func(r *Renderer) {
		if v > 0 {
			r.gridStep = v
		}
	}
}

// WithStyle sets the chart colours.
func WithStyle(s Style) Option {
	return func(r *Renderer) {
		r.style = s
	}
}

// WithIcons sets the corner icons and their zoom.
func WithIcons(icons Icons, zoom float64) Option {
	return func(r *Renderer) {
		r.icons = icons
		r.iconZoom = zoom
	}
}

// WithClock sets the time source of the "Generated" stamp.
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) {
		if now != nil {
			r.now = now
		}
	}
}

// New creates a Renderer with a 1000x1000 canvas and the default style.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		width:    1000,
		height:   1000,
		maxValue: 25,
		gridStep: 5,
		style:    DefaultStyle(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// background paints quadrants, icons and the date shared by both charts.
func (r *Renderer) background(c *canvas) {
	m := r.maxValue
	a := r.style.Alpha
	c.fillRect(vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: m, Y: m}, WithAlpha(r.style.TopRight, a))
	c.fillRect(vec.Vec2{X: 0, Y: -m}, vec.Vec2{X: m, Y: 0}, WithAlpha(r.style.BottomRight, a))
	c.fillRect(vec.Vec2{X: -m, Y: 0}, vec.Vec2{X: 0, Y: m}, WithAlpha(r.style.TopLeft, a))
	c.fillRect(vec.Vec2{X: -m, Y: -m}, vec.Vec2{X: 0, Y: 0}, WithAlpha(r.style.BottomLeft, a))

	corners := []struct {
		trait model.Trait
		at    vec.Vec2
	}{
		{model.Peacock, vec.Vec2{X: -m, Y: m}},
		{model.Eagle, vec.Vec2{X: -m, Y: -m}},
		{model.Dove, vec.Vec2{X: m, Y: m}},
		{model.Owl, vec.Vec2{X: m, Y: -m}},
	}
	for _, corner := range corners {
		c.icon(corner.at, r.icons[corner.trait], r.iconZoom)
	}
}

func (r *Renderer) title(c *canvas, s string) {
	c.text(s, float64(c.img.Bounds().Dx())/2, c.plot.LLy*0.45, alignCenter, alignCenter, horizontal, 1.4, axisBlack)
}

func (r *Renderer) date(c *canvas) {
	s := "Generated: " + r.now().Format(dateLayout)
	y := c.plot.URy + (float64(c.img.Bounds().Dy())-c.plot.URy)*0.6
	c.text(s, c.plot.URx, y, alignEnd, alignCenter, horizontal, 0.9, textInk)
}

// WritePNG writes img to path, creating parent directories.
func WritePNG(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}
	if err := draw2dimg.SaveToPngFile(path, img); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrEncode, path, err)
	}
	return nil
}
