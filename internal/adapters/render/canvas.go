package render

import (
	"image"
	"image/color"
	"math"

	"github.com/llgcode/draw2d/draw2dimg"
	"github.com/llgcode/draw2d/draw2dkit"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Reference width at which text is drawn at the font's native size.
const referenceWidth = 500.0

type align int

const (
	alignStart align = iota
	alignCenter
	alignEnd
)

func (a align) frac() float64 {
	switch a {
	case alignCenter:
		return 0.5
	case alignEnd:
		return 1
	default:
		return 0
	}
}

type orientation int

const (
	horizontal orientation = iota
	upward                 // reads bottom to top
	downward               // reads top to bottom
)

// canvas maps a square world extent [-ext, ext]^2 onto a pixel plot area
// surrounded by a margin for captions.
type canvas struct {
	img  *image.RGBA
	gc   *draw2dimg.GraphicContext
	ext  float64
	plot rect.Rect // pixel area, y down
	unit float64   // text scale
}

func newCanvas(width, height int, ext float64) *canvas {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	side := float64(min(width, height))
	margin := side * 0.1
	plotSide := side - 2*margin
	left := (float64(width) - plotSide) / 2
	top := (float64(height) - plotSide) / 2

	return &canvas{
		img:  img,
		gc:   draw2dimg.NewGraphicContext(img),
		ext:  ext,
		plot: rect.Rect{LLx: left, LLy: top, URx: left + plotSide, URy: top + plotSide},
		unit: max(1, side/referenceWidth),
	}
}

// px converts a world point to pixel coordinates.
func (c *canvas) px(p vec.Vec2) (x, y float64) {
	w := c.plot.URx - c.plot.LLx
	h := c.plot.URy - c.plot.LLy
	x = c.plot.LLx + (p.X+c.ext)/(2*c.ext)*w
	y = c.plot.LLy + (c.ext-p.Y)/(2*c.ext)*h
	return x, y
}

// length converts a world distance to pixels.
func (c *canvas) length(d float64) float64 {
	return d / (2 * c.ext) * (c.plot.URx - c.plot.LLx)
}

func (c *canvas) fillRect(a, b vec.Vec2, col color.Color) {
	x1, y1 := c.px(a)
	x2, y2 := c.px(b)
	c.gc.SetFillColor(col)
	c.gc.BeginPath()
	draw2dkit.Rectangle(c.gc, x1, y1, x2, y2)
	c.gc.Fill()
}

func (c *canvas) line(a, b vec.Vec2, col color.Color, width float64, dash []float64) {
	x1, y1 := c.px(a)
	x2, y2 := c.px(b)
	c.gc.SetStrokeColor(col)
	c.gc.SetLineWidth(width * c.unit)
	c.gc.SetLineDash(scaled(dash, c.unit), 0)
	c.gc.BeginPath()
	c.gc.MoveTo(x1, y1)
	c.gc.LineTo(x2, y2)
	c.gc.Stroke()
	c.gc.SetLineDash(nil, 0)
}

func (c *canvas) circle(center vec.Vec2, radius float64, col color.Color, width float64, dash []float64) {
	x, y := c.px(center)
	c.gc.SetStrokeColor(col)
	c.gc.SetLineWidth(width * c.unit)
	c.gc.SetLineDash(scaled(dash, c.unit), 0)
	c.gc.BeginPath()
	draw2dkit.Circle(c.gc, x, y, c.length(radius))
	c.gc.Stroke()
	c.gc.SetLineDash(nil, 0)
}

// polygon fills and strokes a closed ring.
func (c *canvas) polygon(ring []vec.Vec2, fill, stroke color.Color, width float64) {
	if len(ring) < 3 {
		return
	}
	c.gc.SetFillColor(fill)
	c.gc.SetStrokeColor(stroke)
	c.gc.SetLineWidth(width * c.unit)
	c.gc.BeginPath()
	x, y := c.px(ring[0])
	c.gc.MoveTo(x, y)
	for _, p := range ring[1:] {
		x, y = c.px(p)
		c.gc.LineTo(x, y)
	}
	c.gc.Close()
	c.gc.FillStroke()
}

// cross draws an x marker of the given pixel half-size.
func (c *canvas) cross(p vec.Vec2, half float64, col color.Color) {
	x, y := c.px(p)
	half *= c.unit
	c.gc.SetStrokeColor(col)
	c.gc.SetLineWidth(c.unit)
	c.gc.BeginPath()
	c.gc.MoveTo(x-half, y-half)
	c.gc.LineTo(x+half, y+half)
	c.gc.MoveTo(x-half, y+half)
	c.gc.LineTo(x+half, y-half)
	c.gc.Stroke()
}

// roundedBox draws a filled rounded rectangle centred at p with pixel size w x h.
func (c *canvas) roundedBox(p vec.Vec2, w, h float64, col color.Color) {
	x, y := c.px(p)
	r := h / 2
	c.gc.SetFillColor(col)
	c.gc.SetStrokeColor(col)
	c.gc.SetLineWidth(1)
	c.gc.BeginPath()
	draw2dkit.RoundedRectangle(c.gc, x-w/2, y-h/2, x+w/2, y+h/2, r, r)
	c.gc.FillStroke()
}

// textSize returns the pixel size of s drawn at the given relative size.
func (c *canvas) textSize(s string, size float64) (w, h float64) {
	face := basicfont.Face7x13
	d := &font.Drawer{Face: face}
	k := size * c.unit
	return float64(d.MeasureString(s).Ceil()) * k, float64(face.Metrics().Height.Ceil()) * k
}

// text draws s anchored at pixel (x, y). The bitmap face is rendered at its
// native size and resampled onto the canvas, rotated when o is not horizontal.
func (c *canvas) text(s string, x, y float64, ha, va align, o orientation, size float64, col color.Color) {
	if s == "" {
		return
	}
	face := basicfont.Face7x13
	d := &font.Drawer{Face: face, Src: image.NewUniform(col)}
	w := d.MeasureString(s).Ceil()
	h := face.Metrics().Height.Ceil()
	src := image.NewRGBA(image.Rect(0, 0, w, h))
	d.Dst = src
	d.Dot = fixed.Point26_6{X: 0, Y: face.Metrics().Ascent}
	d.DrawString(s)

	k := size * c.unit
	bw, bh := float64(w)*k, float64(h)*k
	if o != horizontal {
		bw, bh = bh, bw
	}
	left := x - bw*ha.frac()
	top := y - bh*va.frac()

	var s2d f64.Aff3
	switch o {
	case upward:
		s2d = f64.Aff3{0, k, left, -k, 0, top + bh}
	case downward:
		s2d = f64.Aff3{0, -k, left + bw, k, 0, top}
	default:
		s2d = f64.Aff3{k, 0, left, 0, k, top}
	}
	draw.CatmullRom.Transform(c.img, s2d, src, src.Bounds(), draw.Over, nil)
}

// textAt draws s centred on a world point.
func (c *canvas) textAt(p vec.Vec2, s string, size float64, col color.Color) {
	x, y := c.px(p)
	c.text(s, x, y, alignCenter, alignCenter, horizontal, size, col)
}

// icon draws img centred on a world point. At zoom 1 on a 1000px canvas the
// icon keeps its file size.
func (c *canvas) icon(p vec.Vec2, img image.Image, zoom float64) {
	if img == nil || zoom <= 0 {
		return
	}
	b := img.Bounds()
	k := zoom * c.unit / 2
	w := math.Round(float64(b.Dx()) * k)
	h := math.Round(float64(b.Dy()) * k)
	if w < 1 || h < 1 {
		return
	}
	x, y := c.px(p)
	x0, y0 := int(math.Round(x-w/2)), int(math.Round(y-h/2))
	dst := image.Rect(x0, y0, x0+int(w), y0+int(h))
	draw.CatmullRom.Scale(c.img, dst, img, b, draw.Over, nil)
}

func scaled(dash []float64, k float64) []float64 {
	if len(dash) == 0 {
		return nil
	}
	out := make([]float64, len(dash))
	for i, d := range dash {
		out[i] = d * k
	}
	return out
}
