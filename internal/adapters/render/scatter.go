package render

import (
	"image"

	"seehuhn.de/go/geom/vec"

	"github.com/okian/birdplot/internal/domain/model"
)

// Quadrant titles of the scatter chart.
const (
	TitleTopRight    = "Supportive & Caring"
	TitleBottomRight = "Analytical & Logical"
	TitleTopLeft     = "Talkative & Dramatic"
	TitleBottomLeft  = "Controlling & Forceful"
)

// Axis captions, one per side.
const (
	CaptionLeft   = "Confident, Assertive, Bold"
	CaptionTop    = "Warm & Friendly, People-oriented"
	CaptionRight  = "Shy, Non-assertive, Retiring"
	CaptionBottom = "Cold & Aloof, Task-oriented"
)

const nameBoxAlpha = 0.8

// Scatter draws every projected point as a labelled box on the quadrant
// background.
func (r *Renderer) Scatter(points []model.ProjectedPoint) image.Image {
	m := r.maxValue
	c := newCanvas(r.width, r.height, m)
	r.background(c)

	c.line(vec.Vec2{X: -m}, vec.Vec2{X: m}, gridGray, 0.5, dashed)
	c.line(vec.Vec2{Y: -m}, vec.Vec2{Y: m}, gridGray, 0.5, dashed)

	titles := []struct {
		at   vec.Vec2
		text string
	}{
		{vec.Vec2{X: m / 2, Y: m * 0.96}, TitleTopRight},
		{vec.Vec2{X: m / 2, Y: -m * 0.96}, TitleBottomRight},
		{vec.Vec2{X: -m / 2, Y: m * 0.96}, TitleTopLeft},
		{vec.Vec2{X: -m / 2, Y: -m * 0.96}, TitleBottomLeft},
	}
	for _, t := range titles {
		c.textAt(t.at, t.text, 1, textInk)
	}
	r.captions(c)

	for _, p := range points {
		label := p.Label()
		w, h := c.textSize(label, 1)
		c.roundedBox(vec.Vec2{X: p.X, Y: p.Y}, w+h, h*1.6, WithAlpha(r.style.NameBox, nameBoxAlpha))
		c.textAt(vec.Vec2{X: p.X, Y: p.Y}, label, 1, axisBlack)
	}

	r.title(c, ScatterTitle)
	r.date(c)
	return c.img
}

func (r *Renderer) captions(c *canvas) {
	gap := 4 * c.unit
	midX := (c.plot.LLx + c.plot.URx) / 2
	midY := (c.plot.LLy + c.plot.URy) / 2
	c.text(CaptionLeft, c.plot.LLx-gap, midY, alignEnd, alignCenter, upward, 1, textInk)
	c.text(CaptionTop, midX, c.plot.LLy-gap, alignCenter, alignEnd, horizontal, 1, textInk)
	c.text(CaptionRight, c.plot.URx+gap, midY, alignStart, alignCenter, downward, 1, textInk)
	c.text(CaptionBottom, midX, c.plot.URy+gap, alignCenter, alignStart, horizontal, 1, textInk)
}
