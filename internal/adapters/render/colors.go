package render

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/okian/birdplot/internal/config"
)

// Style holds the parsed colours of a chart.
type Style struct {
	TopRight       color.NRGBA
	BottomRight    color.NRGBA
	TopLeft        color.NRGBA
	BottomLeft     color.NRGBA
	Polygon        color.NRGBA
	PolygonCompare color.NRGBA
	NameBox        color.NRGBA
	Alpha          float64
}

// NewStyle parses the configured colours.
func NewStyle(c config.ColorsConfig) (Style, error) {
	s := Style{Alpha: c.Alpha}
	fields := []struct {
		name string
		in   string
		out  *color.NRGBA
	}{
		{"top_right", c.TopRight, &s.TopRight},
		{"bottom_right", c.BottomRight, &s.BottomRight},
		{"top_left", c.TopLeft, &s.TopLeft},
		{"bottom_left", c.BottomLeft, &s.BottomLeft},
		{"polygon", c.Polygon, &s.Polygon},
		{"polygon_compare", c.PolygonCompare, &s.PolygonCompare},
		{"name_box", c.NameBox, &s.NameBox},
	}
	for _, f := range fields {
		col, err := ParseColor(f.in)
		if err != nil {
			return Style{}, fmt.Errorf("colors.%s: %w", f.name, err)
		}
		*f.out = col
	}
	return s, nil
}

// DefaultStyle returns the style of the default configuration.
func DefaultStyle() Style {
	s, err := NewStyle(config.New().Colors)
	if err != nil {
		panic(err)
	}
	return s
}

// ParseColor accepts a CSS colour name ("lightblue") or a hex triplet ("#add8e6", "#abc").
func ParseColor(s string) (color.NRGBA, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if c, ok := colornames.Map[name]; ok {
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, nil
	}
	hex, ok := strings.CutPrefix(name, "#")
	if !ok {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrUnknownColor, s)
	}
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrUnknownColor, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrUnknownColor, s)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// WithAlpha returns c with its alpha replaced by a (clamped to [0, 1]).
func WithAlpha(c color.NRGBA, a float64) color.NRGBA {
	a = max(0, min(1, a))
	c.A = uint8(a*255 + 0.5)
	return c
}
