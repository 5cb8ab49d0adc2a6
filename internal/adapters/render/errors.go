package render

import "errors"

var (
	// ErrUnknownColor is returned for a colour that is neither a CSS name nor #rgb/#rrggbb.
	ErrUnknownColor = errors.New("unknown colour")
	// ErrEncode is returned when a chart cannot be written as PNG.
	ErrEncode = errors.New("encode chart")
	// ErrNoSeries is returned for a radar chart without polygons.
	ErrNoSeries = errors.New("radar chart has no series")
)
