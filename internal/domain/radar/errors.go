package radar

import "errors"

// Sentinel error kinds for this package.
var (
	ErrLengthMismatch = errors.New("categories and magnitudes differ in length")
	ErrAngleMismatch  = errors.New("polygons do not share the same angles")
)
