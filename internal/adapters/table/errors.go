package table

import "errors"

// Sentinel kinds for table loading errors.
var (
	ErrEmptyTable    = errors.New("table is empty")
	ErrParse         = errors.New("cannot parse table")
	ErrDuplicateName = errors.New("duplicate name")
)
