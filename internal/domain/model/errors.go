package model

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrMissingColumn = errors.New("missing required column")
	ErrInvalidScore  = errors.New("invalid trait score")
	ErrNoRecords     = errors.New("no records")
)

// MissingColumnError reports a trait that is absent for a record.
type MissingColumnError struct {
	Record string // record name, may be empty when the name itself is missing
	Row    int    // 1-based data row, 0 when unknown
	Field  string // column name, e.g. "Owl"
}

func (e *MissingColumnError) Error() string {
	switch {
	case e.Record != "" && e.Row > 0:
		return fmt.Sprintf("%s %q for record %q (row %d)", ErrMissingColumn, e.Field, e.Record, e.Row)
	case e.Record != "":
		return fmt.Sprintf("%s %q for record %q", ErrMissingColumn, e.Field, e.Record)
	case e.Row > 0:
		return fmt.Sprintf("%s %q (row %d)", ErrMissingColumn, e.Field, e.Row)
	default:
		return fmt.Sprintf("%s %q", ErrMissingColumn, e.Field)
	}
}

// Unwrap lets errors.Is match ErrMissingColumn.
func (e *MissingColumnError) Unwrap() error { return ErrMissingColumn }
