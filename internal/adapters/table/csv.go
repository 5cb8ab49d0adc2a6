// Package table loads the person score table from CSV.
package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/okian/birdplot/internal/domain/model"
)

// Column names of the input table.
const (
	ColumnName = "Name"
	ColumnNote = "Note"
)

// Load reads the CSV file at path.
func Load(path string) ([]model.PersonRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open table: %w", err)
	}
	defer func() { _ = f.Close() }()

	records, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// Read parses a CSV stream with a header row. Name and the four trait
// columns are required; Note is optional. A blank or "NaN" note is read as
// empty. Every record is validated before Read returns.
func Read(r io.Reader) ([]model.PersonRecord, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyTable
	}
	if err != nil {
		return nil, fmt.Errorf("%w: header: %w", ErrParse, err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	if _, ok := index[ColumnName]; !ok {
		return nil, &model.MissingColumnError{Field: ColumnName}
	}
	for _, t := range model.Traits {
		if _, ok := index[string(t)]; !ok {
			return nil, &model.MissingColumnError{Field: string(t)}
		}
	}

	var records []model.PersonRecord
	seen := make(map[string]int)
	for row := 1; ; row++ {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %w", ErrParse, row, err)
		}
		if blank(fields) {
			continue
		}

		rec, err := parseRow(fields, index, row)
		if err != nil {
			return nil, err
		}
		if prev, dup := seen[rec.Name]; dup {
			return nil, fmt.Errorf("%w: %q in rows %d and %d", ErrDuplicateName, rec.Name, prev, row)
		}
		seen[rec.Name] = row
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, ErrEmptyTable
	}
	return records, nil
}

func parseRow(fields []string, index map[string]int, row int) (model.PersonRecord, error) {
	cell := func(col string) (string, bool) {
		i, ok := index[col]
		if !ok || i >= len(fields) {
			return "", false
		}
		return strings.TrimSpace(fields[i]), true
	}

	rec := model.PersonRecord{}
	rec.Name, _ = cell(ColumnName)
	if note, ok := cell(ColumnNote); ok && !strings.EqualFold(note, "nan") {
		rec.Note = note
	}

	for _, t := range model.Traits {
		raw, ok := cell(string(t))
		if !ok || raw == "" {
			return rec, &model.MissingColumnError{Record: rec.Name, Row: row, Field: string(t)}
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) {
			return rec, fmt.Errorf("%w: row %d column %s: %q is not a number", ErrParse, row, t, raw)
		}
		setScore(&rec, t, v)
	}

	if err := rec.Validate(row); err != nil {
		return rec, err
	}
	return rec, nil
}

func setScore(rec *model.PersonRecord, t model.Trait, v float64) {
	switch t {
	case model.Dove:
		rec.Dove = v
	case model.Owl:
		rec.Owl = v
	case model.Peacock:
		rec.Peacock = v
	case model.Eagle:
		rec.Eagle = v
	}
}

func blank(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
