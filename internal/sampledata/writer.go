package sampledata

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/okian/birdplot/internal/adapters/table"
	"github.com/okian/birdplot/internal/domain/model"
)

// WriteCSV writes records in the column layout table.Read expects.
func WriteCSV(w io.Writer, records []model.PersonRecord) error {
	cw := csv.NewWriter(w)
	header := []string{table.ColumnName, table.ColumnNote}
	for _, t := range model.Traits {
		header = append(header, string(t))
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, r := range records {
		row := []string{r.Name, r.Note}
		for _, t := range model.Traits {
			row = append(row, strconv.FormatFloat(r.Score(t), 'f', -1, 64))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write %s: %w", r.Name, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
