package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"car-dashboard/models"
)

// CSVWriter serializes a table to CSV on an underlying writer.
type CSVWriter struct {
	writer *csv.Writer
}

// NewCSVWriter wraps w for table serialization.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{writer: csv.NewWriter(w)}
}

// Write emits the header row followed by every data row. Cells render
// through Text, so missing values become empty fields and the output is
// lossless for every cell kind.
func (c *CSVWriter) Write(t models.Table) error {
	if err := c.writer.Write(t.Columns); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}

	row := make([]string, len(t.Columns))
	for _, r := range t.Rows {
		for i, col := range t.Columns {
			row[i] = r.Cell(col).Text()
		}
		if err := c.writer.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// ExportFilename builds the timestamped attachment name for a download.
func ExportFilename(prefix string, now time.Time) string {
	return fmt.Sprintf("%s_%s.csv", prefix, now.Format("20060102_150405"))
}
