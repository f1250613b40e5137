package services

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"car-dashboard/models"
	"car-dashboard/utils"
)

// nonDigits matches every character stripped during numeric coercion.
var nonDigits = regexp.MustCompile(`[^0-9]`)

// dateLayouts are tried in order when coercing DateScraping values.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"02/01/2006 15:04:05",
	"02/01/2006",
	"2006/01/02",
}

// Normalizer coerces the recognized columns of a raw table into their
// target types: Km, Prix and Mc to non-negative integers, DateScraping
// to timestamps. Everything else passes through unmodified.
type Normalizer struct {
	logger *utils.Logger
}

// NewNormalizer creates a Normalizer with the given logger.
func NewNormalizer(logger *utils.Logger) *Normalizer {
	return &Normalizer{logger: logger}
}

// Normalize returns a new table with coerced cells. Cell-level failures
// become Missing, silently — this is a best-effort cleaning policy, so
// no per-cell error or warning is ever surfaced. Running Normalize on an
// already-normalized table changes nothing.
func (n *Normalizer) Normalize(t models.Table) models.Table {
	rows := make([]models.Row, len(t.Rows))
	for i, r := range t.Rows {
		nr := make(models.Row, len(r))
		for col, cell := range r {
			nr[col] = normalizeCell(col, cell)
		}
		rows[i] = nr
	}

	out := models.Table{
		Columns: append([]string(nil), t.Columns...),
		Rows:    rows,
	}
	n.logger.Debug("[normalizer] normalized %d rows across %d columns", out.Len(), len(out.Columns))
	return out
}

func normalizeCell(col string, c models.Cell) models.Cell {
	switch {
	case isNumericColumn(col):
		return coerceDigits(c)
	case col == models.ColDateScraping:
		return coerceTimestamp(c)
	default:
		return c
	}
}

func isNumericColumn(col string) bool {
	for _, c := range models.NumericColumns {
		if c == col {
			return true
		}
	}
	return false
}

// coerceDigits keeps only the decimal digits of the cell's text and
// parses the run as an integer. Deliberately lossy: unit suffixes,
// thousands separators and currency symbols all disappear. No digits at
// all means Missing. Integer cells pass through unchanged.
func coerceDigits(c models.Cell) models.Cell {
	switch c.Kind {
	case models.KindInt, models.KindMissing:
		return c
	}

	digits := nonDigits.ReplaceAllString(c.Text(), "")
	if digits == "" {
		return models.Missing()
	}
	v, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return models.Missing()
	}
	return models.Int(v)
}

// coerceTimestamp parses the cell's text against the known layouts.
// Unparsable values become Missing; timestamp cells pass through.
func coerceTimestamp(c models.Cell) models.Cell {
	switch c.Kind {
	case models.KindTime, models.KindMissing:
		return c
	}

	s := strings.TrimSpace(c.Text())
	if s == "" {
		return models.Missing()
	}
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return models.Timestamp(ts)
		}
	}
	return models.Missing()
}
