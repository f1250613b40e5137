package services

import (
	"sort"

	"car-dashboard/models"
)

// Filters maps a category column to the exact value its rows must carry.
type Filters map[string]string

// ApplyFilters returns the rows matching every filter. Missing cells
// never match, and filtering on a column the table does not have yields
// no rows.
func ApplyFilters(t models.Table, f Filters) models.Table {
	if len(f) == 0 {
		return t
	}

	rows := make([]models.Row, 0, len(t.Rows))
	for _, r := range t.Rows {
		if matches(r, f) {
			rows = append(rows, r)
		}
	}
	return models.Table{Columns: t.Columns, Rows: rows}
}

func matches(r models.Row, f Filters) bool {
	for col, want := range f {
		cell := r.Cell(col)
		if cell.IsMissing() || cell.Text() != want {
			return false
		}
	}
	return true
}

// FilterOptions returns the sorted distinct non-missing values of every
// category column present in the table. Absent columns get no entry.
func FilterOptions(t models.Table) map[string][]string {
	out := make(map[string][]string)
	for _, col := range models.CategoryColumns {
		vals, ok := distinctValues(t, col)
		if !ok {
			continue
		}
		sort.Strings(vals)
		out[col] = vals
	}
	return out
}

// distinctValues collects the unique non-missing text values of a
// column; ok is false when the column does not exist.
func distinctValues(t models.Table, col string) ([]string, bool) {
	cells, ok := t.Column(col)
	if !ok {
		return nil, false
	}

	seen := make(map[string]struct{})
	var vals []string
	for _, c := range cells {
		if c.IsMissing() {
			continue
		}
		v := c.Text()
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		vals = append(vals, v)
	}
	return vals, true
}
