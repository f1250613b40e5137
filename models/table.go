package models

// Recognized column names. Numeric columns are coerced to non-negative
// integers, the date column to timestamps; category columns are used
// verbatim for filtering and grouping. Anything else passes through
// unmodified.
const (
	ColKm           = "Km"
	ColPrix         = "Prix"
	ColMc           = "Mc"
	ColDateScraping = "DateScraping"
	ColSource       = "Source"
	ColTransmission = "Transmission"
	ColCarburant    = "Carburant"
	ColStatut       = "Statut"
	ColMarque       = "Marque"
	ColEtat         = "Etat"
)

// NumericColumns are coerced by digit extraction.
var NumericColumns = []string{ColKm, ColPrix, ColMc}

// CategoryColumns are the free-text columns offered as equality filters.
var CategoryColumns = []string{ColSource, ColTransmission, ColCarburant, ColStatut, ColMarque, ColEtat}

// Row maps a column name to its cell. A column absent from the table is
// absent from every row; a column present in the table but not in a given
// source record appears as a Missing cell.
type Row map[string]Cell

// Table is the normalized tabular dataset: an ordered column list
// (first-seen order across rows) plus the rows themselves. A Table is
// treated as immutable once produced.
type Table struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// Len returns the number of rows.
func (t Table) Len() int { return len(t.Rows) }

// Empty reports whether the table has no rows.
func (t Table) Empty() bool { return len(t.Rows) == 0 }

// HasColumn reports whether the named column exists in the table.
func (t Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Column returns the cells of the named column, one per row, with
// Missing for rows that lack the column. The second return value is
// false when the column does not exist at all.
func (t Table) Column(name string) ([]Cell, bool) {
	if !t.HasColumn(name) {
		return nil, false
	}
	cells := make([]Cell, len(t.Rows))
	for i, r := range t.Rows {
		c, ok := r[name]
		if !ok {
			c = Missing()
		}
		cells[i] = c
	}
	return cells, true
}

// Cell returns the cell at the given row for the named column, Missing
// when the row lacks it.
func (r Row) Cell(name string) Cell {
	if c, ok := r[name]; ok {
		return c
	}
	return Missing()
}
