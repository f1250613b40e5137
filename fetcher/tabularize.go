package fetcher

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"car-dashboard/models"
)

// payloadShape enumerates the accepted payload layouts.
type payloadShape int

const (
	shapeRecords payloadShape = iota // sequence of records
	shapeWrapped                     // mapping carrying a "data" key
	shapeRecord                      // any other mapping: a single record
	shapeScalar                      // anything else: unusable
)

func detectShape(v any) payloadShape {
	switch x := v.(type) {
	case []any:
		return shapeRecords
	case map[string]any:
		if _, ok := x["data"]; ok {
			return shapeWrapped
		}
		return shapeRecord
	default:
		return shapeScalar
	}
}

// Tabularize decodes a JSON body and shapes it into a raw (uncoerced)
// table. An empty sequence yields an empty table and no error; a scalar
// or malformed body yields an empty table and a *models.ProcessingError.
func Tabularize(body []byte) (models.Table, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return models.Table{}, &models.ProcessingError{Err: fmt.Errorf("decode body: %w", err)}
	}
	return tableFromValue(v)
}

func tableFromValue(v any) (models.Table, error) {
	switch detectShape(v) {
	case shapeRecords:
		return tableFromSequence(v.([]any))
	case shapeWrapped:
		m := v.(map[string]any)
		switch inner := m["data"].(type) {
		case []any:
			return tableFromSequence(inner)
		case map[string]any:
			return tableFromRecord(inner), nil
		default:
			// A scalar under "data" carries no rows. The upstream contract
			// leaves this shape undefined; treat the outer mapping as a
			// single record like any other mapping.
			return tableFromRecord(m), nil
		}
	case shapeRecord:
		return tableFromRecord(v.(map[string]any)), nil
	default:
		return models.Table{}, &models.ProcessingError{Err: fmt.Errorf("payload is not tabular (%T)", v)}
	}
}

// tableFromSequence builds one row per element. The column set is the
// union of record keys; within a record, previously unseen keys are
// appended in sorted order so the column order is deterministic.
func tableFromSequence(seq []any) (models.Table, error) {
	var t models.Table
	seen := make(map[string]struct{})

	for i, el := range seq {
		rec, ok := el.(map[string]any)
		if !ok {
			return models.Table{}, &models.ProcessingError{Err: fmt.Errorf("record %d is %T, not an object", i, el)}
		}

		row := make(models.Row, len(rec))
		var fresh []string
		for k, v := range rec {
			if _, dup := seen[k]; !dup {
				seen[k] = struct{}{}
				fresh = append(fresh, k)
			}
			row[k] = cellFromJSON(v)
		}
		sort.Strings(fresh)
		t.Columns = append(t.Columns, fresh...)
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func tableFromRecord(rec map[string]any) models.Table {
	row := make(models.Row, len(rec))
	cols := make([]string, 0, len(rec))
	for k, v := range rec {
		cols = append(cols, k)
		row[k] = cellFromJSON(v)
	}
	sort.Strings(cols)
	return models.Table{Columns: cols, Rows: []models.Row{row}}
}

// cellFromJSON converts a decoded JSON value to a scalar cell. Nested
// arrays and objects are flattened to their JSON text so cells stay
// CSV-serializable.
func cellFromJSON(v any) models.Cell {
	switch x := v.(type) {
	case nil:
		return models.Missing()
	case string:
		return models.String(x)
	case bool:
		return models.Bool(x)
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return models.Int(i)
		}
		if f, err := x.Float64(); err == nil {
			return models.Float(f)
		}
		return models.String(x.String())
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return models.Missing()
		}
		return models.String(string(b))
	}
}
