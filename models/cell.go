package models

import (
	"encoding/json"
	"strconv"
	"time"
)

// CellKind identifies which variant of a Cell is populated.
type CellKind int

const (
	KindMissing CellKind = iota
	KindString
	KindInt
	KindFloat
	KindBool
	KindTime
)

// TimeLayout is the canonical text rendering for timestamp cells.
const TimeLayout = "2006-01-02 15:04:05"

// Cell is a single scalar value in a table. It is a tagged variant:
// exactly one of the typed fields is meaningful, selected by Kind.
// Cells never hold structural values, so any cell serializes losslessly
// to a CSV field via Text.
type Cell struct {
	Kind  CellKind
	Str   string
	Int   int64
	Float float64
	Bool  bool
	Time  time.Time
}

// Missing returns the explicit "no value" marker.
func Missing() Cell { return Cell{Kind: KindMissing} }

// String returns a free-text cell.
func String(s string) Cell { return Cell{Kind: KindString, Str: s} }

// Int returns an integer cell.
func Int(i int64) Cell { return Cell{Kind: KindInt, Int: i} }

// Float returns a floating-point cell.
func Float(f float64) Cell { return Cell{Kind: KindFloat, Float: f} }

// Bool returns a boolean cell.
func Bool(b bool) Cell { return Cell{Kind: KindBool, Bool: b} }

// Timestamp returns a timestamp cell.
func Timestamp(t time.Time) Cell { return Cell{Kind: KindTime, Time: t} }

// IsMissing reports whether the cell carries no value.
func (c Cell) IsMissing() bool { return c.Kind == KindMissing }

// Text renders the cell to its canonical string form. Missing renders
// as the empty string.
func (c Cell) Text() string {
	switch c.Kind {
	case KindMissing:
		return ""
	case KindString:
		return c.Str
	case KindInt:
		return strconv.FormatInt(c.Int, 10)
	case KindFloat:
		return strconv.FormatFloat(c.Float, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(c.Bool)
	case KindTime:
		return c.Time.Format(TimeLayout)
	}
	return ""
}

// MarshalJSON renders the cell as the natural JSON scalar: null for
// missing, a number for Int/Float, a string for timestamps.
func (c Cell) MarshalJSON() ([]byte, error) {
	switch c.Kind {
	case KindMissing:
		return []byte("null"), nil
	case KindString:
		return json.Marshal(c.Str)
	case KindInt:
		return json.Marshal(c.Int)
	case KindFloat:
		return json.Marshal(c.Float)
	case KindBool:
		return json.Marshal(c.Bool)
	case KindTime:
		return json.Marshal(c.Time.Format(TimeLayout))
	}
	return []byte("null"), nil
}
