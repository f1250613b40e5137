package utils

import (
	"strings"
	"testing"
)

func TestRenderTableAlignment(t *testing.T) {
	out := RenderTable(
		[]string{"Column", "Count"},
		[][]string{
			{"Marque", "12"},
			{"Transmission", "3"},
		},
	)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("line count: got %d, want 4 (header, separator, 2 rows)", len(lines))
	}

	// Every column starts at the same offset, so the count column is
	// aligned across all data rows.
	idx := strings.Index(lines[2], "12")
	if idx < 0 || !strings.Contains(lines[3][idx:], "3") {
		t.Errorf("count column misaligned:\n%s", out)
	}
}

func TestRenderTableWideRunes(t *testing.T) {
	out := RenderTable([]string{"Marque"}, [][]string{{"トヨタ"}, {"Fiat"}})
	if !strings.Contains(out, "トヨタ") {
		t.Fatalf("wide rune row missing:\n%s", out)
	}
}
