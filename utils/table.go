package utils

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// RenderTable renders header and rows as an aligned plain-text table.
// Column widths are measured with runewidth so wide runes line up.
func RenderTable(header []string, rows [][]string) string {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i := 0; i < len(widths) && i < len(row); i++ {
			if w := runewidth.StringWidth(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var sb strings.Builder
	writeRow := func(cells []string) {
		for i, width := range widths {
			var cell string
			if i < len(cells) {
				cell = cells[i]
			}
			sb.WriteString("  ")
			sb.WriteString(cell)
			if pad := width - runewidth.StringWidth(cell); pad > 0 {
				sb.WriteString(strings.Repeat(" ", pad))
			}
		}
		sb.WriteString("\n")
	}

	writeRow(header)

	sep := make([]string, len(widths))
	for i, width := range widths {
		sep[i] = strings.Repeat("─", width)
	}
	writeRow(sep)

	for _, row := range rows {
		writeRow(row)
	}
	return sb.String()
}
