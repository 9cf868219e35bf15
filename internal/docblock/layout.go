package docblock

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// columnWidths computes the printed width of every column except the last:
// the widest present cell in the column plus one separator space. A
// single-column table has no padded columns and gets an empty slice.
func columnWidths(t Table) []int {
	cols := t.columnCount()
	if cols <= 1 {
		return nil
	}
	widths := make([]int, cols-1)
	for _, row := range t {
		for i, cell := range row {
			if i >= cols-1 {
				break
			}
			if w := runewidth.StringWidth(cell) + 1; w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

// padRows right-pads every present non-last cell to its column width so the
// next column starts at a fixed offset. Absent trailing cells stay absent.
func padRows(t Table, widths []int) Table {
	if len(widths) == 0 {
		return t
	}
	out := make(Table, len(t))
	for ri, row := range t {
		padded := make(Row, len(row))
		for i, cell := range row {
			if i < len(widths) {
				pad := widths[i] - runewidth.StringWidth(cell)
				if pad > 0 {
					cell += strings.Repeat(" ", pad)
				}
			}
			padded[i] = cell
		}
		out[ri] = padded
	}
	return out
}

func sumWidths(widths []int) int {
	total := 0
	for _, w := range widths {
		total += w
	}
	return total
}
