package docblock

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Render lays out a normalized document as a delimited comment string.
//
// Each table becomes one block: non-last columns padded to a fixed offset,
// the last column wrapped to the remaining budget. Blocks are separated by a
// bare " *" line. A lone single-line block that fits the budget collapses to
// the one-line form.
func Render(d Document, opt Options) string {
	opt = opt.withDefaults()
	indent := opt.indentString()

	blocks := make([]string, 0, len(d))
	for _, t := range d {
		if len(t) == 0 {
			continue
		}
		blocks = append(blocks, renderTable(t, opt, indent))
	}

	if len(blocks) == 1 && !strings.Contains(blocks[0], "\n") {
		single := "/** " + blocks[0] + " */"
		// The indent cost is the numeric width even when a tab is emitted.
		if opt.IndentWidth+runewidth.StringWidth(single) <= opt.MaxLineLength {
			return indent + single
		}
	}

	var b strings.Builder
	b.WriteString(indent)
	b.WriteString("/**")
	for i, block := range blocks {
		if i > 0 {
			b.WriteString("\n")
			b.WriteString(indent)
			b.WriteString(" *")
		}
		b.WriteString("\n")
		b.WriteString(indent)
		b.WriteString(Bullet)
		b.WriteString(block)
	}
	b.WriteString("\n")
	b.WriteString(indent)
	b.WriteString(" */")
	return trimLineEnds(b.String())
}

// renderTable produces one block: rows joined by the line-start sequence,
// with trailing whitespace stripped from every physical line.
func renderTable(t Table, opt Options, indent string) string {
	widths := columnWidths(t)
	padded := padRows(t, widths)
	preceding := sumWidths(widths)
	width := wrapWidth(opt, preceding)
	last := t.columnCount() - 1

	lines := make([]string, 0, len(padded))
	for _, row := range padded {
		var b strings.Builder
		for i, cell := range row {
			if i == last {
				cell = wrapLastColumn(cell, width, indent, preceding)
			}
			b.WriteString(cell)
		}
		lines = append(lines, b.String())
	}
	return trimLineEnds(strings.Join(lines, "\n"+indent+Bullet))
}

// trimLineEnds strips trailing spaces and tabs from every physical line.
func trimLineEnds(s string) string {
	if !strings.Contains(s, "\n") {
		return strings.TrimRight(s, " \t")
	}
	parts := strings.Split(s, "\n")
	for i, part := range parts {
		parts[i] = strings.TrimRight(part, " \t")
	}
	return strings.Join(parts, "\n")
}
