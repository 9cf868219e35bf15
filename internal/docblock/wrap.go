package docblock

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// wrapWidth computes the width budget for a table's last column. The
// configured floor wins when the remaining budget falls below it, even if
// that pushes a line past MaxLineLength: readable wrapped text takes priority
// over the soft line budget.
func wrapWidth(opt Options, preceding int) int {
	available := opt.MaxLineLength - opt.IndentWidth - len(Bullet) - preceding
	if available <= opt.MinLastColumnWidth {
		return opt.MinLastColumnWidth
	}
	return available
}

// wrapLastColumn word-wraps text to width, joining the wrapped segments with
// the continuation prefix: newline, indentation, bullet, then as many spaces
// as the preceding columns consume, so continuation text starts in the same
// column as the first line's.
func wrapLastColumn(text string, width int, indent string, preceding int) string {
	if runewidth.StringWidth(text) <= width {
		return text
	}
	segments := wrapWords(text, width)
	sep := "\n" + indent + Bullet + strings.Repeat(" ", preceding)
	return strings.Join(segments, sep)
}

// wrapWords performs a greedy word-boundary wrap. Words longer than the width
// are emitted on their own line rather than broken mid-word.
func wrapWords(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	var current []string
	length := 0
	for _, word := range words {
		wordWidth := runewidth.StringWidth(word)
		if len(current) == 0 {
			current = append(current, word)
			length = wordWidth
			continue
		}
		if length+1+wordWidth <= width {
			current = append(current, word)
			length += 1 + wordWidth
			continue
		}
		lines = append(lines, strings.Join(current, " "))
		current = []string{word}
		length = wordWidth
	}
	if len(current) > 0 {
		lines = append(lines, strings.Join(current, " "))
	}
	return lines
}
