package docblock

import "strings"

// Bullet is the fixed marker prefixing each interior comment line.
const Bullet = " * "

// Options controls layout of a rendered comment block.
type Options struct {
	// IndentWidth is the numeric indentation cost in columns. It always
	// participates in width arithmetic, even when tabs are emitted.
	IndentWidth int
	// UseTabs emits a single tab as the indentation string instead of
	// IndentWidth spaces. Only effective when IndentWidth > 0.
	UseTabs bool
	// MaxLineLength is the soft budget for a rendered line.
	MaxLineLength int
	// MinLastColumnWidth is the floor for the wrap width of the last
	// column. It wins over MaxLineLength when the two conflict.
	MinLastColumnWidth int
}

func (o Options) withDefaults() Options {
	if o.MaxLineLength <= 0 {
		o.MaxLineLength = 80
	}
	if o.MinLastColumnWidth <= 0 {
		o.MinLastColumnWidth = 20
	}
	if o.IndentWidth < 0 {
		o.IndentWidth = 0
	}
	return o
}

// indentString returns the literal prefix for every output line: one tab when
// tabs are requested, IndentWidth spaces otherwise.
func (o Options) indentString() string {
	if o.IndentWidth <= 0 {
		return ""
	}
	if o.UseTabs {
		return "\t"
	}
	return strings.Repeat(" ", o.IndentWidth)
}
