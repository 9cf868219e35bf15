package docblock

// Formatter holds layout configuration between renders. Setters return the
// receiver for fluent chaining. A Formatter is not synchronized: sharing one
// across goroutines requires external locking. Each FromArray call works on
// its own snapshot of the options, so a render never observes a torn config.
type Formatter struct {
	opt Options
}

// New returns a formatter with the default layout: no indentation, 80-column
// lines, 20-column minimum last-column width.
func New() *Formatter {
	return &Formatter{opt: Options{}.withDefaults()}
}

// NewWithOptions returns a formatter starting from opt, with zero values
// replaced by defaults.
func NewWithOptions(opt Options) *Formatter {
	return &Formatter{opt: opt.withDefaults()}
}

// FromArray normalizes a loosely-typed nested document (see Normalize) and
// renders it as a delimited comment string.
func (f *Formatter) FromArray(doc any) (string, error) {
	opt := f.opt
	d, err := Normalize(doc)
	if err != nil {
		return "", err
	}
	return Render(d, opt), nil
}

// Options returns a copy of the current configuration.
func (f *Formatter) Options() Options {
	return f.opt
}

// IndentWidth reports the numeric indentation width.
func (f *Formatter) IndentWidth() int { return f.opt.IndentWidth }

// SetIndentWidth sets the numeric indentation width. Negative values clamp
// to zero.
func (f *Formatter) SetIndentWidth(n int) *Formatter {
	if n < 0 {
		n = 0
	}
	f.opt.IndentWidth = n
	return f
}

// UseTabs reports whether indentation is emitted as a single tab.
func (f *Formatter) UseTabs() bool { return f.opt.UseTabs }

// SetUseTabs selects tab indentation. Width arithmetic keeps using the
// numeric indent width.
func (f *Formatter) SetUseTabs(v bool) *Formatter {
	f.opt.UseTabs = v
	return f
}

// MaxLineLength reports the soft line budget.
func (f *Formatter) MaxLineLength() int { return f.opt.MaxLineLength }

// SetMaxLineLength sets the soft line budget. Non-positive values reset to
// the default.
func (f *Formatter) SetMaxLineLength(n int) *Formatter {
	if n <= 0 {
		n = Options{}.withDefaults().MaxLineLength
	}
	f.opt.MaxLineLength = n
	return f
}

// MinLastColumnWidth reports the wrap-width floor for the last column.
func (f *Formatter) MinLastColumnWidth() int { return f.opt.MinLastColumnWidth }

// SetMinLastColumnWidth sets the wrap-width floor. Non-positive values reset
// to the default.
func (f *Formatter) SetMinLastColumnWidth(n int) *Formatter {
	if n <= 0 {
		n = Options{}.withDefaults().MinLastColumnWidth
	}
	f.opt.MinLastColumnWidth = n
	return f
}
