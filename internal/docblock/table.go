package docblock

// Row is an ordered run of cells indexed positionally. A row shorter than the
// table's column count has its trailing cells absent; absent is distinct from
// an empty string (an empty cell still pads, an absent one renders nothing).
type Row []string

// Table is one semantic grouping of rows (e.g. one doc-tag group). Rows may
// be ragged, but only as a shorter trailing run.
type Table []Row

// Document is the ordered sequence of tables rendered into one comment.
type Document []Table

// columnCount returns the widest row's length.
func (t Table) columnCount() int {
	n := 0
	for _, row := range t {
		if len(row) > n {
			n = len(row)
		}
	}
	return n
}
