package docblock

import (
	"errors"
	"fmt"

	"golang.org/x/text/unicode/norm"
)

// ErrBadShape reports input that does not match any documented document
// shape. The renderer fails fast instead of guessing.
var ErrBadShape = errors.New("docblock: bad document shape")

// Normalize converts a loosely-typed nested value into a strict Document.
//
// The top level is the sequence of entries, each resolving to one table:
//   - string                   one table, one row, one cell
//   - []any of strings         one table with a single multi-column row
//   - []any of sequences       one table, each inner sequence a row
//
// The typed conveniences resolve entry-wise, exactly like their []any
// spelling: a top-level []string is one single-cell table per element, a
// [][]string one single-row table per inner slice. A two-row aligned table
// therefore always needs one more nesting level than its rows.
//
// Keyed values (maps) are rejected: Go maps carry no insertion order, so the
// "discard keys, keep order" conversion cannot be honored deterministically.
// Cell text is NFC-normalized so width measurement is stable.
func Normalize(doc any) (Document, error) {
	switch v := doc.(type) {
	case nil:
		return nil, fmt.Errorf("%w: nil document", ErrBadShape)
	case string:
		return Document{tableFromString(v)}, nil
	case []string:
		out := make(Document, 0, len(v))
		for _, entry := range v {
			out = append(out, tableFromString(entry))
		}
		return out, nil
	case [][]string:
		out := make(Document, 0, len(v))
		for _, entry := range v {
			out = append(out, tableFromRow(entry))
		}
		return out, nil
	case Document:
		return normCopy(v), nil
	case []any:
		out := make(Document, 0, len(v))
		for i, entry := range v {
			table, err := normalizeTable(entry)
			if err != nil {
				return nil, fmt.Errorf("entry %d: %w", i, err)
			}
			out = append(out, table)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: unsupported document type %T", ErrBadShape, doc)
	}
}

// normalizeTable resolves one top-level entry into a table.
func normalizeTable(entry any) (Table, error) {
	switch v := entry.(type) {
	case string:
		return tableFromString(v), nil
	case []string:
		return tableFromRow(v), nil
	case [][]string:
		return tableFromRows(v), nil
	case []any:
		if len(v) == 0 {
			return Table{}, nil
		}
		// A sequence is either all strings (one row) or all sequences
		// (one row each). Mixing the two is undefined by contract.
		strCount := 0
		for _, item := range v {
			if _, ok := item.(string); ok {
				strCount++
			}
		}
		if strCount == len(v) {
			row := make(Row, len(v))
			for i, item := range v {
				row[i] = norm.NFC.String(item.(string))
			}
			return Table{row}, nil
		}
		if strCount > 0 {
			return nil, fmt.Errorf("%w: table mixes strings and sequences", ErrBadShape)
		}
		table := make(Table, 0, len(v))
		for i, item := range v {
			row, err := normalizeRow(item)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i, err)
			}
			table = append(table, row)
		}
		return table, nil
	default:
		return nil, fmt.Errorf("%w: unsupported table type %T", ErrBadShape, entry)
	}
}

func normalizeRow(entry any) (Row, error) {
	switch v := entry.(type) {
	case []string:
		row := make(Row, len(v))
		for i, cell := range v {
			row[i] = norm.NFC.String(cell)
		}
		return row, nil
	case []any:
		row := make(Row, len(v))
		for i, cell := range v {
			s, ok := cell.(string)
			if !ok {
				return nil, fmt.Errorf("%w: cell %d is %T, not string", ErrBadShape, i, cell)
			}
			row[i] = norm.NFC.String(s)
		}
		return row, nil
	default:
		return nil, fmt.Errorf("%w: unsupported row type %T", ErrBadShape, entry)
	}
}

func tableFromString(s string) Table {
	return Table{Row{norm.NFC.String(s)}}
}

func tableFromRow(cells []string) Table {
	row := make(Row, len(cells))
	for i, cell := range cells {
		row[i] = norm.NFC.String(cell)
	}
	return Table{row}
}

func tableFromRows(rows [][]string) Table {
	table := make(Table, 0, len(rows))
	for _, cells := range rows {
		row := make(Row, len(cells))
		for i, cell := range cells {
			row[i] = norm.NFC.String(cell)
		}
		table = append(table, row)
	}
	return table
}

// normCopy re-normalizes an already-typed document without aliasing the
// caller's rows.
func normCopy(d Document) Document {
	out := make(Document, len(d))
	for ti, table := range d {
		rows := make(Table, len(table))
		for ri, row := range table {
			cells := make(Row, len(row))
			for ci, cell := range row {
				cells[ci] = norm.NFC.String(cell)
			}
			rows[ri] = cells
		}
		out[ti] = rows
	}
	return out
}
