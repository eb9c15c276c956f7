package dataset

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingColumn is returned when a required column is absent from the header.
var ErrMissingColumn = errors.New("missing required column")

// RawTable is an untyped tabular file: a header and string cells.
type RawTable struct {
	Name   string
	Header []string
	Rows   [][]string
}

// index maps each header name to its column position. Header names are
// compared after trimming whitespace and a UTF-8 byte order mark.
func (t *RawTable) index() map[string]int {
	idx := make(map[string]int, len(t.Header))
	for i, h := range t.Header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := idx[h]; !dup {
			idx[h] = i
		}
	}
	return idx
}

// columns resolves the given names to positions, failing on the first absent one.
func (t *RawTable) columns(names ...string) ([]int, error) {
	idx := t.index()
	out := make([]int, len(names))
	for i, n := range names {
		pos, ok := idx[n]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, n)
		}
		out[i] = pos
	}
	return out, nil
}

// cell returns row[i], or "" when the row is short.
func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
