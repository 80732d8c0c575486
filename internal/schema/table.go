package schema

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyTable is wrapped by InputShapeError when a table has no header or no rows.
var ErrEmptyTable = errors.New("empty table")

// InputShapeError reports a table that cannot be turned into a Model.
type InputShapeError struct {
	Table  string
	Reason string
	Err    error
}

func (e *InputShapeError) Error() string {
	if e.Table != "" {
		return fmt.Sprintf("input shape: table %q: %s", e.Table, e.Reason)
	}
	return "input shape: " + e.Reason
}

func (e *InputShapeError) Unwrap() error { return e.Err }

// Table is a generic two-dimensional input. A nil cell is a missing value.
type Table struct {
	Name    string
	Headers []string
	Rows    [][]any
}

// Column returns the values of the column at index i, with short rows
// padded with nil.
func (t *Table) Column(i int) []any {
	out := make([]any, len(t.Rows))
	for r, row := range t.Rows {
		if i < len(row) {
			out[r] = row[i]
		}
	}
	return out
}

// HeaderIndex maps lowercased, trimmed header names to their position.
func (t *Table) HeaderIndex() map[string]int {
	idx := make(map[string]int, len(t.Headers))
	for i, h := range t.Headers {
		key := strings.ToLower(strings.TrimSpace(h))
		if _, dup := idx[key]; !dup {
			idx[key] = i
		}
	}
	return idx
}

// validate checks the structural invariants shared by both shapes.
func (t *Table) validate() error {
	if len(t.Headers) == 0 {
		return &InputShapeError{Table: t.Name, Reason: "table has no header row", Err: ErrEmptyTable}
	}
	if len(t.Rows) == 0 {
		return &InputShapeError{Table: t.Name, Reason: "table has no data rows", Err: ErrEmptyTable}
	}
	for i, row := range t.Rows {
		if len(row) > len(t.Headers) {
			return &InputShapeError{
				Table:  t.Name,
				Reason: fmt.Sprintf("row %d has %d cells, header has %d", i+1, len(row), len(t.Headers)),
			}
		}
	}
	return nil
}

var definitionHeaders = []string{"column_name", "data_type", "table_name"}

// DetectShape decides once per table whether it is a column definition
// listing or sampled data.
func DetectShape(t *Table) Shape {
	idx := t.HeaderIndex()
	for _, h := range definitionHeaders {
		if _, ok := idx[h]; ok {
			return ShapeDefinition
		}
	}
	return ShapeSampled
}
