package quality

import (
	"math"
	"time"

	"ndmo-quality/internal/schema"
)

// Kind is the storage class of a series, decided when the frame is built
// and changed by coercion.
type Kind string

const (
	KindNumeric  Kind = "numeric"
	KindDatetime Kind = "datetime"
	KindBoolean  Kind = "boolean"
	KindText     Kind = "text"
)

// Series is one named column. Numeric series hold float64, datetime series
// time.Time, boolean series bool; text series hold whatever was read. A nil
// entry is a missing value in every kind.
type Series struct {
	Name   string
	Kind   Kind
	Values []any
}

// Frame is an in-memory table of equally long series.
type Frame struct {
	Columns []*Series
	rows    int
}

// NewFrame builds a frame from a table, inferring each column's kind from
// its values: all numbers is numeric, all native bools boolean, all native
// times datetime, anything else text. A column with no values is numeric.
func NewFrame(t *schema.Table) *Frame {
	f := &Frame{}
	if t == nil {
		return f
	}
	f.rows = len(t.Rows)
	for i, h := range t.Headers {
		f.Columns = append(f.Columns, newSeries(h, t.Column(i)))
	}
	return f
}

func newSeries(name string, values []any) *Series {
	s := &Series{Name: name, Values: make([]any, len(values))}
	for i, v := range values {
		if !schema.IsMissing(v) {
			s.Values[i] = v
		}
	}
	s.Kind = baseKind(s.Values)
	if s.Kind == KindNumeric {
		for i, v := range s.Values {
			if v == nil {
				continue
			}
			if f, _ := schema.ToNumber(v); !math.IsNaN(f) {
				s.Values[i] = f
			} else {
				s.Values[i] = nil
			}
		}
	}
	return s
}

func baseKind(values []any) Kind {
	numeric, boolean, datetime := true, true, true
	for _, v := range values {
		if v == nil {
			continue
		}
		if _, ok := schema.ToNumber(v); !ok {
			numeric = false
		}
		if _, ok := v.(bool); !ok {
			boolean = false
		}
		if _, ok := v.(time.Time); !ok {
			datetime = false
		}
	}
	switch {
	case numeric:
		return KindNumeric
	case boolean:
		return KindBoolean
	case datetime:
		return KindDatetime
	}
	return KindText
}

// Rows returns the number of rows.
func (f *Frame) Rows() int { return f.rows }

// Column returns the series with exactly this name, or nil.
func (f *Frame) Column(name string) *Series {
	for _, s := range f.Columns {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// Names returns the series names in order.
func (f *Frame) Names() []string {
	out := make([]string, len(f.Columns))
	for i, s := range f.Columns {
		out[i] = s.Name
	}
	return out
}

// Table converts the frame back to a generic table.
func (f *Frame) Table(name string) *schema.Table {
	t := &schema.Table{Name: name, Headers: f.Names(), Rows: make([][]any, f.rows)}
	for r := range t.Rows {
		row := make([]any, len(f.Columns))
		for c, s := range f.Columns {
			row[c] = s.Values[r]
		}
		t.Rows[r] = row
	}
	return t
}

// dropRows removes the rows for which drop returns true.
func (f *Frame) dropRows(drop func(r int) bool) {
	keep := make([]int, 0, f.rows)
	for r := 0; r < f.rows; r++ {
		if !drop(r) {
			keep = append(keep, r)
		}
	}
	for _, s := range f.Columns {
		values := make([]any, len(keep))
		for i, r := range keep {
			values[i] = s.Values[r]
		}
		s.Values = values
	}
	f.rows = len(keep)
}

// nonNull returns the present values of the series.
func (s *Series) nonNull() []any {
	out := make([]any, 0, len(s.Values))
	for _, v := range s.Values {
		if v != nil {
			out = append(out, v)
		}
	}
	return out
}

func (s *Series) nullCount() int {
	return len(s.Values) - len(s.nonNull())
}

func (s *Series) distinct() int {
	seen := make(map[string]struct{}, len(s.Values))
	for _, v := range s.Values {
		if v != nil {
			seen[schema.ValueKey(v)] = struct{}{}
		}
	}
	return len(seen)
}
