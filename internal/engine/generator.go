// Package engine produces synthetic data tables that follow a schema model,
// so every stage of the pipeline can be exercised without external files.
package engine

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"ndmo-quality/internal/schema"
)

// maxAttempts bounds the retries spent finding an unused value for a unique
// column before a row-number suffix is appended.
const maxAttempts = 10

// Generator produces values with a seeded faker. A Generator is not safe for
// concurrent use.
type Generator struct {
	faker *gofakeit.Faker
	// Datetime values fall in the year before Now.
	Now time.Time
}

// NewGenerator returns a generator seeded with seed. A zero seed picks a
// random one.
func NewGenerator(seed int64) *Generator {
	return &Generator{faker: gofakeit.New(seed), Now: time.Now()}
}

// Generate builds a sampled-shape table of rows records for m. Columns that
// are neither required nor part of a key are left missing with probability
// nullRate. onRow, when set, is called after each generated row.
func (g *Generator) Generate(m *schema.Model, rows int, nullRate float64, onRow func()) *schema.Table {
	rows = capacity(m, rows)
	t := &schema.Table{Name: m.TableName, Headers: m.ColumnNames(), Rows: make([][]any, 0, rows)}

	used := make(map[string]map[string]bool)
	for _, c := range m.Columns {
		if c.Unique || c.PrimaryKey {
			used[c.Name] = make(map[string]bool, rows)
		}
	}

	for r := 0; r < rows; r++ {
		row := make([]any, len(m.Columns))
		for i := range m.Columns {
			c := &m.Columns[i]
			if !c.Constraints.Required && !c.PrimaryKey && g.faker.Rand.Float64() < nullRate {
				continue
			}
			if seen, ok := used[c.Name]; ok {
				row[i] = g.uniqueValue(c, r, seen)
				continue
			}
			row[i] = g.Value(c, r)
		}
		t.Rows = append(t.Rows, row)
		if onRow != nil {
			onRow()
		}
	}
	return t
}

func (g *Generator) uniqueValue(c *schema.Column, r int, seen map[string]bool) any {
	var v any
	for attempt := 0; attempt < maxAttempts; attempt++ {
		v = g.Value(c, r)
		if k := schema.ValueKey(v); !seen[k] {
			seen[k] = true
			return v
		}
	}
	base := schema.ValueKey(v)
	key := fmt.Sprintf("%s_%d", base, r+1)
	for n := 2; seen[key]; n++ {
		key = fmt.Sprintf("%s_%d_%d", base, r+1, n)
	}
	seen[key] = true
	return key
}

// capacity limits the row count when a numeric key column has a value range
// too small to hold that many distinct values.
func capacity(m *schema.Model, rows int) int {
	limit := rows
	for _, c := range m.Columns {
		if !c.PrimaryKey || c.Type != schema.TypeNumeric || c.Constraints.MaxValue == nil {
			continue
		}
		lo := 1.0
		if c.Constraints.MinValue != nil {
			lo = *c.Constraints.MinValue
		}
		span := int(*c.Constraints.MaxValue-lo) + 1
		if span < limit {
			limit = max(span, 0)
			slog.Warn("key range limits generated rows",
				"table", m.TableName, "column", c.Name, "rows", limit)
		}
	}
	return limit
}
