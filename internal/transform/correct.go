package transform

import (
	"fmt"
	"strings"

	"ndmo-quality/internal/schema"
)

// AutoCorrect repairs the gaps inference left behind: unknown types, a
// missing primary key, unconstrained columns and unrelated _id columns.
// It returns the corrected copy and one log line per correction.
func AutoCorrect(m *schema.Model) (*schema.Model, []string) {
	out := m.Clone()
	corrections := []string{}

	for i := range out.Columns {
		c := &out.Columns[i]
		if c.Type != schema.TypeUnknown {
			continue
		}
		if t := typeFromSamples(c.SampleValues); t != schema.TypeUnknown {
			c.Type = t
			corrections = append(corrections, fmt.Sprintf("Corrected data type for %s to %s", c.Name, t))
		}
	}

	if !out.HasPrimaryKey() {
		if c := primaryKeyCandidate(out.Columns); c != nil {
			c.PrimaryKey = true
			c.Unique = true
			corrections = append(corrections, fmt.Sprintf("Set %s as primary key", c.Name))
		}
	}

	for i := range out.Columns {
		c := &out.Columns[i]
		if !c.Constraints.IsEmpty() {
			continue
		}
		if bc := basicConstraints(c); !bc.IsEmpty() {
			c.Constraints = bc
			corrections = append(corrections, fmt.Sprintf("Added constraints for %s", c.Name))
		}
	}

	related := make(map[string]bool, len(out.Relationships))
	for _, r := range out.Relationships {
		related[r.ChildColumn] = true
	}
	for i := range out.Columns {
		c := &out.Columns[i]
		name := strings.ToLower(c.Name)
		if !strings.HasSuffix(name, "_id") || related[c.Name] {
			continue
		}
		c.ForeignKey = true
		out.Relationships = append(out.Relationships, schema.NewRelationship(c.Name))
		related[c.Name] = true
		corrections = append(corrections, fmt.Sprintf("Added relationship for %s", c.Name))
	}

	out.QualityMetrics = schema.ComputeSchemaMetrics(out)
	return out, corrections
}

// typeFromSamples tries numeric, datetime and boolean over every sample and
// falls back to text. Without samples the type stays unknown.
func typeFromSamples(samples []any) schema.Type {
	if len(samples) == 0 {
		return schema.TypeUnknown
	}
	all := func(pred func(any) bool) bool {
		for _, v := range samples {
			if !pred(v) {
				return false
			}
		}
		return true
	}
	switch {
	case all(func(v any) bool { _, ok := schema.ToNumber(v); return ok }):
		return schema.TypeNumeric
	case all(func(v any) bool { _, ok := schema.ToTime(v); return ok }):
		return schema.TypeDatetime
	case all(func(v any) bool { _, ok := schema.ToBool(v); return ok }):
		return schema.TypeBoolean
	}
	return schema.TypeText
}

func primaryKeyScore(c schema.Column) int {
	score := 0
	if schema.NameContains(c.Name, "id") {
		score += 3
	}
	if schema.NameContains(c.Name, "key") {
		score += 2
	}
	if schema.NameContains(c.Name, "serial") {
		score += 2
	}
	if c.Unique {
		score += 2
	}
	if c.Type == schema.TypeNumeric || c.Type == schema.TypeIdentifier {
		score++
	}
	return score
}

// primaryKeyCandidate returns the highest scoring column, the first one on
// ties, or nil when no column scores above zero.
func primaryKeyCandidate(cols []schema.Column) *schema.Column {
	var best *schema.Column
	bestScore := 0
	for i := range cols {
		if s := primaryKeyScore(cols[i]); s > bestScore {
			best, bestScore = &cols[i], s
		}
	}
	return best
}

func basicConstraints(c *schema.Column) schema.Constraints {
	var bc schema.Constraints
	if !c.Nullable {
		bc.Required = true
	}
	if len(c.SampleValues) == 0 {
		return bc
	}

	switch c.Type {
	case schema.TypeText:
		minLen, maxLen := -1, 0
		for _, v := range c.SampleValues {
			n := len([]rune(schema.ValueKey(v)))
			if minLen < 0 || n < minLen {
				minLen = n
			}
			maxLen = max(maxLen, n)
		}
		bc.MinLength = schema.Int(minLen)
		bc.MaxLength = schema.Int(maxLen)
	case schema.TypeNumeric:
		var lo, hi float64
		for i, v := range c.SampleValues {
			f, ok := schema.ToNumber(v)
			if !ok {
				return bc
			}
			if i == 0 || f < lo {
				lo = f
			}
			if i == 0 || f > hi {
				hi = f
			}
		}
		bc.MinValue = schema.Float(lo)
		bc.MaxValue = schema.Float(hi)
	}
	return bc
}
