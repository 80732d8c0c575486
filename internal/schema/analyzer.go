package schema

import (
	"fmt"
	"strings"
)

const (
	maxSampleValues    = 5
	maxAllowedValues   = 20
	highNullFraction   = 0.10
	minIDDistinctRatio = 0.95
)

// Infer converts a raw table into a Model. The shape is decided once per
// table and the matching path runs over every row or column.
func Infer(t *Table) (*Model, error) {
	if t == nil {
		return nil, &InputShapeError{Reason: "no table", Err: ErrEmptyTable}
	}
	if err := t.validate(); err != nil {
		return nil, err
	}

	var (
		m   *Model
		err error
	)
	switch DetectShape(t) {
	case ShapeDefinition:
		m, err = inferDefinition(t)
	default:
		m, err = inferSampled(t)
	}
	if err != nil {
		return nil, err
	}

	m.Relationships = Relationships(m.Columns)
	m.QualityMetrics = ComputeSchemaMetrics(m)
	return m, nil
}

// ---------------------------------------------------------------------
// Definition shape: one row per column
// ---------------------------------------------------------------------

func inferDefinition(t *Table) (*Model, error) {
	idx := t.HeaderIndex()
	cell := func(row []any, header string) (string, bool) {
		i, ok := idx[header]
		if !ok || i >= len(row) || IsMissing(row[i]) {
			return "", false
		}
		s := strings.TrimSpace(ValueKey(row[i]))
		return s, s != ""
	}

	m := &Model{TableName: t.Name, Shape: ShapeDefinition}
	tableNameSet := false
	seen := make(map[string]bool, len(t.Rows))

	for i, row := range t.Rows {
		if tn, ok := cell(row, "table_name"); ok && !tableNameSet {
			m.TableName = tn
			tableNameSet = true
		}

		name, ok := cell(row, "column_name")
		if !ok {
			name = fmt.Sprintf("Column_%d", i+1)
		}
		if seen[name] {
			return nil, &InputShapeError{Table: t.Name, Reason: fmt.Sprintf("duplicate column name %q", name)}
		}
		seen[name] = true

		col := Column{
			Name:          name,
			Type:          TypeUnknown,
			Nullable:      true,
			SampleValues:  []any{name},
			Statistics:    Statistics{Total: 1, NonNull: 1, Distinct: 1},
			QualityIssues: []string{},
		}
		if _, ok := idx["data_type"]; ok {
			dt, _ := cell(row, "data_type")
			col.Type = MapDatabaseType(dt)
		}
		if n, ok := cell(row, "is_nullable"); ok {
			col.Nullable = strings.ToUpper(n) == "YES"
		}

		// COLUMN_KEY as reported by information_schema (PRI, UNI, MUL)
		if k, ok := cell(row, "column_key"); ok {
			k = strings.ToUpper(k)
			if strings.Contains(k, "PRI") || strings.Contains(k, "PRIMARY") {
				col.PrimaryKey = true
				col.Unique = true
				col.Nullable = false
			} else if strings.Contains(k, "UNI") || strings.Contains(k, "UNIQUE") {
				col.Unique = true
			}
		}
		col.ForeignKey = NameContains(name, ForeignKeyTerms...)
		col.Constraints.Required = !col.Nullable

		if l, ok := cell(row, "character_maximum_length"); ok {
			if length := parseLength(l); length > 0 {
				col.Constraints.MaxLength = Int(length)
			}
		}
		if c, ok := cell(row, "column_comment"); ok {
			col.Description = c
		}
		if col.Type == TypeUnknown {
			col.QualityIssues = append(col.QualityIssues, "Unable to determine data type")
		}
		m.Columns = append(m.Columns, col)
	}

	m.BusinessRules = definitionRules(m.Columns)
	return m, nil
}

// parseLength reads a length that may come back as "255" or "255.0".
func parseLength(s string) int {
	var length int
	if _, err := fmt.Sscanf(s, "%d", &length); err == nil {
		return length
	}
	var fLength float64
	if _, err := fmt.Sscanf(s, "%f", &fLength); err == nil {
		return int(fLength)
	}
	return 0
}

// ---------------------------------------------------------------------
// Sampled shape: one row per record
// ---------------------------------------------------------------------

func inferSampled(t *Table) (*Model, error) {
	m := &Model{TableName: t.Name, Shape: ShapeSampled}
	seen := make(map[string]bool, len(t.Headers))

	for i, h := range t.Headers {
		name := strings.TrimSpace(h)
		if name == "" {
			return nil, &InputShapeError{Table: t.Name, Reason: fmt.Sprintf("column %d has a blank name", i+1)}
		}
		if seen[name] {
			return nil, &InputShapeError{Table: t.Name, Reason: fmt.Sprintf("duplicate column name %q", name)}
		}
		seen[name] = true
		m.Columns = append(m.Columns, describeSampled(name, t.Column(i)))
	}

	m.BusinessRules = sampledRules(m.Columns)
	return m, nil
}

func describeSampled(name string, values []any) Column {
	nonNull := make([]any, 0, len(values))
	for _, v := range values {
		if !IsMissing(v) {
			nonNull = append(nonNull, v)
		}
	}

	typ := InferValueType(nonNull)
	key := ValueKey
	if typ == TypeNumeric {
		key = NumericKey
	}
	distinct := countDistinct(nonNull, key)

	stats := Statistics{
		Total:     len(values),
		NonNull:   len(nonNull),
		Null:      len(values) - len(nonNull),
		Distinct:  distinct,
		Duplicate: len(nonNull) - distinct,
	}

	col := Column{
		Name:          name,
		Type:          typ,
		Nullable:      stats.Null > 0,
		Unique:        stats.Total > 0 && distinct == stats.Total,
		Statistics:    stats,
		SampleValues:  append([]any{}, nonNull[:min(len(nonNull), maxSampleValues)]...),
		QualityIssues: []string{},
	}
	col.PrimaryKey = NameContains(name, PrimaryKeyTerms...) && col.Unique && stats.Null == 0
	col.ForeignKey = NameContains(name, ForeignKeyTerms...)
	col.Constraints = observedConstraints(name, typ, nonNull, stats, key)
	col.QualityIssues = qualityIssues(name, typ, stats)
	return col
}

func observedConstraints(name string, typ Type, nonNull []any, stats Statistics, key func(any) string) Constraints {
	c := Constraints{Required: stats.Null == 0}

	if typ == TypeNumeric {
		for i, v := range nonNull {
			f, _ := ToNumber(v)
			if i == 0 || f < *c.MinValue {
				c.MinValue = Float(f)
			}
			if i == 0 || f > *c.MaxValue {
				c.MaxValue = Float(f)
			}
		}
	} else if minLen, maxLen, ok := stringLengths(nonNull); ok {
		c.MinLength = Int(minLen)
		c.MaxLength = Int(maxLen)
	}

	if len(nonNull) > 0 && stats.Distinct <= maxAllowedValues {
		for _, v := range distinctValues(nonNull, key) {
			if typ == TypeNumeric {
				f, _ := ToNumber(v)
				v = f
			}
			c.AllowedValues = append(c.AllowedValues, v)
		}
	}

	applyNameHints(name, &c)
	return c
}

// stringLengths returns the rune length range when every value is a string.
func stringLengths(values []any) (int, int, bool) {
	if len(values) == 0 {
		return 0, 0, false
	}
	minLen, maxLen := -1, 0
	for _, v := range values {
		s, ok := v.(string)
		if !ok {
			return 0, 0, false
		}
		n := len([]rune(s))
		if minLen < 0 || n < minLen {
			minLen = n
		}
		if n > maxLen {
			maxLen = n
		}
	}
	return minLen, maxLen, true
}

func qualityIssues(name string, typ Type, stats Statistics) []string {
	issues := []string{}
	if stats.Total == 0 {
		return issues
	}
	nullFraction := float64(stats.Null) / float64(stats.Total)
	if nullFraction > highNullFraction {
		issues = append(issues, fmt.Sprintf("High null percentage: %.1f%%", nullFraction*100))
	}
	distinctFraction := float64(stats.Distinct) / float64(stats.Total)
	if NameContains(name, "id") && distinctFraction < minIDDistinctRatio {
		issues = append(issues, fmt.Sprintf("Low uniqueness in ID field: %.1f%%", distinctFraction*100))
	}
	if typ == TypeUnknown {
		issues = append(issues, "Unable to determine data type")
	}
	return issues
}

// ---------------------------------------------------------------------
// Business rules and relationships
// ---------------------------------------------------------------------

// placeholderRules are appended to every inferred model, unimplemented.
var placeholderRules = []BusinessRule{
	{Name: "Unique Identifiers", Type: "uniqueness", Description: "All records must have unique identifiers"},
	{Name: "Data Validation", Type: "validation", Description: "Data must pass validation rules"},
	{Name: "Referential Integrity", Type: "integrity", Description: "Foreign key relationships must be maintained"},
}

func withPlaceholders(rules []BusinessRule) []BusinessRule {
	return append(rules, placeholderRules...)
}

func sampledRules(cols []Column) []BusinessRule {
	rules := []BusinessRule{}
	for _, c := range cols {
		if NameContains(c.Name, RuleColumnTerms...) {
			rules = append(rules, BusinessRule{
				Name:        c.Name,
				Type:        "constraint",
				Description: "Business rule defined in column: " + c.Name,
				Implemented: true,
				Columns:     []string{c.Name},
			})
		}
	}
	return withPlaceholders(rules)
}

func definitionRules(cols []Column) []BusinessRule {
	rules := []BusinessRule{}
	var required []string
	for _, c := range cols {
		if !c.Nullable {
			required = append(required, c.Name)
		}
	}
	if len(required) > 0 {
		rules = append(rules, BusinessRule{
			ID:          "BR001",
			Name:        "Required Fields",
			Type:        "constraint",
			Description: "Fields that cannot be null",
			Implemented: true,
			Severity:    "high",
			Columns:     required,
		})
	}
	return withPlaceholders(rules)
}

// Relationships returns one many-to-one record per foreign key column.
func Relationships(cols []Column) []Relationship {
	rels := []Relationship{}
	for _, c := range cols {
		if c.ForeignKey {
			rels = append(rels, NewRelationship(c.Name))
		}
	}
	return rels
}

// NewRelationship builds the foreign key record for a child column.
func NewRelationship(column string) Relationship {
	return Relationship{
		Type:             "foreign_key",
		ChildColumn:      column,
		ParentTable:      parentTable(column),
		RelationshipType: "many_to_one",
	}
}
