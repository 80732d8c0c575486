package schema

// Type is the inferred semantic type of a column.
type Type string

const (
	TypeNumeric     Type = "numeric"
	TypeText        Type = "text"
	TypeDatetime    Type = "datetime"
	TypeBoolean     Type = "boolean"
	TypeCategorical Type = "categorical"
	TypeEmail       Type = "email"
	TypePhone       Type = "phone"
	TypeIdentifier  Type = "identifier"
	TypeUnknown     Type = "unknown"
	TypeEmpty       Type = "empty"
)

// Shape says how an input table describes its columns.
type Shape string

const (
	// ShapeDefinition has one row per column (information_schema style).
	ShapeDefinition Shape = "definition"
	// ShapeSampled has one row per record.
	ShapeSampled Shape = "sampled"
)

// Constraints are the per-column rules inferred or mandated for a column.
// Unset pointer fields mean "no constraint".
type Constraints struct {
	Required      bool     `json:"required" yaml:"required"`
	MinLength     *int     `json:"min_length,omitempty" yaml:"min_length,omitempty"`
	MaxLength     *int     `json:"max_length,omitempty" yaml:"max_length,omitempty"`
	MinValue      *float64 `json:"min_value,omitempty" yaml:"min_value,omitempty"`
	MaxValue      *float64 `json:"max_value,omitempty" yaml:"max_value,omitempty"`
	AllowedValues []any    `json:"allowed_values,omitempty" yaml:"allowed_values,omitempty"`
	Pattern       string   `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Format        string   `json:"format,omitempty" yaml:"format,omitempty"`
	Default       any      `json:"default,omitempty" yaml:"default,omitempty"`
	DecimalPlaces *int     `json:"decimal_places,omitempty" yaml:"decimal_places,omitempty"`
	CaseSensitive bool     `json:"case_sensitive,omitempty" yaml:"case_sensitive,omitempty"`
	AutoIncrement bool     `json:"auto_increment,omitempty" yaml:"auto_increment,omitempty"`
}

// IsEmpty reports whether no constraint field is set.
func (c Constraints) IsEmpty() bool {
	return !c.Required &&
		c.MinLength == nil && c.MaxLength == nil &&
		c.MinValue == nil && c.MaxValue == nil &&
		len(c.AllowedValues) == 0 &&
		c.Pattern == "" && c.Format == "" &&
		c.Default == nil && c.DecimalPlaces == nil &&
		!c.CaseSensitive && !c.AutoIncrement
}

func (c Constraints) clone() Constraints {
	out := c
	out.MinLength = clonePtr(c.MinLength)
	out.MaxLength = clonePtr(c.MaxLength)
	out.MinValue = clonePtr(c.MinValue)
	out.MaxValue = clonePtr(c.MaxValue)
	out.DecimalPlaces = clonePtr(c.DecimalPlaces)
	if c.AllowedValues != nil {
		out.AllowedValues = append([]any(nil), c.AllowedValues...)
	}
	return out
}

// Statistics are observed value counts. Duplicate is always
// NonNull - Distinct, with Distinct counted over non-null values.
type Statistics struct {
	Total     int `json:"total_values" yaml:"total_values"`
	NonNull   int `json:"non_null_values" yaml:"non_null_values"`
	Null      int `json:"null_values" yaml:"null_values"`
	Distinct  int `json:"unique_values" yaml:"unique_values"`
	Duplicate int `json:"duplicate_values" yaml:"duplicate_values"`
}

// Column describes one column of a table.
type Column struct {
	Name          string      `json:"name" yaml:"name"`
	Type          Type        `json:"data_type" yaml:"data_type"`
	Nullable      bool        `json:"nullable" yaml:"nullable"`
	Unique        bool        `json:"unique" yaml:"unique"`
	PrimaryKey    bool        `json:"primary_key" yaml:"primary_key"`
	ForeignKey    bool        `json:"foreign_key" yaml:"foreign_key"`
	Constraints   Constraints `json:"constraints" yaml:"constraints"`
	SampleValues  []any       `json:"sample_values" yaml:"sample_values"`
	Statistics    Statistics  `json:"statistics" yaml:"statistics"`
	QualityIssues []string    `json:"quality_issues" yaml:"quality_issues"`
	Standard      string      `json:"ndmo_standard,omitempty" yaml:"ndmo_standard,omitempty"`
	Description   string      `json:"description,omitempty" yaml:"description,omitempty"`
}

// BusinessRule is a declared or placeholder rule attached to a model.
type BusinessRule struct {
	ID          string   `json:"rule_id,omitempty" yaml:"rule_id,omitempty"`
	Name        string   `json:"name" yaml:"name"`
	Type        string   `json:"type,omitempty" yaml:"type,omitempty"`
	Description string   `json:"description" yaml:"description"`
	Implemented bool     `json:"implemented" yaml:"implemented"`
	Severity    string   `json:"severity,omitempty" yaml:"severity,omitempty"`
	Columns     []string `json:"columns,omitempty" yaml:"columns,omitempty"`
	Standard    string   `json:"ndmo_standard,omitempty" yaml:"ndmo_standard,omitempty"`
}

// Relationship is a foreign key candidate between a column and a parent table.
type Relationship struct {
	Type             string `json:"type" yaml:"type"`
	ChildColumn      string `json:"child_column" yaml:"child_column"`
	ParentTable      string `json:"parent_table" yaml:"parent_table"`
	RelationshipType string `json:"relationship_type" yaml:"relationship_type"`
}

// QualityMetrics are schema-level fractions in [0,1].
type QualityMetrics struct {
	Completeness float64 `json:"completeness" yaml:"completeness"`
	Consistency  float64 `json:"consistency" yaml:"consistency"`
	Uniqueness   float64 `json:"uniqueness" yaml:"uniqueness"`
	Validity     float64 `json:"validity" yaml:"validity"`
	OverallScore float64 `json:"overall_score" yaml:"overall_score"`
}

// Improvement records one compliance improvement category.
type Improvement struct {
	Improvement string `json:"improvement" yaml:"improvement"`
	Standard    string `json:"ndmo_standard" yaml:"ndmo_standard"`
	Description string `json:"description" yaml:"description"`
}

// Model is the structured description of a table.
type Model struct {
	TableName              string         `json:"table_name" yaml:"table_name"`
	Shape                  Shape          `json:"shape,omitempty" yaml:"shape,omitempty"`
	Columns                []Column       `json:"columns" yaml:"columns"`
	BusinessRules          []BusinessRule `json:"business_rules" yaml:"business_rules"`
	Relationships          []Relationship `json:"relationships" yaml:"relationships"`
	QualityMetrics         QualityMetrics `json:"quality_metrics" yaml:"quality_metrics"`
	NDMOCompliant          bool           `json:"ndmo_compliant" yaml:"ndmo_compliant"`
	ComplianceImprovements []Improvement  `json:"compliance_improvements,omitempty" yaml:"compliance_improvements,omitempty"`
}

// Column returns a pointer to the named column, or nil.
func (m *Model) Column(name string) *Column {
	for i := range m.Columns {
		if m.Columns[i].Name == name {
			return &m.Columns[i]
		}
	}
	return nil
}

// HasColumn reports whether a column with exactly this name exists.
func (m *Model) HasColumn(name string) bool {
	return m.Column(name) != nil
}

// ColumnNames returns column names in model order.
func (m *Model) ColumnNames() []string {
	names := make([]string, len(m.Columns))
	for i, c := range m.Columns {
		names[i] = c.Name
	}
	return names
}

// HasPrimaryKey reports whether any column is flagged primary_key.
func (m *Model) HasPrimaryKey() bool {
	for _, c := range m.Columns {
		if c.PrimaryKey {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the model.
func (m *Model) Clone() *Model {
	out := *m
	out.Columns = make([]Column, len(m.Columns))
	for i, c := range m.Columns {
		out.Columns[i] = c.Clone()
	}
	out.BusinessRules = make([]BusinessRule, len(m.BusinessRules))
	for i, r := range m.BusinessRules {
		r.Columns = append([]string(nil), r.Columns...)
		out.BusinessRules[i] = r
	}
	out.Relationships = append([]Relationship{}, m.Relationships...)
	if m.ComplianceImprovements != nil {
		out.ComplianceImprovements = append([]Improvement(nil), m.ComplianceImprovements...)
	}
	return &out
}

// Clone returns a deep copy of the column.
func (c Column) Clone() Column {
	out := c
	out.Constraints = c.Constraints.clone()
	out.SampleValues = append([]any{}, c.SampleValues...)
	out.QualityIssues = append([]string{}, c.QualityIssues...)
	return out
}

// Int returns a pointer to v, for constraint fields.
func Int(v int) *int { return &v }

// Float returns a pointer to v, for constraint fields.
func Float(v float64) *float64 { return &v }

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
