// Package transform derives corrected copies of a schema model. The input
// model is never modified.
package transform

import (
	"ndmo-quality/internal/schema"
)

const timestampFormat = "YYYY-MM-DD HH:MM:SS"

const (
	e164Pattern  = `^\+?[1-9]\d{1,14}$`
	codePattern  = `^[A-Z0-9_]+$`
	maxIDValue   = 999999999
	textLength   = 255
	peopleLength = 100
)

func mandated(name string, typ schema.Type, required bool, standard, description string, c schema.Constraints) schema.Column {
	c.Required = required
	return schema.Column{
		Name:          name,
		Type:          typ,
		Nullable:      !required,
		Constraints:   c,
		SampleValues:  []any{},
		QualityIssues: []string{},
		Standard:      standard,
		Description:   description,
	}
}

func primaryKeyColumn() schema.Column {
	col := mandated("id", schema.TypeNumeric, true, "DG001", "Primary key for unique identification", schema.Constraints{
		MinValue:      schema.Float(1),
		MaxValue:      schema.Float(maxIDValue),
		AutoIncrement: true,
	})
	col.PrimaryKey = true
	col.Unique = true
	col.SampleValues = []any{1, 2, 3, 4, 5}
	return col
}

func auditColumns() []schema.Column {
	return []schema.Column{
		mandated("created_date", schema.TypeDatetime, true, "DS004", "Record creation timestamp",
			schema.Constraints{Format: timestampFormat}),
		mandated("modified_date", schema.TypeDatetime, false, "DS004", "Record modification timestamp",
			schema.Constraints{Format: timestampFormat}),
		mandated("created_by", schema.TypeText, true, "DS004", "User who created the record",
			schema.Constraints{MaxLength: schema.Int(peopleLength)}),
		mandated("modified_by", schema.TypeText, false, "DS004", "User who last modified the record",
			schema.Constraints{MaxLength: schema.Int(peopleLength)}),
	}
}

func securityColumns() []schema.Column {
	return []schema.Column{
		mandated("data_classification", schema.TypeCategorical, true, "DS001", "Data classification level",
			schema.Constraints{AllowedValues: []any{"Public", "Internal", "Confidential", "Restricted"}}),
		mandated("access_level", schema.TypeCategorical, true, "DS002", "Required access level",
			schema.Constraints{AllowedValues: []any{"Read", "Write", "Admin"}}),
	}
}

func lineageColumns() []schema.Column {
	return []schema.Column{
		mandated("source_system", schema.TypeText, true, "DG002", "Source system identifier",
			schema.Constraints{MaxLength: schema.Int(peopleLength)}),
		mandated("extraction_date", schema.TypeDatetime, true, "DG002", "Data extraction timestamp",
			schema.Constraints{Format: timestampFormat}),
	}
}

func ownershipColumns() []schema.Column {
	return []schema.Column{
		mandated("data_owner", schema.TypeText, true, "DG003", "Data owner department or person",
			schema.Constraints{MaxLength: schema.Int(peopleLength)}),
		mandated("data_steward", schema.TypeText, false, "DG003", "Data steward responsible for quality",
			schema.Constraints{MaxLength: schema.Int(peopleLength)}),
	}
}

func canonicalRules() []schema.BusinessRule {
	return []schema.BusinessRule{
		{ID: "BR001", Name: "Primary Key Constraint", Description: "Every record must have a unique primary key", Severity: "critical", Standard: "DG001"},
		{ID: "BR002", Name: "Audit Trail Requirement", Description: "All records must have creation and modification tracking", Severity: "high", Standard: "DS004"},
		{ID: "BR003", Name: "Data Classification", Description: "All data must be classified according to security levels", Severity: "high", Standard: "DS001"},
		{ID: "BR004", Name: "Data Completeness", Description: "Critical fields must not be null", Severity: "medium", Standard: "DQ001"},
		{ID: "BR005", Name: "Data Validity", Description: "Data must conform to defined formats and patterns", Severity: "medium", Standard: "DQ005"},
	}
}

// Improvements is the list recorded on every compliant model, whether or not
// a given category changed anything.
func Improvements() []schema.Improvement {
	return []schema.Improvement{
		{Improvement: "Added Primary Key", Standard: "DG001", Description: "Ensures unique identification of records"},
		{Improvement: "Added Audit Trail Fields", Standard: "DS004", Description: "Tracks record creation and modification"},
		{Improvement: "Improved Data Types", Standard: "DQ005", Description: "Enhanced data validity and format compliance"},
		{Improvement: "Added Security Classification", Standard: "DS001", Description: "Implements data security classification"},
		{Improvement: "Added Data Lineage Tracking", Standard: "DG002", Description: "Tracks data source and extraction"},
		{Improvement: "Added Data Ownership", Standard: "DG003", Description: "Defines data ownership and stewardship"},
	}
}

// appendMissing adds each column whose exact name is not already present.
func appendMissing(m *schema.Model, cols []schema.Column) {
	for _, c := range cols {
		if !m.HasColumn(c.Name) {
			m.Columns = append(m.Columns, c)
		}
	}
}

// MakeCompliant returns a copy of m augmented with the mandated governance
// columns and constraints. Original columns are kept in place and never
// renamed; running it again on its own output adds nothing.
func MakeCompliant(m *schema.Model) *schema.Model {
	out := m.Clone()

	ensurePrimaryKey(out)
	appendMissing(out, auditColumns())
	for i := range out.Columns {
		improveType(&out.Columns[i])
		tightenConstraints(&out.Columns[i])
	}
	appendMissing(out, securityColumns())
	out.BusinessRules = canonicalRules()
	appendMissing(out, lineageColumns())
	appendMissing(out, ownershipColumns())

	out.NDMOCompliant = true
	out.ComplianceImprovements = Improvements()
	out.QualityMetrics = schema.ComputeSchemaMetrics(out)
	return out
}

func ensurePrimaryKey(m *schema.Model) {
	if m.HasPrimaryKey() {
		return
	}
	if c := m.Column("id"); c != nil {
		c.PrimaryKey = true
		c.Unique = true
		c.Nullable = false
		c.Constraints.Required = true
		c.Standard = "DG001"
		return
	}
	m.Columns = append([]schema.Column{primaryKeyColumn()}, m.Columns...)
}

// typeOverride forces a type on columns whose name contains any of Terms.
type typeOverride struct {
	Terms []string
	Type  schema.Type
	Apply func(c *schema.Constraints)
}

// typeOverrides are checked in order; the first match wins.
var typeOverrides = []typeOverride{
	{Terms: []string{"date", "time"}, Type: schema.TypeDatetime, Apply: func(c *schema.Constraints) {
		c.Format = timestampFormat
	}},
	{Terms: []string{"email"}, Type: schema.TypeEmail, Apply: func(c *schema.Constraints) {
		c.Pattern = schema.EmailPattern
	}},
	{Terms: []string{"phone", "mobile"}, Type: schema.TypePhone, Apply: func(c *schema.Constraints) {
		c.Pattern = e164Pattern
	}},
	{Terms: []string{"amount", "price", "charge"}, Type: schema.TypeNumeric, Apply: func(c *schema.Constraints) {
		c.MinValue = schema.Float(0)
		c.DecimalPlaces = schema.Int(2)
	}},
}

func improveType(c *schema.Column) {
	for _, o := range typeOverrides {
		if schema.NameContains(c.Name, o.Terms...) {
			c.Type = o.Type
			o.Apply(&c.Constraints)
			return
		}
	}
}

func tightenConstraints(c *schema.Column) {
	if schema.NameContains(c.Name, "id", "key") {
		c.Constraints.Required = true
		c.Nullable = false
	}
	if c.Type == schema.TypeText && c.Constraints.MaxLength == nil {
		c.Constraints.MaxLength = schema.Int(textLength)
	}
	if schema.NameContains(c.Name, "code") {
		c.Constraints.Pattern = codePattern
		c.Constraints.CaseSensitive = true
	}
}
