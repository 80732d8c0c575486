package diagnose

import (
	"fmt"

	"ndmo-quality/internal/schema"
)

// Severity classifies a detected problem.
type Severity string

const (
	Critical Severity = "critical"
	Major    Severity = "major"
	Minor    Severity = "minor"
)

func (s Severity) rank() int {
	switch s {
	case Critical:
		return 1
	case Major:
		return 2
	default:
		return 3
	}
}

// Rule is one independent check over a model. Check returns the problem
// description when the rule fires.
type Rule struct {
	ID       string
	Name     string
	Severity Severity
	Impact   string
	Solution string
	Example  string
	Check    func(m *schema.Model) (string, bool)
}

var (
	lineageTerms     = []string{"lineage", "documentation", "source", "extraction"}
	ownershipTerms   = []string{"owner", "steward"}
	sensitiveTerms   = []string{"password", "ssn", "credit", "card", "secret", "private"}
	accessTerms      = []string{"access", "permission"}
	auditTerms       = []string{"created", "modified", "updated", "audit", "log"}
	integrationTerms = []string{"source", "system", "import", "sync"}
)

func anyColumnNamed(m *schema.Model, terms []string) bool {
	for _, c := range m.Columns {
		if schema.NameContains(c.Name, terms...) {
			return true
		}
	}
	return false
}

func countColumns(m *schema.Model, pred func(c schema.Column) bool) int {
	n := 0
	for _, c := range m.Columns {
		if pred(c) {
			n++
		}
	}
	return n
}

// rules are evaluated in order; the order only affects report ordering.
var rules = []Rule{
	{
		ID: "DG001", Name: "Missing Primary Key", Severity: Critical,
		Impact:   "Critical - Data integrity compromised",
		Solution: "Add a primary key column (e.g., 'id', 'serial_number')",
		Example:  "Add column: 'id' (integer, auto-increment, primary key)",
		Check: func(m *schema.Model) (string, bool) {
			return "No primary key found in schema", !m.HasPrimaryKey()
		},
	},
	{
		ID: "DG002", Name: "Missing Data Lineage", Severity: Major,
		Impact:   "Major - Data traceability compromised",
		Solution: "Add columns for data source and transformation history",
		Example:  "Add columns: 'data_source', 'created_date', 'last_modified'",
		Check: func(m *schema.Model) (string, bool) {
			return "No data lineage documentation found", !anyColumnNamed(m, lineageTerms)
		},
	},
	{
		ID: "DG003", Name: "Missing Data Ownership", Severity: Major,
		Impact:   "Major - Data accountability unclear",
		Solution: "Add columns for data owner and steward",
		Example:  "Add columns: 'data_owner', 'data_steward', 'department'",
		Check: func(m *schema.Model) (string, bool) {
			return "No data ownership information found", !anyColumnNamed(m, ownershipTerms)
		},
	},
	{
		ID: "DQ001", Name: "Insufficient Required Fields", Severity: Major,
		Impact:   "Major - Data completeness compromised",
		Solution: "Mark critical fields as required",
		Example:  "Set required=True for: customer_id, invoice_number, amount, date",
		Check: func(m *schema.Model) (string, bool) {
			n := countColumns(m, func(c schema.Column) bool { return c.Constraints.Required })
			return fmt.Sprintf("Only %d out of %d fields are marked as required", n, len(m.Columns)),
				float64(n) < 0.3*float64(len(m.Columns))
		},
	},
	{
		ID: "DQ002", Name: "Insufficient Data Validation", Severity: Major,
		Impact:   "Major - Data accuracy compromised",
		Solution: "Add validation rules for all fields",
		Example:  "Add constraints: min_length, max_length, allowed_values, pattern",
		Check: func(m *schema.Model) (string, bool) {
			n := countColumns(m, func(c schema.Column) bool { return !c.Constraints.IsEmpty() })
			return fmt.Sprintf("Only %d out of %d fields have validation rules", n, len(m.Columns)),
				float64(n) < 0.5*float64(len(m.Columns))
		},
	},
	{
		ID: "DQ004", Name: "Insufficient Uniqueness Constraints", Severity: Major,
		Impact:   "Major - Data uniqueness compromised",
		Solution: "Add uniqueness constraints to key fields",
		Example:  "Set unique=True for: customer_id, invoice_number, email",
		Check: func(m *schema.Model) (string, bool) {
			n := countColumns(m, func(c schema.Column) bool { return c.Unique })
			return fmt.Sprintf("Only %d fields have uniqueness constraints", n), n < 2
		},
	},
	{
		ID: "DQ005", Name: "Unknown Data Types", Severity: Minor,
		Impact:   "Minor - Data type validation compromised",
		Solution: "Define specific data types for all fields",
		Example:  "Set data_type: 'numeric', 'datetime', 'text', 'email', 'phone'",
		Check: func(m *schema.Model) (string, bool) {
			n := countColumns(m, func(c schema.Column) bool { return c.Type == schema.TypeUnknown })
			return fmt.Sprintf("%d fields have unknown data types", n), n > 0
		},
	},
	{
		ID: "DS001", Name: "Sensitive Data Exposure", Severity: Critical,
		Impact:   "Critical - Data security compromised",
		Solution: "Encrypt or mask sensitive data fields",
		Example:  "Add encryption for: password, ssn, credit_card_number",
		Check: func(m *schema.Model) (string, bool) {
			n := countColumns(m, func(c schema.Column) bool { return schema.NameContains(c.Name, sensitiveTerms...) })
			return fmt.Sprintf("Found %d fields with sensitive data", n), n > 0
		},
	},
	{
		ID: "DS002", Name: "Missing Access Control", Severity: Major,
		Impact:   "Major - Data access control compromised",
		Solution: "Add access control fields",
		Example:  "Add columns: 'access_level', 'permissions', 'user_role'",
		Check: func(m *schema.Model) (string, bool) {
			return "No access control information found", !anyColumnNamed(m, accessTerms)
		},
	},
	{
		ID: "DS004", Name: "Missing Audit Trail", Severity: Major,
		Impact:   "Major - Data tracking compromised",
		Solution: "Add audit trail fields",
		Example:  "Add columns: 'created_date', 'modified_date', 'created_by', 'modified_by'",
		Check: func(m *schema.Model) (string, bool) {
			return "No audit trail information found", !anyColumnNamed(m, auditTerms)
		},
	},
	{
		ID: "DA001", Name: "Inconsistent Naming", Severity: Minor,
		Impact:   "Minor - Data architecture compromised",
		Solution: "Standardize field naming conventions",
		Example:  "Use snake_case: customer_id, invoice_number, created_date",
		Check: func(m *schema.Model) (string, bool) {
			n := countColumns(m, func(c schema.Column) bool { return !schema.IsSnakeCase(c.Name) })
			return fmt.Sprintf("%d fields have inconsistent naming", n), n > 0
		},
	},
	{
		ID: "DA002", Name: "Missing Integration Fields", Severity: Minor,
		Impact:   "Minor - Data integration compromised",
		Solution: "Add integration tracking fields",
		Example:  "Add columns: 'source_system', 'import_date', 'sync_status'",
		Check: func(m *schema.Model) (string, bool) {
			return "No data integration information found", !anyColumnNamed(m, integrationTerms)
		},
	},
	{
		ID: "BR001", Name: "Insufficient Business Rules", Severity: Major,
		Impact:   "Major - Business logic compromised",
		Solution: "Implement all business rules",
		Example:  "Add validation: amount > 0, date <= today, status in ['active', 'inactive']",
		Check: func(m *schema.Model) (string, bool) {
			n := 0
			for _, r := range m.BusinessRules {
				if r.Implemented {
					n++
				}
			}
			return fmt.Sprintf("Only %d out of %d business rules are implemented", n, len(m.BusinessRules)),
				float64(n) < 0.5*float64(len(m.BusinessRules))
		},
	},
	{
		ID: "BR002", Name: "Missing Data Relationships", Severity: Major,
		Impact:   "Major - Data integrity compromised",
		Solution: "Define foreign key relationships",
		Example:  "Add relationships: customer_id -> customers.id, invoice_id -> invoices.id",
		Check: func(m *schema.Model) (string, bool) {
			return "No data relationships defined", len(m.Relationships) == 0
		},
	},
}

// Rules returns the problem checks in evaluation order.
func Rules() []Rule {
	return append([]Rule(nil), rules...)
}
