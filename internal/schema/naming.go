package schema

import (
	"regexp"
	"strings"
)

// Name heuristics. All matching is substring based on the lowercased name.
var (
	PrimaryKeyTerms = []string{"id", "key", "pk", "primary", "serial"}
	ForeignKeyTerms = []string{"_id", "_key", "ref_", "foreign"}
	RuleColumnTerms = []string{"rule", "constraint"}
)

var snakeCaseRe = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// NameContains reports whether the lowercased name contains any of terms.
func NameContains(name string, terms ...string) bool {
	n := strings.ToLower(name)
	for _, t := range terms {
		if strings.Contains(n, t) {
			return true
		}
	}
	return false
}

// IsSnakeCase reports whether name matches ^[a-z][a-z0-9_]*$ as written.
func IsSnakeCase(name string) bool {
	return snakeCaseRe.MatchString(name)
}

// LexicalRule maps a database type name containing any of Terms to a Type.
type LexicalRule struct {
	Terms  []string
	Result Type
}

// LexicalTypeRules are evaluated in order; the first matching rule wins.
var LexicalTypeRules = []LexicalRule{
	{Terms: []string{"int", "bigint", "smallint"}, Result: TypeNumeric},
	{Terms: []string{"float", "double", "decimal", "numeric"}, Result: TypeNumeric},
	{Terms: []string{"varchar", "char", "text", "nvarchar"}, Result: TypeText},
	{Terms: []string{"date", "time", "datetime", "timestamp"}, Result: TypeDatetime},
	{Terms: []string{"bool", "bit"}, Result: TypeBoolean},
}

// MapDatabaseType maps a SQL type name to a Type, falling back to text.
func MapDatabaseType(dbType string) Type {
	t := strings.ToLower(strings.TrimSpace(dbType))
	for _, r := range LexicalTypeRules {
		for _, term := range r.Terms {
			if strings.Contains(t, term) {
				return r.Result
			}
		}
	}
	return TypeText
}

// nameHint adds a pattern and/or format to columns whose name contains Term.
type nameHint struct {
	Term    string
	Pattern string
	Format  string
}

// nameHints are evaluated in order; only the first match applies.
var nameHints = []nameHint{
	{Term: "email", Pattern: EmailPattern, Format: "email"},
	{Term: "phone", Pattern: PhonePattern, Format: "phone"},
	{Term: "date", Format: "date"},
}

func applyNameHints(name string, c *Constraints) {
	for _, h := range nameHints {
		if NameContains(name, h.Term) {
			if h.Pattern != "" {
				c.Pattern = h.Pattern
			}
			c.Format = h.Format
			return
		}
	}
}

// parentTable derives the referenced table name from a foreign key column.
func parentTable(column string) string {
	return strings.ReplaceAll(strings.ReplaceAll(column, "_id", ""), "_key", "")
}
