package standards

// Category groups standards for per-category scoring.
type Category string

const (
	Governance    Category = "Data Governance"
	Quality       Category = "Data Quality"
	Security      Category = "Data Security"
	Architecture  Category = "Data Architecture"
	BusinessRules Category = "Business Rules"
)

// Standard is a single weighted, thresholded governance rule.
type Standard struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Category    Category `json:"category" yaml:"category"`
	Requirement string   `json:"requirement" yaml:"requirement"`
	Threshold   float64  `json:"threshold" yaml:"threshold"`
	Weight      float64  `json:"weight" yaml:"weight"`
	Critical    bool     `json:"critical" yaml:"critical"`
}

// Catalog is a read-only registry of standards. Build it once with NewCatalog
// and pass it to every caller that scores against it.
type Catalog struct {
	standards  []Standard
	index      map[string]int
	categories []Category
}

// NewCatalog returns the NDMO catalog in declaration order.
func NewCatalog() *Catalog {
	return newCatalog(ndmoStandards(), []Category{Governance, Quality, Security, Architecture, BusinessRules})
}

func newCatalog(list []Standard, categories []Category) *Catalog {
	c := &Catalog{
		standards:  list,
		index:      make(map[string]int, len(list)),
		categories: categories,
	}
	for i, s := range list {
		c.index[s.ID] = i
	}
	return c
}

// Lookup returns the standard with the given id.
func (c *Catalog) Lookup(id string) (Standard, bool) {
	i, ok := c.index[id]
	if !ok {
		return Standard{}, false
	}
	return c.standards[i], true
}

// ByCategory returns the standards of one category in declaration order.
func (c *Catalog) ByCategory(category Category) []Standard {
	var out []Standard
	for _, s := range c.standards {
		if s.Category == category {
			out = append(out, s)
		}
	}
	return out
}

// Critical returns every critical standard in declaration order.
func (c *Catalog) Critical() []Standard {
	var out []Standard
	for _, s := range c.standards {
		if s.Critical {
			out = append(out, s)
		}
	}
	return out
}

// All returns a copy of the full catalog.
func (c *Catalog) All() []Standard {
	out := make([]Standard, len(c.standards))
	copy(out, c.standards)
	return out
}

// Categories returns the category order used for reporting.
func (c *Catalog) Categories() []Category {
	out := make([]Category, len(c.categories))
	copy(out, c.categories)
	return out
}

func ndmoStandards() []Standard {
	return []Standard{
		{
			ID: "DG001", Name: "Unique Identifiers", Category: Governance,
			Description: "All data records must have unique identifiers",
			Requirement: "Primary key must exist and be unique",
			Threshold:   1.0, Weight: 0.2, Critical: true,
		},
		{
			ID: "DG002", Name: "Data Lineage", Category: Governance,
			Description: "Data lineage must be documented and traceable",
			Requirement: "Source and transformation history must be documented",
			Threshold:   0.8, Weight: 0.15,
		},
		{
			ID: "DG003", Name: "Data Ownership", Category: Governance,
			Description: "Data ownership must be clearly defined",
			Requirement: "Data steward and owner must be identified",
			Threshold:   0.9, Weight: 0.1,
		},
		{
			ID: "DQ001", Name: "Data Completeness", Category: Quality,
			Description: "Data completeness must meet minimum thresholds",
			Requirement: "No more than 5% missing values in critical fields",
			Threshold:   0.95, Weight: 0.25, Critical: true,
		},
		{
			ID: "DQ002", Name: "Data Accuracy", Category: Quality,
			Description: "Data accuracy must be validated and verified",
			Requirement: "Data must pass accuracy validation rules",
			Threshold:   0.98, Weight: 0.2, Critical: true,
		},
		{
			ID: "DQ003", Name: "Data Consistency", Category: Quality,
			Description: "Data must be consistent across systems",
			Requirement: "Data values must be consistent with business rules",
			Threshold:   0.95, Weight: 0.15,
		},
		{
			ID: "DQ004", Name: "Data Uniqueness", Category: Quality,
			Description: "Duplicate records must be minimized",
			Requirement: "No more than 2% duplicate records",
			Threshold:   0.98, Weight: 0.15,
		},
		{
			ID: "DQ005", Name: "Data Validity", Category: Quality,
			Description: "Data must conform to defined formats and ranges",
			Requirement: "Data must pass format and range validation",
			Threshold:   0.95, Weight: 0.15,
		},
		{
			ID: "DQ006", Name: "Data Timeliness", Category: Quality,
			Description: "Data must be current and up-to-date",
			Requirement: "Data must be updated within defined timeframes",
			Threshold:   0.9, Weight: 0.1,
		},
		{
			ID: "DS001", Name: "Data Encryption", Category: Security,
			Description: "Sensitive data must be encrypted",
			Requirement: "PII and sensitive data must be encrypted at rest and in transit",
			Threshold:   1.0, Weight: 0.3, Critical: true,
		},
		{
			ID: "DS002", Name: "Access Control", Category: Security,
			Description: "Data access must be controlled and monitored",
			Requirement: "Role-based access control must be implemented",
			Threshold:   0.95, Weight: 0.25,
		},
		{
			ID: "DS003", Name: "Data Masking", Category: Security,
			Description: "Sensitive data must be masked in non-production environments",
			Requirement: "PII must be masked in test and development environments",
			Threshold:   1.0, Weight: 0.2,
		},
		{
			ID: "DS004", Name: "Audit Trail", Category: Security,
			Description: "Data access and modifications must be logged",
			Requirement: "Complete audit trail must be maintained",
			Threshold:   0.95, Weight: 0.25,
		},
		{
			ID: "DA001", Name: "Data Modeling", Category: Architecture,
			Description: "Data models must follow standard conventions",
			Requirement: "Data models must follow naming conventions and best practices",
			Threshold:   0.9, Weight: 0.2,
		},
		{
			ID: "DA002", Name: "Data Integration", Category: Architecture,
			Description: "Data integration must be standardized",
			Requirement: "ETL processes must follow standard patterns",
			Threshold:   0.85, Weight: 0.15,
		},
		{
			ID: "DA003", Name: "Data Storage", Category: Architecture,
			Description: "Data storage must follow retention policies",
			Requirement: "Data must be stored according to retention policies",
			Threshold:   0.9, Weight: 0.15,
		},
		{
			ID: "BR001", Name: "Business Rule Validation", Category: BusinessRules,
			Description: "Business rules must be implemented and validated",
			Requirement: "All business rules must be documented and implemented",
			Threshold:   0.95, Weight: 0.3,
		},
		{
			ID: "BR002", Name: "Data Relationships", Category: BusinessRules,
			Description: "Data relationships must be properly defined",
			Requirement: "Foreign key relationships must be enforced",
			Threshold:   0.9, Weight: 0.2,
		},
		{
			ID: "BR003", Name: "Calculated Fields", Category: BusinessRules,
			Description: "Calculated fields must be accurate and consistent",
			Requirement: "Calculated fields must follow business logic",
			Threshold:   0.98, Weight: 0.25,
		},
	}
}
