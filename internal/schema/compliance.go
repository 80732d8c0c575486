package schema

import (
	"fmt"
	"math"

	"ndmo-quality/internal/standards"
)

// Measure derives standard scores from the structure of a model alone.
func Measure(m *Model) map[string]float64 {
	n := len(m.Columns)
	var keyed, required, typedAndConstrained int
	for _, c := range m.Columns {
		if c.PrimaryKey || c.Unique {
			keyed++
		}
		if c.Constraints.Required {
			required++
		}
		if c.Type != "" && c.Type != TypeUnknown && !c.Constraints.IsEmpty() {
			typedAndConstrained++
		}
	}

	scores := map[string]float64{"DG001": 0, "DQ001": 0, "DQ005": 0}
	if keyed > 0 {
		scores["DG001"] = 1
	}
	scores["DQ001"] = math.Min(1, float64(required)/math.Max(0.3*float64(n), 1))
	if n > 0 {
		scores["DQ005"] = float64(typedAndConstrained) / float64(n)
	}

	if len(m.BusinessRules) == 0 {
		scores["BR001"] = 0.5
	} else {
		implemented := 0
		for _, r := range m.BusinessRules {
			if r.Implemented {
				implemented++
			}
		}
		scores["BR001"] = float64(implemented) / float64(len(m.BusinessRules))
	}
	return scores
}

// Assess scores a model against the catalog.
func Assess(c *standards.Catalog, m *Model) *standards.Result {
	return c.Score(Measure(m))
}

// Recommend lists schema improvements, starting with the compliance
// recommendations when the model is not compliant.
func Recommend(m *Model, r *standards.Result) []string {
	recs := []string{}
	if r != nil && r.Status != standards.Compliant {
		recs = append(recs, r.Recommendations...)
	}
	if !m.HasPrimaryKey() {
		recs = append(recs, "Add a primary key column to ensure data uniqueness")
	}

	var unknown, unconstrained int
	for _, c := range m.Columns {
		if c.Type == TypeUnknown {
			unknown++
		}
		if c.Constraints.IsEmpty() {
			unconstrained++
		}
	}
	if unknown > 0 {
		recs = append(recs, fmt.Sprintf("Define data types for %d columns with unknown types", unknown))
	}
	if unconstrained > 0 {
		recs = append(recs, fmt.Sprintf("Add constraints for %d columns without constraints", unconstrained))
	}
	return recs
}
