package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ndmo-quality/internal/schema"
	"ndmo-quality/internal/standards"
)

func TestMeasure(t *testing.T) {
	m := &schema.Model{
		TableName: "t",
		Columns: []schema.Column{
			{Name: "id", Type: schema.TypeNumeric, PrimaryKey: true, Constraints: schema.Constraints{Required: true}},
			{Name: "name", Type: schema.TypeText},
			{Name: "kind", Type: schema.TypeUnknown, Constraints: schema.Constraints{Format: "x"}},
			{Name: "note", Type: schema.TypeText, Constraints: schema.Constraints{MaxLength: schema.Int(10)}},
		},
		BusinessRules: []schema.BusinessRule{
			{Name: "a", Implemented: true},
			{Name: "b"},
		},
	}

	scores := schema.Measure(m)
	assert.Equal(t, 1.0, scores["DG001"])
	assert.InDelta(t, 1/1.2, scores["DQ001"], 1e-9)
	assert.Equal(t, 0.5, scores["DQ005"])
	assert.Equal(t, 0.5, scores["BR001"])
}

func TestMeasure_NoRulesNoKeys(t *testing.T) {
	m := &schema.Model{Columns: []schema.Column{{Name: "a", Type: schema.TypeText}}}

	scores := schema.Measure(m)
	assert.Equal(t, 0.0, scores["DG001"])
	assert.Equal(t, 0.0, scores["DQ001"])
	assert.Equal(t, 0.5, scores["BR001"])
}

func TestAssessAndRecommend(t *testing.T) {
	catalog := standards.NewCatalog()
	m, err := schema.Infer(&schema.Table{
		Name:    "people",
		Headers: []string{"FullName", "blank"},
		Rows:    [][]any{{"Ann", nil}, {"Ann", nil}},
	})
	require.NoError(t, err)

	res := schema.Assess(catalog, m)
	assert.Equal(t, standards.NonCompliant, res.Status)
	assert.Contains(t, res.CriticalFailures, "DG001")

	recs := schema.Recommend(m, res)
	assert.Subset(t, recs, res.Recommendations)
	assert.Contains(t, recs, "Add a primary key column to ensure data uniqueness")
	assert.Contains(t, recs, "Add constraints for 1 columns without constraints")
}
