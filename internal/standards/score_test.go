package standards_test

import (
	"testing"

	"ndmo-quality/internal/standards"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_Lookups(t *testing.T) {
	c := standards.NewCatalog()

	dg, ok := c.Lookup("DG001")
	require.True(t, ok)
	assert.Equal(t, "Unique Identifiers", dg.Name)
	assert.Equal(t, 0.2, dg.Weight)
	assert.True(t, dg.Critical)

	_, ok = c.Lookup("XX999")
	assert.False(t, ok)

	gov := c.ByCategory(standards.Governance)
	require.Len(t, gov, 3)
	assert.Equal(t, []string{"DG001", "DG002", "DG003"}, []string{gov[0].ID, gov[1].ID, gov[2].ID})

	var critical []string
	for _, s := range c.Critical() {
		critical = append(critical, s.ID)
	}
	assert.Equal(t, []string{"DG001", "DQ001", "DQ002", "DS001"}, critical)
	assert.Len(t, c.All(), 18)
	assert.Len(t, c.Categories(), 5)
}

func TestCatalog_AllReturnsCopy(t *testing.T) {
	c := standards.NewCatalog()
	all := c.All()
	all[0].Weight = 99

	dg, _ := c.Lookup("DG001")
	assert.Equal(t, 0.2, dg.Weight)
}

func TestScore_SingleMeasuredStandardNormalises(t *testing.T) {
	res := standards.NewCatalog().Score(map[string]float64{"DG001": 1.0})

	assert.InDelta(t, 1.0, res.OverallScore, 1e-9)
	assert.Equal(t, standards.Compliant, res.Status)
	assert.Empty(t, res.CriticalFailures)
	assert.Empty(t, res.Recommendations)
	// DG001 is 0.2 of the 0.45 governance weight.
	assert.InDelta(t, 0.2/0.45, res.CategoryScores[standards.Governance], 1e-9)
}

func TestScore_CriticalFailureForcesNonCompliant(t *testing.T) {
	res := standards.NewCatalog().Score(map[string]float64{
		"DG001": 0.99,
		"DG002": 1.0,
		"DG003": 1.0,
		"DQ003": 1.0,
		"DA001": 1.0,
	})

	assert.Greater(t, res.OverallScore, 0.95)
	assert.Equal(t, standards.NonCompliant, res.Status)
	assert.Equal(t, []string{"DG001"}, res.CriticalFailures)
	require.Len(t, res.Recommendations, 1)
	assert.Contains(t, res.Recommendations[0], "Improve Unique Identifiers: Current score 99.0%, required 100.0%.")
}

func TestScore_StatusBands(t *testing.T) {
	c := standards.NewCatalog()

	tests := []struct {
		score float64
		want  standards.Status
	}{
		{0.96, standards.Compliant},
		{0.97, standards.Compliant},
		{0.85, standards.PartiallyCompliant},
		{0.81, standards.PartiallyCompliant},
		{0.5, standards.NonCompliant},
	}
	for _, tt := range tests {
		res := c.Score(map[string]float64{"DG002": tt.score})
		assert.Equal(t, tt.want, res.Status, "score %v", tt.score)
	}
}

func TestScore_UnknownIdsIgnored(t *testing.T) {
	res := standards.NewCatalog().Score(map[string]float64{"NOPE": 0.1})

	assert.Equal(t, 0.0, res.OverallScore)
	assert.Equal(t, standards.NonCompliant, res.Status)
	assert.Empty(t, res.Recommendations)
	for cat, score := range res.CategoryScores {
		assert.Equal(t, 0.0, score, "category %s", cat)
	}
}

func TestScore_UnmeasuredCategoryIsZero(t *testing.T) {
	res := standards.NewCatalog().Score(map[string]float64{"DQ001": 1, "DQ005": 1})

	assert.Equal(t, 0.0, res.CategoryScores[standards.Security])
	assert.Equal(t, 0.0, res.CategoryScores[standards.BusinessRules])
	assert.InDelta(t, 0.4/1.0, res.CategoryScores[standards.Quality], 1e-9)
}

func TestScore_OverallWithinUnitInterval(t *testing.T) {
	c := standards.NewCatalog()
	measured := map[string]float64{}
	for i, s := range c.All() {
		measured[s.ID] = float64(i%5) / 4
	}

	res := c.Score(measured)
	assert.GreaterOrEqual(t, res.OverallScore, 0.0)
	assert.LessOrEqual(t, res.OverallScore, 1.0)
	if len(res.CriticalFailures) > 0 {
		assert.Equal(t, standards.NonCompliant, res.Status)
	}
}
