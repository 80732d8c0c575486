package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ndmo-quality/internal/engine"
	"ndmo-quality/internal/schema"
	"ndmo-quality/internal/transform"
)

func customerModel() *schema.Model {
	return &schema.Model{
		TableName: "customers",
		Columns: []schema.Column{
			{Name: "customer_id", Type: schema.TypeNumeric, PrimaryKey: true, Unique: true,
				Constraints: schema.Constraints{Required: true, MinValue: schema.Float(1), MaxValue: schema.Float(1000)}},
			{Name: "cust_nm", Type: schema.TypeText, Constraints: schema.Constraints{Required: true, MaxLength: schema.Int(10)}},
			{Name: "email", Type: schema.TypeText, Constraints: schema.Constraints{Pattern: schema.EmailPattern, Format: "email"}},
			{Name: "mobile_phone", Type: schema.TypeText},
			{Name: "status", Type: schema.TypeCategorical, Constraints: schema.Constraints{AllowedValues: []any{"new", "vip"}}},
			{Name: "score", Type: schema.TypeNumeric, Constraints: schema.Constraints{MinValue: schema.Float(10), MaxValue: schema.Float(20)}},
			{Name: "is_active", Type: schema.TypeBoolean, Constraints: schema.Constraints{Required: true}},
			{Name: "code", Type: schema.TypeText, Constraints: schema.Constraints{MinLength: schema.Int(4), MaxLength: schema.Int(6)}},
		},
	}
}

func TestGenerate_Shape(t *testing.T) {
	calls := 0
	tbl := engine.NewGenerator(42).Generate(customerModel(), 25, 0, func() { calls++ })

	assert.Equal(t, "customers", tbl.Name)
	assert.Equal(t, customerModel().ColumnNames(), tbl.Headers)
	assert.Len(t, tbl.Rows, 25)
	assert.Equal(t, 25, calls)
	for _, row := range tbl.Rows {
		assert.Len(t, row, len(tbl.Headers))
	}
}

func TestGenerate_RespectsConstraints(t *testing.T) {
	tbl := engine.NewGenerator(7).Generate(customerModel(), 50, 0, nil)

	for r, row := range tbl.Rows {
		assert.Equal(t, r+1, row[0], "sequential primary key")

		name, ok := row[1].(string)
		require.True(t, ok)
		assert.LessOrEqual(t, len([]rune(name)), 10)

		assert.True(t, schema.MatchesEmail(row[2].(string)), row[2])
		assert.True(t, schema.MatchesPhone(row[3].(string)), row[3])
		assert.Contains(t, []any{"new", "vip"}, row[4])

		score, ok := schema.ToNumber(row[5])
		require.True(t, ok)
		assert.GreaterOrEqual(t, score, 10.0)
		assert.LessOrEqual(t, score, 20.0)

		assert.IsType(t, true, row[6])

		code := []rune(row[7].(string))
		assert.GreaterOrEqual(t, len(code), 4)
		assert.LessOrEqual(t, len(code), 6)
	}
}

func TestGenerate_NullRate(t *testing.T) {
	tbl := engine.NewGenerator(1).Generate(customerModel(), 20, 1, nil)

	for _, row := range tbl.Rows {
		assert.NotNil(t, row[0], "key")
		assert.NotNil(t, row[1], "required")
		assert.Nil(t, row[2])
		assert.Nil(t, row[5])
		assert.NotNil(t, row[6], "required")
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	m := customerModel()
	a := engine.NewGenerator(99).Generate(m, 10, 0.2, nil)
	b := engine.NewGenerator(99).Generate(m, 10, 0.2, nil)
	assert.Equal(t, a.Rows, b.Rows)
}

func TestGenerate_KeyRangeLimitsRows(t *testing.T) {
	m := &schema.Model{TableName: "tiny", Columns: []schema.Column{
		{Name: "id", Type: schema.TypeNumeric, PrimaryKey: true,
			Constraints: schema.Constraints{MinValue: schema.Float(1), MaxValue: schema.Float(5)}},
	}}
	tbl := engine.NewGenerator(3).Generate(m, 10, 0, nil)
	assert.Len(t, tbl.Rows, 5)
}

func TestGenerate_UniqueText(t *testing.T) {
	m := &schema.Model{TableName: "flags", Columns: []schema.Column{
		{Name: "flag", Type: schema.TypeText, Unique: true, Constraints: schema.Constraints{MaxLength: schema.Int(1)}},
	}}
	tbl := engine.NewGenerator(5).Generate(m, 40, 0, nil)

	seen := map[string]bool{}
	for _, row := range tbl.Rows {
		k := schema.ValueKey(row[0])
		assert.False(t, seen[k], k)
		seen[k] = true
	}
}

func TestGenerate_DatetimeWindow(t *testing.T) {
	g := engine.NewGenerator(11)
	g.Now = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	m := &schema.Model{Columns: []schema.Column{
		{Name: "created_at", Type: schema.TypeDatetime, Constraints: schema.Constraints{Required: true}},
		{Name: "birth_date", Type: schema.TypeDatetime, Constraints: schema.Constraints{Required: true, Format: "date"}},
	}}

	tbl := g.Generate(m, 10, 0, nil)
	for _, row := range tbl.Rows {
		ts, err := time.Parse("2006-01-02 15:04:05", row[0].(string))
		require.NoError(t, err)
		assert.False(t, ts.After(g.Now))
		assert.False(t, ts.Before(g.Now.AddDate(-1, 0, 0)))

		_, err = time.Parse("2006-01-02", row[1].(string))
		assert.NoError(t, err)
	}
}

func TestGenerate_CompliantModelRoundTrip(t *testing.T) {
	compliant := transform.MakeCompliant(customerModel())
	tbl := engine.NewGenerator(21).Generate(compliant, 30, 0.1, nil)

	m, err := schema.Infer(tbl)
	require.NoError(t, err)
	assert.Equal(t, schema.ShapeSampled, m.Shape)
	assert.Equal(t, compliant.ColumnNames(), m.ColumnNames())
	assert.True(t, m.Column("customer_id").Unique)
}
