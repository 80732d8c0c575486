package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ndmo-quality/internal/schema"
)

func TestMapDatabaseType(t *testing.T) {
	tests := []struct {
		dbType string
		want   schema.Type
	}{
		{"int", schema.TypeNumeric},
		{"BIGINT", schema.TypeNumeric},
		{"smallint", schema.TypeNumeric},
		{"float", schema.TypeNumeric},
		{"double precision", schema.TypeNumeric},
		{"DECIMAL(10,2)", schema.TypeNumeric},
		{"numeric", schema.TypeNumeric},
		{"varchar(50)", schema.TypeText},
		{"char", schema.TypeText},
		{"text", schema.TypeText},
		{"nvarchar", schema.TypeText},
		{"date", schema.TypeDatetime},
		{"time", schema.TypeDatetime},
		{"datetime2", schema.TypeDatetime},
		{"timestamp with time zone", schema.TypeDatetime},
		{"boolean", schema.TypeBoolean},
		{"bit", schema.TypeBoolean},
		{"json", schema.TypeText},
		{"", schema.TypeText},
	}

	for _, tt := range tests {
		t.Run(tt.dbType, func(t *testing.T) {
			assert.Equal(t, tt.want, schema.MapDatabaseType(tt.dbType))
		})
	}
}

func TestInferValueType(t *testing.T) {
	tests := []struct {
		name   string
		values []any
		want   schema.Type
	}{
		{"empty", nil, schema.TypeEmpty},
		{"numeric strings", []any{"1", "2.5", "-3"}, schema.TypeNumeric},
		{"native numbers", []any{1, 2.5, int64(3)}, schema.TypeNumeric},
		{"datetimes", []any{"2024-01-02", "2024-02-03 10:00:00"}, schema.TypeDatetime},
		{"booleans", []any{"yes", "No", "TRUE", "false"}, schema.TypeBoolean},
		{"native bools", []any{true, false, true}, schema.TypeBoolean},
		{"categorical", []any{"red", "red", "red", "blue", "blue"}, schema.TypeCategorical},
		{"phone", []any{"+966 50 123 4567", "050-765-4321"}, schema.TypePhone},
		{"identifier", []any{"ab_x", "cd_y"}, schema.TypeIdentifier},
		{"text", []any{"hello world", "good bye"}, schema.TypeText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, schema.InferValueType(tt.values))
		})
	}
}

func TestIsSnakeCase(t *testing.T) {
	assert.True(t, schema.IsSnakeCase("customer_id"))
	assert.True(t, schema.IsSnakeCase("a1"))
	assert.False(t, schema.IsSnakeCase("CustomerID"))
	assert.False(t, schema.IsSnakeCase("1st_col"))
	assert.False(t, schema.IsSnakeCase("first name"))
}

func TestNameContains(t *testing.T) {
	assert.True(t, schema.NameContains("Customer_ID", schema.ForeignKeyTerms...))
	assert.True(t, schema.NameContains("ref_country", schema.ForeignKeyTerms...))
	assert.False(t, schema.NameContains("identity", schema.ForeignKeyTerms...))
}

func TestAnalyzeMeaning(t *testing.T) {
	assert.Equal(t, "phone", schema.AnalyzeMeaning("x1", "Customer mobile number"))
	assert.Equal(t, "email", schema.AnalyzeMeaning("contact", "E-mail of the owner"))
	assert.Equal(t, "customer name", schema.AnalyzeMeaning("cust_nm", ""))
	assert.Equal(t, "created date", schema.AnalyzeMeaning("CRE_DT", ""))
}
