package dialect_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"ndmo-quality/internal/dialect"
)

func TestGetDialect(t *testing.T) {
	tests := []struct {
		driver string
		want   dialect.Dialect
	}{
		{"mysql", &dialect.MysqlDialect{}},
		{"postgres", &dialect.PostgresDialect{}},
		{"sqlserver", &dialect.MSSQLDialect{}},
		{"mssql", &dialect.MSSQLDialect{}},
		{"oracle", &dialect.OracleDialect{}},
		{"", &dialect.MysqlDialect{}},
	}
	for _, tt := range tests {
		assert.IsType(t, tt.want, dialect.GetDialect(tt.driver), tt.driver)
	}
}

func TestColumnsQueryBindsSchemaAndTable(t *testing.T) {
	tests := []struct {
		driver string
		binds  []string
	}{
		{"mysql", []string{"?"}},
		{"postgres", []string{"$1", "$2"}},
		{"sqlserver", []string{"@p1", "@p2"}},
		{"oracle", []string{":1", ":2"}},
	}
	for _, tt := range tests {
		q := dialect.GetDialect(tt.driver).ColumnsQuery()
		for _, b := range tt.binds {
			assert.Contains(t, q, b, tt.driver)
		}
		upper := strings.ToUpper(q)
		assert.Contains(t, upper, "COLUMN_KEY", tt.driver)
	}
	assert.Equal(t, 2, strings.Count(dialect.GetDialect("mysql").ColumnsQuery(), "?"))
}

func TestSampleQuery(t *testing.T) {
	assert.Equal(t, "SELECT * FROM orders LIMIT 10", dialect.GetDialect("mysql").SampleQuery("orders", 10))
	assert.Equal(t, "SELECT * FROM orders LIMIT 10", dialect.GetDialect("postgres").SampleQuery("orders", 10))
	assert.Equal(t, "SELECT TOP 10 * FROM orders", dialect.GetDialect("mssql").SampleQuery("orders", 10))
	assert.Equal(t, "SELECT * FROM orders WHERE ROWNUM <= 10", dialect.GetDialect("oracle").SampleQuery("orders", 10))
}

func TestNormalizeType(t *testing.T) {
	tests := []struct {
		driver, in, want string
	}{
		{"mysql", " VARCHAR ", "varchar"},
		{"postgres", "int4", "int"},
		{"postgres", "bool", "boolean"},
		{"postgres", "timestamptz", "timestamp"},
		{"postgres", "_text", "text"},
		{"mssql", "nvarchar", "varchar"},
		{"mssql", "bit", "boolean"},
		{"mssql", "datetime2", "datetime"},
		{"oracle", "VARCHAR2", "varchar"},
		{"oracle", "NUMBER", "integer"},
		{"oracle", "DECIMAL", "decimal"},
		{"oracle", "TIMESTAMP(6)", "datetime"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, dialect.GetDialect(tt.driver).NormalizeType(tt.in), tt.driver+" "+tt.in)
	}
}

func TestGetSchemaName(t *testing.T) {
	assert.Equal(t, "public", dialect.GetDialect("postgres").GetSchemaName(""))
	assert.Equal(t, "dbo", dialect.GetDialect("mssql").GetSchemaName(""))
	assert.Equal(t, "HR", dialect.GetDialect("oracle").GetSchemaName("hr"))
	assert.Equal(t, "", dialect.GetDialect("mysql").GetSchemaName(""))
}
