package dialect

import (
	"fmt"
	"strings"
)

type PostgresDialect struct{}

func (d *PostgresDialect) ColumnsQuery() string {
	// udt_name carries the short type (int4, varchar); NormalizeType maps it.
	return `SELECT
    c.table_name,
    c.column_name,
    c.udt_name,
    c.is_nullable,
    c.character_maximum_length,
    COALESCE((SELECT CASE tc.constraint_type WHEN 'PRIMARY KEY' THEN 'PRI' ELSE 'UNI' END
     FROM information_schema.table_constraints tc
     JOIN information_schema.key_column_usage kcu
       ON tc.constraint_name = kcu.constraint_name AND tc.table_schema = kcu.table_schema
     WHERE tc.constraint_type IN ('PRIMARY KEY', 'UNIQUE')
       AND kcu.table_schema = c.table_schema AND kcu.table_name = c.table_name AND kcu.column_name = c.column_name
     ORDER BY tc.constraint_type LIMIT 1), '') AS column_key,
    col_description(format('%I.%I', c.table_schema, c.table_name)::regclass::oid, c.ordinal_position) AS column_comment
FROM information_schema.columns c
WHERE c.table_schema = $1 AND c.table_name = $2
ORDER BY c.ordinal_position`
}

func (d *PostgresDialect) SampleQuery(table string, limit int) string {
	return fmt.Sprintf("SELECT * FROM %s LIMIT %d", table, limit)
}

func (d *PostgresDialect) NormalizeType(sqlType string) string {
	t := DefaultNormalizeType(sqlType)
	switch t {
	case "int4", "int2":
		return "int"
	case "int8":
		return "bigint"
	case "float4":
		return "float"
	case "float8":
		return "double"
	case "bpchar":
		return "char"
	case "bool":
		return "boolean"
	case "timestamptz":
		return "timestamp"
	default:
		return strings.TrimPrefix(t, "_")
	}
}

func (d *PostgresDialect) GetSchemaName(input string) string {
	if input == "" {
		return "public"
	}
	return input
}
