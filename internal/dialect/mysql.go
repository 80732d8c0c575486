package dialect

import "fmt"

type MysqlDialect struct{}

// An empty schema falls back to the connection's current database.
func (d *MysqlDialect) ColumnsQuery() string {
	return `SELECT TABLE_NAME, COLUMN_NAME, DATA_TYPE, IS_NULLABLE, CHARACTER_MAXIMUM_LENGTH,
    CASE COLUMN_KEY WHEN 'PRI' THEN 'PRI' WHEN 'UNI' THEN 'UNI' ELSE '' END AS COLUMN_KEY,
    COLUMN_COMMENT
FROM information_schema.COLUMNS
WHERE TABLE_SCHEMA = COALESCE(NULLIF(?, ''), DATABASE()) AND TABLE_NAME = ?
ORDER BY ORDINAL_POSITION`
}

func (d *MysqlDialect) SampleQuery(table string, limit int) string {
	return fmt.Sprintf("SELECT * FROM %s LIMIT %d", table, limit)
}

func (d *MysqlDialect) NormalizeType(sqlType string) string {
	return DefaultNormalizeType(sqlType)
}

func (d *MysqlDialect) GetSchemaName(input string) string {
	return DefaultGetSchemaName(input)
}
