package dialect

// Dialect abstracts the database-specific SQL used to read table metadata
// and sample rows.
type Dialect interface {
	// ColumnsQuery selects one row per column of a single table, binding the
	// schema name first and the table name second. The result columns are
	// TABLE_NAME, COLUMN_NAME, DATA_TYPE, IS_NULLABLE (YES/NO),
	// CHARACTER_MAXIMUM_LENGTH, COLUMN_KEY (PRI/UNI/'') and COLUMN_COMMENT.
	ColumnsQuery() string

	// SampleQuery selects up to limit full rows of table.
	SampleQuery(table string, limit int) string

	// Helpers
	NormalizeType(sqlType string) string
	GetSchemaName(input string) string
}
