package dialect

import (
	"fmt"
	"strings"
)

type OracleDialect struct{}

// Oracle stores unquoted identifiers upper case and treats '' as NULL, so an
// empty schema binds to the current user.
func (d *OracleDialect) ColumnsQuery() string {
	return `
SELECT
    t.TABLE_NAME,
    t.COLUMN_NAME,
    CASE
        WHEN t.DATA_TYPE = 'NUMBER' AND COALESCE(t.DATA_SCALE, 0) > 0 THEN 'DECIMAL'
        WHEN t.DATA_TYPE = 'NUMBER' THEN 'INTEGER'
        ELSE t.DATA_TYPE
    END AS DATA_TYPE,
    CASE t.NULLABLE WHEN 'Y' THEN 'YES' ELSE 'NO' END AS IS_NULLABLE,
    t.CHAR_LENGTH AS CHARACTER_MAXIMUM_LENGTH,
    CASE
        WHEN p.CONSTRAINT_NAME IS NOT NULL THEN 'PRI'
        WHEN u.CONSTRAINT_NAME IS NOT NULL THEN 'UNI'
        ELSE ''
    END AS COLUMN_KEY,
    c.COMMENTS AS COLUMN_COMMENT
FROM ALL_TAB_COLUMNS t
LEFT JOIN (
    SELECT cc.OWNER, cc.TABLE_NAME, cc.COLUMN_NAME, MIN(cc.CONSTRAINT_NAME) AS CONSTRAINT_NAME
    FROM ALL_CONS_COLUMNS cc
    JOIN ALL_CONSTRAINTS ac ON cc.OWNER = ac.OWNER AND cc.CONSTRAINT_NAME = ac.CONSTRAINT_NAME
    WHERE ac.CONSTRAINT_TYPE = 'P'
    GROUP BY cc.OWNER, cc.TABLE_NAME, cc.COLUMN_NAME
) p ON t.OWNER = p.OWNER AND t.TABLE_NAME = p.TABLE_NAME AND t.COLUMN_NAME = p.COLUMN_NAME
LEFT JOIN (
    SELECT cc.OWNER, cc.TABLE_NAME, cc.COLUMN_NAME, MIN(cc.CONSTRAINT_NAME) AS CONSTRAINT_NAME
    FROM ALL_CONS_COLUMNS cc
    JOIN ALL_CONSTRAINTS ac ON cc.OWNER = ac.OWNER AND cc.CONSTRAINT_NAME = ac.CONSTRAINT_NAME
    WHERE ac.CONSTRAINT_TYPE = 'U'
    GROUP BY cc.OWNER, cc.TABLE_NAME, cc.COLUMN_NAME
) u ON t.OWNER = u.OWNER AND t.TABLE_NAME = u.TABLE_NAME AND t.COLUMN_NAME = u.COLUMN_NAME
LEFT JOIN ALL_COL_COMMENTS c
    ON t.OWNER = c.OWNER AND t.TABLE_NAME = c.TABLE_NAME AND t.COLUMN_NAME = c.COLUMN_NAME
WHERE t.OWNER = COALESCE(UPPER(:1), USER) AND t.TABLE_NAME = UPPER(:2)
ORDER BY t.COLUMN_ID`
}

func (d *OracleDialect) SampleQuery(table string, limit int) string {
	return fmt.Sprintf("SELECT * FROM %s WHERE ROWNUM <= %d", table, limit)
}

func (d *OracleDialect) NormalizeType(sqlType string) string {
	s := DefaultNormalizeType(sqlType)
	switch {
	case strings.Contains(s, "char") || strings.Contains(s, "clob"):
		return "varchar"
	case strings.Contains(s, "int") || s == "number":
		return "integer"
	case strings.Contains(s, "decimal") || strings.Contains(s, "float"):
		return "decimal"
	case strings.Contains(s, "date") || strings.Contains(s, "time"):
		return "datetime"
	}
	return s
}

func (d *OracleDialect) GetSchemaName(input string) string {
	return strings.ToUpper(input)
}
