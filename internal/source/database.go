package source

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"regexp"

	"ndmo-quality/internal/dialect"
	"ndmo-quality/internal/schema"
)

// ErrTableNotFound is returned when the columns query yields no rows.
var ErrTableNotFound = errors.New("table not found")

// DefinitionHeaders are the headers of a table returned by Introspect.
var DefinitionHeaders = []string{
	"TABLE_NAME", "COLUMN_NAME", "DATA_TYPE", "IS_NULLABLE",
	"CHARACTER_MAXIMUM_LENGTH", "COLUMN_KEY", "COLUMN_COMMENT",
}

// Table names are interpolated into sample queries, so only plain and
// schema-qualified identifiers are accepted.
var identifierRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_$#]*(\.[A-Za-z_][A-Za-z0-9_$#]*)?$`)

// rows is the subset of *sql.Rows read here.
type rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

// Introspect reads the column definitions of one table into a definition
// shape table.
func Introspect(ctx context.Context, db *sql.DB, d dialect.Dialect, schemaName, table string) (*schema.Table, error) {
	if !identifierRe.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	owner := d.GetSchemaName(schemaName)
	slog.Debug("introspecting table", "schema", owner, "table", table)

	rs, err := db.QueryContext(ctx, d.ColumnsQuery(), owner, table)
	if err != nil {
		return nil, fmt.Errorf("query columns of %s: %w", table, err)
	}
	defer rs.Close()

	return readDefinition(rs, d, table)
}

func readDefinition(rs rows, d dialect.Dialect, table string) (*schema.Table, error) {
	t := &schema.Table{Name: table, Headers: DefinitionHeaders}
	for rs.Next() {
		var (
			tableName, colName, dataType, nullable, key, comment sql.NullString
			maxLen                                               sql.NullInt64
		)
		if err := rs.Scan(&tableName, &colName, &dataType, &nullable, &maxLen, &key, &comment); err != nil {
			return nil, fmt.Errorf("scan column of %s: %w", table, err)
		}

		var length any
		if maxLen.Valid {
			length = maxLen.Int64
		}
		var typ any
		if dataType.Valid {
			typ = d.NormalizeType(dataType.String)
		}
		t.Rows = append(t.Rows, []any{
			nullString(tableName), nullString(colName), typ, nullString(nullable),
			length, nullString(key), nullString(comment),
		})
	}
	if err := rs.Err(); err != nil {
		return nil, fmt.Errorf("read columns of %s: %w", table, err)
	}
	if len(t.Rows) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, table)
	}
	return t, nil
}

// SampleRows reads up to limit rows of table as a sampled shape table.
func SampleRows(ctx context.Context, db *sql.DB, d dialect.Dialect, table string, limit int) (*schema.Table, error) {
	if !identifierRe.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	rs, err := db.QueryContext(ctx, d.SampleQuery(table, limit))
	if err != nil {
		return nil, fmt.Errorf("query rows of %s: %w", table, err)
	}
	defer rs.Close()

	cols, err := rs.Columns()
	if err != nil {
		return nil, err
	}
	return readRows(rs, table, cols)
}

func readRows(rs rows, table string, cols []string) (*schema.Table, error) {
	t := &schema.Table{Name: table, Headers: cols}
	for rs.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rs.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan row of %s: %w", table, err)
		}
		for i, v := range values {
			// Drivers return text columns as []byte
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		t.Rows = append(t.Rows, values)
	}
	if err := rs.Err(); err != nil {
		return nil, fmt.Errorf("read rows of %s: %w", table, err)
	}
	return t, nil
}

func nullString(s sql.NullString) any {
	if !s.Valid {
		return nil
	}
	return s.String
}
