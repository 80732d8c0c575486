package source

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ndmo-quality/internal/dialect"
	"ndmo-quality/internal/schema"
)

type fakeRows struct {
	data [][]any
	pos  int
	err  error
}

func (f *fakeRows) Next() bool {
	if f.pos >= len(f.data) {
		return false
	}
	f.pos++
	return true
}

func (f *fakeRows) Scan(dest ...any) error {
	row := f.data[f.pos-1]
	for i, d := range dest {
		switch p := d.(type) {
		case sql.Scanner:
			if err := p.Scan(row[i]); err != nil {
				return err
			}
		case *any:
			*p = row[i]
		}
	}
	return nil
}

func (f *fakeRows) Err() error { return f.err }

func TestReadDefinition(t *testing.T) {
	rs := &fakeRows{data: [][]any{
		{"orders", "order_id", "INT4", "NO", nil, "PRI", nil},
		{"orders", "customer_id", "int8", "YES", nil, "", "buyer reference"},
		{"orders", "status", "varchar", "YES", int64(20), "UNI", nil},
	}}

	tbl, err := readDefinition(rs, &dialect.PostgresDialect{}, "orders")
	require.NoError(t, err)
	assert.Equal(t, DefinitionHeaders, tbl.Headers)
	assert.Equal(t, []any{"orders", "order_id", "int", "NO", nil, "PRI", nil}, tbl.Rows[0])
	assert.Equal(t, int64(20), tbl.Rows[2][4])

	m, err := schema.Infer(tbl)
	require.NoError(t, err)
	assert.Equal(t, schema.ShapeDefinition, m.Shape)
	assert.Equal(t, "orders", m.TableName)

	id := m.Column("order_id")
	require.NotNil(t, id)
	assert.True(t, id.PrimaryKey)
	assert.Equal(t, schema.TypeNumeric, id.Type)

	cust := m.Column("customer_id")
	require.NotNil(t, cust)
	assert.True(t, cust.ForeignKey)
	assert.Equal(t, "buyer reference", cust.Description)

	status := m.Column("status")
	require.NotNil(t, status)
	assert.True(t, status.Unique)
	require.NotNil(t, status.Constraints.MaxLength)
	assert.Equal(t, 20, *status.Constraints.MaxLength)
}

func TestReadDefinition_NotFound(t *testing.T) {
	_, err := readDefinition(&fakeRows{}, &dialect.MysqlDialect{}, "ghost")
	assert.ErrorIs(t, err, ErrTableNotFound)
}

func TestReadDefinition_RowsError(t *testing.T) {
	boom := errors.New("connection reset")
	_, err := readDefinition(&fakeRows{err: boom}, &dialect.MysqlDialect{}, "orders")
	assert.ErrorIs(t, err, boom)
}

func TestReadRows(t *testing.T) {
	rs := &fakeRows{data: [][]any{
		{int64(1), []byte("Ann")},
		{int64(2), nil},
	}}

	tbl, err := readRows(rs, "people", []string{"id", "name"})
	require.NoError(t, err)
	assert.Equal(t, [][]any{{int64(1), "Ann"}, {int64(2), nil}}, tbl.Rows)

	m, err := schema.Infer(tbl)
	require.NoError(t, err)
	assert.Equal(t, schema.ShapeSampled, m.Shape)
	assert.Equal(t, schema.TypeNumeric, m.Column("id").Type)
}

func TestIdentifierValidation(t *testing.T) {
	assert.True(t, identifierRe.MatchString("orders"))
	assert.True(t, identifierRe.MatchString("sales.orders"))
	assert.False(t, identifierRe.MatchString("orders; DROP TABLE x"))
	assert.False(t, identifierRe.MatchString(""))
}
