package source_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ndmo-quality/internal/schema"
	"ndmo-quality/internal/source"
)

func TestReadCSV(t *testing.T) {
	in := "\ufeffid,name,email\n1,Ann,ann@example.com\n2,,\n3,Bo\n"

	tbl, err := source.ReadCSV(strings.NewReader(in), "people")
	require.NoError(t, err)

	assert.Equal(t, "people", tbl.Name)
	assert.Equal(t, []string{"id", "name", "email"}, tbl.Headers)
	require.Len(t, tbl.Rows, 3)
	assert.Equal(t, []any{"1", "Ann", "ann@example.com"}, tbl.Rows[0])
	assert.Equal(t, []any{"2", nil, nil}, tbl.Rows[1])
	assert.Equal(t, []any{"3", "Bo"}, tbl.Rows[2])
}

func TestReadCSV_Empty(t *testing.T) {
	tbl, err := source.ReadCSV(strings.NewReader(""), "empty")
	require.NoError(t, err)
	assert.Empty(t, tbl.Headers)

	_, err = schema.Infer(tbl)
	assert.ErrorIs(t, err, schema.ErrEmptyTable)
}

func TestLoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "customers.csv")
	require.NoError(t, os.WriteFile(path, []byte("column_name,data_type\nid,int\n"), 0o644))

	tbl, err := source.LoadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, "customers", tbl.Name)
	assert.Equal(t, schema.ShapeDefinition, schema.DetectShape(tbl))

	_, err = source.LoadCSV(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestWriteCSV(t *testing.T) {
	tbl := &schema.Table{
		Headers: []string{"id", "seen", "ratio", "note"},
		Rows: [][]any{
			{1.0, time.Date(2024, 3, 4, 5, 6, 7, 0, time.UTC), 1.5, "a,b"},
			{2.0, nil, nil},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, source.WriteCSV(&buf, tbl))
	assert.Equal(t, "id,seen,ratio,note\n1,2024-03-04 05:06:07,1.5,\"a,b\"\n2,,,\n", buf.String())
}

func TestSaveCSVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	tbl := &schema.Table{Headers: []string{"code", "flag"}, Rows: [][]any{{"x", true}, {"y", false}}}

	require.NoError(t, source.SaveCSV(path, tbl))
	back, err := source.LoadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, "out", back.Name)
	assert.Equal(t, [][]any{{"x", "true"}, {"y", "false"}}, back.Rows)
}
