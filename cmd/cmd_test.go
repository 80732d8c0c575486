package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command and decodes the JSON envelope it prints.
func execute(t *testing.T, args ...string) map[string]any {
	t.Helper()
	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(io.Discard)
	RootCmd.SetArgs(append(args, "--format", "json", "--log-level", "error"))
	require.NoError(t, RootCmd.Execute())

	var env map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &env), out.String())
	assert.NotEmpty(t, env["run_id"])
	assert.NotEmpty(t, env["generated_at"])
	return env
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestStandardsCommand(t *testing.T) {
	env := execute(t, "standards")
	assert.Equal(t, "standards", env["command"])

	listing, ok := env["result"].([]any)
	require.True(t, ok)
	require.Len(t, listing, 5)
	assert.Equal(t, "Data Governance", listing[0].(map[string]any)["category"])
}

func TestAnalyzeOrdersByDependency(t *testing.T) {
	dir := t.TempDir()
	orders := writeFile(t, dir, "orders.csv", "order_id,customer_id,amount\n1,1,10.5\n2,1,20\n3,2,7\n")
	customer := writeFile(t, dir, "customer.csv", "id,name\n1,Ann\n2,Bo\n")

	env := execute(t, "analyze", orders, customer)
	results, ok := env["result"].([]any)
	require.True(t, ok)
	require.Len(t, results, 2)

	first := results[0].(map[string]any)["model"].(map[string]any)
	second := results[1].(map[string]any)["model"].(map[string]any)
	assert.Equal(t, "customer", first["table_name"])
	assert.Equal(t, "orders", second["table_name"])

	compliance := results[0].(map[string]any)["compliance"].(map[string]any)
	assert.Contains(t, compliance, "overall_score")
}

func TestSchemaCommands(t *testing.T) {
	path := writeFile(t, t.TempDir(), "customers.csv",
		"table_name,column_name,data_type,is_nullable\ncustomers,customer_id,int,NO\ncustomers,email,varchar,YES\n")

	diag := execute(t, "diagnose", path)["result"].(map[string]any)
	assert.Equal(t, "customers", diag["table"])
	assert.NotEmpty(t, diag["report"].(map[string]any)["critical_problems"])

	tr := execute(t, "transform", path)["result"].(map[string]any)
	orig := tr["original"].(map[string]any)["columns"].([]any)
	comp := tr["compliant"].(map[string]any)["columns"].([]any)
	assert.Len(t, orig, 2)
	assert.Greater(t, len(comp), len(orig))

	corr := execute(t, "correct", path)["result"].(map[string]any)
	assert.Contains(t, corr, "corrections")
}

func TestProcessCommand(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, dir, "people.csv", "id,name,age\n1,ann,30\n2,,\n3,bo,41\n")
	def := writeFile(t, dir, "people_schema.csv",
		"table_name,column_name,data_type,is_nullable,column_key\npeople,id,int,NO,PRI\npeople,name,varchar,YES,\npeople,age,int,YES,\n")
	out := filepath.Join(dir, "clean.csv")

	env := execute(t, "process", data, "--schema", def, "--compliant=false", "--out", out)
	res := env["result"].(map[string]any)
	assert.Equal(t, 3.0, res["processed_data"].(map[string]any)["rows"])
	assert.Equal(t, "compliant", res["schema_compliance"].(map[string]any)["status"])

	written, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(written)), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "id,name,age", lines[0])
}

func TestGenerateCommand(t *testing.T) {
	dir := t.TempDir()
	def := writeFile(t, dir, "items.csv",
		"table_name,column_name,data_type,is_nullable,column_key\nitems,item_id,int,NO,PRI\nitems,title,varchar,YES,\n")
	out := filepath.Join(dir, "items_data.csv")

	env := execute(t, "generate", def, "--rows", "5", "--seed", "3", "--null-rate", "0", "--out", out)
	res := env["result"].(map[string]any)
	assert.Equal(t, 5.0, res["rows"])
	assert.Equal(t, []any{"item_id", "title"}, res["columns"])

	written, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(string(written)), "\n"), 6)
}

func TestGetActiveDBConfig(t *testing.T) {
	_, err := GetActiveDBConfig()
	assert.ErrorContains(t, err, "no active database")
}
