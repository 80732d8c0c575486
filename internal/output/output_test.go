package output_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"ndmo-quality/internal/output"
)

type payload struct {
	Score float64  `json:"score" yaml:"score"`
	Tags  []string `json:"tags" yaml:"tags"`
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]output.Format{"": output.JSON, "JSON": output.JSON, "yaml": output.YAML, "yml": output.YAML} {
		got, err := output.ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := output.ParseFormat("xml")
	assert.Error(t, err)
}

func TestNewEnvelope(t *testing.T) {
	env := output.NewEnvelope("analyze", payload{Score: 0.5})

	_, err := uuid.Parse(env.RunID)
	assert.NoError(t, err)
	assert.Equal(t, "analyze", env.Command)
	assert.False(t, env.GeneratedAt.IsZero())
	assert.NotEqual(t, env.RunID, output.NewEnvelope("analyze", nil).RunID)
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	env := output.NewEnvelope("standards", payload{Score: 0.75, Tags: []string{"DG"}})
	require.NoError(t, output.Write(&buf, output.JSON, env))

	var back map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, "standards", back["command"])
	assert.Equal(t, env.RunID, back["run_id"])
	assert.Equal(t, map[string]any{"score": 0.75, "tags": []any{"DG"}}, back["result"])
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, output.Write(&buf, output.YAML, payload{Score: 1, Tags: []string{"a", "b"}}))

	var back payload
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, payload{Score: 1, Tags: []string{"a", "b"}}, back)
}

func TestWriteUnknownFormat(t *testing.T) {
	assert.Error(t, output.Write(&bytes.Buffer{}, output.Format("toml"), 1))
}
