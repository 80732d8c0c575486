// Package output encodes command results for stdout.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Format names an encoding accepted by Write.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// ParseFormat accepts json, yaml and yml, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	}
	return "", fmt.Errorf("unsupported output format %q (want json or yaml)", s)
}

// Envelope wraps every command result.
type Envelope struct {
	RunID       string    `json:"run_id" yaml:"run_id"`
	Command     string    `json:"command" yaml:"command"`
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`
	Result      any       `json:"result" yaml:"result"`
}

// NewEnvelope stamps result with a fresh run id and the current UTC time.
func NewEnvelope(command string, result any) *Envelope {
	return &Envelope{
		RunID:       uuid.NewString(),
		Command:     command,
		GeneratedAt: time.Now().UTC(),
		Result:      result,
	}
}

// Write encodes v to w. JSON output is indented.
func Write(w io.Writer, format Format, v any) error {
	switch format {
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case JSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	}
	return fmt.Errorf("unsupported output format %q", format)
}
