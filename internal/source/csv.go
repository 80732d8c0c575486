// Package source loads generic tables from CSV files and live databases.
package source

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ndmo-quality/internal/schema"
)

const (
	utf8BOM    = "\ufeff"
	timeLayout = "2006-01-02 15:04:05"
)

// ReadCSV parses CSV from r into a table. The first record is the header;
// empty cells become missing values. Rows may be shorter than the header.
func ReadCSV(r io.Reader, name string) (*schema.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv %s: %w", name, err)
	}

	t := &schema.Table{Name: name}
	if len(records) == 0 {
		return t, nil
	}

	t.Headers = records[0]
	if len(t.Headers) > 0 {
		t.Headers[0] = strings.TrimPrefix(t.Headers[0], utf8BOM)
	}
	t.Rows = make([][]any, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make([]any, len(rec))
		for i, cell := range rec {
			if cell != "" {
				row[i] = cell
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// LoadCSV reads a CSV file into a table named after the file stem.
func LoadCSV(path string) (*schema.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	t, err := ReadCSV(f, name)
	if err != nil {
		return nil, err
	}
	slog.Debug("loaded csv", "path", path, "columns", len(t.Headers), "rows", len(t.Rows))
	return t, nil
}

// WriteCSV writes the header and rows of t. Missing cells are written empty
// and timestamps as "2006-01-02 15:04:05".
func WriteCSV(w io.Writer, t *schema.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Headers); err != nil {
		return err
	}
	record := make([]string, len(t.Headers))
	for _, row := range t.Rows {
		for i := range record {
			record[i] = ""
			if i < len(row) {
				record[i] = formatCell(row[i])
			}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveCSV writes t to path, replacing any existing file.
func SaveCSV(path string, t *schema.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteCSV(f, t); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	slog.Debug("saved csv", "path", path, "rows", len(t.Rows))
	return nil
}

func formatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case time.Time:
		return x.Format(timeLayout)
	}
	if schema.IsMissing(v) {
		return ""
	}
	return schema.ValueKey(v)
}
