package data

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// Row is one CSV record keyed by column name. Missing cells read as "".
type Row map[string]string

// Get returns a trimmed cell value.
func (r Row) Get(column string) string {
	return strings.TrimSpace(r[column])
}

// Table is an in-memory competition sheet: ordered columns plus row maps.
// Sheets are small (tens of rows), so no streaming.
type Table struct {
	Columns []string
	Rows    []Row
}

// LoadTable reads a CSV file into a Table. Ragged rows are tolerated
// (competition exports often carry trailing spacer columns); short rows leave
// the missing cells empty.
func LoadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: empty file", path)
	}

	columns := make([]string, len(records[0]))
	for i, c := range records[0] {
		columns[i] = strings.TrimSpace(c)
	}

	t := &Table{Columns: columns, Rows: make([]Row, 0, len(records)-1)}
	for _, record := range records[1:] {
		row := make(Row, len(columns))
		for i, col := range columns {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// HasColumn reports whether the sheet carries the named column.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// EnsureColumns returns an error naming every required column the sheet is
// missing. A missing column is a schema mismatch the caller must fix, not a
// per-row data problem.
func (t *Table) EnsureColumns(required ...string) error {
	var missing []string
	for _, name := range required {
		if !t.HasColumn(name) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return nil
}
