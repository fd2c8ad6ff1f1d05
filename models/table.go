package models

import "strings"

// Row is one stored row addressed by column name.
type Row map[string]string

// Get returns the cell under name, or "" when the column is absent.
func (r Row) Get(name string) string {
	return r[name]
}

// Table is the full contents of the store in insertion order.
type Table struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// NewTable builds a table from a header row and raw cell rows. Short rows are
// padded with empty cells and fully blank rows are skipped.
func NewTable(header []string, cells [][]string) *Table {
	t := &Table{Columns: append([]string(nil), header...)}
	for _, raw := range cells {
		if isBlank(raw) {
			continue
		}
		row := make(Row, len(header))
		for i, name := range header {
			if name == "" {
				continue
			}
			if i < len(raw) {
				row[name] = raw[i]
			} else {
				row[name] = ""
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
