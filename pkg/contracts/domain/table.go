package domain

// Table is a raw tabular source as read from disk. Every cell is kept as
// the text found in the file; no filtering or coercion has happened yet.
type Table struct {
	Name   string     `json:"name"`
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

// ColumnIndex returns the position of the named column in the header
func (t *Table) ColumnIndex(name string) (int, bool) {
	if t == nil {
		return -1, false
	}
	for i, col := range t.Header {
		if col == name {
			return i, true
		}
	}
	return -1, false
}

// Cell returns the value at row/column, or "" when the row is short
func (t *Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][col]
}

// Len returns the number of data rows (header excluded)
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}
