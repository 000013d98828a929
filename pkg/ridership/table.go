package ridership

// Table is the raw tabular form handed over by ingestion: a header row and
// string cells. Rows shorter than the header are treated as having empty cells.
type Table struct {
	Header []string
	Rows   [][]string
}

func (t *Table) ColumnIndex(name string) int {
	for i, column := range t.Header {
		if column == name {
			return i
		}
	}

	return -1
}

func (t *Table) Cell(row int, column int) string {
	if column < 0 || column >= len(t.Rows[row]) {
		return ""
	}

	return t.Rows[row][column]
}
