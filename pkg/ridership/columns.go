package ridership

import "strings"

// NormaliseColumn trims, lower-cases and replaces spaces with underscores.
func NormaliseColumn(label string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(label)), " ", "_")
}

func NormaliseColumns(table *Table) *Table {
	header := make([]string, len(table.Header))
	for i, label := range table.Header {
		header[i] = NormaliseColumn(label)
	}

	return &Table{
		Header: header,
		Rows:   table.Rows,
	}
}
