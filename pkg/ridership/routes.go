package ridership

import (
	"regexp"
	"strings"
)

var cityLinkPattern = regexp.MustCompile(`CityLink ([A-Z]+)`)

// CanonicaliseRoute rewrites a comma separated list of served routes so each
// label is trimmed and CityLink colour names are title cased, eg.
// "CityLink BLUE, 80" becomes "CityLink Blue, 80".
func CanonicaliseRoute(servedRoutes string) string {
	labels := strings.Split(servedRoutes, ",")

	for i, label := range labels {
		labels[i] = cityLinkPattern.ReplaceAllStringFunc(strings.TrimSpace(label), func(match string) string {
			colour := cityLinkPattern.FindStringSubmatch(match)[1]

			return "CityLink " + colour[:1] + strings.ToLower(colour[1:])
		})
	}

	return strings.Join(labels, ", ")
}

func CanonicaliseRoutes(table *Table) (*Table, error) {
	routeColumn := table.ColumnIndex(ColumnRoute)
	if routeColumn == -1 {
		return nil, missingColumn(ColumnRoute)
	}

	rows := make([][]string, len(table.Rows))
	for i, row := range table.Rows {
		rows[i] = append([]string(nil), row...)
		if routeColumn < len(rows[i]) {
			rows[i][routeColumn] = CanonicaliseRoute(rows[i][routeColumn])
		}
	}

	return &Table{
		Header: table.Header,
		Rows:   rows,
	}, nil
}
