package ridership

import (
	"math"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	ColumnRoute     = "route"
	ColumnDate      = "date"
	ColumnRidership = "ridership"
)

type UnknownColumnRule string

const (
	UnknownColumnsIgnore UnknownColumnRule = "ignore"
	UnknownColumnsInfer  UnknownColumnRule = "infer"
)

// Schema declares how every input column is treated. route and date are the
// dimension keys, ridership is always a measure, Measures lists any further
// summable columns and UnknownColumns decides what happens to the rest.
type Schema struct {
	Measures       []string
	UnknownColumns UnknownColumnRule `validate:"omitempty,oneof=ignore infer"`
}

type measureColumn struct {
	name  string
	index int
}

func (s Schema) resolve(table *Table) ([]measureColumn, error) {
	occurrences := map[string]int{}
	for _, name := range table.Header {
		occurrences[name]++
	}

	for _, required := range []string{ColumnRoute, ColumnDate, ColumnRidership} {
		if table.ColumnIndex(required) == -1 {
			return nil, missingColumn(required)
		}
		if occurrences[required] > 1 {
			return nil, duplicateColumn(required)
		}
	}

	measures := []measureColumn{{name: ColumnRidership, index: table.ColumnIndex(ColumnRidership)}}
	used := map[string]bool{ColumnRoute: true, ColumnDate: true, ColumnRidership: true}

	for _, declared := range s.Measures {
		name := NormaliseColumn(declared)
		if used[name] {
			continue
		}

		index := table.ColumnIndex(name)
		if index == -1 {
			return nil, missingColumn(name)
		}
		if occurrences[name] > 1 {
			return nil, duplicateColumn(name)
		}

		measures = append(measures, measureColumn{name: name, index: index})
		used[name] = true
	}

	// Keys and measures are unique by now, so a repeat here is an unknown column
	var dropped []string
	for index, name := range table.Header {
		if used[name] {
			if occurrences[name] > 1 {
				dropped = append(dropped, name)
			}
			continue
		}
		used[name] = true

		if s.UnknownColumns == UnknownColumnsInfer && columnIsNumeric(table, index) {
			measures = append(measures, measureColumn{name: name, index: index})
		} else {
			dropped = append(dropped, name)
		}
	}

	if len(dropped) > 0 {
		log.Debug().Strs("columns", dropped).Msg("Dropping columns not declared as measures")
	}

	return measures, nil
}

func columnIsNumeric(table *Table, column int) bool {
	for row := range table.Rows {
		if _, ok := parseMeasure(table.Cell(row, column)); !ok {
			return false
		}
	}

	return true
}

// parseMeasure treats an empty cell as zero so that sums skip missing values.
func parseMeasure(value string) (float64, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, true
	}

	number, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(number) || math.IsInf(number, 0) {
		return 0, false
	}

	return number, true
}
