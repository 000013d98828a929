package ridership

import (
	"cmp"
	"math"
	"slices"
	"time"

	"golang.org/x/exp/maps"
)

// AggregatedRow is the sum of every input row sharing a route and period.
type AggregatedRow struct {
	Route     string
	Period    Period
	Ridership float64
	Measures  map[string]float64
}

type Aggregation struct {
	// Measures other than ridership, in column order
	Measures []string
	Rows     []*AggregatedRow
}

type groupKey struct {
	route string
	year  int
	month time.Month
}

// IndexPeriods parses the date column of every row.
func IndexPeriods(table *Table) ([]Period, error) {
	dateColumn := table.ColumnIndex(ColumnDate)
	if dateColumn == -1 {
		return nil, missingColumn(ColumnDate)
	}

	periods := make([]Period, len(table.Rows))
	for row := range table.Rows {
		value := table.Cell(row, dateColumn)

		period, ok := ParsePeriod(value)
		if !ok {
			return nil, &FormatError{
				Column: ColumnDate,
				Row:    row,
				Value:  value,
				Reason: "expected MM/YYYY",
			}
		}
		periods[row] = period
	}

	return periods, nil
}

// Aggregate collapses rows with the same route and period by summing their
// measures and drops groups whose ridership is not positive. The result is
// ordered by route then period.
func Aggregate(table *Table, periods []Period, schema Schema) (*Aggregation, error) {
	measureColumns, err := schema.resolve(table)
	if err != nil {
		return nil, err
	}
	routeColumn := table.ColumnIndex(ColumnRoute)

	groups := map[groupKey]*AggregatedRow{}

	for row := range table.Rows {
		route := table.Cell(row, routeColumn)
		key := groupKey{route: route, year: periods[row].Year(), month: periods[row].Month()}

		group, exists := groups[key]
		if !exists {
			group = &AggregatedRow{
				Route:    route,
				Period:   periods[row],
				Measures: map[string]float64{},
			}
			groups[key] = group
		}

		for _, measure := range measureColumns {
			value := table.Cell(row, measure.index)

			number, ok := parseMeasure(value)
			if !ok {
				return nil, &FormatError{
					Column: measure.name,
					Row:    row,
					Value:  value,
					Reason: "measure is not numeric",
				}
			}

			var sum float64
			if measure.name == ColumnRidership {
				group.Ridership += number
				sum = group.Ridership
			} else {
				group.Measures[measure.name] += number
				sum = group.Measures[measure.name]
			}

			if math.IsInf(sum, 0) {
				return nil, &FormatError{
					Column: measure.name,
					Row:    row,
					Value:  value,
					Reason: "measure sum is not finite",
				}
			}
		}
	}

	rows := maps.Values(groups)
	rows = slices.DeleteFunc(rows, func(row *AggregatedRow) bool {
		return !hasRidership(row)
	})
	slices.SortFunc(rows, func(a, b *AggregatedRow) int {
		if order := cmp.Compare(a.Route, b.Route); order != 0 {
			return order
		}
		return a.Period.Compare(b.Period.Time)
	})

	aggregation := &Aggregation{Rows: rows}
	for _, measure := range measureColumns[1:] {
		aggregation.Measures = append(aggregation.Measures, measure.name)
	}

	return aggregation, nil
}

// hasRidership is false for zero, negative and NaN sums.
func hasRidership(row *AggregatedRow) bool {
	return row.Ridership > 0
}
