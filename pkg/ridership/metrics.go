package ridership

import (
	"fmt"
	"strings"
)

type LookbackMode string

const (
	// LookbackPositional compares a row with the row 12*k places earlier in the
	// route's date ordered history. A gap in the history shifts every later
	// comparison by one month.
	LookbackPositional LookbackMode = "positional"
	// LookbackCalendar compares a row with the same month k years earlier and
	// leaves the change empty when that month is absent.
	LookbackCalendar LookbackMode = "calendar"
)

func ParseLookbackMode(value string) (LookbackMode, error) {
	switch mode := LookbackMode(strings.ToLower(strings.TrimSpace(value))); mode {
	case "":
		return LookbackPositional, nil
	case LookbackPositional, LookbackCalendar:
		return mode, nil
	default:
		return "", fmt.Errorf("unknown lookback mode %q", value)
	}
}

// DeriveMetrics turns aggregated rows into records with per-day, per-weekday
// and year-over-year figures. Rows must be ordered by route then period, as
// Aggregate returns them.
func DeriveMetrics(aggregation *Aggregation, mode LookbackMode) (*Dataset, error) {
	records := make([]*Record, 0, len(aggregation.Rows))

	for _, row := range aggregation.Rows {
		numDays := row.Period.DaysInMonth()
		if numDays == 0 {
			return nil, &ArithmeticError{Route: row.Route, Period: row.Period, Metric: "num_days_in_month"}
		}
		businessDays := row.Period.BusinessDays()
		if businessDays == 0 {
			return nil, &ArithmeticError{Route: row.Route, Period: row.Period, Metric: "business_days"}
		}

		records = append(records, &Record{
			Route:            row.Route,
			Date:             row.Period,
			DateEnd:          row.Period.End(),
			Ridership:        row.Ridership,
			NumDaysInMonth:   numDays,
			BusinessDays:     businessDays,
			RidershipPerDay:  row.Ridership / float64(numDays),
			RidershipWeekday: row.Ridership / float64(businessDays),
			Measures:         row.Measures,
		})
	}

	for _, history := range routeHistories(records) {
		if mode == LookbackCalendar {
			applyCalendarLookback(history)
		} else {
			applyPositionalLookback(history)
		}
	}

	return &Dataset{
		Measures: aggregation.Measures,
		Records:  records,
	}, nil
}

// routeHistories splits route ordered records into one slice per route.
func routeHistories(records []*Record) [][]*Record {
	var histories [][]*Record

	start := 0
	for i := 1; i <= len(records); i++ {
		if i == len(records) || records[i].Route != records[start].Route {
			histories = append(histories, records[start:i])
			start = i
		}
	}

	return histories
}

func applyPositionalLookback(history []*Record) {
	for i, record := range history {
		for years := 1; years <= LookbackYears; years++ {
			prior := i - 12*years
			if prior < 0 {
				continue
			}

			record.setChange(years, change(record.Ridership, history[prior].Ridership))
		}
	}
}

func applyCalendarLookback(history []*Record) {
	byPeriod := map[Period]*Record{}
	for _, record := range history {
		byPeriod[record.Date] = record
	}

	for _, record := range history {
		for years := 1; years <= LookbackYears; years++ {
			prior, exists := byPeriod[record.Date.YearsBefore(years)]
			if !exists {
				continue
			}

			record.setChange(years, change(record.Ridership, prior.Ridership))
		}
	}
}

// change is nil when the prior ridership is zero.
func change(current float64, prior float64) *float64 {
	if prior == 0 {
		return nil
	}

	value := current/prior - 1
	return &value
}
