package ridership

import "strconv"

// LookbackYears is the widest year-over-year comparison computed.
const LookbackYears = 3

// Record is one route and period of the processed dataset.
type Record struct {
	Route   string `csv:"route" json:"route" groups:"basic,detailed"`
	Date    Period `csv:"date" json:"date" groups:"basic,detailed"`
	DateEnd Day    `csv:"date_end" json:"date_end" groups:"basic,detailed"`

	Ridership        float64 `csv:"ridership" json:"ridership" groups:"basic,detailed"`
	RidershipPerDay  float64 `csv:"ridership_per_day" json:"ridership_per_day" groups:"basic,detailed"`
	RidershipWeekday float64 `csv:"ridership_weekday" json:"ridership_weekday" groups:"basic,detailed"`

	BusinessDays   int `csv:"business_days" json:"business_days" groups:"detailed"`
	NumDaysInMonth int `csv:"num_days_in_month" json:"num_days_in_month" groups:"detailed"`

	ChangeVs1YearsAgo *float64 `csv:"change_vs_1_years_ago,omitempty" json:"change_vs_1_years_ago" groups:"detailed"`
	ChangeVs2YearsAgo *float64 `csv:"change_vs_2_years_ago,omitempty" json:"change_vs_2_years_ago" groups:"detailed"`
	ChangeVs3YearsAgo *float64 `csv:"change_vs_3_years_ago,omitempty" json:"change_vs_3_years_ago" groups:"detailed"`

	Measures map[string]float64 `csv:"-" json:"measures,omitempty" groups:"detailed"`
}

func (r *Record) Change(years int) *float64 {
	switch years {
	case 1:
		return r.ChangeVs1YearsAgo
	case 2:
		return r.ChangeVs2YearsAgo
	case 3:
		return r.ChangeVs3YearsAgo
	}

	return nil
}

func (r *Record) setChange(years int, change *float64) {
	switch years {
	case 1:
		r.ChangeVs1YearsAgo = change
	case 2:
		r.ChangeVs2YearsAgo = change
	case 3:
		r.ChangeVs3YearsAgo = change
	}
}

// Dataset is the output of a pipeline run.
type Dataset struct {
	// Extra summed measures carried on each record, in column order
	Measures []string
	Records  []*Record
}

// Columns is the serialisation order of the output table.
func (d *Dataset) Columns() []string {
	columns := []string{
		"route", "date", "date_end",
		"ridership", "ridership_per_day", "ridership_weekday",
		"business_days", "num_days_in_month",
		"change_vs_1_years_ago", "change_vs_2_years_ago", "change_vs_3_years_ago",
	}

	return append(columns, d.Measures...)
}

// Values renders a record in Columns order. Null changes become empty cells.
func (d *Dataset) Values(record *Record) []string {
	values := []string{
		record.Route,
		record.Date.String(),
		record.DateEnd.String(),
		formatFloat(record.Ridership),
		formatFloat(record.RidershipPerDay),
		formatFloat(record.RidershipWeekday),
		strconv.Itoa(record.BusinessDays),
		strconv.Itoa(record.NumDaysInMonth),
	}

	for years := 1; years <= LookbackYears; years++ {
		if change := record.Change(years); change != nil {
			values = append(values, formatFloat(*change))
		} else {
			values = append(values, "")
		}
	}

	for _, measure := range d.Measures {
		values = append(values, formatFloat(record.Measures[measure]))
	}

	return values
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
