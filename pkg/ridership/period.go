package ridership

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

const PeriodLayout = "2006-01-02"

var periodPattern = regexp.MustCompile(`^(\d{1,2})/(\d{4})$`)

// Period is a calendar month, identified by its first day in UTC.
type Period struct {
	time.Time
}

func NewPeriod(year int, month time.Month) Period {
	return Period{time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)}
}

// ParsePeriod accepts "MM/YYYY" (or "M/YYYY") strings only.
func ParsePeriod(value string) (Period, bool) {
	match := periodPattern.FindStringSubmatch(strings.TrimSpace(value))
	if match == nil {
		return Period{}, false
	}

	month, _ := strconv.Atoi(match[1])
	year, _ := strconv.Atoi(match[2])
	if month < 1 || month > 12 {
		return Period{}, false
	}

	return NewPeriod(year, time.Month(month)), true
}

// End is the last calendar day of the month.
func (p Period) End() Day {
	return Day{p.AddDate(0, 1, -1)}
}

func (p Period) YearsBefore(years int) Period {
	return NewPeriod(p.Year()-years, p.Month())
}

func (p Period) DaysInMonth() int {
	return p.End().Day()
}

// BusinessDays counts Monday to Friday days between the first and last day of
// the month inclusive.
func (p Period) BusinessDays() int {
	count := 0
	end := p.End().Time

	for day := p.Time; !day.After(end); day = day.AddDate(0, 0, 1) {
		if weekday := day.Weekday(); weekday != time.Saturday && weekday != time.Sunday {
			count += 1
		}
	}

	return count
}

func (p Period) String() string {
	return p.Format(PeriodLayout)
}

func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func (p Period) MarshalJSON() ([]byte, error) {
	return []byte(`"` + p.String() + `"`), nil
}

func (p *Period) UnmarshalJSON(data []byte) error {
	return p.UnmarshalCSV(strings.Trim(string(data), `"`))
}

func (p Period) MarshalCSV() (string, error) {
	return p.String(), nil
}

// UnmarshalCSV reads the YYYY-MM-DD form written to processed datasets.
func (p *Period) UnmarshalCSV(value string) error {
	date, err := time.Parse(PeriodLayout, strings.TrimSpace(value))
	if err != nil {
		return err
	}

	*p = NewPeriod(date.Year(), date.Month())
	return nil
}

// Day is a calendar date serialised as YYYY-MM-DD.
type Day struct {
	time.Time
}

func (d Day) String() string {
	return d.Format(PeriodLayout)
}

func (d Day) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Day) UnmarshalJSON(data []byte) error {
	return d.UnmarshalCSV(strings.Trim(string(data), `"`))
}

func (d Day) MarshalCSV() (string, error) {
	return d.String(), nil
}

func (d *Day) UnmarshalCSV(value string) error {
	date, err := time.Parse(PeriodLayout, strings.TrimSpace(value))
	if err != nil {
		return err
	}

	d.Time = date
	return nil
}
