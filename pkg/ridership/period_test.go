package ridership

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParsePeriod(t *testing.T) {
	valid := map[string]Period{
		"04/2023":   NewPeriod(2023, time.April),
		"4/2023":    NewPeriod(2023, time.April),
		"12/1999":   NewPeriod(1999, time.December),
		" 02/2020 ": NewPeriod(2020, time.February),
	}
	for input, expected := range valid {
		period, ok := ParsePeriod(input)

		assert.True(t, ok, input)
		assert.Equal(t, expected, period, input)
	}

	for _, input := range []string{"", "13/2023", "00/2023", "2023-04", "04/23", "04/2023/01", "April 2023", "004/2023"} {
		_, ok := ParsePeriod(input)

		assert.False(t, ok, input)
	}
}

func TestPeriodDaysInMonth(t *testing.T) {
	assert.Equal(t, 28, NewPeriod(2022, time.February).DaysInMonth())
	assert.Equal(t, 29, NewPeriod(2020, time.February).DaysInMonth())
	assert.Equal(t, 30, NewPeriod(2023, time.April).DaysInMonth())
	assert.Equal(t, 31, NewPeriod(2020, time.March).DaysInMonth())
	assert.Equal(t, 28, NewPeriod(1900, time.February).DaysInMonth())
	assert.Equal(t, 29, NewPeriod(2000, time.February).DaysInMonth())
}

func TestPeriodEnd(t *testing.T) {
	assert.Equal(t, time.Date(2023, time.April, 30, 0, 0, 0, 0, time.UTC), NewPeriod(2023, time.April).End().Time)
	assert.Equal(t, time.Date(2020, time.February, 29, 0, 0, 0, 0, time.UTC), NewPeriod(2020, time.February).End().Time)
	assert.Equal(t, time.Date(2021, time.December, 31, 0, 0, 0, 0, time.UTC), NewPeriod(2021, time.December).End().Time)
}

func TestPeriodBusinessDays(t *testing.T) {
	// April 2023 starts on a Saturday
	assert.Equal(t, 20, NewPeriod(2023, time.April).BusinessDays())
	// February 2021 starts on a Monday and has exactly four weeks
	assert.Equal(t, 20, NewPeriod(2021, time.February).BusinessDays())
	assert.Equal(t, 23, NewPeriod(2020, time.December).BusinessDays())
}

func TestPeriodBusinessDaysNeverExceedDaysInMonth(t *testing.T) {
	for year := 1996; year <= 2030; year++ {
		for month := time.January; month <= time.December; month++ {
			period := NewPeriod(year, month)

			assert.LessOrEqual(t, period.BusinessDays(), period.DaysInMonth(), period.String())
			assert.GreaterOrEqual(t, period.BusinessDays(), 20, period.String())
			assert.Equal(t, period.Month(), period.End().Month(), period.String())

			if month == time.February {
				assert.Equal(t, IsLeapYear(year), period.DaysInMonth() == 29, period.String())
			}
		}
	}
}

func TestPeriodJSON(t *testing.T) {
	period := NewPeriod(2020, time.March)

	encoded, err := period.MarshalJSON()
	assert.NoError(t, err)
	assert.Equal(t, `"2020-03-01"`, string(encoded))

	var decoded Period
	assert.NoError(t, decoded.UnmarshalJSON(encoded))
	assert.Equal(t, period, decoded)
}
