package dataexporter

import (
	"io"

	"github.com/parquet-go/parquet-go"
	"github.com/travigo/ridership/pkg/ridership"
)

type parquetMeasure struct {
	Name  string  `parquet:"name"`
	Value float64 `parquet:"value"`
}

type parquetRecord struct {
	Route            string  `parquet:"route"`
	Date             string  `parquet:"date"`
	DateEnd          string  `parquet:"date_end"`
	Ridership        float64 `parquet:"ridership"`
	RidershipPerDay  float64 `parquet:"ridership_per_day"`
	RidershipWeekday float64 `parquet:"ridership_weekday"`
	BusinessDays     int32   `parquet:"business_days"`
	NumDaysInMonth   int32   `parquet:"num_days_in_month"`

	ChangeVs1YearsAgo *float64 `parquet:"change_vs_1_years_ago,optional"`
	ChangeVs2YearsAgo *float64 `parquet:"change_vs_2_years_ago,optional"`
	ChangeVs3YearsAgo *float64 `parquet:"change_vs_3_years_ago,optional"`

	Measures []parquetMeasure `parquet:"measures"`
}

func WriteParquet(writer io.Writer, dataset *ridership.Dataset) error {
	rows := make([]parquetRecord, 0, len(dataset.Records))

	for _, record := range dataset.Records {
		row := parquetRecord{
			Route:             record.Route,
			Date:              record.Date.String(),
			DateEnd:           record.DateEnd.String(),
			Ridership:         record.Ridership,
			RidershipPerDay:   record.RidershipPerDay,
			RidershipWeekday:  record.RidershipWeekday,
			BusinessDays:      int32(record.BusinessDays),
			NumDaysInMonth:    int32(record.NumDaysInMonth),
			ChangeVs1YearsAgo: record.ChangeVs1YearsAgo,
			ChangeVs2YearsAgo: record.ChangeVs2YearsAgo,
			ChangeVs3YearsAgo: record.ChangeVs3YearsAgo,
		}

		for _, measure := range dataset.Measures {
			row.Measures = append(row.Measures, parquetMeasure{Name: measure, Value: record.Measures[measure]})
		}

		rows = append(rows, row)
	}

	return parquet.Write(writer, rows)
}
