package dataexporter

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/gocarina/gocsv"
	"github.com/travigo/ridership/pkg/ridership"
)

func WriteCSV(writer io.Writer, dataset *ridership.Dataset) error {
	csvWriter := gocsv.DefaultCSVWriter(writer)

	if err := csvWriter.Write(dataset.Columns()); err != nil {
		return err
	}
	for _, record := range dataset.Records {
		if err := csvWriter.Write(dataset.Values(record)); err != nil {
			return err
		}
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

// ReadCSV loads a processed dataset written by WriteCSV. Columns after the
// reference set are read back as measures.
func ReadCSV(reader io.Reader) ([]*ridership.Record, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}

	var records []*ridership.Record
	if err := gocsv.UnmarshalBytes(data, &records); err != nil {
		return nil, err
	}

	rows, err := gocsv.DefaultCSVReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return records, nil
	}

	if len(rows)-1 != len(records) {
		return nil, fmt.Errorf("read %d records from %d rows", len(records), len(rows)-1)
	}

	reference := map[string]bool{}
	for _, column := range (&ridership.Dataset{}).Columns() {
		reference[column] = true
	}

	for column, name := range rows[0] {
		if reference[name] {
			continue
		}

		for index, record := range records {
			if column >= len(rows[index+1]) || rows[index+1][column] == "" {
				continue
			}

			value, err := strconv.ParseFloat(rows[index+1][column], 64)
			if err != nil {
				return nil, fmt.Errorf("measure %s row %d: %w", name, index, err)
			}

			if record.Measures == nil {
				record.Measures = map[string]float64{}
			}
			record.Measures[name] = value
		}
	}

	return records, nil
}
