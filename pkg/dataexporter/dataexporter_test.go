package dataexporter

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/ridership/pkg/ridership"
)

func testDataset(t *testing.T) *ridership.Dataset {
	t.Helper()

	table := &ridership.Table{
		Header: []string{"Route", "Date", "Ridership", "Trips"},
		Rows: [][]string{
			{"80", "01/2019", "100", "1"},
			{"80", "01/2020", "150", "2"},
			{"CityLink BLUE", "04/2023", "300000", "3"},
		},
	}

	dataset, err := ridership.Transform(table, ridership.Options{
		Schema:   ridership.Schema{Measures: []string{"trips"}},
		Lookback: ridership.LookbackCalendar,
	})
	require.NoError(t, err)

	return dataset
}

func TestWriteCSV(t *testing.T) {
	var buffer bytes.Buffer
	require.NoError(t, WriteCSV(&buffer, testDataset(t)))

	expected := "route,date,date_end,ridership,ridership_per_day,ridership_weekday,business_days,num_days_in_month,change_vs_1_years_ago,change_vs_2_years_ago,change_vs_3_years_ago,trips\n" +
		"80,2019-01-01,2019-01-31,100,3.225806451612903,4.3478260869565215,23,31,,,,1\n" +
		"80,2020-01-01,2020-01-31,150,4.838709677419355,6.521739130434782,23,31,0.5,,,2\n" +
		"CityLink Blue,2023-04-01,2023-04-30,300000,10000,15000,20,30,,,,3\n"

	assert.Equal(t, expected, buffer.String())
}

func TestReadCSV(t *testing.T) {
	var buffer bytes.Buffer
	require.NoError(t, WriteCSV(&buffer, testDataset(t)))

	records, err := ReadCSV(&buffer)
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "80", records[1].Route)
	assert.Equal(t, "2020-01-01", records[1].Date.String())
	assert.Equal(t, "2020-01-31", records[1].DateEnd.String())
	assert.Equal(t, 23, records[1].BusinessDays)
	require.NotNil(t, records[1].ChangeVs1YearsAgo)
	assert.Equal(t, 0.5, *records[1].ChangeVs1YearsAgo)
	assert.Nil(t, records[1].ChangeVs2YearsAgo)
	assert.Nil(t, records[0].ChangeVs1YearsAgo)

	assert.Equal(t, map[string]float64{"trips": 2}, records[1].Measures)
	assert.Equal(t, map[string]float64{"trips": 3}, records[2].Measures)
}

func TestReadCSVRejectsNonNumericMeasure(t *testing.T) {
	input := "route,date,date_end,ridership,ridership_per_day,ridership_weekday,business_days,num_days_in_month,change_vs_1_years_ago,change_vs_2_years_ago,change_vs_3_years_ago,trips\n" +
		"80,2019-01-01,2019-01-31,100,3.2,4.3,23,31,,,,many\n"

	_, err := ReadCSV(strings.NewReader(input))
	assert.ErrorContains(t, err, "trips")
}

func TestSaveParquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ridership.parquet")
	require.NoError(t, Save(testDataset(t), path, ""))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()
	info, err := file.Stat()
	require.NoError(t, err)

	rows, err := parquet.Read[parquetRecord](file, info.Size())
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "CityLink Blue", rows[2].Route)
	assert.Equal(t, "2023-04-30", rows[2].DateEnd)
	assert.Equal(t, int32(30), rows[2].NumDaysInMonth)
	assert.Nil(t, rows[2].ChangeVs1YearsAgo)
	require.NotNil(t, rows[1].ChangeVs1YearsAgo)
	assert.Equal(t, 0.5, *rows[1].ChangeVs1YearsAgo)
	assert.Equal(t, []parquetMeasure{{Name: "trips", Value: 2}}, rows[1].Measures)
}

func TestSaveCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ridership.csv")
	require.NoError(t, Save(testDataset(t), path, FormatCSV))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	records, err := ReadCSV(file)
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestSaveKeepsPreviousOutputOnFailure(t *testing.T) {
	directory := t.TempDir()
	path := filepath.Join(directory, "ridership.csv")
	require.NoError(t, os.WriteFile(path, []byte("previous\n"), 0644))

	writers[FormatCSV] = func(writer io.Writer, _ *ridership.Dataset) error {
		writer.Write([]byte("route,da"))
		return errors.New("disk full")
	}
	defer func() { writers[FormatCSV] = WriteCSV }()

	err := Save(testDataset(t), path, FormatCSV)
	assert.Error(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "previous\n", string(content))

	entries, err := os.ReadDir(directory)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestSaveUnknownFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ridership.json")

	assert.Error(t, Save(testDataset(t), path, Format("json")))
	assert.NoFileExists(t, path)
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatParquet, FormatFromPath("out/ridership.PARQUET"))
	assert.Equal(t, FormatCSV, FormatFromPath("out/ridership.csv"))
	assert.Equal(t, FormatCSV, FormatFromPath("out/ridership"))
}
