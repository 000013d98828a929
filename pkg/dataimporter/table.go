package dataimporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog/log"
	"github.com/travigo/ridership/pkg/ridership"
)

// Spreadsheet exports often start with a UTF-8 byte order mark
const byteOrderMark = "\ufeff"

// Allow records with missing trailing columns, the scraped source sometimes
// drops empty cells at the end of a row
func newCSVReader(in io.Reader) gocsv.CSVReader {
	r := csv.NewReader(in)
	r.FieldsPerRecord = -1
	return r
}

// ParseTable reads a CSV with a header row into a raw table. Labels are kept
// as-is, normalising them is the first pipeline stage.
func ParseTable(reader io.Reader) (*ridership.Table, error) {
	records, err := newCSVReader(reader).ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, &ridership.FormatError{Column: ridership.ColumnRoute, Row: -1, Reason: "input has no header row"}
	}

	header := records[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], byteOrderMark)
	}

	return &ridership.Table{
		Header: header,
		Rows:   records[1:],
	}, nil
}

// LoadTable reads a table from a local path or a http(s) URL.
func LoadTable(source string) (*ridership.Table, error) {
	if isValidUrl(source) {
		tempFile, err := tempDownloadFile(source)
		if err != nil {
			return nil, err
		}
		defer os.Remove(tempFile.Name())
		defer tempFile.Close()

		source = tempFile.Name()
	}

	file, err := os.Open(source)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer file.Close()

	table, err := ParseTable(file)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", source, err)
	}

	log.Info().Str("source", source).Int("rows", len(table.Rows)).Msg("Loaded ridership table")

	return table, nil
}
