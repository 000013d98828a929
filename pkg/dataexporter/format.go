package dataexporter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/travigo/ridership/pkg/ridership"
)

type Format string

const (
	FormatCSV     Format = "csv"
	FormatParquet Format = "parquet"
)

var writers = map[Format]func(io.Writer, *ridership.Dataset) error{
	FormatCSV:     WriteCSV,
	FormatParquet: WriteParquet,
}

// FormatFromPath picks the output format from the file extension, defaulting
// to CSV.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".parquet") {
		return FormatParquet
	}

	return FormatCSV
}

// Save writes the dataset to path, replacing any previous output only once
// the new file is complete.
func Save(dataset *ridership.Dataset, path string, format Format) error {
	if format == "" {
		format = FormatFromPath(path)
	}

	write, ok := writers[format]
	if !ok {
		return fmt.Errorf("unrecognised output format %s", format)
	}

	file, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer os.Remove(file.Name())
	defer file.Close()

	if err := file.Chmod(0644); err != nil {
		return err
	}
	if err := write(file, dataset); err != nil {
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}

	if err := os.Rename(file.Name(), path); err != nil {
		return fmt.Errorf("replace output: %w", err)
	}

	log.Info().
		Str("path", path).
		Str("format", string(format)).
		Int("records", len(dataset.Records)).
		Msg("Saved processed ridership")

	return nil
}
