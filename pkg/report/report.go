package report

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/travigo/ridership/pkg/dataexporter"
)

// Run loads a processed CSV, keeps the records matching expression and writes
// a per-route summary. An empty expression keeps every record.
func Run(writer io.Writer, path string, expression string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	records, err := dataexporter.ReadCSV(file)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	if expression != "" {
		filter, err := CompileFilter(expression)
		if err != nil {
			return err
		}

		records, err = filter.Apply(records)
		if err != nil {
			return err
		}
	}

	log.Debug().Str("path", path).Int("records", len(records)).Msg("Building ridership report")

	return Write(writer, Summarise(records))
}
