package etl

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

var dataDirectories = []string{
	filepath.Join("data", "raw"),
	filepath.Join("data", "processed"),
}

// CheckForDirectories creates the raw and processed data directories under
// the flow's base directory when they are missing.
func (f *Flow) CheckForDirectories() error {
	for _, directory := range dataDirectories {
		fullPath := filepath.Join(f.BaseDirectory, directory)

		if _, err := os.Stat(fullPath); err == nil {
			continue
		}

		log.Info().Str("path", fullPath).Msg("Creating data directory")
		if err := os.MkdirAll(fullPath, 0755); err != nil {
			return err
		}
	}

	return nil
}
