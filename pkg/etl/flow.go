package etl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
	"github.com/travigo/ridership/pkg/dataexporter"
	"github.com/travigo/ridership/pkg/dataimporter"
	"github.com/travigo/ridership/pkg/ridership"
)

const (
	DefaultInputPath  = "data/raw/mta_bus_ridership.csv"
	DefaultOutputPath = "data/processed/mta_bus_ridership.csv"
	DefaultScriptPath = "node/index.js"
)

type Flow struct {
	BaseDirectory string

	InputPath  string
	OutputPath string
	Format     dataexporter.Format

	ScriptPath string
	NodeBinary string

	Options ridership.Options

	Sinks []Sink
}

func (f *Flow) Perform(ctx context.Context) (*ridership.Dataset, error) {
	startTime := time.Now()
	log.Info().Str("input", f.InputPath).Str("output", f.OutputPath).Msg("Running ridership transform")

	if err := f.CheckForDirectories(); err != nil {
		return nil, fmt.Errorf("check directories: %w", err)
	}

	f.RunPreprocess(ctx)

	table, err := dataimporter.LoadTable(f.InputPath)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", f.InputPath, err)
	}

	dataset, err := ridership.Transform(table, f.Options)
	if err != nil {
		return nil, fmt.Errorf("transform %s: %w", f.InputPath, err)
	}

	if err := os.MkdirAll(filepath.Dir(f.OutputPath), 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	if err := dataexporter.Save(dataset, f.OutputPath, f.Format); err != nil {
		return nil, fmt.Errorf("save %s: %w", f.OutputPath, err)
	}

	if err := f.runSinks(ctx, dataset); err != nil {
		return nil, err
	}

	log.Info().
		Int("records", len(dataset.Records)).
		Str("duration", time.Since(startTime).String()).
		Msg("Ridership transform complete")

	return dataset, nil
}

// runSinks fans the dataset out to every sink and cancels the rest on the
// first failure.
func (f *Flow) runSinks(ctx context.Context, dataset *ridership.Dataset) error {
	if len(f.Sinks) == 0 {
		return nil
	}

	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()

	for _, sink := range f.Sinks {
		p.Go(func(ctx context.Context) error {
			if err := sink.Write(ctx, f.OutputPath, dataset); err != nil {
				return fmt.Errorf("%s sink: %w", sink.Name(), err)
			}

			log.Info().Str("sink", sink.Name()).Msg("Sink complete")
			return nil
		})
	}

	return p.Wait()
}
