package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rs/zerolog/log"
	"github.com/travigo/ridership/pkg/archiver"
	"github.com/travigo/ridership/pkg/database"
	"github.com/travigo/ridership/pkg/dataexporter"
	"github.com/travigo/ridership/pkg/dataimporter/manager"
	"github.com/travigo/ridership/pkg/elastic_client"
	"github.com/travigo/ridership/pkg/etl"
	"github.com/travigo/ridership/pkg/ridership"
	"github.com/travigo/ridership/pkg/util"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() []*cli.Command {
	return []*cli.Command{
		transformCommand(),
		datasetCommand(),
	}
}

func transformCommand() *cli.Command {
	return &cli.Command{
		Name:  "transform",
		Usage: "Clean, aggregate and derive metrics from a raw ridership CSV",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "input-path",
				Value: etl.DefaultInputPath,
				Usage: "Path or URL of the raw ridership CSV",
			},
			&cli.StringFlag{
				Name:  "output-path",
				Value: etl.DefaultOutputPath,
				Usage: "Path of the processed output file",
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "Output format (csv or parquet), defaults to the output file extension",
			},
			&cli.StringFlag{
				Name:  "node-script-path",
				Value: etl.DefaultScriptPath,
				Usage: "Node.js preprocess script run before loading",
			},
			&cli.StringFlag{
				Name:  "bucket",
				Usage: "Cloud storage bucket to upload the output into",
			},
			&cli.StringFlag{
				Name:  "bucket-object",
				Usage: "Object name in the bucket, defaults to the output file name",
			},
			&cli.StringFlag{
				Name:  "lookback",
				Value: string(ridership.LookbackPositional),
				Usage: "Year over year comparison mode (positional or calendar)",
			},
			&cli.StringSliceFlag{
				Name:  "measure",
				Usage: "Additional summable column, repeatable",
			},
			&cli.BoolFlag{
				Name:  "infer-measures",
				Usage: "Keep undeclared columns whose values are all numeric as measures",
			},
			&cli.BoolFlag{
				Name:  "store",
				Usage: "Upsert the processed records into MongoDB",
			},
			&cli.BoolFlag{
				Name:  "index",
				Usage: "Index the processed records into Elasticsearch",
			},
		},
		Action: func(c *cli.Context) error {
			lookback, err := ridership.ParseLookbackMode(c.String("lookback"))
			if err != nil {
				return err
			}

			format := dataexporter.Format(c.String("format"))
			if format != "" && format != dataexporter.FormatCSV && format != dataexporter.FormatParquet {
				return fmt.Errorf("unrecognised output format %s", format)
			}

			schema := ridership.Schema{
				Measures:       util.RemoveDuplicateStrings(c.StringSlice("measure"), []string{ridership.ColumnRidership}),
				UnknownColumns: ridership.UnknownColumnsIgnore,
			}
			if c.Bool("infer-measures") {
				schema.UnknownColumns = ridership.UnknownColumnsInfer
			}

			flow := &etl.Flow{
				InputPath:  c.String("input-path"),
				OutputPath: c.String("output-path"),
				Format:     format,
				ScriptPath: c.String("node-script-path"),
				Options: ridership.Options{
					Schema:   schema,
					Lookback: lookback,
				},
			}

			if bucket := c.String("bucket"); bucket != "" {
				flow.Sinks = append(flow.Sinks, &etl.BucketSink{
					Archiver: &archiver.Archiver{
						CloudBucketName: bucket,
						ObjectName:      c.String("bucket-object"),
					},
				})
			}

			if c.Bool("store") {
				if err := database.Connect(); err != nil {
					return err
				}
				flow.Sinks = append(flow.Sinks, &etl.StoreSink{Store: database.NewMetricStore()})
			}

			if c.Bool("index") {
				if err := elastic_client.Connect(true); err != nil {
					return err
				}
				flow.Sinks = append(flow.Sinks, &etl.IndexSink{})
			}

			_, err = flow.Perform(c.Context)
			return err
		},
	}
}

func datasetCommand() *cli.Command {
	return &cli.Command{
		Name:  "dataset",
		Usage: "Work with the registered ridership datasets",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "datasources",
				Value: manager.DefaultDataSourcesDirectory,
				Usage: "Directory of data source definitions",
			},
		},
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List registered datasets",
				Action: func(c *cli.Context) error {
					registered, err := manager.GetRegisteredDataSets(c.String("datasources"))
					if err != nil {
						return err
					}

					writer := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
					fmt.Fprintln(writer, "IDENTIFIER\tPROVIDER\tSOURCE\tOUTPUT")
					for _, dataset := range registered {
						fmt.Fprintf(writer, "%s\t%s\t%s\t%s\n", dataset.Identifier, dataset.Provider.Name, dataset.Source, dataset.OutputPath)
					}

					return writer.Flush()
				},
			},
			{
				Name:      "run",
				Usage:     "Run the transform for a registered dataset",
				ArgsUsage: "<identifier>",
				Action: func(c *cli.Context) error {
					if !c.Args().Present() {
						return fmt.Errorf("dataset identifier must be provided")
					}

					dataset, err := manager.GetDataset(c.String("datasources"), c.Args().First())
					if err != nil {
						return err
					}

					var store etl.RecordStore
					if dataset.Store {
						if err := database.Connect(); err != nil {
							return err
						}
						store = database.NewMetricStore()
					}

					if dataset.Index {
						if err := elastic_client.Connect(true); err != nil {
							return err
						}
					}

					log.Info().Str("dataset", dataset.Identifier).Msg("Running dataset")

					_, err = etl.FlowFromDataset(dataset, store).Perform(c.Context)
					return err
				},
			},
		},
	}
}
