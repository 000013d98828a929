package cli

import (
	"os"

	"github.com/travigo/ridership/pkg/etl"
	"github.com/travigo/ridership/pkg/report"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "report",
		Usage: "Summarise a processed ridership file per route",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "path",
				Value: etl.DefaultOutputPath,
				Usage: "Processed ridership CSV",
			},
			&cli.StringFlag{
				Name:  "filter",
				Usage: `Expression records must match, e.g. 'ridership_per_day > 1000 && route == "80"'`,
			},
		},
		Action: func(c *cli.Context) error {
			return report.Run(os.Stdout, c.String("path"), c.String("filter"))
		},
	}
}
