package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/travigo/ridership/pkg/api"
	etlcli "github.com/travigo/ridership/pkg/etl/cli"
	reportcli "github.com/travigo/ridership/pkg/report/cli"
	"github.com/urfave/cli/v2"
)

func main() {
	if os.Getenv("RIDERSHIP_LOG_FORMAT") != "JSON" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	if os.Getenv("RIDERSHIP_DEBUG") == "YES" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	commands := etlcli.RegisterCLI()
	commands = append(commands, reportcli.RegisterCLI(), api.RegisterCLI())

	app := &cli.App{
		Name:        "ridership",
		Description: "Transit ridership metrics pipeline - transforms raw monthly ridership and serves the results",

		Commands: commands,
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}
