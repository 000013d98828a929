package api

import (
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/rs/zerolog/log"
	"github.com/travigo/ridership/pkg/database"
	"github.com/travigo/ridership/pkg/redis_client"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "web-api",
		Usage: "Provides the ridership metrics web API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run web api server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Value: ":8080",
						Usage: "listen target for the web server",
					},
					&cli.BoolFlag{
						Name:  "no-cache",
						Usage: "serve without the Redis response cache",
					},
				},
				Action: func(c *cli.Context) error {
					if err := database.Connect(); err != nil {
						return err
					}

					var responseCache *cache.Cache[string]
					if !c.Bool("no-cache") {
						if err := redis_client.Connect(); err != nil {
							log.Warn().Err(err).Msg("Redis unavailable, serving without response cache")
						} else {
							responseCache = NewResponseCache(redis_client.Client)
						}
					}

					log.Info().Str("listen", c.String("listen")).Msg("Starting web API")

					return SetupServer(c.String("listen"), database.NewMetricStore(), responseCache)
				},
			},
		},
	}
}
