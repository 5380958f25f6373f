package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/travigo/railnav/pkg/config"
	"github.com/travigo/railnav/pkg/consumer"
	"github.com/travigo/railnav/pkg/events"
	"github.com/travigo/railnav/pkg/monitor"
	"github.com/travigo/railnav/pkg/redis_client"
	"github.com/travigo/railnav/pkg/servicecache"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "monitor",
		Usage: "Monitors a station board and serves it over HTTP",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run the board monitor and web api",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "config",
						Usage: "path to a YAML config file",
					},
					&cli.StringFlag{
						Name:  "station",
						Usage: "CRS code of the station to monitor, overrides the config",
					},
					&cli.StringFlag{
						Name:  "listen",
						Usage: "listen target for the web server, overrides the config",
					},
					&cli.BoolFlag{
						Name:  "events",
						Usage: "publish delay and cancellation events to the Redis queue",
					},
				},
				Action: func(c *cli.Context) error {
					cfg, err := config.Load(c.String("config"))
					if err != nil {
						return err
					}
					if err := cfg.RequireToken(); err != nil {
						return err
					}

					station := cfg.Station
					if c.String("station") != "" {
						station = c.String("station")
					}
					listen := cfg.API.Address
					if c.String("listen") != "" {
						listen = c.String("listen")
					}

					client := cfg.NewClient()
					boardMonitor := monitor.New(client, cfg.RefreshInterval())

					var extraRoutes []func(fiber.Router)

					if c.Bool("events") || cfg.ServiceCache.Enabled {
						if err := redis_client.Connect(); err != nil {
							return err
						}
					}

					if cfg.ServiceCache.Enabled {
						client.ServiceCache = servicecache.New(redis_client.Client, cfg.CacheExpiration())
					}

					if c.Bool("events") {
						eventsQueue, err := redis_client.QueueConnection.OpenQueue(events.QueueName)
						if err != nil {
							return err
						}

						boardMonitor.AddListener(events.NewPublisher(eventsQueue))
						extraRoutes = append(extraRoutes, func(router fiber.Router) {
							consumer.RegisterStatsRoutes(router, redis_client.QueueConnection, redis_client.Client)
						})
					}

					if err := boardMonitor.Start(station); err != nil {
						return err
					}
					defer boardMonitor.Stop()

					log.Info().Str("listen", listen).Str("crs", station).Msg("Starting web api")

					return SetupServer(listen, client, boardMonitor, extraRoutes...)
				},
			},
		},
	}
}
