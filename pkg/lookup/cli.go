package lookup

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/kr/pretty"
	"github.com/travigo/railnav/pkg/boardfilter"
	"github.com/travigo/railnav/pkg/config"
	"github.com/travigo/railnav/pkg/ldbws"
	"github.com/travigo/railnav/pkg/railmodel"
	"github.com/travigo/railnav/pkg/redis_client"
	"github.com/travigo/railnav/pkg/servicecache"
	"github.com/urfave/cli/v2"
)

type Format string

const (
	FormatText   Format = "text"
	FormatCSV    Format = "csv"
	FormatPretty Format = "pretty"
)

func ParseFormat(value string) (Format, error) {
	switch Format(value) {
	case FormatText, FormatCSV, FormatPretty:
		return Format(value), nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown output format %q", value)
	}
}

var configFlag = &cli.StringFlag{
	Name:  "config",
	Usage: "path to a YAML config file",
}

var formatFlag = &cli.StringFlag{
	Name:  "format",
	Value: string(FormatText),
	Usage: "output format, one of text, csv or pretty",
}

var cacheFlag = &cli.BoolFlag{
	Name:  "cache",
	Usage: "read service details through the Redis cache",
}

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "lookup",
		Usage: "One-shot queries against Darwin",
		Subcommands: []*cli.Command{
			{
				Name:      "board",
				Usage:     "print the arrival and departure board for a station",
				ArgsUsage: "[crs]",
				Flags: []cli.Flag{
					configFlag,
					formatFlag,
					cacheFlag,
					&cli.BoolFlag{
						Name:  "details",
						Usage: "fetch the service details for every service on the board",
					},
					&cli.StringFlag{
						Name:  "filter",
						Usage: "only show services matching this expression, eg. 'isDelayed && delayMinutes > 5'",
					},
				},
				Action: func(c *cli.Context) error {
					format, err := ParseFormat(c.String("format"))
					if err != nil {
						return err
					}

					cfg, client, err := newClient(c)
					if err != nil {
						return err
					}

					station := cfg.Station
					if c.Args().Present() {
						station = c.Args().First()
					}

					board, err := client.GetBoard(c.Context, station)
					if err != nil {
						return err
					}

					if c.Bool("details") {
						board = client.EnrichBoard(c.Context, board)
					}

					if c.String("filter") != "" {
						filter, err := boardfilter.Compile(c.String("filter"))
						if err != nil {
							return err
						}

						board, err = filter.Apply(board)
						if err != nil {
							return err
						}
					}

					return PrintBoard(os.Stdout, board, format)
				},
			},
			{
				Name:      "service",
				Usage:     "print the details of a single service",
				ArgsUsage: "<service id>",
				Flags: []cli.Flag{
					configFlag,
					formatFlag,
					cacheFlag,
				},
				Action: func(c *cli.Context) error {
					if !c.Args().Present() {
						return errors.New("a service id is required")
					}

					format, err := ParseFormat(c.String("format"))
					if err != nil {
						return err
					}
					if format == FormatCSV {
						return errors.New("csv output is only supported for boards")
					}

					_, client, err := newClient(c)
					if err != nil {
						return err
					}

					service, err := client.GetServiceDetails(c.Context, c.Args().First())
					if err != nil {
						return err
					}

					if format == FormatPretty {
						_, err = pretty.Fprintf(os.Stdout, "%# v\n", service)
						return err
					}

					return WriteServiceText(os.Stdout, service)
				},
			},
		},
	}
}

func newClient(c *cli.Context) (*config.Config, *ldbws.Client, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.RequireToken(); err != nil {
		return nil, nil, err
	}

	client := cfg.NewClient()

	if c.Bool("cache") {
		if err := redis_client.Connect(); err != nil {
			return nil, nil, err
		}

		client.ServiceCache = servicecache.New(redis_client.Client, cfg.CacheExpiration())
	}

	return cfg, client, nil
}

func PrintBoard(w io.Writer, board *railmodel.DepartureBoard, format Format) error {
	switch format {
	case FormatCSV:
		return WriteBoardCSV(w, board)
	case FormatPretty:
		_, err := pretty.Fprintf(w, "%# v\n", board)
		return err
	default:
		return WriteBoardText(w, board)
	}
}
