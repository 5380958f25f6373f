package events

import (
	"encoding/json"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/railnav/pkg/consumer"
	"github.com/travigo/railnav/pkg/redis_client"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "events",
		Usage: "Provides the disruption events runner",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "consume and print disruption events",
				Action: func(c *cli.Context) error {
					if err := redis_client.Connect(); err != nil {
						return err
					}

					redisConsumer := consumer.RedisConsumer{
						Connection:      redis_client.QueueConnection,
						QueueName:       QueueName,
						NumberConsumers: 2,
						BatchSize:       20,
						Timeout:         2 * time.Second,
						Consumer:        NewBatchConsumer(),
					}
					if err := redisConsumer.Setup(); err != nil {
						return err
					}

					signals := make(chan os.Signal, 1)
					signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
					defer signal.Stop(signals)

					<-signals // wait for signal
					go func() {
						<-signals // hard exit on second signal (in case shutdown gets stuck)
						os.Exit(1)
					}()

					<-redis_client.QueueConnection.StopAllConsuming() // wait for all Consume() calls to finish

					return nil
				},
			},
			{
				Name:  "test-event",
				Usage: "generate a test event",
				Action: func(c *cli.Context) error {
					if err := redis_client.Connect(); err != nil {
						return err
					}

					eventsQueue, err := redis_client.QueueConnection.OpenQueue(QueueName)
					if err != nil {
						return err
					}

					departure := time.Now().Truncate(time.Minute)
					reason := "This train has been cancelled because of a shortage of train crew"
					event := Event{
						Type:      EventTypeServiceCancelled,
						Timestamp: time.Now(),
						Station:   "DEW",
						Service: ServiceSummary{
							ID:                 "TEST",
							Destination:        "Leeds",
							ScheduledDeparture: &departure,
							Reason:             &reason,
						},
					}

					eventBytes, _ := json.Marshal(event)

					log.Info().Str("queue", QueueName).Msg("Publishing test event")
					return eventsQueue.PublishBytes(eventBytes)
				},
			},
		},
	}
}
