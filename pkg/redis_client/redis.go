package redis_client

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/adjust/rmq/v5"
	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/travigo/railnav/pkg/util"
)

var Client *redis.Client
var QueueConnection rmq.Connection

const defaultConnectionAddress = "localhost:6379"
const defaultConnectionPassword = ""
const defaultDatabase = 0

const queueConnectionTag = "railnav"

const maxConnectRetries = 5

func Connect() error {
	options, err := OptionsFromEnvironment(util.GetEnvironmentVariables())
	if err != nil {
		return err
	}

	return Use(redis.NewClient(options), backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxConnectRetries))
}

// OptionsFromEnvironment reads RAILNAV_REDIS_ADDRESS, RAILNAV_REDIS_PASSWORD and RAILNAV_REDIS_DATABASE
func OptionsFromEnvironment(env map[string]string) (*redis.Options, error) {
	options := &redis.Options{
		Addr:     defaultConnectionAddress,
		Password: defaultConnectionPassword,
		DB:       defaultDatabase,
	}

	if env["RAILNAV_REDIS_ADDRESS"] != "" {
		options.Addr = env["RAILNAV_REDIS_ADDRESS"]
	}

	if env["RAILNAV_REDIS_PASSWORD"] != "" {
		options.Password = env["RAILNAV_REDIS_PASSWORD"]
	}

	if env["RAILNAV_REDIS_DATABASE"] != "" {
		n, err := strconv.Atoi(env["RAILNAV_REDIS_DATABASE"])
		if err != nil {
			return nil, fmt.Errorf("RAILNAV_REDIS_DATABASE: %w", err)
		}
		options.DB = n
	}

	return options, nil
}

// Use pings the client until it answers or the backoff gives up, then opens the queue connection on it
func Use(client *redis.Client, retry backoff.BackOff) error {
	ping := func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		return client.Ping(ctx).Err()
	}
	notify := func(err error, wait time.Duration) {
		log.Warn().Err(err).Str("address", client.Options().Addr).Str("retry", wait.String()).Msg("Redis not ready")
	}

	if err := backoff.RetryNotify(ping, retry, notify); err != nil {
		return err
	}

	queueConnection, err := rmq.OpenConnectionWithRedisClient(queueConnectionTag, client, nil)
	if err != nil {
		return err
	}

	Client = client
	QueueConnection = queueConnection

	log.Info().Str("address", client.Options().Addr).Msg("Connected to Redis")

	return nil
}
