package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	iso8601 "github.com/senseyeio/duration"
	"github.com/travigo/railnav/pkg/ldbws"
	"github.com/travigo/railnav/pkg/railmodel"
	"github.com/travigo/railnav/pkg/util"
	"gopkg.in/yaml.v3"
)

const (
	DefaultStation         = "DEW"
	DefaultRefreshInterval = "PT30S"
	DefaultRequestTimeout  = "PT20S"
	DefaultCacheExpiration = "PT2M"
	DefaultAPIAddress      = ":8080"

	// Boards with details are limited to 10 rows by LDBWS
	maxNumRows = 10
)

type Config struct {
	Station string `yaml:"Station"`

	LDBWS        LDBWSConfig        `yaml:"LDBWS"`
	Monitor      MonitorConfig      `yaml:"Monitor"`
	ServiceCache ServiceCacheConfig `yaml:"ServiceCache"`
	API          APIConfig          `yaml:"API"`
}

type LDBWSConfig struct {
	Endpoint       string `yaml:"Endpoint"`
	Token          string `yaml:"Token"`
	NumRows        int    `yaml:"NumRows"`
	TimeOffset     int    `yaml:"TimeOffset"`
	TimeWindow     int    `yaml:"TimeWindow"`
	RequestTimeout string `yaml:"RequestTimeout"`
}

type MonitorConfig struct {
	RefreshInterval string `yaml:"RefreshInterval"`
}

type ServiceCacheConfig struct {
	Enabled    bool   `yaml:"Enabled"`
	Expiration string `yaml:"Expiration"`
}

type APIConfig struct {
	Address string `yaml:"Address"`
}

func Default() *Config {
	return &Config{
		Station: DefaultStation,
		LDBWS: LDBWSConfig{
			Endpoint:       ldbws.DefaultEndpoint,
			NumRows:        ldbws.DefaultNumRows,
			TimeOffset:     ldbws.DefaultTimeOffset,
			TimeWindow:     ldbws.DefaultTimeWindow,
			RequestTimeout: DefaultRequestTimeout,
		},
		Monitor: MonitorConfig{
			RefreshInterval: DefaultRefreshInterval,
		},
		ServiceCache: ServiceCacheConfig{
			Expiration: DefaultCacheExpiration,
		},
		API: APIConfig{
			Address: DefaultAPIAddress,
		},
	}
}

// Load reads the optional YAML file at path over the defaults, then applies environment overrides
func Load(path string) (*Config, error) {
	config := Default()

	if path != "" {
		file, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
	}

	config.ApplyEnvironment(util.GetEnvironmentVariables())

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) ApplyEnvironment(env map[string]string) {
	if env["RAILNAV_LDBWS_TOKEN"] != "" {
		c.LDBWS.Token = env["RAILNAV_LDBWS_TOKEN"]
	}
	if env["RAILNAV_LDBWS_ENDPOINT"] != "" {
		c.LDBWS.Endpoint = env["RAILNAV_LDBWS_ENDPOINT"]
	}
	if env["RAILNAV_STATION"] != "" {
		c.Station = env["RAILNAV_STATION"]
	}
	if env["RAILNAV_API_ADDRESS"] != "" {
		c.API.Address = env["RAILNAV_API_ADDRESS"]
	}
}

func (c *Config) Validate() error {
	c.Station = strings.ToUpper(strings.TrimSpace(c.Station))
	if !railmodel.IsValidCRS(c.Station) {
		return fmt.Errorf("Station: %w: %q", ldbws.ErrInvalidCRS, c.Station)
	}

	if c.LDBWS.NumRows < 1 || c.LDBWS.NumRows > maxNumRows {
		return fmt.Errorf("LDBWS.NumRows must be between 1 and %d", maxNumRows)
	}
	if c.LDBWS.TimeOffset < -120 || c.LDBWS.TimeOffset > 119 {
		return errors.New("LDBWS.TimeOffset must be between -120 and 119")
	}
	if c.LDBWS.TimeWindow < 1 || c.LDBWS.TimeWindow > 120 {
		return errors.New("LDBWS.TimeWindow must be between 1 and 120")
	}

	durations := map[string]string{
		"LDBWS.RequestTimeout":    c.LDBWS.RequestTimeout,
		"Monitor.RefreshInterval": c.Monitor.RefreshInterval,
		"ServiceCache.Expiration": c.ServiceCache.Expiration,
	}
	for name, value := range durations {
		if _, err := ParseDuration(value); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	return nil
}

// RequireToken is checked by the commands that talk to LDBWS
func (c *Config) RequireToken() error {
	if strings.TrimSpace(c.LDBWS.Token) == "" {
		return errors.New("an LDBWS access token is required, set RAILNAV_LDBWS_TOKEN or LDBWS.Token")
	}

	return nil
}

func (c *Config) RequestTimeout() time.Duration {
	return mustParseDuration(c.LDBWS.RequestTimeout)
}

func (c *Config) RefreshInterval() time.Duration {
	return mustParseDuration(c.Monitor.RefreshInterval)
}

func (c *Config) CacheExpiration() time.Duration {
	return mustParseDuration(c.ServiceCache.Expiration)
}

// ParseDuration converts an ISO 8601 duration such as PT30S into a time.Duration
func ParseDuration(value string) (time.Duration, error) {
	duration, err := iso8601.ParseISO8601(value)
	if err != nil {
		return 0, err
	}

	reference := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	parsed := duration.Shift(reference).Sub(reference)
	if parsed <= 0 {
		return 0, fmt.Errorf("duration %q must be positive", value)
	}

	return parsed, nil
}

// Only used after Validate has accepted the value
func mustParseDuration(value string) time.Duration {
	duration, err := ParseDuration(value)
	if err != nil {
		panic(err)
	}

	return duration
}
