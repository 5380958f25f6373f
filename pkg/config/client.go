package config

import (
	"time"

	"github.com/travigo/railnav/pkg/ldbws"
)

// NewClient builds an LDBWS client over HTTP from the configured endpoint, token and board options
func (c *Config) NewClient() *ldbws.Client {
	transport := ldbws.NewHTTPTransport(c.LDBWS.Endpoint, c.RequestTimeout())

	client := ldbws.NewClient(c.LDBWS.Token, transport, time.Now)
	client.NumRows = c.LDBWS.NumRows
	client.TimeOffset = c.LDBWS.TimeOffset
	client.TimeWindow = c.LDBWS.TimeWindow

	return client
}
