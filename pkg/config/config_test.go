package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/railnav/pkg/ldbws"
)

func TestDefault(t *testing.T) {
	config := Default()
	require.NoError(t, config.Validate())

	assert.Equal(t, "DEW", config.Station)
	assert.Equal(t, ldbws.DefaultEndpoint, config.LDBWS.Endpoint)
	assert.Equal(t, 10, config.LDBWS.NumRows)
	assert.Equal(t, 120, config.LDBWS.TimeWindow)
	assert.Equal(t, 30*time.Second, config.RefreshInterval())
	assert.Equal(t, 20*time.Second, config.RequestTimeout())
	assert.Error(t, config.RequireToken())
}

func TestLoadFile(t *testing.T) {
	t.Setenv("RAILNAV_LDBWS_TOKEN", "")

	config, err := Load("testdata/railnav.yaml")
	require.NoError(t, err)

	assert.Equal(t, "LDS", config.Station)
	assert.Equal(t, "file-token", config.LDBWS.Token)
	assert.Equal(t, 5, config.LDBWS.NumRows)
	assert.Equal(t, 60, config.LDBWS.TimeWindow)
	assert.Equal(t, ldbws.DefaultEndpoint, config.LDBWS.Endpoint)
	assert.Equal(t, 10*time.Second, config.RequestTimeout())
	assert.Equal(t, time.Minute, config.RefreshInterval())
	assert.True(t, config.ServiceCache.Enabled)
	assert.Equal(t, 5*time.Minute, config.CacheExpiration())
	assert.Equal(t, "127.0.0.1:9000", config.API.Address)
	assert.NoError(t, config.RequireToken())
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("RAILNAV_LDBWS_TOKEN", "env-token")
	t.Setenv("RAILNAV_LDBWS_ENDPOINT", "http://localhost:1234/ldb12.asmx")
	t.Setenv("RAILNAV_STATION", "kgx")

	config, err := Load("testdata/railnav.yaml")
	require.NoError(t, err)

	assert.Equal(t, "env-token", config.LDBWS.Token)
	assert.Equal(t, "http://localhost:1234/ldb12.asmx", config.LDBWS.Endpoint)
	assert.Equal(t, "KGX", config.Station)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad station", "Station: DEWSBURY"},
		{"too many rows", "LDBWS:\n  NumRows: 50"},
		{"bad window", "LDBWS:\n  TimeWindow: 0"},
		{"bad duration", "Monitor:\n  RefreshInterval: 30s"},
		{"zero duration", "Monitor:\n  RefreshInterval: PT0S"},
		{"not yaml", "Station: [DEW"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "railnav.yaml")
			require.NoError(t, os.WriteFile(path, []byte(test.content), 0o600))

			_, err := Load(path)
			assert.Error(t, err)
		})
	}

	_, err := Load("testdata/missing.yaml")
	assert.Error(t, err)
}

func TestParseDuration(t *testing.T) {
	tests := map[string]time.Duration{
		"PT30S":  30 * time.Second,
		"PT1M":   time.Minute,
		"PT1H5M": time.Hour + 5*time.Minute,
	}

	for value, expected := range tests {
		duration, err := ParseDuration(value)
		require.NoError(t, err, value)
		assert.Equal(t, expected, duration, value)
	}
}

func TestNewClient(t *testing.T) {
	config := Default()
	config.LDBWS.Token = "token"
	config.LDBWS.NumRows = 4
	config.LDBWS.TimeWindow = 60
	config.LDBWS.RequestTimeout = "PT5S"
	require.NoError(t, config.Validate())

	client := config.NewClient()
	assert.Equal(t, "token", client.Token)
	assert.Equal(t, 4, client.NumRows)
	assert.Equal(t, 60, client.TimeWindow)

	transport, ok := client.Transport.(*ldbws.HTTPTransport)
	require.True(t, ok)
	assert.Equal(t, ldbws.DefaultEndpoint, transport.Endpoint)
	assert.Equal(t, 5*time.Second, transport.Timeout)
}
