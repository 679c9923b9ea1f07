package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://v6.exchangerate-api.com/v6/key/latest/USD")
	t.Setenv("DB_SERVER", "db.internal")
	t.Setenv("DB_NAME", "rates")
}

func TestLoadConfig_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://v6.exchangerate-api.com/v6/key/latest/USD", cfg.APIBaseURL)
	assert.Equal(t, 30*time.Second, cfg.APITimeout)
	assert.Equal(t, "db.internal", cfg.DBServer)
	assert.Equal(t, "rates", cfg.DBName)
	assert.Equal(t, "Exchange_Rates", cfg.DBTable)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.FailOnError)
	assert.Empty(t, cfg.Schedule)
	assert.Empty(t, cfg.MetricsPushgatewayURL)
	assert.Equal(t, "exchange_rates_etl", cfg.MetricsJobName)
}

func TestLoadConfig_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("API_TIMEOUT", "5s")
	t.Setenv("DB_TABLE", "fx_rates")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("FAIL_ON_ERROR", "true")
	t.Setenv("SCHEDULE", "@daily")
	t.Setenv("METRICS_PUSHGATEWAY_URL", "http://pushgateway:9091")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, cfg.APITimeout)
	assert.Equal(t, "fx_rates", cfg.DBTable)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.FailOnError)
	assert.Equal(t, "@daily", cfg.Schedule)
	assert.Equal(t, "http://pushgateway:9091", cfg.MetricsPushgatewayURL)
}

func TestLoadConfig_InvalidTimeoutFallsBack(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("API_TIMEOUT", "soon")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.APITimeout)
}

func TestLoadConfig_MissingAPIBaseURL(t *testing.T) {
	t.Setenv("API_BASE_URL", "")
	t.Setenv("DB_NAME", "rates")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "APIBaseURL")
}

func TestLoadConfig_DatabaseURLReplacesServerAndName(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://example.com/latest/USD")
	t.Setenv("DB_NAME", "")
	t.Setenv("DATABASE_URL", "postgres://etl@db/rates")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "postgres://etl@db/rates", cfg.DatabaseURL)
}

func TestLoadConfig_MissingDatabase(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://example.com/latest/USD")
	t.Setenv("DB_NAME", "")
	t.Setenv("DATABASE_URL", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DBName")
}

func TestValidate_RejectsBadValues(t *testing.T) {
	base := Config{
		APIBaseURL:     "https://example.com",
		APITimeout:     time.Second,
		DBServer:       "localhost",
		DBName:         "rates",
		DBTable:        "Exchange_Rates",
		LogLevel:       "info",
		MetricsJobName: "job",
	}
	require.NoError(t, base.Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"non url endpoint", func(c *Config) { c.APIBaseURL = "not a url" }},
		{"zero timeout", func(c *Config) { c.APITimeout = 0 }},
		{"unknown log level", func(c *Config) { c.LogLevel = "trace" }},
		{"bad pushgateway url", func(c *Config) { c.MetricsPushgatewayURL = "::" }},
		{"empty table", func(c *Config) { c.DBTable = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base
			tt.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}
