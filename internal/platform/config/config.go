package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultAPITimeout = 30 * time.Second
	defaultTable      = "Exchange_Rates"
	defaultJobName    = "exchange_rates_etl"
)

// Config holds the job configuration.
type Config struct {
	APIBaseURL  string        `mapstructure:"API_BASE_URL" validate:"required,url"`
	APITimeout  time.Duration `mapstructure:"API_TIMEOUT" validate:"gt=0"`
	DBServer    string        `mapstructure:"DB_SERVER" validate:"required_without=DatabaseURL"`
	DBName      string        `mapstructure:"DB_NAME" validate:"required_without=DatabaseURL"`
	DatabaseURL string        `mapstructure:"DATABASE_URL"`
	DBTable     string        `mapstructure:"DB_TABLE" validate:"required"`
	LogLevel    string        `mapstructure:"LOG_LEVEL" validate:"oneof=debug info warn warning error"`

	// FailOnError makes the binary exit non-zero when a run fails.
	// Off by default: a failed run is logged and the process still exits 0.
	FailOnError bool `mapstructure:"FAIL_ON_ERROR"`

	// Schedule is a cron spec; empty runs the pipeline once and exits.
	Schedule string `mapstructure:"SCHEDULE"`

	MetricsPushgatewayURL string `mapstructure:"METRICS_PUSHGATEWAY_URL" validate:"omitempty,url"`
	MetricsJobName        string `mapstructure:"METRICS_JOB_NAME" validate:"required"`
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("API_BASE_URL", "")
	v.SetDefault("API_TIMEOUT", defaultAPITimeout.String())
	v.SetDefault("DB_SERVER", "localhost")
	v.SetDefault("DB_NAME", "")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_TABLE", defaultTable)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("FAIL_ON_ERROR", false)
	v.SetDefault("SCHEDULE", "")
	v.SetDefault("METRICS_PUSHGATEWAY_URL", "")
	v.SetDefault("METRICS_JOB_NAME", defaultJobName)
	v.AutomaticEnv()

	cfg := &Config{}

	cfg.APIBaseURL = strings.TrimSpace(v.GetString("API_BASE_URL"))

	apiTimeoutStr := v.GetString("API_TIMEOUT")
	apiTimeout, err := time.ParseDuration(apiTimeoutStr)
	if err != nil || apiTimeout <= 0 {
		apiTimeout = defaultAPITimeout
		log.Printf("Warning: Invalid value for API_TIMEOUT ('%s'). Defaulting to %s.\n", apiTimeoutStr, apiTimeout.String())
	}
	cfg.APITimeout = apiTimeout

	cfg.DBServer = v.GetString("DB_SERVER")
	cfg.DBName = v.GetString("DB_NAME")
	cfg.DatabaseURL = v.GetString("DATABASE_URL")
	cfg.DBTable = v.GetString("DB_TABLE")
	if cfg.DBTable == "" {
		cfg.DBTable = defaultTable
		log.Printf("Warning: DB_TABLE not set. Defaulting to %s.\n", cfg.DBTable)
	}

	cfg.LogLevel = strings.ToLower(strings.TrimSpace(v.GetString("LOG_LEVEL")))
	cfg.FailOnError = v.GetBool("FAIL_ON_ERROR")
	cfg.Schedule = strings.TrimSpace(v.GetString("SCHEDULE"))
	cfg.MetricsPushgatewayURL = v.GetString("METRICS_PUSHGATEWAY_URL")
	cfg.MetricsJobName = v.GetString("METRICS_JOB_NAME")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required fields and formats.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
