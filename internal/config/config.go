package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/AngelCh415/campaign-analytics/internal/dataset"
)

type Config struct {
	Env       string `envconfig:"APP_ENV" default:"development"`
	Port      string `envconfig:"PORT" default:"8051"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`

	Seed       int64  `envconfig:"DATASET_SEED" default:"42"`
	Rows       int    `envconfig:"DATASET_ROWS" default:"1000"`
	Days       int    `envconfig:"DATASET_DAYS" default:"100"`
	Start      string `envconfig:"DATASET_START" default:"2024-01-01"`
	ClampCards bool   `envconfig:"DATASET_CLAMP_CARDS" default:"true"`

	Locale   string `envconfig:"DISPLAY_LOCALE" default:"pt-BR"`
	Currency string `envconfig:"DISPLAY_CURRENCY" default:"R$"`

	RequestTimeout time.Duration `envconfig:"HTTP_REQUEST_TIMEOUT" default:"15s"`
	RateLimit      int           `envconfig:"HTTP_RATE_LIMIT" default:"120"`
}

func FromEnv() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func (c Config) IsProduction() bool { return c.Env == "production" }

func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// DatasetConfig converts the DATASET_* settings into a generator config.
func (c Config) DatasetConfig() (dataset.Config, error) {
	start, err := time.Parse("2006-01-02", c.Start)
	if err != nil {
		return dataset.Config{}, fmt.Errorf("config: DATASET_START: %w", err)
	}
	d := dataset.DefaultConfig()
	d.Seed = c.Seed
	d.Rows = c.Rows
	d.Days = c.Days
	d.Start = start
	d.ClampCards = c.ClampCards
	if err := d.Validate(); err != nil {
		return dataset.Config{}, err
	}
	return d, nil
}
