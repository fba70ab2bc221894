// Package config handles application configuration from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all application configuration.
type Config struct {
	Garmin GarminConfig
	Model  ModelConfig

	HistoryDays int           `env:"RACEPLAN_HISTORY_DAYS" envDefault:"90"`
	HTTPTimeout time.Duration `env:"RACEPLAN_HTTP_TIMEOUT" envDefault:"30s"`
	LogLevel    string        `env:"RACEPLAN_LOG_LEVEL" envDefault:"info"`
	NoCache     bool          `env:"RACEPLAN_NOCACHE"`
}

// GarminConfig holds the fitness account credentials.
type GarminConfig struct {
	Email    string `env:"GARMIN_EMAIL"`
	Password string `env:"GARMIN_PASSWORD"`
}

// ModelConfig holds the plan generation settings.
type ModelConfig struct {
	APIKey     string `env:"OPENAI_API_KEY"`
	Name       string `env:"RACEPLAN_MODEL" envDefault:"gpt-4o"`
	MaxRetries int    `env:"RACEPLAN_MAX_RETRIES" envDefault:"2"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return &cfg, nil
}

// Validate ensures every required credential is present.
func (c *Config) Validate() error {
	var missing []string
	if c.Garmin.Email == "" {
		missing = append(missing, "GARMIN_EMAIL")
	}
	if c.Garmin.Password == "" {
		missing = append(missing, "GARMIN_PASSWORD")
	}
	if c.Model.APIKey == "" {
		missing = append(missing, "OPENAI_API_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %v", missing)
	}
	if c.HistoryDays < 1 {
		return fmt.Errorf("RACEPLAN_HISTORY_DAYS must be positive, got %d", c.HistoryDays)
	}
	if c.Model.MaxRetries < 0 {
		return fmt.Errorf("RACEPLAN_MAX_RETRIES must not be negative, got %d", c.Model.MaxRetries)
	}
	return nil
}
