package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Config defines the stormwatch service configuration.
type Config struct {
	HTTP struct {
		Port string `yaml:"port" env:"STORMWATCH_HTTP_PORT"`
	} `yaml:"http"`
	Database struct {
		DSN string `yaml:"dsn" env:"STORMWATCH_POSTGRES_DSN"`
	} `yaml:"database"`
	Redis struct {
		Addr     string `yaml:"addr" env:"STORMWATCH_REDIS_ADDR"`
		Password string `yaml:"password" env:"STORMWATCH_REDIS_PASSWORD"`
	} `yaml:"redis"`
	Ingest struct {
		// MinIntervalSeconds is the minimum gap between accepted reports
		// from one station.
		MinIntervalSeconds int    `yaml:"minIntervalSeconds" env:"STORMWATCH_MIN_INTERVAL"`
		Timezone           string `yaml:"timezone" env:"STORMWATCH_TIMEZONE"`
	} `yaml:"ingest"`
}

// Load reads configuration via the shared loader.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.HTTP.Port = "8081"
	cfg.Ingest.MinIntervalSeconds = 3600
	cfg.Ingest.Timezone = "America/Denver"

	if err := hydrate(cfg); err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.Database.DSN) == "" {
		return nil, errors.New("config: database dsn required")
	}
	if cfg.Ingest.MinIntervalSeconds <= 0 {
		return nil, errors.New("config: min interval must be positive")
	}
	if strings.TrimSpace(cfg.Ingest.Timezone) == "" {
		return nil, errors.New("config: timezone required")
	}
	return cfg, nil
}

// HTTPAddress returns :port style.
func (c *Config) HTTPAddress() string {
	port := strings.TrimSpace(c.HTTP.Port)
	if port == "" {
		port = "8081"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return fmt.Sprintf(":%s", port)
}

// MinInterval returns the reporting interval as a duration.
func (c *Config) MinInterval() time.Duration {
	return time.Duration(c.Ingest.MinIntervalSeconds) * time.Second
}

// Location resolves the configured station timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Ingest.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config: load timezone %q: %w", c.Ingest.Timezone, err)
	}
	return loc, nil
}
