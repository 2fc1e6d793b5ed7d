package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultBaseURL        = "https://api.openweathermap.org/data/2.5"
	defaultTimeoutSeconds = 10
)

// Config holds everything the server needs. It is built once in main and
// injected; nothing reads process-wide state after startup.
type Config struct {
	APIKey         string `yaml:"api_key"`
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	LogLevel       string `yaml:"log_level"`
	LogFile        string `yaml:"log_file"`
}

// LoadConfig reads the optional YAML file named by WEATHER_CONFIG, applies
// environment overrides, then fills in defaults. A missing API key is not an
// error here: tool listing must still work, so the key is checked on first use.
func LoadConfig() (*Config, error) {
	cfg := &Config{}

	if path := os.Getenv("WEATHER_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if v := os.Getenv("OPENWEATHER_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("OPENWEATHER_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("WEATHER_TIMEOUT_SECONDS"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil || secs <= 0 {
			return nil, fmt.Errorf("invalid WEATHER_TIMEOUT_SECONDS: %q", v)
		}
		cfg.TimeoutSeconds = secs
	}
	if v := os.Getenv("WEATHER_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("WEATHER_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = defaultTimeoutSeconds
	}

	return cfg, nil
}

// Timeout returns the upstream HTTP timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
