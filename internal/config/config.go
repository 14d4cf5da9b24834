package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	API     APIConfig     `yaml:"api"`
	Session SessionConfig `yaml:"session"`
	Flights FlightsConfig `yaml:"flights"`
	Logging LoggingConfig `yaml:"logging"`
	DevAPI  DevAPIConfig  `yaml:"devapi"`
}

type APIConfig struct {
	BaseURL   string  `yaml:"base_url"`
	RateLimit float64 `yaml:"rate_limit"` // requests per second, 0 disables pacing
	Burst     int     `yaml:"burst"`
}

type SessionConfig struct {
	Path string        `yaml:"path"`
	TTL  time.Duration `yaml:"ttl"`
}

type FlightsConfig struct {
	RefreshAfterDelete bool `yaml:"refresh_after_delete"`
}

type LoggingConfig struct {
	Level string `yaml:"level"` // "DEBUG", "INFO", "WARN", "ERROR"
}

type DevAPIConfig struct {
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
}

// Load builds the configuration from defaults, the optional YAML file at
// configPath and environment overrides, in that order.
func Load(configPath string) (*Config, error) {
	config := &Config{}
	config.setDefaults()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := config.loadFromEnv(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// DefaultSessionPath is where the identity token lives when nothing else is configured.
func DefaultSessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(".fms", "session.db")
	}
	return filepath.Join(home, ".fms", "session.db")
}

func (c *Config) setDefaults() {
	c.API.BaseURL = "http://localhost:5000"
	c.API.RateLimit = 0
	c.API.Burst = 1

	c.Session.Path = DefaultSessionPath()
	c.Session.TTL = 7 * 24 * time.Hour

	c.Flights.RefreshAfterDelete = false

	c.Logging.Level = "INFO"

	c.DevAPI.Port = 5000
	c.DevAPI.ReadTimeout = 15 * time.Second
	c.DevAPI.WriteTimeout = 15 * time.Second
	c.DevAPI.IdleTimeout = 60 * time.Second
}

func (c *Config) loadFromEnv() error {
	if baseURL := os.Getenv("FMS_API_URL"); baseURL != "" {
		c.API.BaseURL = baseURL
	}

	if rps := os.Getenv("FMS_API_RATE_LIMIT"); rps != "" {
		r, err := strconv.ParseFloat(rps, 64)
		if err != nil {
			return fmt.Errorf("FMS_API_RATE_LIMIT must be a number, got %q", rps)
		}
		c.API.RateLimit = r
	}

	if path := os.Getenv("FMS_SESSION_PATH"); path != "" {
		c.Session.Path = path
	}

	if refresh := os.Getenv("FMS_REFRESH_AFTER_DELETE"); refresh != "" {
		b, err := strconv.ParseBool(refresh)
		if err != nil {
			return fmt.Errorf("FMS_REFRESH_AFTER_DELETE must be true or false, got %q", refresh)
		}
		c.Flights.RefreshAfterDelete = b
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}

	if port := os.Getenv("FMS_DEVAPI_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("FMS_DEVAPI_PORT must be an integer, got %q", port)
		}
		c.DevAPI.Port = p
	}

	return nil
}

func (c *Config) validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api base URL must be an absolute URL, got %q", c.API.BaseURL)
	}

	if c.API.RateLimit < 0 {
		return fmt.Errorf("api rate limit cannot be negative")
	}

	if c.API.RateLimit > 0 && c.API.Burst < 1 {
		return fmt.Errorf("api burst must be at least 1 when rate limiting is enabled")
	}

	if c.Session.Path == "" {
		return fmt.Errorf("session path cannot be empty")
	}

	if c.Session.TTL <= 0 {
		return fmt.Errorf("session ttl must be positive")
	}

	c.Logging.Level = strings.ToUpper(c.Logging.Level)
	switch c.Logging.Level {
	case "DEBUG", "INFO", "WARN", "ERROR":
	default:
		return fmt.Errorf("log level must be 'DEBUG', 'INFO', 'WARN', or 'ERROR'")
	}

	if c.DevAPI.Port < 1 || c.DevAPI.Port > 65535 {
		return fmt.Errorf("devapi port must be between 1 and 65535")
	}

	return nil
}
