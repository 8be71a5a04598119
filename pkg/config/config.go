// Package config loads service configuration from defaults, an optional
// YAML file and the environment, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Default values.
const (
	DefaultHTTPAddr        = ":8443"
	DefaultSessionTTL      = 24 * time.Hour
	DefaultOtelProbability = 1.0
	DefaultLogLevel        = "info"
)

// Config holds all service settings.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Auth     AuthConfig     `yaml:"auth"`
	Otel     OtelConfig     `yaml:"otel"`
	Log      LogConfig      `yaml:"log"`
}

// HTTPConfig configures the listener. TLS is used when both cert and key
// are set.
type HTTPConfig struct {
	Addr    string `yaml:"addr"`
	TLSCert string `yaml:"tls_cert"`
	TLSKey  string `yaml:"tls_key"`
}

// TLS reports whether a certificate pair is configured.
func (h HTTPConfig) TLS() bool {
	return h.TLSCert != "" && h.TLSKey != ""
}

// DatabaseConfig configures PostgreSQL. An empty URL selects the in-memory
// stores.
type DatabaseConfig struct {
	URL string `yaml:"url"`
}

// RedisConfig configures the session store.
type RedisConfig struct {
	Addr string `yaml:"addr"`
}

// AuthConfig controls request authentication.
type AuthConfig struct {
	// SessionTTL is how long a login token stays valid. Default: 24h.
	SessionTTL time.Duration `yaml:"session_ttl"`

	// Disabled turns off authentication on the resource routes.
	Disabled bool `yaml:"disabled"`
}

// OtelConfig controls tracing export.
type OtelConfig struct {
	Host        string  `yaml:"host"`
	Probability float64 `yaml:"probability"`
}

// LogConfig controls the logger.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns a Config populated with defaults.
func Default() Config {
	return Config{
		HTTP:  HTTPConfig{Addr: DefaultHTTPAddr},
		Redis: RedisConfig{Addr: "localhost:6379"},
		Auth:  AuthConfig{SessionTTL: DefaultSessionTTL},
		Otel:  OtelConfig{Probability: DefaultOtelProbability},
		Log:   LogConfig{Level: DefaultLogLevel},
	}
}

// Load builds the configuration. A .env file in the working directory is
// loaded into the environment if present. path may be empty, in which case
// CONFIG_FILE is consulted.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	var errs []error
	if c.HTTP.Addr == "" {
		errs = append(errs, errors.New("http.addr must not be empty"))
	}
	if (c.HTTP.TLSCert == "") != (c.HTTP.TLSKey == "") {
		errs = append(errs, errors.New("http.tls_cert and http.tls_key must be set together"))
	}
	if c.Auth.SessionTTL <= 0 {
		errs = append(errs, fmt.Errorf("auth.session_ttl must be positive, got %s", c.Auth.SessionTTL))
	}
	if c.Otel.Probability < 0 || c.Otel.Probability > 1 {
		errs = append(errs, fmt.Errorf("otel.probability must be in [0,1], got %v", c.Otel.Probability))
	}
	return errors.Join(errs...)
}

func applyEnv(c *Config) error {
	setString(&c.HTTP.Addr, "HTTP_ADDR")
	setString(&c.HTTP.TLSCert, "TLS_CERT")
	setString(&c.HTTP.TLSKey, "TLS_KEY")
	setString(&c.Database.URL, "DATABASE_URL")
	setString(&c.Redis.Addr, "REDIS_ADDR")
	setString(&c.Otel.Host, "OTEL_HOST")
	setString(&c.Log.Level, "LOG_LEVEL")

	if v := env("SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("SESSION_TTL: %w", err)
		}
		c.Auth.SessionTTL = d
	}
	if v := env("AUTH_DISABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("AUTH_DISABLED: %w", err)
		}
		c.Auth.Disabled = b
	}
	if v := env("OTEL_PROBABILITY"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("OTEL_PROBABILITY: %w", err)
		}
		c.Otel.Probability = f
	}
	return nil
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func setString(dst *string, key string) {
	if v := env(key); v != "" {
		*dst = v
	}
}
