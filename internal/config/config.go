// Package config holds the gateway client configuration, loaded once at
// startup from an optional YAML file with environment variables overlaid.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the root configuration for the gateway client.
//
// Sources, in decreasing priority:
//  1. explicit path passed to Load;
//  2. path in the CONFIG_PATH environment variable;
//  3. environment variables only.
type Config struct {
	Environment string        `yaml:"environment" env:"AFRIKABAL_ENV" env-default:"development"`
	UserAgent   string        `yaml:"user_agent" env:"AFRIKABAL_USER_AGENT" env-default:"afrikabal-gateway-go/1.0"`
	Gateway     GatewayConfig `yaml:"gateway"`
	Session     SessionConfig `yaml:"session"`
	Redis       RedisConfig   `yaml:"redis"`
	ClientInfo  ClientInfo    `yaml:"client_info"`
}

// GatewayConfig holds the backend endpoints and the per-request timeout.
// The base URL is chosen by the configured environment name, never by
// inspecting the runtime host.
type GatewayConfig struct {
	DevBaseURL  string        `yaml:"dev_base_url" env:"AFRIKABAL_DEV_BASE_URL" env-default:"http://localhost:8080/api/v1"`
	ProdBaseURL string        `yaml:"prod_base_url" env:"AFRIKABAL_PROD_BASE_URL" env-default:"https://api.afrikabal.org/api/v1"`
	Timeout     time.Duration `yaml:"timeout" env:"AFRIKABAL_REQUEST_TIMEOUT" env-default:"20s"`
}

// SessionConfig controls how long a persisted session is retained.
type SessionConfig struct {
	TTL time.Duration `yaml:"ttl" env:"AFRIKABAL_SESSION_TTL" env-default:"24h"`
}

// RedisConfig configures the optional Redis session backend. An empty
// address means sessions are kept in memory only.
type RedisConfig struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR" env-default:""`
	Password string `yaml:"password" env:"REDIS_PASSWORD" env-default:""`
}

// ClientInfo holds the lookup endpoints used to resolve the caller's public
// IP address and coarse location.
type ClientInfo struct {
	IPLookupURL  string `yaml:"ip_lookup_url" env:"AFRIKABAL_IP_LOOKUP_URL" env-default:"https://api.ipify.org?format=json"`
	GeoLookupURL string `yaml:"geo_lookup_url" env:"AFRIKABAL_GEO_LOOKUP_URL" env-default:"http://ip-api.com/json"`
}

// BaseURL returns the gateway base URL for the configured environment.
func (c *Config) BaseURL() string {
	if strings.EqualFold(c.Environment, "production") {
		return c.Gateway.ProdBaseURL
	}
	return c.Gateway.DevBaseURL
}

// Load reads configuration from the given path, from CONFIG_PATH, or from
// environment variables alone when neither names a file.
func Load(path string) (*Config, error) {
	var cfg Config

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file %q stat failed: %w", path, err)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}
		return &cfg, nil
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read env: %w", err)
	}
	return &cfg, nil
}

// MustLoad is Load with a panic on error, for use in main.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}
