package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

type Config struct {
	Address        string `env:"ADDRESS" envDefault:":3000"`
	OVSAPIURL      string `env:"OVS_API_URL,required"`
	CookieSecure   bool   `env:"COOKIE_SECURE" envDefault:"false"`
	RequestTimeout int    `env:"REQUEST_TIMEOUT" envDefault:"10"`
}

func Load() (*Config, error) {
	// Load .env file if it exists (useful for local dev)
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if cfg.RequestTimeout <= 0 {
		return nil, fmt.Errorf("REQUEST_TIMEOUT must be positive")
	}

	return cfg, nil
}

func (c *Config) Timeout() time.Duration {
	return time.Duration(c.RequestTimeout) * time.Second
}
