package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP struct {
		Addr string `yaml:"addr"`
	} `yaml:"http"`

	// Environment is "development" or "production". It controls the
	// Secure attribute on synthetic session cookies.
	Environment string `yaml:"environment"`

	GraphQL struct {
		// UpstreamURL overrides the env-var based upstream resolution
		// when set in the config file.
		UpstreamURL string `yaml:"upstreamUrl"`
	} `yaml:"graphql"`
}

func (c Config) Production() bool {
	return c.Environment == "production"
}

func Load() (Config, error) {
	cfg := Config{}
	cfg.HTTP.Addr = ":3000"
	cfg.Environment = "development"

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config yaml: %w", err)
		}
	}

	// Environment overrides (expected in deploy).
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.HTTP.Addr = ":" + v
	}
	if v := os.Getenv("APP_ENV"); v != "" {
		cfg.Environment = v
	}
	if v := os.Getenv("GRAPHQL_UPSTREAM_ENDPOINT"); v != "" {
		cfg.GraphQL.UpstreamURL = v
	}

	return cfg, nil
}
