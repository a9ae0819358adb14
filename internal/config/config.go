// Package config loads and validates application configuration.
// Values come from three layers, each overriding the previous: struct
// defaults, an optional YAML file, and TRIPFLOW_-prefixed environment
// variables (e.g. TRIPFLOW_DATABASEURL, TRIPFLOW_TRIP_IDFORMAT).
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/tmarques/tripflow/backend/internal/domain"
)

// Config holds all configuration values for the API server.
type Config struct {
	// Port is the TCP port the HTTP server listens on.
	Port string `koanf:"port"`

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string `koanf:"databaseurl"`

	// LogLevel controls the minimum log level: debug, info, warn, error.
	LogLevel string `koanf:"loglevel"`

	// CORSOrigins is a comma-separated list of allowed request origins.
	CORSOrigins string `koanf:"corsorigins"`

	Trip Trip `koanf:"trip"`
}

// Trip holds the engine-level settings injected at construction time.
type Trip struct {
	// IDFormat selects trip/activity id generation: "uuid" or "numeric".
	// Immutable for the lifetime of the process.
	IDFormat string `koanf:"idformat"`

	// Currency is the symbol prefixed to budget display strings.
	Currency string `koanf:"currency"`

	// DefaultImage is substituted when a trip has no image.
	DefaultImage string `koanf:"defaultimage"`
}

// Load reads configuration from defaults, the YAML file at path (skipped
// when absent), and environment variables, then validates the result.
func Load(path string) (Config, error) {
	k := koanf.New(".")

	err := k.Load(structs.Provider(Config{
		Port:        "8080",
		LogLevel:    "info",
		CORSOrigins: "http://localhost:5173",
		Trip: Trip{
			IDFormat:     string(domain.IDFormatUUID),
			Currency:     "₱",
			DefaultImage: "/assets/images/default-trip.jpg",
		},
	}, "koanf"), nil)
	if err != nil {
		return Config{}, fmt.Errorf("config defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			if !os.IsNotExist(err) {
				return Config{}, fmt.Errorf("config file %s: %w", path, err)
			}
			slog.Info("config file not found, using defaults and environment", "path", path)
		}
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: "TRIPFLOW_",
		TransformFunc: func(key, value string) (string, any) {
			key = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(key, "TRIPFLOW_")), "_", ".")
			return key, value
		},
	}), nil)
	if err != nil {
		return Config{}, fmt.Errorf("config env: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("config unmarshal: %w", err)
	}

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("required configuration not set: databaseurl (TRIPFLOW_DATABASEURL)")
	}
	if _, err := domain.ParseIDFormat(cfg.Trip.IDFormat); err != nil {
		return Config{}, fmt.Errorf("trip.idformat: %w", err)
	}

	return cfg, nil
}

// IDFormat returns the validated id format.
func (c Config) IDFormat() domain.IDFormat {
	f, _ := domain.ParseIDFormat(c.Trip.IDFormat)
	return f
}

// Origins splits the comma-separated CORS origin list, dropping empties.
func (c Config) Origins() []string {
	var out []string
	for _, part := range strings.Split(c.CORSOrigins, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
