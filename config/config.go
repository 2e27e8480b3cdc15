package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is stripped from environment variables before they are mapped
// onto Config, e.g. CONTACTS_DATABASE_PATH -> database_path.
const EnvPrefix = "CONTACTS_"

const (
	DefaultDatabasePath = "data.sqlite"
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "console"
)

type Config struct {
	// sqlite database file
	DatabasePath string `koanf:"database_path" validate:"required"`

	// logging
	LogLevel  string `koanf:"log_level" validate:"oneof=trace debug info warn error"`
	LogFormat string `koanf:"log_format" validate:"oneof=console json"`

	// create the user/person/phone tables on startup if they are missing
	CreateSchema bool `koanf:"create_schema"`
}

// Defaults returns the configuration used when no environment overrides are set.
func Defaults() Config {
	return Config{
		DatabasePath: DefaultDatabasePath,
		LogLevel:     DefaultLogLevel,
		LogFormat:    DefaultLogFormat,
		CreateSchema: true,
	}
}

// LoadConfig reads an optional .env file, overlays CONTACTS_* environment
// variables on top of Defaults and validates the result.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	}

	k := koanf.New(".")
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return Config{}, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := Defaults()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cfg against its validate tags.
func Validate(cfg Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
