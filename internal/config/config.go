// Package config loads tango settings from a TOML file, then environment
// overrides, then validates the result.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "TANGO_"

// Config is the full tango configuration.
type Config struct {
	// User identifies the learner in local mode. In remote mode the server
	// takes the user from the bearer token.
	User   string       `toml:"user" env:"USER_ID" validate:"required"`
	DB     string       `toml:"db" env:"DB"`
	Log    LogConfig    `toml:"log" envPrefix:"LOG_"`
	Remote RemoteConfig `toml:"remote" envPrefix:"REMOTE_"`
	Server ServerConfig `toml:"server" envPrefix:"SERVER_"`
	Study  StudyConfig  `toml:"study" envPrefix:"STUDY_"`
}

// LogConfig configures slog output.
type LogConfig struct {
	Level string `toml:"level" env:"LEVEL" validate:"omitempty,oneof=debug info warn error"`
	// File receives logs from interactive commands. Empty uses the XDG
	// state directory.
	File string `toml:"file" env:"FILE"`
}

// RemoteConfig points the client at a tango server. An empty URL selects
// the local database.
type RemoteConfig struct {
	URL     string        `toml:"url" env:"URL" validate:"omitempty,url"`
	Secret  string        `toml:"secret" env:"SECRET" validate:"required_with=URL"`
	Timeout time.Duration `toml:"timeout" env:"TIMEOUT" validate:"gte=0"`
}

// ServerConfig configures `tango serve`.
type ServerConfig struct {
	Addr   string `toml:"addr" env:"ADDR" validate:"required"`
	Secret string `toml:"secret" env:"SECRET"`
}

// StudyConfig holds session defaults.
type StudyConfig struct {
	Mode      string `toml:"mode" env:"MODE" validate:"oneof=flashcard quiz typing"`
	TimeLimit int    `toml:"time_limit" env:"TIME_LIMIT" validate:"gte=0,lte=3600"`
	TestCount int    `toml:"test_count" env:"TEST_COUNT" validate:"gte=1,lte=500"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	user := os.Getenv("USER")
	if user == "" {
		user = "local"
	}
	return Config{
		User: user,
		Log:  LogConfig{Level: "info"},
		Remote: RemoteConfig{
			Timeout: 10 * time.Second,
		},
		Server: ServerConfig{Addr: ":8080"},
		Study: StudyConfig{
			Mode:      "flashcard",
			TestCount: 20,
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/tango/config.toml.
func DefaultPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "tango", "config.toml"), nil
}

// Load reads the TOML file at path over the defaults, applies TANGO_*
// environment overrides and validates. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if err := loadFile(path, &cfg); err != nil {
		return Config{}, err
	}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to stat config: %w", err)
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode config: %w", err)
	}
	return nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints.
func Validate(cfg Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
