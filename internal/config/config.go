// Package config resolves runtime settings from defaults, a .env file, an
// optional TOML file and PSYTESTS_* environment variables. Command-line
// flags are applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

type Config struct {
	// DBPath is empty when the store should pick its default location.
	DBPath string `toml:"db"`

	// Locale selects the built-in question bank and UI texts. Accepts BCP-47
	// tags and POSIX LANG values.
	Locale string `toml:"lang"`

	// BankFile replaces the built-in bank with a YAML file.
	BankFile string `toml:"bank"`

	Insights    bool   `toml:"insights"`
	MetricsAddr string `toml:"metrics_addr"`
}

func Default() Config {
	return Config{Insights: true}
}

// DefaultPath is $XDG_CONFIG_HOME/psytests/config.toml, falling back to
// ~/.config.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "psytests", "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "psytests", "config.toml")
}

// Load builds the configuration. path names the TOML file; an empty path
// means DefaultPath. A missing file is not an error.
func Load(path string) (Config, error) {
	// .env never overrides variables that are already set.
	_ = godotenv.Load()

	cfg := Default()

	if path == "" {
		path = DefaultPath()
	}
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("config file %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("PSYTESTS_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("PSYTESTS_LANG"); v != "" {
		cfg.Locale = v
	} else if cfg.Locale == "" {
		cfg.Locale = os.Getenv("LANG")
	}
	if v := os.Getenv("PSYTESTS_BANK"); v != "" {
		cfg.BankFile = v
	}
	if v := os.Getenv("PSYTESTS_INSIGHTS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("PSYTESTS_INSIGHTS=%q: %w", v, err)
		}
		cfg.Insights = b
	}
	if v := os.Getenv("PSYTESTS_METRICS_ADDR"); v != "" {
		cfg.MetricsAddr = v
	}
	return nil
}
