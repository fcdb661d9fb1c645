package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/jask/numentry/internal/numfmt"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Number   NumberConfig   `mapstructure:"number"`
	Log      LogConfig      `mapstructure:"log"`
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// NumberConfig controls how amounts are shown and read.
type NumberConfig struct {
	// Format is a format string or preset name for envelope amounts.
	Format string `mapstructure:"format"`
	// TotalFormat renders the budget total line.
	TotalFormat string `mapstructure:"total_format"`
	Locale      string `mapstructure:"locale"`
}

// LogConfig controls the log file; the terminal belongs to the UI.
type LogConfig struct {
	Path  string `mapstructure:"path"`
	Level string `mapstructure:"level"`
}

// Load reads configuration from file and env. Env var overrides use prefix NUMENTRY_.
func Load() (Config, error) {
	v := viper.New()

	home := os.Getenv("HOME")
	v.SetDefault("database.path", filepath.Join(home, ".local", "share", "numentry", "numentry.db"))
	v.SetDefault("number.format", numfmt.DefaultFormat)
	v.SetDefault("number.total_format", "$0,0.00")
	v.SetDefault("number.locale", "en-US")
	v.SetDefault("log.path", filepath.Join(home, ".local", "state", "numentry", "numentry.log"))
	v.SetDefault("log.level", "info")

	v.SetConfigType("toml")

	if cfgPath := os.Getenv("NUMENTRY_CONFIG"); cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(home, ".config", "numentry"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("NUMENTRY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes cfg to disk, creating the config directory if needed.
func Save(cfg Config) error {
	path := os.Getenv("NUMENTRY_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "numentry", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("number.format", cfg.Number.Format)
	v.Set("number.total_format", cfg.Number.TotalFormat)
	v.Set("number.locale", cfg.Number.Locale)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Validate resolves format presets in place and checks the log level.
func (c *Config) Validate() error {
	format, err := numfmt.ResolveFormat(c.Number.Format)
	if err != nil {
		return fmt.Errorf("number.format: %w", err)
	}
	c.Number.Format = format

	total, err := numfmt.ResolveFormat(c.Number.TotalFormat)
	if err != nil {
		return fmt.Errorf("number.total_format: %w", err)
	}
	c.Number.TotalFormat = total

	if _, err := c.Log.SlogLevel(); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf("database.path: empty")
	}
	return nil
}

// SlogLevel parses Level ("debug", "info", "warn", "error").
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if strings.TrimSpace(l.Level) == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(l.Level))); err != nil {
		return slog.LevelInfo, err
	}
	return lvl, nil
}

// Formatter builds the number formatter for the configured locale.
func (c Config) Formatter() *numfmt.Formatter {
	return numfmt.New(numfmt.LocaleFor(c.Number.Locale))
}
