// Package config provides configuration management for the journal.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"tradestats/internal/models"
)

// Config holds all application configuration.
type Config struct {
	Analytics AnalyticsConfig `mapstructure:"analytics"`
	UI        UIConfig        `mapstructure:"ui"`
	Log       LogConfig       `mapstructure:"log"`
	Database  DatabaseConfig  `mapstructure:"database"`
}

// AnalyticsConfig holds the engine defaults: starting equity and the
// consistency score targets. Stored settings in the database override these.
type AnalyticsConfig struct {
	StartingEquity     float64 `mapstructure:"starting_equity"`
	WinRateTarget      float64 `mapstructure:"win_rate_target"`
	ProfitFactorTarget float64 `mapstructure:"profit_factor_target"`
	MaxDrawdownLimit   float64 `mapstructure:"max_drawdown_limit"`
	StreakTarget       float64 `mapstructure:"streak_target"`
}

// UIConfig holds UI-related configuration.
type UIConfig struct {
	ColorEnabled bool   `mapstructure:"color_enabled"`
	Currency     string `mapstructure:"currency"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  bool   `mapstructure:"file"`
}

// DatabaseConfig holds database configuration.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/tradestats"
	}
	return filepath.Join(home, ".config", "tradestats")
}

// Load loads configuration from the specified directory, falling back to
// defaults for anything absent. A missing config file is not an error.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	setDefaults(v, configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config.toml: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, configDir string) {
	defaults := models.DefaultConsistencySettings()
	v.SetDefault("analytics.starting_equity", 0.0)
	v.SetDefault("analytics.win_rate_target", defaults.WinRateTarget)
	v.SetDefault("analytics.profit_factor_target", defaults.ProfitFactorTarget)
	v.SetDefault("analytics.max_drawdown_limit", defaults.MaxDrawdownLimit)
	v.SetDefault("analytics.streak_target", defaults.StreakTarget)
	v.SetDefault("ui.color_enabled", true)
	v.SetDefault("ui.currency", "$")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", true)
	v.SetDefault("database.path", filepath.Join(configDir, "journal.db"))
}

// Settings converts the config's analytics section into engine settings.
func (c *Config) Settings() models.Settings {
	return models.Settings{
		StartingEquity: c.Analytics.StartingEquity,
		Consistency: models.ConsistencySettings{
			WinRateTarget:      c.Analytics.WinRateTarget,
			ProfitFactorTarget: c.Analytics.ProfitFactorTarget,
			MaxDrawdownLimit:   c.Analytics.MaxDrawdownLimit,
			StreakTarget:       c.Analytics.StreakTarget,
		},
	}
}
