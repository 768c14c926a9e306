// Package config loads user configuration from a JSON file and ROOTIN_*
// environment variables, env taking precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds user-configurable defaults.
type Config struct {
	API      APIConfig      `mapstructure:"api"`
	Defaults DefaultsConfig `mapstructure:"defaults"`
}

// APIConfig locates the backend.
type APIConfig struct {
	BaseURL    string `mapstructure:"base_url"`
	HealthURL  string `mapstructure:"health_url"`
	TimeoutSec int    `mapstructure:"timeout_sec"`
}

// DefaultsConfig holds per-user routine defaults sent on save and analysis.
type DefaultsConfig struct {
	TimeOfDay string `mapstructure:"time_of_day"`
	UserID    string `mapstructure:"user_id"`
}

// Dir returns ~/.config/rootin (or XDG_CONFIG_HOME). Empty when the home
// directory cannot be determined.
func Dir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "rootin")
}

// Load reads config.json from the config directory, then applies env
// overrides. A missing file is fine; defaults apply.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("json")
	if dir := Dir(); dir != "" {
		v.AddConfigPath(dir)
	}
	v.AddConfigPath(".")

	v.SetEnvPrefix("ROOTIN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "http://127.0.0.1:8000/api")
	v.SetDefault("api.health_url", "")
	v.SetDefault("api.timeout_sec", 15)
	v.SetDefault("defaults.time_of_day", "morning")
	v.SetDefault("defaults.user_id", "")
}

func validate(cfg *Config) error {
	if strings.TrimSpace(cfg.API.BaseURL) == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if cfg.API.TimeoutSec <= 0 {
		return fmt.Errorf("api.timeout_sec must be positive, got %d", cfg.API.TimeoutSec)
	}
	switch cfg.Defaults.TimeOfDay {
	case "morning", "evening", "both":
	default:
		return fmt.Errorf("defaults.time_of_day must be morning, evening or both, got %q", cfg.Defaults.TimeOfDay)
	}
	return nil
}
