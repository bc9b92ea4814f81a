package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds demo application configuration.
type Config struct {
	History HistoryConfig
	UI      UIConfig
}

// HistoryConfig holds the sqlite journal settings.
type HistoryConfig struct {
	Path string `mapstructure:"path"`
	Keep int    `mapstructure:"keep"`
}

// UIConfig holds overlay presentation settings.
type UIConfig struct {
	MaxVisible   int    `mapstructure:"max_visible"`
	Corner       string `mapstructure:"corner"`
	Margin       int    `mapstructure:"margin"`
	ToastSeconds int    `mapstructure:"toast_seconds"`
	Accent       string `mapstructure:"accent"`
}

// Load reads configuration from file and env. Env var overrides use prefix TEAOVERLAY_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("history.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "teaoverlay", "history.db"))
	v.SetDefault("history.keep", 200)
	v.SetDefault("ui.max_visible", 4)
	v.SetDefault("ui.corner", "bottom-right")
	v.SetDefault("ui.margin", 1)
	v.SetDefault("ui.toast_seconds", 3)
	v.SetDefault("ui.accent", "#89b4fa")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("TEAOVERLAY_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "teaoverlay"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("TEAOVERLAY")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}
