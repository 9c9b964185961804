// Package config loads process configuration via viper, grounded in the
// teacher's config.go and extended with orris's env-override / default
// pattern.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the top-level process configuration.
type Config struct {
	ListenAddr          string `mapstructure:"listen_addr"`
	APIAccessToken      string `mapstructure:"api_access_token"`
	BasePath            string `mapstructure:"base_path"`
	DefaultURL          string `mapstructure:"default_url"`
	ManagedConfigPrefix string `mapstructure:"managed_config_prefix"`
}

var Global *Config

func setDefaults() {
	viper.SetDefault("listen_addr", ":25500")
	viper.SetDefault("api_access_token", "")
	viper.SetDefault("base_path", ".")
	viper.SetDefault("default_url", "")
	viper.SetDefault("managed_config_prefix", "")
}

// Load reads config.yaml from "." or "./configs", falling back to
// defaults and SUBCONVERTER_-prefixed environment variables when no file
// is present - config file absence is not an error, matching the
// teacher's "Config file not found, using defaults" handling.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./configs")

	viper.SetEnvPrefix("SUBCONVERTER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	Global = &cfg
	return Global, nil
}
