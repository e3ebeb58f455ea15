package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type cliConfig struct {
	BaseURL  string        `mapstructure:"base_url"`
	StoreDir string        `mapstructure:"store_dir"`
	LogLevel string        `mapstructure:"log_level"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// loadConfig reads $HOME/.fleetctl.yaml (or cfgFile) and FLEETCTL_*
// variables on top of the defaults. A missing config file is not an error.
func loadConfig(v *viper.Viper, cfgFile string) (cliConfig, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	v.SetDefault("base_url", "http://localhost:8080")
	v.SetDefault("store_dir", filepath.Join(home, ".fleetctl"))
	v.SetDefault("log_level", "warn")
	v.SetDefault("timeout", "30s")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(home)
		v.SetConfigType("yaml")
		v.SetConfigName(".fleetctl")
	}
	v.SetEnvPrefix("FLEETCTL")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return cliConfig{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg cliConfig
	decoderConfigOption := viper.DecoderConfigOption(func(dc *mapstructure.DecoderConfig) {
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			dc.DecodeHook,
			mapstructure.StringToTimeDurationHookFunc(),
		)
	})
	if err := v.Unmarshal(&cfg, decoderConfigOption); err != nil {
		return cliConfig{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}
