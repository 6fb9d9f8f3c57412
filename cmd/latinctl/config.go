package main

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	envPrefix             = "LATINCTL"
	defaultConfigFilename = "latinctl-config"
)

// rootConfig holds the persistent flags every subcommand reads,
// unmarshaled from flags/env/config file by loadConfig.
type rootConfig struct {
	CacheDir string `mapstructure:"cache-dir"`
	Workers  int    `mapstructure:"workers"`
	Mode     string `mapstructure:"mode"`
	LogLevel string `mapstructure:"log-level"`
	Store    string `mapstructure:"store"`
}

// loadConfig layers a YAML config file, environment variables (under
// the LATINCTL_ prefix), and command flags into cfg, flags taking
// precedence — grounded on
// _examples/ConductorOne-baton-sdk/pkg/cli/config.go's loadConfig.
func loadConfig[T any, PtrT *T](cmd *cobra.Command, cfg PtrT) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigName(defaultConfigFilename)
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.PersistentFlags()); err != nil {
		return nil, err
	}
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, err
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return v, nil
}
