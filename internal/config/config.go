// Package config loads the formcheck CLI configuration. Values come from, in
// order of precedence, bound flags, FORMCHECK_* environment variables, a YAML
// config file and the defaults below.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	EnvPrefix      = "FORMCHECK"
	DefaultName    = ".formcheck"
	IDStrategyUUID = "uuid"
	IDStrategyNext = "counter"
)

// Config holds every knob the CLI exposes.
type Config struct {
	Catalog      string `mapstructure:"catalog"`
	IDs          string `mapstructure:"ids"`
	IDPrefix     string `mapstructure:"id-prefix"`
	ErrorClass   string `mapstructure:"error-class"`
	MessageClass string `mapstructure:"message-class"`
	PatternGate  bool   `mapstructure:"pattern-gate"`
	LogLevel     string `mapstructure:"log-level"`
	LogFormat    string `mapstructure:"log-format"`
}

// SetDefaults registers the default value of every key so environment
// variables are picked up by Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("catalog", "")
	v.SetDefault("ids", IDStrategyNext)
	v.SetDefault("id-prefix", "field-")
	v.SetDefault("error-class", "error")
	v.SetDefault("message-class", "error-message")
	v.SetDefault("pattern-gate", false)
	v.SetDefault("log-level", "warn")
	v.SetDefault("log-format", "text")
}

// Load reads configuration into a Config. An explicit path must exist; without
// one a missing .formcheck.yaml in the working directory is not an error.
func Load(v *viper.Viper, path string) (Config, error) {
	SetDefaults(v)

	if strings.TrimSpace(path) != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(DefaultName)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: read: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	cfg.IDs = strings.ToLower(strings.TrimSpace(cfg.IDs))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks enumerated values.
func (c Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.IDs)) {
	case IDStrategyNext, IDStrategyUUID:
		return nil
	default:
		return fmt.Errorf("config: ids must be %q or %q, got %q", IDStrategyNext, IDStrategyUUID, c.IDs)
	}
}
