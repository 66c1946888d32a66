// Package config loads gearstick settings from defaults, an optional
// YAML file, environment variables and command-line flags, in that
// order of precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	DefaultVaultPath   = "vault.json"
	DefaultConfigPath  = ".gearstick.yaml"
	DefaultHistoryKeep = 50
	DefaultLogLevel    = "warn"
	historySuffix      = ".history"
)

// Config holds the settings for one gearstick invocation
type Config struct {
	// VaultPath is the vault document, relative to the working directory.
	VaultPath string `yaml:"vault_path" validate:"required"`

	// HistoryPath is the snapshot database. Defaults to VaultPath + ".history".
	HistoryPath string `yaml:"history_path"`

	// HistoryKeep is the number of snapshots retained; 0 disables history.
	HistoryKeep int `yaml:"history_keep" validate:"gte=0"`

	LogLevel string `yaml:"log_level" validate:"oneof=debug info warn error"`

	// Version is stamped into newly created vaults. Set by main.
	Version string `yaml:"-" validate:"required"`
}

var validate = validator.New()

// Default returns the built-in configuration
func Default(version string) *Config {
	return &Config{
		VaultPath:   DefaultVaultPath,
		HistoryKeep: DefaultHistoryKeep,
		LogLevel:    DefaultLogLevel,
		Version:     version,
	}
}

// Flags registers the common -vault and -config flags on fs and returns
// a function that resolves the final configuration after fs.Parse.
func Flags(fs *flag.FlagSet, version string) func() (*Config, error) {
	vaultPath := fs.String("vault", "", "path to the vault file")
	configPath := fs.String("config", "", "path to the config file")

	return func() (*Config, error) {
		cfgFile := *configPath
		explicit := cfgFile != ""
		if !explicit {
			if env := os.Getenv("GEARSTICK_CONFIG"); env != "" {
				cfgFile, explicit = env, true
			} else {
				cfgFile = DefaultConfigPath
			}
		}
		return Load(version, cfgFile, explicit, *vaultPath)
	}
}

// Load builds the configuration. A missing config file is an error only
// when it was requested explicitly. vaultOverride, if set, wins over
// every other source.
func Load(version, configPath string, explicit bool, vaultOverride string) (*Config, error) {
	cfg := Default(version)

	if configPath != "" {
		if err := cfg.readFile(configPath); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return nil, err
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if vaultOverride != "" {
		cfg.VaultPath = vaultOverride
	}
	if cfg.HistoryPath == "" {
		cfg.HistoryPath = cfg.VaultPath + historySuffix
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error while reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("error while parsing config file: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("GEARSTICK_VAULT"); v != "" {
		c.VaultPath = v
	}
	if v := os.Getenv("GEARSTICK_HISTORY"); v != "" {
		c.HistoryPath = v
	}
	if v := os.Getenv("GEARSTICK_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("GEARSTICK_HISTORY_KEEP"); v != "" {
		keep, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid GEARSTICK_HISTORY_KEEP %q: %w", v, err)
		}
		c.HistoryKeep = keep
	}
	return nil
}
