// Package config loads the addon-host runtime configuration and watches the
// settings overrides file for live changes.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/GoCodeAlone/prodtrack-example-addon/store"
)

// Config is the addon-host runtime configuration.
type Config struct {
	// Listen is the host:port the dev harness serves HTTP on.
	Listen string `yaml:"listen" json:"listen"`

	// Postgres connects the store when a URL is set; otherwise the harness
	// falls back to in-memory services.
	Postgres store.PGConfig `yaml:"postgres,omitempty" json:"postgres,omitempty"`

	// SettingsFile points at a YAML/JSON studio settings overrides document
	// watched for changes.
	SettingsFile string `yaml:"settings_file,omitempty" json:"settings_file,omitempty"`

	// DemoEventInterval, when positive, makes the harness publish a demo
	// task status event at this interval.
	DemoEventInterval time.Duration `yaml:"demo_event_interval,omitempty" json:"demo_event_interval,omitempty"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level,omitempty" json:"log_level,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Listen:   ":8210",
		LogLevel: "info",
	}
}

// LoadFromFile loads a harness configuration from a YAML file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if cfg.Listen == "" {
		cfg.Listen = Default().Listen
	}
	return cfg, nil
}
