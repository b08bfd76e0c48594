// Package config loads the demo's YAML configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the demo configuration. Zero or negative popup sizes fall back to
// the popup package defaults.
type Config struct {
	Completion Completion `yaml:"completion"`
	// Latency delays candidate lookups to exercise asynchronous rendering.
	Latency time.Duration `yaml:"latency"`
	Log     Log           `yaml:"log"`
	Words   []string      `yaml:"words"`
}

type Completion struct {
	ItemHeight        int  `yaml:"item_height"`
	MaxVisible        int  `yaml:"max_visible"`
	Width             int  `yaml:"width"`
	MeasuredPlacement bool `yaml:"measured_placement"`
}

type Log struct {
	// Path is where logs go. Empty disables logging.
	Path  string `yaml:"path"`
	Level string `yaml:"level"`
}

// Default suits an 80x24 terminal.
func Default() Config {
	return Config{
		Completion: Completion{
			ItemHeight:        1,
			MaxVisible:        6,
			Width:             24,
			MeasuredPlacement: true,
		},
		Log: Log{Level: "info"},
	}
}

// Load reads path over Default. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(content)
}

// Parse decodes YAML over Default.
func Parse(content []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Latency < 0 {
		return Config{}, fmt.Errorf("latency must not be negative, got %s", cfg.Latency)
	}
	return cfg, nil
}
