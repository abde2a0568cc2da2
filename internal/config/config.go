package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (FLIPBOOK_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: FLIPBOOK_PORT -> port, etc.
	if err := k.Load(env.Provider("FLIPBOOK_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "FLIPBOOK_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Document == "" {
		return fmt.Errorf("document is required")
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d: must be between 1 and 65535", c.Port)
	}

	if c.ContainerWidth <= 0 {
		return fmt.Errorf("container_width must be positive")
	}

	if c.PixelDensity < 0 {
		return fmt.Errorf("pixel_density must be non-negative")
	}

	if c.ResizeDebounceMS < 0 {
		return fmt.Errorf("resize_debounce_ms must be non-negative")
	}

	if c.FlipDurationMS < 0 {
		return fmt.Errorf("flip_duration_ms must be non-negative")
	}

	if c.SwipeMaxDurationMS <= 0 {
		return fmt.Errorf("swipe_max_duration_ms must be positive")
	}

	if c.SwipeMinDistance <= 0 {
		return fmt.Errorf("swipe_min_distance must be positive")
	}

	// A ratio below 1 would accept mostly vertical movement as a swipe.
	if c.SwipeRatio < 1 {
		return fmt.Errorf("swipe_ratio must be at least 1")
	}

	return nil
}
