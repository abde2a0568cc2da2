package config

import (
	"time"

	"github.com/ziadkadry99/flipbook/internal/document"
	"github.com/ziadkadry99/flipbook/internal/input"
	"github.com/ziadkadry99/flipbook/internal/navigator"
)

// LayoutPreset is a named container width offered by the init wizard.
type LayoutPreset struct {
	Name           string
	ContainerWidth float64
	PixelDensity   float64
}

// LayoutPresets lists the headless layouts the wizard offers.
var LayoutPresets = []LayoutPreset{
	{Name: "desktop", ContainerWidth: 800, PixelDensity: 1},
	{Name: "retina", ContainerWidth: 800, PixelDensity: 2},
	{Name: "tablet", ContainerWidth: 768, PixelDensity: 2},
	{Name: "phone", ContainerWidth: 390, PixelDensity: 3},
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	swipe := input.DefaultSwipeRules()
	return &Config{
		Document:           document.DefaultLocator,
		Port:               8080,
		ContainerWidth:     800,
		PixelDensity:       1,
		ResizeDebounceMS:   int(input.DefaultResizeDebounce / time.Millisecond),
		FlipDurationMS:     int(navigator.DefaultFlipDuration / time.Millisecond),
		SwipeMaxDurationMS: int(swipe.MaxDuration / time.Millisecond),
		SwipeMinDistance:   swipe.MinDistance,
		SwipeRatio:         swipe.Ratio,
	}
}

// ResizeDebounce returns the resize quiet period.
func (c *Config) ResizeDebounce() time.Duration {
	return time.Duration(c.ResizeDebounceMS) * time.Millisecond
}

// FlipDuration returns how long the flip animation stays applied.
func (c *Config) FlipDuration() time.Duration {
	return time.Duration(c.FlipDurationMS) * time.Millisecond
}

// SwipeRules returns the configured swipe thresholds.
func (c *Config) SwipeRules() input.SwipeRules {
	return input.SwipeRules{
		MaxDuration: time.Duration(c.SwipeMaxDurationMS) * time.Millisecond,
		MinDistance: c.SwipeMinDistance,
		Ratio:       c.SwipeRatio,
	}
}
