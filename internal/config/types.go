package config

// DefaultConfigFile is the config file read when --config is not given.
const DefaultConfigFile = ".flipbook.yml"

// Config is the top-level flipbook configuration, corresponding to .flipbook.yml.
type Config struct {
	Document        string `yaml:"document" koanf:"document"`
	Port            int    `yaml:"port" koanf:"port"`
	AllowAllOrigins bool   `yaml:"allow_all_origins" koanf:"allow_all_origins"`

	// Layout used when there is no browser to measure, as in MCP mode.
	ContainerWidth float64 `yaml:"container_width" koanf:"container_width"`
	PixelDensity   float64 `yaml:"pixel_density" koanf:"pixel_density"`

	ResizeDebounceMS int `yaml:"resize_debounce_ms" koanf:"resize_debounce_ms"`
	FlipDurationMS   int `yaml:"flip_duration_ms" koanf:"flip_duration_ms"`

	SwipeMaxDurationMS int     `yaml:"swipe_max_duration_ms" koanf:"swipe_max_duration_ms"`
	SwipeMinDistance   float64 `yaml:"swipe_min_distance" koanf:"swipe_min_distance"`
	SwipeRatio         float64 `yaml:"swipe_ratio" koanf:"swipe_ratio"`

	Debug bool `yaml:"debug" koanf:"debug"`
}
