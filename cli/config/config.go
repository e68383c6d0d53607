package config

import (
	"fmt"
	"time"

	"github.com/flightdeck-io/flightdeck/types"
)

// Config represents a flightdeck.yaml configuration file.
// All values are optional and act as defaults for flightdeck export flags.
// CLI flags always override config values.
type Config struct {
	// Tiers are optional per-tier profile overrides keyed by tier name.
	Tiers map[string]TierOverride `yaml:"tiers"`

	Dataset DatasetConfig `yaml:"dataset"`
	Storage StorageConfig `yaml:"storage"`
	Adapter AdapterConfig `yaml:"adapter"`
	Chat    ChatConfig    `yaml:"chat"`
}

// TierOverride holds per-tier profile overrides from the config file.
type TierOverride struct {
	TargetWidth      int      `yaml:"target_width"`
	TargetHeight     int      `yaml:"target_height"`
	RasterScale      float64  `yaml:"raster_scale"`
	PerFrameDuration Duration `yaml:"per_frame_duration"`
	PaletteSize      int      `yaml:"palette_size"`
}

// Override converts the config entry into a profile override.
func (t *TierOverride) Override() *types.ProfileOverride {
	if t == nil {
		return nil
	}
	return &types.ProfileOverride{
		TargetWidth:      t.TargetWidth,
		TargetHeight:     t.TargetHeight,
		RasterScale:      t.RasterScale,
		PerFrameDuration: t.PerFrameDuration.Duration,
		PaletteSize:      t.PaletteSize,
	}
}

// TierOverrideFor returns the override for tier, or nil.
func (c *Config) TierOverrideFor(tier types.QualityTier) *types.ProfileOverride {
	if c == nil || c.Tiers == nil {
		return nil
	}
	t, ok := c.Tiers[string(tier)]
	if !ok {
		return nil
	}
	return t.Override()
}

// DatasetConfig holds CSV loading defaults from the config file.
type DatasetConfig struct {
	HeaderRow int    `yaml:"header_row"`
	SkipRows  int    `yaml:"skip_rows"`
	Fill      string `yaml:"fill"`
}

// StorageConfig holds storage defaults from the config file.
type StorageConfig struct {
	Backend     string `yaml:"backend"` // "fs" or "s3"
	Path        string `yaml:"path"`
	Region      string `yaml:"region"`
	Endpoint    string `yaml:"endpoint"`
	S3PathStyle bool   `yaml:"s3_path_style"`
}

// AdapterConfig holds notification adapter defaults from the config file.
type AdapterConfig struct {
	Type    string            `yaml:"type"` // "webhook" or "redis"
	URL     string            `yaml:"url"`
	Channel string            `yaml:"channel,omitempty"`
	Headers map[string]string `yaml:"headers,omitempty"`
	Timeout Duration          `yaml:"timeout,omitempty"`
	Retries *int              `yaml:"retries,omitempty"`
}

// ChatConfig holds chat assistant defaults from the config file.
type ChatConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
}

// Duration wraps time.Duration for YAML string parsing (e.g. "10s", "5m").
type Duration struct {
	time.Duration
}

// UnmarshalYAML parses a duration string like "10s" or "5m30s".
func (d *Duration) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	if s == "" {
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	d.Duration = parsed
	return nil
}
