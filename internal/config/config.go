package config

import (
	"bytes"
	"fmt"
	"os"
	"runtime"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the demo's display, render and output settings.
type Config struct {
	// Display
	Width    int  `toml:"width"`
	Height   int  `toml:"height"`
	Scale    int  `toml:"scale"`
	Headless bool `toml:"headless"`
	Frames   int  `toml:"frames"`
	Hz       int  `toml:"hz"`

	// Render settings
	Workers     int    `toml:"workers"`
	Texture     string `toml:"texture"`
	TextureSize int    `toml:"texture_size"`
	Filter      string `toml:"filter"`
	Wrap        string `toml:"wrap"`
	Shading     string `toml:"shading"`
	Projection  string `toml:"projection"`
	Depth       *bool  `toml:"depth"`

	// Output
	Snapshot      string `toml:"snapshot"`
	SnapshotScale int    `toml:"snapshot_scale"`
}

// Flags holds CLI flag values that override config file settings.
// Zero values leave the file setting alone.
type Flags struct {
	Width      int
	Height     int
	Scale      int
	Headless   bool
	Frames     int
	Workers    int
	Texture    string
	Filter     string
	Shading    string
	Projection string
	Snapshot   string
}

// Load reads a TOML config file. Unknown keys are an error.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Resolve applies CLI overrides, then fills empty fields with defaults.
func (c *Config) Resolve(flags Flags) {
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.Scale > 0 {
		c.Scale = flags.Scale
	}
	if flags.Headless {
		c.Headless = true
	}
	if flags.Frames > 0 {
		c.Frames = flags.Frames
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Texture != "" {
		c.Texture = flags.Texture
	}
	if flags.Filter != "" {
		c.Filter = flags.Filter
	}
	if flags.Shading != "" {
		c.Shading = flags.Shading
	}
	if flags.Projection != "" {
		c.Projection = flags.Projection
	}
	if flags.Snapshot != "" {
		c.Snapshot = flags.Snapshot
	}

	// PicoCalc panel.
	if c.Width <= 0 {
		c.Width = 320
	}
	if c.Height <= 0 {
		c.Height = 320
	}
	if c.Scale <= 0 {
		c.Scale = 2
	}
	if c.Hz <= 0 {
		c.Hz = 60
	}
	if c.Headless && c.Frames <= 0 {
		c.Frames = 120
	}
	if c.Workers <= 0 {
		c.Workers = min(runtime.NumCPU(), 4)
	}
	if c.TextureSize <= 0 {
		c.TextureSize = 64
	}
	if c.Filter == "" {
		c.Filter = "bilinear"
	}
	if c.Wrap == "" {
		c.Wrap = "wrap"
	}
	if c.Shading == "" {
		c.Shading = "gouraud"
	}
	if c.Projection == "" {
		c.Projection = "perspective"
	}
	if c.Depth == nil {
		on := true
		c.Depth = &on
	}
	if c.SnapshotScale <= 0 {
		c.SnapshotScale = 1
	}
}

// DepthEnabled reports the depth setting, true when unset.
func (c *Config) DepthEnabled() bool {
	return c.Depth == nil || *c.Depth
}

var choices = []struct {
	name  string
	get   func(*Config) string
	valid []string
}{
	{"filter", func(c *Config) string { return c.Filter }, []string{"nearest", "bilinear"}},
	{"wrap", func(c *Config) string { return c.Wrap }, []string{"wrap", "clamp"}},
	{"shading", func(c *Config) string { return c.Shading }, []string{"flat", "gouraud", "wireframe"}},
	{"projection", func(c *Config) string { return c.Projection }, []string{"perspective", "ortho"}},
}

// Validate checks a resolved config.
func (c *Config) Validate() error {
	for _, ch := range choices {
		v := ch.get(c)
		ok := false
		for _, s := range ch.valid {
			ok = ok || v == s
		}
		if !ok {
			return fmt.Errorf("config: %s %q: want one of %v", ch.name, v, ch.valid)
		}
	}
	if c.TextureSize&(c.TextureSize-1) != 0 {
		return fmt.Errorf("config: texture_size %d is not a power of two", c.TextureSize)
	}
	if c.SnapshotScale > 8 {
		return fmt.Errorf("config: snapshot_scale %d > 8", c.SnapshotScale)
	}
	return nil
}

// Marshal encodes c as TOML.
func (c Config) Marshal() ([]byte, error) {
	b, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("config: encode: %w", err)
	}
	return b, nil
}
