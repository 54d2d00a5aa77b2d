// Package config holds the start-up parameters shared by every front-end.
package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"camera-trail/internal/compositor"
	"camera-trail/internal/mode"
	"camera-trail/internal/trail"

	"gopkg.in/yaml.v3"
)

// Source kinds accepted by Config.Source.
const (
	SourceCamera  = "camera"
	SourcePattern = "pattern"
	SourceFiles   = "files"
)

// Config represents the parameters fixed at process start.
type Config struct {
	Width           int    `yaml:"width"`
	Height          int    `yaml:"height"`
	Threshold       int    `yaml:"threshold"`
	CellSize        int    `yaml:"cell_size"`
	BrightDecrement int    `yaml:"bright_decrement"`
	FadeIncrement   int    `yaml:"fade_increment"`
	CellAlpha       int    `yaml:"cell_alpha"`
	TPS             int    `yaml:"tps"`
	Scale           int    `yaml:"scale"`
	Source          string `yaml:"source"`
	Device          string `yaml:"device"`
	InputGlob       string `yaml:"input_glob"`
	Loop            bool   `yaml:"loop"`
	Seed            int64  `yaml:"seed"`
	// FrameTimeout bounds one frame wait.
	FrameTimeout time.Duration `yaml:"frame_timeout"`
	InitialMode  mode.Mode     `yaml:"initial_mode"`
	TrailEnabled bool          `yaml:"trail_enabled"`
	LogLevel     string        `yaml:"log_level"`
}

// Default returns a Config populated with the standard values.
func Default() *Config {
	return &Config{
		Width:           1280,
		Height:          720,
		Threshold:       trail.DefaultThreshold,
		CellSize:        5,
		BrightDecrement: trail.DefaultBrightDecrement,
		FadeIncrement:   trail.DefaultFadeIncrement,
		CellAlpha:       compositor.DefaultCellAlpha,
		TPS:             60,
		Scale:           1,
		Source:          SourceCamera,
		Seed:            42,
		FrameTimeout:    2 * time.Second,
		InitialMode:     mode.Normal,
		TrailEnabled:    true,
		LogLevel:        "info",
	}
}

// Load reads a YAML file on top of the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.LoadFile(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile overlays the YAML file at path onto c.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

// Save writes c as YAML.
func Save(path string, c *Config) error {
	data, err := c.Marshal()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Marshal encodes c as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("config: encode: %w", err)
	}
	return data, nil
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Width, "width", c.Width, "frame width in pixels")
	fs.IntVar(&c.Height, "height", c.Height, "frame height in pixels")
	fs.IntVar(&c.Threshold, "threshold", c.Threshold, "per-channel brightness threshold (0-255)")
	fs.IntVar(&c.CellSize, "cell", c.CellSize, "automaton cell size in pixels")
	fs.IntVar(&c.BrightDecrement, "bright-decrement", c.BrightDecrement, "alpha removed per bright tick")
	fs.IntVar(&c.FadeIncrement, "fade-increment", c.FadeIncrement, "alpha restored per tick while drawing")
	fs.IntVar(&c.CellAlpha, "cell-alpha", c.CellAlpha, "opacity of automaton cells (0-255)")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.IntVar(&c.Scale, "scale", c.Scale, "window scale multiplier")
	fs.StringVar(&c.Source, "source", c.Source, "frame source: camera, pattern or files")
	fs.StringVar(&c.Device, "device", c.Device, "camera device path (empty for default)")
	fs.StringVar(&c.InputGlob, "input", c.InputGlob, "glob of still images for -source files")
	fs.BoolVar(&c.Loop, "loop", c.Loop, "loop the image sequence")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for the pattern source")
	fs.DurationVar(&c.FrameTimeout, "frame-timeout", c.FrameTimeout, "maximum wait for one frame")
	fs.TextVar(&c.InitialMode, "mode", c.InitialMode, "initial mode: normal, rainbow, life or sand")
	fs.BoolVar(&c.TrailEnabled, "trail", c.TrailEnabled, "start with the persistent trail enabled")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level: debug, info, warn or error")
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("config: invalid size %dx%d", c.Width, c.Height)
	case c.CellSize <= 0 || c.CellSize > c.Width || c.CellSize > c.Height:
		return fmt.Errorf("config: cell size %d out of range for %dx%d", c.CellSize, c.Width, c.Height)
	case !inByteRange(c.Threshold):
		return fmt.Errorf("config: threshold %d outside 0-255", c.Threshold)
	case !inByteRange(c.CellAlpha):
		return fmt.Errorf("config: cell alpha %d outside 0-255", c.CellAlpha)
	case c.BrightDecrement < 0 || c.FadeIncrement < 0:
		return fmt.Errorf("config: trail steps must not be negative")
	case c.TPS <= 0:
		return fmt.Errorf("config: tps must be positive")
	case c.Scale <= 0:
		return fmt.Errorf("config: scale must be positive")
	}
	switch c.Source {
	case SourceCamera, SourcePattern:
	case SourceFiles:
		if c.InputGlob == "" {
			return fmt.Errorf("config: source %q needs an input glob", c.Source)
		}
	default:
		return fmt.Errorf("config: unknown source %q", c.Source)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// TrailParams converts the trail fields.
func (c *Config) TrailParams() trail.Params {
	return trail.Params{BrightDecrement: c.BrightDecrement, FadeIncrement: c.FadeIncrement}
}

func inByteRange(v int) bool { return v >= 0 && v <= 255 }

