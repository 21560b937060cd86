// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"image/color"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/erparts/go-senios"
	"github.com/erparts/go-senios/shell"
	"gopkg.in/yaml.v3"
)

// Decoding backends.
const (
	BackendReisen = "reisen"
	BackendFFmpeg = "ffmpeg"
)

// Config represents the full configuration for senios.
type Config struct {
	// Decoding
	Backend       string `yaml:"backend"`
	FFmpegPath    string `yaml:"ffmpeg_path"`
	FFprobePath   string `yaml:"ffprobe_path"`
	ReadTimeoutMs int    `yaml:"read_timeout_ms"`

	// Playback
	TickIntervalMs int    `yaml:"tick_interval_ms"`
	Autoplay       bool   `yaml:"autoplay"`
	ScaleFilter    string `yaml:"scale_filter"`

	// Window and layout
	Window    WindowConfig `yaml:"window"`
	VideoArea AreaConfig   `yaml:"video_area"`

	// Files
	MediaDir        string   `yaml:"media_dir"`
	VideoExtensions []string `yaml:"video_extensions"`
	ImageExtensions []string `yaml:"image_extensions"`

	// Cards
	Card CardConfig `yaml:"card"`

	// Logging
	LogLevel string `yaml:"log_level"`
}

// WindowConfig represents the main window settings.
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// AreaConfig is the size of a display region.
type AreaConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// CardConfig represents the blank card settings.
type CardConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Background string `yaml:"background"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		// Decoding
		Backend:       BackendReisen,
		ReadTimeoutMs: 5000,

		// Playback
		TickIntervalMs: int(senios.DefaultTickInterval / time.Millisecond),
		Autoplay:       true,
		ScaleFilter:    "catmullrom",

		// Window and layout
		Window: WindowConfig{
			Width:  800,
			Height: 600,
			Title:  "SeniOS",
		},
		VideoArea: AreaConfig{
			Width:  640,
			Height: 480,
		},

		// Files
		MediaDir:        ".",
		VideoExtensions: slices.Clone(shell.VideoFilter.Extensions),
		ImageExtensions: slices.Clone(shell.ImageFilter.Extensions),

		// Cards
		Card: CardConfig{
			Width:      800,
			Height:     600,
			Background: "#ffffff",
		},

		LogLevel: "info",
	}
}

// LoadFromFile loads configuration from a YAML file. Keys missing from
// the file keep their default values.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks the configuration for values the application can't
// work with.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendReisen, BackendFFmpeg:
	default:
		return fmt.Errorf("unknown backend %q (expected %s or %s)", c.Backend, BackendReisen, BackendFFmpeg)
	}
	if c.TickIntervalMs <= 0 {
		return fmt.Errorf("tick_interval_ms must be positive, got %d", c.TickIntervalMs)
	}
	if _, err := senios.ParseScaler(c.ScaleFilter); err != nil {
		return err
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.VideoArea.Width <= 0 || c.VideoArea.Height <= 0 {
		return fmt.Errorf("invalid video area %dx%d", c.VideoArea.Width, c.VideoArea.Height)
	}
	if c.Card.Width <= 0 || c.Card.Height <= 0 {
		return fmt.Errorf("invalid card size %dx%d", c.Card.Width, c.Card.Height)
	}
	if len(c.VideoExtensions) == 0 || len(c.ImageExtensions) == 0 {
		return fmt.Errorf("video_extensions and image_extensions must not be empty")
	}
	for _, ext := range append(append([]string{}, c.VideoExtensions...), c.ImageExtensions...) {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("extension %q must start with a dot", ext)
		}
	}
	return nil
}

// TickInterval returns the playback clock period.
func (c Config) TickInterval() time.Duration {
	return time.Duration(c.TickIntervalMs) * time.Millisecond
}

// ReadTimeout returns the per-frame read bound of the ffmpeg backend.
func (c Config) ReadTimeout() time.Duration {
	return time.Duration(c.ReadTimeoutMs) * time.Millisecond
}

// ParseColor parses a hex color string to color.Color. Invalid values
// yield white, the default card background.
func ParseColor(hex string) color.Color {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return color.White
	}

	var rgb [3]uint8
	for i := range rgb {
		hi, okHi := hexValue(hex[2*i])
		lo, okLo := hexValue(hex[2*i+1])
		if !okHi || !okLo {
			return color.White
		}
		rgb[i] = hi<<4 | lo
	}
	return color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255}
}

func hexValue(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}
