// Package config loads flipbook settings from a YAML file with defaults.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"Flipbook/internal/state"
)

// Config is the top-level configuration.
type Config struct {
	Canvas    CanvasConfig    `yaml:"canvas"`
	Brush     BrushConfig     `yaml:"brush"`
	Playback  PlaybackConfig  `yaml:"playback"`
	OnionSkin OnionSkinConfig `yaml:"onion_skin"`
	LogLevel  string          `yaml:"log_level"` // debug | info | warn | error
}

// CanvasConfig fixes the size every frame shares.
type CanvasConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// BrushConfig is the initial brush and the size slider range.
type BrushConfig struct {
	Color   string `yaml:"color"`
	Size    int    `yaml:"size"`
	MinSize int    `yaml:"min_size"`
	MaxSize int    `yaml:"max_size"`
}

// PlaybackConfig is the initial rate and the rate slider range.
type PlaybackConfig struct {
	FPS    int `yaml:"fps"`
	MinFPS int `yaml:"min_fps"`
	MaxFPS int `yaml:"max_fps"`
}

// OnionSkinConfig controls the faded previous-frame overlay.
type OnionSkinConfig struct {
	Enabled bool    `yaml:"enabled"`
	Opacity float64 `yaml:"opacity"`
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// LoadFile reads a YAML configuration file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Canvas.Width <= 0 {
		c.Canvas.Width = 800
	}
	if c.Canvas.Height <= 0 {
		c.Canvas.Height = 450
	}
	if c.Brush.Color == "" {
		c.Brush.Color = "#000000"
	}
	if c.Brush.MinSize <= 0 {
		c.Brush.MinSize = 1
	}
	if c.Brush.MaxSize <= 0 {
		c.Brush.MaxSize = 50
	}
	if c.Brush.Size <= 0 {
		c.Brush.Size = 5
	}
	if c.Playback.MinFPS <= 0 {
		c.Playback.MinFPS = 1
	}
	if c.Playback.MaxFPS <= 0 {
		c.Playback.MaxFPS = 30
	}
	if c.Playback.FPS <= 0 {
		c.Playback.FPS = 12
	}
	if c.OnionSkin.Opacity <= 0 {
		c.OnionSkin.Opacity = 0.3
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Validate checks ranges that defaults cannot repair.
func (c *Config) Validate() error {
	if c.Brush.MinSize > c.Brush.MaxSize {
		return fmt.Errorf("config: brush min_size %d > max_size %d", c.Brush.MinSize, c.Brush.MaxSize)
	}
	if c.Brush.Size < c.Brush.MinSize || c.Brush.Size > c.Brush.MaxSize {
		return fmt.Errorf("config: brush size %d outside [%d, %d]", c.Brush.Size, c.Brush.MinSize, c.Brush.MaxSize)
	}
	if c.Playback.MinFPS > c.Playback.MaxFPS {
		return fmt.Errorf("config: playback min_fps %d > max_fps %d", c.Playback.MinFPS, c.Playback.MaxFPS)
	}
	if c.Playback.FPS < c.Playback.MinFPS || c.Playback.FPS > c.Playback.MaxFPS {
		return fmt.Errorf("config: playback fps %d outside [%d, %d]", c.Playback.FPS, c.Playback.MinFPS, c.Playback.MaxFPS)
	}
	if c.OnionSkin.Opacity > 1 {
		return fmt.Errorf("config: onion_skin opacity %v > 1", c.OnionSkin.Opacity)
	}
	if _, err := state.ParseColor(c.Brush.Color); err != nil {
		return fmt.Errorf("config: brush color: %w", err)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// InitialBrush is the brush the session starts with.
func (c *Config) InitialBrush() state.Brush {
	b := state.DefaultBrush()
	if col, err := state.ParseColor(c.Brush.Color); err == nil {
		b.Color = col
	}
	b.Size = c.Brush.Size
	return b.Clamp(c.Brush.MinSize, c.Brush.MaxSize)
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("config: unknown log level %q", s)
}
