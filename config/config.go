package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// DefaultPath is read when no config file is named. It may be missing.
const DefaultPath = "tilepuzzle.toml"

type Config struct {
	Window    WindowConfig             `toml:"window"`
	Board     BoardConfig              `toml:"board"`
	Animation map[string]time.Duration `toml:"animation"`
	Logging   LoggingConfig            `toml:"logging"`
	Settings  SettingsConfig           `toml:"settings"`
	Levels    LevelsConfig             `toml:"levels"`
}

type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

type BoardConfig struct {
	TileSize float64 `toml:"tile_size"` // pixels per cell
	AxisLock float64 `toml:"axis_lock"` // drag distance in pixels before the slide axis is fixed
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

type SettingsConfig struct {
	Path string `toml:"path"`
}

type LevelsConfig struct {
	Dir   string `toml:"dir"`
	First string `toml:"first"`
	Watch bool   `toml:"watch"`
}

// Load decodes the TOML file at path over the defaults. A missing file is
// only an error when path is not DefaultPath.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	if path == "" {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if path == DefaultPath && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Board.TileSize <= 0 {
		return fmt.Errorf("board.tile_size must be positive, got %v", c.Board.TileSize)
	}
	if c.Board.AxisLock < 0 {
		return fmt.Errorf("board.axis_lock must not be negative, got %v", c.Board.AxisLock)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d", c.Window.Width, c.Window.Height)
	}
	for key, d := range c.Animation {
		if d < 0 {
			return fmt.Errorf("animation.%s is negative", key)
		}
	}
	return nil
}

func Defaults() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  480,
			Height: 640,
			Title:  "Tile Puzzle",
		},
		Board: BoardConfig{
			TileSize: 64,
			AxisLock: 12,
		},
		Animation: map[string]time.Duration{
			"appear": 200 * time.Millisecond,
			"remove": 250 * time.Millisecond,
			"slide":  150 * time.Millisecond,
			"fade":   300 * time.Millisecond,
			"fire":   250 * time.Millisecond,
			"win":    600 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Settings: SettingsConfig{
			Path: "settings.toml",
		},
		Levels: LevelsConfig{
			Dir:   "prefabs",
			First: "tutorial",
			Watch: false,
		},
	}
}
