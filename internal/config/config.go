// Package config provides YAML configuration for the gameloop demo: window,
// world, spatial index, audio and the sprites the demo scene is built from.
package config

import (
	"errors"
	"fmt"
)

// Config is the full demo configuration.
type Config struct {
	Window       WindowConfig     `yaml:"window"`
	World        WorldConfig      `yaml:"world"`
	Quadtree     QuadtreeConfig   `yaml:"quadtree"`
	Assets       AssetsConfig     `yaml:"assets"`
	Audio        AudioConfig      `yaml:"audio"`
	Player       PlayerConfig     `yaml:"player"`
	Walls        WallsConfig      `yaml:"walls"`
	Platforms    PlatformsConfig  `yaml:"platforms"`
	Background   BackgroundConfig `yaml:"background"`
	Save         SaveConfig       `yaml:"save"`
	Debug        bool             `yaml:"debug"`
	SuspiciousDT float64          `yaml:"suspicious_dt"` // seconds; longer frames are skipped
}

// XY is a pair written as {x: .., y: ..} in YAML.
type XY struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// WindowConfig defines the ebiten window.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	TPS        int    `yaml:"tps"`
	ShowHUD    bool   `yaml:"show_hud"`
	ClearColor [4]int `yaml:"clear_color"` // RGBA, 0-255
}

// WorldConfig is the containment rectangle. Zero width or height uses the
// window size.
type WorldConfig struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// QuadtreeConfig tunes the broad phase.
type QuadtreeConfig struct {
	Capacity int `yaml:"capacity"`
	MaxDepth int `yaml:"max_depth"`
}

// AssetsConfig locates textures and sounds.
type AssetsConfig struct {
	Dir string `yaml:"dir"`
}

// AudioConfig controls the sound bank.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // exponential, 0 = unchanged
}

// PlayerConfig defines the input-driven sprites.
type PlayerConfig struct {
	Count          int     `yaml:"count"`
	Size           XY      `yaml:"size"`
	Texture        string  `yaml:"texture"`
	Sound          string  `yaml:"sound"`
	Acceleration   float64 `yaml:"acceleration"`
	RotationOffset float64 `yaml:"rotation_offset"` // degrees
}

// WallsConfig defines the static obstacles.
type WallsConfig struct {
	Count   int    `yaml:"count"`
	Size    XY     `yaml:"size"`
	Shape   string `yaml:"shape"` // "circle" or "rect"
	Texture string `yaml:"texture"`
	Sound   string `yaml:"sound"`
}

// PlatformsConfig defines the patrolling rectangles.
type PlatformsConfig struct {
	Count   int    `yaml:"count"`
	Size    XY     `yaml:"size"`
	Patrol  XY     `yaml:"patrol"`
	Texture string `yaml:"texture"`
	Sound   string `yaml:"sound"`
}

// BackgroundConfig defines the scrolling backdrop.
type BackgroundConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Texture     string  `yaml:"texture"`
	TileSize    XY      `yaml:"tile_size"`
	ScrollSpeed float64 `yaml:"scroll_speed"`
}

// SaveConfig defines where the save and load keys read and write.
type SaveConfig struct {
	Path string `yaml:"path"`
}

// Validate reports every problem found in cfg.
func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window: size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.World.Width < 0 || c.World.Height < 0 {
		errs = append(errs, fmt.Errorf("world: negative size %vx%v", c.World.Width, c.World.Height))
	}
	if c.Quadtree.Capacity < 1 {
		errs = append(errs, fmt.Errorf("quadtree: capacity %d must be at least 1", c.Quadtree.Capacity))
	}
	if c.Quadtree.MaxDepth < 0 {
		errs = append(errs, fmt.Errorf("quadtree: max_depth %d must not be negative", c.Quadtree.MaxDepth))
	}
	if c.Walls.Shape != "circle" && c.Walls.Shape != "rect" {
		errs = append(errs, fmt.Errorf("walls: unknown shape %q", c.Walls.Shape))
	}
	for _, g := range []struct {
		name  string
		count int
		size  XY
	}{
		{"player", c.Player.Count, c.Player.Size},
		{"walls", c.Walls.Count, c.Walls.Size},
		{"platforms", c.Platforms.Count, c.Platforms.Size},
	} {
		if g.count < 0 {
			errs = append(errs, fmt.Errorf("%s: negative count %d", g.name, g.count))
		}
		if g.count > 0 && (g.size.X <= 0 || g.size.Y <= 0) {
			errs = append(errs, fmt.Errorf("%s: size %vx%v must be positive", g.name, g.size.X, g.size.Y))
		}
	}
	if c.SuspiciousDT < 0 {
		errs = append(errs, fmt.Errorf("suspicious_dt %v must not be negative", c.SuspiciousDT))
	}
	return errors.Join(errs...)
}
