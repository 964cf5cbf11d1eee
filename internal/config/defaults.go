package config

import (
	_ "embed"
)

//go:embed defaults/gameloop.yaml
var defaultYAML []byte

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}

// Default returns the built-in configuration, used when no file is found
// and as the base every loaded file is laid over.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:      "Simple game loop",
			Width:      1000,
			Height:     800,
			TPS:        60,
			ShowHUD:    true,
			ClearColor: [4]int{255, 239, 213, 255},
		},
		Quadtree: QuadtreeConfig{Capacity: 5, MaxDepth: 8},
		Assets:   AssetsConfig{Dir: "resources"},
		Audio:    AudioConfig{Enabled: true},
		Player: PlayerConfig{
			Count:          1,
			Size:           XY{180, 180},
			Texture:        "p1.png",
			Sound:          "audiomass-output.mp3",
			Acceleration:   1000,
			RotationOffset: 20,
		},
		Walls: WallsConfig{
			Count: 2,
			Size:  XY{120, 120},
			Shape: "rect",
			Sound: "audiomass-output.mp3",
		},
		Platforms: PlatformsConfig{
			Count:  2,
			Size:   XY{200, 40},
			Patrol: XY{150, 0},
		},
		Background: BackgroundConfig{
			Enabled:     true,
			Texture:     "b4.png",
			TileSize:    XY{1000, 800},
			ScrollSpeed: 100,
		},
		Save:         SaveConfig{Path: "savegame.dat"},
		SuspiciousDT: 0.1,
	}
}
