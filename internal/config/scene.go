package config

import (
	"fmt"

	"github.com/phanxgames/gameloop"
)

// WorldRect returns the containment rectangle, falling back to the window
// size for zero dimensions.
func (c Config) WorldRect() gameloop.Rect {
	r := gameloop.Rect{X: c.World.X, Y: c.World.Y, Width: c.World.Width, Height: c.World.Height}
	if r.Width == 0 {
		r.Width = float64(c.Window.Width)
	}
	if r.Height == 0 {
		r.Height = float64(c.Window.Height)
	}
	return r
}

// ClearColor converts the window clear color to a gameloop.Color.
func (c Config) ClearColor() gameloop.Color {
	cc := c.Window.ClearColor
	return gameloop.Color{
		R: float64(cc[0]) / 255,
		G: float64(cc[1]) / 255,
		B: float64(cc[2]) / 255,
		A: float64(cc[3]) / 255,
	}
}

// RunConfig returns the window settings for gameloop.Run.
func (c Config) RunConfig() gameloop.RunConfig {
	return gameloop.RunConfig{
		Title:        c.Window.Title,
		Width:        c.Window.Width,
		Height:       c.Window.Height,
		TPS:          c.Window.TPS,
		SavePath:     c.Save.Path,
		SuspiciousDT: c.SuspiciousDT,
		ShowHUD:      c.Window.ShowHUD,
	}
}

func parseShape(name string) (gameloop.Shape, error) {
	switch name {
	case "circle":
		return gameloop.ShapeCircle, nil
	case "rect":
		return gameloop.ShapeRect, nil
	}
	return 0, fmt.Errorf("config: unknown shape %q", name)
}

// BuildScene configures scene from cfg and registers the demo sprites as
// roots: the background first so it draws underneath, then walls, platforms
// and players, each group spread along the world diagonal.
func BuildScene(cfg Config, scene *gameloop.Scene) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	wallShape, err := parseShape(cfg.Walls.Shape)
	if err != nil {
		return err
	}

	world := cfg.WorldRect()
	scene.SetWorld(world)
	scene.SetQuadtree(cfg.Quadtree.Capacity, cfg.Quadtree.MaxDepth)
	scene.ClearColor = cfg.ClearColor()
	scene.SetDebugMode(cfg.Debug)

	if bg := cfg.Background; bg.Enabled {
		scene.Spawn(gameloop.Template{
			Kind:        gameloop.KindBackground,
			Size:        gameloop.Vec2{X: bg.TileSize.X, Y: bg.TileSize.Y},
			Texture:     bg.Texture,
			ScrollSpeed: bg.ScrollSpeed,
		}, 1, world)
	}

	// Walls sit on the anti-diagonal so they cross the players' path.
	walls := scene.Spawn(gameloop.Template{
		Kind:    gameloop.KindWall,
		Size:    gameloop.Vec2{X: cfg.Walls.Size.X, Y: cfg.Walls.Size.Y},
		Shape:   wallShape,
		Texture: cfg.Walls.Texture,
		Sound:   cfg.Walls.Sound,
	}, cfg.Walls.Count, world)
	for _, id := range walls {
		p := scene.Sprite(id).Position
		scene.SetPosition(id, world.X+world.Width-(p.X-world.X), p.Y)
	}

	platforms := scene.Spawn(gameloop.Template{
		Kind:    gameloop.KindPlatform,
		Size:    gameloop.Vec2{X: cfg.Platforms.Size.X, Y: cfg.Platforms.Size.Y},
		Patrol:  gameloop.Vec2{X: cfg.Platforms.Patrol.X, Y: cfg.Platforms.Patrol.Y},
		Texture: cfg.Platforms.Texture,
		Sound:   cfg.Platforms.Sound,
	}, cfg.Platforms.Count, gameloop.Rect{X: world.X, Y: world.Y, Width: world.Width, Height: world.Height / 2})
	for _, id := range platforms {
		// Platforms patrol the top half, one lane each.
		scene.SetPosition(id, world.X+world.Width/2, scene.Sprite(id).Position.Y)
	}

	players := scene.Spawn(gameloop.Template{
		Kind:    gameloop.KindPlayer,
		Size:    gameloop.Vec2{X: cfg.Player.Size.X, Y: cfg.Player.Size.Y},
		Texture: cfg.Player.Texture,
		Sound:   cfg.Player.Sound,
	}, cfg.Player.Count, world)
	for _, id := range players {
		sp := scene.Sprite(id)
		sp.Acceleration = cfg.Player.Acceleration
		sp.RotationOffset = cfg.Player.RotationOffset
	}
	return nil
}
