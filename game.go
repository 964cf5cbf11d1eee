package gameloop

import (
	"errors"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// DefaultSuspiciousDT is the frame time, in seconds, above which a tick is
// skipped rather than integrated. Long stalls (window drags, breakpoints)
// would otherwise teleport sprites through each other.
const DefaultSuspiciousDT = 0.1

// RunConfig configures Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
	// TPS is the fixed update rate. Zero keeps ebiten's default of 60.
	TPS int

	// SavePath is written by the save key and read by the load key.
	SavePath string
	// SuspiciousDT overrides DefaultSuspiciousDT when positive.
	SuspiciousDT float64
	// ShowHUD prints FPS, node count and key help in the top-left corner.
	ShowHUD bool

	// Script, when set, drives the scene instead of the keyboard and mouse.
	// The game exits once the script is done.
	Script *ScriptedInput
}

// controls is the set of game-level keys pressed this tick.
type controls struct {
	pause, save, load, screenshot, debug bool
	focused                              bool
}

// Game adapts a Scene to ebiten.Game. It owns pausing, save/load hotkeys and
// the dt measurement; the scene itself only ever sees sane time steps.
type Game struct {
	scene  *Scene
	cfg    RunConfig
	now    func() time.Time
	last   time.Time
	paused bool

	// skipped counts ticks dropped for a suspicious dt.
	skipped int
}

// NewGame wraps scene. Zero-valued config fields take their defaults.
func NewGame(scene *Scene, cfg RunConfig) *Game {
	if cfg.SuspiciousDT <= 0 {
		cfg.SuspiciousDT = DefaultSuspiciousDT
	}
	if cfg.SavePath == "" {
		cfg.SavePath = "savegame.dat"
	}
	if cfg.Script != nil {
		scene.SetInput(cfg.Script)
	}
	return &Game{scene: scene, cfg: cfg, now: time.Now}
}

// Paused reports whether updates are suspended.
func (g *Game) Paused() bool { return g.paused }

// Update implements ebiten.Game.
func (g *Game) Update() error {
	c := controls{
		pause:      inpututil.IsKeyJustPressed(ebiten.KeyP),
		save:       inpututil.IsKeyJustPressed(ebiten.Key0),
		load:       inpututil.IsKeyJustPressed(ebiten.Key1),
		screenshot: inpututil.IsKeyJustPressed(ebiten.KeyF12),
		debug:      inpututil.IsKeyJustPressed(ebiten.KeyF3),
		focused:    ebiten.IsFocused(),
	}
	return g.step(c)
}

// step runs one tick given this tick's control keys.
func (g *Game) step(c controls) error {
	now := g.now()
	dt := 0.0
	if !g.last.IsZero() {
		dt = now.Sub(g.last).Seconds()
	}
	g.last = now

	if c.pause {
		g.paused = !g.paused
		g.scene.logger.Info("pause", "paused", g.paused)
	}
	if c.debug {
		g.scene.SetDebugMode(!g.scene.debug)
	}
	if c.screenshot {
		g.scene.Screenshot(fmt.Sprintf("tick%d", g.scene.Tick()))
	}
	if c.save {
		if err := g.scene.SaveFile(g.cfg.SavePath); err != nil {
			g.scene.logger.Error("save failed", "err", err)
		}
	}
	if c.load {
		if err := g.scene.LoadFile(g.cfg.SavePath); err != nil {
			g.scene.logger.Error("load failed", "err", err)
		}
	}

	if g.cfg.Script != nil {
		g.cfg.Script.Step()
		if g.cfg.Script.Done() {
			return ebiten.Termination
		}
		// Scripted runs are deterministic: use the nominal step.
		dt = 1 / float64(ebiten.TPS())
	}

	if g.paused || !c.focused {
		return nil
	}
	if dt > g.cfg.SuspiciousDT {
		g.skipped++
		g.scene.logger.Debug("tick skipped", "dt", dt)
		return nil
	}
	g.scene.Update(dt)
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
	if !g.cfg.ShowHUD {
		return
	}
	hud := fmt.Sprintf("FPS: %.0f  TPS: %.0f  nodes: %d  pairs: %d\nWASD move  wheel scroll  P pause  0 save  1 load",
		ebiten.ActualFPS(), ebiten.ActualTPS(), g.scene.Len(), g.scene.Pairs())
	if g.paused {
		hud += "\nPAUSED"
	}
	ebitenutil.DebugPrintAt(screen, hud, 4, 4)
}

// Layout implements ebiten.Game.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

// Run opens a window and runs scene until the window is closed or the input
// script finishes.
func Run(scene *Scene, cfg RunConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		w := scene.World()
		cfg.Width, cfg.Height = int(w.Width), int(w.Height)
	}
	if scene.input == nil && cfg.Script == nil {
		scene.SetInput(EbitenInput{})
	}
	g := NewGame(scene, cfg)

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.TPS > 0 {
		ebiten.SetTPS(cfg.TPS)
	}
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("gameloop: run: %w", err)
	}
	return nil
}
