package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/phanxgames/gameloop"
	"github.com/phanxgames/gameloop/internal/config"
)

func TestBuildHeadless(t *testing.T) {
	cfg := config.Default()
	scene, err := buildHeadless(cfg, 30)
	if err != nil {
		t.Fatal(err)
	}
	if scene.Tick() != 30 {
		t.Errorf("Tick() = %d, want 30", scene.Tick())
	}
	want := 1 + cfg.Walls.Count + cfg.Platforms.Count + cfg.Player.Count
	if got := len(scene.Roots()); got != want {
		t.Errorf("roots = %d, want %d", got, want)
	}
}

func TestRenderTree(t *testing.T) {
	scene := gameloop.NewScene(gameloop.Rect{Width: 100, Height: 100})
	group := scene.Register(nil, "squad")
	if _, err := scene.RegisterChild(group, gameloop.NewWall(gameloop.Vec2{X: 5, Y: 5}, gameloop.Vec2{X: 10, Y: 10}, gameloop.ShapeRect, "brick.png", ""), "brick"); err != nil {
		t.Fatal(err)
	}
	scene.Register(gameloop.NewPlayer(gameloop.Vec2{X: 50, Y: 50}, gameloop.Vec2{X: 20, Y: 20}, "", ""), "hero")

	out := renderTree(scene, "test.dat")
	for _, want := range []string{"test.dat (3 nodes)", "squad", "(group)", "brick", "wall", "tex=brick.png", "hero", "player", "collidable"} {
		if !strings.Contains(out, want) {
			t.Errorf("renderTree output missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "squad") > strings.Index(out, "brick") {
		t.Errorf("child listed before parent:\n%s", out)
	}
}

func TestNewSaveThenInspect(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	path := filepath.Join(t.TempDir(), "start.dat")

	flagConfig, flagDebug, flagTicks = "", false, 5
	t.Cleanup(func() { flagTicks = 0 })
	if err := runNewSave(newSaveCmd, []string{path}); err != nil {
		t.Fatalf("new-save: %v", err)
	}

	var buf bytes.Buffer
	inspectCmd.SetOut(&buf)
	t.Cleanup(func() { inspectCmd.SetOut(nil) })
	if err := runInspect(inspectCmd, []string{path}); err != nil {
		t.Fatalf("inspect: %v", err)
	}
	for _, want := range []string{"background-0", "wall-1", "platform-0", "player-0"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("inspect output missing %q:\n%s", want, buf.String())
		}
	}
}

func TestInspectMissingFile(t *testing.T) {
	if err := runInspect(inspectCmd, []string{filepath.Join(t.TempDir(), "nope.dat")}); err == nil {
		t.Error("inspect of a missing file should fail")
	}
}
