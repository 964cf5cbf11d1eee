package config

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/phanxgames/gameloop"
)

// isolate points HOME and the working directory at empty temp dirs so the
// implicit search locations start out missing.
func isolate(t *testing.T) (home, work string) {
	t.Helper()
	home, work = t.TempDir(), t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Chdir(work)
	return home, work
}

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestEmbeddedMatchesDefault(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(embedded): %v", err)
	}
	want := Default()
	if cfg != want {
		t.Errorf("embedded config = %+v\nwant %+v", cfg, want)
	}
}

func TestLoad_Embedded(t *testing.T) {
	isolate(t)
	cfg, src, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if src != SourceEmbedded {
		t.Errorf("source = %q, want %q", src, SourceEmbedded)
	}
	if cfg.Window.Width != 1000 || cfg.Window.Height != 800 {
		t.Errorf("window = %dx%d, want 1000x800", cfg.Window.Width, cfg.Window.Height)
	}
}

func TestLoad_SearchOrder(t *testing.T) {
	home, work := isolate(t)

	writeFile(t, filepath.Join(work, "configs", "gameloop.yaml"), "window: {title: local}\n")
	_, src, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if src != filepath.Join("configs", "gameloop.yaml") {
		t.Errorf("source = %q, want local configs file", src)
	}

	user := filepath.Join(home, ".gameloop", "config.yaml")
	writeFile(t, user, "window: {title: user}\n")
	cfg, src, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if src != user || cfg.Window.Title != "user" {
		t.Errorf("Load = (%q, %q), want user file to win", src, cfg.Window.Title)
	}

	custom := filepath.Join(work, "custom.yaml")
	writeFile(t, custom, "window: {title: custom}\n")
	cfg, src, err = Load(custom)
	if err != nil {
		t.Fatal(err)
	}
	if src != custom || cfg.Window.Title != "custom" {
		t.Errorf("Load(custom) = (%q, %q), want custom file", src, cfg.Window.Title)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	_, work := isolate(t)
	path := filepath.Join(work, "c.yaml")
	writeFile(t, path, "quadtree: {capacity: 9}\nplayer: {count: 3}\n")

	cfg, _, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Quadtree.Capacity != 9 {
		t.Errorf("capacity = %d, want 9", cfg.Quadtree.Capacity)
	}
	if cfg.Quadtree.MaxDepth != 8 {
		t.Errorf("max_depth = %d, want default 8", cfg.Quadtree.MaxDepth)
	}
	if cfg.Player.Count != 3 || cfg.Player.Acceleration != 1000 {
		t.Errorf("player = %+v, want count 3 with default acceleration", cfg.Player)
	}
}

func TestLoad_CustomErrors(t *testing.T) {
	_, work := isolate(t)

	if _, _, err := Load(filepath.Join(work, "missing.yaml")); err == nil {
		t.Error("Load(missing) should fail")
	}

	bad := filepath.Join(work, "bad.yaml")
	writeFile(t, bad, "walls: {shape: hexagon}\n")
	_, _, err := Load(bad)
	if err == nil || !strings.Contains(err.Error(), "hexagon") {
		t.Errorf("Load(bad shape) = %v, want shape error", err)
	}
}

func TestLoad_MalformedImplicitFileSkipped(t *testing.T) {
	home, _ := isolate(t)
	writeFile(t, filepath.Join(home, ".gameloop", "config.yaml"), "window: [not, a, map]\n")

	_, src, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if src != SourceEmbedded {
		t.Errorf("source = %q, want fallthrough to %q", src, SourceEmbedded)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"window", func(c *Config) { c.Window.Width = 0 }, "window"},
		{"capacity", func(c *Config) { c.Quadtree.Capacity = 0 }, "capacity"},
		{"depth", func(c *Config) { c.Quadtree.MaxDepth = -1 }, "max_depth"},
		{"shape", func(c *Config) { c.Walls.Shape = "blob" }, "shape"},
		{"size", func(c *Config) { c.Platforms.Size.X = 0 }, "platforms"},
		{"count", func(c *Config) { c.Player.Count = -2 }, "player"},
		{"dt", func(c *Config) { c.SuspiciousDT = -1 }, "suspicious_dt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() = %v, want error mentioning %q", err, tt.want)
			}
		})
	}

	cfg := Default()
	cfg.Platforms.Count = 0
	cfg.Platforms.Size = XY{}
	if err := cfg.Validate(); err != nil {
		t.Errorf("zero-count group with zero size: %v", err)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Walls.Shape = "circle"
	cfg.Debug = true
	data, err := Marshal(cfg)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Parse(data)
	if err != nil {
		t.Fatal(err)
	}
	if got != cfg {
		t.Errorf("round trip = %+v, want %+v", got, cfg)
	}
}

func TestWorldRect(t *testing.T) {
	cfg := Default()
	if got, want := cfg.WorldRect(), (gameloop.Rect{Width: 1000, Height: 800}); got != want {
		t.Errorf("WorldRect() = %v, want %v", got, want)
	}
	cfg.World = WorldConfig{X: 10, Width: 300}
	if got, want := cfg.WorldRect(), (gameloop.Rect{X: 10, Width: 300, Height: 800}); got != want {
		t.Errorf("WorldRect() = %v, want %v", got, want)
	}
}

func TestBuildScene(t *testing.T) {
	cfg := Default()
	cfg.Player.Acceleration = 500

	scene := gameloop.NewScene(gameloop.Rect{Width: 1, Height: 1})
	scene.SetLogger(log.New(io.Discard))
	if err := BuildScene(cfg, scene); err != nil {
		t.Fatal(err)
	}

	if got := scene.World(); got != cfg.WorldRect() {
		t.Errorf("World() = %v, want %v", got, cfg.WorldRect())
	}
	want := 1 + cfg.Walls.Count + cfg.Platforms.Count + cfg.Player.Count
	if got := len(scene.Roots()); got != want {
		t.Fatalf("roots = %d, want %d", got, want)
	}

	kinds := map[gameloop.Kind]int{}
	for _, id := range scene.Roots() {
		sp := scene.Sprite(id)
		kinds[sp.Kind]++
		if sp.Kind == gameloop.KindPlayer {
			if sp.Acceleration != 500 {
				t.Errorf("player acceleration = %v, want 500", sp.Acceleration)
			}
			if sp.Position != (gameloop.Vec2{X: 500, Y: 400}) {
				t.Errorf("player position = %v, want world center", sp.Position)
			}
		}
	}
	if kinds[gameloop.KindBackground] != 1 || kinds[gameloop.KindWall] != 2 || kinds[gameloop.KindPlatform] != 2 {
		t.Errorf("kinds = %v", kinds)
	}
	if first := scene.Sprite(scene.Roots()[0]); first.Kind != gameloop.KindBackground {
		t.Errorf("first root = %v, want background", first.Kind)
	}

	// The default layout starts with nothing overlapping.
	scene.Update(0)
	if got := scene.Pairs(); got != 0 {
		t.Errorf("initial overlapping pairs = %d, want 0", got)
	}
}

func TestBuildScene_Invalid(t *testing.T) {
	cfg := Default()
	cfg.Quadtree.Capacity = 0
	scene := gameloop.NewScene(gameloop.Rect{Width: 1, Height: 1})
	if err := BuildScene(cfg, scene); err == nil {
		t.Error("BuildScene with invalid config should fail")
	}
	if scene.Len() != 0 {
		t.Errorf("scene has %d nodes after failed build, want 0", scene.Len())
	}
}
