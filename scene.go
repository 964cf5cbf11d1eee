package gameloop

import (
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// EventStore is the interface for optional ECS integration. When set on a
// Scene, every collision and boundary reaction is forwarded to it.
type EventStore interface {
	EmitEvent(event CollisionEvent)
}

// SoundPlayer plays a sound by resource key. The scene calls it when a sprite
// with a Sound reacts.
type SoundPlayer interface {
	PlaySound(key string)
}

// Scene owns the node arena, the per-tick spatial index and the
// collaborators sprites react through.
//
// A Scene is not safe for concurrent use. Update and Draw must run on the
// same goroutine, which the ebiten loop guarantees.
type Scene struct {
	arena arena
	world Rect
	index *Quadtree

	input  Input
	sound  SoundPlayer
	store  EventStore
	logger *log.Logger
	debug  bool

	// ClearColor fills the screen before the scene is drawn. A zero alpha
	// leaves the screen untouched.
	ClearColor Color

	// PunchScale is the DrawScale a reacting sprite jumps to before easing
	// back to 1. Values <= 1 disable the effect.
	PunchScale float64
	// PunchDuration is the ease-back time in seconds.
	PunchDuration float32

	resources *Resources
	tweens    []*TweenGroup

	// Per-tick scratch buffers.
	allBuf  []NodeID
	candBuf []NodeID
	pairs   map[pairKey]struct{}

	commands []drawCommand

	tick  uint64
	stats tickStats

	// Screenshots
	ScreenshotDir   string
	screenshotQueue []string
}

// NewScene creates an empty scene whose world rectangle bounds both the
// spatial index and boundary containment.
func NewScene(world Rect) *Scene {
	return &Scene{
		world:         world,
		index:         NewQuadtree(world, DefaultQuadCapacity),
		pairs:         make(map[pairKey]struct{}),
		PunchScale:    1.2,
		PunchDuration: 0.25,
		ScreenshotDir: "screenshots",
		logger: log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "gameloop",
		}),
	}
}

// World returns the world rectangle.
func (s *Scene) World() Rect {
	return s.world
}

// SetWorld changes the world rectangle and resizes the spatial index.
func (s *Scene) SetWorld(world Rect) {
	s.world = world
	s.index.SetBounds(world)
}

// Index returns the spatial index as built by the last Update.
func (s *Scene) Index() *Quadtree {
	return s.index
}

// SetQuadtree configures the spatial index capacity and depth limit.
func (s *Scene) SetQuadtree(capacity, maxDepth int) {
	s.index = NewQuadtree(s.world, capacity)
	s.index.SetMaxDepth(maxDepth)
}

// SetInput sets the input source read by player and background sprites.
// A nil input means no keys are held and the wheel is still.
func (s *Scene) SetInput(in Input) {
	s.input = in
}

// SetSoundPlayer sets the audio collaborator for reaction cues.
func (s *Scene) SetSoundPlayer(p SoundPlayer) {
	s.sound = p
}

// SetEventStore sets the optional ECS bridge.
func (s *Scene) SetEventStore(store EventStore) {
	s.store = store
}

// SetResources sets the texture cache used by Draw.
func (s *Scene) SetResources(r *Resources) {
	s.resources = r
}

// Resources returns the texture cache used by Draw, or nil.
func (s *Scene) Resources() *Resources {
	return s.resources
}

// SetLogger replaces the scene's logger.
func (s *Scene) SetLogger(l *log.Logger) {
	if l != nil {
		s.logger = l
	}
}

// Logger returns the scene's logger.
func (s *Scene) Logger() *log.Logger {
	return s.logger
}

// SetDebugMode enables or disables debug mode. When enabled, tree depth
// warnings and per-tick timings are logged and Draw overlays the spatial
// index.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// Tick returns the number of completed Update calls.
func (s *Scene) Tick() uint64 {
	return s.tick
}

// Update advances the scene by dt seconds: it rebuilds the spatial index,
// resolves collisions, then integrates and contains every attached node.
// The whole tick runs to completion before returning.
func (s *Scene) Update(dt float64) {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	s.rebuildIndex()
	if s.debug {
		s.stats.rebuildTime = time.Since(t0)
		t0 = time.Now()
	}

	s.stats.pairs = s.resolveCollisions()
	if s.debug {
		s.stats.collideTime = time.Since(t0)
		t0 = time.Now()
	}

	for _, r := range s.arena.roots {
		s.updateNode(r, Vec2{}, dt)
	}
	s.updateTweens(float32(dt))
	if s.debug {
		s.stats.integrateTime = time.Since(t0)
		s.stats.nodes = s.arena.live
		s.stats.indexed = s.index.Len()
		s.stats.depth = s.index.Depth()
		s.debugLog(s.stats)
	}
	s.tick++
}

// rebuildIndex clears the spatial index and inserts every attached node that
// owns a sprite.
func (s *Scene) rebuildIndex() {
	s.index.Clear()
	for _, r := range s.arena.roots {
		s.indexNode(r, Vec2{})
	}
}

func (s *Scene) indexNode(id NodeID, parentGlobal Vec2) {
	n := &s.arena.nodes[id.index]
	global := parentGlobal.Add(localPosition(n))
	if n.sprite != nil {
		s.index.Insert(id, RectCentered(global, n.sprite.Size))
	}
	for _, c := range n.children {
		s.indexNode(c, global)
	}
}

// updateNode advances id, then its children, pre-order. Children update
// whether or not their parent is collidable.
func (s *Scene) updateNode(id NodeID, parentGlobal Vec2, dt float64) {
	n := &s.arena.nodes[id.index]
	if sp := n.sprite; sp != nil {
		sp.advance(dt, parentGlobal.Add(sp.Position), s.input)
		if sp.Collidable {
			s.contain(id, sp, parentGlobal.Add(sp.Position))
		}
	}
	global := parentGlobal.Add(localPosition(n))
	for _, c := range n.children {
		s.updateNode(c, global, dt)
	}
}

// react dispatches a reaction to the sprite's sound cue, the punch tween and
// the event store.
func (s *Scene) react(ev CollisionEvent) {
	sp := s.Sprite(ev.Node)
	if sp == nil {
		return
	}
	if sp.Sound != "" && s.sound != nil {
		s.sound.PlaySound(sp.Sound)
	}
	if s.PunchScale > 1 && s.PunchDuration > 0 {
		s.punch(sp)
	}
	if s.store != nil {
		s.store.EmitEvent(ev)
	}
}
