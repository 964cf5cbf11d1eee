package gameloop

import "math"

const (
	// DefaultAcceleration is the player's thrust in pixels per second squared.
	DefaultAcceleration = 1000.0
	// DefaultRotationOffset is added to the player's mouse-facing angle so the
	// artwork's nose points at the cursor.
	DefaultRotationOffset = 20.0
	// DefaultScrollSpeed is the background scroll distance per wheel notch.
	DefaultScrollSpeed = 100.0

	defaultTextureSize = 100
)

// Sprite is the visual and physical payload of a scene node. A single flat
// struct is used for every Kind; fields that do not apply to a kind are
// ignored by it.
type Sprite struct {
	Kind Kind

	// Common state, persisted in declaration order.
	Position   Vec2 // local, relative to the parent node
	Size       Vec2
	Rotation   float64 // degrees
	Velocity   Vec2
	Shape      Shape
	Collidable bool

	// Resource keys (Player, Wall, Platform; Background uses Texture only).
	Texture string
	Sound   string

	// Player
	Acceleration   float64
	RotationOffset float64

	// Platform
	Patrol Vec2

	// Background. The scroll offset lives in Position.
	ScrollSpeed float64

	// Render-only state, not persisted.
	DrawScale float64
	Color     Color
}

func spriteDefaults(s *Sprite) {
	s.DrawScale = 1
	s.Color = ColorWhite
}

// NewPlayer creates a collidable circular player sprite.
func NewPlayer(pos, size Vec2, texture, sound string) *Sprite {
	s := &Sprite{
		Kind:           KindPlayer,
		Position:       pos,
		Size:           size,
		Shape:          ShapeCircle,
		Collidable:     true,
		Texture:        texture,
		Sound:          sound,
		Acceleration:   DefaultAcceleration,
		RotationOffset: DefaultRotationOffset,
	}
	spriteDefaults(s)
	return s
}

// NewWall creates a static collidable sprite.
func NewWall(pos, size Vec2, shape Shape, texture, sound string) *Sprite {
	s := &Sprite{
		Kind:       KindWall,
		Position:   pos,
		Size:       size,
		Shape:      shape,
		Collidable: true,
		Texture:    texture,
		Sound:      sound,
	}
	spriteDefaults(s)
	return s
}

// NewPlatform creates a collidable rectangle that keeps moving at patrol
// speed, flipping direction when something knocks it backwards.
func NewPlatform(pos, size, patrol Vec2, texture, sound string) *Sprite {
	s := &Sprite{
		Kind:       KindPlatform,
		Position:   pos,
		Size:       size,
		Velocity:   patrol,
		Shape:      ShapeRect,
		Collidable: true,
		Texture:    texture,
		Sound:      sound,
		Patrol:     patrol,
	}
	spriteDefaults(s)
	return s
}

// NewBackground creates a non-collidable tiled backdrop. size is the tile
// size used for wrapping.
func NewBackground(size Vec2, texture string, scrollSpeed float64) *Sprite {
	if size.X <= 0 || size.Y <= 0 {
		size = Vec2{defaultTextureSize, defaultTextureSize}
	}
	s := &Sprite{
		Kind:        KindBackground,
		Size:        size,
		Shape:       ShapeRect,
		Texture:     texture,
		ScrollSpeed: scrollSpeed,
	}
	spriteDefaults(s)
	return s
}

// Radius returns the collision radius of a circular sprite.
func (s *Sprite) Radius() float64 {
	return s.Size.X / 2
}

// advance applies kind-specific behavior and integrates motion.
// global is the sprite's global position before the step.
func (s *Sprite) advance(dt float64, global Vec2, in Input) {
	switch s.Kind {
	case KindPlayer:
		s.steer(dt, global, in)
	case KindPlatform:
		s.patrol()
	case KindBackground:
		s.scroll(in)
		return
	}
	s.Position = s.Position.Add(s.Velocity.Scale(dt))
}

// steer accelerates from the directional keys and turns to face the cursor.
func (s *Sprite) steer(dt float64, global Vec2, in Input) {
	if in == nil {
		return
	}
	a := s.Acceleration * dt
	if in.KeyDown(KeyUp) {
		s.Velocity.Y -= a
	}
	if in.KeyDown(KeyDown) {
		s.Velocity.Y += a
	}
	if in.KeyDown(KeyLeft) {
		s.Velocity.X -= a
	}
	if in.KeyDown(KeyRight) {
		s.Velocity.X += a
	}
	c := in.Cursor()
	dx, dy := c.X-global.X, c.Y-global.Y
	if dx == 0 && dy == 0 {
		return
	}
	s.Rotation = math.Atan2(dy, dx)*radToDeg + s.RotationOffset
}

// patrol keeps the platform at its patrol speed, in whichever direction the
// last collision left it heading.
func (s *Sprite) patrol() {
	if s.Velocity.Dot(s.Patrol) >= 0 {
		s.Velocity = s.Patrol
	} else {
		s.Velocity = s.Patrol.Scale(-1)
	}
}

// scroll moves the backdrop by the wheel delta and wraps the offset so a
// tile always covers the top-left corner of the screen.
func (s *Sprite) scroll(in Input) {
	if in != nil {
		w := in.Wheel()
		s.Position.X += w.X * s.ScrollSpeed
		s.Position.Y += w.Y * s.ScrollSpeed
	}
	tw, th := s.Size.X, s.Size.Y
	if tw > 0 {
		s.Position.X = wrapOffset(s.Position.X, tw)
	}
	if th > 0 {
		s.Position.Y = wrapOffset(s.Position.Y, th)
	}
}

// wrapOffset maps v into (-tile, 0].
func wrapOffset(v, tile float64) float64 {
	v = math.Mod(v, tile)
	if v > 0 {
		v -= tile
	}
	return v
}

// clone returns a copy of s.
func (s *Sprite) clone() *Sprite {
	c := *s
	return &c
}
