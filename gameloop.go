package gameloop

import (
	"image/color"
	"math"
)

// Vec2 is a 2D vector used for positions, sizes and velocities throughout the
// API.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v * k.
func (v Vec2) Scale(k float64) Vec2 { return Vec2{v.X * k, v.Y * k} }

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// RectCentered returns the rectangle of the given size centered on c.
func RectCentered(c, size Vec2) Rect {
	return Rect{c.X - size.X/2, c.Y - size.Y/2, size.X, size.Y}
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Overlaps is the strict form of Intersects: rectangles that only share an
// edge do not overlap.
func (r Rect) Overlaps(other Rect) bool {
	return r.X < other.X+other.Width &&
		r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{r.X + r.Width/2, r.Y + r.Height/2}
}

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// RGBA converts c to a premultiplied color.RGBA.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Shape selects the narrow-phase geometry of a sprite.
type Shape uint8

const (
	ShapeCircle Shape = iota // circle of diameter Size.X
	ShapeRect                // axis-aligned rectangle of Size
)

func (s Shape) String() string {
	switch s {
	case ShapeCircle:
		return "circle"
	case ShapeRect:
		return "rect"
	default:
		return "unknown"
	}
}

// Kind tags the closed set of sprite variants. The numeric values are the
// on-disk tags, so new kinds must be appended.
type Kind uint8

const (
	KindPlayer     Kind = iota // input-driven circle
	KindBackground             // scrolling tiled backdrop
	KindWall                   // static obstacle
	KindPlatform               // patrols along a fixed velocity
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindBackground:
		return "background"
	case KindWall:
		return "wall"
	case KindPlatform:
		return "platform"
	default:
		return "unknown"
	}
}

// valid reports whether k is one of the known kinds.
func (k Kind) valid() bool {
	return k <= KindPlatform
}

const (
	degToRad = math.Pi / 180
	radToDeg = 180 / math.Pi
)
