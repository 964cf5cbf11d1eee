package gameloop

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Key identifies a directional control read by player sprites.
type Key uint8

const (
	KeyUp    Key = iota // W
	KeyDown             // S
	KeyLeft             // A
	KeyRight            // D
	keyCount
)

func (k Key) String() string {
	switch k {
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	default:
		return "unknown"
	}
}

// Input is the per-tick view of the keyboard and mouse that sprites read
// during Update.
type Input interface {
	KeyDown(k Key) bool
	// Cursor returns the mouse position in screen pixels.
	Cursor() Vec2
	// Wheel returns the scroll delta since the previous tick.
	Wheel() Vec2
}

// keyBindings maps each Key to the ebiten keys that trigger it.
var keyBindings = [keyCount][]ebiten.Key{
	KeyUp:    {ebiten.KeyW, ebiten.KeyArrowUp},
	KeyDown:  {ebiten.KeyS, ebiten.KeyArrowDown},
	KeyLeft:  {ebiten.KeyA, ebiten.KeyArrowLeft},
	KeyRight: {ebiten.KeyD, ebiten.KeyArrowRight},
}

// EbitenInput reads live keyboard and mouse state from ebiten. It must only
// be used from within the ebiten game loop.
type EbitenInput struct{}

// KeyDown reports whether any key bound to k is held.
func (EbitenInput) KeyDown(k Key) bool {
	if k >= keyCount {
		return false
	}
	for _, ek := range keyBindings[k] {
		if ebiten.IsKeyPressed(ek) {
			return true
		}
	}
	return false
}

// Cursor returns the mouse position.
func (EbitenInput) Cursor() Vec2 {
	x, y := ebiten.CursorPosition()
	return Vec2{float64(x), float64(y)}
}

// Wheel returns the mouse wheel delta for this tick.
func (EbitenInput) Wheel() Vec2 {
	x, y := ebiten.Wheel()
	return Vec2{x, y}
}
