package gameloop

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields of a Sprite simultaneously.
// Create one via the convenience constructors (TweenScale, TweenColor,
// TweenRotation) and either call Update(dt) each frame or hand it to
// Scene.AddTween.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	target *Sprite
	Done   bool
}

// Update advances all tweens by dt seconds and writes values to the target
// fields.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// TweenScale animates sprite.DrawScale from its current value to `to`.
func TweenScale(sprite *Sprite, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, target: sprite}
	g.tweens[0] = gween.New(float32(sprite.DrawScale), float32(to), duration, fn)
	g.fields[0] = &sprite.DrawScale
	return g
}

// TweenColor animates all four components of sprite.Color to the target.
func TweenColor(sprite *Sprite, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 4, target: sprite}
	g.tweens[0] = gween.New(float32(sprite.Color.R), float32(to.R), duration, fn)
	g.tweens[1] = gween.New(float32(sprite.Color.G), float32(to.G), duration, fn)
	g.tweens[2] = gween.New(float32(sprite.Color.B), float32(to.B), duration, fn)
	g.tweens[3] = gween.New(float32(sprite.Color.A), float32(to.A), duration, fn)
	g.fields[0] = &sprite.Color.R
	g.fields[1] = &sprite.Color.G
	g.fields[2] = &sprite.Color.B
	g.fields[3] = &sprite.Color.A
	return g
}

// TweenRotation animates sprite.Rotation (degrees) to the target value.
func TweenRotation(sprite *Sprite, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, target: sprite}
	g.tweens[0] = gween.New(float32(sprite.Rotation), float32(to), duration, fn)
	g.fields[0] = &sprite.Rotation
	return g
}

// AddTween registers g to be advanced at the end of every Update until done.
func (s *Scene) AddTween(g *TweenGroup) {
	s.tweens = append(s.tweens, g)
}

// updateTweens advances every registered tween and drops finished ones.
func (s *Scene) updateTweens(dt float32) {
	live := s.tweens[:0]
	for _, g := range s.tweens {
		g.Update(dt)
		if !g.Done {
			live = append(live, g)
		}
	}
	for i := len(live); i < len(s.tweens); i++ {
		s.tweens[i] = nil
	}
	s.tweens = live
}

// punch pops sp's DrawScale up and eases it back to 1. A punch already
// running on sp is replaced.
func (s *Scene) punch(sp *Sprite) {
	for i, g := range s.tweens {
		if g.target == sp && g.fields[0] == &sp.DrawScale {
			s.tweens = append(s.tweens[:i], s.tweens[i+1:]...)
			break
		}
	}
	sp.DrawScale = s.PunchScale
	s.AddTween(TweenScale(sp, 1, s.PunchDuration, ease.OutQuad))
}
