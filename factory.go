package gameloop

import "fmt"

// Template describes sprites to stamp out with Spawn. Fields that do not
// apply to Kind are ignored.
type Template struct {
	Kind        Kind
	Size        Vec2
	Shape       Shape
	Texture     string
	Sound       string
	Patrol      Vec2
	ScrollSpeed float64
}

// New builds one sprite from t at pos.
func (t Template) New(pos Vec2) *Sprite {
	switch t.Kind {
	case KindPlayer:
		return NewPlayer(pos, t.Size, t.Texture, t.Sound)
	case KindWall:
		return NewWall(pos, t.Size, t.Shape, t.Texture, t.Sound)
	case KindPlatform:
		return NewPlatform(pos, t.Size, t.Patrol, t.Texture, t.Sound)
	case KindBackground:
		return NewBackground(t.Size, t.Texture, t.ScrollSpeed)
	}
	return nil
}

// DiagonalPositions spreads n points evenly along the diagonal of area,
// leaving one step of margin at each end.
func DiagonalPositions(area Rect, n int) []Vec2 {
	if n <= 0 {
		return nil
	}
	dx := area.Width / float64(n+1)
	dy := area.Height / float64(n+1)
	out := make([]Vec2, n)
	for i := range out {
		out[i] = Vec2{area.X + float64(i+1)*dx, area.Y + float64(i+1)*dy}
	}
	return out
}

// Spawn registers n root sprites built from t along the diagonal of area and
// returns their handles. Nodes are named "<kind>-<i>".
func (s *Scene) Spawn(t Template, n int, area Rect) []NodeID {
	ids := make([]NodeID, 0, max(n, 0))
	for i, pos := range DiagonalPositions(area, n) {
		sp := t.New(pos)
		if sp == nil {
			break
		}
		ids = append(ids, s.Register(sp, fmt.Sprintf("%s-%d", t.Kind, i)))
	}
	return ids
}
