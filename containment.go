package gameloop

// contain keeps a collidable sprite inside the world rectangle. global is the
// sprite's global position after integration. Each side is checked on its
// own, so a corner hit flips both velocity components.
func (s *Scene) contain(id NodeID, sp *Sprite, global Vec2) {
	w := s.world
	hw, hh := sp.Size.X/2, sp.Size.Y/2
	// Offset between local and global space introduced by ancestors.
	off := global.Sub(sp.Position)

	hit := func(normal Vec2) {
		s.react(CollisionEvent{
			Cause:  CauseBoundary,
			Node:   id,
			Kind:   sp.Kind,
			Point:  sp.Position.Add(off),
			Normal: normal,
		})
	}

	if global.X-hw < w.X {
		sp.Position.X = w.X + hw - off.X
		sp.Velocity.X = -sp.Velocity.X
		hit(Vec2{1, 0})
	}
	if global.X+hw > w.X+w.Width {
		sp.Position.X = w.X + w.Width - hw - off.X
		sp.Velocity.X = -sp.Velocity.X
		hit(Vec2{-1, 0})
	}
	if global.Y-hh < w.Y {
		sp.Position.Y = w.Y + hh - off.Y
		sp.Velocity.Y = -sp.Velocity.Y
		hit(Vec2{0, 1})
	}
	if global.Y+hh > w.Y+w.Height {
		sp.Position.Y = w.Y + w.Height - hh - off.Y
		sp.Velocity.Y = -sp.Velocity.Y
		hit(Vec2{0, -1})
	}
}
