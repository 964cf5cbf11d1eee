package gameloop

// localPosition returns the sprite position of n, or the origin for pure
// containers.
func localPosition(n *node) Vec2 {
	if n.sprite == nil {
		return Vec2{}
	}
	return n.sprite.Position
}

func localRotation(n *node) float64 {
	if n.sprite == nil {
		return 0
	}
	return n.sprite.Rotation
}

// GlobalPosition composes id's local position with every ancestor's.
// Roots return their local position. O(depth).
func (s *Scene) GlobalPosition(id NodeID) Vec2 {
	n := s.arena.get(id)
	if n == nil {
		return Vec2{}
	}
	if n.parent.IsZero() {
		return localPosition(n)
	}
	return s.GlobalPosition(n.parent).Add(localPosition(n))
}

// GlobalRotation composes id's rotation (degrees) with every ancestor's.
func (s *Scene) GlobalRotation(id NodeID) float64 {
	n := s.arena.get(id)
	if n == nil {
		return 0
	}
	if n.parent.IsZero() {
		return localRotation(n)
	}
	return s.GlobalRotation(n.parent) + localRotation(n)
}

// Bounds returns the axis-aligned rectangle centered on id's global position
// and sized by its sprite. ok is false when id has no sprite.
func (s *Scene) Bounds(id NodeID) (r Rect, ok bool) {
	n := s.arena.get(id)
	if n == nil || n.sprite == nil {
		return Rect{}, false
	}
	return RectCentered(s.GlobalPosition(id), n.sprite.Size), true
}

// SetPosition sets id's local position. No-op for containers.
func (s *Scene) SetPosition(id NodeID, x, y float64) {
	if sp := s.Sprite(id); sp != nil {
		sp.Position = Vec2{x, y}
	}
}

// WorldToLocal converts a global point into id's parent space, i.e. the
// space its sprite position is expressed in.
func (s *Scene) WorldToLocal(id NodeID, p Vec2) Vec2 {
	n := s.arena.get(id)
	if n == nil || n.parent.IsZero() {
		return p
	}
	return p.Sub(s.GlobalPosition(n.parent))
}
