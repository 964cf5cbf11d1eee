package gameloop

import "math"

// Cause identifies what made a sprite react.
type Cause uint8

const (
	CauseCollision Cause = iota // touched another collidable sprite
	CauseBoundary               // hit the edge of the world
)

func (c Cause) String() string {
	if c == CauseBoundary {
		return "boundary"
	}
	return "collision"
}

// CollisionEvent describes one reaction. For boundary hits Other is the zero
// handle and Normal points back into the world.
type CollisionEvent struct {
	Cause  Cause
	Node   NodeID
	Other  NodeID
	Kind   Kind
	Point  Vec2 // global position of Node when the event fired
	Normal Vec2
}

// circlesOverlap reports whether two circles strictly overlap.
func circlesOverlap(c1 Vec2, r1 float64, c2 Vec2, r2 float64) bool {
	dx, dy := c2.X-c1.X, c2.Y-c1.Y
	rs := r1 + r2
	return dx*dx+dy*dy < rs*rs
}

// circleRectOverlap reports whether a circle strictly overlaps a rectangle,
// using the rectangle point closest to the circle center.
func circleRectOverlap(c Vec2, r float64, rect Rect) bool {
	nx := math.Max(rect.X, math.Min(c.X, rect.X+rect.Width))
	ny := math.Max(rect.Y, math.Min(c.Y, rect.Y+rect.Height))
	dx, dy := c.X-nx, c.Y-ny
	return dx*dx+dy*dy < r*r
}

// collisionAngle returns the direction from p1 to p2 in radians. Coincident
// points yield 0.
func collisionAngle(p1, p2 Vec2) float64 {
	dx, dy := p2.X-p1.X, p2.Y-p1.Y
	if dx == 0 && dy == 0 {
		return 0
	}
	return math.Atan2(dy, dx)
}

// redirect retargets both velocities along the line through the two
// positions: s1 heads away from p2, s2 heads away from p1. Speeds are kept;
// positions are not corrected.
func redirect(s1 *Sprite, p1 Vec2, s2 *Sprite, p2 Vec2) {
	angle := collisionAngle(p1, p2)
	s1.Velocity = polar(s1.Velocity.Len(), angle+math.Pi)
	s2.Velocity = polar(s2.Velocity.Len(), angle)
}

func polar(speed, angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	return Vec2{speed * cos, speed * sin}
}

// collide runs the narrow phase for self against other and, on overlap,
// applies the response and returns true. Both sprites must be collidable.
func (s *Scene) collide(self NodeID, a *Sprite, other NodeID, b *Sprite) bool {
	pa := s.GlobalPosition(self)
	pb := s.GlobalPosition(other)

	switch {
	case a.Shape == ShapeCircle && b.Shape == ShapeCircle:
		if !circlesOverlap(pa, a.Radius(), pb, b.Radius()) {
			return false
		}
		redirect(a, pa, b, pb)

	case a.Shape == ShapeCircle && b.Shape == ShapeRect:
		if !circleRectOverlap(pa, a.Radius(), RectCentered(pb, b.Size)) {
			return false
		}
		redirect(a, pa, b, pb)

	case a.Shape == ShapeRect && b.Shape == ShapeCircle:
		// The circle always plays the first role.
		if !circleRectOverlap(pb, b.Radius(), RectCentered(pa, a.Size)) {
			return false
		}
		redirect(b, pb, a, pa)

	default:
		if !RectCentered(pa, a.Size).Overlaps(RectCentered(pb, b.Size)) {
			return false
		}
		redirect(a, pa, b, pb)
	}

	n := polar(1, collisionAngle(pb, pa))
	s.react(CollisionEvent{Cause: CauseCollision, Node: self, Other: other, Kind: a.Kind, Point: pa, Normal: n})
	s.react(CollisionEvent{Cause: CauseCollision, Node: other, Other: self, Kind: b.Kind, Point: pb, Normal: n.Scale(-1)})
	return true
}

type pairKey [2]NodeID

// makePairKey orders the two handles so (a, b) and (b, a) share a key.
func makePairKey(a, b NodeID) pairKey {
	if b.index < a.index || (b.index == a.index && b.gen < a.gen) {
		a, b = b, a
	}
	return pairKey{a, b}
}

// resolveCollisions is the broad+narrow phase pass over every indexed node.
// A pair found from both sides is resolved once per tick. Returns the number
// of overlapping pairs.
func (s *Scene) resolveCollisions() int {
	hits := 0
	clear(s.pairs)
	s.allBuf = s.index.RetrieveInto(s.world, s.allBuf[:0])
	for _, self := range s.allBuf {
		a := s.Sprite(self)
		if a == nil || !a.Collidable {
			continue
		}
		bounds, _ := s.Bounds(self)
		s.candBuf = s.index.RetrieveInto(bounds, s.candBuf[:0])
		for _, other := range s.candBuf {
			if other == self {
				continue
			}
			b := s.Sprite(other)
			if b == nil || !b.Collidable {
				continue
			}
			key := makePairKey(self, other)
			if _, done := s.pairs[key]; done {
				continue
			}
			if s.collide(self, a, other, b) {
				s.pairs[key] = struct{}{}
				hits++
			}
		}
	}
	return hits
}
