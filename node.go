package gameloop

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a handle is stale or a node is not where
	// the caller said it is.
	ErrNotFound = errors.New("gameloop: node not found")
	// ErrAlreadyAttached is returned when attaching a node that already has a
	// parent or is a scene root. Detach it first.
	ErrAlreadyAttached = errors.New("gameloop: node already attached")
	// ErrCycle is returned when an attach would make a node its own ancestor.
	ErrCycle = errors.New("gameloop: attach would create a cycle")
)

// NodeID is a handle into a Scene's node arena. The zero value never refers
// to a node. Handles to destroyed nodes are rejected even after their slot
// has been reused.
type NodeID struct {
	index uint32
	gen   uint32
}

// IsZero reports whether id is the zero handle.
func (id NodeID) IsZero() bool { return id.gen == 0 }

func (id NodeID) String() string {
	if id.IsZero() {
		return "node(nil)"
	}
	return fmt.Sprintf("node(%d#%d)", id.index, id.gen)
}

// node is an arena slot. parent is the zero handle for roots and detached
// nodes.
type node struct {
	gen      uint32
	alive    bool
	root     bool
	name     string
	sprite   *Sprite
	parent   NodeID
	children []NodeID
}

// arena owns every node of a scene. Ownership flows parent to child through
// handles; the free list recycles destroyed slots. Generations start above
// floor so an arena swapped in by Load never reissues an older handle.
type arena struct {
	nodes []node
	free  []uint32
	roots []NodeID
	live  int
	floor uint32
}

func (a *arena) alloc(sprite *Sprite, name string) NodeID {
	var idx uint32
	if n := len(a.free); n > 0 {
		idx = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		idx = uint32(len(a.nodes))
		a.nodes = append(a.nodes, node{})
	}
	slot := &a.nodes[idx]
	slot.gen = max(slot.gen, a.floor) + 1
	slot.alive = true
	slot.name = name
	slot.sprite = sprite
	a.live++
	return NodeID{index: idx, gen: slot.gen}
}

// get returns the slot for id, or nil if id is stale.
func (a *arena) get(id NodeID) *node {
	if id.gen == 0 || int(id.index) >= len(a.nodes) {
		return nil
	}
	n := &a.nodes[id.index]
	if !n.alive || n.gen != id.gen {
		return nil
	}
	return n
}

// isAncestor reports whether candidate is id or one of its ancestors.
func (a *arena) isAncestor(candidate, id NodeID) bool {
	for p := id; !p.IsZero(); p = a.nodes[p.index].parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeID removes id from s using copy+zero so the backing array keeps no
// stale handle. Reports whether id was present.
func removeID(s *[]NodeID, id NodeID) bool {
	list := *s
	for i, c := range list {
		if c == id {
			copy(list[i:], list[i+1:])
			list[len(list)-1] = NodeID{}
			*s = list[:len(list)-1]
			return true
		}
	}
	return false
}

// --- Registration ---

// Register creates a root node owning sprite. A nil sprite creates a pure
// container node.
func (s *Scene) Register(sprite *Sprite, name string) NodeID {
	id := s.arena.alloc(sprite, name)
	s.arena.nodes[id.index].root = true
	s.arena.roots = append(s.arena.roots, id)
	return id
}

// RegisterChild creates a node owning sprite and attaches it under parent.
func (s *Scene) RegisterChild(parent NodeID, sprite *Sprite, name string) (NodeID, error) {
	if s.arena.get(parent) == nil {
		return NodeID{}, fmt.Errorf("gameloop: register child of %v: %w", parent, ErrNotFound)
	}
	id := s.arena.alloc(sprite, name)
	p := s.arena.get(parent)
	s.arena.nodes[id.index].parent = parent
	p.children = append(p.children, id)
	return id, nil
}

// NewNode creates a detached node owning sprite. It is not updated, drawn or
// saved until attached with AttachChild or AddRoot.
func (s *Scene) NewNode(sprite *Sprite, name string) NodeID {
	return s.arena.alloc(sprite, name)
}

// --- Tree manipulation ---

// AttachChild appends child to parent's children.
// child must be detached: a node with a parent, or a root, is rejected with
// ErrAlreadyAttached.
func (s *Scene) AttachChild(parent, child NodeID) error {
	p := s.arena.get(parent)
	c := s.arena.get(child)
	if p == nil || c == nil {
		return fmt.Errorf("gameloop: attach %v to %v: %w", child, parent, ErrNotFound)
	}
	if !c.parent.IsZero() || c.root {
		return fmt.Errorf("gameloop: attach %v to %v: %w", child, parent, ErrAlreadyAttached)
	}
	if s.arena.isAncestor(child, parent) {
		return fmt.Errorf("gameloop: attach %v to %v: %w", child, parent, ErrCycle)
	}
	c.parent = parent
	p.children = append(p.children, child)
	if s.debug {
		s.debugCheckTreeDepth(child)
	}
	return nil
}

// DetachChild removes child from parent's children and hands it back to the
// caller as a detached node. Fails with ErrNotFound if child is not a direct
// child of parent.
func (s *Scene) DetachChild(parent, child NodeID) (NodeID, error) {
	p := s.arena.get(parent)
	c := s.arena.get(child)
	if p == nil || c == nil || c.parent != parent || !removeID(&p.children, child) {
		return NodeID{}, fmt.Errorf("gameloop: detach %v from %v: %w", child, parent, ErrNotFound)
	}
	c.parent = NodeID{}
	return child, nil
}

// AddRoot makes a detached node a scene root.
func (s *Scene) AddRoot(id NodeID) error {
	n := s.arena.get(id)
	if n == nil {
		return fmt.Errorf("gameloop: add root %v: %w", id, ErrNotFound)
	}
	if !n.parent.IsZero() || n.root {
		return fmt.Errorf("gameloop: add root %v: %w", id, ErrAlreadyAttached)
	}
	n.root = true
	s.arena.roots = append(s.arena.roots, id)
	return nil
}

// RemoveRoot detaches a root from the scene. The node and its subtree stay
// alive and are handed back to the caller.
func (s *Scene) RemoveRoot(id NodeID) error {
	n := s.arena.get(id)
	if n == nil || !n.root || !removeID(&s.arena.roots, id) {
		return fmt.Errorf("gameloop: remove root %v: %w", id, ErrNotFound)
	}
	n.root = false
	return nil
}

// Destroy detaches id from wherever it is and frees it and its whole
// subtree. Handles to any of the freed nodes become stale.
func (s *Scene) Destroy(id NodeID) error {
	n := s.arena.get(id)
	if n == nil {
		return fmt.Errorf("gameloop: destroy %v: %w", id, ErrNotFound)
	}
	if n.root {
		removeID(&s.arena.roots, id)
	} else if p := s.arena.get(n.parent); p != nil {
		removeID(&p.children, id)
	}
	s.arena.free1(id)
	return nil
}

func (a *arena) free1(id NodeID) {
	n := &a.nodes[id.index]
	for _, c := range n.children {
		a.free1(c)
	}
	n.alive = false
	n.root = false
	n.name = ""
	n.sprite = nil
	n.parent = NodeID{}
	n.children = nil
	a.free = append(a.free, id.index)
	a.live--
}

// --- Accessors ---

// Roots returns the scene's root list. The returned slice MUST NOT be mutated.
func (s *Scene) Roots() []NodeID {
	return s.arena.roots
}

// Children returns the child list of id. The returned slice MUST NOT be
// mutated by the caller.
func (s *Scene) Children(id NodeID) []NodeID {
	if n := s.arena.get(id); n != nil {
		return n.children
	}
	return nil
}

// Parent returns the parent of id, or the zero handle for roots, detached and
// unknown nodes.
func (s *Scene) Parent(id NodeID) NodeID {
	if n := s.arena.get(id); n != nil {
		return n.parent
	}
	return NodeID{}
}

// IsRoot reports whether id is a scene root.
func (s *Scene) IsRoot(id NodeID) bool {
	n := s.arena.get(id)
	return n != nil && n.root
}

// Sprite returns the sprite owned by id, or nil for containers and unknown
// nodes.
func (s *Scene) Sprite(id NodeID) *Sprite {
	if n := s.arena.get(id); n != nil {
		return n.sprite
	}
	return nil
}

// Name returns the name given to id at registration.
func (s *Scene) Name(id NodeID) string {
	if n := s.arena.get(id); n != nil {
		return n.name
	}
	return ""
}

// Contains reports whether id refers to a live node.
func (s *Scene) Contains(id NodeID) bool {
	return s.arena.get(id) != nil
}

// Len returns the number of live nodes, attached or not.
func (s *Scene) Len() int {
	return s.arena.live
}

// Walk visits every attached node depth-first, pre-order, starting from the
// roots. depth is 0 for roots.
func (s *Scene) Walk(fn func(id NodeID, depth int)) {
	for _, r := range s.arena.roots {
		s.walk(r, 0, fn)
	}
}

func (s *Scene) walk(id NodeID, depth int, fn func(NodeID, int)) {
	fn(id, depth)
	for _, c := range s.arena.nodes[id.index].children {
		s.walk(c, depth+1, fn)
	}
}
