package gameloop

import (
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"
)

// newTestScene returns a 1000x800 scene with logging discarded.
func newTestScene() *Scene {
	s := NewScene(Rect{Width: 1000, Height: 800})
	s.SetLogger(log.New(io.Discard))
	return s
}

func testWall(x, y float64) *Sprite {
	return NewWall(Vec2{x, y}, Vec2{10, 10}, ShapeRect, "", "")
}

// --- Handles ---

func TestNodeIDZero(t *testing.T) {
	var id NodeID
	if !id.IsZero() {
		t.Error("zero NodeID should report IsZero")
	}
	if id.String() != "node(nil)" {
		t.Errorf("String() = %q, want %q", id.String(), "node(nil)")
	}
	s := newTestScene()
	if s.Contains(id) {
		t.Error("scene should not contain the zero handle")
	}
}

func TestRegisterCreatesRoot(t *testing.T) {
	s := newTestScene()
	sp := testWall(1, 2)
	id := s.Register(sp, "w")

	if id.IsZero() {
		t.Fatal("Register returned zero handle")
	}
	if !s.IsRoot(id) {
		t.Error("registered node should be a root")
	}
	if s.Sprite(id) != sp {
		t.Error("Sprite() should return the registered sprite")
	}
	if s.Name(id) != "w" {
		t.Errorf("Name = %q, want %q", s.Name(id), "w")
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
}

func TestStaleHandleAfterReuse(t *testing.T) {
	s := newTestScene()
	a := s.Register(testWall(0, 0), "a")
	if err := s.Destroy(a); err != nil {
		t.Fatal(err)
	}
	b := s.Register(testWall(0, 0), "b")

	if a.index != b.index {
		t.Fatalf("expected slot reuse, got %v and %v", a, b)
	}
	if s.Contains(a) {
		t.Error("stale handle should not resolve after slot reuse")
	}
	if s.Sprite(a) != nil {
		t.Error("Sprite(stale) should be nil")
	}
	if err := s.Destroy(a); !errors.Is(err, ErrNotFound) {
		t.Errorf("Destroy(stale) = %v, want ErrNotFound", err)
	}
}

// --- Tree manipulation ---

func TestRegisterChild(t *testing.T) {
	s := newTestScene()
	root := s.Register(testWall(10, 10), "root")
	child, err := s.RegisterChild(root, testWall(5, 5), "child")
	if err != nil {
		t.Fatal(err)
	}
	if s.Parent(child) != root {
		t.Errorf("Parent = %v, want %v", s.Parent(child), root)
	}
	if kids := s.Children(root); len(kids) != 1 || kids[0] != child {
		t.Errorf("Children = %v, want [%v]", kids, child)
	}
	if s.IsRoot(child) {
		t.Error("child should not be a root")
	}
}

func TestRegisterChildUnknownParent(t *testing.T) {
	s := newTestScene()
	_, err := s.RegisterChild(NodeID{index: 7, gen: 1}, testWall(0, 0), "x")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len = %d, want 0", s.Len())
	}
}

func TestDetachThenAttach(t *testing.T) {
	s := newTestScene()
	p1 := s.Register(testWall(0, 0), "p1")
	p2 := s.Register(testWall(0, 0), "p2")
	c, _ := s.RegisterChild(p1, testWall(0, 0), "c")

	got, err := s.DetachChild(p1, c)
	if err != nil {
		t.Fatal(err)
	}
	if got != c {
		t.Errorf("DetachChild returned %v, want %v", got, c)
	}
	if len(s.Children(p1)) != 0 {
		t.Error("p1 should have no children after detach")
	}
	if !s.Parent(c).IsZero() {
		t.Error("detached node should have no parent")
	}

	if err := s.AttachChild(p2, c); err != nil {
		t.Fatal(err)
	}
	if s.Parent(c) != p2 {
		t.Errorf("Parent = %v, want %v", s.Parent(c), p2)
	}
	if kids := s.Children(p2); len(kids) != 1 || kids[0] != c {
		t.Errorf("p2 children = %v", kids)
	}
}

func TestDetachNonChild(t *testing.T) {
	s := newTestScene()
	p1 := s.Register(testWall(0, 0), "p1")
	p2 := s.Register(testWall(0, 0), "p2")
	c, _ := s.RegisterChild(p1, testWall(0, 0), "c")

	if _, err := s.DetachChild(p2, c); !errors.Is(err, ErrNotFound) {
		t.Errorf("detach from wrong parent = %v, want ErrNotFound", err)
	}
	if s.Parent(c) != p1 || len(s.Children(p1)) != 1 {
		t.Error("failed detach must not change the tree")
	}
}

func TestAttachAlreadyAttached(t *testing.T) {
	s := newTestScene()
	p1 := s.Register(testWall(0, 0), "p1")
	p2 := s.Register(testWall(0, 0), "p2")
	c, _ := s.RegisterChild(p1, testWall(0, 0), "c")

	if err := s.AttachChild(p2, c); !errors.Is(err, ErrAlreadyAttached) {
		t.Errorf("attach of attached child = %v, want ErrAlreadyAttached", err)
	}
	if err := s.AttachChild(p1, p2); !errors.Is(err, ErrAlreadyAttached) {
		t.Errorf("attach of root = %v, want ErrAlreadyAttached", err)
	}
	if len(s.Children(p2)) != 0 || s.Parent(c) != p1 {
		t.Error("failed attach must not change the tree")
	}
}

func TestAttachCycle(t *testing.T) {
	s := newTestScene()
	a := s.NewNode(testWall(0, 0), "a")
	b := s.NewNode(testWall(0, 0), "b")
	if err := s.AttachChild(a, b); err != nil {
		t.Fatal(err)
	}
	c := s.NewNode(testWall(0, 0), "c")
	if err := s.AttachChild(b, c); err != nil {
		t.Fatal(err)
	}

	// a is detached but has descendants; making it a child of c would loop.
	if err := s.AttachChild(c, a); !errors.Is(err, ErrCycle) {
		t.Errorf("attach ancestor under descendant = %v, want ErrCycle", err)
	}
	if err := s.AttachChild(a, a); !errors.Is(err, ErrCycle) {
		t.Errorf("attach to self = %v, want ErrCycle", err)
	}
}

func TestAddRemoveRoot(t *testing.T) {
	s := newTestScene()
	n := s.NewNode(testWall(0, 0), "n")
	if len(s.Roots()) != 0 {
		t.Fatal("NewNode should not create a root")
	}
	if err := s.AddRoot(n); err != nil {
		t.Fatal(err)
	}
	if err := s.AddRoot(n); !errors.Is(err, ErrAlreadyAttached) {
		t.Errorf("AddRoot twice = %v, want ErrAlreadyAttached", err)
	}
	if err := s.RemoveRoot(n); err != nil {
		t.Fatal(err)
	}
	if s.IsRoot(n) || !s.Contains(n) {
		t.Error("RemoveRoot should keep the node alive but detached")
	}
	if err := s.RemoveRoot(n); !errors.Is(err, ErrNotFound) {
		t.Errorf("RemoveRoot of non-root = %v, want ErrNotFound", err)
	}
}

func TestDestroySubtree(t *testing.T) {
	s := newTestScene()
	root := s.Register(testWall(0, 0), "root")
	mid, _ := s.RegisterChild(root, testWall(0, 0), "mid")
	leaf, _ := s.RegisterChild(mid, testWall(0, 0), "leaf")
	keep, _ := s.RegisterChild(root, testWall(0, 0), "keep")

	if err := s.Destroy(mid); err != nil {
		t.Fatal(err)
	}
	if s.Contains(mid) || s.Contains(leaf) {
		t.Error("Destroy should free the whole subtree")
	}
	if kids := s.Children(root); len(kids) != 1 || kids[0] != keep {
		t.Errorf("root children = %v, want [%v]", kids, keep)
	}
	if s.Len() != 2 {
		t.Errorf("Len = %d, want 2", s.Len())
	}
}

func TestRemoveIDClearsTail(t *testing.T) {
	a, b, c := NodeID{0, 1}, NodeID{1, 1}, NodeID{2, 1}
	list := []NodeID{a, b, c}
	backing := list
	if !removeID(&list, a) {
		t.Fatal("removeID should find a")
	}
	if len(list) != 2 || list[0] != b || list[1] != c {
		t.Errorf("list = %v, want [%v %v]", list, b, c)
	}
	if !backing[2].IsZero() {
		t.Error("vacated tail slot should be zeroed")
	}
	if removeID(&list, a) {
		t.Error("removeID of missing id should report false")
	}
}

func TestWalkPreOrder(t *testing.T) {
	s := newTestScene()
	r1 := s.Register(nil, "r1")
	a, _ := s.RegisterChild(r1, testWall(0, 0), "a")
	s.RegisterChild(a, testWall(0, 0), "a1")
	s.RegisterChild(r1, testWall(0, 0), "b")
	s.Register(testWall(0, 0), "r2")
	s.NewNode(testWall(0, 0), "detached")

	var names []string
	var depths []int
	s.Walk(func(id NodeID, depth int) {
		names = append(names, s.Name(id))
		depths = append(depths, depth)
	})
	wantNames := []string{"r1", "a", "a1", "b", "r2"}
	wantDepths := []int{0, 1, 2, 1, 0}
	if len(names) != len(wantNames) {
		t.Fatalf("walked %v, want %v", names, wantNames)
	}
	for i := range names {
		if names[i] != wantNames[i] || depths[i] != wantDepths[i] {
			t.Errorf("visit %d = (%s, %d), want (%s, %d)", i, names[i], depths[i], wantNames[i], wantDepths[i])
		}
	}
}
