package ecs

import (
	"github.com/phanxgames/gameloop"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// CollisionEventType is the Donburi event type for gameloop reactions.
// Events are queued; call ProcessEvents once per frame to deliver them.
var CollisionEventType = events.NewEventType[gameloop.CollisionEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EventStore that publishes every collision and
// boundary reaction to CollisionEventType.
func NewDonburiStore(world donburi.World) gameloop.EventStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event gameloop.CollisionEvent) {
	CollisionEventType.Publish(s.world, event)
}

// Node links an entity to a scene node.
type Node struct {
	ID gameloop.NodeID
}

// Contacts tallies the reactions delivered to an entity.
type Contacts struct {
	Collisions int
	Boundary   int
	Last       gameloop.CollisionEvent
}

var (
	NodeComponent     = donburi.NewComponentType[Node]()
	ContactsComponent = donburi.NewComponentType[Contacts]()
)

// ContactCounter keeps Contacts up to date for bound nodes.
type ContactCounter struct {
	world    donburi.World
	entities map[gameloop.NodeID]donburi.Entity
}

// NewContactCounter subscribes to CollisionEventType in world.
func NewContactCounter(world donburi.World) *ContactCounter {
	c := &ContactCounter{world: world, entities: make(map[gameloop.NodeID]donburi.Entity)}
	CollisionEventType.Subscribe(world, c.handle)
	return c
}

// Bind creates an entity carrying Node and Contacts for id. Binding the same
// node twice returns the existing entity.
func (c *ContactCounter) Bind(id gameloop.NodeID) donburi.Entity {
	if e, ok := c.entities[id]; ok && c.world.Valid(e) {
		return e
	}
	e := c.world.Create(NodeComponent, ContactsComponent)
	NodeComponent.SetValue(c.world.Entry(e), Node{ID: id})
	c.entities[id] = e
	return e
}

// Contacts returns the tally for id, or the zero value when id is unbound.
func (c *ContactCounter) Contacts(id gameloop.NodeID) Contacts {
	e, ok := c.entities[id]
	if !ok || !c.world.Valid(e) {
		return Contacts{}
	}
	return *ContactsComponent.Get(c.world.Entry(e))
}

func (c *ContactCounter) handle(w donburi.World, ev gameloop.CollisionEvent) {
	e, ok := c.entities[ev.Node]
	if !ok || !w.Valid(e) {
		return
	}
	ct := ContactsComponent.Get(w.Entry(e))
	if ev.Cause == gameloop.CauseBoundary {
		ct.Boundary++
	} else {
		ct.Collisions++
	}
	ct.Last = ev
}
