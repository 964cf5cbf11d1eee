// Package ecs bridges gameloop collision events into a [Donburi] world.
//
// [NewDonburiStore] returns a gameloop.EventStore that publishes every
// reaction to [CollisionEventType]. [ContactCounter] goes one step further
// and keeps per-entity [Contacts] tallies for nodes bound with Bind.
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
