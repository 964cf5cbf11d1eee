// Package gameloop is a small real-time 2D scene runtime for [Ebitengine]:
// a transform tree of sprites, a quadtree broad phase rebuilt every tick,
// narrow-phase collision with velocity redirection, boundary containment,
// and binary save/load of the whole scene.
//
// # Quick start
//
// [Run] creates a window and game loop for you:
//
//	scene := gameloop.NewScene(gameloop.Rect{Width: 1000, Height: 800})
//	scene.Register(gameloop.NewPlayer(gameloop.Vec2{X: 500, Y: 400},
//		gameloop.Vec2{X: 180, Y: 180}, "player.png", "bounce.wav"), "player")
//	gameloop.Run(scene, gameloop.RunConfig{Title: "demo", ShowHUD: true})
//
// For full control, implement [ebiten.Game] yourself and call
// [Scene.Update] and [Scene.Draw] directly, or wrap the scene with [NewGame].
//
// # Scene graph
//
// Nodes live in an arena owned by the [Scene] and are referred to by
// [NodeID] handles. A handle to a destroyed node is rejected, even after its
// slot is reused. Each node owns at most one [Sprite]; a node without a
// sprite is a container that only groups its children.
//
//	ship := scene.Register(gameloop.NewPlayer(pos, size, "ship.png", ""), "ship")
//	turret, _ := scene.RegisterChild(ship, gameloop.NewWall(gameloop.Vec2{X: 0, Y: -40},
//		gameloop.Vec2{X: 20, Y: 20}, gameloop.ShapeRect, "", ""), "turret")
//
// Sprite positions are local to the parent. [Scene.GlobalPosition] composes
// them up the tree.
//
// # Update order
//
// Every [Scene.Update] runs the same steps to completion:
//
//  1. rebuild the quadtree from every attached sprite
//  2. resolve collisions between collidable sprites, once per pair
//  3. advance sprites pre-order (input, patrol, scroll, integration) and
//     bounce collidable sprites off the world edges
//  4. advance tweens
//
// Collisions and boundary hits play the sprite's sound through the
// [SoundPlayer], punch its draw scale with a [gween] tween and, when set,
// forward a [CollisionEvent] to the [EventStore]. The gameloop/ecs package
// provides a [Donburi] store.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package gameloop
