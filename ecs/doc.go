// Package ecs provides ECS adapters for arbor.
//
// [NewDonburiListener] returns an [arbor.Listener] that publishes every
// component resolution as a typed [ComponentLoadedEvent] into a [Donburi]
// world. Subscribe to it in your ECS systems to react to loads:
//
//	reader := arbor.NewReader(arbor.WithListener(ecs.NewDonburiListener(world)))
//	root, _ := reader.LoadFile("scene.json")
//	ecs.ComponentLoadedEvent.ProcessEvents(world)
//
// [Spawn] mirrors a loaded tree into the world, one entity per node, so
// systems can query nodes through [NodeRef].
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
