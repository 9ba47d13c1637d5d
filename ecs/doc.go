// Package ecs bridges showcase interaction events into a [Donburi] world.
//
// [NewDonburiStore] publishes every pick, blocked click, miss, camera arrival,
// and reveal as a typed event on [InteractionEventType]. Calling
// [DonburiStore.RegisterTargets] also gives each pickable target an entity
// carrying a [TargetData] component that counts its picks and reveals.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	store.RegisterTargets(ctrl.Index(), cfg.Bindings())
//	ctrl.SetEntityStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
