package ecs

import (
	"github.com/phanxgames/showcase"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InteractionEventType is the Donburi event type for showcase interaction
// events. Subscribe to this in your ECS systems to receive picks and reveals.
var InteractionEventType = events.NewEventType[showcase.InteractionEvent]()

// TargetData is the component attached to every registered target entity.
type TargetData struct {
	Name   string
	Action showcase.ContentAction
	// Picks counts accepted clicks on the target.
	Picks int
	// Reveals counts completed content reveals.
	Reveals int
}

// TargetComponent holds TargetData.
var TargetComponent = donburi.NewComponentType[TargetData]()

// DonburiStore is a showcase.EntityStore backed by a Donburi world.
type DonburiStore struct {
	world    donburi.World
	entities map[uint32]donburi.Entity
	nextID   uint32
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Interaction events are published to InteractionEventType and can be
// consumed with events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) *DonburiStore {
	return &DonburiStore{world: world, entities: make(map[uint32]donburi.Entity)}
}

// RegisterTargets creates one entity per pickable target in idx and stamps
// the node's EntityID so later events can be matched back to it. Targets
// already registered by this store are skipped.
func (s *DonburiStore) RegisterTargets(idx *showcase.Index, bindings showcase.Bindings) {
	for _, n := range idx.Targets() {
		if _, ok := s.entities[n.EntityID]; ok && n.EntityID != 0 {
			continue
		}
		e := s.world.Create(TargetComponent)
		TargetComponent.SetValue(s.world.Entry(e), TargetData{
			Name:   n.Name,
			Action: bindings[n.Name],
		})
		s.nextID++
		n.EntityID = s.nextID
		s.entities[n.EntityID] = e
	}
}

// Entity returns the entity registered under a node EntityID.
func (s *DonburiStore) Entity(id uint32) (donburi.Entity, bool) {
	e, ok := s.entities[id]
	if !ok || !s.world.Valid(e) {
		return donburi.Null, false
	}
	return e, true
}

// Target returns the TargetData of a registered entity.
func (s *DonburiStore) Target(id uint32) (*TargetData, bool) {
	e, ok := s.Entity(id)
	if !ok {
		return nil, false
	}
	return TargetComponent.Get(s.world.Entry(e)), true
}

// EmitEvent updates the target's counters and publishes the event.
func (s *DonburiStore) EmitEvent(event showcase.InteractionEvent) {
	if td, ok := s.Target(event.EntityID); ok {
		switch event.Type {
		case showcase.EventPick:
			td.Picks++
		case showcase.EventReveal:
			td.Reveals++
		}
	}
	InteractionEventType.Publish(s.world, event)
}
