package ecs

import "fmt"

type entityID uint32

type generation uint32

// Entity is a handle to a world slot: the low half is the slot id, the high
// half the slot's generation when the handle was issued. Handles of a
// destroyed entity stop resolving once the slot is recycled. Slot ids start
// at 1, so the zero Entity means "none".
type Entity uint64

func makeEntity(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<32 | uint64(id))
}

func (e Entity) id() entityID { return entityID(e & 0xffffffff) }

func (e Entity) generation() generation { return generation(e >> 32) }

func (e Entity) Valid() bool { return e.id() != 0 }

// String formats the handle as id.generation, e.g. "7.2".
func (e Entity) String() string {
	return fmt.Sprintf("%d.%d", e.id(), e.generation())
}
