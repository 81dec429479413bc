package system

import (
	"github.com/milk9111/virtualoffice/ecs"
	"github.com/milk9111/virtualoffice/ecs/component"
)

// TTLSystem counts TTL components down and destroys their entities at zero.
type TTLSystem struct{}

func NewTTLSystem() *TTLSystem {
	return &TTLSystem{}
}

func (s *TTLSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.TTLComponent.Kind(), func(e ecs.Entity, ttl *component.TTL) {
		ttl.Frames--
		if ttl.Frames <= 0 {
			ecs.DestroyEntity(w, e)
		}
	})
}
