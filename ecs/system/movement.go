package system

import (
	"math"

	"github.com/milk9111/virtualoffice/ecs"
	"github.com/milk9111/virtualoffice/ecs/component"
)

// MovementSystem walks players according to their input, clamped to the
// map bounds.
type MovementSystem struct {
	width  float64
	height float64
}

// NewMovementSystem bounds movement to a width x height pixel area. A zero
// size disables clamping.
func NewMovementSystem(width, height float64) *MovementSystem {
	return &MovementSystem{width: width, height: height}
}

func (m *MovementSystem) Update(w *ecs.World) {
	if m == nil || w == nil {
		return
	}
	ecs.ForEach3(w, component.PlayerComponent.Kind(), component.InputComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, p *component.Player, in *component.Input, t *component.Transform) {
		dx, dy := in.MoveX, in.MoveY
		if dx == 0 && dy == 0 {
			return
		}
		// diagonal walking is as fast as straight walking
		if l := math.Hypot(dx, dy); l > 1 {
			dx /= l
			dy /= l
		}
		t.X += dx * p.MoveSpeed
		t.Y += dy * p.MoveSpeed
		if m.width > 0 {
			t.X = clamp(t.X, 0, m.width)
		}
		if m.height > 0 {
			t.Y = clamp(t.Y, 0, m.height)
		}
	})
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
