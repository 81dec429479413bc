package system

import (
	"github.com/jakecoffman/cp"
	"github.com/zyedidia/generic/mapset"

	"github.com/milk9111/virtualoffice/ecs"
	"github.com/milk9111/virtualoffice/ecs/component"
)

// reachSlack lets a player standing exactly on an actionable's radius
// select it; the radius is inclusive.
const reachSlack = 1e-6

// InteractionSystem selects the actionable closest to the player and
// activates it when the player interacts. Activation areas are circles in a
// chipmunk space whose radius is inclusive, rebuilt only when actionables
// appear, vanish or move.
type InteractionSystem struct {
	space    *cp.Space
	indexed  mapset.Set[ecs.Entity]
	placed   map[ecs.Entity]cp.Vector
	selected ecs.Entity
}

func NewInteractionSystem() *InteractionSystem {
	return &InteractionSystem{
		indexed: mapset.New[ecs.Entity](),
		placed:  make(map[ecs.Entity]cp.Vector),
	}
}

// Selected returns the currently selected actionable entity.
func (s *InteractionSystem) Selected() (ecs.Entity, bool) {
	if s == nil || !s.selected.Valid() {
		return 0, false
	}
	return s.selected, true
}

func (s *InteractionSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	s.syncIndex(w)

	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		s.selectEntity(w, 0)
		return
	}
	pt, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		s.selectEntity(w, 0)
		return
	}

	target := s.nearest(cp.Vector{X: pt.X, Y: pt.Y})
	s.selectEntity(w, target)

	in, ok := ecs.Get(w, player, component.InputComponent.Kind())
	if !ok || !in.InteractPressed {
		return
	}
	in.InteractPressed = false
	if !target.Valid() {
		return
	}
	if a, ok := ecs.Get(w, target, component.ActionableComponent.Kind()); ok && a.Activate != nil {
		a.Activate()
	}
}

func (s *InteractionSystem) nearest(p cp.Vector) ecs.Entity {
	if s.space == nil {
		return 0
	}
	info := s.space.PointQueryNearest(p, reachSlack, cp.SHAPE_FILTER_ALL)
	if info == nil || info.Shape == nil {
		return 0
	}
	e, ok := info.Shape.UserData.(ecs.Entity)
	if !ok {
		return 0
	}
	return e
}

func (s *InteractionSystem) selectEntity(w *ecs.World, e ecs.Entity) {
	if s.selected == e {
		return
	}
	if prev, ok := ecs.Get(w, s.selected, component.ActionableComponent.Kind()); ok {
		prev.Selected = false
	}
	s.selected = 0
	if next, ok := ecs.Get(w, e, component.ActionableComponent.Kind()); ok {
		next.Selected = true
		s.selected = e
	}
}

func (s *InteractionSystem) syncIndex(w *ecs.World) {
	current := mapset.New[ecs.Entity]()
	dirty := false
	ecs.ForEach2(w, component.ActionableComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, a *component.Actionable, t *component.Transform) {
		if a.Radius <= 0 {
			return
		}
		current.Put(e)
		if pos, ok := s.placed[e]; !ok || pos.X != t.X || pos.Y != t.Y {
			dirty = true
		}
	})
	if !dirty && current.Size() == s.indexed.Size() {
		return
	}

	s.space = cp.NewSpace()
	s.indexed = current
	s.placed = make(map[ecs.Entity]cp.Vector, current.Size())
	current.Each(func(e ecs.Entity) {
		a, _ := ecs.Get(w, e, component.ActionableComponent.Kind())
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		pos := cp.Vector{X: t.X, Y: t.Y}
		shape := cp.NewCircle(s.space.StaticBody, a.Radius, pos)
		shape.UserData = e
		s.space.AddShape(shape)
		s.placed[e] = pos
	})
	if !current.Has(s.selected) {
		s.selected = 0
	}
}
