// Package scene hosts the items of one loaded map.
package scene

import (
	"fmt"
	"sort"

	"github.com/milk9111/virtualoffice/ecs"
	"github.com/milk9111/virtualoffice/ecs/anim"
	"github.com/milk9111/virtualoffice/ecs/component"
	"github.com/milk9111/virtualoffice/item"
	"github.com/milk9111/virtualoffice/logs"
	"github.com/milk9111/virtualoffice/maps"
	"github.com/milk9111/virtualoffice/prefabs"
	"github.com/milk9111/virtualoffice/script"
)

const (
	// SpawnClass marks the Tiled point where the player starts.
	SpawnClass = "spawn"
	// ScriptProperty names the tengo hook run on an item's signals.
	ScriptProperty = "script"

	BubbleOffsetY = -24
	BubbleFrames  = 180
)

// Scene owns the world, the animation library and every item built from the
// current map.
type Scene struct {
	world    *ecs.World
	anims    *anim.Library
	registry *item.Registry

	items  map[int]*item.ActionableItem
	states map[int]any
	hooks  map[string]*script.Hook

	spawnX, spawnY float64
	hasSpawn       bool
}

func New(registry *item.Registry, anims *anim.Library) *Scene {
	if anims == nil {
		anims = anim.NewLibrary()
	}
	return &Scene{
		world:    ecs.NewWorld(),
		anims:    anims,
		registry: registry,
		items:    make(map[int]*item.ActionableItem),
		states:   make(map[int]any),
		hooks:    make(map[string]*script.Hook),
	}
}

func (s *Scene) World() *ecs.World { return s.world }

func (s *Scene) Animations() *anim.Library { return s.anims }

// Load replaces the scene's items with the objects of m. states restores
// item state by object id. Objects of unknown kinds are skipped. Loading is
// all or nothing: when any restored state is invalid or a factory fails, the
// error is returned and the previously loaded items stay in place.
func (s *Scene) Load(m *maps.Map, states map[int]any) error {
	if m == nil {
		return fmt.Errorf("scene: load: nil map")
	}

	var objects []maps.Object
	spawnX, spawnY, hasSpawn := 0.0, 0.0, false
	for _, obj := range m.Objects() {
		kind := obj.Kind()
		if kind == SpawnClass {
			spawnX, spawnY, hasSpawn = obj.X, obj.Y, true
			continue
		}
		if _, ok := s.registry.Lookup(kind); !ok {
			if kind != "" {
				logs.Warnf("scene: object %d: no factory for %q, skipping", obj.ID, kind)
			}
			continue
		}
		if err := s.registry.CheckState(obj, states[obj.ID]); err != nil {
			return fmt.Errorf("scene: object %d: %w", obj.ID, err)
		}
		objects = append(objects, obj)
	}

	built := make(map[int]*item.ActionableItem, len(objects))
	hooks := make(map[string]*script.Hook)
	for _, obj := range objects {
		it, err := s.registry.Create(s, obj, states[obj.ID])
		if err != nil {
			for _, b := range built {
				b.Destroy()
			}
			return fmt.Errorf("scene: object %d: %w", obj.ID, err)
		}
		if prev, ok := built[obj.ID]; ok {
			logs.Warnf("scene: duplicate object id %d, replacing", obj.ID)
			prev.Destroy()
		}
		built[obj.ID] = it
		if name, ok := obj.StringProperty(ScriptProperty); ok && name != "" {
			s.attachHook(hooks, it, name)
		}
	}

	s.Clear()
	s.items, s.hooks = built, hooks
	s.spawnX, s.spawnY, s.hasSpawn = spawnX, spawnY, hasSpawn
	for id, it := range built {
		s.track(id, it)
		if st, ok := states[id]; ok && st != nil {
			s.states[id] = st
		}
	}

	logs.Infof("scene: loaded %d items", len(s.items))
	return nil
}

func (s *Scene) track(id int, it *item.ActionableItem) {
	it.OnAny(func(_ item.Signal, state any) {
		s.states[id] = state
	})
}

func (s *Scene) attachHook(hooks map[string]*script.Hook, it *item.ActionableItem, name string) {
	hook, ok := hooks[name]
	if !ok {
		src, err := prefabs.LoadScript(name)
		if err != nil {
			logs.Warnf("scene: item %d: script %s: %v", it.ID(), name, err)
			return
		}
		hook, err = script.Compile(name, src)
		if err != nil {
			logs.Warnf("scene: item %d: %v", it.ID(), err)
			return
		}
		hooks[name] = hook
	}

	it.OnAny(func(signal item.Signal, state any) {
		msg, err := hook.Run(it.ID(), string(signal), state)
		if err != nil {
			logs.Warnf("scene: item %d: %v", it.ID(), err)
			return
		}
		if msg == "" {
			return
		}
		x, y := it.Position()
		s.Say(x, y, msg)
	})
}

// Say shows a speech bubble at (x, y) for a few seconds.
func (s *Scene) Say(x, y float64, text string) ecs.Entity {
	e := ecs.CreateEntity(s.world)
	_ = ecs.Add(s.world, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1})
	_ = ecs.Add(s.world, e, component.BubbleComponent.Kind(), &component.Bubble{Text: text, OffsetY: BubbleOffsetY})
	_ = ecs.Add(s.world, e, component.TTLComponent.Kind(), &component.TTL{Frames: BubbleFrames})
	return e
}

// Item returns the item built from object id.
func (s *Scene) Item(id int) (*item.ActionableItem, bool) {
	it, ok := s.items[id]
	return it, ok
}

// Items returns the scene's items ordered by object id.
func (s *Scene) Items() []*item.ActionableItem {
	out := make([]*item.ActionableItem, 0, len(s.items))
	for _, it := range s.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// Spawn returns the player start point of the loaded map.
func (s *Scene) Spawn() (float64, float64, bool) {
	return s.spawnX, s.spawnY, s.hasSpawn
}

// States returns the last state each item announced, by object id. Feeding
// it back into Load restores the items after a reload.
func (s *Scene) States() map[int]any {
	out := make(map[int]any, len(s.states))
	for id, st := range s.states {
		out[id] = st
	}
	return out
}

// Clear destroys every item and speech bubble. Other entities, like the
// player, stay in the world. Compiled hooks are dropped so edited scripts
// are recompiled on the next Load; recorded states are kept.
func (s *Scene) Clear() {
	for id, it := range s.items {
		it.Destroy()
		delete(s.items, id)
	}
	ecs.ForEach(s.world, component.BubbleComponent.Kind(), func(e ecs.Entity, _ *component.Bubble) {
		ecs.DestroyEntity(s.world, e)
	})
	s.hooks = make(map[string]*script.Hook)
	s.hasSpawn = false
}
