package ecs

import (
	"errors"
	"testing"

	"github.com/milk9111/virtualoffice/ecs/component"
)

func TestWorldEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, CreateEntity(w))
			}
			if len(Entities(w)) != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, len(Entities(w)))
			}
			if c.destroyIndex >= 0 {
				if !DestroyEntity(w, ents[c.destroyIndex]) {
					t.Fatalf("DestroyEntity should return true for alive entity")
				}
				if IsAlive(w, ents[c.destroyIndex]) {
					t.Fatalf("entity should not be alive after destruction")
				}
				if DestroyEntity(w, ents[c.destroyIndex]) {
					t.Fatalf("second destroy should report false")
				}
				if len(Entities(w)) != c.create-1 {
					t.Fatalf("expected %d entities after destroy, got %d", c.create-1, len(Entities(w)))
				}
			}
		})
	}
}

func TestRecycledEntityDoesNotSeeStaleComponents(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()

	old := CreateEntity(w)
	if err := Add(w, old, h.Kind(), intPtr(7)); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	DestroyEntity(w, old)

	fresh := CreateEntity(w)
	if fresh.id() != old.id() {
		t.Fatalf("expected slot %d to be reused, got %d", old.id(), fresh.id())
	}
	if fresh == old {
		t.Fatalf("recycled entity must carry a new generation")
	}
	if Has(w, fresh, h.Kind()) {
		t.Fatalf("recycled entity inherited a component")
	}
	if _, ok := Get(w, old, h.Kind()); ok {
		t.Fatalf("stale handle should not resolve")
	}
}

func TestAddErrors(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()
	alive := CreateEntity(w)
	dead := CreateEntity(w)
	DestroyEntity(w, dead)

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"invalid_kind", Add(w, alive, component.ComponentKind[int]{}, intPtr(1)), component.ErrInvalidComponentKind},
		{"nil_value", Add[int](w, alive, h.Kind(), nil), component.ErrNilComponent},
		{"dead_entity", Add(w, dead, h.Kind(), intPtr(1)), component.ErrEntityNotAlive},
		{"ok", Add(w, alive, h.Kind(), intPtr(1)), nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if !errors.Is(tc.err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, tc.err)
			}
		})
	}
}

func TestComponentsAndQueries(t *testing.T) {
	w := NewWorld()

	h1 := component.NewComponent[int]()
	h2 := component.NewComponent[string]()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)

	tests := []struct {
		name     string
		setup    func() error
		check    func(t *testing.T)
		teardown func() bool
	}{
		{
			name:  "add_int_to_e1",
			setup: func() error { return Add(w, e1, h1.Kind(), intPtr(10)) },
			check: func(t *testing.T) {
				v, ok := Get(w, e1, h1.Kind())
				if !ok || *v != 10 {
					t.Fatalf("expected 10, got %v ok=%v", v, ok)
				}
			},
			teardown: func() bool { return Remove(w, e1, h1.Kind()) },
		},
		{
			name: "add_str_to_e1_and_e2",
			setup: func() error {
				if err := Add(w, e1, h2.Kind(), stringPtr("a")); err != nil {
					return err
				}
				return Add(w, e2, h2.Kind(), stringPtr("b"))
			},
			check: func(t *testing.T) {
				if !Has(w, e1, h2.Kind()) || !Has(w, e2, h2.Kind()) {
					t.Fatalf("expected both entities to have string component")
				}
				first, ok := First(w, h2.Kind())
				if !ok || first != e1 {
					t.Fatalf("expected First to return e1, got %v", first)
				}
			},
			teardown: func() bool { return Remove(w, e1, h2.Kind()) },
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.setup(); err != nil {
				t.Fatalf("setup failed: %v", err)
			}
			tc.check(t)
			if !tc.teardown() {
				t.Fatalf("teardown failed for %s", tc.name)
			}
		})
	}
}

func TestForEach(t *testing.T) {
	t.Run("basic", func(t *testing.T) {
		w := NewWorld()
		h := component.NewComponent[int]()

		e1 := CreateEntity(w)
		e2 := CreateEntity(w)
		e3 := CreateEntity(w)

		if err := Add(w, e1, h.Kind(), intPtr(1)); err != nil {
			t.Fatalf("add failed: %v", err)
		}
		if err := Add(w, e3, h.Kind(), intPtr(3)); err != nil {
			t.Fatalf("add failed: %v", err)
		}

		var ents []Entity
		ForEach(w, h.Kind(), func(e Entity, _ *int) { ents = append(ents, e) })
		set := toSet(ents)

		if _, ok := set[e1]; !ok {
			t.Fatalf("expected e1 in ForEach result")
		}
		if _, ok := set[e3]; !ok {
			t.Fatalf("expected e3 in ForEach result")
		}
		if _, ok := set[e2]; ok {
			t.Fatalf("did not expect e2 in ForEach result")
		}
	})

	t.Run("destroy_during_iteration", func(t *testing.T) {
		w := NewWorld()
		h := component.NewComponent[int]()
		for i := 0; i < 4; i++ {
			e := CreateEntity(w)
			if err := Add(w, e, h.Kind(), intPtr(i)); err != nil {
				t.Fatal(err)
			}
		}

		visited := 0
		ForEach(w, h.Kind(), func(e Entity, _ *int) {
			visited++
			DestroyEntity(w, e)
		})
		if visited != 4 {
			t.Fatalf("expected 4 visits, got %d", visited)
		}
		if len(Entities(w)) != 0 {
			t.Fatalf("expected every entity destroyed, got %d", len(Entities(w)))
		}
	})
}

func TestForEach3(t *testing.T) {
	tests := []struct {
		name string
		run  func(t *testing.T)
	}{
		{
			name: "intersection",
			run: func(t *testing.T) {
				w := NewWorld()
				e1 := CreateEntity(w)
				e2 := CreateEntity(w)
				e3 := CreateEntity(w)

				ka := component.NewComponentKind[int]()
				kb := component.NewComponentKind[int]()
				kc := component.NewComponentKind[int]()

				mustAdd(t, w, e1, ka, 1)
				mustAdd(t, w, e2, ka, 2)
				mustAdd(t, w, e2, kb, 3)
				mustAdd(t, w, e2, kc, 5)
				mustAdd(t, w, e3, kb, 4)

				var res []Entity
				ForEach3(w, ka, kb, kc, func(e Entity, _ *int, _ *int, _ *int) { res = append(res, e) })
				if len(res) != 1 || res[0] != e2 {
					t.Fatalf("expected only e2, got %v", res)
				}
			},
		},
		{
			name: "ignores_dead_entities",
			run: func(t *testing.T) {
				w := NewWorld()
				e := CreateEntity(w)

				ka := component.NewComponentKind[int]()
				kb := component.NewComponentKind[int]()
				kc := component.NewComponentKind[int]()

				mustAdd(t, w, e, ka, 1)
				mustAdd(t, w, e, kb, 2)
				mustAdd(t, w, e, kc, 3)

				if !DestroyEntity(w, e) {
					t.Fatal("failed to destroy entity")
				}

				var res []Entity
				ForEach3(w, ka, kb, kc, func(e Entity, _ *int, _ *int, _ *int) { res = append(res, e) })
				if len(res) != 0 {
					t.Fatalf("expected empty result after destroy, got %v", res)
				}
			},
		},
		{
			name: "missing_store",
			run: func(t *testing.T) {
				w := NewWorld()
				e := CreateEntity(w)

				ka := component.NewComponentKind[int]()
				kb := component.NewComponentKind[int]()
				kc := component.NewComponentKind[int]()

				mustAdd(t, w, e, ka, 1)

				var res []Entity
				ForEach3(w, ka, kb, kc, func(e Entity, _ *int, _ *int, _ *int) { res = append(res, e) })
				if len(res) != 0 {
					t.Fatalf("expected empty when other store missing, got %v", res)
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, tc.run)
	}
}

func TestEventsAndScheduler(t *testing.T) {
	w := NewWorld()

	var seen []int
	s := NewScheduler(
		SystemFunc(func(w *World) {
			seen = append(seen, w.Events().Len())
			w.Events().Push(Event{Type: "a", Data: 1})
			w.Events().Push(Event{Type: "b", Data: 2})
		}),
		nil,
	)
	s.Add(SystemFunc(func(w *World) {
		if got := w.Events().Peek("a"); len(got) != 1 || got[0].Data != 1 {
			t.Fatalf("expected one event of type a, got %v", got)
		}
		seen = append(seen, w.Events().Len())
	}))
	s.Add(nil)

	if s.Len() != 2 {
		t.Fatalf("expected 2 systems, got %d", s.Len())
	}

	s.Run(w)
	s.Run(w)
	if s.Ticks() != 2 {
		t.Fatalf("expected 2 ticks, got %d", s.Ticks())
	}

	// the queue is flushed between ticks
	want := []int{0, 2, 0, 2}
	if len(seen) != len(want) {
		t.Fatalf("expected %v, got %v", want, seen)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, seen)
		}
	}

	w.Events().Push(Event{Type: "c"})
	if drained := w.Events().Drain(); len(drained) != 1 || w.Events().Len() != 0 {
		t.Fatalf("drain should empty the queue, got %v", drained)
	}
}

func TestEntityString(t *testing.T) {
	if got := makeEntity(7, 2).String(); got != "7.2" {
		t.Fatalf("expected 7.2, got %q", got)
	}
	if Entity(0).Valid() {
		t.Fatalf("zero entity must be invalid")
	}
}

func TestComponentKindName(t *testing.T) {
	if got := component.TransformComponent.Kind().Name(); got != "component.Transform" {
		t.Fatalf("unexpected kind name %q", got)
	}
}

func mustAdd(t *testing.T, w *World, e Entity, kind component.ComponentKind[int], v int) {
	t.Helper()
	if err := Add(w, e, kind, intPtr(v)); err != nil {
		t.Fatal(err)
	}
}

func toSet(ents []Entity) map[Entity]struct{} {
	m := make(map[Entity]struct{}, len(ents))
	for _, e := range ents {
		m[e] = struct{}{}
	}
	return m
}

func intPtr(i int) *int {
	return &i
}

func stringPtr(s string) *string {
	return &s
}
