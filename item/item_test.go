package item

import (
	"errors"
	"testing"

	"github.com/milk9111/virtualoffice/ecs"
	"github.com/milk9111/virtualoffice/ecs/anim"
	"github.com/milk9111/virtualoffice/ecs/component"
	"github.com/milk9111/virtualoffice/maps"
)

type testScene struct {
	world *ecs.World
	anims *anim.Library
}

func newTestScene() *testScene {
	return &testScene{world: ecs.NewWorld(), anims: anim.NewLibrary()}
}

func (s *testScene) World() *ecs.World         { return s.world }
func (s *testScene) Animations() *anim.Library { return s.anims }

type recordingLoader struct {
	atlases []string
}

func (l *recordingLoader) Atlas(key, imagePath, atlasPath string) {
	l.atlases = append(l.atlases, key)
}

type stubFactory struct {
	kind    string
	created []int
	animErr error
}

func (f *stubFactory) Preload(loader AssetLoader) {
	loader.Atlas(f.kind, f.kind+".png", f.kind+".json")
}

func (f *stubFactory) RegisterAnimations(lib *anim.Library) error {
	return f.animErr
}

func (f *stubFactory) Create(sc Scene, obj maps.Object, initState any) (*ActionableItem, error) {
	f.created = append(f.created, obj.ID)
	return New(sc, obj.ID, ecs.CreateEntity(sc.World()), 16, "", nil)
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	desk := &stubFactory{kind: "desk"}
	lamp := &stubFactory{kind: "lamp"}

	if err := r.Register("desk", desk); err != nil {
		t.Fatal(err)
	}
	if err := r.Register("lamp", lamp); err != nil {
		t.Fatal(err)
	}
	if err := r.Register("desk", lamp); err == nil {
		t.Fatalf("expected duplicate registration to fail")
	}
	if err := r.Register("", lamp); err == nil {
		t.Fatalf("expected empty kind to fail")
	}

	kinds := r.Kinds()
	if len(kinds) != 2 || kinds[0] != "desk" || kinds[1] != "lamp" {
		t.Fatalf("expected registration order, got %v", kinds)
	}

	loader := &recordingLoader{}
	r.PreloadAll(loader)
	if len(loader.atlases) != 2 {
		t.Fatalf("expected 2 preloads, got %v", loader.atlases)
	}

	sc := newTestScene()
	t.Run("create_by_class", func(t *testing.T) {
		it, err := r.Create(sc, maps.Object{ID: 3, Class: "lamp"}, nil)
		if err != nil {
			t.Fatal(err)
		}
		if it.ID() != 3 || len(lamp.created) != 1 {
			t.Fatalf("expected lamp factory to build object 3")
		}
	})
	t.Run("create_by_legacy_type", func(t *testing.T) {
		if _, err := r.Create(sc, maps.Object{ID: 4, Type: "desk"}, nil); err != nil {
			t.Fatal(err)
		}
		if len(desk.created) != 1 {
			t.Fatalf("expected desk factory to build object 4")
		}
	})
	t.Run("unknown_kind", func(t *testing.T) {
		_, err := r.Create(sc, maps.Object{ID: 5, Class: "plant"}, nil)
		if !errors.Is(err, ErrUnknownKind) {
			t.Fatalf("expected ErrUnknownKind, got %v", err)
		}
	})
	t.Run("animation_error", func(t *testing.T) {
		boom := errors.New("boom")
		lamp.animErr = boom
		defer func() { lamp.animErr = nil }()
		if err := r.RegisterAllAnimations(anim.NewLibrary()); !errors.Is(err, boom) {
			t.Fatalf("expected wrapped factory error, got %v", err)
		}
	})
}

func TestActionableItemSignals(t *testing.T) {
	sc := newTestScene()
	sprite := ecs.CreateEntity(sc.World())
	if err := ecs.Add(sc.World(), sprite, component.TransformComponent.Kind(), &component.Transform{X: 4, Y: 8}); err != nil {
		t.Fatal(err)
	}

	triggered := 0
	it, err := New(sc, 42, sprite, 32, "PROMPT", func(*ActionableItem) { triggered++ })
	if err != nil {
		t.Fatal(err)
	}

	a, ok := ecs.Get(sc.World(), sprite, component.ActionableComponent.Kind())
	if !ok || a.ID != 42 || a.Radius != 32 || a.Prompt != "PROMPT" {
		t.Fatalf("unexpected actionable component %+v", a)
	}
	if !ecs.Has(sc.World(), sprite, component.ItemTagComponent.Kind()) {
		t.Fatalf("expected item tag")
	}
	if x, y := it.Position(); x != 4 || y != 8 {
		t.Fatalf("expected position (4, 8), got (%v, %v)", x, y)
	}

	a.Activate()
	if triggered != 1 {
		t.Fatalf("Activate should run the trigger, got %d", triggered)
	}

	var order []string
	it.On(SignalTurnOn, func(state any) { order = append(order, "on:"+state.(string)) })
	it.On(SignalTurnOff, func(state any) { order = append(order, "off") })
	it.OnAny(func(signal Signal, state any) { order = append(order, "any:"+string(signal)) })

	it.Emit(SignalTurnOn, "payload")
	want := []string{"on:payload", "any:TURN_ON"}
	if len(order) != len(want) || order[0] != want[0] || order[1] != want[1] {
		t.Fatalf("expected %v, got %v", want, order)
	}

	events := sc.World().Events().Peek(EventSignal)
	if len(events) != 1 {
		t.Fatalf("expected one mirrored event, got %d", len(events))
	}
	evt := events[0].Data.(SignalEvent)
	if evt.ItemID != 42 || evt.Signal != SignalTurnOn || evt.State != "payload" {
		t.Fatalf("unexpected event %+v", evt)
	}

	it.Destroy()
	if ecs.IsAlive(sc.World(), sprite) {
		t.Fatalf("Destroy should remove the sprite entity")
	}
	order = nil
	it.Emit(SignalTurnOff, nil)
	if len(order) != 0 {
		t.Fatalf("listeners should be dropped on Destroy, got %v", order)
	}
}

func TestActionableItemPlay(t *testing.T) {
	sc := newTestScene()
	err := sc.Animations().Create(anim.Clip{
		Key:       "blink",
		Frames:    []anim.FrameRef{{Texture: "lamp", Frame: "lit"}},
		FrameRate: 10,
		Repeat:    anim.RepeatForever,
	})
	if err != nil {
		t.Fatal(err)
	}
	sprite := ecs.CreateEntity(sc.World())
	if err := ecs.Add(sc.World(), sprite, component.SpriteComponent.Kind(), &component.Sprite{Texture: "lamp", Frame: "dark"}); err != nil {
		t.Fatal(err)
	}
	it, err := New(sc, 1, sprite, 16, "", nil)
	if err != nil {
		t.Fatal(err)
	}

	if it.CurrentAnimation() != "" {
		t.Fatalf("no clip should be playing yet")
	}
	if it.Play("missing") {
		t.Fatalf("unknown clip should not play")
	}
	if !it.Play("blink") {
		t.Fatalf("expected blink to play")
	}
	if it.CurrentAnimation() != "blink" {
		t.Fatalf("expected blink, got %q", it.CurrentAnimation())
	}
	s, _ := ecs.Get(sc.World(), sprite, component.SpriteComponent.Kind())
	if s.Frame != "lit" {
		t.Fatalf("sprite should show the clip's first frame, got %q", s.Frame)
	}

	// a nil trigger is a no-op
	it.Activate()
}

func TestNewRejectsDeadEntity(t *testing.T) {
	sc := newTestScene()
	e := ecs.CreateEntity(sc.World())
	ecs.DestroyEntity(sc.World(), e)
	if _, err := New(sc, 1, e, 16, "", nil); !errors.Is(err, component.ErrEntityNotAlive) {
		t.Fatalf("expected ErrEntityNotAlive, got %v", err)
	}
}

type checkingFactory struct {
	stubFactory
	checked int
}

var errBadState = errors.New("bad state")

func (f *checkingFactory) CheckState(obj maps.Object, initState any) error {
	f.checked++
	if initState == "bad" {
		return errBadState
	}
	return nil
}

func TestRegistryCheckState(t *testing.T) {
	r := NewRegistry()
	pc := &checkingFactory{stubFactory: stubFactory{kind: "computer"}}
	if err := r.Register("computer", pc); err != nil {
		t.Fatal(err)
	}
	if err := r.Register("desk", &stubFactory{kind: "desk"}); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		obj   maps.Object
		state any
		want  error
	}{
		{"valid", maps.Object{ID: 1, Class: "computer"}, "good", nil},
		{"invalid", maps.Object{ID: 1, Class: "computer"}, "bad", errBadState},
		{"no_state", maps.Object{ID: 1, Class: "computer"}, nil, nil},
		{"not_a_checker", maps.Object{ID: 2, Class: "desk"}, "bad", nil},
		{"unknown", maps.Object{ID: 3, Class: "plant"}, nil, ErrUnknownKind},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := r.CheckState(tc.obj, tc.state)
			if tc.want == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tc.want != nil && !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
	if pc.checked != 2 {
		t.Fatalf("expected 2 checks, got %d", pc.checked)
	}
	if len(pc.created) != 0 {
		t.Fatalf("checking must not create items, got %v", pc.created)
	}
}
