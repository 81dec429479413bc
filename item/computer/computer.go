// Package computer is the interactive computer map object: a desk computer
// that players switch on and off.
package computer

import (
	"errors"
	"fmt"

	"github.com/milk9111/virtualoffice/ecs"
	"github.com/milk9111/virtualoffice/ecs/anim"
	"github.com/milk9111/virtualoffice/ecs/component"
	"github.com/milk9111/virtualoffice/item"
	"github.com/milk9111/virtualoffice/logs"
	"github.com/milk9111/virtualoffice/maps"
)

const (
	// Kind is the Tiled class of computer objects.
	Kind = "computer"

	Texture   = "computer"
	ImagePath = "/resources/items/computer/computer.png"
	AtlasPath = "/resources/items/computer/computer_atlas.json"

	ClipOff = "computer_off"
	ClipRun = "computer_run"

	FrameOff = "computer_off"
	FrameOn1 = "computer_on1"
	FrameOn2 = "computer_on2"

	// InteractionRadius is how close, in world pixels, a player must be.
	InteractionRadius = 32

	RenderLayer = 10

	PromptOn  = "ITEM_COMPUTER_TURN_ON"
	PromptOff = "ITEM_COMPUTER_TURN_OFF"
)

// Factory builds computers. Every computer's state lives in the factory's
// Store under its map object id.
type Factory struct {
	store *Store
}

// NewFactory returns a factory backed by store. A nil store gets a fresh one.
func NewFactory(store *Store) *Factory {
	if store == nil {
		store = NewStore()
	}
	return &Factory{store: store}
}

// Store returns the state store shared by the computers this factory built.
func (f *Factory) Store() *Store { return f.store }

func (f *Factory) Preload(loader item.AssetLoader) {
	loader.Atlas(Texture, ImagePath, AtlasPath)
}

func (f *Factory) RegisterAnimations(lib *anim.Library) error {
	off := anim.Clip{
		Key:       ClipOff,
		Frames:    []anim.FrameRef{{Texture: Texture, Frame: FrameOff}},
		FrameRate: 10,
		Repeat:    anim.RepeatForever,
	}
	run := anim.Clip{
		Key: ClipRun,
		Frames: []anim.FrameRef{
			{Texture: Texture, Frame: FrameOn1},
			{Texture: Texture, Frame: FrameOn2},
		},
		FrameRate: 5,
		Repeat:    anim.RepeatForever,
	}
	return errors.Join(lib.Create(off), lib.Create(run))
}

// CheckState validates a restored state for obj without touching the store.
func (f *Factory) CheckState(obj maps.Object, initState any) error {
	_, err := f.validate(obj.ID, initState)
	return err
}

func (f *Factory) validate(id int, initState any) (State, error) {
	st, err := ParseState(initState)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			logs.Errorf("computer: object %d: invalid state: %v", id, verr.Issues)
		}
		return State{}, fmt.Errorf("computer: object %d: %w", id, err)
	}
	return st, nil
}

// Create places a computer for obj. A non-nil initState replaces the stored
// state of obj.ID once it validates and the computer is built; an invalid
// one fails the whole call and leaves the store alone.
func (f *Factory) Create(sc item.Scene, obj maps.Object, initState any) (*item.ActionableItem, error) {
	if sc == nil || sc.World() == nil {
		return nil, fmt.Errorf("computer: object %d: nil scene", obj.ID)
	}
	status := f.store.Get(obj.ID).Status
	var restored *State
	if initState != nil {
		st, err := f.validate(obj.ID, initState)
		if err != nil {
			return nil, err
		}
		restored, status = &st, st.Status
	}

	w := sc.World()
	sprite := ecs.CreateEntity(w)
	build := func() (*item.ActionableItem, error) {
		if err := ecs.Add(w, sprite, component.TransformComponent.Kind(), &component.Transform{X: obj.X, Y: obj.Y, ScaleX: 1, ScaleY: 1}); err != nil {
			return nil, err
		}
		if err := ecs.Add(w, sprite, component.SpriteComponent.Kind(), &component.Sprite{Texture: Texture, Frame: FrameOff, OriginX: 0.5, OriginY: 0.5}); err != nil {
			return nil, err
		}
		if err := ecs.Add(w, sprite, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: RenderLayer}); err != nil {
			return nil, err
		}
		return item.New(sc, obj.ID, sprite, InteractionRadius, promptFor(status), f.trigger)
	}
	it, err := build()
	if err != nil {
		ecs.DestroyEntity(w, sprite)
		return nil, fmt.Errorf("computer: object %d: %w", obj.ID, err)
	}
	if restored != nil {
		f.store.Set(obj.ID, *restored)
	}

	if f.store.Get(obj.ID).Status == StatusOn {
		it.Play(ClipRun)
	}

	it.On(item.SignalTurnOn, func(any) {
		it.Play(ClipRun)
		f.setPrompt(it)
	})
	it.On(item.SignalTurnOff, func(any) {
		it.Play(ClipOff)
		f.setPrompt(it)
	})

	return it, nil
}

func (f *Factory) trigger(it *item.ActionableItem) {
	next, signal := Transition(f.store.Get(it.ID()).Status)
	st := State{Status: next}
	f.store.Set(it.ID(), st)
	it.Emit(signal, st)
}

func promptFor(s Status) string {
	if s == StatusOn {
		return PromptOff
	}
	return PromptOn
}

func (f *Factory) setPrompt(it *item.ActionableItem) {
	if a, ok := ecs.Get(it.Scene().World(), it.Sprite(), component.ActionableComponent.Kind()); ok {
		a.Prompt = promptFor(f.store.Get(it.ID()).Status)
	}
}

// EffectiveAnimation is the clip a computer shows: the last clip played, or
// the idle clip when none was played yet.
func EffectiveAnimation(it *item.ActionableItem) string {
	if cur := it.CurrentAnimation(); cur != "" {
		return cur
	}
	return ClipOff
}
