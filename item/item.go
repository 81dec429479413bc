package item

import (
	"errors"
	"fmt"

	"github.com/milk9111/virtualoffice/ecs"
	"github.com/milk9111/virtualoffice/ecs/anim"
	"github.com/milk9111/virtualoffice/ecs/component"
	"github.com/milk9111/virtualoffice/maps"
)

// ErrInvalidRestoredState is returned by factories when the state handed to
// Create does not match the item type's schema.
var ErrInvalidRestoredState = errors.New("invalid state for this object type")

// ErrUnknownKind is returned when no factory is registered for a map object.
var ErrUnknownKind = errors.New("item: unknown object kind")

// EventSignal is the ecs.Event type used to mirror item signals onto the
// world event queue. Data is a SignalEvent.
const EventSignal = "item.signal"

// Signal is an application-level event emitted by an item.
type Signal string

const (
	SignalTurnOn  Signal = "TURN_ON"
	SignalTurnOff Signal = "TURN_OFF"
)

// SignalEvent is the payload pushed to the world event queue.
type SignalEvent struct {
	ItemID int
	Signal Signal
	State  any
}

// Scene is what item factories need from the hosting scene.
type Scene interface {
	World() *ecs.World
	Animations() *anim.Library
}

// AssetLoader accepts preload requests from factories.
type AssetLoader interface {
	Atlas(key, imagePath, atlasPath string)
}

// Factory builds one kind of map object.
type Factory interface {
	Preload(loader AssetLoader)
	RegisterAnimations(lib *anim.Library) error
	Create(sc Scene, obj maps.Object, initState any) (*ActionableItem, error)
}

// StateChecker is implemented by factories that can validate a restored
// state without building anything.
type StateChecker interface {
	CheckState(obj maps.Object, initState any) error
}

// Registry maps Tiled object classes to factories.
type Registry struct {
	factories map[string]Factory
	order     []string
}

func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory for kind. Registering a kind twice is an error.
func (r *Registry) Register(kind string, f Factory) error {
	if kind == "" || f == nil {
		return fmt.Errorf("item: register: empty kind or nil factory")
	}
	if r.factories == nil {
		r.factories = make(map[string]Factory)
	}
	if _, ok := r.factories[kind]; ok {
		return fmt.Errorf("item: register %q: already registered", kind)
	}
	r.factories[kind] = f
	r.order = append(r.order, kind)
	return nil
}

// Lookup returns the factory for kind.
func (r *Registry) Lookup(kind string) (Factory, bool) {
	if r == nil {
		return nil, false
	}
	f, ok := r.factories[kind]
	return f, ok
}

// Kinds lists registered kinds in registration order.
func (r *Registry) Kinds() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.order...)
}

// PreloadAll queues the assets of every factory.
func (r *Registry) PreloadAll(loader AssetLoader) {
	if r == nil || loader == nil {
		return
	}
	for _, kind := range r.order {
		r.factories[kind].Preload(loader)
	}
}

// RegisterAllAnimations registers the clips of every factory.
func (r *Registry) RegisterAllAnimations(lib *anim.Library) error {
	if r == nil {
		return nil
	}
	for _, kind := range r.order {
		if err := r.factories[kind].RegisterAnimations(lib); err != nil {
			return fmt.Errorf("item: %q animations: %w", kind, err)
		}
	}
	return nil
}

// CheckState validates initState against the factory for obj's class.
// Factories that are not StateCheckers accept everything here and report
// problems from Create.
func (r *Registry) CheckState(obj maps.Object, initState any) error {
	f, ok := r.Lookup(obj.Kind())
	if !ok {
		return fmt.Errorf("%w: %q (object %d)", ErrUnknownKind, obj.Kind(), obj.ID)
	}
	if c, ok := f.(StateChecker); ok && initState != nil {
		return c.CheckState(obj, initState)
	}
	return nil
}

// Create builds obj with the factory registered for its class.
func (r *Registry) Create(sc Scene, obj maps.Object, initState any) (*ActionableItem, error) {
	f, ok := r.Lookup(obj.Kind())
	if !ok {
		return nil, fmt.Errorf("%w: %q (object %d)", ErrUnknownKind, obj.Kind(), obj.ID)
	}
	return f.Create(sc, obj, initState)
}

// ActionableItem wraps a sprite entity with an interaction radius, a trigger
// callback and signal listeners.
type ActionableItem struct {
	id        int
	scene     Scene
	sprite    ecs.Entity
	radius    float64
	onTrigger func(*ActionableItem)
	listeners map[Signal][]func(state any)
	wildcard  []func(signal Signal, state any)
}

// New attaches an Actionable component to sprite and returns the wrapper.
// prompt is the locale key shown while the item is selected.
func New(sc Scene, id int, sprite ecs.Entity, radius float64, prompt string, onTrigger func(*ActionableItem)) (*ActionableItem, error) {
	if sc == nil || sc.World() == nil {
		return nil, fmt.Errorf("item %d: nil scene", id)
	}
	it := &ActionableItem{
		id:        id,
		scene:     sc,
		sprite:    sprite,
		radius:    radius,
		onTrigger: onTrigger,
		listeners: make(map[Signal][]func(state any)),
	}
	err := ecs.Add(sc.World(), sprite, component.ActionableComponent.Kind(), &component.Actionable{
		ID:       id,
		Radius:   radius,
		Prompt:   prompt,
		Activate: it.Activate,
	})
	if err != nil {
		return nil, fmt.Errorf("item %d: %w", id, err)
	}
	if err := ecs.Add(sc.World(), sprite, component.ItemTagComponent.Kind(), &component.ItemTag{}); err != nil {
		return nil, fmt.Errorf("item %d: %w", id, err)
	}
	return it, nil
}

func (it *ActionableItem) ID() int { return it.id }

func (it *ActionableItem) Sprite() ecs.Entity { return it.sprite }

func (it *ActionableItem) Scene() Scene { return it.scene }

func (it *ActionableItem) Radius() float64 { return it.radius }

// Position returns the sprite's world position.
func (it *ActionableItem) Position() (float64, float64) {
	t, ok := ecs.Get(it.scene.World(), it.sprite, component.TransformComponent.Kind())
	if !ok {
		return 0, 0
	}
	return t.X, t.Y
}

// Selected reports whether the interaction system currently targets the item.
func (it *ActionableItem) Selected() bool {
	a, ok := ecs.Get(it.scene.World(), it.sprite, component.ActionableComponent.Kind())
	return ok && a.Selected
}

// Activate runs the trigger callback. The interaction system calls it when a
// player in range interacts.
func (it *ActionableItem) Activate() {
	if it == nil || it.onTrigger == nil {
		return
	}
	it.onTrigger(it)
}

// On registers a listener for signal. Listeners run in registration order.
func (it *ActionableItem) On(signal Signal, fn func(state any)) {
	if it == nil || fn == nil {
		return
	}
	it.listeners[signal] = append(it.listeners[signal], fn)
}

// OnAny registers a listener for every signal, run after the per-signal ones.
func (it *ActionableItem) OnAny(fn func(signal Signal, state any)) {
	if it == nil || fn == nil {
		return
	}
	it.wildcard = append(it.wildcard, fn)
}

// Emit runs the listeners of signal synchronously and mirrors the signal
// onto the world event queue.
func (it *ActionableItem) Emit(signal Signal, state any) {
	if it == nil {
		return
	}
	for _, fn := range it.listeners[signal] {
		fn(state)
	}
	for _, fn := range it.wildcard {
		fn(signal, state)
	}
	it.scene.World().Events().Push(ecs.Event{
		Type: EventSignal,
		Data: SignalEvent{ItemID: it.id, Signal: signal, State: state},
	})
}

// Play starts a registered clip on the item's sprite. It returns false when
// the clip is unknown.
func (it *ActionableItem) Play(key string) bool {
	clip, ok := it.scene.Animations().Get(key)
	if !ok {
		return false
	}
	w := it.scene.World()
	a, ok := ecs.Get(w, it.sprite, component.AnimatorComponent.Kind())
	if !ok {
		a = &component.Animator{}
	}
	anim.Play(a, clip)
	if err := ecs.Add(w, it.sprite, component.AnimatorComponent.Kind(), a); err != nil {
		return false
	}
	if s, ok := ecs.Get(w, it.sprite, component.SpriteComponent.Kind()); ok {
		ref := anim.Current(a, clip)
		s.Texture, s.Frame = ref.Texture, ref.Frame
	}
	return true
}

// CurrentAnimation returns the key of the clip last played on the sprite, or
// "" when the sprite still shows its authored frame.
func (it *ActionableItem) CurrentAnimation() string {
	a, ok := ecs.Get(it.scene.World(), it.sprite, component.AnimatorComponent.Kind())
	if !ok {
		return ""
	}
	return a.Current
}

// Destroy removes the sprite entity and drops every listener.
func (it *ActionableItem) Destroy() {
	if it == nil {
		return
	}
	ecs.DestroyEntity(it.scene.World(), it.sprite)
	it.listeners = make(map[Signal][]func(state any))
	it.wildcard = nil
}
