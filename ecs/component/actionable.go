package component

// Actionable makes an entity selectable by a nearby player. The interaction
// system selects the closest actionable whose Radius contains the player and
// calls Activate when the player interacts.
type Actionable struct {
	ID       int
	Radius   float64
	Selected bool
	// Prompt is a locale key shown while selected.
	Prompt   string
	Activate func()
}

var ActionableComponent = NewComponent[Actionable]()
