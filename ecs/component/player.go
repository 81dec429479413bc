package component

// Player holds the avatar's walking speed in pixels per tick.
type Player struct {
	MoveSpeed float64
}

var PlayerComponent = NewComponent[Player]()
