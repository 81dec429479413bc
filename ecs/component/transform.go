package component

// Transform places an entity in world pixels. For sprites X/Y is where the
// sprite origin lands.
type Transform struct {
	X      float64
	Y      float64
	ScaleX float64
	ScaleY float64
}

var TransformComponent = NewComponent[Transform]()
