package component

// RenderLayer orders sprites. Lower indexes draw first; sprites on the same
// layer draw top to bottom by Y.
type RenderLayer struct {
	Index int
}

var RenderLayerComponent = NewComponent[RenderLayer]()
