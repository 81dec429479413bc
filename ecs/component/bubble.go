package component

// Bubble is a short text drawn at the entity's transform, above OffsetY.
// Bubbles usually live on their own entity with a TTL.
type Bubble struct {
	Text    string
	OffsetY float64
}

var BubbleComponent = NewComponent[Bubble]()
