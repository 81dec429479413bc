package component

// Animator is the playback cursor for a clip registered in the animation
// library. Current is the clip key; an empty key means the sprite shows its
// authored frame.
type Animator struct {
	Current    string
	Frame      int
	FrameTimer int
	// Loops counts completed cycles of the current clip.
	Loops   int
	Playing bool
}

var AnimatorComponent = NewComponent[Animator]()
