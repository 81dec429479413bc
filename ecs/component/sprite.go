package component

// Sprite references a frame of a loaded texture atlas. The renderer resolves
// Texture/Frame to an image; an empty Frame draws the whole texture.
type Sprite struct {
	Texture string
	Frame   string
	OriginX float64
	OriginY float64
	Hidden  bool
}

var SpriteComponent = NewComponent[Sprite]()
