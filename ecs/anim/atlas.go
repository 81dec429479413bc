package anim

import (
	"encoding/json"
	"fmt"
	"image"
	"sort"
)

// Atlas maps frame names to rectangles of a texture. It reads the
// TexturePacker JSON layouts, both the "hash" (frames object) and "array"
// (frames list with filename) variants.
type Atlas struct {
	Image  string
	frames map[string]image.Rectangle
}

type atlasRect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type atlasFrame struct {
	Filename string    `json:"filename"`
	Frame    atlasRect `json:"frame"`
	Rotated  bool      `json:"rotated"`
}

type atlasFile struct {
	Frames json.RawMessage `json:"frames"`
	Meta   struct {
		Image string `json:"image"`
	} `json:"meta"`
}

// ParseAtlas decodes TexturePacker frame metadata.
func ParseAtlas(data []byte) (*Atlas, error) {
	var file atlasFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("anim: parse atlas: %w", err)
	}
	if len(file.Frames) == 0 {
		return nil, fmt.Errorf("anim: parse atlas: missing frames")
	}

	a := &Atlas{Image: file.Meta.Image, frames: make(map[string]image.Rectangle)}

	var byName map[string]atlasFrame
	if err := json.Unmarshal(file.Frames, &byName); err == nil {
		for name, f := range byName {
			if err := a.add(name, f); err != nil {
				return nil, err
			}
		}
		return a, nil
	}

	var list []atlasFrame
	if err := json.Unmarshal(file.Frames, &list); err != nil {
		return nil, fmt.Errorf("anim: parse atlas frames: %w", err)
	}
	for _, f := range list {
		if err := a.add(f.Filename, f); err != nil {
			return nil, err
		}
	}
	return a, nil
}

func (a *Atlas) add(name string, f atlasFrame) error {
	if name == "" {
		return fmt.Errorf("anim: atlas frame without a name")
	}
	if f.Rotated {
		return fmt.Errorf("anim: atlas frame %q: rotated frames are not supported", name)
	}
	if f.Frame.W <= 0 || f.Frame.H <= 0 {
		return fmt.Errorf("anim: atlas frame %q: empty rectangle", name)
	}
	a.frames[name] = image.Rect(f.Frame.X, f.Frame.Y, f.Frame.X+f.Frame.W, f.Frame.Y+f.Frame.H)
	return nil
}

// Frame returns the rectangle of a named frame.
func (a *Atlas) Frame(name string) (image.Rectangle, bool) {
	if a == nil {
		return image.Rectangle{}, false
	}
	r, ok := a.frames[name]
	return r, ok
}

// FrameNames lists frame names in sorted order.
func (a *Atlas) FrameNames() []string {
	if a == nil {
		return nil
	}
	names := make([]string, 0, len(a.frames))
	for name := range a.frames {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
