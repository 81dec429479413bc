package maps

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Map is the subset of a Tiled JSON map the client reads.
type Map struct {
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	TileWidth  int     `json:"tilewidth"`
	TileHeight int     `json:"tileheight"`
	Layers     []Layer `json:"layers"`
}

type Layer struct {
	ID      int      `json:"id"`
	Name    string   `json:"name"`
	Type    string   `json:"type"`
	Visible bool     `json:"visible"`
	Objects []Object `json:"objects,omitempty"`
	Layers  []Layer  `json:"layers,omitempty"`
}

// Object is a Tiled map object. Placement (ID, X, Y) is read-only input for
// item factories.
type Object struct {
	ID         int        `json:"id"`
	Name       string     `json:"name"`
	Type       string     `json:"type"`
	Class      string     `json:"class"`
	X          float64    `json:"x"`
	Y          float64    `json:"y"`
	Width      float64    `json:"width"`
	Height     float64    `json:"height"`
	Properties []Property `json:"properties,omitempty"`
}

type Property struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value any    `json:"value"`
}

// Kind returns the object class, falling back to the pre-1.9 "type" field.
func (o Object) Kind() string {
	if o.Class != "" {
		return o.Class
	}
	return o.Type
}

// Property returns a custom property value by name.
func (o Object) Property(name string) (any, bool) {
	for _, p := range o.Properties {
		if p.Name == name {
			return p.Value, true
		}
	}
	return nil, false
}

// StringProperty returns a string-valued custom property.
func (o Object) StringProperty(name string) (string, bool) {
	v, ok := o.Property(name)
	if !ok {
		return "", false
	}
	switch s := v.(type) {
	case string:
		return s, true
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(s), true
	}
	return "", false
}

// Parse decodes Tiled JSON.
func Parse(data []byte) (*Map, error) {
	var m Map
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("maps: unmarshal: %w", err)
	}
	if m.Width <= 0 || m.Height <= 0 {
		return nil, fmt.Errorf("maps: invalid map dimensions: %dx%d", m.Width, m.Height)
	}
	return &m, nil
}

// Objects returns every object of every object layer, groups included, in
// layer order.
func (m *Map) Objects() []Object {
	if m == nil {
		return nil
	}
	var out []Object
	var walk func(layers []Layer)
	walk = func(layers []Layer) {
		for _, l := range layers {
			switch l.Type {
			case "objectgroup":
				out = append(out, l.Objects...)
			case "group":
				walk(l.Layers)
			}
		}
	}
	walk(m.Layers)
	return out
}

// PixelSize returns the map size in pixels.
func (m *Map) PixelSize() (int, int) {
	if m == nil {
		return 0, 0
	}
	return m.Width * m.TileWidth, m.Height * m.TileHeight
}
