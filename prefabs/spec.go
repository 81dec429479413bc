package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// ClientSpec configures the desktop client.
type ClientSpec struct {
	Window WindowSpec `yaml:"window"`
	Map    string     `yaml:"map"`
	Locale string     `yaml:"locale"`
	Player PlayerSpec `yaml:"player"`
	Debug  bool       `yaml:"debug"`
	Watch  bool       `yaml:"watch"`
	// ItemStates restores item state by map object id. Values are handed to
	// the item factory untyped and validated there.
	ItemStates map[int]any `yaml:"item_states"`
}

type WindowSpec struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type PlayerSpec struct {
	Name      string  `yaml:"name"`
	MoveSpeed float64 `yaml:"move_speed"`
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
}

// LoadClientSpec loads client.yaml and fills unset fields with defaults.
func LoadClientSpec(filename string) (*ClientSpec, error) {
	if filename == "" {
		filename = "client.yaml"
	}
	spec, err := LoadSpec[ClientSpec](filename)
	if err != nil {
		return nil, err
	}
	spec.applyDefaults()
	return &spec, nil
}

func (s *ClientSpec) applyDefaults() {
	if s.Window.Width <= 0 {
		s.Window.Width = 640
	}
	if s.Window.Height <= 0 {
		s.Window.Height = 384
	}
	if s.Window.Title == "" {
		s.Window.Title = "virtual office"
	}
	if s.Map == "" {
		s.Map = "office.json"
	}
	if s.Locale == "" {
		s.Locale = "en"
	}
	if s.Player.MoveSpeed <= 0 {
		s.Player.MoveSpeed = 2
	}
	if s.Player.Width <= 0 {
		s.Player.Width = 16
	}
	if s.Player.Height <= 0 {
		s.Player.Height = 24
	}
}
