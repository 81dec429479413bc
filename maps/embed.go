package maps

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

//go:embed *.json
var MapsFS embed.FS

// Dir is where on-disk maps override the embedded ones.
const Dir = "maps"

// Load reads a map by name, preferring maps/<name> on disk so edits made
// while the client runs are picked up on reload.
func Load(name string) (*Map, error) {
	clean := cleanMapName(name)
	data, err := os.ReadFile(filepath.Join(Dir, clean))
	if err != nil {
		data, err = MapsFS.ReadFile(clean)
		if err != nil {
			return nil, fmt.Errorf("maps: read %s: %w", clean, err)
		}
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("maps: load %s: %w", clean, err)
	}
	return m, nil
}

func cleanMapName(name string) string {
	s := filepath.ToSlash(name)
	s = strings.TrimPrefix(s, Dir+"/")
	if !strings.HasSuffix(s, ".json") {
		s += ".json"
	}
	return s
}
