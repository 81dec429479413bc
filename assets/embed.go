package assets

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	_ "image/png"
	"path/filepath"
	"strings"
)

//go:embed items
var assetsFS embed.FS

// LoadImage decodes an embedded image by assets-relative path.
func LoadImage(path string) (image.Image, error) {
	b, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("assets: decode %s: %w", path, err)
	}
	return img, nil
}

// LoadFile loads an embedded asset by assets-relative path.
func LoadFile(path string) ([]byte, error) {
	clean := cleanAssetPath(path)
	if clean == "" {
		return nil, fmt.Errorf("assets: empty path")
	}
	return assetsFS.ReadFile(clean)
}

// cleanAssetPath turns "/resources/items/x.png", "assets/items/x.png" and
// absolute paths into the embedded "items/x.png" form.
func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	for _, root := range []string{"/assets/", "/resources/"} {
		if idx := strings.LastIndex(s, root); idx >= 0 {
			return s[idx+len(root):]
		}
	}
	if filepath.IsAbs(path) {
		return filepath.Base(path)
	}
	for _, prefix := range []string{"assets/", "resources/"} {
		if after, ok := strings.CutPrefix(s, prefix); ok {
			return after
		}
	}
	return strings.TrimPrefix(s, "./")
}
