package render

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/virtualoffice/assets"
	"github.com/milk9111/virtualoffice/ecs/anim"
)

type atlasRequest struct {
	key       string
	imagePath string
	atlasPath string
}

type texture struct {
	image  *ebiten.Image
	atlas  *anim.Atlas
	frames map[string]*ebiten.Image
}

// Textures is the texture cache. Item factories queue atlases through
// Atlas during preload; Load resolves the queue.
type Textures struct {
	pending  []atlasRequest
	textures map[string]*texture
}

func NewTextures() *Textures {
	return &Textures{textures: make(map[string]*texture)}
}

// Atlas queues an image + frame-metadata pair under key.
func (t *Textures) Atlas(key, imagePath, atlasPath string) {
	if t == nil || key == "" {
		return
	}
	t.pending = append(t.pending, atlasRequest{key: key, imagePath: imagePath, atlasPath: atlasPath})
}

// Load resolves every queued atlas. Failed entries are reported together and
// the rest stay usable.
func (t *Textures) Load() error {
	if t == nil {
		return nil
	}
	if t.textures == nil {
		t.textures = make(map[string]*texture)
	}
	var errs []error
	for _, req := range t.pending {
		if _, ok := t.textures[req.key]; ok {
			continue
		}
		tex, err := loadAtlas(req)
		if err != nil {
			errs = append(errs, fmt.Errorf("render: atlas %q: %w", req.key, err))
			continue
		}
		t.textures[req.key] = tex
	}
	t.pending = nil
	return errors.Join(errs...)
}

// Has reports whether texture key is loaded.
func (t *Textures) Has(key string) bool {
	if t == nil {
		return false
	}
	_, ok := t.textures[key]
	return ok
}

// Frame returns the image for a frame of a loaded texture. An empty frame
// name returns the whole texture.
func (t *Textures) Frame(key, frame string) *ebiten.Image {
	if t == nil {
		return nil
	}
	tex, ok := t.textures[key]
	if !ok {
		return nil
	}
	if frame == "" {
		return tex.image
	}
	if img, ok := tex.frames[frame]; ok {
		return img
	}
	rect, ok := tex.atlas.Frame(frame)
	if !ok {
		return nil
	}
	sub, ok := tex.image.SubImage(rect).(*ebiten.Image)
	if !ok {
		return nil
	}
	tex.frames[frame] = sub
	return sub
}

func loadAtlas(req atlasRequest) (*texture, error) {
	img, err := loadImageFromAssetsOrFS(req.imagePath)
	if err != nil {
		return nil, err
	}
	data, err := loadFileFromAssetsOrFS(req.atlasPath)
	if err != nil {
		return nil, err
	}
	atlas, err := anim.ParseAtlas(data)
	if err != nil {
		return nil, err
	}
	return &texture{image: img, atlas: atlas, frames: make(map[string]*ebiten.Image)}, nil
}

func loadImageFromAssetsOrFS(path string) (*ebiten.Image, error) {
	if img, err := assets.LoadImage(path); err == nil {
		return ebiten.NewImageFromImage(img), nil
	}
	for _, p := range []string{path, filepath.Join("assets", path)} {
		if b, err := os.ReadFile(p); err == nil {
			if im, _, err := image.Decode(bytes.NewReader(b)); err == nil {
				return ebiten.NewImageFromImage(im), nil
			}
		}
	}
	return nil, fmt.Errorf("failed to load image %s", path)
}

func loadFileFromAssetsOrFS(path string) ([]byte, error) {
	if b, err := assets.LoadFile(path); err == nil {
		return b, nil
	}
	for _, p := range []string{path, filepath.Join("assets", path)} {
		if b, err := os.ReadFile(p); err == nil {
			return b, nil
		}
	}
	return nil, fmt.Errorf("failed to load file %s", path)
}
