// Command clipview previews the animation clips item factories register,
// cycling through them with the arrow keys.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/virtualoffice/ecs/anim"
	"github.com/milk9111/virtualoffice/ecs/component"
	"github.com/milk9111/virtualoffice/ecs/render"
	"github.com/milk9111/virtualoffice/item"
	"github.com/milk9111/virtualoffice/item/computer"
)

const viewSize = 256

type viewer struct {
	lib      *anim.Library
	textures *render.Textures
	keys     []string
	current  int
	animator component.Animator
	zoom     float64
}

func (v *viewer) clip() *anim.Clip {
	clip, _ := v.lib.Get(v.keys[v.current])
	return clip
}

func (v *viewer) Update() error {
	if len(v.keys) == 0 {
		return nil
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyRight):
		v.current = (v.current + 1) % len(v.keys)
	case inpututil.IsKeyJustPressed(ebiten.KeyLeft):
		v.current = (v.current + len(v.keys) - 1) % len(v.keys)
	}
	anim.Play(&v.animator, v.clip())
	anim.Step(&v.animator, v.clip())
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x00, 0x00, 0x00, 0xff})
	if len(v.keys) == 0 {
		ebitenutil.DebugPrint(screen, "no clips registered")
		return
	}
	clip := v.clip()
	ref := anim.Current(&v.animator, clip)
	img := v.textures.Frame(ref.Texture, ref.Frame)
	if img != nil {
		fw, fh := float64(img.Bounds().Dx())*v.zoom, float64(img.Bounds().Dy())*v.zoom
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(v.zoom, v.zoom)
		op.GeoM.Translate((viewSize-fw)/2, (viewSize-fh)/2)
		op.Filter = ebiten.FilterNearest
		screen.DrawImage(img, op)
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s  frame %s (%d/%d)  %.0f fps\n<- -> switch clip",
		clip.Key, ref.Frame, v.animator.Frame+1, len(clip.Frames), clip.FrameRate))
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return viewSize, viewSize
}

func main() {
	zoom := flag.Float64("zoom", 4, "frame scale")
	flag.Parse()

	registry := item.NewRegistry()
	if err := registry.Register(computer.Kind, computer.NewFactory(nil)); err != nil {
		log.Fatal(err)
	}
	textures := render.NewTextures()
	registry.PreloadAll(textures)
	if err := textures.Load(); err != nil {
		log.Fatal(err)
	}
	lib := anim.NewLibrary()
	if err := registry.RegisterAllAnimations(lib); err != nil {
		log.Fatal(err)
	}

	v := &viewer{lib: lib, textures: textures, keys: lib.Keys(), zoom: *zoom}
	ebiten.SetWindowSize(viewSize*2, viewSize*2)
	ebiten.SetWindowTitle("Clip Preview")
	if err := ebiten.RunGame(v); err != nil {
		log.Fatal(err)
	}
}
