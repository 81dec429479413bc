package render

import (
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/virtualoffice/ecs"
	"github.com/milk9111/virtualoffice/ecs/component"
	"github.com/milk9111/virtualoffice/locale"
)

var (
	backgroundColor = colornames.Darkslategray
	playerColor     = colornames.Crimson
	selectColor     = colornames.Gold
	debugColor      = color.RGBA{R: 255, G: 0, B: 0, A: 120}
	bubbleColor     = color.RGBA{R: 0, G: 0, B: 0, A: 180}
)

// Renderer draws the world: sprites by layer, the player, the selected
// item's outline and prompt, then speech bubbles on top.
type Renderer struct {
	textures *Textures
	face     text.Face

	PlayerWidth  float64
	PlayerHeight float64
	// Debug outlines every interaction radius.
	Debug bool
}

func NewRenderer(textures *Textures, playerWidth, playerHeight float64) *Renderer {
	return &Renderer{
		textures:     textures,
		face:         text.NewGoXFace(basicfont.Face7x13),
		PlayerWidth:  playerWidth,
		PlayerHeight: playerHeight,
	}
}

type drawable struct {
	e      ecs.Entity
	layer  int
	sprite *component.Sprite
	t      *component.Transform
}

func (r *Renderer) Draw(screen *ebiten.Image, w *ecs.World) {
	screen.Fill(backgroundColor)
	r.drawSprites(screen, w)
	r.drawPlayers(screen, w)
	r.drawActionables(screen, w)
	r.drawBubbles(screen, w)
}

func (r *Renderer) drawSprites(screen *ebiten.Image, w *ecs.World) {
	var list []drawable
	ecs.ForEach2(w, component.SpriteComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, s *component.Sprite, t *component.Transform) {
		if s.Hidden {
			return
		}
		layer := 0
		if l, ok := ecs.Get(w, e, component.RenderLayerComponent.Kind()); ok {
			layer = l.Index
		}
		list = append(list, drawable{e: e, layer: layer, sprite: s, t: t})
	})
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].layer != list[j].layer {
			return list[i].layer < list[j].layer
		}
		if list[i].t.Y != list[j].t.Y {
			return list[i].t.Y < list[j].t.Y
		}
		return list[i].e < list[j].e
	})

	for _, d := range list {
		img := r.textures.Frame(d.sprite.Texture, d.sprite.Frame)
		if img == nil {
			continue
		}
		b := img.Bounds()
		sx, sy := d.t.ScaleX, d.t.ScaleY
		if sx == 0 {
			sx = 1
		}
		if sy == 0 {
			sy = 1
		}
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-d.sprite.OriginX*float64(b.Dx()), -d.sprite.OriginY*float64(b.Dy()))
		op.GeoM.Scale(sx, sy)
		op.GeoM.Translate(d.t.X, d.t.Y)
		screen.DrawImage(img, op)
	}
}

func (r *Renderer) drawPlayers(screen *ebiten.Image, w *ecs.World) {
	ecs.ForEach2(w, component.PlayerTagComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, _ *component.PlayerTag, t *component.Transform) {
		x := t.X - r.PlayerWidth/2
		y := t.Y - r.PlayerHeight
		vector.DrawFilledRect(screen, float32(x), float32(y), float32(r.PlayerWidth), float32(r.PlayerHeight), playerColor, false)
	})
}

func (r *Renderer) drawActionables(screen *ebiten.Image, w *ecs.World) {
	ecs.ForEach2(w, component.ActionableComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, a *component.Actionable, t *component.Transform) {
		if r.Debug {
			vector.StrokeCircle(screen, float32(t.X), float32(t.Y), float32(a.Radius), 1, debugColor, true)
		}
		if !a.Selected {
			return
		}
		vector.StrokeCircle(screen, float32(t.X), float32(t.Y), float32(a.Radius), 2, selectColor, true)
		if a.Prompt != "" {
			r.drawLabel(screen, locale.Get(a.Prompt), t.X, t.Y+a.Radius+16, nil)
		}
	})
}

func (r *Renderer) drawBubbles(screen *ebiten.Image, w *ecs.World) {
	ecs.ForEach2(w, component.BubbleComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, b *component.Bubble, t *component.Transform) {
		r.drawLabel(screen, b.Text, t.X, t.Y+b.OffsetY, bubbleColor)
	})
}

// drawLabel draws s centered on x with its baseline at y, over an optional
// background box.
func (r *Renderer) drawLabel(screen *ebiten.Image, s string, x, y float64, bg color.Color) {
	width, height := text.Measure(s, r.face, 0)
	left := x - width/2
	top := y - height
	if bg != nil {
		vector.DrawFilledRect(screen, float32(left-4), float32(top-2), float32(width+8), float32(height+4), bg, false)
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(left, top)
	op.ColorScale.ScaleWithColor(colornames.White)
	text.Draw(screen, s, r.face, op)
}
