package main

import (
	"image/color"
	"strings"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/virtualoffice/item/computer"
	"github.com/milk9111/virtualoffice/locale"
)

// HUD is the pause panel: a title, the status of every item in the scene
// and a Resume button. Labels come from the active locale.
type HUD struct {
	g      *Game
	ui     *ebitenui.UI
	title  *widget.Text
	status *widget.Text
	resume *widget.Button
}

func NewHUD(g *Game) *HUD {
	h := &HUD{g: g}

	// semi-transparent panel background
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})

	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace

	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	btnTextColor := &widget.ButtonTextColor{Idle: white}

	h.title = widget.NewText(
		widget.TextOpts.Text(locale.Get("HUD_TITLE"), face, white),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)

	h.status = widget.NewText(
		widget.TextOpts.Text("", face, color.NRGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionStart})),
	)

	h.resume = widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnImg}),
		widget.ButtonOpts.Text(locale.Get("HUD_RESUME"), face, btnTextColor),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			g.setPaused(false)
		}),
	)

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(g.width/2, g.height/2),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)
	panel.AddChild(h.title)
	panel.AddChild(h.status)
	panel.AddChild(h.resume)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	h.ui = &ebitenui.UI{Container: root}
	return h
}

func (h *HUD) UI() *ebitenui.UI {
	return h.ui
}

// Refresh relabels the panel for the current language and item states.
func (h *HUD) Refresh() {
	h.title.Label = locale.Get("HUD_TITLE")
	if t := h.resume.Text(); t != nil {
		t.Label = locale.Get("HUD_RESUME")
	}

	store := h.g.computers.Store()
	lines := make([]string, 0, len(h.g.scene.Items()))
	for _, it := range h.g.scene.Items() {
		lines = append(lines, locale.Get("HUD_ITEM_STATUS", computer.Kind, it.ID(), string(store.Get(it.ID()).Status)))
	}
	h.status.Label = strings.Join(lines, "\n")
}
