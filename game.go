package main

import (
	"fmt"
	"path/filepath"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/virtualoffice/ecs"
	"github.com/milk9111/virtualoffice/ecs/anim"
	"github.com/milk9111/virtualoffice/ecs/component"
	"github.com/milk9111/virtualoffice/ecs/render"
	"github.com/milk9111/virtualoffice/ecs/system"
	"github.com/milk9111/virtualoffice/item"
	"github.com/milk9111/virtualoffice/item/computer"
	"github.com/milk9111/virtualoffice/locale"
	"github.com/milk9111/virtualoffice/logs"
	"github.com/milk9111/virtualoffice/maps"
	"github.com/milk9111/virtualoffice/prefabs"
	"github.com/milk9111/virtualoffice/scene"
)

type Game struct {
	frames int
	paused bool

	cfg        *prefabs.ClientSpec
	configName string

	computers   *computer.Factory
	scene       *scene.Scene
	scheduler   *ecs.Scheduler
	interaction *system.InteractionSystem
	movement    *system.MovementSystem
	renderer    *render.Renderer
	player      ecs.Entity

	watcher *prefabs.Watcher
	hud     *HUD
	pauseUI *ebitenui.UI

	width, height int
}

func NewGame(configName string, cfg *prefabs.ClientSpec) (*Game, error) {
	computers := computer.NewFactory(nil)
	registry := item.NewRegistry()
	if err := registry.Register(computer.Kind, computers); err != nil {
		return nil, err
	}

	textures := render.NewTextures()
	registry.PreloadAll(textures)
	if err := textures.Load(); err != nil {
		// sprites without a texture are skipped by the renderer
		logs.Errorf("%v", err)
	}

	anims := anim.NewLibrary()
	if err := registry.RegisterAllAnimations(anims); err != nil {
		return nil, err
	}

	m, err := maps.Load(cfg.Map)
	if err != nil {
		return nil, err
	}
	sc := scene.New(registry, anims)
	if err := sc.Load(m, cfg.ItemStates); err != nil {
		return nil, err
	}

	g := &Game{
		cfg:         cfg,
		configName:  configName,
		computers:   computers,
		scene:       sc,
		interaction: system.NewInteractionSystem(),
		renderer:    render.NewRenderer(textures, cfg.Player.Width, cfg.Player.Height),
	}
	g.renderer.Debug = cfg.Debug
	g.resize(m)
	g.player = g.spawnPlayer()

	g.scheduler = ecs.NewScheduler(
		&inputSystem{},
		g.movement,
		g.interaction,
		system.NewAnimationSystem(anims),
		system.NewTTLSystem(),
		ecs.SystemFunc(g.logSignals),
	)

	g.hud = NewHUD(g)
	g.pauseUI = g.hud.UI()

	if cfg.Watch {
		w, err := prefabs.NewWatcher(prefabs.Dir, maps.Dir)
		if err != nil {
			logs.Warnf("watch disabled: %v", err)
		} else {
			g.watcher = w
			logs.Infof("watching %s and %s for changes", prefabs.Dir, maps.Dir)
		}
	}

	return g, nil
}

func (g *Game) resize(m *maps.Map) {
	g.width, g.height = m.PixelSize()
	if g.width <= 0 || g.height <= 0 {
		g.width, g.height = g.cfg.Window.Width, g.cfg.Window.Height
	}
	g.movement = system.NewMovementSystem(float64(g.width), float64(g.height))
}

func (g *Game) spawnPlayer() ecs.Entity {
	w := g.scene.World()
	x, y, ok := g.scene.Spawn()
	if !ok {
		x, y = float64(g.width)/2, float64(g.height)/2
	}

	e := ecs.CreateEntity(w)
	_ = ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
	_ = ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{MoveSpeed: g.cfg.Player.MoveSpeed})
	_ = ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
	_ = ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1})
	return e
}

func (g *Game) Update() error {
	g.frames++

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.setPaused(!g.paused)
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	g.pollWatcher()
	g.scheduler.Run(g.scene.World())
	return nil
}

func (g *Game) setPaused(paused bool) {
	g.paused = paused
	if paused {
		g.hud.Refresh()
	}
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	select {
	case err := <-g.watcher.Errors:
		if err != nil {
			logs.Warnf("watch: %v", err)
		}
	default:
	}

	changed, files := g.watcher.Changed()
	if !changed {
		return
	}
	for _, f := range files {
		if filepath.Base(f) == filepath.Base(g.configName) {
			g.reloadConfig()
			break
		}
	}
	g.reloadScene()
}

func (g *Game) reloadConfig() {
	cfg, err := prefabs.LoadClientSpec(g.configName)
	if err != nil {
		logs.Errorf("reload config: %v", err)
		return
	}
	// the map and window stay as launched
	cfg.Map, cfg.Window = g.cfg.Map, g.cfg.Window
	g.cfg = cfg
	if err := locale.SetLanguage(cfg.Locale); err != nil {
		logs.Warnf("%v", err)
	}
	if p, ok := ecs.Get(g.scene.World(), g.player, component.PlayerComponent.Kind()); ok {
		p.MoveSpeed = cfg.Player.MoveSpeed
	}
	g.renderer.PlayerWidth, g.renderer.PlayerHeight = cfg.Player.Width, cfg.Player.Height
	g.renderer.Debug = cfg.Debug
	logs.Infof("config reloaded")
}

// reloadScene rebuilds the items from the map on disk. Item states the
// player changed this session win over the configured ones.
func (g *Game) reloadScene() {
	m, err := maps.Load(g.cfg.Map)
	if err != nil {
		logs.Errorf("reload: %v", err)
		return
	}
	states := make(map[int]any, len(g.cfg.ItemStates))
	for id, st := range g.cfg.ItemStates {
		states[id] = st
	}
	for id, st := range g.scene.States() {
		states[id] = st
	}
	if err := g.scene.Load(m, states); err != nil {
		logs.Errorf("reload: %v", err)
		return
	}
	logs.Infof("scene reloaded from %s", g.cfg.Map)
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.scene.World())

	if g.cfg.Debug {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("Frames: %d    FPS: %.2f", g.frames, ebiten.ActualFPS()))
	}
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return float64(g.width), float64(g.height)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

// Close stops the file watcher.
func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

// logSignals reports item signals mirrored onto the event queue.
func (g *Game) logSignals(w *ecs.World) {
	if !g.cfg.Debug {
		return
	}
	for _, evt := range w.Events().Peek(item.EventSignal) {
		if sig, ok := evt.Data.(item.SignalEvent); ok {
			logs.Infof("item %d: %s %+v", sig.ItemID, sig.Signal, sig.State)
		}
	}
}
