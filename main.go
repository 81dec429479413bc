package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/virtualoffice/locale"
	"github.com/milk9111/virtualoffice/logs"
	"github.com/milk9111/virtualoffice/prefabs"
)

func main() {
	configName := flag.String("config", "client.yaml", "client config in prefabs/ (disk first, embedded fallback)")
	mapName := flag.String("map", "", "map name in maps/ (.json optional), overrides the config")
	debug := flag.Bool("debug", false, "enable debug mode")
	watch := flag.Bool("watch", false, "reload maps, prefabs and scripts when they change on disk")
	lang := flag.String("lang", "", "UI language (en, fr), overrides the config")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	cfg, err := prefabs.LoadClientSpec(*configName)
	if err != nil {
		log.Fatal(err)
	}
	if *mapName != "" {
		cfg.Map = *mapName
	}
	if *lang != "" {
		cfg.Locale = *lang
	}
	cfg.Debug = cfg.Debug || *debug
	cfg.Watch = cfg.Watch || *watch

	if err := locale.SetLanguage(cfg.Locale); err != nil {
		logs.Warnf("%v, using %s", err, locale.Fallback)
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)

	game, err := NewGame(*configName, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
