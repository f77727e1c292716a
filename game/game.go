// Package game is the ebiten front-end: it feeds pointer gestures to a play
// mode and draws the scene the mode keeps up to date.
package game

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"go.uber.org/zap"

	"github.com/ncskier/CapriciousCroissants-sub000/config"
	"github.com/ncskier/CapriciousCroissants-sub000/logging"
	"github.com/ncskier/CapriciousCroissants-sub000/play"
	"github.com/ncskier/CapriciousCroissants-sub000/prefabs"
	"github.com/ncskier/CapriciousCroissants-sub000/render"
	"github.com/ncskier/CapriciousCroissants-sub000/turn"
)

type Game struct {
	cfg      *config.Config
	lib      *prefabs.Library
	log      *zap.Logger
	timeline *render.Timeline
	mode     *play.Mode
	watcher  *prefabs.Watcher

	names   []string
	current int

	layout  layout
	gesture gesture
	result  *resultUI
	shown   bool
}

// New starts the game on level. An empty level starts on the configured
// first level.
func New(cfg *config.Config, lib *prefabs.Library, store play.Settings, log *zap.Logger, level string) (*Game, error) {
	log = logging.OrNop(log)
	names, err := lib.LevelNames()
	if err != nil {
		return nil, err
	}
	if level == "" {
		level = cfg.Levels.First
	}
	spec, err := lib.LoadLevel(level)
	if err != nil {
		return nil, err
	}

	tl := render.NewTimeline(cfg.Animation)
	mode, err := play.New(spec, play.Options{
		Library:  lib,
		Scene:    tl,
		Settings: store,
		Log:      log,
		TileSize: cfg.Board.TileSize,
		AxisLock: cfg.Board.AxisLock,
	})
	if err != nil {
		return nil, err
	}

	g := &Game{
		cfg:      cfg,
		lib:      lib,
		log:      log,
		timeline: tl,
		mode:     mode,
		names:    names,
		current:  indexOf(names, spec.Name),
		result:   newResultUI(cfg.Window.Width, cfg.Window.Height),
	}
	g.relayout()

	if cfg.Levels.Watch && lib.Dir != "" {
		w, err := lib.Watch()
		if err != nil {
			log.Warn("level watcher disabled", zap.String("dir", lib.Dir), zap.Error(err))
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}

func (g *Game) relayout() {
	g.layout = newLayout(g.cfg.Window.Width, g.cfg.Window.Height, g.cfg.Board.TileSize, g.mode.Board().Bounds())
	g.gesture.cancel()
	g.shown = false
}

func (g *Game) Update() error {
	g.drainWatcher()

	switch g.mode.Phase() {
	case play.PhaseWon, play.PhaseLost:
		g.showResult()
		g.result.ui.Update()
		switch g.result.take() {
		case actionRetry:
			g.load(g.mode.Level().Name)
		case actionNext:
			if g.current >= 0 && g.current+1 < len(g.names) {
				g.load(g.names[g.current+1])
			}
		}
		return g.mode.Update(frameTime(), turn.Input{})
	}

	in := g.gesture.poll(g.layout)
	return g.mode.Update(frameTime(), in)
}

func frameTime() time.Duration {
	return time.Second / time.Duration(ebiten.TPS())
}

func (g *Game) showResult() {
	if g.shown {
		return
	}
	g.shown = true
	spec := g.mode.Level()
	if g.mode.Phase() == play.PhaseLost {
		g.result.show("Defeated", fmt.Sprintf("%s: the leader fell after %d moves", spec.Name, g.mode.Moves()), false)
		return
	}
	detail := fmt.Sprintf("%s: %d moves, %s", spec.Name, g.mode.Moves(), strings.Repeat("*", g.mode.Stars()))
	if stars, moves, ok := g.mode.Best(); ok {
		detail += fmt.Sprintf("  (best %s in %d)", strings.Repeat("*", stars), moves)
	}
	g.result.show("Victory", detail, g.current >= 0 && g.current+1 < len(g.names))
}

// load switches to the named level. A level that fails to load is logged and
// the current one keeps running.
func (g *Game) load(name string) {
	spec, err := g.lib.LoadLevel(name)
	if err == nil {
		err = g.mode.Reset(spec)
	}
	if err != nil {
		g.log.Warn("load level", zap.String("level", name), zap.Error(err))
		return
	}
	if names, err := g.lib.LevelNames(); err == nil {
		g.names = names
	}
	g.current = indexOf(g.names, spec.Name)
	g.relayout()
}

// drainWatcher reloads the current level when any level, prefab or script
// file changed on disk.
func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	changed := false
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.log.Debug("file changed", zap.String("path", filepath.ToSlash(path)))
			changed = true
			continue
		case err, ok := <-g.watcher.Errors:
			if ok {
				g.log.Warn("watcher", zap.Error(err))
			}
			continue
		default:
		}
		break
	}
	if changed {
		g.load(g.mode.Level().Name)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.drawBoard(screen)

	spec := g.mode.Level()
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s  moves: %d  phase: %s", spec.Name, g.mode.Moves(), g.mode.Phase()), 8, 8)

	if p := g.mode.Phase(); p == play.PhaseWon || p == play.PhaseLost {
		g.result.ui.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return float64(g.cfg.Window.Width), float64(g.cfg.Window.Height)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

// Close stops the watcher and takes the level off the scene.
func (g *Game) Close() error {
	g.mode.Dispose()
	if g.watcher != nil {
		return g.watcher.Close()
	}
	return nil
}
