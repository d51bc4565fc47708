// Package platform runs a level manager inside an ebiten window.
package platform

import (
	"fmt"
	"image/color"

	"github.com/charmbracelet/log"
	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/stagehand/common"
	"github.com/milk9111/stagehand/level"
	"github.com/milk9111/stagehand/levels"
)

var background = color.RGBA{R: 0x1d, G: 0x22, B: 0x2b, A: 0xff}

// Options configure a Game.
type Options struct {
	Width, Height int
	Step          float64
	Debug         bool

	Catalog *levels.Catalog
	// Watcher, when set, triggers a catalog refresh on every event.
	Watcher *levels.Watcher
}

// Game implements ebiten.Game around a level manager.
type Game struct {
	manager  *level.Manager
	renderer *Renderer
	poller   *Poller
	opts     Options

	paused bool
	pause  *ebitenui.UI

	frames int
	logger *log.Logger
}

func NewGame(m *level.Manager, r *Renderer, opts Options) *Game {
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = common.BaseWidth, common.BaseHeight
	}
	if opts.Step <= 0 {
		opts.Step = common.FixedStep
	}
	g := &Game{
		manager:  m,
		renderer: r,
		poller:   NewPoller(),
		opts:     opts,
		logger:   common.Logger("game"),
	}
	g.pause = NewPauseUI(opts.Width, opts.Height, g.resume, g.quit)
	return g
}

func (g *Game) resume() {
	g.paused = false
}

func (g *Game) quit() {
	g.paused = false
	g.manager.DoChooser(g.manager.Index(level.Chooser))
}

func (g *Game) Update() error {
	g.frames++
	g.drainWatcher()

	escape := inpututil.IsKeyJustPressed(ebiten.KeyEscape)
	if escape && g.manager.Mode() == level.Play {
		g.paused = !g.paused
	}
	if g.paused {
		if g.manager.Mode() != level.Play {
			g.paused = false
		} else {
			g.pause.Update()
			return nil
		}
	}

	// escape is consumed by the pause toggle while playing
	skip := func(k ebiten.Key) bool {
		return k == ebiten.KeyEscape && g.manager.Mode() == level.Play
	}
	g.poller.Poll(g.manager.Input(), skip)
	g.manager.Tick(g.opts.Step)
	return nil
}

func (g *Game) drainWatcher() {
	w := g.opts.Watcher
	if w == nil || g.opts.Catalog == nil {
		return
	}
	for {
		select {
		case name, ok := <-w.Events:
			if !ok {
				g.opts.Watcher = nil
				return
			}
			g.logger.Info("content changed", "file", name)
			if err := g.opts.Catalog.Refresh(g.manager); err != nil {
				g.logger.Error("reload content", "err", err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				g.opts.Watcher = nil
				return
			}
			g.logger.Warn("watcher", "err", err)
		default:
			return
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	if l := g.manager.Current(); l != nil {
		g.renderer.DrawScene(screen, l.World())
		g.renderer.DrawScene(screen, l.HUD())
	}
	if g.opts.Debug {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("mode: %s  frames: %d  FPS: %.2f", g.manager.Mode(), g.frames, ebiten.ActualFPS()))
	}
	if g.paused {
		g.pause.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return float64(g.opts.Width), float64(g.opts.Height)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.opts.Width, g.opts.Height
}
