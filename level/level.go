package level

import (
	"fmt"
	"image/color"

	"github.com/milk9111/stagehand/actor"
	"github.com/milk9111/stagehand/input"
	"github.com/milk9111/stagehand/scene"
)

// Level is the handle content callbacks use to populate a screen. It is
// valid until the next transition.
type Level struct {
	m       *Manager
	mode    Mode
	index   int
	session *Session

	world    *scene.Scene
	hud      *scene.Scene
	stage    *actor.Stage
	hudStage *actor.Stage
}

func newLevel(m *Manager, mode Mode, index int) *Level {
	w, h := m.opts.Width, m.opts.Height
	l := &Level{
		m:     m,
		mode:  mode,
		index: index,
		world: scene.New("world", m.opts.GravityX, m.opts.GravityY, w, h),
		hud:   scene.New("hud", 0, 0, w, h),
	}
	l.session = NewSession(func(won bool) {
		if m.current == l {
			m.EndLevel(won)
		}
	})
	l.stage = actor.NewStage(l.world, l.session, m.opts.Sounds)
	l.hudStage = actor.NewStage(l.hud, l.session, m.opts.Sounds)
	if m.opts.StageObserver != nil {
		l.stage.SetObserver(m.opts.StageObserver)
		l.hudStage.SetObserver(m.opts.StageObserver)
	}
	return l
}

func (l *Level) teardown() {
	l.world.Teardown()
	l.hud.Teardown()
}

func (l *Level) Manager() *Manager      { return l.m }
func (l *Level) Mode() Mode             { return l.mode }
func (l *Level) Index() int             { return l.index }
func (l *Level) Session() *Session      { return l.session }
func (l *Level) World() *scene.Scene    { return l.world }
func (l *Level) HUD() *scene.Scene      { return l.hud }
func (l *Level) Stage() *actor.Stage    { return l.stage }
func (l *Level) HUDStage() *actor.Stage { return l.hudStage }
func (l *Level) Input() *input.Bindings { return l.m.input }

// SetGravity changes the world gravity in pixels/s², +Y down.
func (l *Level) SetGravity(x, y float64) {
	l.world.World().SetGravity(x, y)
}

// SetCameraBounds keeps the camera inside (0,0)-(w,h).
func (l *Level) SetCameraBounds(w, h float64) {
	l.world.Camera().SetBounds(0, 0, w, h)
}

// AddWorldEdges closes the rectangle (0,0)-(w,h) with static edges that
// belong to no actor.
func (l *Level) AddWorldEdges(w, h float64) {
	l.world.World().AddBounds(w, h)
}

// AddBoundingBox surrounds the area with four thin obstacles.
func (l *Level) AddBoundingBox(x0, y0, x1, y1 float64, image string) []*actor.Obstacle {
	const t = 1.0
	boxes := [][4]float64{
		{x0, y0 - t, x1 - x0, t},
		{x0, y1, x1 - x0, t},
		{x0 - t, y0, t, y1 - y0},
		{x1, y0, t, y1 - y0},
	}
	out := make([]*actor.Obstacle, 0, len(boxes))
	for _, b := range boxes {
		out = append(out, l.stage.MakeObstacle(b[0], b[1], b[2], b[3], image, actor.AsBox))
	}
	return out
}

// ChaseActor makes the camera follow a, shifted by a's camera offset.
func (l *Level) ChaseActor(a *actor.Actor) {
	if a == nil {
		l.world.Camera().StopChase()
		return
	}
	ox, oy := a.CameraOffset()
	l.world.Camera().Chase(a.CameraTarget, ox, oy)
}

func (l *Level) SetZoom(z float64) {
	l.world.Camera().SetZoom(z)
}

// ZoomTo eases the camera zoom to z over seconds.
func (l *Level) ZoomTo(z, seconds float64) {
	l.world.Camera().ZoomTo(z, seconds)
}

// SetMusic loops the named track until the next transition.
func (l *Level) SetMusic(name string) {
	l.m.music.Play(name)
}

func (l *Level) PlaySound(name string) {
	if s := l.m.opts.Sounds.Get(name); s != nil {
		s.Play()
	}
}

func (l *Level) SetVictoryDestination(heroes int) { l.session.SetVictoryDestination(heroes) }
func (l *Level) SetVictoryGoodieCount(t [4]int)   { l.session.SetVictoryGoodieCount(t) }
func (l *Level) SetVictoryEnemyCount(n int)       { l.session.SetVictoryEnemyCount(n) }
func (l *Level) SetLoseCountdown(seconds float64) { l.session.SetLoseCountdown(seconds) }
func (l *Level) SetWinCountdown(seconds float64)  { l.session.SetWinCountdown(seconds) }
func (l *Level) SetWinText(t string)              { l.session.SetWinText(t) }
func (l *Level) SetLoseText(t string)             { l.session.SetLoseText(t) }

// EndLevel ends the level now.
func (l *Level) EndLevel(won bool) {
	if l.m.current == l {
		l.m.EndLevel(won)
	}
}

// AddText puts static text on the HUD.
func (l *Level) AddText(x, y, size float64, c color.Color, value string) *Display {
	return l.AddDisplay(x, y, size, c, func() string { return value })
}

// AddDisplay puts text on the HUD that is refreshed from fn every frame.
func (l *Level) AddDisplay(x, y, size float64, c color.Color, fn func() string) *Display {
	d := newDisplay(x, y, size, c, fn)
	l.hud.Add(d, 0)
	return d
}

// AddGoodieDisplay shows the count of goodie type i.
func (l *Level) AddGoodieDisplay(i int, x, y, size float64, c color.Color, prefix string) *Display {
	return l.AddDisplay(x, y, size, c, func() string {
		counts := l.session.GoodieCounts()
		if i < 0 || i >= len(counts) {
			return prefix
		}
		return fmt.Sprintf("%s%d", prefix, counts[i])
	})
}

// AddCountdownDisplay shows the lose countdown in whole seconds while it is
// running.
func (l *Level) AddCountdownDisplay(x, y, size float64, c color.Color) *Display {
	return l.AddDisplay(x, y, size, c, func() string {
		left, ok := l.session.LoseCountdown()
		if !ok {
			return ""
		}
		return fmt.Sprintf("%.0f", left)
	})
}

// AddStopwatchDisplay shows the seconds spent in the level.
func (l *Level) AddStopwatchDisplay(x, y, size float64, c color.Color) *Display {
	return l.AddDisplay(x, y, size, c, func() string {
		return fmt.Sprintf("%.1f", l.session.Elapsed())
	})
}

func (l *Level) OnKeyDown(k input.Key, fn func())           { l.m.input.OnKeyDown(k, fn) }
func (l *Level) OnKeyUp(k input.Key, fn func())             { l.m.input.OnKeyUp(k, fn) }
func (l *Level) OnKeyHold(k input.Key, fn func(dt float64)) { l.m.input.OnKeyHold(k, fn) }
func (l *Level) OnClick(fn func(x, y float64))              { l.m.input.OnClick(fn) }
func (l *Level) AddRegion(r *input.Region)                  { l.m.input.AddRegion(r) }

func (l *Level) showMessage(text string) {
	w, h := l.m.opts.Width, l.m.opts.Height
	d := l.AddText(w/2, h/2, 32, color.White, text)
	d.text.Centered = true
	d.FadeIn(0.5)
}
