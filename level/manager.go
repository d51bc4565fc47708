package level

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/milk9111/stagehand/actor"
	"github.com/milk9111/stagehand/audio"
	"github.com/milk9111/stagehand/common"
	"github.com/milk9111/stagehand/input"
)

// Observer is told about manager activity. The telemetry package
// implements it.
type Observer interface {
	Transition(mode Mode)
	LevelEnded(won bool)
	Frame(step time.Duration, events int)
}

type nopObserver struct{}

func (nopObserver) Transition(Mode)          {}
func (nopObserver) LevelEnded(bool)          {}
func (nopObserver) Frame(time.Duration, int) {}

// Options configure a Manager. Zero values fall back to the defaults in
// common.
type Options struct {
	Width    float64
	Height   float64
	GravityX float64
	GravityY float64

	Sounds        *audio.Library
	Input         *input.Bindings
	Observer      Observer
	StageObserver actor.Observer
}

// Manager owns the current world and HUD scenes and moves between modes.
type Manager struct {
	content Content
	opts    Options
	music   *audio.Music
	input   *input.Bindings

	mode    Mode
	indices map[Mode]int
	current *Level

	observer Observer
	logger   *log.Logger
}

func NewManager(content Content, opts Options) *Manager {
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = common.BaseWidth, common.BaseHeight
	}
	if opts.Sounds == nil {
		opts.Sounds = audio.NewLibrary()
	}
	if opts.Input == nil {
		opts.Input = input.NewBindings()
	}
	if opts.Observer == nil {
		opts.Observer = nopObserver{}
	}
	return &Manager{
		content:  content,
		opts:     opts,
		music:    audio.NewMusic(opts.Sounds),
		input:    opts.Input,
		indices:  make(map[Mode]int),
		observer: opts.Observer,
		logger:   common.Logger("level"),
	}
}

func (m *Manager) Mode() Mode               { return m.mode }
func (m *Manager) Current() *Level          { return m.current }
func (m *Manager) Input() *input.Bindings   { return m.input }
func (m *Manager) Music() *audio.Music      { return m.music }
func (m *Manager) Content() Content         { return m.content }
func (m *Manager) Size() (float64, float64) { return m.opts.Width, m.opts.Height }

// Index returns the sub-index last used for mode.
func (m *Manager) Index(mode Mode) int {
	return m.indices[mode]
}

// SetContent replaces the content used by later transitions. Hot reload
// uses it before restarting the current level.
func (m *Manager) SetContent(c Content) {
	m.content = c
}

// transition tears the current scenes down and builds an empty pair for
// mode. Input handlers and music of the outgoing screen are dropped.
func (m *Manager) transition(mode Mode, index int) *Level {
	m.music.Stop()
	m.input.Reset()
	if m.current != nil {
		m.current.teardown()
	}
	m.mode = mode
	m.indices[mode] = index
	l := newLevel(m, mode, index)
	m.current = l
	m.observer.Transition(mode)
	m.logger.Debug("transition", "mode", mode, "index", index, "session", l.session.ID())
	return l
}

func (m *Manager) DoSplash() {
	l := m.transition(Splash, 0)
	if m.content.Splash != nil {
		m.content.Splash(l)
	}
}

func (m *Manager) DoHelp(i int) {
	l := m.transition(Help, i)
	if m.content.Help != nil {
		m.content.Help(l, i)
	}
}

func (m *Manager) DoChooser(i int) {
	l := m.transition(Chooser, i)
	if m.content.Chooser != nil {
		m.content.Chooser(l, i)
	}
}

func (m *Manager) DoStore(i int) {
	l := m.transition(Store, i)
	if m.content.Store != nil {
		m.content.Store(l, i)
	}
}

// DoPlay starts level i with fresh counters.
func (m *Manager) DoPlay(i int) {
	l := m.transition(Play, i)
	if m.content.Play != nil {
		m.content.Play(l, i)
	}
}

// DoWin shows the win screen for level i. Any key or click moves on to the
// next level, or back to the chooser after the last one.
func (m *Manager) DoWin(i int) {
	text := defaultWinText
	if m.current != nil {
		text = m.current.session.winText
	}
	l := m.transition(Win, i)
	l.showMessage(text)
	next := func() {
		if i+1 < m.content.Levels {
			m.DoPlay(i + 1)
			return
		}
		m.DoChooser(m.indices[Chooser])
	}
	m.input.OnAnyKey(next)
	m.input.OnClick(func(x, y float64) { next() })
}

// DoLose shows the lose screen for level i. Any key or click retries.
func (m *Manager) DoLose(i int) {
	text := defaultLoseText
	if m.current != nil {
		text = m.current.session.loseText
	}
	l := m.transition(Lose, i)
	l.showMessage(text)
	retry := func() { m.DoPlay(i) }
	m.input.OnAnyKey(retry)
	m.input.OnClick(func(x, y float64) { retry() })
}

// EndLevel leaves the level being played. Calls outside play mode are
// ignored, which makes a second call after the transition a no-op.
func (m *Manager) EndLevel(won bool) {
	if m.mode != Play {
		return
	}
	i := m.indices[Play]
	m.logger.Info("level ended", "level", i, "won", won, "elapsed", m.current.session.Elapsed())
	m.observer.LevelEnded(won)
	if won {
		m.DoWin(i)
		return
	}
	m.DoLose(i)
}

// Tick runs one frame: input holds, world step, HUD step, countdowns and
// rendering. A transition triggered part way stops the rest of the frame.
func (m *Manager) Tick(dt float64) {
	l := m.current
	if l == nil {
		return
	}

	m.input.Tick(dt)
	if m.current != l {
		return
	}

	before := l.world.Executed()
	start := time.Now()
	l.world.Step(dt)
	stepped := time.Since(start)
	events := int(l.world.Executed() - before)
	if m.current != l {
		m.observer.Frame(stepped, events)
		return
	}

	l.hud.Step(dt)
	if m.current != l {
		return
	}

	if m.mode == Play {
		if ended, won := l.session.tick(dt); ended {
			m.EndLevel(won)
			return
		}
	}

	l.world.Render(dt)
	l.hud.Render(dt)
	m.observer.Frame(stepped, events)
}
