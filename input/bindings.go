package input

import "strings"

const anyKey Key = "*"

// Key names follow ebiten.Key.String(), e.g. "Space", "ArrowLeft", "A".
type Key string

// Region is a screen rectangle that behaves like an on-screen button.
type Region struct {
	X, Y, W, H float64
	Down       func(x, y float64)
	Up         func(x, y float64)
	// Hold runs every tick while the region is pressed.
	Hold func(dt float64)

	pressed bool
}

func (r *Region) contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// Bindings holds every input handler registered by the active mode. The
// level manager calls Reset on each transition so outgoing handlers never
// fire in the next mode.
type Bindings struct {
	down    map[Key][]func()
	up      map[Key][]func()
	hold    map[Key][]func(dt float64)
	clicks  []func(x, y float64)
	regions []*Region

	held map[Key]bool
	// gen changes on every Reset so dispatch loops can tell that the
	// handler set they were iterating is gone.
	gen uint64
}

func NewBindings() *Bindings {
	b := &Bindings{}
	b.Reset()
	return b
}

func normalize(k Key) Key {
	return Key(strings.ToLower(strings.TrimSpace(string(k))))
}

func (b *Bindings) OnKeyDown(k Key, fn func()) {
	if b == nil || fn == nil {
		return
	}
	k = normalize(k)
	b.down[k] = append(b.down[k], fn)
}

func (b *Bindings) OnKeyUp(k Key, fn func()) {
	if b == nil || fn == nil {
		return
	}
	k = normalize(k)
	b.up[k] = append(b.up[k], fn)
}

// OnKeyHold runs fn every tick while k is held.
func (b *Bindings) OnKeyHold(k Key, fn func(dt float64)) {
	if b == nil || fn == nil {
		return
	}
	k = normalize(k)
	b.hold[k] = append(b.hold[k], fn)
}

func (b *Bindings) OnClick(fn func(x, y float64)) {
	if b == nil || fn == nil {
		return
	}
	b.clicks = append(b.clicks, fn)
}

// OnAnyKey registers fn for every key press. Win and lose screens use it.
func (b *Bindings) OnAnyKey(fn func()) {
	b.OnKeyDown(anyKey, fn)
}

func (b *Bindings) AddRegion(r *Region) {
	if b == nil || r == nil {
		return
	}
	b.regions = append(b.regions, r)
}

// Reset drops every handler and forgets held keys.
func (b *Bindings) Reset() {
	if b == nil {
		return
	}
	b.down = make(map[Key][]func())
	b.up = make(map[Key][]func())
	b.hold = make(map[Key][]func(dt float64))
	b.clicks = nil
	b.regions = nil
	b.held = make(map[Key]bool)
	b.gen++
}

// Empty reports whether nothing is registered.
func (b *Bindings) Empty() bool {
	if b == nil {
		return true
	}
	return len(b.down) == 0 && len(b.up) == 0 && len(b.hold) == 0 && len(b.clicks) == 0 && len(b.regions) == 0
}

// DispatchKeyDown runs the handlers for k. Handlers may call Reset (for
// example by triggering a mode change); dispatch stops once that happens.
func (b *Bindings) DispatchKeyDown(k Key) {
	if b == nil {
		return
	}
	k = normalize(k)
	b.held[k] = true
	gen := b.gen
	fns := append(append([]func(){}, b.down[k]...), b.down[anyKey]...)
	for _, fn := range fns {
		fn()
		if b.gen != gen {
			return
		}
	}
}

func (b *Bindings) DispatchKeyUp(k Key) {
	if b == nil {
		return
	}
	k = normalize(k)
	delete(b.held, k)
	gen := b.gen
	for _, fn := range b.up[k] {
		fn()
		if b.gen != gen {
			return
		}
	}
}

// DispatchPress handles a mouse or touch press at screen coordinates.
// Regions take the press first; clicks fire only if no region claimed it.
func (b *Bindings) DispatchPress(x, y float64) {
	if b == nil {
		return
	}
	gen := b.gen
	claimed := false
	for _, r := range b.regions {
		if !r.contains(x, y) {
			continue
		}
		claimed = true
		r.pressed = true
		if r.Down != nil {
			r.Down(x, y)
		}
		if b.gen != gen {
			return
		}
	}
	if claimed {
		return
	}
	for _, fn := range b.clicks {
		fn(x, y)
		if b.gen != gen {
			return
		}
	}
}

func (b *Bindings) DispatchRelease(x, y float64) {
	if b == nil {
		return
	}
	gen := b.gen
	for _, r := range b.regions {
		if !r.pressed {
			continue
		}
		r.pressed = false
		if r.Up != nil {
			r.Up(x, y)
		}
		if b.gen != gen {
			return
		}
	}
}

// Tick runs hold handlers for held keys and pressed regions.
func (b *Bindings) Tick(dt float64) {
	if b == nil {
		return
	}
	gen := b.gen
	for k := range b.held {
		for _, fn := range b.hold[k] {
			fn(dt)
			if b.gen != gen {
				return
			}
		}
	}
	for _, r := range b.regions {
		if r.pressed && r.Hold != nil {
			r.Hold(dt)
			if b.gen != gen {
				return
			}
		}
	}
}

