package platform

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/stagehand/input"
)

// Poller turns ebiten's per-frame input state into Bindings dispatches.
// Touches behave like a left mouse button.
type Poller struct {
	keys    []ebiten.Key
	touches []ebiten.TouchID
	// last known position of each active touch; released touches report no
	// position of their own
	touchAt map[ebiten.TouchID][2]float64
}

func NewPoller() *Poller {
	return &Poller{touchAt: make(map[ebiten.TouchID][2]float64)}
}

// Poll dispatches this frame's presses and releases. Keys for which skip
// returns true are left to the caller.
func (p *Poller) Poll(b *input.Bindings, skip func(ebiten.Key) bool) {
	p.keys = inpututil.AppendJustPressedKeys(p.keys[:0])
	for _, k := range p.keys {
		if skip != nil && skip(k) {
			continue
		}
		b.DispatchKeyDown(KeyName(k))
	}
	p.keys = inpututil.AppendJustReleasedKeys(p.keys[:0])
	for _, k := range p.keys {
		if skip != nil && skip(k) {
			continue
		}
		b.DispatchKeyUp(KeyName(k))
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		b.DispatchPress(float64(x), float64(y))
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		b.DispatchRelease(float64(x), float64(y))
	}

	p.touches = inpututil.AppendJustPressedTouchIDs(p.touches[:0])
	for _, id := range p.touches {
		x, y := ebiten.TouchPosition(id)
		p.touchAt[id] = [2]float64{float64(x), float64(y)}
		b.DispatchPress(float64(x), float64(y))
	}
	for id := range p.touchAt {
		if inpututil.IsTouchJustReleased(id) {
			pos := p.touchAt[id]
			delete(p.touchAt, id)
			b.DispatchRelease(pos[0], pos[1])
			continue
		}
		x, y := ebiten.TouchPosition(id)
		p.touchAt[id] = [2]float64{float64(x), float64(y)}
	}
}

// KeyName is the binding name of k: ebiten's name lowercased, with digit
// keys reduced to the digit.
func KeyName(k ebiten.Key) input.Key {
	name := strings.ToLower(k.String())
	if d, ok := strings.CutPrefix(name, "digit"); ok {
		name = d
	}
	return input.Key(name)
}
