package level

import (
	"image/color"

	"github.com/milk9111/stagehand/render"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Display is a HUD text whose value is pulled from a callback every frame.
type Display struct {
	text   *render.Text
	update func() string
	fade   *gween.Tween
}

func (d *Display) Enabled() bool      { return true }
func (d *Display) Node() render.Node  { return d.text }
func (d *Display) Text() *render.Text { return d.text }

// FadeIn makes the text go from transparent to opaque over seconds.
func (d *Display) FadeIn(seconds float64) {
	if seconds <= 0 {
		d.text.Alpha = 1
		d.fade = nil
		return
	}
	d.text.Alpha = 0
	d.fade = gween.New(0, 1, float32(seconds), ease.InOutQuad)
}

func (d *Display) Render(dt float64) {
	if d.update != nil {
		d.text.SetText(d.update())
	}
	if d.fade != nil {
		a, done := d.fade.Update(float32(dt))
		d.text.Alpha = float64(a)
		if done {
			d.fade = nil
		}
	}
}

func newDisplay(x, y, size float64, c color.Color, update func() string) *Display {
	d := &Display{
		text:   render.NewText("", x, y, size, c),
		update: update,
	}
	if update != nil {
		d.text.SetText(update())
	}
	return d
}
