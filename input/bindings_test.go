package input

import "testing"

func TestKeyDispatch(t *testing.T) {
	b := NewBindings()
	var downs, ups, any int
	b.OnKeyDown("Space", func() { downs++ })
	b.OnKeyUp("space", func() { ups++ })
	b.OnAnyKey(func() { any++ })

	b.DispatchKeyDown("SPACE")
	b.DispatchKeyUp("Space")
	b.DispatchKeyDown("A")

	if downs != 1 || ups != 1 || any != 2 {
		t.Fatalf("downs=%d ups=%d any=%d", downs, ups, any)
	}
}

func TestResetDuringDispatchStopsHandlers(t *testing.T) {
	b := NewBindings()
	var second bool
	b.OnKeyDown("Enter", func() { b.Reset() })
	b.OnKeyDown("Enter", func() { second = true })

	b.DispatchKeyDown("Enter")
	if second {
		t.Fatalf("handlers after Reset should not run")
	}
	if !b.Empty() {
		t.Fatalf("bindings should be empty after Reset")
	}
}

func TestRegionClaimsPressBeforeClick(t *testing.T) {
	cases := []struct {
		name       string
		x, y       float64
		wantRegion bool
		wantClick  bool
	}{
		{"inside_region", 5, 5, true, false},
		{"outside_region", 50, 50, false, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b := NewBindings()
			var region, click bool
			b.AddRegion(&Region{X: 0, Y: 0, W: 10, H: 10, Down: func(x, y float64) { region = true }})
			b.OnClick(func(x, y float64) { click = true })
			b.DispatchPress(c.x, c.y)
			if region != c.wantRegion || click != c.wantClick {
				t.Fatalf("region=%v click=%v", region, click)
			}
		})
	}
}

func TestHoldHandlers(t *testing.T) {
	b := NewBindings()
	var keyHeld, regionHeld float64
	b.OnKeyHold("ArrowLeft", func(dt float64) { keyHeld += dt })
	r := &Region{W: 10, H: 10, Hold: func(dt float64) { regionHeld += dt }}
	b.AddRegion(r)

	b.DispatchKeyDown("ArrowLeft")
	b.DispatchPress(1, 1)
	b.Tick(0.5)
	b.DispatchKeyUp("ArrowLeft")
	b.DispatchRelease(1, 1)
	b.Tick(0.5)

	if keyHeld != 0.5 || regionHeld != 0.5 {
		t.Fatalf("keyHeld=%v regionHeld=%v", keyHeld, regionHeld)
	}
}
