package scene

import (
	"math"
	"testing"

	"github.com/milk9111/stagehand/physics"
	"github.com/milk9111/stagehand/render"
)

type fakeRenderable struct {
	enabled bool
	renders int
	node    *render.Sprite
}

func newFake() *fakeRenderable {
	return &fakeRenderable{enabled: true, node: render.NewSprite("x", 1, 1)}
}

func (f *fakeRenderable) Enabled() bool     { return f.enabled }
func (f *fakeRenderable) Render(dt float64) { f.renders++ }
func (f *fakeRenderable) Node() render.Node { return f.node }

type touchListener struct {
	scene *Scene
	log   *[]string
}

func (l touchListener) BeginContact(c *physics.Contact) {
	*l.log = append(*l.log, "contact")
	l.scene.Once(ActionFunc(func() { *l.log = append(*l.log, "once") }))
}
func (l touchListener) EndContact(c *physics.Contact) {}
func (l touchListener) PreSolve(c *physics.Contact)   {}
func (l touchListener) PostSolve(c *physics.Contact)  {}

func TestOnceRunsAfterPhysicsThenRepeat(t *testing.T) {
	s := New("world", 0, 0, 100, 100)
	var log []string
	s.World().SetListener(touchListener{scene: s, log: &log})
	s.World().CreateBody(physics.BodyDef{Type: physics.Dynamic, Shape: physics.Box{W: 10, H: 10}})
	s.World().CreateBody(physics.BodyDef{Type: physics.Static, Shape: physics.Box{W: 10, H: 10}, X: 5})
	s.Repeat(ActionFunc(func() { log = append(log, "repeat") }))

	s.Step(1.0 / 60)

	want := []string{"contact", "once", "repeat"}
	if len(log) != len(want) {
		t.Fatalf("expected %v, got %v", want, log)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, log)
		}
	}
}

func TestOnceRunsExactlyOnce(t *testing.T) {
	s := New("world", 0, 0, 100, 100)
	var n int
	s.Once(ActionFunc(func() { n++ }))
	s.Step(0.1)
	s.Step(0.1)
	if n != 1 {
		t.Fatalf("expected one run, got %d", n)
	}
	if s.PendingOnce() != 0 {
		t.Fatalf("queue should be empty")
	}
}

func TestOnceQueuedDuringDrainRunsNextStep(t *testing.T) {
	s := New("world", 0, 0, 100, 100)
	var order []int
	s.Once(ActionFunc(func() {
		order = append(order, 1)
		s.Once(ActionFunc(func() { order = append(order, 2) }))
	}))
	s.Step(0.1)
	if len(order) != 1 {
		t.Fatalf("nested event should wait for the next step, got %v", order)
	}
	s.Step(0.1)
	if len(order) != 2 {
		t.Fatalf("nested event should run on the next step, got %v", order)
	}
}

func TestInactiveEventsAreSkipped(t *testing.T) {
	s := New("world", 0, 0, 100, 100)
	var once, repeat int
	s.Once(ActionFunc(func() { once++ })).Cancel()
	ev := s.Repeat(ActionFunc(func() { repeat++ }))
	s.Step(0.1)
	ev.Active = false
	s.Step(0.1)
	if once != 0 || repeat != 1 {
		t.Fatalf("once=%d repeat=%d", once, repeat)
	}
	if s.RepeatCount() != 0 {
		t.Fatalf("cancelled repeat should be compacted away")
	}
}

func TestTeardownStopsDrain(t *testing.T) {
	s := New("world", 0, 0, 100, 100)
	var ran bool
	s.Once(ActionFunc(func() { s.Teardown() }))
	s.Once(ActionFunc(func() { ran = true }))
	s.Step(0.1)
	if ran {
		t.Fatalf("events after teardown should not run")
	}
	if !s.Closed() {
		t.Fatalf("scene should be closed")
	}
	s.Step(0.1)
}

func TestAddClampsZAndOrdersContainer(t *testing.T) {
	s := New("world", 0, 0, 100, 100)
	back := newFake()
	front := newFake()
	mid := newFake()

	s.Add(front, 7)
	s.Add(back, -9)
	s.Add(mid, 0)

	if z, _ := s.ZOf(front); z != MaxZ {
		t.Fatalf("expected z clamped to %d, got %d", MaxZ, z)
	}
	if z, _ := s.ZOf(back); z != MinZ {
		t.Fatalf("expected z clamped to %d, got %d", MinZ, z)
	}

	kids := s.Root().Children()
	if len(kids) != 3 || kids[0] != back.node || kids[1] != mid.node || kids[2] != front.node {
		t.Fatalf("container should be ordered back to front")
	}

	s.Move(back, 2)
	kids = s.Root().Children()
	if kids[2] != back.node {
		t.Fatalf("moved renderable should draw last")
	}

	if !s.Remove(mid) || s.Remove(mid) {
		t.Fatalf("remove should succeed once")
	}
	if len(s.Root().Children()) != 2 {
		t.Fatalf("expected two children after removal")
	}
}

func TestRenderSkipsDisabled(t *testing.T) {
	s := New("world", 0, 0, 100, 100)
	on := newFake()
	off := newFake()
	off.enabled = false
	s.Add(on, 0)
	s.Add(off, 0)
	s.Render(0.1)
	if on.renders != 1 || off.renders != 0 {
		t.Fatalf("on=%d off=%d", on.renders, off.renders)
	}
}

func TestTimers(t *testing.T) {
	s := New("hud", 0, 0, 100, 100)
	var after, every int
	s.After(0.25, func() { after++ })
	s.Every(0.1, func() { every++ })
	for i := 0; i < 10; i++ {
		s.Step(0.05)
	}
	if after != 1 {
		t.Fatalf("after should fire once, got %d", after)
	}
	if every < 3 || every > 5 {
		t.Fatalf("every should fire about 4 times in 0.5s, got %d", every)
	}
}

func TestStepSizeDoesNotChangeSimulatedTime(t *testing.T) {
	fall := func(dt float64, steps int) (float64, float64) {
		s := New("world", 0, 500, 100, 100)
		b := s.World().CreateBody(physics.BodyDef{Type: physics.Dynamic, Shape: physics.Box{W: 10, H: 10}})
		for i := 0; i < steps; i++ {
			s.Step(dt)
		}
		_, y := b.Position()
		return y, s.Elapsed()
	}

	fine, fineElapsed := fall(1.0/60, 60)
	coarse, coarseElapsed := fall(1.0/30, 30)

	if math.Abs(fineElapsed-coarseElapsed) > 1e-9 {
		t.Fatalf("elapsed differs: %v vs %v", fineElapsed, coarseElapsed)
	}
	if fine <= 0 || math.Abs(fine-coarse) > 0.1*fine {
		t.Fatalf("one simulated second should fall about as far at either step: %v vs %v", fine, coarse)
	}
}
