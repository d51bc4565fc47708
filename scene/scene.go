package scene

import (
	"github.com/milk9111/stagehand/common"
	"github.com/milk9111/stagehand/physics"
	"github.com/milk9111/stagehand/render"
)

const (
	MinZ = -2
	MaxZ = 2

	planeCount = MaxZ - MinZ + 1
)

// Renderable is anything the scene draws. Disabled renderables are skipped
// by Render but keep their plane slot.
type Renderable interface {
	Enabled() bool
	Render(dt float64)
	Node() render.Node
}

// Scene owns one physics world, the z-ordered renderables drawn into its
// root container and the one-shot and repeating event queues.
type Scene struct {
	name   string
	world  *physics.World
	root   *render.Container
	camera *render.Camera

	planes [planeCount][]Renderable

	once   queue
	repeat queue

	elapsed  float64
	frames   uint64
	executed uint64
	closed   bool
}

// New creates a scene whose world uses the given gravity and whose camera
// covers a screen of w by h pixels.
func New(name string, gx, gy, w, h float64) *Scene {
	return &Scene{
		name:   name,
		world:  physics.NewWorld(gx, gy),
		root:   render.NewContainer(),
		camera: render.NewCamera(w, h),
	}
}

func (s *Scene) Name() string            { return s.name }
func (s *Scene) World() *physics.World   { return s.world }
func (s *Scene) Root() *render.Container { return s.root }
func (s *Scene) Camera() *render.Camera  { return s.camera }
func (s *Scene) Elapsed() float64        { return s.elapsed }
func (s *Scene) Frames() uint64          { return s.frames }
func (s *Scene) Closed() bool            { return s == nil || s.closed }
func (s *Scene) PendingOnce() int        { return s.once.len() }
func (s *Scene) RepeatCount() int        { return s.repeat.len() }

// Executed returns how many one-shot events have run so far.
func (s *Scene) Executed() uint64 { return s.executed }

// Once queues a to run after the next physics step.
func (s *Scene) Once(a Action) *Event {
	e := &Event{Active: true, Action: a}
	if s == nil || s.closed {
		e.Active = false
		return e
	}
	s.once.push(e)
	return e
}

// Repeat queues a to run every step until its event is cancelled.
func (s *Scene) Repeat(a Action) *Event {
	e := &Event{Active: true, Action: a}
	if s == nil || s.closed {
		e.Active = false
		return e
	}
	s.repeat.push(e)
	return e
}

// Step advances the world by dt, then runs the queued one-shot
// events exactly once and then every active repeating event. Contact
// callbacks fire inside the physics step; the queues only run after it.
func (s *Scene) Step(dt float64) {
	if s == nil || s.closed {
		return
	}
	s.world.Step(dt)

	for _, e := range s.once.drain() {
		if e.run() {
			s.executed++
		}
		if s.closed {
			return
		}
	}

	for _, e := range s.repeat.items {
		e.run()
		if s.closed {
			return
		}
	}
	s.repeat.compact()

	s.elapsed += dt
	s.frames++
}

// Render draws every enabled renderable plane by plane, then moves the
// camera.
func (s *Scene) Render(dt float64) {
	if s == nil || s.closed {
		return
	}
	for i := range s.planes {
		for _, r := range s.planes[i] {
			if r.Enabled() {
				r.Render(dt)
			}
		}
	}
	s.camera.Update(dt)
}

// Add places r on plane z. Out of range values are clamped.
func (s *Scene) Add(r Renderable, z int) {
	if s == nil || r == nil {
		return
	}
	z = common.ClampInt(z, MinZ, MaxZ)
	s.planes[z-MinZ] = append(s.planes[z-MinZ], r)
	s.rebuild()
}

// Remove takes r off whichever plane holds it.
func (s *Scene) Remove(r Renderable) bool {
	if s == nil || r == nil {
		return false
	}
	if !s.detach(r) {
		return false
	}
	s.rebuild()
	return true
}

// Move puts r on plane z, on top of that plane.
func (s *Scene) Move(r Renderable, z int) {
	if s == nil || r == nil {
		return
	}
	s.detach(r)
	s.Add(r, z)
}

// ZOf returns the plane of r.
func (s *Scene) ZOf(r Renderable) (int, bool) {
	for i := range s.planes {
		for _, other := range s.planes[i] {
			if other == r {
				return i + MinZ, true
			}
		}
	}
	return 0, false
}

// Plane returns the renderables on plane z in draw order.
func (s *Scene) Plane(z int) []Renderable {
	z = common.ClampInt(z, MinZ, MaxZ)
	return s.planes[z-MinZ]
}

// Teardown closes the scene. Queued events never run afterwards.
func (s *Scene) Teardown() {
	if s == nil || s.closed {
		return
	}
	s.closed = true
	s.once.items = nil
	s.repeat.items = nil
	s.world.SetListener(nil)
	for i := range s.planes {
		s.planes[i] = nil
	}
	s.root.Clear()
}

func (s *Scene) detach(r Renderable) bool {
	for i := range s.planes {
		plane := s.planes[i]
		for j, other := range plane {
			if other == r {
				s.planes[i] = append(plane[:j], plane[j+1:]...)
				return true
			}
		}
	}
	return false
}

// rebuild sets the container child order from the planes, back to front.
func (s *Scene) rebuild() {
	nodes := make([]render.Node, 0)
	for i := range s.planes {
		for _, r := range s.planes[i] {
			if n := r.Node(); n != nil {
				nodes = append(nodes, n)
			}
		}
	}
	s.root.SetChildren(nodes)
}
