package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/stagehand/common"
)

// collisionTypeBody is shared by every shape the world creates so a single
// handler observes all pairs. Filtering happens in the listener.
const collisionTypeBody cp.CollisionType = 1

// World owns the Chipmunk space and every body created through it.
type World struct {
	space         *cp.Space
	listener      ContactListener
	handlersReady bool

	nextID   BodyID
	bodies   map[BodyID]*Body
	fixtures map[*cp.Shape]*Fixture

	stepping bool
	pending  []func()
}

// NewWorld creates a world with the given gravity in pixels/s², +Y down.
func NewWorld(gx, gy float64) *World {
	space := cp.NewSpace()
	space.Iterations = common.DefaultIterations
	space.SetGravity(cp.Vector{X: gx, Y: gy})

	w := &World{
		space:    space,
		bodies:   make(map[BodyID]*Body),
		fixtures: make(map[*cp.Shape]*Fixture),
	}
	w.setupHandlers()
	return w
}

// Space returns the underlying Chipmunk space.
func (w *World) Space() *cp.Space {
	if w == nil {
		return nil
	}
	return w.space
}

// SetListener installs the contact listener. A nil listener disables
// contact reporting.
func (w *World) SetListener(l ContactListener) {
	if w == nil {
		return
	}
	w.listener = l
}

func (w *World) SetGravity(gx, gy float64) {
	if w == nil || w.space == nil {
		return
	}
	w.space.SetGravity(cp.Vector{X: gx, Y: gy})
}

func (w *World) Gravity() (float64, float64) {
	if w == nil || w.space == nil {
		return 0, 0
	}
	g := w.space.Gravity()
	return g.X, g.Y
}

// Stepping reports whether the world is inside Step, i.e. contact callbacks
// may be on the stack.
func (w *World) Stepping() bool {
	return w != nil && w.stepping
}

// Step advances the simulation by dt. Contact listener callbacks run
// synchronously inside this call. Space mutations requested while stepping
// are applied after the space returns.
func (w *World) Step(dt float64) {
	if w == nil || w.space == nil || dt <= 0 {
		return
	}
	w.stepping = true
	w.space.Step(dt)
	w.stepping = false
	w.flushPending()
}

// Body returns the body registered under id.
func (w *World) Body(id BodyID) (*Body, bool) {
	if w == nil {
		return nil, false
	}
	b, ok := w.bodies[id]
	return b, ok
}

// BodyCount returns the number of bodies created and not destroyed.
func (w *World) BodyCount() int {
	if w == nil {
		return 0
	}
	return len(w.bodies)
}

// CreateBody builds a body with a single fixture and adds it to the space.
func (w *World) CreateBody(def BodyDef) *Body {
	if w == nil || w.space == nil {
		return nil
	}
	def = def.withDefaults()

	w.nextID++
	b := &Body{
		id:           w.nextID,
		world:        w,
		kind:         def.Type,
		shapeDef:     def.Shape,
		gravityScale: 1,
	}

	mass, moment := def.massProperties()
	switch def.Type {
	case Static:
		b.body = cp.NewStaticBody()
	case Kinematic:
		b.body = cp.NewKinematicBody()
	default:
		b.body = cp.NewBody(mass, moment)
	}
	b.body.SetPosition(cp.Vector{X: def.X, Y: def.Y})
	b.body.SetAngle(def.Angle)
	b.body.SetVelocityUpdateFunc(b.updateVelocity)

	shape := def.Shape.newShape(b.body)
	shape.SetFriction(def.Friction)
	shape.SetElasticity(def.Elasticity)
	shape.SetSensor(def.Sensor)
	shape.SetCollisionType(collisionTypeBody)

	f := &Fixture{shape: shape, body: b, density: def.Density}
	b.fixtures = []*Fixture{f}
	w.fixtures[shape] = f
	w.bodies[b.id] = b

	w.space.AddBody(b.body)
	w.space.AddShape(shape)
	b.active = true
	return b
}

// DestroyBody removes a body from the space and forgets it. Destroying a
// body twice is a no-op.
func (w *World) DestroyBody(b *Body) {
	if w == nil || b == nil || b.world != w {
		return
	}
	if _, ok := w.bodies[b.id]; !ok {
		return
	}
	b.SetActive(false)
	w.afterStep(func() {
		for _, f := range b.fixtures {
			delete(w.fixtures, f.shape)
		}
		delete(w.bodies, b.id)
	})
}

// AddBounds adds static edges around the rectangle (0,0)-(width,height).
// The edges are not bodies of their own and are reported to the listener
// with a nil Body.
func (w *World) AddBounds(width, height float64) {
	if w == nil || w.space == nil || width <= 0 || height <= 0 {
		return
	}
	thickness := 1.0
	segments := []struct {
		a cp.Vector
		b cp.Vector
	}{
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: width, Y: 0}},           // top
		{a: cp.Vector{X: 0, Y: height}, b: cp.Vector{X: width, Y: height}}, // bottom
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: 0, Y: height}},          // left
		{a: cp.Vector{X: width, Y: 0}, b: cp.Vector{X: width, Y: height}},  // right
	}
	for _, seg := range segments {
		shape := cp.NewSegment(w.space.StaticBody, seg.a, seg.b, thickness)
		shape.SetFriction(0.8)
		shape.SetCollisionType(collisionTypeBody)
		w.space.AddShape(shape)
	}
}

// afterStep runs fn now, or after the current step when called from inside a
// contact callback.
func (w *World) afterStep(fn func()) {
	if w.stepping {
		w.pending = append(w.pending, fn)
		return
	}
	fn()
}

func (w *World) flushPending() {
	for len(w.pending) > 0 {
		pending := w.pending
		w.pending = nil
		for _, fn := range pending {
			fn()
		}
	}
}

func (w *World) fixtureFor(shape *cp.Shape) *Fixture {
	if w == nil || shape == nil {
		return nil
	}
	return w.fixtures[shape]
}
