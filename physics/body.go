package physics

import (
	"math"

	"github.com/jakecoffman/cp"
)

// BodyID identifies a body within its world. IDs are never reused.
type BodyID uint64

// BodyType mirrors Chipmunk's body kinds.
type BodyType int

const (
	Static BodyType = iota
	Kinematic
	Dynamic
)

func (t BodyType) String() string {
	switch t {
	case Static:
		return "static"
	case Kinematic:
		return "kinematic"
	case Dynamic:
		return "dynamic"
	}
	return "unknown"
}

// BodyDef describes a body and its single fixture.
type BodyDef struct {
	Type       BodyType
	Shape      ShapeDef
	X, Y       float64 // center
	Angle      float64
	Density    float64
	Elasticity float64
	Friction   float64
	Sensor     bool
}

func (d BodyDef) withDefaults() BodyDef {
	if d.Shape == nil {
		d.Shape = Box{W: 1, H: 1}
	}
	if d.Density <= 0 {
		d.Density = 1
	}
	return d
}

func (d BodyDef) massProperties() (float64, float64) {
	mass := d.Density * d.Shape.area()
	if mass <= 0 || math.IsNaN(mass) {
		mass = 1
	}
	return mass, d.Shape.moment(mass)
}

// Body is a rigid body with exactly one fixture.
type Body struct {
	id       BodyID
	world    *World
	body     *cp.Body
	kind     BodyType
	shapeDef ShapeDef
	fixtures []*Fixture
	joints   []*Joint

	active bool

	gravityScale   float64
	linearDamping  float64
	angularDamping float64
	bullet         bool
	fixedRotation  bool
}

func (b *Body) ID() BodyID {
	if b == nil {
		return 0
	}
	return b.id
}

// World returns the world that created the body.
func (b *Body) World() *World {
	if b == nil {
		return nil
	}
	return b.world
}

// CP exposes the Chipmunk body for code that needs the raw handle.
func (b *Body) CP() *cp.Body {
	if b == nil {
		return nil
	}
	return b.body
}

func (b *Body) Shape() ShapeDef {
	return b.shapeDef
}

func (b *Body) Fixtures() []*Fixture {
	if b == nil {
		return nil
	}
	return b.fixtures
}

// Fixture returns the body's only fixture.
func (b *Body) Fixture() *Fixture {
	if b == nil || len(b.fixtures) == 0 {
		return nil
	}
	return b.fixtures[0]
}

func (b *Body) Position() (float64, float64) {
	p := b.body.Position()
	return p.X, p.Y
}

// SetPosition moves the body center. Static bodies are reindexed.
func (b *Body) SetPosition(x, y float64) {
	b.body.SetPosition(cp.Vector{X: x, Y: y})
	b.reindex()
}

// reindex re-adds the fixtures of an active static body so the broadphase
// picks up its new transform. Moves made inside a step are applied after it.
func (b *Body) reindex() {
	if b.Type() != Static || b.world == nil {
		return
	}
	w := b.world
	w.afterStep(func() {
		if !b.active || b.Type() != Static {
			return
		}
		for _, f := range b.fixtures {
			w.space.RemoveShape(f.shape)
			w.space.AddShape(f.shape)
		}
	})
}

func (b *Body) Velocity() (float64, float64) {
	v := b.body.Velocity()
	return v.X, v.Y
}

func (b *Body) SetVelocity(vx, vy float64) {
	b.body.SetVelocity(vx, vy)
}

func (b *Body) AngularVelocity() float64 {
	return b.body.AngularVelocity()
}

func (b *Body) SetAngularVelocity(w float64) {
	b.body.SetAngularVelocity(w)
}

func (b *Body) Angle() float64 {
	return b.body.Angle()
}

func (b *Body) SetAngle(a float64) {
	b.body.SetAngle(a)
	b.reindex()
}

func (b *Body) Type() BodyType {
	switch b.body.GetType() {
	case cp.BODY_STATIC:
		return Static
	case cp.BODY_KINEMATIC:
		return Kinematic
	}
	return Dynamic
}

// SetType changes the body kind. Becoming dynamic restores the mass derived
// from the fixture density since Chipmunk resets it on the switch.
func (b *Body) SetType(t BodyType) {
	if b.Type() == t {
		return
	}
	switch t {
	case Static:
		b.body.SetType(cp.BODY_STATIC)
	case Kinematic:
		b.body.SetType(cp.BODY_KINEMATIC)
	default:
		b.body.SetType(cp.BODY_DYNAMIC)
		b.refreshMass()
	}
	b.kind = t
}

func (b *Body) GravityScale() float64 { return b.gravityScale }

func (b *Body) SetGravityScale(s float64) { b.gravityScale = s }

func (b *Body) LinearDamping() float64 { return b.linearDamping }

func (b *Body) SetLinearDamping(d float64) {
	if d < 0 {
		d = 0
	}
	b.linearDamping = d
}

func (b *Body) AngularDamping() float64 { return b.angularDamping }

func (b *Body) SetAngularDamping(d float64) {
	if d < 0 {
		d = 0
	}
	b.angularDamping = d
}

// Bullet is recorded for callers; Chipmunk has no continuous collision mode,
// so it does not change the simulation.
func (b *Body) Bullet() bool { return b.bullet }

func (b *Body) SetBullet(on bool) { b.bullet = on }

func (b *Body) FixedRotation() bool { return b.fixedRotation }

func (b *Body) SetFixedRotation(on bool) {
	b.fixedRotation = on
	if on {
		b.body.SetAngularVelocity(0)
	}
	b.refreshMass()
}

// ApplyImpulse applies an impulse at the body center.
func (b *Body) ApplyImpulse(ix, iy float64) {
	if b.Type() != Dynamic {
		return
	}
	b.body.ApplyImpulseAtWorldPoint(cp.Vector{X: ix, Y: iy}, b.body.Position())
}

func (b *Body) Active() bool {
	return b != nil && b.active
}

// SetActive adds the body back to the space or removes it, together with its
// fixtures and joints. Inactive bodies keep all their state. Changes requested
// during a step are applied when the step completes.
func (b *Body) SetActive(on bool) {
	if b == nil || b.world == nil || b.active == on {
		return
	}
	b.active = on
	w := b.world
	w.afterStep(func() {
		space := w.space
		if on {
			space.AddBody(b.body)
			for _, f := range b.fixtures {
				space.AddShape(f.shape)
			}
			return
		}
		b.ClearJoints()
		for _, f := range b.fixtures {
			space.RemoveShape(f.shape)
		}
		space.RemoveBody(b.body)
	})
}

// ClearJoints removes every joint attached to this body.
func (b *Body) ClearJoints() {
	if b == nil {
		return
	}
	for len(b.joints) > 0 {
		b.joints[0].Destroy()
	}
}

func (b *Body) Joints() []*Joint {
	if b == nil {
		return nil
	}
	return b.joints
}

func (b *Body) detachJoint(j *Joint) {
	for i, other := range b.joints {
		if other == j {
			b.joints = append(b.joints[:i], b.joints[i+1:]...)
			return
		}
	}
}

func (b *Body) refreshMass() {
	if b.Type() != Dynamic {
		return
	}
	f := b.Fixture()
	density := 1.0
	if f != nil && f.density > 0 {
		density = f.density
	}
	mass := density * b.shapeDef.area()
	if mass <= 0 || math.IsNaN(mass) {
		mass = 1
	}
	b.body.SetMass(mass)
	if b.fixedRotation {
		b.body.SetMoment(math.Inf(1))
		return
	}
	b.body.SetMoment(b.shapeDef.moment(mass))
}

// updateVelocity integrates velocity with the body's gravity scale and
// damping layered on top of the space settings.
func (b *Body) updateVelocity(body *cp.Body, gravity cp.Vector, damping float64, dt float64) {
	linear := damping
	if b.linearDamping > 0 {
		linear = damping / (1 + dt*b.linearDamping)
	}
	cp.BodyUpdateVelocity(body, gravity.Mult(b.gravityScale), linear, dt)
	if body.GetType() != cp.BODY_DYNAMIC {
		return
	}
	if b.angularDamping != b.linearDamping {
		w := body.AngularVelocity() * (1 + dt*b.linearDamping) / (1 + dt*b.angularDamping)
		body.SetAngularVelocity(w)
	}
}

// Fixture is the collision shape attached to a body.
type Fixture struct {
	shape   *cp.Shape
	body    *Body
	density float64
}

func (f *Fixture) Body() *Body {
	if f == nil {
		return nil
	}
	return f.body
}

func (f *Fixture) CP() *cp.Shape {
	if f == nil {
		return nil
	}
	return f.shape
}

func (f *Fixture) Density() float64 { return f.density }

// SetDensity updates the density and, for dynamic bodies, the body mass.
func (f *Fixture) SetDensity(d float64) {
	if d <= 0 {
		return
	}
	f.density = d
	if f.body != nil {
		f.body.refreshMass()
	}
}

func (f *Fixture) Restitution() float64 { return f.shape.Elasticity() }

func (f *Fixture) SetRestitution(e float64) { f.shape.SetElasticity(e) }

func (f *Fixture) Friction() float64 { return f.shape.Friction() }

func (f *Fixture) SetFriction(v float64) { f.shape.SetFriction(v) }

func (f *Fixture) Sensor() bool { return f != nil && f.shape.Sensor() }

func (f *Fixture) SetSensor(on bool) { f.shape.SetSensor(on) }
