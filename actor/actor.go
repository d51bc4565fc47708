package actor

import (
	"math"

	"github.com/milk9111/stagehand/common"
	"github.com/milk9111/stagehand/physics"
	"github.com/milk9111/stagehand/render"
	"github.com/milk9111/stagehand/scene"
)

// Actor binds one physics body to one sprite. Positions are the top-left
// corner of the actor's box; the body sits at its center.
type Actor struct {
	id     ID
	role   Role
	stage  *Stage
	body   *physics.Body
	sprite *render.Sprite
	w, h   float64

	enabled     bool
	side        Side
	passThrough int
	camX, camY  float64

	disappearSound string

	route    *RouteDriver
	behavior []*scene.Event

	hero        *Hero
	enemy       *Enemy
	obstacle    *Obstacle
	goodie      *Goodie
	destination *Destination
	projectile  *Projectile
}

func (a *Actor) ID() ID                   { return a.id }
func (a *Actor) Role() Role               { return a.role }
func (a *Actor) Stage() *Stage            { return a.stage }
func (a *Actor) Body() *physics.Body      { return a.body }
func (a *Actor) Sprite() *render.Sprite   { return a.sprite }
func (a *Actor) Node() render.Node        { return a.sprite }
func (a *Actor) Enabled() bool            { return a != nil && a.enabled }
func (a *Actor) Size() (float64, float64) { return a.w, a.h }
func (a *Actor) Side() Side               { return a.side }
func (a *Actor) PassThrough() int         { return a.passThrough }

// Variant accessors return nil when the actor has a different role.
func (a *Actor) Hero() *Hero               { return a.hero }
func (a *Actor) Enemy() *Enemy             { return a.enemy }
func (a *Actor) Obstacle() *Obstacle       { return a.obstacle }
func (a *Actor) Goodie() *Goodie           { return a.goodie }
func (a *Actor) Destination() *Destination { return a.destination }
func (a *Actor) Projectile() *Projectile   { return a.projectile }

// Position returns the top-left corner.
func (a *Actor) Position() (float64, float64) {
	cx, cy := a.body.Position()
	return cx - a.w/2, cy - a.h/2
}

func (a *Actor) Center() (float64, float64) {
	return a.body.Position()
}

// SetPosition moves the top-left corner to (x, y).
func (a *Actor) SetPosition(x, y float64) {
	a.body.SetPosition(x+a.w/2, y+a.h/2)
	a.syncSprite()
}

func (a *Actor) Velocity() (float64, float64) {
	return a.body.Velocity()
}

func (a *Actor) Rotation() float64 {
	return a.body.Angle()
}

func (a *Actor) SetRotation(r float64) {
	a.body.SetAngle(r)
	a.syncSprite()
}

// UpdateVelocity sets the linear velocity. Static bodies become kinematic
// first, and any joints holding the actor are released.
func (a *Actor) UpdateVelocity(vx, vy float64) {
	if a.body.Type() == physics.Static {
		a.body.SetType(physics.Kinematic)
	}
	a.body.ClearJoints()
	a.body.SetVelocity(vx, vy)
}

// AddVelocity adds (dx, dy) to the current velocity.
func (a *Actor) AddVelocity(dx, dy float64) {
	vx, vy := a.body.Velocity()
	a.UpdateVelocity(vx+dx, vy+dy)
}

// SetCollisionsEnabled turns every fixture into a sensor when disabled, so
// contacts are still reported but nothing is pushed.
func (a *Actor) SetCollisionsEnabled(enabled bool) {
	for _, f := range a.body.Fixtures() {
		f.SetSensor(!enabled)
	}
}

// SetPhysics sets density, elasticity and friction of the fixture.
func (a *Actor) SetPhysics(density, elasticity, friction float64) {
	f := a.body.Fixture()
	if f == nil {
		return
	}
	f.SetDensity(density)
	f.SetRestitution(elasticity)
	f.SetFriction(friction)
}

func (a *Actor) SetDamping(linear, angular float64) {
	a.body.SetLinearDamping(linear)
	a.body.SetAngularDamping(angular)
}

func (a *Actor) SetGravityScale(s float64) {
	a.body.SetGravityScale(s)
}

func (a *Actor) SetBullet(on bool) {
	a.body.SetBullet(on)
}

// DisableRotation stops the body from rotating in response to collisions.
func (a *Actor) DisableRotation() {
	a.body.SetFixedRotation(true)
}

// SetKinematic makes a static actor movable by velocity without being
// affected by gravity or collisions.
func (a *Actor) SetKinematic() {
	a.body.SetType(physics.Kinematic)
}

// SetDynamic lets the actor fall and be pushed.
func (a *Actor) SetDynamic() {
	a.body.SetType(physics.Dynamic)
}

// SetZIndex moves the actor to plane z, clamped to the valid range.
func (a *Actor) SetZIndex(z int) {
	a.stage.scene.Move(a, z)
}

func (a *Actor) ZIndex() int {
	z, _ := a.stage.scene.ZOf(a)
	return z
}

// SetOneSided makes the actor block motion from one side only.
func (a *Actor) SetOneSided(s Side) {
	a.side = s
}

// SetPassThrough puts the actor in group id. Actors sharing a nonzero id
// never collide. Zero interacts with everything.
func (a *Actor) SetPassThrough(id int) {
	a.passThrough = id
}

// SetCameraOffset shifts the camera when it chases this actor.
func (a *Actor) SetCameraOffset(x, y float64) {
	a.camX, a.camY = x, y
}

func (a *Actor) CameraOffset() (float64, float64) {
	return a.camX, a.camY
}

// CameraTarget reports the point a chasing camera should follow. ok is
// false once the actor is gone, which leaves the camera where it is.
func (a *Actor) CameraTarget() (x, y float64, ok bool) {
	if !a.Enabled() {
		return 0, 0, false
	}
	cx, cy := a.Center()
	return cx, cy, true
}

func (a *Actor) SetDisappearSound(name string) {
	a.disappearSound = name
}

func (a *Actor) SetImage(name string) {
	a.sprite.Image = name
}

// Resize rebuilds the body at the new box and carries over the physical
// state of the old one. The old body is deactivated, not destroyed.
func (a *Actor) Resize(x, y, w, h float64) {
	old := a.body
	f := old.Fixture()

	def := physics.BodyDef{
		Type:   old.Type(),
		Shape:  physics.Scaled(old.Shape(), w, h),
		X:      x + w/2,
		Y:      y + h/2,
		Angle:  old.Angle(),
		Sensor: f.Sensor(),
	}
	def.Density = f.Density()
	def.Elasticity = f.Restitution()
	def.Friction = f.Friction()

	nb := a.stage.scene.World().CreateBody(def)
	nb.SetAngularVelocity(old.AngularVelocity())
	nb.SetGravityScale(old.GravityScale())
	nb.SetLinearDamping(old.LinearDamping())
	nb.SetAngularDamping(old.AngularDamping())
	nb.SetBullet(old.Bullet())
	nb.SetFixedRotation(old.FixedRotation())
	vx, vy := old.Velocity()
	nb.SetVelocity(vx, vy)
	if !a.enabled {
		nb.SetActive(false)
	}

	old.SetActive(false)
	a.body = nb
	a.w, a.h = w, h
	a.stage.registry.bind(a, old.ID())
	a.sprite.SetSize(w, h)
	a.syncSprite()
}

// Remove disables the actor, hides its sprite and takes its body out of the
// simulation. quiet suppresses the disappear sound. Removing twice is a
// no-op.
func (a *Actor) Remove(quiet bool) {
	if a == nil || !a.enabled {
		return
	}
	a.enabled = false
	a.body.SetActive(false)
	a.sprite.SetVisible(false)
	a.stopBehavior()
	if !quiet {
		a.stage.playSound(a.disappearSound)
	}
}

// revive brings a removed actor back at center (cx, cy). Pools use it.
func (a *Actor) revive(cx, cy float64) {
	a.body.SetPosition(cx, cy)
	a.body.SetVelocity(0, 0)
	a.body.SetAngularVelocity(0)
	a.body.SetActive(true)
	a.sprite.SetVisible(true)
	a.enabled = true
	a.syncSprite()
}

// SetAppearDelay hides the actor now and brings it in after seconds.
func (a *Actor) SetAppearDelay(seconds float64) {
	if !a.enabled {
		return
	}
	cx, cy := a.Center()
	a.enabled = false
	a.body.SetActive(false)
	a.sprite.SetVisible(false)
	a.stage.scene.After(seconds, func() {
		a.body.SetActive(true)
		a.body.SetPosition(cx, cy)
		a.sprite.SetVisible(true)
		a.enabled = true
		a.syncSprite()
	})
}

// SetDisappearDelay removes the actor after seconds.
func (a *Actor) SetDisappearDelay(seconds float64, quiet bool) {
	a.stage.scene.After(seconds, func() { a.Remove(quiet) })
}

// SetRotationSpeed spins the actor at the given radians per second. The
// speed is reapplied every step so collisions cannot slow it down.
func (a *Actor) SetRotationSpeed(radPerSec float64) {
	if a.body.Type() == physics.Static {
		a.body.SetType(physics.Kinematic)
	}
	a.body.SetAngularVelocity(radPerSec)
	a.addBehavior(func() {
		a.body.SetAngularVelocity(radPerSec)
	})
}

// SetChase steers the actor toward target at speed every step. Axes marked
// ignore keep their current velocity.
func (a *Actor) SetChase(target *Actor, speed float64, ignoreX, ignoreY bool) {
	if target == nil {
		return
	}
	a.addBehavior(func() {
		if !target.Enabled() {
			return
		}
		ax, ay := a.Center()
		tx, ty := target.Center()
		nx, ny := common.Normalize(tx-ax, ty-ay)
		vx, vy := a.Velocity()
		if !ignoreX {
			vx = nx * speed
		}
		if !ignoreY {
			vy = ny * speed
		}
		a.UpdateVelocity(vx, vy)
	})
}

// SetRoute drives the actor along r at speed, restarting when loop is set.
func (a *Actor) SetRoute(r Route, speed float64, loop bool) *RouteDriver {
	d := NewRouteDriver(a, r, speed, loop)
	a.route = d
	a.addBehavior(d.Drive)
	return d
}

func (a *Actor) RouteDriver() *RouteDriver {
	return a.route
}

// WeldTo rigidly attaches other to a.
func (a *Actor) WeldTo(other *Actor) *physics.Joint {
	return a.stage.scene.World().Weld(a.body, other.body)
}

// RevoluteTo pins other to a at the world point (x, y), letting it spin.
func (a *Actor) RevoluteTo(other *Actor, x, y float64) *physics.Joint {
	return a.stage.scene.World().Revolute(a.body, other.body, x, y)
}

// DistanceTo keeps the two anchor points, relative to each center, at their
// current distance.
func (a *Actor) DistanceTo(other *Actor, ax, ay, bx, by float64) *physics.Joint {
	return a.stage.scene.World().Distance(a.body, other.body, ax, ay, bx, by)
}

// Render syncs the sprite with the body and runs per-role frame work.
func (a *Actor) Render(dt float64) {
	switch a.role {
	case RoleHero:
		a.hero.tick(dt)
	case RoleProjectile:
		a.projectile.tick()
	}
	if a.enabled {
		a.syncSprite()
	}
}

func (a *Actor) syncSprite() {
	if a.sprite == nil || a.body == nil {
		return
	}
	x, y := a.Position()
	a.sprite.SetPosition(x, y)
	a.sprite.Rotation = a.body.Angle()
	if math.IsNaN(a.sprite.Rotation) {
		a.sprite.Rotation = 0
	}
}

func (a *Actor) addBehavior(fn func()) {
	ev := a.stage.scene.Repeat(scene.ActionFunc(func() {
		if a.enabled {
			fn()
		}
	}))
	a.behavior = append(a.behavior, ev)
}

func (a *Actor) stopBehavior() {
	for _, ev := range a.behavior {
		ev.Cancel()
	}
	a.behavior = nil
}
