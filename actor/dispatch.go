package actor

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/stagehand/physics"
)

// Collision is the plain record of a contact between two actors, queued
// during the physics step and resolved after it.
type Collision struct {
	Dominant ID
	Other    ID
	// OtherSensor is true when the non-dominant fixture is a sensor.
	OtherSensor bool
	Normal      cp.Vector
	Points      []cp.Vector
}

// Dispatcher is the contact listener of a stage's world. It never changes
// game state inside the physics step: begin contacts are turned into
// Collision records on the scene's one-shot queue.
type Dispatcher struct {
	stage *Stage
}

type collisionEvent struct {
	d   *Dispatcher
	col Collision
}

func (e collisionEvent) Do() {
	e.d.resolve(e.col)
}

func (d *Dispatcher) actors(c *physics.Contact) (*Actor, *Actor, bool) {
	a := d.stage.registry.ByBody(c.A)
	b := d.stage.registry.ByBody(c.B)
	if a == nil || b == nil {
		return nil, nil, false
	}
	return a, b, true
}

// dominant orders a pair by role precedence. Equal roles are ordered by id
// so the result does not depend on which body the contact lists first.
func dominant(a, b *Actor) (*Actor, *Actor, bool) {
	pa, pb := a.role.precedence(), b.role.precedence()
	if pa == 0 && pb == 0 {
		return nil, nil, false
	}
	if pa > pb || (pa == pb && a.id < b.id) {
		return a, b, true
	}
	return b, a, true
}

// BeginContact queues the collision for the dominant actor.
func (d *Dispatcher) BeginContact(c *physics.Contact) {
	a, b, ok := d.actors(c)
	if !ok || !a.enabled || !b.enabled {
		return
	}
	dom, other, ok := dominant(a, b)
	if !ok {
		return
	}
	col := Collision{
		Dominant:    dom.id,
		Other:       other.id,
		OtherSensor: c.FixtureOf(other.body).Sensor(),
		Normal:      c.Normal,
		Points:      c.Points,
	}
	d.stage.scene.Once(collisionEvent{d: d, col: col})
}

func (d *Dispatcher) EndContact(c *physics.Contact) {}

// PreSolve applies pass-through groups and one-sided actors. It only
// toggles the contact, which is solver input.
func (d *Dispatcher) PreSolve(c *physics.Contact) {
	a, b, ok := d.actors(c)
	if !ok {
		return
	}
	if a.passThrough != 0 && a.passThrough == b.passThrough {
		c.SetEnabled(false)
		return
	}
	switch {
	case a.side != SideNone && b.side == SideNone:
		vx, vy := b.body.Velocity()
		if a.side.passes(vx, vy) {
			c.SetEnabled(false)
		}
	case b.side != SideNone && a.side == SideNone:
		vx, vy := a.body.Velocity()
		if b.side.passes(vx, vy) {
			c.SetEnabled(false)
		}
	}
}

func (d *Dispatcher) PostSolve(c *physics.Contact) {}

// resolve runs the dominant actor's collision rules. Either actor may have
// been removed since the contact was queued, in which case nothing happens.
func (d *Dispatcher) resolve(col Collision) {
	dom, ok := d.stage.registry.Lookup(col.Dominant)
	if !ok || !dom.enabled {
		return
	}
	other, ok := d.stage.registry.Lookup(col.Other)
	if !ok || !other.enabled {
		return
	}
	d.stage.observer.Collision(dom.role, other.role)

	switch dom.role {
	case RoleHero:
		dom.hero.onCollide(other, col)
	case RoleEnemy:
		dom.enemy.onCollide(other, col)
	case RoleProjectile:
		dom.projectile.onCollide(other, col)
	case RoleObstacle, RoleGoodie, RoleDestination:
		// never dominant
	}
}
