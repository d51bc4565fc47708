package physics

import "github.com/jakecoffman/cp"

// Contact describes a touching pair of fixtures. Bodies and fixtures are nil
// for shapes the world does not own, such as the world bounds.
type Contact struct {
	A, B               *Body
	FixtureA, FixtureB *Fixture
	// Normal points from A to B.
	Normal cp.Vector
	Points []cp.Vector

	disabled bool
}

// Enabled reports whether the solver will process the contact this step.
func (c *Contact) Enabled() bool {
	return c != nil && !c.disabled
}

// SetEnabled is meaningful inside PreSolve only: disabling the contact makes
// the solver skip it for the current step.
func (c *Contact) SetEnabled(on bool) {
	if c == nil {
		return
	}
	c.disabled = !on
}

// Other returns the body that is not b.
func (c *Contact) Other(b *Body) *Body {
	if c.A == b {
		return c.B
	}
	return c.A
}

// FixtureOf returns the fixture belonging to b in this contact.
func (c *Contact) FixtureOf(b *Body) *Fixture {
	if c.A == b {
		return c.FixtureA
	}
	if c.B == b {
		return c.FixtureB
	}
	return nil
}

// ContactListener receives contact events synchronously from inside Step.
// Implementations must not mutate the world; they should record what
// happened and act once Step returns.
type ContactListener interface {
	BeginContact(c *Contact)
	EndContact(c *Contact)
	PreSolve(c *Contact)
	PostSolve(c *Contact)
}

func (w *World) setupHandlers() {
	if w == nil || w.handlersReady || w.space == nil {
		return
	}

	handler := w.space.NewCollisionHandler(collisionTypeBody, collisionTypeBody)
	handler.UserData = w
	handler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		world, ok := userData.(*World)
		if !ok || world == nil || world.listener == nil {
			return true
		}
		world.listener.BeginContact(world.contactFor(arb))
		return true
	}
	handler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		world, ok := userData.(*World)
		if !ok || world == nil || world.listener == nil {
			return true
		}
		c := world.contactFor(arb)
		world.listener.PreSolve(c)
		return c.Enabled()
	}
	handler.PostSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) {
		world, ok := userData.(*World)
		if !ok || world == nil || world.listener == nil {
			return
		}
		world.listener.PostSolve(world.contactFor(arb))
	}
	handler.SeparateFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) {
		world, ok := userData.(*World)
		if !ok || world == nil || world.listener == nil {
			return
		}
		world.listener.EndContact(world.contactFor(arb))
	}

	w.handlersReady = true
}

func (w *World) contactFor(arb *cp.Arbiter) *Contact {
	shapeA, shapeB := arb.Shapes()
	fa := w.fixtureFor(shapeA)
	fb := w.fixtureFor(shapeB)

	set := arb.ContactPointSet()
	points := make([]cp.Vector, 0, set.Count)
	for i := 0; i < set.Count; i++ {
		points = append(points, set.Points[i].PointA)
	}

	return &Contact{
		A:        fa.Body(),
		B:        fb.Body(),
		FixtureA: fa,
		FixtureB: fb,
		Normal:   arb.Normal(),
		Points:   points,
	}
}
