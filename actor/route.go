package actor

import "math"

// Route is an ordered list of waypoints for an actor's top-left corner.
type Route struct {
	xs []float64
	ys []float64
}

// NewRoute starts a route at (x, y).
func NewRoute(x, y float64) Route {
	return Route{xs: []float64{x}, ys: []float64{y}}
}

// To appends a waypoint.
func (r Route) To(x, y float64) Route {
	r.xs = append(append([]float64(nil), r.xs...), x)
	r.ys = append(append([]float64(nil), r.ys...), y)
	return r
}

func (r Route) Len() int { return len(r.xs) }

// Point returns waypoint i.
func (r Route) Point(i int) (float64, float64) {
	return r.xs[i], r.ys[i]
}

// RouteDriver moves an actor along a route at constant speed. It decides
// that a waypoint was reached by comparing the actor's position against the
// segment direction on each axis, so it needs no distance threshold.
type RouteDriver struct {
	actor *Actor
	route Route
	speed float64
	loop  bool

	next int
	done bool
}

// NewRouteDriver places the actor on the first waypoint and heads it to the
// second. Routes with fewer than two points are done immediately.
func NewRouteDriver(a *Actor, r Route, speed float64, loop bool) *RouteDriver {
	d := &RouteDriver{actor: a, route: r, speed: speed, loop: loop}
	if r.Len() < 2 {
		d.done = true
		return d
	}
	d.restart()
	return d
}

func (d *RouteDriver) Done() bool { return d.done }

// Target returns the index of the waypoint being driven to.
func (d *RouteDriver) Target() int { return d.next }

// Stop halts the actor and ends the route.
func (d *RouteDriver) Stop() {
	d.done = true
	d.actor.UpdateVelocity(0, 0)
}

// Drive runs once per step.
func (d *RouteDriver) Drive() {
	if d.done || !d.actor.enabled {
		return
	}
	if !d.passed() {
		return
	}
	if d.next == d.route.Len()-1 {
		if d.loop {
			d.restart()
			return
		}
		d.Stop()
		return
	}
	d.next++
	d.head()
}

func (d *RouteDriver) restart() {
	x, y := d.route.Point(0)
	d.actor.SetPosition(x, y)
	d.next = 1
	d.head()
}

// head sets the velocity along the segment ending at the current target.
// A zero length segment leaves the actor still; passed is then true on the
// next Drive and the driver moves on.
func (d *RouteDriver) head() {
	px, py := d.route.Point(d.next - 1)
	tx, ty := d.route.Point(d.next)
	dx, dy := tx-px, ty-py
	l := math.Hypot(dx, dy)
	if l == 0 {
		d.actor.UpdateVelocity(0, 0)
		return
	}
	d.actor.UpdateVelocity(dx/l*d.speed, dy/l*d.speed)
}

func (d *RouteDriver) passed() bool {
	px, py := d.route.Point(d.next - 1)
	tx, ty := d.route.Point(d.next)
	x, y := d.actor.Position()
	return passedAxis(px, tx, x) && passedAxis(py, ty, y)
}

// passedAxis reports whether pos is at or beyond target when travelling
// from prev. An axis with no travel always counts as passed.
func passedAxis(prev, target, pos float64) bool {
	return (target >= prev && pos >= target) || (target <= prev && pos <= target)
}
