package physics

import "github.com/jakecoffman/cp"

// Joint groups the Chipmunk constraints that make up one logical joint.
type Joint struct {
	world       *World
	a, b        *Body
	constraints []*cp.Constraint
}

// Weld locks two bodies together: a pivot at a's center plus a gear joint
// that keeps their relative rotation fixed.
func (w *World) Weld(a, b *Body) *Joint {
	if w == nil || a == nil || b == nil {
		return nil
	}
	ax, ay := a.Position()
	pivot := cp.NewPivotJoint(a.body, b.body, cp.Vector{X: ax, Y: ay})
	gear := cp.NewGearJoint(a.body, b.body, b.Angle()-a.Angle(), 1)
	return w.addJoint(a, b, pivot, gear)
}

// Revolute pins two bodies together at a world-space anchor and lets them
// rotate freely around it.
func (w *World) Revolute(a, b *Body, anchorX, anchorY float64) *Joint {
	if w == nil || a == nil || b == nil {
		return nil
	}
	pivot := cp.NewPivotJoint(a.body, b.body, cp.Vector{X: anchorX, Y: anchorY})
	return w.addJoint(a, b, pivot)
}

// Distance keeps the body-local anchors at their current distance.
func (w *World) Distance(a, b *Body, ax, ay, bx, by float64) *Joint {
	if w == nil || a == nil || b == nil {
		return nil
	}
	pin := cp.NewPinJoint(a.body, b.body, cp.Vector{X: ax, Y: ay}, cp.Vector{X: bx, Y: by})
	return w.addJoint(a, b, pin)
}

func (w *World) addJoint(a, b *Body, constraints ...*cp.Constraint) *Joint {
	j := &Joint{world: w, a: a, b: b, constraints: constraints}
	w.afterStep(func() {
		for _, c := range constraints {
			w.space.AddConstraint(c)
		}
	})
	a.joints = append(a.joints, j)
	b.joints = append(b.joints, j)
	return j
}

// Destroy removes the joint from the space and from both bodies.
func (j *Joint) Destroy() {
	if j == nil || j.world == nil {
		return
	}
	w := j.world
	j.world = nil
	constraints := j.constraints
	w.afterStep(func() {
		for _, c := range constraints {
			w.space.RemoveConstraint(c)
		}
	})
	j.a.detachJoint(j)
	j.b.detachJoint(j)
}

func (j *Joint) Bodies() (*Body, *Body) {
	return j.a, j.b
}
