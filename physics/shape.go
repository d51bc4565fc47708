package physics

import (
	"math"

	"github.com/jakecoffman/cp"
)

// ShapeDef describes a fixture shape in body-local coordinates.
type ShapeDef interface {
	// Bounds returns the width and height of the shape's bounding box.
	Bounds() (float64, float64)

	area() float64
	moment(mass float64) float64
	newShape(body *cp.Body) *cp.Shape
}

// Box is an axis-aligned rectangle centered on the body.
type Box struct {
	W, H float64
}

func (s Box) Bounds() (float64, float64) { return s.W, s.H }

func (s Box) area() float64 { return s.W * s.H }

func (s Box) moment(mass float64) float64 { return cp.MomentForBox(mass, s.W, s.H) }

func (s Box) newShape(body *cp.Body) *cp.Shape { return cp.NewBox(body, s.W, s.H, 0) }

// Circle is centered on the body.
type Circle struct {
	R float64
}

func (s Circle) Bounds() (float64, float64) { return 2 * s.R, 2 * s.R }

func (s Circle) area() float64 { return math.Pi * s.R * s.R }

func (s Circle) moment(mass float64) float64 {
	return cp.MomentForCircle(mass, 0, s.R, cp.Vector{})
}

func (s Circle) newShape(body *cp.Body) *cp.Shape { return cp.NewCircle(body, s.R, cp.Vector{}) }

// Polygon is a convex polygon with vertices relative to the body center.
type Polygon struct {
	Verts []cp.Vector
}

func (s Polygon) Bounds() (float64, float64) {
	if len(s.Verts) == 0 {
		return 0, 0
	}
	minX, minY := s.Verts[0].X, s.Verts[0].Y
	maxX, maxY := minX, minY
	for _, v := range s.Verts[1:] {
		minX = math.Min(minX, v.X)
		maxX = math.Max(maxX, v.X)
		minY = math.Min(minY, v.Y)
		maxY = math.Max(maxY, v.Y)
	}
	return maxX - minX, maxY - minY
}

func (s Polygon) area() float64 {
	return math.Abs(cp.AreaForPoly(len(s.Verts), s.Verts, 0))
}

func (s Polygon) moment(mass float64) float64 {
	return cp.MomentForPoly(mass, len(s.Verts), s.Verts, cp.Vector{}, 0)
}

func (s Polygon) newShape(body *cp.Body) *cp.Shape {
	return cp.NewPolyShapeRaw(body, len(s.Verts), s.Verts, 0)
}

// Scaled returns a shape of the same kind fitted to w x h.
func Scaled(s ShapeDef, w, h float64) ShapeDef {
	switch v := s.(type) {
	case Circle:
		return Circle{R: math.Min(w, h) / 2}
	case Polygon:
		ow, oh := v.Bounds()
		if ow == 0 || oh == 0 {
			return v
		}
		sx, sy := w/ow, h/oh
		verts := make([]cp.Vector, len(v.Verts))
		for i, p := range v.Verts {
			verts[i] = cp.Vector{X: p.X * sx, Y: p.Y * sy}
		}
		return Polygon{Verts: verts}
	}
	return Box{W: w, H: h}
}
