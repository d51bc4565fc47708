package render

import "image/color"

// Node is anything that can live in a Container. The platform renderer walks
// containers in child order, so later children draw on top.
type Node interface {
	Visible() bool
	SetVisible(v bool)
}

// Sprite draws a named image resource. Position is the top-left corner in
// the coordinate space of the owning container.
type Sprite struct {
	Image    string
	X, Y     float64
	W, H     float64
	AnchorX  float64 // rotation pivot as a fraction of the size
	AnchorY  float64
	Rotation float64
	Alpha    float64
	FlipX    bool
	Tint     color.Color

	hidden bool
}

// NewSprite creates a visible sprite anchored at its center.
func NewSprite(image string, w, h float64) *Sprite {
	return &Sprite{Image: image, W: w, H: h, AnchorX: 0.5, AnchorY: 0.5, Alpha: 1}
}

func (s *Sprite) Visible() bool     { return s != nil && !s.hidden }
func (s *Sprite) SetVisible(v bool) { s.hidden = !v }

func (s *Sprite) SetPosition(x, y float64) {
	s.X, s.Y = x, y
}

func (s *Sprite) SetSize(w, h float64) {
	s.W, s.H = w, h
}

// Text is a single run of text.
type Text struct {
	Value string
	X, Y  float64
	Size  float64
	Color color.Color
	Alpha float64
	// Centered places X, Y at the middle of the rendered text.
	Centered bool

	hidden bool
}

func NewText(value string, x, y, size float64, c color.Color) *Text {
	return &Text{Value: value, X: x, Y: y, Size: size, Color: c, Alpha: 1}
}

func (t *Text) Visible() bool     { return t != nil && !t.hidden }
func (t *Text) SetVisible(v bool) { t.hidden = !v }

func (t *Text) SetText(v string) {
	t.Value = v
}

// Container is an ordered group of nodes.
type Container struct {
	children []Node
	hidden   bool
}

func NewContainer() *Container {
	return &Container{}
}

func (c *Container) Visible() bool     { return c != nil && !c.hidden }
func (c *Container) SetVisible(v bool) { c.hidden = !v }

// Add appends n on top of the existing children.
func (c *Container) Add(n Node) {
	if c == nil || n == nil {
		return
	}
	c.children = append(c.children, n)
}

// Remove detaches n. Removing a node that is not a child is a no-op.
func (c *Container) Remove(n Node) bool {
	if c == nil {
		return false
	}
	for i, child := range c.children {
		if child == n {
			c.children = append(c.children[:i], c.children[i+1:]...)
			return true
		}
	}
	return false
}

// SetChildren replaces the child list, keeping the given order.
func (c *Container) SetChildren(nodes []Node) {
	if c == nil {
		return
	}
	c.children = append([]Node(nil), nodes...)
}

// Children returns the children in draw order.
func (c *Container) Children() []Node {
	if c == nil {
		return nil
	}
	return c.children
}

func (c *Container) Clear() {
	if c == nil {
		return
	}
	c.children = nil
}
