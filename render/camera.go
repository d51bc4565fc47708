package render

import (
	"math"

	"github.com/milk9111/stagehand/common"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Camera maps world coordinates to the screen and supports zoom. PosX/PosY
// is the world point shown at the center of the screen.
type Camera struct {
	PosX float64
	PosY float64

	screenW float64
	screenH float64
	zoom    float64

	// smoothing factor (0..1). higher -> faster follow. 0 snaps.
	smooth float64

	// world bounds in pixels; zero width or height means unbounded
	minX, minY float64
	maxX, maxY float64

	chase   func() (x, y float64, ok bool)
	offsetX float64
	offsetY float64

	zoomTween *gween.Tween
}

// NewCamera creates a camera for the given logical screen size.
func NewCamera(screenW, screenH float64) *Camera {
	return &Camera{
		PosX:    screenW / 2,
		PosY:    screenH / 2,
		screenW: screenW,
		screenH: screenH,
		zoom:    1,
	}
}

func (c *Camera) Zoom() float64 {
	return c.zoom
}

// SetZoom changes zoom immediately and cancels any running zoom tween.
func (c *Camera) SetZoom(z float64) {
	if z <= 0 {
		return
	}
	c.zoom = z
	c.zoomTween = nil
}

// ZoomTo eases the zoom toward z over the given number of seconds.
func (c *Camera) ZoomTo(z, seconds float64) {
	if z <= 0 {
		return
	}
	if seconds <= 0 {
		c.SetZoom(z)
		return
	}
	c.zoomTween = gween.New(float32(c.zoom), float32(z), float32(seconds), ease.OutQuad)
}

func (c *Camera) SetSmooth(f float64) {
	c.smooth = common.Clamp(f, 0, 1)
}

// SetBounds limits the view to the world rectangle (minX,minY)-(maxX,maxY).
func (c *Camera) SetBounds(minX, minY, maxX, maxY float64) {
	c.minX, c.minY = minX, minY
	c.maxX, c.maxY = maxX, maxY
}

func (c *Camera) Bounds() (float64, float64, float64, float64) {
	return c.minX, c.minY, c.maxX, c.maxY
}

// Chase makes the camera follow target every Update. offset shifts the
// followed point, e.g. to look ahead of a hero.
func (c *Camera) Chase(target func() (x, y float64, ok bool), offsetX, offsetY float64) {
	c.chase = target
	c.offsetX, c.offsetY = offsetX, offsetY
}

func (c *Camera) StopChase() {
	c.chase = nil
}

func (c *Camera) Chasing() bool {
	return c.chase != nil
}

// CenterOn places the view center at (x, y), clamped to the bounds.
func (c *Camera) CenterOn(x, y float64) {
	c.PosX, c.PosY = x, y
	c.clamp()
}

// Update advances the zoom tween and follows the chase target.
func (c *Camera) Update(dt float64) {
	if c.zoomTween != nil {
		z, done := c.zoomTween.Update(float32(dt))
		if z > 0 {
			c.zoom = float64(z)
		}
		if done {
			c.zoomTween = nil
		}
	}

	if c.chase != nil {
		if tx, ty, ok := c.chase(); ok {
			tx += c.offsetX
			ty += c.offsetY
			if c.smooth <= 0 {
				c.PosX, c.PosY = tx, ty
			} else {
				c.PosX += (tx - c.PosX) * c.smooth
				c.PosY += (ty - c.PosY) * c.smooth
			}
		}
	}
	c.clamp()
}

// ViewTopLeft returns the world-space top-left of the current view.
func (c *Camera) ViewTopLeft() (float64, float64) {
	if c.zoom == 0 {
		return c.PosX, c.PosY
	}
	viewW := c.screenW / c.zoom
	viewH := c.screenH / c.zoom
	return c.PosX - viewW/2.0, c.PosY - viewH/2.0
}

// WorldToScreen converts a world point to screen pixels.
func (c *Camera) WorldToScreen(x, y float64) (float64, float64) {
	left, top := c.ViewTopLeft()
	return (x - left) * c.zoom, (y - top) * c.zoom
}

// ScreenToWorld converts screen pixels to a world point.
func (c *Camera) ScreenToWorld(x, y float64) (float64, float64) {
	left, top := c.ViewTopLeft()
	if c.zoom == 0 {
		return left + x, top + y
	}
	return left + x/c.zoom, top + y/c.zoom
}

func (c *Camera) clamp() {
	if c.zoom == 0 {
		return
	}
	halfW := c.screenW / c.zoom / 2.0
	halfH := c.screenH / c.zoom / 2.0
	if c.maxX > c.minX {
		lo := c.minX + halfW
		hi := c.maxX - halfW
		if hi < lo {
			// world smaller than view: center on world
			c.PosX = (c.minX + c.maxX) / 2.0
		} else {
			c.PosX = common.Clamp(c.PosX, lo, hi)
		}
	}
	if c.maxY > c.minY {
		lo := c.minY + halfH
		hi := c.maxY - halfH
		if hi < lo {
			c.PosY = (c.minY + c.maxY) / 2.0
		} else {
			c.PosY = common.Clamp(c.PosY, lo, hi)
		}
	}
	if math.IsNaN(c.PosX) || math.IsNaN(c.PosY) {
		c.PosX, c.PosY = c.screenW/2, c.screenH/2
	}
}
