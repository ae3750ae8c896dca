package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// PixelWorld maps pixel coordinates (origin top-left, Y down) of a
// width x height target onto clip space. It is the frame-global world
// transform applied before the camera.
func PixelWorld(width, height int) mgl32.Mat4 {
	return mgl32.Ortho(0, float32(width), float32(height), 0, -1, 1)
}

// Camera2D is a view transform in pixel space: it pans, rotates and zooms
// around the centre of the viewport. The zero value is not usable; use
// NewCamera2D.
type Camera2D struct {
	X, Y        float32
	RotationRad float32
	Zoom        float32 // 1 = no zoom

	viewW, viewH float32
	view         mgl32.Mat4
	dirty        bool
}

func NewCamera2D(viewportW, viewportH int) *Camera2D {
	c := &Camera2D{Zoom: 1}
	c.SetViewportPixels(viewportW, viewportH)
	c.Recalculate()
	return c
}

func (c *Camera2D) SetViewportPixels(w, h int) {
	c.viewW, c.viewH = float32(w), float32(h)
	c.dirty = true
}

func (c *Camera2D) Move(dx, dy float32) { c.X += dx; c.Y += dy; c.dirty = true }
func (c *Camera2D) Rotate(dRad float32) { c.RotationRad += dRad; c.dirty = true }
func (c *Camera2D) SetPosition(x, y float32) {
	c.X, c.Y = x, y
	c.dirty = true
}

func (c *Camera2D) SetZoom(z float32) {
	if z < 0.05 {
		z = 0.05
	}
	c.Zoom = z
	c.dirty = true
}

// View returns the camera transform handed to the batcher at Begin.
func (c *Camera2D) View() mgl32.Mat4 {
	if c.dirty {
		c.Recalculate()
	}
	return c.view
}

func (c *Camera2D) Recalculate() {
	// view = T(centre) * S(zoom) * R(-rot) * T(-centre - pos)
	cx, cy := c.viewW*0.5, c.viewH*0.5
	c.view = mgl32.Translate3D(cx, cy, 0).
		Mul4(mgl32.Scale3D(c.Zoom, c.Zoom, 1)).
		Mul4(mgl32.HomogRotate3DZ(-c.RotationRad)).
		Mul4(mgl32.Translate3D(-cx-c.X, -cy-c.Y, 0))
	c.dirty = false
}
