package shapes

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Rectangle is an axis-aligned box anchored at its top-left corner
// (positive Y goes down).
type Rectangle struct {
	X, Y          float32
	Width, Height float32
}

func Rect(x, y, w, h float32) Rectangle { return Rectangle{X: x, Y: y, Width: w, Height: h} }

func (r Rectangle) Left() float32   { return r.X }
func (r Rectangle) Right() float32  { return r.X + r.Width }
func (r Rectangle) Top() float32    { return r.Y }
func (r Rectangle) Bottom() float32 { return r.Y + r.Height }

func (r Rectangle) Position() mgl32.Vec2 { return mgl32.Vec2{r.X, r.Y} }
func (r Rectangle) Size() mgl32.Vec2     { return mgl32.Vec2{r.Width, r.Height} }

func (r Rectangle) Centre() mgl32.Vec2 {
	return mgl32.Vec2{r.X + r.Width*0.5, r.Y + r.Height*0.5}
}

// Circle is a centre and a radius.
type Circle struct {
	Centre mgl32.Vec2
	Radius float32
}

func NewCircle(centre mgl32.Vec2, radius float32) Circle {
	return Circle{Centre: centre, Radius: radius}
}

// Intersect reports whether a and b overlap and, if so, the depth vector
// that pushes a out of b along each axis. Touching edges do not overlap.
func Intersect(a, b Rectangle) (mgl32.Vec2, bool) {
	ca, cb := a.Centre(), b.Centre()
	dx, dy := ca.X()-cb.X(), ca.Y()-cb.Y()

	minX := (a.Width + b.Width) * 0.5
	minY := (a.Height + b.Height) * 0.5

	if abs(dx) >= minX || abs(dy) >= minY {
		return mgl32.Vec2{}, false
	}

	depth := mgl32.Vec2{-minX - dx, -minY - dy}
	if dx > 0 {
		depth[0] = minX - dx
	}
	if dy > 0 {
		depth[1] = minY - dy
	}
	return depth, true
}

func abs(v float32) float32 { return float32(math.Abs(float64(v))) }
