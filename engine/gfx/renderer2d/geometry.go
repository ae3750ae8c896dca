package renderer2d

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/sprout/engine/colors"
	"github.com/hubastard/sprout/engine/core"
	"github.com/hubastard/sprout/engine/shapes"
)

// Per-primitive templates.
const (
	vertsPerQuad = 4
	indsPerQuad  = 6

	vertsPerRect = 4
	indsPerRect  = 8

	circleSegments = 32
	vertsPerCircle = circleSegments + 1 // last vertex closes the loop on the first
	indsPerCircle  = circleSegments * 2
	circleStep     = math.Pi / 16
)

var (
	quadIndices = [indsPerQuad]uint16{0, 1, 3, 1, 2, 3}
	rectIndices = [indsPerRect]uint16{0, 1, 1, 2, 2, 3, 3, 0}
)

// UVRect holds normalised texture coordinates. Corners of a quad map to
// (U0,V0), (U0,V1), (U1,V1), (U1,V0) in builder corner order.
type UVRect struct {
	U0, V0, U1, V1 float32
}

// FullUV samples the whole texture.
var FullUV = UVRect{0, 0, 1, 1}

// SourceUV converts a pixel-space source region of a texW x texH texture to
// texture coordinates. V is flipped: pixel rows grow downward from the top
// while sampling starts at the bottom.
func SourceUV(src shapes.Rectangle, texW, texH int) UVRect {
	w, h := float32(texW), float32(texH)
	return UVRect{
		U0: src.Left() / w,
		V0: 1 - src.Bottom()/h,
		U1: src.Right() / w,
		V1: 1 - src.Top()/h,
	}
}

// ModelMatrix is translation(position) * rotation about Z.
func ModelMatrix(position mgl32.Vec2, rotation float32) mgl32.Mat4 {
	m := mgl32.Translate3D(position.X(), position.Y(), 0)
	if rotation != 0 {
		m = m.Mul4(mgl32.HomogRotate3DZ(rotation))
	}
	return m
}

// Chain composes world * camera * model. The frame-global transforms come
// first so rotation stays in object space.
func Chain(world, camera, model mgl32.Mat4) mgl32.Mat4 {
	return world.Mul4(camera).Mul4(model)
}

// QuadFragment is the geometry of one sprite or glyph.
type QuadFragment struct {
	Vertices [vertsPerQuad]core.Vertex
	Indices  [indsPerQuad]uint16
}

// RectFragment is the outline of one rectangle as four line segments.
type RectFragment struct {
	Vertices [vertsPerRect]core.Vertex
	Indices  [indsPerRect]uint16
}

// CircleFragment is the outline of one circle as a closed line loop.
type CircleFragment struct {
	Vertices [vertsPerCircle]core.Vertex
	Indices  [indsPerCircle]uint16
}

// corners transforms a local quad centred at the origin with the given
// size. Order: (-x,-y), (-x,+y), (+x,+y), (+x,-y).
func corners(transform mgl32.Mat4, size mgl32.Vec2) [4][2]float32 {
	hx, hy := size.X()*0.5, size.Y()*0.5
	local := [4]mgl32.Vec4{
		{-hx, -hy, 0, 1},
		{-hx, hy, 0, 1},
		{hx, hy, 0, 1},
		{hx, -hy, 0, 1},
	}
	var out [4][2]float32
	for i, p := range local {
		v := transform.Mul4x1(p)
		out[i] = [2]float32{v.X(), v.Y()}
	}
	return out
}

// BuildQuad emits a textured quad. base is the index offset of the first
// vertex within its category (4 * draws so far).
func BuildQuad(transform mgl32.Mat4, size mgl32.Vec2, uv UVRect, colour colors.Color, slot uint32, base uint16) QuadFragment {
	pos := corners(transform, size)
	// Y grows down in pixel space while V grows up, so the upper corners
	// (-hy) take V1.
	uvs := [4][2]float32{
		{uv.U0, uv.V1},
		{uv.U0, uv.V0},
		{uv.U1, uv.V0},
		{uv.U1, uv.V1},
	}
	var f QuadFragment
	for i := range f.Vertices {
		f.Vertices[i] = core.Vertex{Position: pos[i], UV: uvs[i], Color: colour, Slot: slot}
	}
	for i, idx := range quadIndices {
		f.Indices[i] = base + idx
	}
	return f
}

// BuildSprite maps the src pixel region of a texW x texH texture onto a
// quad of the given size, positioned and rotated by transform.
func BuildSprite(transform mgl32.Mat4, size mgl32.Vec2, src shapes.Rectangle, texW, texH int, colour colors.Color, slot uint32, base uint16) QuadFragment {
	return BuildQuad(transform, size, SourceUV(src, texW, texH), colour, slot, base)
}

// BuildGlyph is a quad over the whole glyph bitmap.
func BuildGlyph(transform mgl32.Mat4, w, h int, colour colors.Color, slot uint32, base uint16) QuadFragment {
	return BuildQuad(transform, mgl32.Vec2{float32(w), float32(h)}, FullUV, colour, slot, base)
}

// BuildRectangle emits the four corners of r and the line list
// 0-1, 1-2, 2-3, 3-0.
func BuildRectangle(world, camera mgl32.Mat4, r shapes.Rectangle, colour colors.Color, base uint16) RectFragment {
	transform := Chain(world, camera, ModelMatrix(r.Centre(), 0))
	pos := corners(transform, r.Size())
	var f RectFragment
	for i := range f.Vertices {
		f.Vertices[i] = core.Vertex{Position: pos[i], Color: colour}
	}
	for i, idx := range rectIndices {
		f.Indices[i] = base + idx
	}
	return f
}

// BuildCircle approximates c with 33 points at pi/16 steps; point 32 lands
// on point 0 so the 32 segments close the loop.
func BuildCircle(world, camera mgl32.Mat4, c shapes.Circle, colour colors.Color, base uint16) CircleFragment {
	transform := Chain(world, camera, ModelMatrix(c.Centre, 0))
	var f CircleFragment
	for i := range f.Vertices {
		a := float64(i) * circleStep
		p := mgl32.Vec4{
			float32(math.Cos(a)) * c.Radius,
			float32(math.Sin(a)) * c.Radius,
			0, 1,
		}
		v := transform.Mul4x1(p)
		f.Vertices[i] = core.Vertex{Position: [2]float32{v.X(), v.Y()}, Color: colour}
	}
	for i := 0; i < circleSegments; i++ {
		f.Indices[2*i] = base + uint16(i)
		f.Indices[2*i+1] = base + uint16(i+1)
	}
	return f
}
