package core

// Vertex is shared by every primitive category. Outline categories leave UV
// and Slot at zero.
type Vertex struct {
	Position [2]float32 // already projected (world * camera * model)
	UV       [2]float32
	Color    [4]float32 // linear [0,1]
	Slot     uint32     // index into the bound texture array
}

// Primitive identifies a geometry category. Each category is drawn by its
// own pipeline and owns its own vertex/index lists.
type Primitive int

const (
	PrimitiveSprite Primitive = iota
	PrimitiveGlyph
	PrimitiveRectangle
	PrimitiveCircle

	PrimitiveCount
)

func (p Primitive) String() string {
	switch p {
	case PrimitiveSprite:
		return "sprite"
	case PrimitiveGlyph:
		return "glyph"
	case PrimitiveRectangle:
		return "rectangle"
	case PrimitiveCircle:
		return "circle"
	default:
		return "unknown"
	}
}

// Textured reports whether the category samples from bound textures.
func (p Primitive) Textured() bool {
	return p == PrimitiveSprite || p == PrimitiveGlyph
}

// Lines reports whether the index list describes line segments rather than
// triangles.
func (p Primitive) Lines() bool {
	return p == PrimitiveRectangle || p == PrimitiveCircle
}

// Submission is one category's worth of geometry for a single draw call.
// Vertices and Indices are borrowed: they are reused by the caller as soon
// as Submit returns.
type Submission struct {
	Primitive Primitive
	Textures  [MaxTextureSlots]Texture
	Vertices  []Vertex
	Indices   []uint16
}

// Backend is the lower-level GPU surface the batcher submits to.
type Backend interface {
	// SetClearColour sets the colour used the next time the target is
	// cleared. It never touches submitted geometry.
	SetClearColour(r, g, b, a float32)
	// Submit draws one category. It returns ErrSurfaceLost, ErrOutOfMemory,
	// ErrTimeout or another error describing why nothing was drawn.
	Submit(s *Submission) error
	// Reconfigure rebuilds the presentation surface after ErrSurfaceLost.
	Reconfigure() error
}
