package core

import "github.com/google/uuid"

// MaxTextureSlots is the fixed arity of the texture binding array of one
// draw call.
const MaxTextureSlots = 16

// TextureID is the stable identity of a texture. Two handles with the same
// ID are interchangeable for slot allocation.
type TextureID = uuid.UUID

// NewTextureID returns a fresh random identity for a texture that has no
// natural content key (images loaded from disk, render targets).
func NewTextureID() TextureID { return uuid.New() }

// ContentTextureID derives an identity from the texture's bytes so that
// identical content always maps to the same ID.
func ContentTextureID(space TextureID, content []byte) TextureID {
	return uuid.NewSHA1(space, content)
}

// Texture is a borrowed handle to a GPU texture owned by the asset layer.
type Texture interface {
	ID() TextureID
	Width() int
	Height() int
}

type TextureFormat int

const (
	TextureRGBA8 TextureFormat = iota
	TextureR8                  // single channel coverage (glyphs)
)

// BytesPerPixel reports the tight pixel size of the format.
func (f TextureFormat) BytesPerPixel() int {
	if f == TextureR8 {
		return 1
	}
	return 4
}

type TextureDesc struct {
	ID                   TextureID // zero value means "assign a random one"
	Width, Height        int
	Format               TextureFormat
	Pixels               []byte // tightly packed, row-major, top-left origin
	MinFilter, MagFilter string // "nearest" | "linear"
	WrapU, WrapV         string // "clamp" | "repeat"
}

// Device creates and destroys textures.
type Device interface {
	CreateTexture(desc TextureDesc) (Texture, error)
	DestroyTexture(t Texture)
}

// RowsBottomUp returns the pixels with the row order reversed, as expected
// by APIs whose image origin is bottom-left. The input is left untouched.
func (d TextureDesc) RowsBottomUp() []byte {
	return FlipRows(d.Pixels, d.Width*d.Format.BytesPerPixel())
}

// FlipRows reverses the rows of a tightly packed image with the given row
// stride in bytes.
func FlipRows(pix []byte, stride int) []byte {
	if stride <= 0 {
		return nil
	}
	out := make([]byte, len(pix))
	rows := len(pix) / stride
	for y := 0; y < rows; y++ {
		copy(out[(rows-1-y)*stride:(rows-y)*stride], pix[y*stride:(y+1)*stride])
	}
	return out
}
