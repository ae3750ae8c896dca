package glbackend

import (
	"fmt"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/hubastard/sprout/engine/core"
)

// Texture is a GL texture object. It satisfies core.Texture.
type Texture struct {
	id     core.TextureID
	handle uint32
	w, h   int
	format core.TextureFormat
}

func (t *Texture) ID() core.TextureID { return t.id }
func (t *Texture) Width() int         { return t.w }
func (t *Texture) Height() int        { return t.h }

// CreateTexture uploads desc. Rows are stored bottom first so that V=1
// samples the top of the image.
func (r *RendererGL) CreateTexture(desc core.TextureDesc) (core.Texture, error) {
	if desc.Width <= 0 || desc.Height <= 0 {
		return nil, fmt.Errorf("create texture: invalid size %dx%d", desc.Width, desc.Height)
	}
	if want := desc.Width * desc.Height * desc.Format.BytesPerPixel(); len(desc.Pixels) != want {
		return nil, fmt.Errorf("create texture: got %d bytes of pixels, want %d", len(desc.Pixels), want)
	}

	internal, format := int32(gl.SRGB8_ALPHA8), uint32(gl.RGBA)
	if desc.Format == core.TextureR8 {
		internal, format = gl.R8, gl.RED
	}

	id := desc.ID
	if id == (core.TextureID{}) {
		id = core.NewTextureID()
	}
	t := &Texture{id: id, w: desc.Width, h: desc.Height, format: desc.Format}

	pix := desc.RowsBottomUp()
	gl.GenTextures(1, &t.handle)
	gl.BindTexture(gl.TEXTURE_2D, t.handle)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, filter(desc.MinFilter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, filter(desc.MagFilter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrap(desc.WrapU))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrap(desc.WrapV))
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, internal, int32(desc.Width), int32(desc.Height), 0, format, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	gl.BindTexture(gl.TEXTURE_2D, 0)

	if err := checkError("create texture"); err != nil {
		gl.DeleteTextures(1, &t.handle)
		return nil, err
	}
	r.textures++
	return t, nil
}

// DestroyTexture releases a texture created by this backend. Foreign
// handles are ignored.
func (r *RendererGL) DestroyTexture(tex core.Texture) {
	t, ok := tex.(*Texture)
	if !ok || t.handle == 0 {
		return
	}
	gl.DeleteTextures(1, &t.handle)
	t.handle = 0
	r.textures--
}

func filter(s string) int32 {
	if s == "linear" {
		return gl.LINEAR
	}
	return gl.NEAREST
}

func wrap(s string) int32 {
	if s == "repeat" {
		return gl.REPEAT
	}
	return gl.CLAMP_TO_EDGE
}
