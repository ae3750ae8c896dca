package assets

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/hubastard/sprout/engine/core"
)

// TextureDir is where LoadPNG resolves relative paths.
var TextureDir = filepath.Join("assets", "textures")

// LoadPNG decodes a PNG under TextureDir into a texture description with
// tightly packed RGBA8 pixels (row-major, top-left origin).
func LoadPNG(relPath string) (core.TextureDesc, error) {
	path := filepath.Join(TextureDir, relPath)
	f, err := os.Open(path)
	if err != nil {
		return core.TextureDesc{}, fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()

	desc, err := DecodePNG(f)
	if err != nil {
		return core.TextureDesc{}, fmt.Errorf("decode png %q: %w", path, err)
	}
	return desc, nil
}

// DecodePNG reads a PNG stream. Sampling defaults to nearest/clamp, which
// suits pixel art; callers may override the filters.
func DecodePNG(r io.Reader) (core.TextureDesc, error) {
	img, err := png.Decode(r)
	if err != nil {
		return core.TextureDesc{}, err
	}
	return FromImage(img), nil
}

// FromImage converts any image to an RGBA8 texture description.
func FromImage(img image.Image) core.TextureDesc {
	rgbaImg := imageToRGBA(img)
	w, h := rgbaImg.Bounds().Dx(), rgbaImg.Bounds().Dy()

	// Repack in tight rows (stride == 4*w)
	out := make([]byte, w*h*4)
	src := rgbaImg.Pix
	srcStride := rgbaImg.Stride
	for y := 0; y < h; y++ {
		copy(out[y*w*4:(y+1)*w*4], src[y*srcStride:y*srcStride+w*4])
	}

	return core.TextureDesc{
		Width:     w,
		Height:    h,
		Format:    core.TextureRGBA8,
		Pixels:    out,
		MinFilter: "nearest",
		MagFilter: "nearest",
		WrapU:     "clamp",
		WrapV:     "clamp",
	}
}

func imageToRGBA(img image.Image) *image.RGBA {
	if m, ok := img.(*image.RGBA); ok && m.Rect.Min == (image.Point{}) {
		return m
	}
	dst := image.NewRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
	draw.Draw(dst, dst.Bounds(), img, img.Bounds().Min, draw.Src)
	return dst
}
