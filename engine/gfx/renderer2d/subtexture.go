package renderer2d

import (
	"github.com/hubastard/sprout/engine/core"
	"github.com/hubastard/sprout/engine/shapes"
)

// Region is a pixel-space sub-rectangle of a texture (an atlas cell, a
// sprite-sheet frame).
type Region struct {
	Texture core.Texture
	Source  shapes.Rectangle
}

// FullRegion covers the whole texture.
func FullRegion(tex core.Texture) Region {
	return Region{Texture: tex, Source: shapes.Rect(0, 0, float32(tex.Width()), float32(tex.Height()))}
}

// FromPixels builds a region from pixel coordinates within tex.
func FromPixels(tex core.Texture, x, y, w, h int) Region {
	return Region{Texture: tex, Source: shapes.Rect(float32(x), float32(y), float32(w), float32(h))}
}

// FromGrid builds a region from tile grid coordinates (cx,cy) of cell size
// (cw,ch).
func FromGrid(tex core.Texture, cx, cy, cw, ch int) Region {
	return FromPixels(tex, cx*cw, cy*ch, cw, ch)
}

// UV returns the normalised texture coordinates of the region.
func (r Region) UV() UVRect {
	return SourceUV(r.Source, r.Texture.Width(), r.Texture.Height())
}
