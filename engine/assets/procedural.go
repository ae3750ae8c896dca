package assets

import (
	"image"
	"image/color"

	"github.com/hubastard/sprout/engine/core"
)

// Checkerboard builds a size x size texture of cell-sized squares
// alternating between a and b.
func Checkerboard(size, cell int, a, b color.RGBA) core.TextureDesc {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := a
			if (x/cell+y/cell)%2 == 1 {
				c = b
			}
			img.SetRGBA(x, y, c)
		}
	}
	return FromImage(img)
}

// SpriteSheet builds a frames x 1 strip of cell-sized frames. Frame i has a
// bar filling i+1 of frames parts of the cell width, which makes playback
// visible without shipping an image.
func SpriteSheet(frames, cell int, bg, fg color.RGBA) core.TextureDesc {
	img := image.NewRGBA(image.Rect(0, 0, frames*cell, cell))
	for f := 0; f < frames; f++ {
		fill := (f + 1) * cell / frames
		for y := 0; y < cell; y++ {
			for x := 0; x < cell; x++ {
				c := bg
				if x < fill && y >= cell/4 && y < cell-cell/4 {
					c = fg
				}
				img.SetRGBA(f*cell+x, y, c)
			}
		}
	}
	return FromImage(img)
}
