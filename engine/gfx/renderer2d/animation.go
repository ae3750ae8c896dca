package renderer2d

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/sprout/engine/colors"
	"github.com/hubastard/sprout/engine/core"
)

// Animation steps through the frames laid out left to right on one row of a
// sprite sheet.
type Animation struct {
	Texture    core.Texture
	Row        int
	CellW      int
	CellH      int
	FrameCount int
	FrameTime  int // ticks each frame stays on screen
	Looping    bool

	frame int
	timer int
}

func NewAnimation(tex core.Texture, row, cellW, cellH, frameCount, frameTime int, looping bool) *Animation {
	return &Animation{
		Texture: tex, Row: row,
		CellW: cellW, CellH: cellH,
		FrameCount: frameCount, FrameTime: frameTime,
		Looping: looping,
	}
}

// Frame returns the current frame index.
func (a *Animation) Frame() int { return a.frame }

// Done reports whether a non-looping animation has reached its last frame.
func (a *Animation) Done() bool { return !a.Looping && a.frame == a.FrameCount-1 }

// Reset rewinds to the first frame.
func (a *Animation) Reset() { a.frame, a.timer = 0, 0 }

// Update advances the animation by one tick.
func (a *Animation) Update() {
	if a.timer >= a.FrameTime {
		a.timer = 0
		a.frame++
	}
	if a.frame >= a.FrameCount {
		if a.Looping {
			a.frame = 0
		} else {
			a.frame = a.FrameCount - 1
		}
	}
	a.timer++
}

// Region returns the sheet cell of the current frame.
func (a *Animation) Region() Region {
	return FromGrid(a.Texture, a.frame, a.Row, a.CellW, a.CellH)
}

// Draw issues a sprite for the current frame at its native cell size.
func (a *Animation) Draw(rd *Renderer2D, position mgl32.Vec2, rotation float32, colour colors.Colour) Outcome {
	size := mgl32.Vec2{float32(a.CellW), float32(a.CellH)}
	return rd.Region(a.Region(), position, size, rotation, colour)
}
