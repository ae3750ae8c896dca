package colors

import (
	"math"

	"golang.org/x/exp/constraints"
)

// colourRange is the canonical full-intensity channel value.
const colourRange = 255.0

// gamma is the exponent applied when converting to display colour.
const gamma = 2.2

// Color is a display colour ready to be written into a vertex: RGBA in
// [0,1].
type Color [4]float32

func (c Color) WithAlpha(a float32) Color {
	c[3] = a
	return c
}

// Colour is an authoring colour with 16-bit channels. Channels are expressed
// on the 0..255 scale. The wider uint16 range is not an extended gamut:
// Linear clamps every channel above 255 to full intensity, so 256 and 65535
// both encode as 1.
type Colour struct {
	R, G, B, A uint16
}

// New returns an opaque colour.
func New(r, g, b uint16) Colour { return Colour{R: r, G: g, B: b, A: 255} }

var (
	White          = Colour{255, 255, 255, 255}
	Red            = Colour{255, 0, 0, 255}
	Green          = Colour{0, 255, 0, 255}
	Blue           = Colour{0, 0, 255, 255}
	Black          = Colour{0, 0, 0, 255}
	CornflowerBlue = Colour{100, 149, 237, 255}
	Yellow         = Colour{255, 255, 0, 255}
	DarkGray       = Colour{20, 26, 31, 255}
)

func (c Colour) WithAlpha(a uint16) Colour {
	c.A = a
	return c
}

// Linear gamma-encodes every channel (alpha included): normalise by 255,
// clamp to [0,1], raise to 2.2.
func (c Colour) Linear() Color {
	return Color{
		encode(c.R),
		encode(c.G),
		encode(c.B),
		encode(c.A),
	}
}

func encode(ch uint16) float32 {
	v := clamp(float64(ch)/colourRange, 0, 1)
	return float32(math.Pow(v, gamma))
}

func clamp[T constraints.Float](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
