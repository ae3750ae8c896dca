package text

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"unicode"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/hubastard/sprout/engine/core"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

var ErrNoFont = errors.New("text: empty font data")

// glyphSpace namespaces content-addressed glyph texture IDs.
var glyphSpace = uuid.MustParse("6f2b8c1e-4d0a-5b7e-9c3f-2a1d8e6b4c70")

// fontSpace namespaces font content keys.
var fontSpace = uuid.MustParse("0b9e3f52-7a64-5c18-8d2e-4f7a1c9b3e05")

// Glyph is one rasterized, positioned character.
type Glyph struct {
	Rune rune
	// Key is derived from the bitmap, so identical glyphs share it.
	Key core.TextureID
	// Centre is the offset of the glyph quad's centre from the text origin
	// (top-left of the first line, Y down).
	Centre mgl32.Vec2
	W, H   int
	Bitmap []byte // W*H coverage, row-major, top-left origin
}

// Rasterizer lays out a string and rasterizes each visible character.
type Rasterizer interface {
	Layout(fontData []byte, s string, sizePx float32) ([]Glyph, error)
}

type faceKey struct {
	font uuid.UUID
	size float32
}

// sliceKey identifies a font slice by its backing array.
type sliceKey struct {
	data *byte
	n    int
}

// FaceRasterizer rasterizes with golang.org/x/image opentype faces. Parsed
// fonts and sized faces are cached by content so callers can pass the same
// font bytes every frame. Font slices must not be modified after first use.
// Not safe for concurrent use.
type FaceRasterizer struct {
	ids   map[sliceKey]uuid.UUID
	fonts map[uuid.UUID]*opentype.Font
	faces map[faceKey]font.Face
}

func NewFaceRasterizer() *FaceRasterizer {
	return &FaceRasterizer{
		ids:   make(map[sliceKey]uuid.UUID),
		fonts: make(map[uuid.UUID]*opentype.Font),
		faces: make(map[faceKey]font.Face),
	}
}

// fontID hashes fontData once per backing array.
func (fr *FaceRasterizer) fontID(fontData []byte) uuid.UUID {
	sk := sliceKey{data: unsafe.SliceData(fontData), n: len(fontData)}
	if id, ok := fr.ids[sk]; ok {
		return id
	}
	id := uuid.NewSHA1(fontSpace, fontData)
	fr.ids[sk] = id
	return id
}

// Face returns the cached face of fontData at sizePx.
func (fr *FaceRasterizer) Face(fontData []byte, sizePx float32) (font.Face, error) {
	if len(fontData) == 0 {
		return nil, ErrNoFont
	}
	id := fr.fontID(fontData)
	key := faceKey{font: id, size: sizePx}
	if f, ok := fr.faces[key]; ok {
		return f, nil
	}

	ft, ok := fr.fonts[id]
	if !ok {
		var err error
		ft, err = opentype.Parse(fontData)
		if err != nil {
			return nil, fmt.Errorf("parse font: %w", err)
		}
		fr.fonts[id] = ft
	}

	face, err := opentype.NewFace(ft, &opentype.FaceOptions{
		Size: float64(sizePx), DPI: 72, Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}
	fr.faces[key] = face
	return face, nil
}

// Layout places s with its first baseline one ascent below the origin.
// Whitespace only advances the pen; '\n' starts a new line.
func (fr *FaceRasterizer) Layout(fontData []byte, s string, sizePx float32) ([]Glyph, error) {
	face, err := fr.Face(fontData, sizePx)
	if err != nil {
		return nil, err
	}
	m := face.Metrics()

	glyphs := make([]Glyph, 0, len(s))
	dot := fixed.Point26_6{X: 0, Y: m.Ascent}
	prev := rune(-1)

	for _, r := range s {
		if r == '\n' {
			dot.X = 0
			dot.Y += m.Height
			prev = -1
			continue
		}
		if prev >= 0 {
			dot.X += face.Kern(prev, r)
		}
		prev = r

		if unicode.IsSpace(r) {
			adv, _ := face.GlyphAdvance(r)
			dot.X += adv
			continue
		}

		// Snap to whole pixels so repeated characters rasterize to the same
		// bitmap and therefore the same key.
		snapped := fixed.Point26_6{X: fixed.I(dot.X.Round()), Y: fixed.I(dot.Y.Round())}
		dr, mask, maskp, adv, ok := face.Glyph(snapped, r)
		dot.X += adv
		if !ok || dr.Empty() {
			continue
		}

		w, h := dr.Dx(), dr.Dy()
		bmp := image.NewAlpha(image.Rect(0, 0, w, h))
		draw.Draw(bmp, bmp.Bounds(), mask, maskp, draw.Src)

		glyphs = append(glyphs, Glyph{
			Rune: r,
			Key:  GlyphKey(w, h, bmp.Pix),
			Centre: mgl32.Vec2{
				float32(dr.Min.X) + float32(w)*0.5,
				float32(dr.Min.Y) + float32(h)*0.5,
			},
			W: w, H: h,
			Bitmap: bmp.Pix,
		})
	}
	return glyphs, nil
}

// Measure returns the extent of s: the widest line's advance and the total
// line height.
func (fr *FaceRasterizer) Measure(fontData []byte, s string, sizePx float32) (width, height float32, err error) {
	face, err := fr.Face(fontData, sizePx)
	if err != nil {
		return 0, 0, err
	}
	m := face.Metrics()

	var lineW, maxW fixed.Int26_6
	lines := 1
	prev := rune(-1)
	for _, r := range s {
		if r == '\n' {
			maxW = max(maxW, lineW)
			lineW = 0
			lines++
			prev = -1
			continue
		}
		if prev >= 0 {
			lineW += face.Kern(prev, r)
		}
		adv, _ := face.GlyphAdvance(r)
		lineW += adv
		prev = r
	}
	maxW = max(maxW, lineW)
	return float32(maxW.Round()), float32(m.Height.Round() * lines), nil
}

// Close releases every cached face and forgets the parsed fonts.
func (fr *FaceRasterizer) Close() error {
	var errs []error
	for k, f := range fr.faces {
		errs = append(errs, f.Close())
		delete(fr.faces, k)
	}
	clear(fr.fonts)
	clear(fr.ids)
	return errors.Join(errs...)
}

// GlyphKey content-addresses a w x h coverage bitmap.
func GlyphKey(w, h int, bitmap []byte) core.TextureID {
	buf := make([]byte, 8, 8+len(bitmap))
	binary.LittleEndian.PutUint32(buf[0:], uint32(w))
	binary.LittleEndian.PutUint32(buf[4:], uint32(h))
	buf = append(buf, bitmap...)
	return core.ContentTextureID(glyphSpace, buf)
}
