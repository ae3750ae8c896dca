package text

import (
	"errors"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

func TestLayoutSkipsSpaces(t *testing.T) {
	fr := NewFaceRasterizer()
	t.Cleanup(func() { _ = fr.Close() })

	glyphs, err := fr.Layout(goregular.TTF, "a b\tc", 24)
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	if len(glyphs) != 3 {
		t.Fatalf("got %d glyphs, want 3", len(glyphs))
	}
	for i, want := range []rune{'a', 'b', 'c'} {
		if glyphs[i].Rune != want {
			t.Errorf("glyph %d = %q, want %q", i, glyphs[i].Rune, want)
		}
	}
	for i := 1; i < len(glyphs); i++ {
		if glyphs[i].Centre.X() <= glyphs[i-1].Centre.X() {
			t.Errorf("pen did not advance: %v then %v", glyphs[i-1].Centre, glyphs[i].Centre)
		}
	}
}

func TestLayoutBitmaps(t *testing.T) {
	fr := NewFaceRasterizer()
	t.Cleanup(func() { _ = fr.Close() })

	glyphs, err := fr.Layout(goregular.TTF, "Hi", 32)
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	for _, g := range glyphs {
		if g.W <= 0 || g.H <= 0 {
			t.Fatalf("%q has empty bounds %dx%d", g.Rune, g.W, g.H)
		}
		if len(g.Bitmap) != g.W*g.H {
			t.Errorf("%q bitmap len = %d, want %d", g.Rune, len(g.Bitmap), g.W*g.H)
		}
		var lit bool
		for _, p := range g.Bitmap {
			if p != 0 {
				lit = true
				break
			}
		}
		if !lit {
			t.Errorf("%q bitmap has no coverage", g.Rune)
		}
		if g.Centre.Y() <= 0 {
			t.Errorf("%q should sit below the origin, centre %v", g.Rune, g.Centre)
		}
	}
}

func TestGlyphKeysAreContentAddressed(t *testing.T) {
	fr := NewFaceRasterizer()
	t.Cleanup(func() { _ = fr.Close() })

	glyphs, err := fr.Layout(goregular.TTF, "aba", 20)
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	if len(glyphs) != 3 {
		t.Fatalf("got %d glyphs, want 3", len(glyphs))
	}
	if glyphs[0].Key != glyphs[2].Key {
		t.Errorf("identical glyphs got different keys")
	}
	if glyphs[0].Key == glyphs[1].Key {
		t.Errorf("different glyphs share a key")
	}

	again, err := NewFaceRasterizer().Layout(goregular.TTF, "a", 20)
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	if again[0].Key != glyphs[0].Key {
		t.Errorf("key is not stable across rasterizers")
	}
}

func TestLayoutNewline(t *testing.T) {
	fr := NewFaceRasterizer()
	t.Cleanup(func() { _ = fr.Close() })

	glyphs, err := fr.Layout(goregular.TTF, "x\nx", 20)
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	if len(glyphs) != 2 {
		t.Fatalf("got %d glyphs, want 2", len(glyphs))
	}
	if glyphs[0].Centre.X() != glyphs[1].Centre.X() {
		t.Errorf("second line should restart at x=0: %v vs %v", glyphs[0].Centre, glyphs[1].Centre)
	}
	if glyphs[1].Centre.Y() <= glyphs[0].Centre.Y() {
		t.Errorf("second line should be lower: %v vs %v", glyphs[0].Centre, glyphs[1].Centre)
	}
}

func TestLayoutErrors(t *testing.T) {
	fr := NewFaceRasterizer()
	if _, err := fr.Layout(nil, "a", 12); !errors.Is(err, ErrNoFont) {
		t.Errorf("nil font: err = %v, want ErrNoFont", err)
	}
	if _, err := fr.Layout([]byte("not a font"), "a", 12); err == nil {
		t.Errorf("garbage font: expected an error")
	}
}

func TestMeasure(t *testing.T) {
	fr := NewFaceRasterizer()
	t.Cleanup(func() { _ = fr.Close() })

	w1, h1, err := fr.Measure(goregular.TTF, "hello", 16)
	if err != nil {
		t.Fatalf("Measure() error = %v", err)
	}
	w2, h2, err := fr.Measure(goregular.TTF, "hello\nhi", 16)
	if err != nil {
		t.Fatalf("Measure() error = %v", err)
	}
	if w1 <= 0 || h1 <= 0 {
		t.Fatalf("Measure(hello) = %v x %v", w1, h1)
	}
	if w2 != w1 {
		t.Errorf("widest line should win: %v vs %v", w2, w1)
	}
	if h2 != 2*h1 {
		t.Errorf("two lines should be twice as tall: %v vs %v", h2, h1)
	}
}

func TestFaceCachedPerFontSlice(t *testing.T) {
	fr := NewFaceRasterizer()
	t.Cleanup(func() { _ = fr.Close() })

	first, err := fr.Face(goregular.TTF, 18)
	if err != nil {
		t.Fatalf("Face() error = %v", err)
	}
	for i := 0; i < 2; i++ {
		if _, err := fr.Layout(goregular.TTF, "ab", 18); err != nil {
			t.Fatalf("Layout() error = %v", err)
		}
	}
	again, err := fr.Face(goregular.TTF, 18)
	if err != nil {
		t.Fatalf("Face() error = %v", err)
	}
	if again != first {
		t.Errorf("same font slice built a second face")
	}
	if len(fr.ids) != 1 || len(fr.faces) != 1 {
		t.Errorf("cached %d font ids and %d faces, want 1 and 1", len(fr.ids), len(fr.faces))
	}

	// a copy of the bytes is hashed once more but maps to the same face
	copied := append([]byte(nil), goregular.TTF...)
	other, err := fr.Face(copied, 18)
	if err != nil {
		t.Fatalf("Face() error = %v", err)
	}
	if other != first {
		t.Errorf("equal font content built a second face")
	}
	if len(fr.ids) != 2 || len(fr.fonts) != 1 {
		t.Errorf("cached %d font ids and %d fonts, want 2 and 1", len(fr.ids), len(fr.fonts))
	}
}

func TestCloseDropsCaches(t *testing.T) {
	fr := NewFaceRasterizer()
	before, err := fr.Face(goregular.TTF, 18)
	if err != nil {
		t.Fatalf("Face() error = %v", err)
	}
	if err := fr.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if len(fr.ids) != 0 || len(fr.fonts) != 0 || len(fr.faces) != 0 {
		t.Fatalf("caches not empty after Close")
	}
	after, err := fr.Face(goregular.TTF, 18)
	if err != nil {
		t.Fatalf("Face() error = %v", err)
	}
	t.Cleanup(func() { _ = fr.Close() })
	if after == before {
		t.Errorf("Close kept the old face")
	}
}
