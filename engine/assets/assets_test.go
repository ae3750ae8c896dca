package assets

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/hubastard/sprout/engine/core"
)

func TestDecodePNG(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.SetNRGBA(0, 0, color.NRGBA{255, 0, 0, 255})
	img.SetNRGBA(2, 1, color.NRGBA{0, 0, 255, 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}

	desc, err := DecodePNG(&buf)
	if err != nil {
		t.Fatalf("DecodePNG() error = %v", err)
	}
	if desc.Width != 3 || desc.Height != 2 || desc.Format != core.TextureRGBA8 {
		t.Fatalf("desc = %dx%d format %v", desc.Width, desc.Height, desc.Format)
	}
	if len(desc.Pixels) != 3*2*4 {
		t.Fatalf("got %d bytes", len(desc.Pixels))
	}
	// top-left origin
	if !bytes.Equal(desc.Pixels[:4], []byte{255, 0, 0, 255}) {
		t.Errorf("first pixel = %v", desc.Pixels[:4])
	}
	if !bytes.Equal(desc.Pixels[20:24], []byte{0, 0, 255, 255}) {
		t.Errorf("last pixel = %v", desc.Pixels[20:24])
	}
}

func TestDecodePNGRejectsGarbage(t *testing.T) {
	if _, err := DecodePNG(bytes.NewReader([]byte("not a png"))); err == nil {
		t.Errorf("expected a decode error")
	}
}

func TestLoadPNGMissingFile(t *testing.T) {
	old := TextureDir
	TextureDir = t.TempDir()
	defer func() { TextureDir = old }()

	_, err := LoadPNG("nope.png")
	if err == nil {
		t.Fatalf("expected an error")
	}
	if want := filepath.Join(TextureDir, "nope.png"); !bytes.Contains([]byte(err.Error()), []byte(want)) {
		t.Errorf("error %q should name %q", err, want)
	}
}

func TestFromImageRepacksSubImage(t *testing.T) {
	big := image.NewRGBA(image.Rect(0, 0, 4, 4))
	big.SetRGBA(2, 2, color.RGBA{9, 9, 9, 255})
	sub := big.SubImage(image.Rect(2, 2, 4, 4))

	desc := FromImage(sub)
	if desc.Width != 2 || desc.Height != 2 || len(desc.Pixels) != 16 {
		t.Fatalf("desc = %dx%d, %d bytes", desc.Width, desc.Height, len(desc.Pixels))
	}
	if desc.Pixels[0] != 9 {
		t.Errorf("sub-image origin not honoured: %v", desc.Pixels[:4])
	}
}

func TestCheckerboard(t *testing.T) {
	a, b := color.RGBA{255, 255, 255, 255}, color.RGBA{0, 0, 0, 255}
	desc := Checkerboard(4, 2, a, b)
	at := func(x, y int) byte { return desc.Pixels[(y*4+x)*4] }
	if at(0, 0) != 255 || at(2, 0) != 0 || at(0, 2) != 0 || at(3, 3) != 255 {
		t.Errorf("unexpected pattern %v", desc.Pixels)
	}
}

func TestSpriteSheet(t *testing.T) {
	bg, fg := color.RGBA{0, 0, 0, 0}, color.RGBA{255, 0, 0, 255}
	desc := SpriteSheet(4, 8, bg, fg)
	if desc.Width != 32 || desc.Height != 8 {
		t.Fatalf("sheet = %dx%d", desc.Width, desc.Height)
	}
	red := func(x, y int) bool { return desc.Pixels[(y*desc.Width+x)*4] == 255 }
	// frame 0 fills a quarter, frame 3 the whole cell
	if !red(1, 4) || red(2, 4) {
		t.Errorf("frame 0 bar wrong")
	}
	if !red(3*8+7, 4) {
		t.Errorf("last frame should be full")
	}
	if red(3*8+7, 0) {
		t.Errorf("bar should leave a margin")
	}
}
