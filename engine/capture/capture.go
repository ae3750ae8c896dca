// Package capture encodes rendered frames as lossless WebP.
package capture

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/HugoSmits86/nativewebp"
)

// WriteWebP encodes img to w.
func WriteWebP(w io.Writer, img image.Image) error {
	if img.Bounds().Empty() {
		return fmt.Errorf("webp encode: empty image")
	}
	if err := nativewebp.Encode(w, img, nil); err != nil {
		return fmt.Errorf("webp encode: %w", err)
	}
	return nil
}

// SaveWebP writes img into dir (created if needed) under a name derived
// from at, and returns the file path.
func SaveWebP(dir string, img image.Image, at time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("capture dir %q: %w", dir, err)
	}
	path := filepath.Join(dir, "frame-"+at.Format("20060102-150405.000")+".webp")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %q: %w", path, err)
	}
	if err := WriteWebP(f, img); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %q: %w", path, err)
	}
	return path, nil
}
