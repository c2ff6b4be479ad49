package imaging

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

var opaqueRed = color.NRGBA{R: 255, G: 0, B: 0, A: 255}

// createSprite creates a fully transparent width x height image with content
// filled with c.
func createSprite(width, height int, content image.Rectangle, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := content.Min.Y; y < content.Max.Y; y++ {
		for x := content.Min.X; x < content.Max.X; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// createFramedSprite creates an image whose content is a 1-pixel opaque
// frame around a transparent center, surrounded by border transparent
// pixels on every side.
func createFramedSprite(inner, border int) *image.NRGBA {
	size := inner + 2*border
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	lo, hi := border, border+inner-1
	for i := lo; i <= hi; i++ {
		img.SetNRGBA(i, lo, opaqueRed)
		img.SetNRGBA(i, hi, opaqueRed)
		img.SetNRGBA(lo, i, opaqueRed)
		img.SetNRGBA(hi, i, opaqueRed)
	}
	return img
}

// createInMemoryImage creates an opaque in-memory test image
func createInMemoryImage(width, height int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// writePNG encodes img as a PNG named name inside a fresh temp directory and
// returns its path.
func writePNG(t *testing.T, name string, img image.Image) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}
