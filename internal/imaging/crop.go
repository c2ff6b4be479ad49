package imaging

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// CropResult contains the cropped image and the paddings actually removed.
type CropResult struct {
	Image      image.Image `json:"-"`
	Width      int         `json:"width"`
	Height     int         `json:"height"`
	Horizontal int         `json:"horizontal"`
	Vertical   int         `json:"vertical"`

	// Changed is false when nothing was removed. Image is then the input
	// itself and callers should not write it back.
	Changed bool `json:"changed"`
}

// CropSymmetric removes horizontal columns from both the left and right
// edges and vertical rows from both the top and bottom edges.
//
// The kept region is [horizontal, vertical] to [width-horizontal,
// height-vertical), exclusive. An axis whose padding would leave nothing
// (2*padding >= size, which only a fully transparent axis measures) is left
// uncropped.
//
// Paletted images are cropped into a new *image.Paletted with a copy of the
// source palette. Everything else comes back as *image.NRGBA.
func CropSymmetric(img image.Image, horizontal, vertical int) (*CropResult, error) {
	if horizontal < 0 || vertical < 0 {
		return nil, fmt.Errorf("invalid padding: horizontal=%d vertical=%d must be >= 0", horizontal, vertical)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if 2*horizontal >= w {
		horizontal = 0
	}
	if 2*vertical >= h {
		vertical = 0
	}

	if horizontal == 0 && vertical == 0 {
		return &CropResult{Image: img, Width: w, Height: h}, nil
	}

	rect := image.Rect(
		bounds.Min.X+horizontal,
		bounds.Min.Y+vertical,
		bounds.Max.X-horizontal,
		bounds.Max.Y-vertical,
	)

	var cropped image.Image
	if p, ok := img.(*image.Paletted); ok {
		cropped = cropPaletted(p, rect)
	} else {
		cropped = imaging.Crop(img, rect)
	}

	return &CropResult{
		Image:      cropped,
		Width:      rect.Dx(),
		Height:     rect.Dy(),
		Horizontal: horizontal,
		Vertical:   vertical,
		Changed:    true,
	}, nil
}

// cropPaletted copies rect out of src, rebased to the origin.
func cropPaletted(src *image.Paletted, rect image.Rectangle) *image.Paletted {
	palette := make(color.Palette, len(src.Palette))
	copy(palette, src.Palette)

	out := image.NewPaletted(image.Rect(0, 0, rect.Dx(), rect.Dy()), palette)
	for y := 0; y < rect.Dy(); y++ {
		i := src.PixOffset(rect.Min.X, rect.Min.Y+y)
		j := out.PixOffset(0, y)
		copy(out.Pix[j:j+rect.Dx()], src.Pix[i:i+rect.Dx()])
	}
	return out
}
