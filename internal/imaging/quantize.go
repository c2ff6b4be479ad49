package imaging

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// DefaultStep is the default quantization step. It is also the alpha value
// below which a pixel counts as transparent while measuring borders.
const DefaultStep = 16

// QuantizeValue rounds n to the nearest multiple of step, ties to even, and
// clamps the result to 255. Steps below 2 leave n unchanged.
//
// For step 16: 0->0, 8->0, 9->16, 24->32, 40->32, 250->255, 255->255.
func QuantizeValue(n uint8, step int) uint8 {
	if step < 2 {
		return n
	}
	q := math.RoundToEven(float64(n)/float64(step)) * float64(step)
	if q > 255 {
		return 255
	}
	return uint8(q)
}

// Quantize returns a copy of img with every channel, alpha included, passed
// through QuantizeValue.
//
// Only images with an alpha channel are quantized. They come back as
// *image.NRGBA so that color channels are rounded before premultiplication.
// Any other image (paletted, gray, ...) is returned as is.
func Quantize(img image.Image, step int) image.Image {
	if step < 2 || ClassifyPixelFormat(img) != FormatAlpha {
		return img
	}

	var src *image.NRGBA
	if n, ok := img.(*image.NRGBA); ok {
		src = n
	} else {
		src = imaging.Clone(img)
	}

	var table [256]uint8
	for i := range table {
		table[i] = QuantizeValue(uint8(i), step)
	}

	b := src.Bounds()
	out := image.NewNRGBA(b)
	rowLen := b.Dx() * 4
	for y := b.Min.Y; y < b.Max.Y; y++ {
		i := src.PixOffset(b.Min.X, y)
		j := out.PixOffset(b.Min.X, y)
		for k := 0; k < rowLen; k++ {
			out.Pix[j+k] = table[src.Pix[i+k]]
		}
	}
	return out
}
