package imaging

import (
	"image"
)

// TrimResult describes one pass of the trim pipeline over an image.
type TrimResult struct {
	// Image is the processed image. When Changed is false it is the input.
	Image image.Image `json:"-"`

	// Padding is the raw border measured on each edge.
	Padding Padding `json:"padding"`

	// Horizontal and Vertical are the paddings actually removed per side.
	Horizontal int `json:"horizontal"`
	Vertical   int `json:"vertical"`

	Width  int `json:"width"`
	Height int `json:"height"`

	PixelFormat PixelFormat `json:"pixel_format"`

	// Quantized reports whether channel quantization was applied.
	Quantized bool `json:"quantized"`

	// Changed is false when no border was removed; nothing else is done
	// to the image in that case.
	Changed bool `json:"changed"`
}

// Trim measures the transparent border of img, crops it symmetrically and
// quantizes the result with step. step is also the transparency threshold.
//
// An image without a removable border is returned untouched with Changed
// false, even if its channels are not yet quantized: only trimmed sprites
// are rewritten. Quantization is skipped for images without alpha.
func Trim(img image.Image, step int) (*TrimResult, error) {
	format := ClassifyPixelFormat(img)

	padding, err := MeasurePadding(img, step)
	if err != nil {
		return nil, err
	}

	crop, err := CropSymmetric(img, padding.Horizontal(), padding.Vertical())
	if err != nil {
		return nil, err
	}

	result := &TrimResult{
		Image:       crop.Image,
		Padding:     padding,
		Horizontal:  crop.Horizontal,
		Vertical:    crop.Vertical,
		Width:       crop.Width,
		Height:      crop.Height,
		PixelFormat: format,
		Changed:     crop.Changed,
	}
	if !crop.Changed {
		return result, nil
	}

	if format == FormatAlpha {
		result.Image = Quantize(crop.Image, step)
		result.Quantized = true
	}
	return result, nil
}
