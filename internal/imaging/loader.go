package imaging

import (
	"fmt"
	"image"
	"os"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/disintegration/imaging"
)

// PixelFormat classifies how a decoded image stores its pixels.
type PixelFormat string

const (
	// FormatAlpha covers RGBA and NRGBA images, 8- or 16-bit per channel.
	FormatAlpha PixelFormat = "alpha"

	// FormatPalette covers palette-indexed images.
	FormatPalette PixelFormat = "palette"

	// FormatOther covers everything else (gray, YCbCr, CMYK, ...). These
	// images are still measured and cropped, but never quantized.
	FormatOther PixelFormat = "other"
)

// Supported reports whether the format is one the trimmer fully handles.
func (f PixelFormat) Supported() bool {
	return f == FormatAlpha || f == FormatPalette
}

// ClassifyPixelFormat returns the PixelFormat of a decoded image.
//
// Color depth is determined by the Go image type:
//   - *image.RGBA, *image.NRGBA -> alpha, 8-bit
//   - *image.RGBA64, *image.NRGBA64 -> alpha, 16-bit
//   - *image.Paletted -> palette
//   - All other types -> other
func ClassifyPixelFormat(img image.Image) PixelFormat {
	switch img.(type) {
	case *image.RGBA, *image.NRGBA, *image.RGBA64, *image.NRGBA64:
		return FormatAlpha
	case *image.Paletted:
		return FormatPalette
	default:
		return FormatOther
	}
}

// ImageInfo contains metadata about a loaded image file.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the file format implied by the extension: "png", "gif",
	// "jpeg", "bmp", "tiff", or "unknown".
	Format string `json:"format"`

	// ColorDepth indicates the bit depth per channel: "8-bit" or "16-bit".
	ColorDepth string `json:"color_depth"`

	// PixelFormat is the classification used to decide what the trimmer
	// may do with the image.
	PixelFormat PixelFormat `json:"pixel_format"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// Load reads and decodes the image at path and describes it.
//
// Returns:
//   - image.Image: The decoded image. The concrete type depends on the file
//     (e.g., *image.NRGBA for PNGs with alpha, *image.Paletted for indexed
//     PNGs and GIFs).
//   - *ImageInfo: Metadata about the file.
//   - error: Non-nil if the file cannot be stat'd, opened or decoded. Errors
//     wrap the underlying cause, so errors.Is(err, fs.ErrNotExist) works.
func Load(path string) (image.Image, *ImageInfo, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to stat file: %w", err)
	}

	img, err := imgio.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	return img, &ImageInfo{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        FormatName(path),
		ColorDepth:    colorDepth(img),
		PixelFormat:   ClassifyPixelFormat(img),
		FileSizeBytes: stat.Size(),
	}, nil
}

// FormatName returns the lower-case format name implied by the file
// extension, or "unknown".
func FormatName(path string) string {
	f, err := imaging.FormatFromFilename(path)
	if err != nil {
		return "unknown"
	}
	return strings.ToLower(f.String())
}

func colorDepth(img image.Image) string {
	switch img.(type) {
	case *image.RGBA64, *image.NRGBA64, *image.Gray16:
		return "16-bit"
	}
	return "8-bit"
}
