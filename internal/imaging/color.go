package imaging

import (
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/anthonynsimon/bild/histogram"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGBAColor represents an RGBA color with 8-bit, non-premultiplied
// components.
//
// The alpha component represents opacity:
//   - 0 = fully transparent
//   - 255 = fully opaque
type RGBAColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
	A uint8 `json:"a"` // Alpha/opacity component (0-255)
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// ColorFrequency represents a color and its occurrence frequency in an image.
type ColorFrequency struct {
	Hex        string    `json:"hex"`        // Hex color "#rrggbb" (alpha excluded)
	Count      int       `json:"count"`      // Number of pixels with this exact color
	Percentage float64   `json:"percentage"` // Percentage of pixels with this color (0-100)
	RGBA       RGBAColor `json:"rgba"`       // RGBA components
	HSL        HSLColor  `json:"hsl"`        // HSL representation
}

// PaletteResult contains the most frequently occurring colors in an image.
type PaletteResult struct {
	// Distinct is the number of distinct RGBA colors in the image.
	Distinct int `json:"distinct"`

	// Colors are sorted by frequency in descending order (most common
	// first). Ties are broken by RGBA value so the order is stable.
	Colors []ColorFrequency `json:"colors"`
}

// DominantColors counts the exact RGBA colors of img and returns the count
// most common ones.
//
// No grouping is done: run it after Quantize to see the palette a sprite
// actually ships with. A count <= 0 returns only the Distinct total.
func DominantColors(img image.Image, count int) *PaletteResult {
	b := img.Bounds()
	counts := make(map[RGBAColor]int)
	total := 0

	if n, ok := img.(*image.NRGBA); ok {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			i := n.PixOffset(b.Min.X, y)
			for x := 0; x < b.Dx(); x++ {
				p := n.Pix[i+x*4 : i+x*4+4 : i+x*4+4]
				counts[RGBAColor{R: p[0], G: p[1], B: p[2], A: p[3]}]++
				total++
			}
		}
	} else {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
				counts[RGBAColor{R: c.R, G: c.G, B: c.B, A: c.A}]++
				total++
			}
		}
	}

	result := &PaletteResult{Distinct: len(counts)}
	if count <= 0 || total == 0 {
		return result
	}

	colors := make([]ColorFrequency, 0, len(counts))
	for c, cnt := range counts {
		colors = append(colors, describeColor(c, cnt, total))
	}

	sort.Slice(colors, func(i, j int) bool {
		if colors[i].Count != colors[j].Count {
			return colors[i].Count > colors[j].Count
		}
		return packRGBA(colors[i].RGBA) < packRGBA(colors[j].RGBA)
	})

	if len(colors) > count {
		colors = colors[:count]
	}
	result.Colors = colors
	return result
}

// AlphaLevels returns how many distinct alpha values occur in img. A
// quantized sprite with the default step never has more than 17.
func AlphaLevels(img image.Image) int {
	hist := histogram.NewRGBAHistogram(img)
	levels := 0
	for _, n := range hist.A.Bins {
		if n > 0 {
			levels++
		}
	}
	return levels
}

func describeColor(c RGBAColor, cnt, total int) ColorFrequency {
	cf := colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
	h, s, l := cf.Hsl()
	if math.IsNaN(h) {
		h = 0
	}

	return ColorFrequency{
		Hex:        cf.Hex(),
		Count:      cnt,
		Percentage: math.Round(float64(cnt)/float64(total)*10000) / 100,
		RGBA:       c,
		HSL: HSLColor{
			H: int(math.Round(h)) % 360,
			S: int(math.Round(s * 100)),
			L: int(math.Round(l * 100)),
		},
	}
}

func packRGBA(c RGBAColor) uint32 {
	return uint32(c.R)<<24 | uint32(c.G)<<16 | uint32(c.B)<<8 | uint32(c.A)
}
