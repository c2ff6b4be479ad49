package imaging

import (
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Axis selects which lines FirstOpaqueLine scans.
type Axis int

const (
	// AxisX scans columns: the primary index is X.
	AxisX Axis = 0
	// AxisY scans rows: the primary index is Y.
	AxisY Axis = 1
)

// Direction selects the end an axis is scanned from.
type Direction int

const (
	// Forward scans from index 0 upward.
	Forward Direction = 1
	// Backward scans from the last index downward.
	Backward Direction = -1
)

var (
	// ErrInvalidAxis is returned for an Axis other than AxisX or AxisY.
	ErrInvalidAxis = errors.New("invalid axis")
	// ErrInvalidDirection is returned for a Direction other than Forward or Backward.
	ErrInvalidDirection = errors.New("invalid direction")
)

// Padding is the number of fully transparent lines found at each edge,
// measured from that edge inward.
type Padding struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
}

// Horizontal returns the padding removed from both the left and right edges.
func (p Padding) Horizontal() int {
	return min(p.Left, p.Right)
}

// Vertical returns the padding removed from both the top and bottom edges.
func (p Padding) Vertical() int {
	return min(p.Top, p.Bottom)
}

// IsZero reports whether a symmetric crop would remove nothing.
func (p Padding) IsZero() bool {
	return p.Horizontal() == 0 && p.Vertical() == 0
}

func (p Padding) String() string {
	return fmt.Sprintf("l=%d t=%d r=%d b=%d", p.Left, p.Top, p.Right, p.Bottom)
}

// FirstOpaqueLine returns the index of the first line along axis, scanned in
// dir, that contains a pixel with alpha >= threshold.
//
// Each primary index is checked against the whole secondary axis before the
// scan moves on. Indices are relative to img.Bounds().Min.
//
// When no line qualifies the last scanned index is returned: width-1 (or
// height-1) for Forward, 0 for Backward. An empty image returns 0.
func FirstOpaqueLine(img *image.NRGBA, axis Axis, dir Direction, threshold int) (int, error) {
	if axis != AxisX && axis != AxisY {
		return 0, fmt.Errorf("%w: %d", ErrInvalidAxis, axis)
	}
	if dir != Forward && dir != Backward {
		return 0, fmt.Errorf("%w: %d", ErrInvalidDirection, dir)
	}

	b := img.Bounds()
	primary, secondary := b.Dx(), b.Dy()
	if axis == AxisY {
		primary, secondary = secondary, primary
	}

	last := 0
	for i := 0; i < primary; i++ {
		a := i
		if dir == Backward {
			a = primary - 1 - i
		}
		last = a
		for j := 0; j < secondary; j++ {
			x, y := a, j
			if axis == AxisY {
				x, y = j, a
			}
			if int(img.Pix[img.PixOffset(b.Min.X+x, b.Min.Y+y)+3]) >= threshold {
				return a, nil
			}
		}
	}
	return last, nil
}

// MeasurePadding measures the transparent border on every edge of img.
//
// Images that are not *image.NRGBA are converted first, so palette and
// 16-bit images are measured on their 8-bit straight alpha.
func MeasurePadding(img image.Image, threshold int) (Padding, error) {
	src := asNRGBA(img)
	b := src.Bounds()
	if b.Empty() {
		return Padding{}, nil
	}

	left, err := FirstOpaqueLine(src, AxisX, Forward, threshold)
	if err != nil {
		return Padding{}, err
	}
	top, err := FirstOpaqueLine(src, AxisY, Forward, threshold)
	if err != nil {
		return Padding{}, err
	}
	right, err := FirstOpaqueLine(src, AxisX, Backward, threshold)
	if err != nil {
		return Padding{}, err
	}
	bottom, err := FirstOpaqueLine(src, AxisY, Backward, threshold)
	if err != nil {
		return Padding{}, err
	}

	return Padding{
		Left:   left,
		Top:    top,
		Right:  b.Dx() - 1 - right,
		Bottom: b.Dy() - 1 - bottom,
	}, nil
}

func asNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok {
		return n
	}
	return imaging.Clone(img)
}
