// Package imaging provides the image operations behind sprite trimming.
//
// This package implements loading, pixel format classification, transparent
// border measurement, symmetric cropping, channel quantization, encoding and
// palette statistics. All operations work with standard Go image.Image types
// and use a coordinate system where (0,0) is at the top-left corner, X
// increases rightward, and Y increases downward.
//
// # Pipeline
//
// A sprite goes through the following steps (see Trim):
//
//  1. MeasurePadding runs FirstOpaqueLine once per edge and reports how many
//     fully transparent columns and rows surround the content.
//  2. CropSymmetric removes min(left, right) columns from both sides and
//     min(top, bottom) rows from both the top and the bottom, so a sprite is
//     never shifted off its anchor.
//  3. Quantize rounds every channel of an alpha image to a multiple of the
//     step (half to even, clamped to 255).
//
// # Transparency Threshold
//
// The quantization step doubles as the transparency threshold: a pixel whose
// alpha is below the step rounds to zero alpha anyway, so it is treated as
// empty while searching for borders.
//
// # Fully Transparent Images
//
// FirstOpaqueLine returns the last index it scanned when no line qualifies.
// For a blank image this makes the measured padding cover the whole image;
// CropSymmetric then leaves the affected axis uncropped, so blank sprites are
// reported as unchanged and never rewritten.
//
// # Error Handling
//
// Functions return errors for invalid inputs such as:
//   - Unknown axis or direction values
//   - Negative paddings
//   - File I/O errors during loading or saving
//   - Unsupported file extensions when encoding
package imaging
