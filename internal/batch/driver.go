// Package batch runs the trim pipeline over a directory of sprites.
//
// Each file is processed on its own: a file that cannot be read, decoded or
// written is logged and recorded as failed, and the run moves on to the next
// one. Files are processed one at a time, in lexical path order.
package batch

import (
	"fmt"
	"log"
	"strings"

	"github.com/ironsheep/sprite-trim/internal/config"
	"github.com/ironsheep/sprite-trim/internal/imaging"
)

// Status is the outcome of processing one file.
type Status string

const (
	// StatusTrimmed means a border was removed. The file was written unless
	// the run is a dry run.
	StatusTrimmed Status = "trimmed"
	// StatusUnchanged means no border was found; the file was not touched.
	StatusUnchanged Status = "unchanged"
	// StatusFailed means the file could not be loaded, processed or written.
	StatusFailed Status = "failed"
)

// Result describes what happened to one file.
type Result struct {
	Path   string `json:"path"`
	Status Status `json:"status"`

	PixelFormat imaging.PixelFormat `json:"pixel_format,omitempty"`

	OriginalWidth  int `json:"original_width"`
	OriginalHeight int `json:"original_height"`
	Width          int `json:"width"`
	Height         int `json:"height"`

	Padding    imaging.Padding `json:"padding"`
	Horizontal int             `json:"horizontal"`
	Vertical   int             `json:"vertical"`

	// Colors and AlphaLevels describe the processed image. They are only
	// set for trimmed files.
	Colors      int `json:"colors,omitempty"`
	AlphaLevels int `json:"alpha_levels,omitempty"`

	// Output is the path written, empty when nothing was written.
	Output      string `json:"output,omitempty"`
	BytesBefore int64  `json:"bytes_before"`
	BytesAfter  int64  `json:"bytes_after,omitempty"`

	Err   error  `json:"-"`
	Error string `json:"error,omitempty"`
}

// Written reports whether the file produced output on disk.
func (r *Result) Written() bool {
	return r.Output != ""
}

func (r *Result) fail(err error) Result {
	r.Status = StatusFailed
	r.Err = err
	r.Error = err.Error()
	return *r
}

// Summary aggregates the results of a run.
//
// Processed counts every entry in Results, which also records entries the
// walk could not read.
type Summary struct {
	Discovered int `json:"discovered"`
	Processed  int `json:"processed"`
	Skipped    int `json:"skipped"`
	Trimmed    int `json:"trimmed"`
	Unchanged  int `json:"unchanged"`
	Failed     int `json:"failed"`
	Written    int `json:"written"`

	// BytesBefore and BytesAfter sum the file sizes of written files only.
	BytesBefore int64 `json:"bytes_before"`
	BytesAfter  int64 `json:"bytes_after"`

	Results []Result `json:"results"`
}

// HasFailures reports whether any file failed.
func (s *Summary) HasFailures() bool {
	return s.Failed > 0
}

// Failures returns the failed results in processing order.
func (s *Summary) Failures() []Result {
	var failed []Result
	for _, r := range s.Results {
		if r.Status == StatusFailed {
			failed = append(failed, r)
		}
	}
	return failed
}

func (s *Summary) add(r Result) {
	s.Processed++
	s.Results = append(s.Results, r)
	switch r.Status {
	case StatusTrimmed:
		s.Trimmed++
	case StatusUnchanged:
		s.Unchanged++
	case StatusFailed:
		s.Failed++
	}
	if r.Written() {
		s.Written++
		s.BytesBefore += r.BytesBefore
		s.BytesAfter += r.BytesAfter
	}
}

// Driver processes the images under a configured root directory.
type Driver struct {
	cfg *config.Config
	log *log.Logger
}

// New creates a Driver. cfg should already be validated.
func New(cfg *config.Config, logger *log.Logger) *Driver {
	return &Driver{cfg: cfg, log: logger}
}

// Run discovers the images under the root and processes them.
//
// The returned error is only non-nil when the root itself cannot be read;
// per-file failures, including subdirectories that cannot be listed, are
// reported in the Summary. In test mode only files whose path ends with the
// configured test file name are considered, and the run stops after the
// first one that is trimmed.
func (d *Driver) Run() (*Summary, error) {
	summary := &Summary{Results: []Result{}}

	paths, err := FindImages(d.cfg.Root, d.cfg.Ext, func(path string, err error) {
		d.log.Printf("%s: %v", path, err)
		r := Result{Path: path}
		summary.add(r.fail(err))
	})
	if err != nil {
		return nil, err
	}

	summary.Discovered = len(paths)
	d.debugf("found %d %s files under %s", len(paths), d.cfg.Ext, d.cfg.Root)

	matched := 0
	for i, path := range paths {
		if d.cfg.TestMode && !strings.HasSuffix(path, d.cfg.TestFile) {
			summary.Skipped++
			continue
		}

		matched++
		r := d.ProcessFile(path)
		summary.add(r)

		if d.cfg.TestMode && r.Status == StatusTrimmed {
			summary.Skipped += len(paths) - i - 1
			break
		}
	}

	if d.cfg.TestMode && matched == 0 {
		d.log.Printf("warning: test file %s not found under %s", d.cfg.TestFile, d.cfg.Root)
	}
	return summary, nil
}

// ProcessFile runs the trim pipeline on a single file.
//
// Files without a removable border are never rewritten. Trimmed files are
// written back to path, or to the test output path in test mode, unless the
// run is a dry run.
func (d *Driver) ProcessFile(path string) Result {
	r := Result{Path: path}

	img, info, err := imaging.Load(path)
	if err != nil {
		d.log.Printf("%s: %v", path, err)
		return r.fail(err)
	}
	r.PixelFormat = info.PixelFormat
	r.OriginalWidth, r.OriginalHeight = info.Width, info.Height
	r.Width, r.Height = info.Width, info.Height
	r.BytesBefore = info.FileSizeBytes

	if !info.PixelFormat.Supported() {
		d.log.Printf("warning: %s has unsupported pixel format (%T); quantization skipped", path, img)
	}

	trim, err := imaging.Trim(img, d.cfg.Step)
	if err != nil {
		err = fmt.Errorf("failed to trim: %w", err)
		d.log.Printf("%s: %v", path, err)
		return r.fail(err)
	}
	r.Padding = trim.Padding

	if !trim.Changed {
		r.Status = StatusUnchanged
		d.debugf("%s: unchanged (%s)", path, trim.Padding)
		return r
	}

	r.Status = StatusTrimmed
	r.Width, r.Height = trim.Width, trim.Height
	r.Horizontal, r.Vertical = trim.Horizontal, trim.Vertical

	palette := imaging.DominantColors(trim.Image, d.cfg.PaletteCount)
	r.Colors = palette.Distinct
	r.AlphaLevels = imaging.AlphaLevels(trim.Image)
	d.debugf("%s: %d colors, %d alpha levels, quantized=%t", path, r.Colors, r.AlphaLevels, trim.Quantized)
	for _, c := range palette.Colors {
		d.log.Printf("%s: %s a=%d %.2f%%", path, c.Hex, c.RGBA.A, c.Percentage)
	}

	if d.cfg.DryRun {
		d.log.Printf("%s: would trim %dx%d -> %dx%d", path, r.OriginalWidth, r.OriginalHeight, r.Width, r.Height)
		return r
	}

	out := path
	if d.cfg.TestMode {
		out = d.cfg.TestOutput
	}
	n, err := imaging.Save(trim.Image, out)
	if err != nil {
		d.log.Printf("%s: %v", path, err)
		return r.fail(err)
	}
	r.Output = out
	r.BytesAfter = n

	d.log.Printf("%s: trimmed %dx%d -> %dx%d", path, r.OriginalWidth, r.OriginalHeight, r.Width, r.Height)
	return r
}

func (d *Driver) debugf(format string, args ...interface{}) {
	if d.cfg.Verbose {
		d.log.Printf("debug: "+format, args...)
	}
}
