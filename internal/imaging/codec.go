package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// Encode writes img to w in the format implied by the extension of path.
// PNGs are written at best compression.
func Encode(w io.Writer, img image.Image, path string) error {
	format, err := imaging.FormatFromFilename(path)
	if err != nil {
		return fmt.Errorf("unsupported output format for %s: %w", path, err)
	}
	if err := imaging.Encode(w, img, format, imaging.PNGCompressionLevel(png.BestCompression)); err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}
	return nil
}

// Save encodes img and writes it to path, replacing any existing file.
//
// The image is encoded in memory and written to a temporary file in the
// destination directory, which is then renamed over path. A failed encode or
// write leaves the existing file intact. When path is a symlink its target is
// replaced. It returns the number of bytes written.
func Save(img image.Image, path string) (int64, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, img, path); err != nil {
		return 0, err
	}

	if target, err := filepath.EvalSymlinks(path); err == nil {
		path = target
	}

	perm := os.FileMode(0o644)
	if stat, err := os.Stat(path); err == nil {
		perm = stat.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return 0, fmt.Errorf("failed to write image: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return 0, fmt.Errorf("failed to write image: %w", err)
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return 0, fmt.Errorf("failed to write image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("failed to write image: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return 0, fmt.Errorf("failed to replace image: %w", err)
	}
	return int64(buf.Len()), nil
}
