package batch

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FindImages walks root recursively and returns every file whose name ends
// with ext, compared case-insensitively. Paths are returned in lexical order.
// Symlinks are included when they resolve to a regular file; symlinked
// directories are not descended into.
//
// Only a failure to read root itself is returned as an error. Entries below
// root that cannot be read are passed to onError, if non-nil, and the walk
// continues with their siblings.
func FindImages(root, ext string, onError func(path string, err error)) ([]string, error) {
	ext = strings.ToLower(ext)
	report := func(path string, err error) {
		if onError != nil {
			onError(path, err)
		}
	}

	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			report(path, err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ext) {
			return nil
		}

		switch {
		case d.Type().IsRegular():
		case d.Type()&fs.ModeSymlink != 0:
			info, err := os.Stat(path)
			if err != nil {
				report(path, err)
				return nil
			}
			if !info.Mode().IsRegular() {
				return nil
			}
		default:
			return nil
		}

		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}
	return paths, nil
}
