package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSprite(t *testing.T, path string, content image.Rectangle) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := content.Min.Y; y < content.Max.Y; y++ {
		for x := content.Min.X; x < content.Max.X; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 255, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func TestRun_ExitCodes(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		root := t.TempDir()
		writeSprite(t, filepath.Join(root, "a.png"), image.Rect(2, 2, 6, 6))
		assert.Equal(t, exitOK, run([]string{root}))
	})

	t.Run("file failure", func(t *testing.T) {
		root := t.TempDir()
		writeSprite(t, filepath.Join(root, "a.png"), image.Rect(2, 2, 6, 6))
		require.NoError(t, os.WriteFile(filepath.Join(root, "b.png"), []byte("junk"), 0o644))
		assert.Equal(t, exitFailures, run([]string{root}))
	})

	t.Run("missing root", func(t *testing.T) {
		assert.Equal(t, exitFailures, run([]string{filepath.Join(t.TempDir(), "missing")}))
	})

	t.Run("bad config", func(t *testing.T) {
		assert.Equal(t, exitConfig, run([]string{"-step", "0", t.TempDir()}))
	})

	t.Run("version", func(t *testing.T) {
		assert.Equal(t, exitOK, run([]string{"--version"}))
	})
}
