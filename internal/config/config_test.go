package config

import (
	"errors"
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapLookup(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func TestDefault(t *testing.T) {
	c := Default()
	assert.Equal(t, DefaultRoot, c.Root)
	assert.Equal(t, ".png", c.Ext)
	assert.Equal(t, 16, c.Step)
	assert.Equal(t, "my_test.png", c.TestFile)
	assert.False(t, c.TestMode)
	require.NoError(t, c.Validate())
	assert.Empty(t, c.TestOutput, "test output is only derived in test mode")
}

func TestFromEnv(t *testing.T) {
	c := Default()
	err := c.FromEnv(mapLookup(map[string]string{
		EnvRoot:     "/assets",
		EnvExt:      ".gif",
		EnvStep:     "32",
		EnvTest:     "true",
		EnvTestFile: "hero.gif",
		EnvTestOut:  "/tmp/hero.gif",
		EnvDryRun:   "1",
		EnvPalette:  "4",
		EnvLogLevel: "DEBUG",
	}))
	require.NoError(t, err)

	assert.Equal(t, &Config{
		Root:         "/assets",
		Ext:          ".gif",
		Step:         32,
		TestMode:     true,
		TestFile:     "hero.gif",
		TestOutput:   "/tmp/hero.gif",
		DryRun:       true,
		PaletteCount: 4,
		Verbose:      true,
	}, c)
}

func TestFromEnv_EmptyValuesKeepDefaults(t *testing.T) {
	c := Default()
	require.NoError(t, c.FromEnv(mapLookup(map[string]string{EnvRoot: "", EnvStep: ""})))
	assert.Equal(t, Default(), c)
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"step", EnvStep, "sixteen"},
		{"test", EnvTest, "maybe"},
		{"dry run", EnvDryRun, "perhaps"},
		{"palette", EnvPalette, "many"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Default().FromEnv(mapLookup(map[string]string{tt.key: tt.val}))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestFlagSet(t *testing.T) {
	c := Default()
	flags := c.FlagSet("test", io.Discard)
	require.NoError(t, flags.Parse([]string{"-ext", ".bmp", "-step", "8", "-test", "-dry-run", "-palette", "3", "-v", "-json", "sprites"}))

	assert.Equal(t, ".bmp", c.Ext)
	assert.Equal(t, 8, c.Step)
	assert.True(t, c.TestMode)
	assert.True(t, c.DryRun)
	assert.Equal(t, 3, c.PaletteCount)
	assert.True(t, c.Verbose)
	assert.True(t, c.JSON)
	assert.Equal(t, []string{"sprites"}, flags.Args())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{"empty root", func(c *Config) { c.Root = "" }},
		{"empty ext", func(c *Config) { c.Ext = "" }},
		{"zero step", func(c *Config) { c.Step = 0 }},
		{"step too large", func(c *Config) { c.Step = 256 }},
		{"negative palette", func(c *Config) { c.PaletteCount = -1 }},
		{"test mode without file", func(c *Config) { c.TestMode = true; c.TestFile = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.modify(c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestValidate_DerivesTestOutput(t *testing.T) {
	c := Default()
	c.Root = "assets"
	c.TestMode = true
	require.NoError(t, c.Validate())
	assert.Equal(t, filepath.Join("assets", DefaultTestOut), c.TestOutput)
}

func TestLoad(t *testing.T) {
	t.Setenv(EnvStep, "32")
	t.Setenv(EnvExt, ".gif")

	c, err := Load([]string{"-ext", ".png", "sprites"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, 32, c.Step, "environment overrides defaults")
	assert.Equal(t, ".png", c.Ext, "flags override environment")
	assert.Equal(t, "sprites", c.Root)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load([]string{"-h"}, io.Discard)
	assert.True(t, errors.Is(err, flag.ErrHelp))

	_, err = Load([]string{"a", "b"}, io.Discard)
	assert.Error(t, err)

	_, err = Load([]string{"-step", "300"}, io.Discard)
	assert.Error(t, err)
}

func TestLoadDotEnv(t *testing.T) {
	const key = "SPRITE_TRIM_DOTENV_TEST"
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("# comment\nexport "+key+"=\"from-file\"\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv(key) })

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "from-file", os.Getenv(key))
}

func TestLoadDotEnv_DoesNotOverride(t *testing.T) {
	const key = "SPRITE_TRIM_DOTENV_KEEP"
	t.Setenv(key, "from-env")
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(key+"=from-file\n"), 0o644))

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "from-env", os.Getenv(key))
}

func TestLoadDotEnv_Missing(t *testing.T) {
	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "absent.env")))
}
