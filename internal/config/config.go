// Package config assembles the sprite-trim run configuration.
//
// Values are resolved in order, later sources overriding earlier ones:
//
//  1. Built-in defaults
//  2. A .env file in the working directory (optional)
//  3. SPRITE_TRIM_* environment variables
//  4. Command-line flags
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvRoot     = "SPRITE_TRIM_ROOT"
	EnvExt      = "SPRITE_TRIM_EXT"
	EnvStep     = "SPRITE_TRIM_STEP"
	EnvTest     = "SPRITE_TRIM_TEST"
	EnvTestFile = "SPRITE_TRIM_TEST_FILE"
	EnvTestOut  = "SPRITE_TRIM_TEST_OUT"
	EnvDryRun   = "SPRITE_TRIM_DRY_RUN"
	EnvPalette  = "SPRITE_TRIM_PALETTE"
	EnvLogLevel = "SPRITE_TRIM_LOG_LEVEL"
)

// Defaults.
const (
	DefaultRoot     = "../assets"
	DefaultExt      = ".png"
	DefaultStep     = 16
	DefaultTestFile = "my_test.png"
	DefaultTestOut  = "my_test_crop.png"
)

// Config holds everything the batch driver needs for one run.
type Config struct {
	// Root is the directory walked for images.
	Root string `json:"root"`

	// Ext is the file name suffix selecting images, e.g. ".png".
	Ext string `json:"ext"`

	// Step is the quantization step and the transparency threshold.
	Step int `json:"step"`

	// TestMode restricts the run to the file whose path ends with TestFile
	// and writes the result to TestOutput instead of overwriting it.
	TestMode   bool   `json:"test_mode"`
	TestFile   string `json:"test_file"`
	TestOutput string `json:"test_output"`

	// DryRun measures every image but never writes.
	DryRun bool `json:"dry_run"`

	// PaletteCount is how many dominant colors to log per written image.
	PaletteCount int `json:"palette_count"`

	// Verbose enables debug logging.
	Verbose bool `json:"verbose"`

	// JSON prints the run summary as JSON on stdout.
	JSON bool `json:"json"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Root:     DefaultRoot,
		Ext:      DefaultExt,
		Step:     DefaultStep,
		TestFile: DefaultTestFile,
	}
}

// LoadDotEnv loads path into the process environment without overriding
// variables that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// FromEnv applies SPRITE_TRIM_* variables found through lookup on top of c.
func (c *Config) FromEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvRoot); ok && v != "" {
		c.Root = v
	}
	if v, ok := lookup(EnvExt); ok && v != "" {
		c.Ext = v
	}
	if v, ok := lookup(EnvStep); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvStep, err)
		}
		c.Step = n
	}
	if v, ok := lookup(EnvTest); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvTest, err)
		}
		c.TestMode = b
	}
	if v, ok := lookup(EnvTestFile); ok && v != "" {
		c.TestFile = v
	}
	if v, ok := lookup(EnvTestOut); ok && v != "" {
		c.TestOutput = v
	}
	if v, ok := lookup(EnvDryRun); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvDryRun, err)
		}
		c.DryRun = b
	}
	if v, ok := lookup(EnvPalette); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvPalette, err)
		}
		c.PaletteCount = n
	}
	if v, ok := lookup(EnvLogLevel); ok {
		c.Verbose = strings.EqualFold(v, "debug")
	}
	return nil
}

// FlagSet returns a flag set bound to c. Parsing it overrides the current
// values; the first positional argument, if any, is the root directory.
func (c *Config) FlagSet(name string, output io.Writer) *flag.FlagSet {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.SetOutput(output)

	flags.StringVar(&c.Ext, "ext", c.Ext, "file suffix to process")
	flags.IntVar(&c.Step, "step", c.Step, "quantization step and transparency threshold (1-255)")
	flags.BoolVar(&c.TestMode, "test", c.TestMode, "process only -test-file and write the result to -test-out")
	flags.StringVar(&c.TestFile, "test-file", c.TestFile, "file name suffix selected in test mode")
	flags.StringVar(&c.TestOutput, "test-out", c.TestOutput, "output path in test mode (default <root>/"+DefaultTestOut+")")
	flags.BoolVar(&c.DryRun, "dry-run", c.DryRun, "measure only, never write")
	flags.IntVar(&c.PaletteCount, "palette", c.PaletteCount, "log the N most frequent colors of each written image")
	flags.BoolVar(&c.Verbose, "v", c.Verbose, "verbose (debug) logging")
	flags.BoolVar(&c.JSON, "json", c.JSON, "print the run summary as JSON on stdout")
	return flags
}

// Load builds the configuration for a run from defaults, the .env file,
// the process environment and args (without the program name).
//
// flag.ErrHelp is returned unchanged when -h or -help is passed.
func Load(args []string, output io.Writer) (*Config, error) {
	if err := LoadDotEnv(".env"); err != nil {
		return nil, err
	}

	c := Default()
	if err := c.FromEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	flags := c.FlagSet("sprite-trim", output)
	if err := flags.Parse(args); err != nil {
		return nil, err
	}
	switch flags.NArg() {
	case 0:
	case 1:
		c.Root = flags.Arg(0)
	default:
		return nil, fmt.Errorf("expected at most one root directory, got %d arguments", flags.NArg())
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks c and fills in derived defaults.
func (c *Config) Validate() error {
	if c.Root == "" {
		return fmt.Errorf("root directory must not be empty")
	}
	if c.Ext == "" {
		return fmt.Errorf("extension must not be empty")
	}
	if c.Step < 1 || c.Step > 255 {
		return fmt.Errorf("step must be between 1 and 255, got %d", c.Step)
	}
	if c.PaletteCount < 0 {
		return fmt.Errorf("palette count must be >= 0, got %d", c.PaletteCount)
	}
	if c.TestMode {
		if c.TestFile == "" {
			return fmt.Errorf("test mode requires a test file name")
		}
		if c.TestOutput == "" {
			c.TestOutput = filepath.Join(c.Root, DefaultTestOut)
		}
	}
	return nil
}
