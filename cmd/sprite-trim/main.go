package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/sprite-trim/internal/batch"
	"github.com/ironsheep/sprite-trim/internal/config"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// Exit codes
const (
	exitOK       = 0
	exitFailures = 1
	exitConfig   = 2
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	// Handle --version and --help before flag parsing
	if len(args) > 0 {
		switch args[0] {
		case "--version", "version":
			fmt.Printf("sprite-trim %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return exitOK
		case "--help", "-h", "-help", "help":
			printUsage()
			return exitOK
		}
	}

	// Logs go to stderr so -json output stays clean
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := config.Load(args, os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		log.Printf("Configuration error: %v", err)
		return exitConfig
	}

	if cfg.Verbose {
		log.Printf("sprite-trim v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
		log.Printf("root=%s ext=%s step=%d test=%t dry-run=%t", cfg.Root, cfg.Ext, cfg.Step, cfg.TestMode, cfg.DryRun)
	}

	summary, err := batch.New(cfg, log.Default()).Run()
	if err != nil {
		log.Printf("Run failed: %v", err)
		return exitFailures
	}

	if cfg.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(summary); err != nil {
			log.Printf("Failed to write summary: %v", err)
			return exitFailures
		}
	}

	log.Printf("%d files: %d trimmed, %d unchanged, %d failed (%d -> %d bytes written)",
		summary.Processed, summary.Trimmed, summary.Unchanged, summary.Failed,
		summary.BytesBefore, summary.BytesAfter)

	if summary.HasFailures() {
		for _, r := range summary.Failures() {
			log.Printf("failed: %s: %s", r.Path, r.Error)
		}
		return exitFailures
	}
	return exitOK
}

func printUsage() {
	fmt.Println("sprite-trim - trim transparent borders from sprites and quantize their colors")
	fmt.Println()
	fmt.Println("Usage: sprite-trim [options] [root]")
	fmt.Println()
	fmt.Println("Options:")
	config.Default().FlagSet("sprite-trim", os.Stdout).PrintDefaults()
	fmt.Println("  --version")
	fmt.Println("    \tPrint version information")
	fmt.Println()
	fmt.Println("Environment variables (also read from ./.env):")
	fmt.Printf("  %-24s root directory (default %s)\n", config.EnvRoot, config.DefaultRoot)
	fmt.Printf("  %-24s file suffix (default %s)\n", config.EnvExt, config.DefaultExt)
	fmt.Printf("  %-24s quantization step (default %d)\n", config.EnvStep, config.DefaultStep)
	fmt.Printf("  %-24s test mode (true/false)\n", config.EnvTest)
	fmt.Printf("  %-24s test file name (default %s)\n", config.EnvTestFile, config.DefaultTestFile)
	fmt.Printf("  %-24s test output path\n", config.EnvTestOut)
	fmt.Printf("  %-24s dry run (true/false)\n", config.EnvDryRun)
	fmt.Printf("  %-24s dominant colors to log\n", config.EnvPalette)
	fmt.Printf("  %-24s debug enables verbose logging\n", config.EnvLogLevel)
}
