// Package main is the entry point for viewctl.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/viewctl/internal/app"
	"github.com/dshills/viewctl/internal/backend"
	"github.com/dshills/viewctl/internal/input/mouse"
	"github.com/dshills/viewctl/internal/logging"
	"github.com/dshills/viewctl/internal/replay"
	"github.com/dshills/viewctl/internal/script"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type flags struct {
	app.Options
	replayPath string
}

func main() {
	os.Exit(run())
}

func run() int {
	f := parseFlags()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if f.replayPath != "" {
		return runReplay(ctx, f)
	}

	application, err := app.New(f.Options)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	// Ensure cleanup on all exit paths
	defer func() {
		if err := application.Shutdown(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}()

	term, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := application.SetBackend(term); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to set backend: %v\n", err)
		return 1
	}

	if err := application.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// runReplay plays a recorded script headless and prints every dispatch.
func runReplay(ctx context.Context, f flags) int {
	s, err := replay.Load(f.replayPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	logger, closeLog, err := logging.New(logging.Config{
		Level:   f.LogLevel,
		App:     "viewctl",
		Version: version,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()

	opts := replay.Options{Logger: logger}
	if f.ScriptPath != "" {
		lua, err := script.Load(f.ScriptPath, script.WithLogger(logger))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		defer lua.Close()
		opts.Manipulator = lua.Manipulator()
		opts.Viewport = lua.Viewport()
	}

	result, err := replay.Run(ctx, s, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	for _, line := range result.Lines() {
		fmt.Println(line)
	}
	return 0
}

func parseFlags() flags {
	var f flags
	var viewportID int
	var showVersion bool
	var showHelp bool

	flag.StringVar(&f.ConfigPath, "config", "", "Path to configuration file (.toml, .yaml)")
	flag.StringVar(&f.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.BoolVar(&f.Watch, "watch", false, "Reload the configuration file when it changes")
	flag.StringVar(&f.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&f.ScriptPath, "script", "", "Lua script consuming mouse events")
	flag.StringVar(&f.RecordPath, "record", "", "Save the session as a replay script")
	flag.StringVar(&f.replayPath, "replay", "", "Play a replay script headless and print the dispatches")
	flag.IntVar(&viewportID, "viewport", 0, "Viewport ID")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "viewctl - viewport mouse controller\n\n")
		fmt.Fprintf(os.Stderr, "Usage: viewctl [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  viewctl                           Interactive viewport\n")
		fmt.Fprintf(os.Stderr, "  viewctl -c viewctl.toml -watch    Live configuration\n")
		fmt.Fprintf(os.Stderr, "  viewctl -record session.yaml      Record a session\n")
		fmt.Fprintf(os.Stderr, "  viewctl -replay session.yaml      Replay it headless\n")
		fmt.Fprintf(os.Stderr, "  viewctl -script grab.lua          Lua consumers\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("viewctl %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	// Validate log level
	switch f.LogLevel {
	case "", "debug", "info", "warn", "error":
		// Valid
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", f.LogLevel)
		os.Exit(1)
	}

	f.Viewport = mouse.ViewportID(viewportID)
	f.Version = version
	return f
}
