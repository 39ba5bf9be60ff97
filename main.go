package main

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/atomicstack/menukit/internal/app"
	"github.com/atomicstack/menukit/internal/config"
	"github.com/atomicstack/menukit/internal/logging"
	"github.com/atomicstack/menukit/internal/logging/events"
)

const (
	exitOK     = 0
	exitError  = 1
	exitConfig = 2
)

// runProgram is replaced in tests so run can be exercised without a terminal.
var runProgram = app.Run

func main() {
	os.Exit(run(os.Args[1:], os.Environ(), os.Stderr))
}

func run(args, environ []string, stderr io.Writer) int {
	cfg, err := config.LoadArgs(args, environ)
	if err == nil {
		err = config.Validate(cfg)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Configuration error: %v\n", err)
		return exitConfig
	}
	logging.Configure(cfg.Logging.FilePath)
	logging.SetTraceEnabled(cfg.Logging.Trace)
	if logging.TraceEnabled() {
		events.App.Start(startupTracePayload(cfg))
	}

	if err := runProgram(cfg.App); err != nil {
		logging.Error(err)
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	return exitOK
}

// startupTracePayload bundles runtime context for trace logging.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags)+2)
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	payload := map[string]interface{}{
		"argv":   cfg.Args,
		"flags":  flags,
		"config": cfg,
		"menus":  menuSource(cfg.App),
		"tty":    collectTTYDetails(standardProbes()),
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	} else {
		payload["executableError"] = err.Error()
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	} else {
		payload["cwdError"] = err.Error()
	}
	return payload
}

type menuSourceDetails struct {
	Path    string `json:"path,omitempty"`
	BuiltIn bool   `json:"built_in"`
	Size    int64  `json:"size,omitempty"`
	Watch   string `json:"watch,omitempty"`
}

// menuSource describes where the menus come from.
func menuSource(cfg config.App) menuSourceDetails {
	if cfg.MenuFile == "" {
		return menuSourceDetails{BuiltIn: true}
	}
	details := menuSourceDetails{Path: cfg.MenuFile}
	if info, err := os.Stat(cfg.MenuFile); err == nil {
		details.Size = info.Size()
	}
	if cfg.WatchInterval > 0 {
		details.Watch = cfg.WatchInterval.String()
	}
	return details
}

type ttyProbe struct {
	name string
	fd   uintptr
}

type ttyDetails struct {
	Detected *ttyDetected     `json:"detected,omitempty"`
	Probes   []ttyProbeResult `json:"probes"`
}

type ttyDetected struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type ttyProbeResult struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

func standardProbes() []ttyProbe {
	return []ttyProbe{
		{"stdin", os.Stdin.Fd()},
		{"stdout", os.Stdout.Fd()},
		{"stderr", os.Stderr.Fd()},
	}
}

// collectTTYDetails reports terminal support and size for each probe. The
// first terminal found is the one the UI will size itself to.
func collectTTYDetails(probes []ttyProbe) ttyDetails {
	details := ttyDetails{Probes: make([]ttyProbeResult, 0, len(probes))}
	for _, probe := range probes {
		result := ttyProbeResult{Name: probe.name}
		fd := int(probe.fd)
		if fd < 0 || !term.IsTerminal(fd) {
			details.Probes = append(details.Probes, result)
			continue
		}
		result.IsTerminal = true
		width, height, err := term.GetSize(fd)
		if err != nil {
			result.Error = err.Error()
		} else {
			result.Width, result.Height = width, height
			if details.Detected == nil {
				details.Detected = &ttyDetected{Source: probe.name, Width: width, Height: height}
			}
		}
		details.Probes = append(details.Probes, result)
	}
	return details
}
