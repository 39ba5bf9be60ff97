package config

import (
	"flag"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/menukit/internal/geometry"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     App
	Logging Logging
	Flags   map[string]string
	Args    []string
}

// App describes the options handed to the interactive program.
type App struct {
	MenuFile      string
	Direction     geometry.Direction
	Width         int
	Height        int
	ShowFooter    bool
	DisableAim    bool
	WatchInterval time.Duration
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envMenuFile = "MENUKIT_MENU_FILE"
	envDir      = "MENUKIT_DIR"
	envWidth    = "MENUKIT_WIDTH"
	envHeight   = "MENUKIT_HEIGHT"
	envFooter   = "MENUKIT_FOOTER"
	envNoAim    = "MENUKIT_NO_AIM"
	envWatch    = "MENUKIT_WATCH"
	envTrace    = "MENUKIT_TRACE"
	envLogFile  = "MENUKIT_LOG_FILE"
)

const defaultWatchInterval = time.Second

// LoadArgs parses configuration from CLI arguments with environment
// variables as fallbacks.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("menukit", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	menuFile := fs.String("menu-file", envOrDefault(env, envMenuFile, ""), "path to a menu definition file (yaml, json or toml)")
	dir := fs.String("dir", envOrDefault(env, envDir, "ltr"), "text direction: ltr or rtl")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envFooter, true), "show the key hint row")
	noAim := fs.Bool("no-aim", envOrBool(env, envNoAim, false), "switch submenus immediately on hover")
	watch := fs.Duration("watch", envOrDuration(env, envWatch, defaultWatchInterval), "reload the menu file at this interval (0 disables)")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}
	if *watch < 0 {
		return Config{}, fmt.Errorf("watch must be >= 0 (got %s)", *watch)
	}
	direction, err := ParseDirection(*dir)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		App: App{
			MenuFile:      *menuFile,
			Direction:     direction,
			Width:         *width,
			Height:        *height,
			ShowFooter:    *footer,
			DisableAim:    *noAim,
			WatchInterval: *watch,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"menuFile": *menuFile,
			"dir":      string(direction),
			"width":    strconv.Itoa(*width),
			"height":   strconv.Itoa(*height),
			"footer":   strconv.FormatBool(*footer),
			"noAim":    strconv.FormatBool(*noAim),
			"watch":    watch.String(),
			"trace":    strconv.FormatBool(*trace),
			"logFile":  *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

// ParseDirection maps "ltr" and "rtl" (any case) to a direction.
func ParseDirection(value string) (geometry.Direction, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return geometry.LTR, nil
	}
	if dir, ok := geometry.ParseDirection(value); ok {
		return dir, nil
	}
	return geometry.LTR, fmt.Errorf("%w: %q", ErrInvalidDirection, value)
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// Validate checks that the menu file, when given, exists and describes a
// usable menu.
func Validate(cfg Config) error {
	if cfg.App.MenuFile == "" {
		return nil
	}
	def, err := LoadMenuFile(cfg.App.MenuFile)
	if err != nil {
		return err
	}
	return def.Validate()
}
