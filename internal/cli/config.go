package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/mhr3/asciicheck/ascii"
)

// ErrUnknownBackend is returned when --backend names no registered backend.
var ErrUnknownBackend = errors.New("unknown backend")

// ColorMode controls when colored output is used.
type ColorMode int

const (
	ColorAuto   ColorMode = iota // color when stdout is a terminal
	ColorAlways                  // always use color
	ColorNever                   // never use color
)

func (m ColorMode) String() string {
	switch m {
	case ColorAlways:
		return "always"
	case ColorNever:
		return "never"
	default:
		return "auto"
	}
}

// ParseColorMode parses the --color flag value.
func ParseColorMode(s string) (ColorMode, error) {
	switch s {
	case "auto", "":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	}
	return ColorAuto, fmt.Errorf("invalid color mode %q (want auto, always or never)", s)
}

// Config holds all configuration for one asciicheck run.
type Config struct {
	Paths         []string
	Recursive     bool
	Hidden        bool
	NoIgnore      bool
	Workers       int
	JSONOutput    bool
	Color         ColorMode
	Backend       string
	BlockSize     int
	MmapThreshold int64
	Quiet         bool
	FilesOnly     bool
	LogLevel      string
	Verbose       bool
}

// DefaultConfig returns the configuration used when no flags are given.
func DefaultConfig() Config {
	return Config{
		BlockSize:     ascii.DefaultBlockSize,
		MmapThreshold: 64 << 10,
		LogLevel:      "warn",
	}
}

// Validate checks that the config is valid and returns an error if not.
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("invalid worker count: %d", c.Workers)
	}
	if c.BlockSize <= 0 {
		return fmt.Errorf("invalid block size: %d", c.BlockSize)
	}
	if c.MmapThreshold < 0 {
		return fmt.Errorf("invalid mmap threshold: %d", c.MmapThreshold)
	}
	if c.Quiet && c.FilesOnly {
		return fmt.Errorf("cannot use -q (quiet) and -l (files-with-non-ascii) together")
	}
	if c.Quiet && c.JSONOutput {
		return fmt.Errorf("cannot use -q (quiet) and --json together")
	}
	if c.Backend != "" {
		if _, ok := ascii.Lookup(c.Backend); !ok {
			return fmt.Errorf("%w: %q", ErrUnknownBackend, c.Backend)
		}
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return nil
}

// level returns the effective log level; Validate must have passed.
func (c *Config) level() log.Level {
	if c.Verbose {
		return log.DebugLevel
	}
	lvl, _ := log.ParseLevel(c.LogLevel)
	return lvl
}

// backend returns the configured backend; Validate must have passed.
func (c *Config) backend() *ascii.Backend {
	if c.Backend == "" {
		return ascii.Default()
	}
	b, _ := ascii.Lookup(c.Backend)
	return b
}

// stdin reports whether input comes from standard input.
func (c *Config) stdin() bool {
	return len(c.Paths) == 0 || (len(c.Paths) == 1 && c.Paths[0] == "-")
}
