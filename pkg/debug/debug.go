// Package debug provides conditional debug logging for fb.
//
// Debug logging is enabled by setting the FB_DEBUG environment variable:
//
//	FB_DEBUG=1 fb
//
// When enabled, messages are written to stderr with timestamps. When
// disabled (default), all debug functions are no-ops. A TUI owns stdout, so
// this is the only sanctioned place for swallowed errors to surface.
package debug

import (
	"log"
	"os"
	"time"
)

var (
	enabled bool
	logger  *log.Logger
)

func init() {
	if os.Getenv("FB_DEBUG") != "" {
		enabled = true
		logger = log.New(os.Stderr, "[FB_DEBUG] ", log.Ltime|log.Lmicroseconds)
	}
}

// Enabled returns whether debug logging is enabled.
func Enabled() bool {
	return enabled
}

// SetEnabled allows programmatic control of debug logging.
func SetEnabled(e bool) {
	enabled = e
	if e && logger == nil {
		logger = log.New(os.Stderr, "[FB_DEBUG] ", log.Ltime|log.Lmicroseconds)
	}
}

// Log writes a debug message if debug logging is enabled.
// Uses printf-style formatting.
func Log(format string, args ...any) {
	if !enabled {
		return
	}
	logger.Printf(format, args...)
}

// LogTiming writes a timing message if debug logging is enabled.
func LogTiming(name string, d time.Duration) {
	if !enabled {
		return
	}
	logger.Printf("%s took %v", name, d)
}
