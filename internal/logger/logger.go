// Package logger writes pipeline diagnostics for textprep.
// Debug, Info, Warn and Section output appears only in verbose mode
// (--verbose); Error is always written.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
	now               = time.Now
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the writer for all log lines. Defaults to os.Stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

func write(always bool, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if always || verbose {
		fmt.Fprintf(output, format, args...)
	}
}

// Debug prints a message in verbose mode.
func Debug(format string, args ...any) {
	write(false, "[DEBUG] "+format+"\n", args...)
}

// Section prints a section header in verbose mode.
func Section(name string) {
	write(false, "\n=== %s ===\n", name)
}

// Info prints an informational message in verbose mode.
func Info(format string, args ...any) {
	write(false, "[INFO] "+format+"\n", args...)
}

// Warn prints a warning in verbose mode.
func Warn(format string, args ...any) {
	write(false, "[WARN] "+format+"\n", args...)
}

// Error prints an error regardless of verbosity.
func Error(format string, args ...any) {
	write(true, "[ERROR] "+format+"\n", args...)
}

// Timed prints a section header and returns a func that logs the elapsed time.
//
//	defer logger.Timed("chunking")()
func Timed(section string) func() {
	Section(section)
	start := now()
	return func() {
		Debug("%s took %s", section, now().Sub(start).Round(time.Microsecond))
	}
}
