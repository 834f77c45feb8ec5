package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu      sync.Mutex
	output  io.Writer = os.Stderr
	verbose bool
)

// DebugEnabled returns true if debug mode is enabled via the TODO_DEBUG
// environment variable or SetVerbose.
func DebugEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return verbose || os.Getenv("TODO_DEBUG") != ""
}

// SetVerbose turns debug output on regardless of TODO_DEBUG.
func SetVerbose(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = enabled
}

// SetOutput redirects debug output and returns the previous writer.
func SetOutput(w io.Writer) io.Writer {
	mu.Lock()
	defer mu.Unlock()
	previous := output
	output = w
	return previous
}

// Debugf prints a formatted debug message only if debug mode is enabled
func Debugf(format string, args ...interface{}) {
	if DebugEnabled() {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintf(output, "debug: "+format, args...)
	}
}

// Debugln prints a debug message followed by a newline only if debug mode is enabled
func Debugln(args ...interface{}) {
	if DebugEnabled() {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintln(output, append([]interface{}{"debug:"}, args...)...)
	}
}
