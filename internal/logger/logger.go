package logger

import (
	"io"

	"github.com/fatih/color" // Import the fatih/color package for colored console output
)

// Define colorized printing functions for different log levels using fatih/color.
// These are package-level variables holding functions that behave like fmt.Printf,
// but with text colored appropriately for the log level.

// Info logs informational messages in green color.
// Green is typically used for success or normal info to catch user attention pleasantly.
var Info = color.New(color.FgGreen).PrintfFunc()

// Warn logs warning messages in bright magenta color.
var Warn = color.New(color.FgHiMagenta).PrintfFunc()

// Error logs error messages in red color.
var Error = color.New(color.FgRed).PrintfFunc()

// Debug logs debug messages in cyan color if enabled, otherwise is a no-op.
// It is assigned during Init based on the debug flag.
var Debug = func(format string, a ...any) {}

// Ohai prints a bold blue "==> " headline, the marker package managers use
// for post-install messages.
var Ohai = ohaiTo(color.Output)

// out is where every level writes. nil means color.Output (stdout).
var (
	out   io.Writer
	debug bool
)

// Init initializes the logger package, specifically enabling or disabling debug logging.
// When enabled, Debug will print messages in cyan color.
// When disabled, Debug will be a no-op function that silently ignores debug logs.
func Init(enableDebug bool) {
	debug = enableDebug
	rebind()
}

// SetOutput redirects every log level to w. Passing nil restores stdout.
func SetOutput(w io.Writer) {
	out = w
	rebind()
}

// rebind recreates every level func against the current writer.
func rebind() {
	w := out
	if w == nil {
		w = color.Output
	}
	Info = fprintf(w, color.FgGreen)
	Warn = fprintf(w, color.FgHiMagenta)
	Error = fprintf(w, color.FgRed)
	Ohai = ohaiTo(w)
	if debug {
		Debug = fprintf(w, color.FgCyan)
	} else {
		Debug = func(format string, a ...any) {}
	}
}

// fprintf returns a printf-style func writing to w in the given color.
func fprintf(w io.Writer, attr color.Attribute) func(format string, a ...any) {
	f := color.New(attr).FprintfFunc()
	return func(format string, a ...any) {
		f(w, format, a...)
	}
}

// ohaiTo returns the bold "==> " headline printer for w.
func ohaiTo(w io.Writer) func(format string, a ...any) {
	arrow := color.New(color.FgBlue, color.Bold).FprintFunc()
	title := color.New(color.Bold).FprintfFunc()
	return func(format string, a ...any) {
		arrow(w, "==> ")
		title(w, format+"\n", a...)
	}
}
