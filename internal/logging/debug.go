// Package logging provides the application logger and the TL_DEBUG gated
// debug helpers.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// DebugEnabled returns true if debug mode is enabled via TL_DEBUG environment variable
func DebugEnabled() bool {
	return os.Getenv("TL_DEBUG") != ""
}

// NewHandler returns a terminal handler writing to w. Debug records are
// emitted when verbose is set or TL_DEBUG is enabled.
func NewHandler(w io.Writer, prefix string, verbose bool) slog.Handler {
	level := log.InfoLevel
	if verbose || DebugEnabled() {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
}

// New returns a logger writing to w.
func New(w io.Writer, prefix string, verbose bool) *slog.Logger {
	return slog.New(NewHandler(w, prefix, verbose))
}

type ctxKey struct{}

// IntoContext adds a logger to a context. Use FromContext to
// pull the logger out.
func IntoContext(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the logger stored in ctx, or the default slog logger.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
			return l
		}
	}
	return slog.Default()
}

var (
	debugMu     sync.Mutex
	debugLogger *slog.Logger
)

// SetDebugOutput redirects Debugf and Debugln, which write to stderr by default.
func SetDebugOutput(w io.Writer) {
	debugMu.Lock()
	defer debugMu.Unlock()
	debugLogger = New(w, "debug", true)
}

func debug() *slog.Logger {
	debugMu.Lock()
	defer debugMu.Unlock()
	if debugLogger == nil {
		debugLogger = New(os.Stderr, "debug", true)
	}
	return debugLogger
}

// Debugf logs a formatted debug message only if debug mode is enabled
func Debugf(format string, args ...any) {
	if DebugEnabled() {
		debug().Debug(fmt.Sprintf(format, args...))
	}
}

// Debugln logs its arguments only if debug mode is enabled
func Debugln(args ...any) {
	if DebugEnabled() {
		debug().Debug(strings.TrimSuffix(fmt.Sprintln(args...), "\n"))
	}
}
