package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color" // Import the fatih/color package for colored console output
)

// printer behaves like fmt.Fprintf with a fixed color applied to the text.
type printer func(w io.Writer, format string, a ...any)

// Define colorized printing functions for different log levels using fatih/color.
// Green is used for normal info, bright magenta for warnings, red for errors and cyan for debug output.
var (
	infoPrinter  printer = color.New(color.FgGreen).FprintfFunc()
	warnPrinter  printer = color.New(color.FgHiMagenta).FprintfFunc()
	errorPrinter printer = color.New(color.FgRed).FprintfFunc()
	debugPrinter printer = color.New(color.FgCyan).FprintfFunc()
)

// Notifier delivers a desktop notification.
type Notifier interface {
	Notify(ctx context.Context, title, message string) error
}

// Logger prints colored, leveled messages for one command invocation.
// A Logger is created when a command starts and discarded when it exits;
// there is no package level logging state.
type Logger struct {
	category string
	out      io.Writer
	debug    bool
	notifier Notifier
}

// Option configures a Logger.
type Option func(*Logger)

// WithOutput redirects all log lines to w.
func WithOutput(w io.Writer) Option {
	return func(l *Logger) { l.out = w }
}

// WithDebug enables or disables debug messages.
func WithDebug(enabled bool) Option {
	return func(l *Logger) { l.debug = enabled }
}

// WithNotifier enables desktop notifications for LogWithNotification.
func WithNotifier(n Notifier) Option {
	return func(l *Logger) { l.notifier = n }
}

// New creates a Logger whose lines are prefixed by category (usually the command title).
func New(category string, opts ...Option) *Logger {
	l := &Logger{category: category, out: os.Stdout}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Discard returns a Logger that prints nothing.
func Discard() *Logger {
	return New("", WithOutput(io.Discard))
}

// Category returns the title the Logger was created with.
func (l *Logger) Category() string {
	return l.category
}

// Info logs informational messages in green.
func (l *Logger) Info(format string, a ...any) {
	l.print(infoPrinter, "[INFO]", format, a...)
}

// Warn logs warnings in bright magenta.
func (l *Logger) Warn(format string, a ...any) {
	l.print(warnPrinter, "[WARN]", format, a...)
}

// Error logs errors in red.
func (l *Logger) Error(format string, a ...any) {
	l.print(errorPrinter, "[ERROR]", format, a...)
}

// Debug logs cyan debug messages when debug output is enabled, otherwise it is a no-op.
func (l *Logger) Debug(format string, a ...any) {
	if !l.debug {
		return
	}
	l.print(debugPrinter, "[DEBUG]", format, a...)
}

// LogWithNotification logs at info level and, when a notifier is configured,
// posts the same message as a desktop notification titled with the category.
// Notification failures never fail the caller.
func (l *Logger) LogWithNotification(ctx context.Context, format string, a ...any) {
	l.Info(format, a...)
	if l.notifier == nil {
		return
	}
	title := l.category
	if title == "" {
		title = "Xcode Helper"
	}
	if err := l.notifier.Notify(ctx, title, fmt.Sprintf(format, a...)); err != nil {
		l.Debug("notification failed: %v", err)
	}
}

func (l *Logger) print(p printer, level, format string, a ...any) {
	msg := strings.TrimRight(fmt.Sprintf(format, a...), "\n")
	if l.category != "" {
		p(l.out, "%s %s: %s\n", level, l.category, msg)
		return
	}
	p(l.out, "%s %s\n", level, msg)
}
