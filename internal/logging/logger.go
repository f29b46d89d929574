package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
	"time"
)

// LogLevel represents different log levels
type LogLevel int32

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the string representation of the log level
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a config string (debug, info, warn, error) to a LogLevel.
func ParseLevel(s string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// Logger interface for structured logging
type Logger interface {
	Debug(ctx context.Context, msg string, fields ...interface{})
	Info(ctx context.Context, msg string, fields ...interface{})
	Warn(ctx context.Context, err error, msg string, fields ...interface{})
	Error(ctx context.Context, err error, msg string, fields ...interface{})

	With(fields ...interface{}) Logger
	WithComponent(component string) Logger
}

// SiteLogger implements Logger on top of slog. Loggers derived with With or
// WithComponent share the level of their parent.
type SiteLogger struct {
	handler   slog.Handler
	level     *atomic.Int32
	component string
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level     LogLevel
	Format    string // "json" or "text"
	Output    io.Writer
	AddSource bool
	Component string
}

// DefaultConfig returns default logger configuration
func DefaultConfig() *LoggerConfig {
	return &LoggerConfig{
		Level:  LevelInfo,
		Format: "text",
		Output: os.Stderr,
	}
}

// NewLogger creates a new structured logger
func NewLogger(config *LoggerConfig) *SiteLogger {
	if config == nil {
		config = DefaultConfig()
	}
	output := config.Output
	if output == nil {
		output = os.Stderr
	}

	// The handler accepts everything; SiteLogger filters so the level can
	// change at runtime.
	opts := &slog.HandlerOptions{Level: slog.LevelDebug, AddSource: config.AddSource}

	var handler slog.Handler = slog.NewTextHandler(output, opts)
	if config.Format == "json" {
		handler = slog.NewJSONHandler(output, opts)
	}

	level := &atomic.Int32{}
	level.Store(int32(config.Level))
	return &SiteLogger{handler: handler, level: level, component: config.Component}
}

// NewNopLogger returns a logger that discards everything.
func NewNopLogger() *SiteLogger {
	return NewLogger(&LoggerConfig{Level: LevelError + 1, Output: io.Discard})
}

// SetLevel changes the minimum level for this logger and every logger derived from it.
func (l *SiteLogger) SetLevel(level LogLevel) {
	l.level.Store(int32(level))
}

// Level returns the current minimum level.
func (l *SiteLogger) Level() LogLevel {
	return LogLevel(l.level.Load())
}

func (l *SiteLogger) Debug(ctx context.Context, msg string, fields ...interface{}) {
	l.log(ctx, LevelDebug, nil, msg, fields)
}

func (l *SiteLogger) Info(ctx context.Context, msg string, fields ...interface{}) {
	l.log(ctx, LevelInfo, nil, msg, fields)
}

func (l *SiteLogger) Warn(ctx context.Context, err error, msg string, fields ...interface{}) {
	l.log(ctx, LevelWarn, err, msg, fields)
}

func (l *SiteLogger) Error(ctx context.Context, err error, msg string, fields ...interface{}) {
	l.log(ctx, LevelError, err, msg, fields)
}

// With returns a logger that adds fields, given as key-value pairs, to every
// record.
func (l *SiteLogger) With(fields ...interface{}) Logger {
	child := *l
	child.handler = l.handler.WithAttrs(attrs(fields))
	return &child
}

// WithComponent returns a logger tagged with component. It replaces any
// component set earlier.
func (l *SiteLogger) WithComponent(component string) Logger {
	child := *l
	child.component = component
	return &child
}

var slogLevels = map[LogLevel]slog.Level{
	LevelDebug: slog.LevelDebug,
	LevelInfo:  slog.LevelInfo,
	LevelWarn:  slog.LevelWarn,
	LevelError: slog.LevelError,
}

func (l *SiteLogger) log(ctx context.Context, level LogLevel, err error, msg string, fields []interface{}) {
	if level < l.Level() {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}

	record := slog.NewRecord(time.Now(), slogLevels[level], msg, 0)
	if l.component != "" {
		record.AddAttrs(slog.String("component", l.component))
	}
	if err != nil {
		record.AddAttrs(slog.String("error", err.Error()))
	}
	record.AddAttrs(attrs(fields)...)

	_ = l.handler.Handle(ctx, record)
}

// attrs converts key-value pairs to attributes. Pairs with a non-string key
// and a trailing odd value are dropped.
func attrs(fields []interface{}) []slog.Attr {
	out := make([]slog.Attr, 0, len(fields)/2)
	for i := 0; i+1 < len(fields); i += 2 {
		if key, ok := fields[i].(string); ok {
			out = append(out, slog.Any(key, fields[i+1]))
		}
	}
	return out
}
