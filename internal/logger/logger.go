// Package logger configures structured logging for the service.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	gormlogger "gorm.io/gorm/logger"
)

// ParseLevel maps a configured level name to a slog level. The second
// return value is false for unknown names, in which case info is returned.
func ParseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}

// Setup creates a JSON logger on stdout at the given level and installs it
// as the slog default.
func Setup(level string) *slog.Logger {
	return SetupWriter(os.Stdout, level)
}

// SetupWriter is Setup with an explicit destination.
func SetupWriter(w io.Writer, level string) *slog.Logger {
	lvl, ok := ParseLevel(level)
	l := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl}))
	if !ok {
		l.Warn("invalid log level configured, using default level",
			"configured_level", level,
			"default_level", "info")
	}
	slog.SetDefault(l)
	return l
}

// GormLevel translates a configured level name into the gorm logger level.
// SQL statements are only traced at debug.
func GormLevel(level string) gormlogger.LogLevel {
	lvl, _ := ParseLevel(level)
	switch {
	case lvl <= slog.LevelDebug:
		return gormlogger.Info
	case lvl <= slog.LevelWarn:
		return gormlogger.Warn
	default:
		return gormlogger.Error
	}
}

// Goose adapts a slog logger to the goose migration logger interface.
type Goose struct {
	L *slog.Logger
}

// Printf logs a migration progress line at info.
func (g Goose) Printf(format string, v ...interface{}) {
	g.L.Info(strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "migrations")
}

// Fatalf logs at error and exits.
func (g Goose) Fatalf(format string, v ...interface{}) {
	g.L.Error(strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "migrations")
	os.Exit(1)
}
