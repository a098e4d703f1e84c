// Package logging configures the process-wide slog logger.
//
// Usage:
//
//	logging.Setup(logging.Options{Level: "info"})           // colored console
//	logging.Setup(logging.Options{File: "./towbill.log"})    // rotating file
//
// Components log through slog.Default, so nothing depends on Setup having
// been called. LOG_LEVEL is used when Options.Level is empty.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls Setup.
type Options struct {
	// Level is one of debug, info, warn, error.
	Level string

	// File, when set, sends logs to a rotating file instead of the console.
	File string

	// Console is where console logs go. Default: os.Stderr
	Console io.Writer
}

// Setup installs the default logger and returns a function that releases
// the log file, if one was opened.
func Setup(opts Options) func() error {
	level := ParseLevel(opts.Level)
	if opts.Level == "" {
		level = ParseLevel(os.Getenv("LOG_LEVEL"))
	}

	if opts.File != "" {
		lj := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    50, // megabytes
			MaxBackups: 3,
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(lj, &slog.HandlerOptions{Level: level})))
		return lj.Close
	}

	w := opts.Console
	if w == nil {
		w = os.Stderr
	}
	slog.SetDefault(slog.New(
		tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
			NoColor:    w != os.Stderr,
		}),
	))
	return func() error { return nil }
}

// ParseLevel maps a level name to a slog level. Unknown names are INFO.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
