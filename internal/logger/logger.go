package logger

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/nvinit-dev/nvinit/internal/env"
)

// Option configures the logger.
type Option func(*options)

type options struct {
	logToFile bool
	logFile   string
	level     slog.Leveler
}

// WithLogToFile enables mirroring log output to a rotating file.
func WithLogToFile(enabled bool) Option {
	return func(o *options) {
		o.logToFile = enabled
	}
}

// WithLogFile sets the log file path used when file logging is enabled.
func WithLogFile(path string) Option {
	return func(o *options) {
		o.logFile = path
	}
}

// WithLevel sets the minimum log level.
func WithLevel(level slog.Leveler) Option {
	return func(o *options) {
		o.level = level
	}
}

// New builds the application logger. Development gets a colorized terminal
// handler; production gets JSON. File logging goes through lumberjack
// rotation when enabled.
func New(environment env.Environment, opts ...Option) *slog.Logger {
	o := &options{
		logFile: "logs/nvinit.log",
	}
	for _, opt := range opts {
		opt(o)
	}

	if o.level == nil {
		if environment.IsDevelopment() {
			o.level = slog.LevelDebug
		} else {
			o.level = slog.LevelInfo
		}
	}

	if o.logToFile {
		rotated := &lumberjack.Logger{
			Filename:   o.logFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     30, // days
			Compress:   true,
		}
		if environment.IsDevelopment() {
			return slog.New(tint.NewHandler(io.MultiWriter(os.Stderr, rotated), &tint.Options{
				Level:      o.level,
				TimeFormat: time.Kitchen,
			}))
		}
		return slog.New(slog.NewJSONHandler(rotated, &slog.HandlerOptions{Level: o.level}))
	}

	if environment.IsDevelopment() {
		return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
			Level:      o.level,
			TimeFormat: time.Kitchen,
		}))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: o.level}))
}
