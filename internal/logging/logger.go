// Package logging provides structured logging for the backend.
package logging

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	global *zap.SugaredLogger
	once   sync.Once
)

// Options configures the logger.
type Options struct {
	// LogFile is the rotating log file path. Empty disables file output.
	LogFile string

	// Debug lowers the console level to debug.
	Debug bool
}

// Init initializes the global logger. Safe to call more than once;
// only the first call takes effect.
func Init(opts Options) {
	once.Do(func() {
		global = build(opts)
	})
}

func build(opts Options) *zap.SugaredLogger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	consoleLevel := zap.InfoLevel
	if opts.Debug {
		consoleLevel = zap.DebugLevel
	}

	cores := []zapcore.Core{
		zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderConfig),
			zapcore.AddSync(os.Stdout),
			consoleLevel,
		),
	}

	if opts.LogFile != "" {
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderConfig),
			zapcore.AddSync(&lumberjack.Logger{
				Filename:   opts.LogFile,
				MaxSize:    50, // MB
				MaxBackups: 10,
				MaxAge:     30, // days
			}),
			zap.InfoLevel,
		))
	}

	logger := zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	return logger.Sugar()
}

// L returns the global logger, initializing a console-only logger if
// Init was never called.
func L() *zap.SugaredLogger {
	if global == nil {
		Init(Options{})
	}
	return global
}

// Sync flushes buffered log entries. Call before process exit.
func Sync() {
	if global != nil {
		_ = global.Sync()
	}
}
