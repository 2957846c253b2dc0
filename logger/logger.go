// Package logger builds the trainer's zap logger.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Options struct {
	Level string

	// File enables JSON output to a size-rotated file.
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int

	// Console tees human readable output to stderr.
	Console bool
}

// New returns a production-style JSON logger. With neither File nor Console
// set it writes JSON to stderr. Unknown levels fall back to info.
func New(opts Options) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(opts.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	atom := zap.NewAtomicLevelAt(level)

	if opts.File == "" && !opts.Console {
		config := zap.NewProductionConfig()
		config.Level = atom
		return config.Build()
	}

	var cores []zapcore.Core

	if opts.File != "" {
		rotator := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
		}
		enc := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
		cores = append(cores, zapcore.NewCore(enc, zapcore.AddSync(rotator), atom))
	}

	if opts.Console {
		encCfg := zap.NewDevelopmentEncoderConfig()
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.Lock(os.Stderr), atom))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller()), nil
}
