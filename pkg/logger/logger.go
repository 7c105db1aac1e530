// Package logger wraps zap behind a small interface so every component of
// the console takes the same log handle.
package logger

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogManager is the logging surface used across the console packages.
type LogManager interface {
	Debug(args ...any)
	Info(args ...any)
	Warn(args ...any)
	Error(args ...any)

	DebugF(format string, args ...any)
	InfoF(format string, args ...any)
	WarnF(format string, args ...any)
	ErrorF(format string, args ...any)

	With(keyValues ...any) LogManager

	Sync() error
	SetLogLevel(level string) error
}

// Options configures NewLogger.
type Options struct {
	Level        string
	Encoding     string // "json" or "console"
	OutputPaths  []string
	ErrorPaths   []string
	EnableCaller bool
	TimeFormat   string
}

// NewLogger builds a LogManager on top of zap with a runtime-adjustable
// level.
func NewLogger(opts Options) (LogManager, error) {
	atomicLevel := zap.NewAtomicLevel()
	if err := atomicLevel.UnmarshalText([]byte(opts.Level)); err != nil {
		atomicLevel.SetLevel(zap.InfoLevel)
	}

	if opts.Encoding == "" {
		opts.Encoding = "console"
	}
	if len(opts.OutputPaths) == 0 {
		opts.OutputPaths = []string{"stdout"}
	}
	if len(opts.ErrorPaths) == 0 {
		opts.ErrorPaths = []string{"stderr"}
	}
	timeFormat := opts.TimeFormat
	if timeFormat == "" {
		timeFormat = time.RFC3339
	}

	encoderCfg := zapcore.EncoderConfig{
		TimeKey:       "time",
		LevelKey:      "level",
		NameKey:       "logger",
		MessageKey:    "msg",
		StacktraceKey: "stacktrace",
		LineEnding:    zapcore.DefaultLineEnding,
		EncodeLevel:   zapcore.CapitalLevelEncoder,
		EncodeTime: func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString(t.Format(timeFormat))
		},
		EncodeCaller: zapcore.ShortCallerEncoder,
	}
	if opts.EnableCaller {
		encoderCfg.CallerKey = "caller"
	}

	cfg := zap.Config{
		Level:            atomicLevel,
		Development:      opts.Level == "debug",
		Encoding:         opts.Encoding,
		EncoderConfig:    encoderCfg,
		OutputPaths:      opts.OutputPaths,
		ErrorOutputPaths: opts.ErrorPaths,
	}

	zapLogger, err := cfg.Build(zap.AddStacktrace(zap.ErrorLevel))
	if err != nil {
		return nil, err
	}

	return &manager{log: zapLogger.Sugar(), atomicLevel: atomicLevel}, nil
}

// MustNewDefaultLogger returns a ready-to-use console logger or exits.
func MustNewDefaultLogger() LogManager {
	l, err := NewLogger(Options{Level: "info", EnableCaller: true})
	if err != nil {
		fmt.Println("failed to init logger:", err)
		os.Exit(1)
	}
	return l
}

type manager struct {
	log         *zap.SugaredLogger
	atomicLevel zap.AtomicLevel
}

func (m *manager) Debug(args ...any) { m.log.Debug(args...) }
func (m *manager) Info(args ...any)  { m.log.Info(args...) }
func (m *manager) Warn(args ...any)  { m.log.Warn(args...) }
func (m *manager) Error(args ...any) { m.log.Error(args...) }

func (m *manager) DebugF(format string, args ...any) { m.log.Debugf(format, args...) }
func (m *manager) InfoF(format string, args ...any)  { m.log.Infof(format, args...) }
func (m *manager) WarnF(format string, args ...any)  { m.log.Warnf(format, args...) }
func (m *manager) ErrorF(format string, args ...any) { m.log.Errorf(format, args...) }

func (m *manager) With(keyValues ...any) LogManager {
	return &manager{log: m.log.With(keyValues...), atomicLevel: m.atomicLevel}
}

func (m *manager) Sync() error { return m.log.Sync() }

func (m *manager) SetLogLevel(level string) error {
	return m.atomicLevel.UnmarshalText([]byte(level))
}
