// Copyright 2026 The Updraft Authors. All rights reserved.

// Package diag provides leveled diagnostics for the
// renderer and the window system layer.
// A Logger is injected at construction time; there is
// no package-level state, so components sharing a
// process can carry different verbosity levels.
package diag

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Verbosity levels.
// Silent suppresses everything but errors. Info covers
// lifecycle milestones, Verbose adds capability reports
// and per-resource teardown, Trace adds per-frame output.
const (
	Silent = iota
	Info
	Verbose
	Trace
)

// Logger is a verbosity-gated logger.
// The zero value is not usable; construct with New or Nop.
type Logger struct {
	z     *zap.SugaredLogger
	level int
}

// New returns a Logger gated at the given level.
// Levels above Trace behave like Trace; negative levels
// behave like Silent. Even at Silent, errors are still
// written to stderr.
func New(level int) *Logger {
	if level < Silent {
		level = Silent
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true
	switch {
	case level >= Verbose:
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	case level >= Info:
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	default:
		cfg.Level = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
	}
	z, err := cfg.Build()
	if err != nil {
		z = zap.NewNop()
	}
	return &Logger{z: z.Sugar(), level: level}
}

// Nop returns a Logger that discards everything.
func Nop() *Logger { return &Logger{z: zap.NewNop().Sugar(), level: Silent} }

// Named returns a Logger with the given name segment
// appended, at the same level.
func (l *Logger) Named(name string) *Logger {
	return &Logger{z: l.z.Named(name), level: l.level}
}

// Level returns the verbosity the Logger was built with.
func (l *Logger) Level() int { return l.level }

// Infof logs at the Info level.
func (l *Logger) Infof(format string, args ...any) {
	if l.level >= Info {
		l.z.Infof(format, args...)
	}
}

// Verbosef logs at the Verbose level.
func (l *Logger) Verbosef(format string, args ...any) {
	if l.level >= Verbose {
		l.z.Debugf(format, args...)
	}
}

// Tracef logs at the Trace level.
// Intended for per-frame output; callers need not gate
// the call themselves.
func (l *Logger) Tracef(format string, args ...any) {
	if l.level >= Trace {
		l.z.Debugf(format, args...)
	}
}

// Errorf logs an error regardless of level.
func (l *Logger) Errorf(format string, args ...any) {
	l.z.Errorf(format, args...)
}
