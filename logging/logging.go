/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package logging builds the logr.Logger used by the registry, backed by zap.
package logging

import (
	"fmt"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Verbosity levels used with logr's V().
const (
	LevelDefault = 0
	LevelDebug   = 1
)

// New returns a JSON logger at the given level ("debug", "info" or "error") and a
// flush function to call before exit.
func New(level string) (logr.Logger, func(), error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return logr.Discard(), func() {}, err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.DisableStacktrace = true

	zl, err := cfg.Build()
	if err != nil {
		return logr.Discard(), func() {}, fmt.Errorf("build zap logger: %w", err)
	}
	return FromZap(zl), func() { _ = zl.Sync() }, nil
}

// FromZap wraps an existing zap logger.
func FromZap(zl *zap.Logger) logr.Logger {
	return zapr.NewLogger(zl)
}

// parseLevel maps a level name to zap; logr V(n) corresponds to zap level -n.
func parseLevel(level string) (zapcore.Level, error) {
	switch level {
	case "debug":
		return zapcore.Level(-LevelDebug), nil
	case "", "info":
		return zapcore.InfoLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	}
	return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", level)
}
