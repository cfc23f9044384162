// ============================================================================
// meinDENKWERK (mDW) - Developer Console
// ============================================================================
//
// Package:     logging
// Description: Factory functions for creating loggers from configuration
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LoggerConfig holds configuration for creating loggers
type LoggerConfig struct {
	// Service name
	ServiceName string

	// Log level (trace, debug, info, warn, error)
	Level string

	// Output format: "json", "text" or "console" (default: text)
	Format string

	// File receives log output instead of stderr when set
	File string

	// Additional outputs (besides the primary one)
	AdditionalOutputs []io.Writer
}

// DefaultLoggerConfig returns a default configuration
func DefaultLoggerConfig(serviceName string) LoggerConfig {
	return LoggerConfig{
		ServiceName: serviceName,
		Level:       "info",
		Format:      "text",
	}
}

// NewLogger creates a new logger. The returned closer releases the log file, if any.
func NewLogger(cfg LoggerConfig) (*Logger, io.Closer, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil && cfg.Level != "" {
		return nil, nil, err
	}
	if cfg.Level == "" {
		level = LevelInfo
	}

	format := FormatText
	if cfg.Format != "" {
		if format, err = ParseFormat(cfg.Format); err != nil {
			return nil, nil, err
		}
	}

	var output io.Writer = os.Stderr
	var closer io.Closer = nopCloser{}

	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		output = f
		closer = f
	}

	if len(cfg.AdditionalOutputs) > 0 {
		writers := append([]io.Writer{output}, cfg.AdditionalOutputs...)
		output = io.MultiWriter(writers...)
	}

	logger := NewWithConfig(Config{
		Level:  level,
		Format: format,
		Output: output,
		Name:   cfg.ServiceName,
	})

	return logger, closer, nil
}

// New creates a text logger on stderr at info level
func New(name string) *Logger {
	return NewWithConfig(Config{
		Level:  LevelInfo,
		Format: FormatText,
		Output: os.Stderr,
		Name:   name,
	})
}

// Discard returns a logger that drops everything. Useful in tests.
func Discard() *Logger {
	return NewWithConfig(Config{
		Level:  LevelFatal + 1,
		Format: FormatText,
		Output: io.Discard,
	})
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
