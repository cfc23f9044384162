// ============================================================================
// meinDENKWERK (mDW) - Developer Console
// ============================================================================
//
// Package:     cmd
// Description: Wires config, logging, live objects and the console
// Author:      Mike Stoffels
// Created:     2025-12-08
// License:     MIT
// ============================================================================

package cmd

import (
	"fmt"
	"io"

	"github.com/msto63/devconsole/internal/clock"
	"github.com/msto63/devconsole/internal/commands"
	"github.com/msto63/devconsole/internal/console"
	"github.com/msto63/devconsole/internal/objects"
	"github.com/msto63/devconsole/pkg/core/config"
	"github.com/msto63/devconsole/pkg/core/logging"
)

// Instance names of the objects every host registers
const (
	settingsInstance = "console"
	clockInstance    = "clock"
)

// hostOptions select how the host is set up for a subcommand
type hostOptions struct {
	// ConfigPath overrides the lookup of the config file
	ConfigPath string

	Verbose bool

	// Plain disables colours in console output
	Plain bool

	// Quiet keeps log output off stderr unless a log file is configured.
	// The terminal UI needs this; entries still reach the tap.
	Quiet bool
}

// host is the program the console runs in
type host struct {
	cfg     *config.Config
	cfgPath string

	logger *logging.Logger
	closer io.Closer
	tap    *logging.Tap

	clock   *clock.Clock
	store   *objects.Registry
	console *console.Console
}

func newHost(opts hostOptions) (*host, error) {
	cfg, path, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	logCfg := cfg.LoggerConfig("devconsole")
	if opts.Verbose {
		logCfg.Level = "debug"
	}
	logger, closer, err := logging.NewLogger(logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	if opts.Quiet && cfg.Logging.File == "" {
		logger = logger.WithOutput(io.Discard)
	}

	// The hook must be in place before components derive their loggers.
	tapLevel := logging.LevelInfo
	if opts.Verbose {
		tapLevel = logging.LevelDebug
	}
	tap := logging.NewTap(logging.TapConfig{MinLevel: tapLevel})
	logger.AddHook(tap.Hook())

	h := &host{
		cfg:     cfg,
		cfgPath: path,
		logger:  logger,
		closer:  closer,
		tap:     tap,
		clock:   clock.New(clock.WithLogger(logger)),
		store:   objects.NewRegistry(logger),
	}

	if err := h.store.Register(commands.ConfigType, settingsInstance, &h.cfg.Console); err != nil {
		h.Close()
		return nil, err
	}
	if err := h.store.Register(clock.TypeName, clockInstance, h.clock); err != nil {
		h.Close()
		return nil, err
	}

	h.console = console.New(console.Options{
		Logger:    logger,
		Commands:  commands.All(),
		Store:     h.store,
		Settings:  &h.cfg.Console,
		Formatter: console.NewFormatter(opts.Plain),
	})
	for _, d := range h.console.Diagnostics() {
		logger.Warn("Command registry", logging.Fields{"collision": d})
	}

	logger.Debug("Host ready", logging.Fields{"config": path})
	return h, nil
}

func loadConfig(path string) (*config.Config, string, error) {
	if path != "" {
		cfg, err := config.Load(path)
		return cfg, path, err
	}
	return config.LoadFromEnv()
}

// Close stops the tap and releases the log file
func (h *host) Close() error {
	h.tap.Close()
	return h.closer.Close()
}
