// File: console.go
// Title: Console Dispatch Loop
// Description: The console context object. It turns an input line into a
//              command execution: history, tokenizing, command lookup, alias
//              substitution, help and arity checks, execution and reporting.
// Author: msto63
// Version: v0.1.0
// Created: 2025-12-08
// Modified: 2026-10-17

package console

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/msto63/devconsole/internal/console/access"
	"github.com/msto63/devconsole/internal/objects"
	"github.com/msto63/devconsole/pkg/core/config"
	"github.com/msto63/devconsole/pkg/core/logging"
)

const (
	// DefaultMaxHistory is used when Options.MaxHistory is negative
	DefaultMaxHistory = config.DefaultMaxHistory

	// MaxScriptDepth limits nested script execution
	MaxScriptDepth = 8
)

// Options configure a Console
type Options struct {
	Logger   *logging.Logger
	Commands []Command
	Store    objects.Store

	// MaxHistory caps the history. 0 keeps no history; a negative value
	// selects DefaultMaxHistory. Ignored when Settings is set.
	MaxHistory int

	// Settings are the live console settings. Changes made by commands or a
	// reload are applied after every dispatch.
	Settings *config.ConsoleConfig

	Formatter *Formatter
}

// DispatchOptions modify a single dispatch
type DispatchOptions struct {
	// NoHistory keeps the line out of the history
	NoHistory bool

	// Context is handed to the command; defaults to context.Background()
	Context context.Context
}

// Console is the command interpreter context. It is not safe for concurrent
// dispatch; callers serialise ProcessLine calls.
type Console struct {
	registry  *Registry
	aliases   *AliasTable
	history   *History
	accessor  *access.Accessor
	store     objects.Store
	watches   *Watches
	formatter *Formatter
	logger    *logging.Logger

	settings       *config.ConsoleConfig
	appliedHistory int

	bufferedLine string
	hasBuffered  bool

	onClear func()
	onExit  func()

	scriptDepth int
}

// New creates a console
func New(opts Options) *Console {
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.Formatter == nil {
		opts.Formatter = NewFormatter(false)
	}
	if opts.Settings != nil {
		opts.MaxHistory = opts.Settings.MaxHistory
	}
	if opts.MaxHistory < 0 {
		opts.MaxHistory = DefaultMaxHistory
	}
	if opts.Store == nil {
		opts.Store = objects.NewRegistry(opts.Logger)
	}

	logger := opts.Logger.WithField("component", "console")

	return &Console{
		registry:  NewRegistry(opts.Logger, opts.Commands...),
		aliases:   NewAliasTable(),
		history:   NewHistory(opts.MaxHistory),
		accessor:  access.New(opts.Store, opts.Logger),
		store:     opts.Store,
		watches:   NewWatches(),
		formatter: opts.Formatter,
		logger:    logger,

		settings:       opts.Settings,
		appliedHistory: opts.MaxHistory,
	}
}

// Registry returns the command registry
func (c *Console) Registry() *Registry { return c.registry }

// Aliases returns the alias table
func (c *Console) Aliases() *AliasTable { return c.aliases }

// History returns the command history
func (c *Console) History() *History { return c.history }

// Accessor returns the live object accessor
func (c *Console) Accessor() *access.Accessor { return c.accessor }

// Store returns the live object store
func (c *Console) Store() objects.Store { return c.store }

// Watches returns the watch slots
func (c *Console) Watches() *Watches { return c.watches }

// Formatter returns the message formatter
func (c *Console) Formatter() *Formatter { return c.formatter }

// Logger returns the console logger
func (c *Console) Logger() *logging.Logger { return c.logger }

// Diagnostics returns registry problems found at construction, one message each
func (c *Console) Diagnostics() []string {
	collisions := c.registry.Diagnostics()
	out := make([]string, len(collisions))
	for i, col := range collisions {
		out[i] = col.String()
	}
	return out
}

// Settings returns the live settings, nil when the console has none
func (c *Console) Settings() *config.ConsoleConfig {
	return c.settings
}

// ApplySettings moves changed settings into the console. Only values that
// differ from the last applied ones are taken over, so a capacity set with
// "history max" survives until max_history itself changes.
func (c *Console) ApplySettings() {
	if c.settings == nil {
		return
	}
	if n := c.settings.MaxHistory; n != c.appliedHistory && c.history.SetMax(n) {
		c.appliedHistory = n
		c.logger.Debug("History capacity changed", logging.Fields{"max": n})
	}
}

// SetBufferedLine asks the host to put line into the input field
func (c *Console) SetBufferedLine(line string) {
	c.bufferedLine = line
	c.hasBuffered = true
}

// TakeBufferedLine returns and clears the buffered line
func (c *Console) TakeBufferedLine() (string, bool) {
	line, ok := c.bufferedLine, c.hasBuffered
	c.bufferedLine, c.hasBuffered = "", false
	return line, ok
}

// OnClear installs the host hook run by RequestClear
func (c *Console) OnClear(fn func()) { c.onClear = fn }

// OnExit installs the host hook run by RequestExit
func (c *Console) OnExit(fn func()) { c.onExit = fn }

// RequestClear asks the host to clear its output view
func (c *Console) RequestClear() {
	if c.onClear != nil {
		c.onClear()
	}
}

// RequestExit asks the host to close the console
func (c *Console) RequestExit() {
	if c.onExit != nil {
		c.onExit()
	}
}

// ProcessLine dispatches raw and returns the text to display
func (c *Console) ProcessLine(raw string) string {
	return c.Process(raw, DispatchOptions{})
}

// Process dispatches raw with options and returns the text to display.
// Failures are rendered as error messages.
func (c *Console) Process(raw string, opts DispatchOptions) string {
	out, err := c.Dispatch(raw, opts)
	if err != nil {
		return c.formatter.Error(err.Error())
	}
	return out
}

// Dispatch runs raw and returns the command output or a classified *Error
func (c *Console) Dispatch(raw string, opts DispatchOptions) (string, error) {
	line := strings.TrimSpace(raw)
	if line == "" {
		return "", nil
	}
	defer c.ApplySettings()

	// A repeat of the newest entry is not inserted but still sits at index 0.
	recorded := false
	if !opts.NoHistory {
		c.history.Add(line)
		newest, ok := c.history.At(0)
		recorded = ok && newest == line
	}

	tokens := Tokenize(line)
	if len(tokens) == 0 {
		return "", nil
	}

	requestID := uuid.NewString()
	log := c.logger.WithRequestID(requestID)

	word := tokens[0]
	cmd := c.registry.Find(word)
	if cmd == nil {
		log.Debug("Unrecognized command", logging.Fields{"word": word})
		return "", errUnrecognized(word)
	}

	if !wantsRawArgs(cmd) {
		tokens = c.aliases.Resolve(tokens)
	}

	help := cmd.Help()
	if err := help.Valid(); err != nil {
		e := errUninitialized(word, err)
		log.ErrorWithErr(e.Message, err, logging.Fields{"word": word})
		return "", e
	}

	name := strings.ToLower(help.Name)
	args := tokens[1:]
	if err := ValidateArgs(len(args), help.Usages); err != nil {
		return "", errArity(name)
	}

	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	inv := &Invocation{
		Word:    strings.ToLower(word),
		Args:    args,
		Console: c,
		Logger:  log.WithField("command", name),
		ctx:     ctx,

		recorded: recorded,
	}

	start := time.Now()
	err := c.execute(cmd, inv)
	log.Debug("Command dispatched", logging.Fields{
		"command":  name,
		"args":     len(args),
		"success":  err == nil,
		"duration": time.Since(start).String(),
	})

	if err != nil {
		return "", classify(name, err)
	}
	return inv.Output(), nil
}

// execute runs cmd and converts a panic into a command failure
func (c *Console) execute(cmd Command, inv *Invocation) (err error) {
	defer func() {
		if p := recover(); p != nil {
			inv.Logger.Error("Command panicked", logging.Fields{
				"panic": fmt.Sprint(p),
				"stack": string(debug.Stack()),
			})
			err = &Error{
				Kind:    KindCommandFailure,
				Command: inv.Word,
				Message: fmt.Sprintf("Command %s failed: %v", inv.Word, p),
			}
		}
	}()
	return cmd.Execute(inv)
}

func classify(name string, err error) error {
	var ae *access.Error
	if errors.As(err, &ae) {
		return &Error{Kind: KindReflection, Command: name, Message: ae.Message, Err: err}
	}

	var ce *Error
	if errors.As(err, &ce) {
		if ce.Command == "" {
			ce.Command = name
		}
		return ce
	}

	return &Error{Kind: KindCommandFailure, Command: name, Message: err.Error(), Err: err}
}

var lineComment = regexp.MustCompile(`//.*`)

// RunScript dispatches every line of text with history suppressed. "//"
// starts a comment; blank lines are skipped. Non-empty outputs are returned
// in order.
func (c *Console) RunScript(text string) []string {
	lines := strings.FieldsFunc(text, func(r rune) bool { return r == '\n' || r == '\r' })

	var outputs []string
	for _, line := range lines {
		line = strings.TrimRight(lineComment.ReplaceAllString(line, ""), " \t")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if out := c.Process(line, DispatchOptions{NoHistory: true}); out != "" {
			outputs = append(outputs, out)
		}
	}
	return outputs
}

// RunScriptFile reads path and runs it with RunScript. Scripts may run
// scripts up to MaxScriptDepth levels deep.
func (c *Console) RunScriptFile(path string) ([]string, error) {
	if c.scriptDepth >= MaxScriptDepth {
		return nil, fmt.Errorf("Script nesting is limited to %d levels.", MaxScriptDepth)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("Could not read script %s: %w", path, err)
	}

	c.scriptDepth++
	defer func() { c.scriptDepth-- }()

	c.logger.Debug("Running script", logging.Fields{"file": path, "depth": c.scriptDepth})
	return c.RunScript(string(data)), nil
}
