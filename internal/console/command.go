// File: command.go
// Title: Command Contract
// Description: The interface every console command implements and the
//              invocation it runs with: arguments, output buffer, history
//              recall and argument conversion helpers.
// Author: msto63
// Version: v0.1.0
// Created: 2025-12-08
// Modified: 2026-10-17

package console

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/msto63/devconsole/internal/console/access"
	"github.com/msto63/devconsole/pkg/core/logging"
)

// Command is a console command
type Command interface {
	// Words returns the invoking words
	Words() []string

	// Help returns the help block; an incomplete block disables the command
	Help() Help

	// Execute runs the command. A non-nil error is reported as failure.
	Execute(inv *Invocation) error
}

// RawArgs is implemented by commands whose arguments must not be alias substituted
type RawArgs interface {
	RawArgs() bool
}

func wantsRawArgs(cmd Command) bool {
	r, ok := cmd.(RawArgs)
	return ok && r.RawArgs()
}

// Invocation is the context of one command execution. Its output buffer
// exists only for this execution.
type Invocation struct {
	// Word is the word the command was invoked with
	Word string

	// Args are the arguments after the command word
	Args []string

	Console *Console
	Logger  *logging.Logger

	ctx context.Context
	out strings.Builder

	// recorded is set when the executing line occupies history index 0
	recorded bool
}

// Recall returns the history entry the user sees as index i. When the
// executing line was entered into the history it is skipped.
func (inv *Invocation) Recall(i int) (string, bool) {
	if i < 0 || inv.Console == nil {
		return "", false
	}
	if inv.recorded {
		i++
	}
	return inv.Console.History().At(i)
}

// Context returns the context of the dispatch
func (inv *Invocation) Context() context.Context {
	if inv.ctx == nil {
		return context.Background()
	}
	return inv.ctx
}

// Print appends to the output
func (inv *Invocation) Print(a ...any) {
	fmt.Fprint(&inv.out, a...)
}

// Printf appends formatted output
func (inv *Invocation) Printf(format string, a ...any) {
	fmt.Fprintf(&inv.out, format, a...)
}

// Println appends output followed by a newline
func (inv *Invocation) Println(a ...any) {
	fmt.Fprintln(&inv.out, a...)
}

// Output returns everything printed so far
func (inv *Invocation) Output() string {
	return inv.out.String()
}

// Accessor is a shortcut for inv.Console.Accessor()
func (inv *Invocation) Accessor() *access.Accessor {
	return inv.Console.Accessor()
}

// Formatter is a shortcut for inv.Console.Formatter()
func (inv *Invocation) Formatter() *Formatter {
	return inv.Console.Formatter()
}

// Fail returns a command failure carrying msg
func (inv *Invocation) Fail(msg string) error {
	return &Error{Kind: KindCommandFailure, Command: inv.Word, Message: msg}
}

// Failf returns a formatted command failure
func (inv *Invocation) Failf(format string, a ...any) error {
	return inv.Fail(fmt.Sprintf(format, a...))
}

// Unrecognized returns the failure for an unknown subcommand
func (inv *Invocation) Unrecognized(sub string) error {
	return inv.Failf("Unrecognized subcommand %s.", sub)
}

// Equal compares words case-insensitively
func Equal(a, b string) bool {
	return strings.EqualFold(a, b)
}

// ParseInt parses an integer argument
func ParseInt(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, castError(s)
	}
	return n, nil
}

// ParseFloat parses a floating point argument
func ParseFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, castError(s)
	}
	return f, nil
}

// ParseBool parses a boolean argument
func ParseBool(s string) (bool, error) {
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return false, castError(s)
	}
	return b, nil
}

func castError(s string) error {
	return &Error{
		Kind:    KindCommandFailure,
		Message: fmt.Sprintf("The argument %s could not be cast to the correct type.", s),
	}
}
