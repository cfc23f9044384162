// File: errors.go
// Title: Console Error Taxonomy
// Description: Classified errors produced while dispatching a console line.
//              Every error carries a kind code, the command it belongs to
//              and the message shown to the user.
// Author: msto63
// Version: v0.1.0
// Created: 2025-12-08
// Modified: 2025-12-08

package console

import (
	"errors"
	"fmt"
)

// Kind classifies console errors
type Kind string

const (
	// KindUnrecognizedCommand: the first word matches no command
	KindUnrecognizedCommand Kind = "UNRECOGNIZED_COMMAND"

	// KindArity: argument count matches no usage of the command
	KindArity Kind = "ARITY"

	// KindUninitializedDescriptor: the command's help block is incomplete
	KindUninitializedDescriptor Kind = "UNINITIALIZED_DESCRIPTOR"

	// KindReflection: a live object lookup, field access or call failed
	KindReflection Kind = "REFLECTION"

	// KindCommandFailure: the command reported a failure of its own
	KindCommandFailure Kind = "COMMAND_FAILURE"
)

// Error is a classified console error
type Error struct {
	Kind    Kind
	Command string
	Message string
	Err     error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Kind)
}

// Unwrap returns the wrapped cause
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error of the same kind
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// HasKind reports whether err is or wraps a console error of the given kind
func HasKind(err error, kind Kind) bool {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind == kind
	}
	return false
}

func errUnrecognized(word string) *Error {
	return &Error{
		Kind:    KindUnrecognizedCommand,
		Command: word,
		Message: fmt.Sprintf("Unrecognized command %s.", word),
	}
}

func errUninitialized(word string, cause error) *Error {
	return &Error{
		Kind:    KindUninitializedDescriptor,
		Command: word,
		Message: fmt.Sprintf("The help block for command %s is uninitialized.", word),
		Err:     cause,
	}
}

func errArity(name string) *Error {
	return &Error{
		Kind:    KindArity,
		Command: name,
		Message: fmt.Sprintf("Incorrect number of arguments for command %s.", name),
	}
}
