// File: result.go
// Title: Accessor Results
// Description: Layered outcome flags of field and function access and the
//              user facing messages derived from the first failing layer.
// Author: msto63
// Version: v0.1.0
// Created: 2025-12-08
// Modified: 2025-12-08

package access

import "fmt"

// Failure names the first layer at which an access failed
type Failure int

const (
	// FailureNone: every layer succeeded
	FailureNone Failure = iota

	// FailureInvalidType: the type name is not known to the object store
	FailureInvalidType

	// FailureNoInstance: the type has no live instance
	FailureNoInstance

	// FailureAmbiguousInstance: no single instance could be selected
	FailureAmbiguousInstance

	// FailureMemberNotFound: no field or method with that name exists
	FailureMemberNotFound

	// FailureIncompatible: the value or the parameters do not fit
	FailureIncompatible

	// FailureCall: the method ran and returned an error
	FailureCall
)

// String returns the failure name
func (f Failure) String() string {
	switch f {
	case FailureNone:
		return "none"
	case FailureInvalidType:
		return "invalid type"
	case FailureNoInstance:
		return "no instance"
	case FailureAmbiguousInstance:
		return "ambiguous instance"
	case FailureMemberNotFound:
		return "member not found"
	case FailureIncompatible:
		return "incompatible value or parameters"
	case FailureCall:
		return "call error"
	default:
		return "unknown"
	}
}

// Error is returned by Err on a failed access
type Error struct {
	Failure Failure
	Message string
	Cause   error
}

// Error implements the error interface
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the error returned by a called method, if any
func (e *Error) Unwrap() error {
	return e.Cause
}

// lookup holds the instance resolution flags shared by both result kinds
type lookup struct {
	Type     string
	Instance string

	ValidType        bool
	InstancesFound   bool
	InstanceResolved bool
}

func (l lookup) failure() (Failure, string) {
	switch {
	case !l.ValidType:
		return FailureInvalidType, fmt.Sprintf("Type %s is not a valid object type.", l.Type)
	case !l.InstancesFound:
		return FailureNoInstance, fmt.Sprintf("No instance of type %s was found.", l.Type)
	case !l.InstanceResolved:
		if l.Instance == "" {
			return FailureAmbiguousInstance, fmt.Sprintf("Multiple instances of type %s were found. Specify an instance name.", l.Type)
		}
		return FailureAmbiguousInstance, fmt.Sprintf("No instance with name %s was found.", l.Instance)
	}
	return FailureNone, ""
}

// FieldResult is the outcome of a field read or write
type FieldResult struct {
	lookup

	Field      string
	FieldFound bool
	ValidValue bool
	Success    bool

	// Value is the field value after the access
	Value any

	input any
}

// Failure returns the first failing layer
func (r *FieldResult) Failure() Failure {
	f, _ := r.failure()
	return f
}

func (r *FieldResult) failure() (Failure, string) {
	if f, msg := r.lookup.failure(); f != FailureNone {
		return f, msg
	}
	switch {
	case !r.FieldFound:
		return FailureMemberNotFound, fmt.Sprintf("No field with name %s was found in type %s.", r.Field, r.Type)
	case !r.ValidValue:
		return FailureIncompatible, fmt.Sprintf("The argument %v could not be cast to the correct type.", r.input)
	}
	return FailureNone, ""
}

// Err returns nil on success and an *Error describing the failure otherwise
func (r *FieldResult) Err() error {
	f, msg := r.failure()
	if f == FailureNone {
		return nil
	}
	return &Error{Failure: f, Message: msg}
}

// FunctionResult is the outcome of a method invocation
type FunctionResult struct {
	lookup

	Function          string
	FunctionFound     bool
	CorrectParameters bool
	Success           bool

	// ReturnValue is the first result of the call, nil for no results
	ReturnValue any

	// CallErr is a non-nil trailing error result of the call
	CallErr error
}

// Failure returns the first failing layer
func (r *FunctionResult) Failure() Failure {
	f, _ := r.failure()
	return f
}

func (r *FunctionResult) failure() (Failure, string) {
	if f, msg := r.lookup.failure(); f != FailureNone {
		return f, msg
	}
	switch {
	case !r.FunctionFound:
		return FailureMemberNotFound, fmt.Sprintf("No function with name %s was found in type %s.", r.Function, r.Type)
	case !r.CorrectParameters:
		return FailureIncompatible, fmt.Sprintf("No overload for function %s was found matching these parameters.", r.Function)
	case r.CallErr != nil:
		return FailureCall, r.CallErr.Error()
	}
	return FailureNone, ""
}

// Err returns nil on success and an *Error describing the failure otherwise
func (r *FunctionResult) Err() error {
	f, msg := r.failure()
	if f == FailureNone {
		return nil
	}
	return &Error{Failure: f, Message: msg, Cause: r.CallErr}
}
