// Copyright 2026 Lumen ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package buffer

import "fmt"

// ErrorKind categorizes buffer subsystem failures. Every failure is
// reported synchronously to the immediate caller; none is retried.
type ErrorKind int

const (
	// KindOutOfBounds: an offset/size pair exceeds the buffer's capacity.
	KindOutOfBounds ErrorKind = iota
	// KindInvalidArgument: a malformed argument, e.g. unmapping a pointer
	// that is not currently mapped.
	KindInvalidArgument
	// KindUnsupported: the operation is not implemented for this buffer
	// kind or configuration.
	KindUnsupported
	// KindPrecondition: the buffer is in a state that forbids the
	// operation, e.g. reallocating while mappings are outstanding.
	KindPrecondition
	// KindAllocation: the engine cannot satisfy a size/storage request.
	KindAllocation
)

// String returns the error kind as a string.
func (k ErrorKind) String() string {
	switch k {
	case KindOutOfBounds:
		return "OutOfBounds"
	case KindInvalidArgument:
		return "InvalidArgument"
	case KindUnsupported:
		return "UnsupportedOperation"
	case KindPrecondition:
		return "PreconditionViolation"
	case KindAllocation:
		return "AllocationFailure"
	default:
		return "Unknown"
	}
}

// Error is a structured buffer subsystem error with kind and operation
// context.
type Error struct {
	Kind    ErrorKind
	Op      string // Operation that failed
	Message string // Human-readable message
	Err     error  // Underlying error if any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("buffer: %s in %s: %s: %v", e.Kind, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("buffer: %s in %s: %s", e.Kind, e.Op, e.Message)
}

// Unwrap allows error chain inspection.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches against the kind sentinels below, so callers can write
// errors.Is(err, buffer.ErrOutOfBounds).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Op == "" && t.Message == "" && t.Err == nil && t.Kind == e.Kind
}

// Kind sentinels for errors.Is.
var (
	ErrOutOfBounds     = &Error{Kind: KindOutOfBounds}
	ErrInvalidArgument = &Error{Kind: KindInvalidArgument}
	ErrUnsupported     = &Error{Kind: KindUnsupported}
	ErrPrecondition    = &Error{Kind: KindPrecondition}
	ErrAllocation      = &Error{Kind: KindAllocation}
)

// Common error constructors

func NewOutOfBounds(op, message string) error {
	return &Error{Kind: KindOutOfBounds, Op: op, Message: message}
}

func NewInvalidArgument(op, message string) error {
	return &Error{Kind: KindInvalidArgument, Op: op, Message: message}
}

func NewUnsupported(op, message string) error {
	return &Error{Kind: KindUnsupported, Op: op, Message: message}
}

func NewPrecondition(op, message string) error {
	return &Error{Kind: KindPrecondition, Op: op, Message: message}
}

func NewAllocation(op, message string, err error) error {
	return &Error{Kind: KindAllocation, Op: op, Message: message, Err: err}
}
