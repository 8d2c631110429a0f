// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package pipepoll

import (
	"errors"
	"fmt"
)

// Standard errors.
var (
	// ErrUnknownEvent indicates a poll(2) bitmask contained bits outside of
	// [AllEvents].
	ErrUnknownEvent = errors.New(`pipepoll: unknown poll event`)
	// ErrClosed is returned by operations on a closed (or released)
	// descriptor.
	ErrClosed = errors.New(`pipepoll: descriptor closed`)
	// ErrInvalidTimeout is returned by the [Timeout] constructors, for
	// negative or out of range values.
	ErrInvalidTimeout = errors.New(`pipepoll: invalid timeout`)
	// ErrEmptyRegistry is returned by [Poll.Poll] if nothing is registered,
	// and the timeout is infinite, as the call could never return.
	ErrEmptyRegistry = errors.New(`pipepoll: infinite poll with nothing registered`)
)

type (
	// DecodeError is yielded by [Poll.Events] for a registration whose
	// returned events contained unknown bits. It is specific to that
	// registration, and decoding continues with the next.
	DecodeError struct {
		Err     error
		Token   Token
		Fd      int
		Revents int16
	}

	// ShortWriteError is returned by WriteAll if a write failed after some
	// (possibly zero) bytes were written, typically with EAGAIN, as the pipe
	// buffer filled up.
	ShortWriteError struct {
		Err     error
		Written int
	}
)

func (e *DecodeError) Error() string {
	return fmt.Sprintf(`pipepoll: decode revents for token %d (fd %d): %v`, e.Token, e.Fd, e.Err)
}

// Unwrap returns the underlying cause, which wraps [ErrUnknownEvent].
func (e *DecodeError) Unwrap() error { return e.Err }

func (e *ShortWriteError) Error() string {
	return fmt.Sprintf(`pipepoll: short write after %d bytes: %v`, e.Written, e.Err)
}

// Unwrap returns the underlying cause, usually an [*os.SyscallError].
func (e *ShortWriteError) Unwrap() error { return e.Err }
