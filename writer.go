// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

//go:build linux || darwin

package pipepoll

import (
	"io"
)

// Writer is the write end of a pipe. Like [Reader], it owns its descriptor,
// and is non-blocking with FD_CLOEXEC set, if created by [New]. It never
// exposes read operations.
type Writer struct {
	d Descriptor
}

var _ io.WriteCloser = (*Writer)(nil)

// NewWriter adopts fd as the write end of a pipe.
func NewWriter(fd int) *Writer {
	return &Writer{d: Descriptor{fd: fd}}
}

func (x *Writer) adopt(fd int) *Writer { return NewWriter(fd) }

// Fd returns the raw file descriptor, or -1 if closed or released.
func (x *Writer) Fd() int {
	if x == nil {
		return -1
	}
	return x.d.Fd()
}

// Write performs a single write, see [Descriptor.Write].
func (x *Writer) Write(b []byte) (int, error) {
	return x.d.Write(b)
}

// WriteAll writes the whole of b, see [Descriptor.WriteAll].
func (x *Writer) WriteAll(b []byte) error {
	return x.d.WriteAll(b)
}

// Flush is a no-op, as pipe writes are not buffered in userspace.
func (x *Writer) Flush() error {
	if x.Fd() < 0 {
		return ErrClosed
	}
	return nil
}

// Close closes the write end. Once every write end of a pipe is closed, the
// read end will report hangup, and EOF once drained.
func (x *Writer) Close() error {
	return x.d.Close()
}

// IntoFd releases ownership, returning the raw file descriptor without
// closing it.
func (x *Writer) IntoFd() int {
	return x.d.IntoFd()
}

// Dup returns a new Writer, for the same pipe, with FD_CLOEXEC set.
func (x *Writer) Dup() (*Writer, error) { return dup(x) }

// Dup2 returns a new Writer, for the same pipe, using target as the
// descriptor, with FD_CLOEXEC set.
func (x *Writer) Dup2(target int) (*Writer, error) { return dup2(x, target) }
