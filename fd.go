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

// Descriptor exclusively owns a single OS file descriptor, which it closes
// exactly once, via [Descriptor.Close]. Reads and writes are expected to be
// non-blocking, which is how [New] configures its pipes.
//
// Like the rest of this package, a Descriptor is not safe for concurrent use.
type Descriptor struct {
	fd int
}

// NewDescriptor adopts fd, which the returned Descriptor will own.
func NewDescriptor(fd int) *Descriptor {
	return &Descriptor{fd: fd}
}

// Fd returns the raw file descriptor, or -1 if closed or released.
func (x *Descriptor) Fd() int {
	if x == nil {
		return -1
	}
	return x.fd
}

// Read performs a single read syscall.
//
// If the descriptor is non-blocking and no data is available, the would-block
// error is absorbed, and (0, nil) is returned. This allows Read to be used
// directly when draining after a readiness notification. End of file (all
// write ends closed, and the pipe drained) is reported as [io.EOF].
func (x *Descriptor) Read(b []byte) (int, error) {
	if x.Fd() < 0 {
		return 0, ErrClosed
	}
	if len(b) == 0 {
		return 0, nil
	}
	n, err := readFD(x.fd, b)
	switch {
	case isWouldBlock(err):
		return 0, nil
	case err != nil:
		return 0, err
	case n == 0:
		return 0, io.EOF
	}
	return n, nil
}

// Write performs a single write syscall, and may write fewer than len(b)
// bytes. Writing zero bytes is a no-op. Unlike Read, would-block errors are
// returned as-is (EAGAIN).
func (x *Descriptor) Write(b []byte) (int, error) {
	if x.Fd() < 0 {
		return 0, ErrClosed
	}
	if len(b) == 0 {
		return 0, nil
	}
	return writeFD(x.fd, b)
}

// WriteAll writes all of b, calling Write until the buffer is consumed. A
// non-blocking write may be short, even if the pipe had space when polled.
// If a write fails, the error is a [*ShortWriteError], recording the number
// of bytes that were written.
func (x *Descriptor) WriteAll(b []byte) error {
	var written int
	for len(b) != 0 {
		n, err := x.Write(b)
		written += n
		if err != nil {
			return &ShortWriteError{Err: err, Written: written}
		}
		if n == 0 {
			return &ShortWriteError{Err: io.ErrShortWrite, Written: written}
		}
		b = b[n:]
	}
	return nil
}

// Close closes the descriptor. Subsequent calls return [ErrClosed].
func (x *Descriptor) Close() error {
	if x.Fd() < 0 {
		return ErrClosed
	}
	fd := x.fd
	x.fd = -1
	return closeFD(fd)
}

// IntoFd releases ownership of the descriptor, without closing it, returning
// the raw value (or -1 if already closed or released).
func (x *Descriptor) IntoFd() int {
	fd := x.Fd()
	if x != nil {
		x.fd = -1
	}
	return fd
}
