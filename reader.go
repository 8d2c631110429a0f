// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

//go:build linux || darwin

package pipepoll

import (
	"io"
	"slices"
)

// defaultReadChunk is the minimum spare capacity ReadToEnd reads into.
const defaultReadChunk = 512

// Reader is the read end of a pipe. It owns its descriptor, and never
// exposes write operations. See [New].
type Reader struct {
	d Descriptor
}

var _ io.ReadCloser = (*Reader)(nil)

// NewReader adopts fd as the read end of a pipe. The caller is responsible
// for configuring it as non-blocking, if desired.
func NewReader(fd int) *Reader {
	return &Reader{d: Descriptor{fd: fd}}
}

func (x *Reader) adopt(fd int) *Reader { return NewReader(fd) }

// Fd returns the raw file descriptor, or -1 if closed or released.
func (x *Reader) Fd() int {
	if x == nil {
		return -1
	}
	return x.d.Fd()
}

// Read performs a single non-blocking read, see [Descriptor.Read]. Notably,
// it returns (0, nil) if no data is available.
func (x *Reader) Read(b []byte) (int, error) {
	return x.d.Read(b)
}

// ReadToEnd appends everything currently readable to dst, stopping when the
// pipe would block or reaches EOF. It returns the extended buffer, and the
// number of bytes read. Reaching EOF is reported as [io.EOF], alongside any
// bytes read prior.
func (x *Reader) ReadToEnd(dst []byte) ([]byte, int, error) {
	var total int
	for {
		dst = slices.Grow(dst, defaultReadChunk)
		n, err := x.Read(dst[len(dst):cap(dst)])
		dst = dst[:len(dst)+n]
		total += n
		if err != nil || n == 0 {
			return dst, total, err
		}
	}
}

// Close closes the read end.
func (x *Reader) Close() error {
	return x.d.Close()
}

// IntoFd releases ownership, returning the raw file descriptor without
// closing it.
func (x *Reader) IntoFd() int {
	return x.d.IntoFd()
}

// Dup returns a new Reader, for the same pipe, with FD_CLOEXEC set.
func (x *Reader) Dup() (*Reader, error) { return dup(x) }

// Dup2 returns a new Reader, for the same pipe, using target as the
// descriptor, with FD_CLOEXEC set.
func (x *Reader) Dup2(target int) (*Reader, error) { return dup2(x, target) }
