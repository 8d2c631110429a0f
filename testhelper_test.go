// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

//go:build linux || darwin

package pipepoll

import (
	"errors"
	"testing"

	"golang.org/x/sys/unix"
)

// testPipe creates a pipe, closing both ends on cleanup.
func testPipe(t *testing.T) (*Reader, *Writer) {
	t.Helper()
	r, w, err := New()
	if err != nil {
		t.Fatal("New failed:", err)
	}
	t.Cleanup(func() {
		_ = r.Close()
		_ = w.Close()
	})
	return r, w
}

// fillPipe writes until the pipe would block, returning the bytes written.
func fillPipe(t *testing.T, w *Writer) int {
	t.Helper()
	chunk := make([]byte, 4096)
	var total int
	for {
		n, err := w.Write(chunk)
		total += n
		if err != nil {
			if !errors.Is(err, unix.EAGAIN) {
				t.Fatal("unexpected write error:", err)
			}
			return total
		}
	}
}

// fdFlags returns the descriptor flags (F_GETFD) of fd.
func fdFlags(fd int) (int, error) {
	return unix.FcntlInt(uintptr(fd), unix.F_GETFD, 0)
}

// fdOpen reports whether fd is currently an open descriptor.
func fdOpen(fd int) bool {
	_, err := fdFlags(fd)
	return !errors.Is(err, unix.EBADF)
}

func hasCloseOnExec(t *testing.T, fd int) bool {
	t.Helper()
	flags, err := fdFlags(fd)
	if err != nil {
		t.Fatal("fcntl failed:", err)
	}
	return flags&unix.FD_CLOEXEC != 0
}
