// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

//go:build linux

package pipepoll

import (
	"os"

	"golang.org/x/sys/unix"
)

// createPipe creates a non-blocking, close-on-exec pipe (linux, atomically,
// via pipe2).
func createPipe() (r, w int, err error) {
	var fds [2]int
	if err := unix.Pipe2(fds[:], unix.O_NONBLOCK|unix.O_CLOEXEC); err != nil {
		return -1, -1, os.NewSyscallError(`pipe2`, err)
	}
	return fds[0], fds[1], nil
}
