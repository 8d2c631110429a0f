// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

//go:build darwin

package pipepoll

import (
	"os"

	"golang.org/x/sys/unix"
)

// createPipe creates a non-blocking, close-on-exec pipe (darwin).
// There is no pipe2, so the flags are set after creation, and on failure
// both ends are closed, to avoid leaking them.
func createPipe() (r, w int, err error) {
	var fds [2]int
	if err := unix.Pipe(fds[:]); err != nil {
		return -1, -1, os.NewSyscallError(`pipe`, err)
	}

	cleanup := func() {
		_ = unix.Close(fds[0])
		_ = unix.Close(fds[1])
	}

	for _, fd := range fds {
		if err := setCloseOnExec(fd); err != nil {
			cleanup()
			return -1, -1, err
		}
		if err := unix.SetNonblock(fd, true); err != nil {
			cleanup()
			return -1, -1, os.NewSyscallError(`fcntl`, err)
		}
	}

	return fds[0], fds[1], nil
}
