// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

//go:build linux || darwin

package pipepoll

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

// closeFD closes a file descriptor on Unix systems.
func closeFD(fd int) error {
	return os.NewSyscallError(`close`, unix.Close(fd))
}

// readFD reads from a file descriptor on Unix systems.
func readFD(fd int, buf []byte) (int, error) {
	n, err := unix.Read(fd, buf)
	if n < 0 {
		n = 0
	}
	return n, os.NewSyscallError(`read`, err)
}

// writeFD writes to a file descriptor on Unix systems.
func writeFD(fd int, buf []byte) (int, error) {
	n, err := unix.Write(fd, buf)
	if n < 0 {
		n = 0
	}
	return n, os.NewSyscallError(`write`, err)
}

// setCloseOnExec sets FD_CLOEXEC, replacing any other descriptor flags.
// Variable for testing.
var setCloseOnExec = func(fd int) error {
	_, err := unix.FcntlInt(uintptr(fd), unix.F_SETFD, unix.FD_CLOEXEC)
	return os.NewSyscallError(`fcntl`, err)
}

func isWouldBlock(err error) bool {
	return err != nil && (errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EWOULDBLOCK))
}
