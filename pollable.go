// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

//go:build linux || darwin

package pipepoll

import (
	"os"

	"golang.org/x/sys/unix"
)

type (
	// Pollable is implemented by types wrapping a file descriptor, that may
	// be registered with a [Poll].
	Pollable interface {
		// Fd returns the raw file descriptor.
		Fd() int
	}

	// Duplicable is implemented by pipe ends, which may be duplicated into
	// new, independently owned, instances of the same type. The duplicate
	// refers to the same open pipe, and always has FD_CLOEXEC set.
	Duplicable[T any] interface {
		Pollable

		// Dup duplicates into the lowest-numbered available descriptor.
		Dup() (T, error)

		// Dup2 duplicates into target, silently closing any descriptor
		// previously open as target. This can be used to e.g. combine a
		// child process's stdout and stderr.
		Dup2(target int) (T, error)
	}

	// adopter constructs a T which owns the given descriptor.
	adopter[T any] interface {
		Pollable
		adopt(fd int) T
	}
)

var (
	// compile time assertions

	_ Duplicable[*Reader] = (*Reader)(nil)
	_ Duplicable[*Writer] = (*Writer)(nil)
	_ adopter[*Reader]    = (*Reader)(nil)
	_ adopter[*Writer]    = (*Writer)(nil)
)

func dup[T adopter[T]](src T) (result T, err error) {
	fd := src.Fd()
	if fd < 0 {
		return result, ErrClosed
	}
	newFD, err := unix.Dup(fd)
	if err != nil {
		return result, os.NewSyscallError(`dup`, err)
	}
	if err := setCloseOnExec(newFD); err != nil {
		_ = closeFD(newFD)
		return result, err
	}
	return src.adopt(newFD), nil
}

func dup2[T adopter[T]](src T, target int) (result T, err error) {
	fd := src.Fd()
	if fd < 0 {
		return result, ErrClosed
	}
	if target == fd {
		// would result in two owners of the same descriptor
		return result, os.NewSyscallError(`dup2`, unix.EINVAL)
	}
	if err := dupTo(fd, target); err != nil {
		return result, err
	}
	if err := setCloseOnExec(target); err != nil {
		_ = closeFD(target)
		return result, err
	}
	return src.adopt(target), nil
}
