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

// dupTo duplicates fd into target (linux, dup3 without flags, as dup2 is not
// available on every architecture).
func dupTo(fd, target int) error {
	return os.NewSyscallError(`dup3`, unix.Dup3(fd, target, 0))
}
