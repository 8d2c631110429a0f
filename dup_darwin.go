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

// dupTo duplicates fd into target (darwin).
func dupTo(fd, target int) error {
	return os.NewSyscallError(`dup2`, unix.Dup2(fd, target))
}
