// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

//go:build darwin

package pipepoll

import (
	"golang.org/x/sys/unix"
)

const (
	pollRdNorm = unix.POLLRDNORM
	pollRdBand = unix.POLLRDBAND
	pollWrNorm = unix.POLLWRNORM
	pollWrBand = unix.POLLWRBAND
)
