// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

//go:build linux && (mips || mipsle || mips64 || mips64le || sparc64)

package pipepoll

// As asm-generic, except POLLWRNORM is POLLOUT, and POLLWRBAND moves down, see
// arch/mips/include/uapi/asm/poll.h and arch/sparc/include/uapi/asm/poll.h.
const (
	pollRdNorm = 0x40
	pollRdBand = 0x80
	pollWrNorm = 0x4
	pollWrBand = 0x100
)
