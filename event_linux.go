// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

//go:build linux && !(mips || mipsle || mips64 || mips64le || sparc64)

package pipepoll

// x/sys/unix doesn't export these for linux, values are from
// include/uapi/asm-generic/poll.h.
const (
	pollRdNorm = 0x40
	pollRdBand = 0x80
	pollWrNorm = 0x100
	pollWrBand = 0x200
)
