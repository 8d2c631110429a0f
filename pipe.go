// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

//go:build linux || darwin

package pipepoll

// New creates a pipe, returning the read and write ends, both of which are
// non-blocking, and have FD_CLOEXEC set. If configuring either end fails,
// both are closed, and no pair is returned.
//
// The caller owns both ends, and must close them.
func New() (*Reader, *Writer, error) {
	r, w, err := createPipe()
	if err != nil {
		return nil, nil, err
	}
	return NewReader(r), NewWriter(w), nil
}
