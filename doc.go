// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

// Package pipepoll implements non-blocking Unix pipes, and a readiness
// multiplexer for them, built on poll(2).
//
// # Pipes
//
// [New] creates a pipe, as a [Reader] and [Writer], each exclusively owning
// one end. Both are non-blocking, with FD_CLOEXEC set. Reading from an empty
// pipe returns (0, nil), rather than an error, see [Descriptor.Read].
// Either end may be duplicated, see [Duplicable].
//
// # Polling
//
// A [Poll] holds an ordered list of registrations, each a descriptor, an
// interest mask ([Event]), and a caller-defined [Token]. [Poll.Poll] waits
// for readiness, bounded by a [Timeout], and [Poll.Events] then yields one
// [Ready] per reported flag:
//
//	p := new(pipepoll.Poll)
//	p.Register(r, 1, pipepoll.AllReadable)
//	p.Register(w, 2, pipepoll.AllWritable)
//	if _, err := p.Poll(pipepoll.Infinite()); err != nil {
//	    return err
//	}
//	for ready, err := range p.Events() {
//	    if err != nil {
//	        // unknown flags reported for a single registration
//	        continue
//	    }
//	    switch {
//	    case ready.Event.IsReadable():
//	    case ready.Event.IsWritable():
//	    case ready.Event.IsHangup():
//	    }
//	}
//
// # Safety
//
// Nothing in this package is safe for concurrent use. Descriptors must be
// closed by their owner, and should be deregistered (or the Poll discarded)
// before they are closed, as descriptor numbers are reused.
package pipepoll
