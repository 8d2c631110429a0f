// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

//go:build linux || darwin

package pipepoll

import (
	"iter"
	"os"

	"github.com/joeycumines/logiface"
	"golang.org/x/sys/unix"
)

// Ready is a single event, for a registration, as yielded by [Poll.Events].
// Event always has exactly one bit set.
type Ready struct {
	Token Token
	Event Event
}

// Poll multiplexes readiness of registered pipe ends, using poll(2).
//
// Registrations are kept in order, as (descriptor, interest, token) entries,
// which is also the order events are reported in. The same descriptor may be
// registered multiple times, and the same token may be used for multiple
// descriptors.
//
// Poll is not safe for concurrent use. The zero value is ready to use, with
// logging disabled.
type Poll struct {
	logger *logiface.Logger[logiface.Event]
	// fds and tokens are always the same length
	fds    []unix.PollFd
	tokens []Token
}

// pending is a snapshot of one entry's results, taken by Events.
type pending struct {
	token   Token
	fd      int32
	revents int16
}

// NewPoll initializes a new Poll, see also [PollOption].
func NewPoll(opts ...PollOption) (*Poll, error) {
	cfg, err := resolvePollOptions(opts)
	if err != nil {
		return nil, err
	}
	return &Poll{
		logger: cfg.logger,
		fds:    make([]unix.PollFd, 0, cfg.capacity),
		tokens: make([]Token, 0, cfg.capacity),
	}, nil
}

// Register appends a registration for p, which will report events for token.
// The interest mask selects which events are requested, though poll(2)
// always reports [EventErr], [EventHup] and [EventNval].
//
// The descriptor is not validated, an invalid descriptor will be reported (as
// [EventNval]) by the next call to [Poll.Poll].
func (x *Poll) Register(p Pollable, token Token, interest Event) {
	x.fds = append(x.fds, unix.PollFd{
		Fd:     int32(p.Fd()),
		Events: interest.Raw(),
	})
	x.tokens = append(x.tokens, token)
}

// Deregister removes every registration using token, preserving the order of
// the rest, and returns the number removed.
func (x *Poll) Deregister(token Token) int {
	var n int
	for i := range x.tokens {
		if x.tokens[i] == token {
			continue
		}
		x.fds[n] = x.fds[i]
		x.tokens[n] = x.tokens[i]
		n++
	}
	removed := len(x.tokens) - n
	clear(x.fds[n:])
	clear(x.tokens[n:])
	x.fds = x.fds[:n]
	x.tokens = x.tokens[:n]
	return removed
}

// Len returns the number of registrations.
func (x *Poll) Len() int { return len(x.fds) }

// Reset removes all registrations, retaining capacity.
func (x *Poll) Reset() {
	clear(x.fds)
	clear(x.tokens)
	x.fds = x.fds[:0]
	x.tokens = x.tokens[:0]
}

// Poll waits for events on the registered descriptors, returning the number
// with at least one event. It performs exactly one poll(2) call, blocking for
// up to timeout.
//
// All failures, including EINTR (i.e. interruption by a signal), are returned
// as an [*os.SyscallError], and are not retried.
func (x *Poll) Poll(timeout Timeout) (int, error) {
	if len(x.fds) == 0 && timeout.IsInfinite() {
		return 0, ErrEmptyRegistry
	}

	n, err := unix.Poll(x.fds, timeout.pollMillis())
	if err != nil {
		err = os.NewSyscallError(`poll`, err)
		x.logger.Debug().
			Err(err).
			Int(`registered`, len(x.fds)).
			Stringer(`timeout`, timeout).
			Log(`poll failed`)
		return 0, err
	}

	x.logger.Debug().
		Int(`registered`, len(x.fds)).
		Int(`ready`, n).
		Stringer(`timeout`, timeout).
		Log(`poll`)

	return n, nil
}

// Events returns the events received by the last call to [Poll.Poll].
//
// Results are consumed when Events is called: each registration's returned
// events are taken and cleared, such that calling Events again, without an
// intervening poll, yields nothing. The snapshot is taken at call time, not
// when the sequence is ranged over, so a retained sequence replays the same
// results, unaffected by later calls to [Poll.Poll]. Decoding is lazy, per
// step of the iteration. The sequence is in registration order, with one
// [Ready] per set bit, in ascending bit order.
//
// If a registration's returned events include bits outside [AllEvents], a
// single [*DecodeError] is yielded for it, instead of any events, and
// iteration continues with the next registration.
func (x *Poll) Events() iter.Seq2[Ready, error] {
	var results []pending
	for i := range x.fds {
		if revents := x.fds[i].Revents; revents != 0 {
			x.fds[i].Revents = 0
			results = append(results, pending{
				token:   x.tokens[i],
				fd:      x.fds[i].Fd,
				revents: revents,
			})
		}
	}

	return func(yield func(Ready, error) bool) {
		for _, result := range results {
			for event, err := range EventsOf(result.revents) {
				if err != nil {
					decodeErr := &DecodeError{
						Err:     err,
						Token:   result.token,
						Fd:      int(result.fd),
						Revents: result.revents,
					}
					x.logDecodeError(decodeErr)
					if !yield(Ready{Token: result.token}, decodeErr) {
						return
					}
					break
				}
				if !yield(Ready{Token: result.token, Event: event}, nil) {
					return
				}
			}
		}
	}
}

func (x *Poll) logDecodeError(err *DecodeError) {
	x.logger.Warning().
		Limit().
		Err(err).
		Uint64(`token`, uint64(err.Token)).
		Int(`fd`, err.Fd).
		Int(`revents`, int(err.Revents)).
		Log(`unknown poll event`)
}
