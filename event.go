// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

//go:build linux || darwin

package pipepoll

import (
	"fmt"
	"iter"
	"strings"

	"golang.org/x/sys/unix"
)

// Event is a set of poll(2) event flags, as used for both the interest mask
// passed to [Poll.Register] and the per-descriptor results reported by
// [Poll.Events]. Only the ten flags declared below are legal, see
// [ParseEvent].
type Event int16

const (
	// EventIn indicates there is data to read.
	EventIn Event = unix.POLLIN
	// EventPri indicates there is urgent data to read.
	EventPri Event = unix.POLLPRI
	// EventOut indicates writing is now possible.
	EventOut Event = unix.POLLOUT
	// EventErr indicates an error condition (output only).
	EventErr Event = unix.POLLERR
	// EventHup indicates the peer hung up (output only).
	EventHup Event = unix.POLLHUP
	// EventNval indicates the descriptor is not open (output only).
	EventNval Event = unix.POLLNVAL
	// EventRdNorm indicates normal data may be read.
	EventRdNorm Event = pollRdNorm
	// EventRdBand indicates priority band data may be read.
	EventRdBand Event = pollRdBand
	// EventWrNorm indicates normal data may be written.
	EventWrNorm Event = pollWrNorm
	// EventWrBand indicates priority band data may be written.
	EventWrBand Event = pollWrBand
)

const (
	// AllReadable is every flag indicating a pipe is readable.
	AllReadable = EventIn | EventRdNorm | EventRdBand | EventPri
	// AllWritable is every flag indicating a pipe is writable.
	AllWritable = EventOut | EventWrNorm | EventWrBand
	// AllError is every flag indicating an error state.
	AllError = EventErr | EventNval
	// AllEvents is the closed set of legal flags.
	AllEvents = AllReadable | AllWritable | AllError | EventHup
)

// eventNames is searched in order. On some platforms several flags share
// a value (e.g. POLLWRNORM is POLLOUT on darwin and linux/mips), the first
// name wins.
var eventNames = [...]struct {
	event Event
	name  string
}{
	{EventIn, `POLLIN`},
	{EventPri, `POLLPRI`},
	{EventOut, `POLLOUT`},
	{EventErr, `POLLERR`},
	{EventHup, `POLLHUP`},
	{EventNval, `POLLNVAL`},
	{EventRdNorm, `POLLRDNORM`},
	{EventRdBand, `POLLRDBAND`},
	{EventWrNorm, `POLLWRNORM`},
	{EventWrBand, `POLLWRBAND`},
}

// ParseEvent converts a raw poll(2) bitmask into an Event, failing with an
// error wrapping [ErrUnknownEvent] if any bit outside [AllEvents] is set.
// Platform extensions (e.g. POLLRDHUP on linux) are deliberately rejected,
// rather than being misread as some other flag.
func ParseEvent(raw int16) (Event, error) {
	if unknown := Event(raw) &^ AllEvents; unknown != 0 {
		return 0, fmt.Errorf(`%w: %#04x in %#04x`, ErrUnknownEvent, uint16(unknown), uint16(raw))
	}
	return Event(raw), nil
}

// EventsOf decodes a raw poll(2) result into single-bit events, in ascending
// bit order, skipping unset bits. If raw contains any bit outside
// [AllEvents], the sequence yields exactly one error (wrapping
// [ErrUnknownEvent]), and no events.
func EventsOf(raw int16) iter.Seq2[Event, error] {
	return func(yield func(Event, error) bool) {
		if _, err := ParseEvent(raw); err != nil {
			yield(0, err)
			return
		}
		bits := uint16(raw)
		for shift := 0; shift < 16 && bits != 0; shift++ {
			bit := uint16(1) << shift
			if bits&bit == 0 {
				continue
			}
			bits &^= bit
			if !yield(Event(bit), nil) {
				return
			}
		}
	}
}

// Raw returns the poll(2) wire value, which is a bit-identity mapping.
func (e Event) Raw() int16 { return int16(e) }

// Union returns the flags set in either e or other.
func (e Event) Union(other Event) Event { return e | other }

// Intersect returns the flags set in both e and other.
func (e Event) Intersect(other Event) Event { return e & other }

// Complement returns the legal flags not set in e.
func (e Event) Complement() Event { return AllEvents &^ e }

// Has returns true if every flag in other is set in e.
func (e Event) Has(other Event) bool { return e&other == other }

// Intersects returns true if any flag in other is set in e.
func (e Event) Intersects(other Event) bool { return e&other != 0 }

// IsReadable returns true if e intersects [AllReadable].
func (e Event) IsReadable() bool { return e.Intersects(AllReadable) }

// IsWritable returns true if e intersects [AllWritable].
func (e Event) IsWritable() bool { return e.Intersects(AllWritable) }

// IsError returns true if e intersects [AllError]. Note that hangup is not
// considered an error, see [Event.IsHangup].
func (e Event) IsError() bool { return e.Intersects(AllError) }

// IsHangup returns true if e includes [EventHup].
func (e Event) IsHangup() bool { return e.Intersects(EventHup) }

// Bits splits e into single-bit events, in ascending bit order. Unknown bits
// are included as-is.
func (e Event) Bits() []Event {
	var out []Event
	bits := uint16(e)
	for shift := 0; shift < 16 && bits != 0; shift++ {
		bit := uint16(1) << shift
		if bits&bit != 0 {
			bits &^= bit
			out = append(out, Event(bit))
		}
	}
	return out
}

func (e Event) String() string {
	if e == 0 {
		return `0`
	}
	var b strings.Builder
	for _, bit := range e.Bits() {
		if b.Len() != 0 {
			b.WriteByte('|')
		}
		b.WriteString(bitName(bit))
	}
	return b.String()
}

func bitName(bit Event) string {
	for _, v := range eventNames {
		if v.event == bit {
			return v.name
		}
	}
	return fmt.Sprintf(`%#04x`, uint16(bit))
}
