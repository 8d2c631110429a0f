// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package pipepoll

import (
	"fmt"
	"math"
	"time"
)

// Timeout bounds a single [Poll.Poll] call. The zero value is an instant
// timeout, i.e. return immediately.
//
// Timeouts are totally ordered, with the infinite timeout greater than any
// finite timeout, see [Timeout.Compare].
type Timeout struct {
	// ms is in poll(2) units, negative means infinite
	ms int32
}

// Instant returns a Timeout that does not wait.
func Instant() Timeout { return Timeout{} }

// Infinite returns a Timeout that waits indefinitely.
func Infinite() Timeout { return Timeout{ms: -1} }

// Seconds returns a Timeout of n seconds. Negative values, and values that
// cannot be represented in milliseconds, fail with [ErrInvalidTimeout]. Use
// [Infinite] to wait indefinitely.
func Seconds(n int32) (Timeout, error) {
	if n < 0 || n > math.MaxInt32/1000 {
		return Timeout{}, fmt.Errorf(`%w: %d seconds`, ErrInvalidTimeout, n)
	}
	return Timeout{ms: n * 1000}, nil
}

// Milliseconds returns a Timeout of n milliseconds. Negative values fail with
// [ErrInvalidTimeout].
func Milliseconds(n int32) (Timeout, error) {
	if n < 0 {
		return Timeout{}, fmt.Errorf(`%w: %d milliseconds`, ErrInvalidTimeout, n)
	}
	return Timeout{ms: n}, nil
}

// FromDuration converts d into a Timeout, rounding up to the next whole
// millisecond, such that a positive duration never becomes instant. Negative
// durations are infinite, and durations too large to represent saturate.
func FromDuration(d time.Duration) Timeout {
	switch {
	case d < 0:
		return Infinite()
	case d == 0:
		return Instant()
	}
	ms := d / time.Millisecond
	if d%time.Millisecond != 0 {
		ms++
	}
	if ms > math.MaxInt32 {
		return Timeout{ms: math.MaxInt32}
	}
	return Timeout{ms: int32(ms)}
}

// IsInfinite returns true if t waits indefinitely.
func (t Timeout) IsInfinite() bool { return t.ms < 0 }

// IsInstant returns true if t does not wait.
func (t Timeout) IsInstant() bool { return t.ms == 0 }

// Seconds returns the timeout in whole seconds (truncated), or false if t is
// infinite.
func (t Timeout) Seconds() (int32, bool) {
	if t.ms < 0 {
		return 0, false
	}
	return t.ms / 1000, true
}

// Milliseconds returns the timeout in milliseconds, or false if t is
// infinite.
func (t Timeout) Milliseconds() (int32, bool) {
	if t.ms < 0 {
		return 0, false
	}
	return t.ms, true
}

// Duration returns the timeout as a duration, or false if t is infinite.
func (t Timeout) Duration() (time.Duration, bool) {
	if t.ms < 0 {
		return 0, false
	}
	return time.Duration(t.ms) * time.Millisecond, true
}

// Compare returns -1, 0 or +1, depending on whether t is less than, equal
// to, or greater than other. Infinite timeouts are equal to each other, and
// greater than every finite timeout.
func (t Timeout) Compare(other Timeout) int {
	switch a, b := t.IsInfinite(), other.IsInfinite(); {
	case a && b:
		return 0
	case a:
		return 1
	case b:
		return -1
	case t.ms < other.ms:
		return -1
	case t.ms > other.ms:
		return 1
	default:
		return 0
	}
}

// Less returns true if t is strictly less than other.
func (t Timeout) Less(other Timeout) bool { return t.Compare(other) < 0 }

func (t Timeout) String() string {
	if t.IsInfinite() {
		return `infinite`
	}
	d, _ := t.Duration()
	return d.String()
}

// pollMillis is the timeout argument for poll(2).
func (t Timeout) pollMillis() int {
	if t.ms < 0 {
		return -1
	}
	return int(t.ms)
}

// MinTimeout returns the smallest of the given timeouts, or [Infinite] if
// none are given.
func MinTimeout(timeouts ...Timeout) Timeout {
	result := Infinite()
	for _, t := range timeouts {
		if t.Less(result) {
			result = t
		}
	}
	return result
}

// MaxTimeout returns the largest of the given timeouts, or [Instant] if none
// are given.
func MaxTimeout(timeouts ...Timeout) Timeout {
	result := Instant()
	for _, t := range timeouts {
		if result.Less(t) {
			result = t
		}
	}
	return result
}
