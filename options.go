// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package pipepoll

import (
	"fmt"

	"github.com/joeycumines/logiface"
)

// defaultCapacity is the initial registry capacity.
const defaultCapacity = 16

// pollOptions holds configuration options for Poll creation.
type pollOptions struct {
	logger   *logiface.Logger[logiface.Event]
	capacity int
}

// PollOption configures a Poll instance.
type PollOption interface {
	applyPoll(*pollOptions) error
}

// pollOptionImpl implements PollOption.
type pollOptionImpl struct {
	applyPollFunc func(*pollOptions) error
}

func (p *pollOptionImpl) applyPoll(opts *pollOptions) error {
	return p.applyPollFunc(opts)
}

// WithLogger configures a structured logger. Poll results are logged at
// debug level, and decode errors at warning level, subject to any category
// rate limits the logger has been configured with. A nil logger disables
// logging (the default).
func WithLogger(logger *logiface.Logger[logiface.Event]) PollOption {
	return &pollOptionImpl{func(opts *pollOptions) error {
		opts.logger = logger
		return nil
	}}
}

// WithCapacity sets the initial capacity of the registry, which grows as
// required. Defaults to 16.
func WithCapacity(n int) PollOption {
	return &pollOptionImpl{func(opts *pollOptions) error {
		if n < 0 {
			return fmt.Errorf(`pipepoll: negative capacity: %d`, n)
		}
		opts.capacity = n
		return nil
	}}
}

// resolvePollOptions applies PollOption instances to pollOptions.
func resolvePollOptions(opts []PollOption) (*pollOptions, error) {
	cfg := &pollOptions{
		capacity: defaultCapacity,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.applyPoll(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}
