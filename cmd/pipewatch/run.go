// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/eapache/queue"
	"github.com/joeycumines/logiface"
	pipepoll "github.com/joeycumines/go-pipepoll"
	"github.com/joeycumines/stumpy"
	"golang.org/x/sys/unix"
)

type (
	// channel is one pipe, plus the state of the transfer through it.
	channel struct {
		reader  *pipepoll.Reader
		dup     *pipepoll.Reader // optional, same pipe as reader
		writer  *pipepoll.Writer
		backlog *queue.Queue // of []byte, waiting for the pipe to be writable
		offset  int          // into the head of backlog
		id      int
		sent    int
		read    int
		events  int
	}

	watcher struct {
		logger   *logiface.Logger[logiface.Event]
		poll     *pipepoll.Poll
		channels []*channel
		timeout  pipepoll.Timeout
		decodes  int
	}
)

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, err := parseConfig(args, stderr)
	if err != nil {
		return err
	}

	logger := stumpy.L.New(
		stumpy.L.WithStumpy(stumpy.WithWriter(stderr)),
		stumpy.L.WithLevel(cfg.logLevel),
		stumpy.L.WithCategoryRateLimits(map[time.Duration]int{
			time.Second: 20,
			time.Minute: 200,
		}),
	).Logger()

	w, err := newWatcher(cfg, logger)
	if err != nil {
		return err
	}
	defer w.close()

	if err := w.run(ctx); err != nil {
		return err
	}

	for _, c := range w.channels {
		fmt.Fprintf(stdout, "pipe %d: sent=%d received=%d events=%d\n", c.id, c.sent, c.read, c.events)
	}
	if w.decodes != 0 {
		fmt.Fprintf(stdout, "decode errors: %d\n", w.decodes)
	}

	return nil
}

func newWatcher(cfg *config, logger *logiface.Logger[logiface.Event]) (*watcher, error) {
	p, err := pipepoll.NewPoll(
		pipepoll.WithLogger(logger),
		pipepoll.WithCapacity(cfg.pipes*3),
	)
	if err != nil {
		return nil, err
	}

	w := &watcher{
		logger:  logger,
		poll:    p,
		timeout: pipepoll.FromDuration(cfg.timeout),
	}

	for i := 0; i < cfg.pipes; i++ {
		c, err := newChannel(i, cfg)
		if err != nil {
			w.close()
			return nil, err
		}
		w.channels = append(w.channels, c)
	}

	return w, nil
}

func newChannel(id int, cfg *config) (*channel, error) {
	r, w, err := pipepoll.New()
	if err != nil {
		return nil, fmt.Errorf(`pipe %d: %w`, id, err)
	}

	c := &channel{
		id:      id,
		reader:  r,
		writer:  w,
		backlog: queue.New(),
	}

	if cfg.dup {
		if c.dup, err = r.Dup(); err != nil {
			c.close()
			return nil, fmt.Errorf(`pipe %d: %w`, id, err)
		}
	}

	for offset := 0; offset < cfg.bytes; offset += cfg.chunk {
		chunk := make([]byte, min(cfg.chunk, cfg.bytes-offset))
		for i := range chunk {
			chunk[i] = payloadByte(id, offset+i)
		}
		c.backlog.Add(chunk)
	}

	return c, nil
}

// payloadByte is the expected value at offset, for pipe id.
func payloadByte(id, offset int) byte {
	return byte(offset*31 + id*7 + offset>>8)
}

func (x *watcher) run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		x.register()
		if x.poll.Len() == 0 {
			return nil
		}

		n, err := x.poll.Poll(x.timeout)
		if err != nil {
			if errors.Is(err, unix.EINTR) {
				x.logger.Debug().Log(`poll interrupted`)
				continue
			}
			return err
		}
		if n == 0 {
			return fmt.Errorf(`no events within %s`, x.timeout)
		}

		if err := x.dispatch(); err != nil {
			return err
		}
	}
}

// register rebuilds the registrations, using each pipe's index as the token,
// for every end that still has work to do.
func (x *watcher) register() {
	x.poll.Reset()
	for _, c := range x.channels {
		token := pipepoll.Token(c.id)
		if c.writer != nil {
			x.poll.Register(c.writer, token, pipepoll.AllWritable)
		}
		if c.reader != nil {
			x.poll.Register(c.reader, token, pipepoll.AllReadable)
		}
		if c.dup != nil {
			x.poll.Register(c.dup, token, pipepoll.AllReadable)
		}
	}
}

func (x *watcher) dispatch() error {
	var (
		writable = make(map[pipepoll.Token]bool)
		readable = make(map[pipepoll.Token]bool)
	)

	for ready, err := range x.poll.Events() {
		if err != nil {
			x.decodes++
			continue
		}

		x.logger.Debug().
			Uint64(`token`, uint64(ready.Token)).
			Stringer(`event`, ready.Event).
			Log(`event`)

		// tokens are channel indexes, see register
		if ready.Token >= pipepoll.Token(len(x.channels)) {
			return fmt.Errorf(`unknown token %d: %s`, ready.Token, ready.Event)
		}
		x.channels[ready.Token].events++

		switch event := ready.Event; {
		case event.IsWritable():
			writable[ready.Token] = true
		case event.IsReadable(), event.IsHangup():
			readable[ready.Token] = true
		case event.IsError():
			return fmt.Errorf(`pipe %d: error event: %s`, ready.Token, event)
		}
	}

	for token := range writable {
		if err := x.channels[token].flush(x.logger); err != nil {
			return err
		}
	}

	for token := range readable {
		if err := x.channels[token].drain(x.logger); err != nil {
			return err
		}
	}

	return nil
}

// flush writes from the backlog until it is empty, or the pipe is full,
// closing the writer once everything has been sent.
func (x *channel) flush(logger *logiface.Logger[logiface.Event]) error {
	for x.writer != nil && x.backlog.Length() != 0 {
		chunk := x.backlog.Peek().([]byte)
		n, err := x.writer.Write(chunk[x.offset:])
		x.sent += n
		x.offset += n
		if x.offset == len(chunk) {
			x.backlog.Remove()
			x.offset = 0
		}
		if err != nil {
			if errors.Is(err, unix.EAGAIN) {
				return nil
			}
			return fmt.Errorf(`pipe %d: %w`, x.id, err)
		}
	}

	if x.writer != nil && x.backlog.Length() == 0 {
		logger.Debug().
			Int(`pipe`, x.id).
			Int(`sent`, x.sent).
			Log(`closing writer`)
		err := x.writer.Close()
		x.writer = nil
		if err != nil {
			return fmt.Errorf(`pipe %d: %w`, x.id, err)
		}
	}

	return nil
}

// drain reads everything available, from both the reader and its duplicate,
// verifying the data, and closing both at EOF.
func (x *channel) drain(logger *logiface.Logger[logiface.Event]) error {
	var (
		buf [32 * 1024]byte
		eof bool
	)
	for _, r := range [...]*pipepoll.Reader{x.reader, x.dup} {
		if r == nil {
			continue
		}
		for {
			n, err := r.Read(buf[:])
			for i, b := range buf[:n] {
				if want := payloadByte(x.id, x.read+i); b != want {
					return fmt.Errorf(`pipe %d: offset %d: got %#x, want %#x`, x.id, x.read+i, b, want)
				}
			}
			x.read += n
			if errors.Is(err, io.EOF) {
				eof = true
				break
			}
			if err != nil {
				return fmt.Errorf(`pipe %d: %w`, x.id, err)
			}
			if n == 0 {
				break
			}
		}
	}

	if eof {
		logger.Debug().
			Int(`pipe`, x.id).
			Int(`received`, x.read).
			Log(`closing reader`)
		x.closeReaders()
		if x.read != x.sent {
			return fmt.Errorf(`pipe %d: received %d of %d bytes`, x.id, x.read, x.sent)
		}
	}

	return nil
}

func (x *channel) closeReaders() {
	if x.reader != nil {
		_ = x.reader.Close()
		x.reader = nil
	}
	if x.dup != nil {
		_ = x.dup.Close()
		x.dup = nil
	}
}

func (x *channel) close() {
	x.closeReaders()
	if x.writer != nil {
		_ = x.writer.Close()
		x.writer = nil
	}
}

func (x *watcher) close() {
	for _, c := range x.channels {
		c.close()
	}
}
