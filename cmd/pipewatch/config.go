// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package main

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/joeycumines/logiface"
)

type config struct {
	logLevel logiface.Level
	timeout  time.Duration
	pipes    int
	bytes    int
	chunk    int
	dup      bool
}

func parseConfig(args []string, output io.Writer) (*config, error) {
	cfg := config{
		logLevel: logiface.LevelInformational,
	}

	fs := flag.NewFlagSet(`pipewatch`, flag.ContinueOnError)
	fs.SetOutput(output)
	fs.IntVar(&cfg.pipes, `pipes`, 2, `number of pipes`)
	fs.IntVar(&cfg.bytes, `bytes`, 256*1024, `bytes to send through each pipe`)
	fs.IntVar(&cfg.chunk, `chunk`, 16*1024, `size of each queued write`)
	fs.DurationVar(&cfg.timeout, `timeout`, 5*time.Second, `maximum time to wait for any event, negative waits forever`)
	fs.BoolVar(&cfg.dup, `dup`, false, `also register a duplicate of each read end, under the same token`)
	fs.Func(`log-level`, `log level (trace, debug, info, notice, warning, err, ...)`, func(s string) error {
		level, err := parseLevel(s)
		if err != nil {
			return err
		}
		cfg.logLevel = level
		return nil
	})

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, fmt.Errorf(`unexpected arguments: %q`, fs.Args())
	}

	switch {
	case cfg.pipes <= 0:
		return nil, fmt.Errorf(`invalid -pipes: %d`, cfg.pipes)
	case cfg.bytes < 0:
		return nil, fmt.Errorf(`invalid -bytes: %d`, cfg.bytes)
	case cfg.chunk <= 0:
		return nil, fmt.Errorf(`invalid -chunk: %d`, cfg.chunk)
	}

	return &cfg, nil
}

func parseLevel(s string) (logiface.Level, error) {
	for level := logiface.LevelDisabled; level <= logiface.LevelTrace; level++ {
		if level.String() == s {
			return level, nil
		}
	}
	return 0, fmt.Errorf(`unknown log level: %q`, s)
}
