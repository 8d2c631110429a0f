// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

// Command pipewatch pumps data through a set of non-blocking pipes, driving
// every read and write from poll(2) readiness, logging each event.
//
// Run with: go run ./cmd/pipewatch -pipes 4 -bytes 1048576 -log-level debug
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, `pipewatch:`, err)
		}
		os.Exit(1)
	}
}
