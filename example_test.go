// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

//go:build linux || darwin

package pipepoll_test

import (
	"fmt"

	pipepoll "github.com/joeycumines/go-pipepoll"
)

// Example demonstrates polling both ends of a pipe.
func Example() {
	r, w, err := pipepoll.New()
	if err != nil {
		panic(err)
	}
	defer r.Close()
	defer w.Close()

	const (
		readToken pipepoll.Token = iota
		writeToken
	)

	p, err := pipepoll.NewPoll()
	if err != nil {
		panic(err)
	}
	p.Register(r, readToken, pipepoll.EventIn)
	p.Register(w, writeToken, pipepoll.EventOut)

	for i := 0; i < 2; i++ {
		if _, err := p.Poll(pipepoll.Instant()); err != nil {
			panic(err)
		}
		for ready, err := range p.Events() {
			if err != nil {
				panic(err)
			}
			switch ready.Token {
			case writeToken:
				fmt.Println("writable:", ready.Event)
				if i == 0 {
					if err := w.WriteAll([]byte("hello")); err != nil {
						panic(err)
					}
				}
			case readToken:
				b, _, err := r.ReadToEnd(nil)
				if err != nil {
					panic(err)
				}
				fmt.Printf("%s: %q\n", ready.Event, b)
			}
		}
	}

	//output:
	//writable: POLLOUT
	//POLLIN: "hello"
	//writable: POLLOUT
}

// ExampleTimeout demonstrates combining timeouts.
func ExampleTimeout() {
	five, _ := pipepoll.Seconds(5)
	one, _ := pipepoll.Seconds(1)
	fmt.Println(pipepoll.MinTimeout(pipepoll.Infinite(), five, one))
	fmt.Println(pipepoll.MaxTimeout(five, pipepoll.Infinite()))
	fmt.Println(pipepoll.Instant().Less(one))

	//output:
	//1s
	//infinite
	//true
}
