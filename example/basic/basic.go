// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/yeetrun/optbind/pkg/optbind"
)

type options struct {
	Greeting string   `help:"Text to print"`
	Repeat   int      `short:"r" help:"How many times to print it"`
	Help     bool     `opt:"simple" short:"h" help:"Show this help"`
	Names    []string `opt:"args" help:"Who to greet"`
}

func main() {
	opts := &options{Greeting: "Hello", Repeat: 1}
	s, err := optbind.New(opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := s.Parse(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		s.WriteHelp(os.Stderr, optbind.HelpOptions{})
		os.Exit(2)
	}
	if opts.Help {
		s.WriteHelp(os.Stdout, optbind.HelpOptions{})
		return
	}
	for range opts.Repeat {
		for _, name := range opts.Names {
			fmt.Printf("%s, %s!\n", opts.Greeting, name)
		}
	}
}
