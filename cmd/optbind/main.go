// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command optbind is a small collection of demo tools whose arguments are
// bound with package optbind.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/shayne/yargs"
	"github.com/yeetrun/optbind/pkg/cli"
	"github.com/yeetrun/optbind/pkg/optbind"
	"golang.org/x/term"
)

type globalFlagsParsed struct {
	NoColor bool `flag:"no-color" help:"Disable colored output"`
	Debug   bool `flag:"debug" help:"Log every option assignment"`
	Width   int  `flag:"width" help:"Help text width (default: terminal width)"`
}

// parseGlobalFlags consumes the global flags that appear before the tool
// name. Everything from the tool name on belongs to the tool.
func parseGlobalFlags(args []string) (globalFlagsParsed, []string, error) {
	head, tail := splitAtTool(args)
	result, err := yargs.ParseKnownFlags[globalFlagsParsed](head, yargs.KnownFlagsOptions{})
	if err != nil {
		return globalFlagsParsed{}, nil, err
	}
	return result.Flags, append(result.RemainingArgs, tail...), nil
}

// splitAtTool splits args before the first token that is neither a flag nor
// the value of --width.
func splitAtTool(args []string) ([]string, []string) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--width" || arg == "-width" {
			i++
			continue
		}
		if !strings.HasPrefix(arg, "-") {
			return args[:i], args[i:]
		}
	}
	return args, nil
}

var isTerminalFn = term.IsTerminal

func helpOptions(flags globalFlagsParsed, fd int) optbind.HelpOptions {
	opts := optbind.HelpOptions{Width: flags.Width}
	if !isTerminalFn(fd) {
		return opts
	}
	opts.Color = !flags.NoColor
	if opts.Width == 0 {
		if cols, _, err := term.GetSize(fd); err == nil && cols > 0 {
			opts.Width = cols
		}
	}
	return opts
}

func newRegistry() *cli.Registry {
	r := &cli.Registry{Name: "optbind"}
	r.Register(greetTool{})
	r.Register(sumTool{})
	r.Register(inspectTool{})
	return r
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("optbind: ")

	globalFlags, args, err := parseGlobalFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	env := cli.DefaultEnv()
	env.Help = helpOptions(globalFlags, int(os.Stdout.Fd()))
	if globalFlags.Debug {
		env.Logf = log.Printf
	}
	os.Exit(newRegistry().Main(context.Background(), args, env))
}
