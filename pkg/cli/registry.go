// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/shayne/yargs"
	"tailscale.com/util/mak"
)

const (
	helpCommand       = "help"
	maxSummaryLength  = 60
	defaultIntroTitle = "command line tools"
)

// Registry routes "<tool> [args...]" and "help <tool>" to registered tools.
type Registry struct {
	// Name is the program name shown in the intro.
	Name string
	// Intro replaces the first line of the tool listing if set.
	Intro string

	tools map[string]Tool
	order []string
}

// Register adds t. It panics if a tool with the same name or alias is
// already registered.
func (r *Registry) Register(t Tool) {
	names := []string{t.Name()}
	if a, ok := t.(Aliaser); ok {
		names = append(names, a.Aliases()...)
	}
	for _, n := range names {
		if n == helpCommand || strings.HasPrefix(n, "-") {
			panic(fmt.Sprintf("cli: invalid tool name %q", n))
		}
		if _, dup := r.lookup(n); dup {
			panic(fmt.Sprintf("cli: tool %q registered twice", n))
		}
	}
	mak.Set(&r.tools, t.Name(), t)
	r.order = append(r.order, t.Name())
}

func (r *Registry) lookup(name string) (Tool, bool) {
	if t, ok := r.tools[name]; ok {
		return t, true
	}
	for _, t := range r.tools {
		if a, ok := t.(Aliaser); ok {
			for _, alias := range a.Aliases() {
				if alias == name {
					return t, true
				}
			}
		}
	}
	return nil, false
}

// Tools returns the registered tools in registration order.
func (r *Registry) Tools() []Tool {
	out := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name])
	}
	return out
}

func (r *Registry) yargsRegistry() yargs.Registry {
	subcommands := make(map[string]yargs.CommandSpec, len(r.tools))
	for name, t := range r.tools {
		subcommands[name] = yargs.CommandSpec{Info: toSubCommandInfo(t)}
	}
	return yargs.Registry{
		Command:     yargs.CommandInfo{Name: r.Name, Description: r.Intro},
		SubCommands: subcommands,
	}
}

func toSubCommandInfo(t Tool) yargs.SubCommandInfo {
	info := yargs.SubCommandInfo{
		Name:        t.Name(),
		Description: summary(t.Description()),
	}
	if a, ok := t.(Aliaser); ok {
		info.Aliases = a.Aliases()
	}
	return info
}

// Main dispatches argv (without the program name) and returns the exit code.
func (r *Registry) Main(ctx context.Context, argv []string, env *Env) int {
	if len(argv) == 0 {
		fmt.Fprintln(env.Stderr, "Tool not specified.")
		r.writeUsage(env.Stderr)
		return 1
	}
	switch argv[0] {
	case "-h", "--help":
		r.writeUsage(env.Stdout)
		return 0
	case helpCommand:
		if len(argv) < 2 {
			fmt.Fprintln(env.Stderr, "Help command must be specified")
			return 1
		}
		t, ok := r.lookup(argv[1])
		if !ok {
			fmt.Fprintf(env.Stderr, "Tool not exist: %s\n", argv[1])
			return 1
		}
		return Help(t, env)
	}
	if strings.HasPrefix(argv[0], "-") {
		fmt.Fprintf(env.Stderr, "Tool not exist: %s\n", argv[0])
		return 1
	}

	res, ok, err := yargs.ResolveCommandWithRegistry(argv, r.yargsRegistry())
	if err != nil || !ok {
		fmt.Fprintf(env.Stderr, "Tool not exist: %s\n", argv[0])
		return 1
	}
	return Exec(ctx, r.tools[res.Path[0]], res.Args, env)
}

func (r *Registry) writeUsage(w io.Writer) {
	intro := r.Intro
	if intro == "" {
		intro = strings.TrimSpace(r.Name + " " + defaultIntroTitle)
	}
	fmt.Fprintln(w, intro)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Help: $ %s help {tool}\n", r.Name)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Available tools:")
	for _, t := range r.Tools() {
		fmt.Fprintf(w, "  %s: %s\n", t.Name(), summary(t.Description()))
	}
}

// summary returns the first line of desc, cut to maxSummaryLength.
func summary(desc string) string {
	line, _, _ := strings.Cut(desc, "\n")
	line = strings.TrimRight(line, "\r")
	if len(line) > maxSummaryLength {
		line = line[:maxSummaryLength]
	}
	return line
}
