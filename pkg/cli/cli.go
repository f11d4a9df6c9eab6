// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cli runs tools whose arguments are described by optbind structs.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/yeetrun/optbind/pkg/optbind"
	"github.com/yeetrun/optbind/pkg/tui"
)

// Args is a tool's argument struct. Validate is called after binding and
// should report inconsistent combinations of options.
type Args interface {
	Validate() error
}

// Tool is a command that takes bound arguments.
type Tool interface {
	Name() string
	// Description is shown in help. Its first line is the summary used in
	// tool listings.
	Description() string
	// NewArgs returns a pointer to a fresh argument struct holding the
	// defaults.
	NewArgs() Args
	Exec(ctx context.Context, args Args, env *Env) error
}

// Aliaser may be implemented by a Tool to accept alternative names.
type Aliaser interface {
	Aliases() []string
}

// Env is the environment a tool runs in.
type Env struct {
	Stdout io.Writer
	Stderr io.Writer
	Help   optbind.HelpOptions
	// Logf, if non-nil, receives debug output including every option
	// assignment.
	Logf func(format string, args ...any)

	// Schema is the schema the running tool's arguments were bound with.
	// It is set by Exec.
	Schema *optbind.Schema
}

// DefaultEnv returns an Env writing to the process's standard streams.
func DefaultEnv() *Env {
	return &Env{Stdout: os.Stdout, Stderr: os.Stderr}
}

func (e *Env) colorizer() tui.Colorizer {
	return tui.NewColorizer(e.Help.Color)
}

// Exec binds argv to a fresh argument struct for t, validates it and runs
// the tool. It returns the process exit code: 0 on success or when help was
// requested, 1 otherwise. Argument errors are reported together with the
// tool's help.
func Exec(ctx context.Context, t Tool, argv []string, env *Env) int {
	args := t.NewArgs()
	s, err := optbind.New(args)
	if err != nil {
		fmt.Fprintf(env.Stderr, "%s: %v\n", t.Name(), err)
		return 1
	}
	s.Logf = env.Logf
	if err := s.Parse(argv); err != nil {
		if errors.Is(err, optbind.ErrHelp) {
			return Help(t, env)
		}
		return usageError(t, env, err)
	}
	if err := args.Validate(); err != nil {
		return usageError(t, env, err)
	}
	if env.Logf != nil {
		env.Logf("%s arguments:\n%s", t.Name(), s)
	}

	run := *env
	run.Schema = s
	if err := t.Exec(ctx, args, &run); err != nil {
		fmt.Fprintf(env.Stderr, "%s: %s\n", t.Name(), env.colorizer().Error(err.Error()))
		return 1
	}
	return 0
}

func usageError(t Tool, env *Env, err error) int {
	c := env.colorizer()
	fmt.Fprintf(env.Stderr, "%s %v\n", c.Error("Illegal arguments:"), err)
	fmt.Fprintf(env.Stderr, "%s: %s\n", t.Name(), t.Description())
	// Help is rendered from fresh arguments so that values bound before the
	// failure do not show up as defaults.
	if werr := writeArgsHelp(env.Stderr, t, env); werr != nil {
		fmt.Fprintf(env.Stderr, "%s: %v\n", t.Name(), werr)
	}
	return 1
}

// Help prints the tool's description and argument help to env.Stdout.
func Help(t Tool, env *Env) int {
	fmt.Fprintf(env.Stdout, "%s: %s\n\n\n", t.Name(), t.Description())
	fmt.Fprintln(env.Stdout, env.colorizer().Header("ARGUMENTS:"))
	if err := writeArgsHelp(env.Stdout, t, env); err != nil {
		fmt.Fprintf(env.Stderr, "%s: %v\n", t.Name(), err)
		return 1
	}
	return 0
}

func writeArgsHelp(w io.Writer, t Tool, env *Env) error {
	s, err := optbind.New(t.NewArgs())
	if err != nil {
		return err
	}
	return s.WriteHelp(w, env.Help)
}
