// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yeetrun/optbind/pkg/cli"
	"github.com/yeetrun/optbind/pkg/optbind"
)

type greetStyle string

const (
	stylePlain greetStyle = "plain"
	styleFancy greetStyle = "fancy"
)

func (greetStyle) EnumLiterals() []optbind.EnumLiteral {
	return []optbind.EnumLiteral{
		{Name: string(stylePlain), Help: "Hello, name"},
		{Name: string(styleFancy), Help: "with decorations"},
	}
}

func (greetStyle) EnumHelp() string { return "Greeting style." }

type greetArgs struct {
	Name   string     `help:"Who to greet"`
	Count  int        `short:"n" help:"How many times"`
	Shout  bool       `opt:"simple" help:"Upper-case the greeting"`
	Style  greetStyle `help:"How to format the greeting"`
	Others []string   `opt:"args" help:"Additional names"`
}

func (a *greetArgs) Validate() error {
	if a.Count < 1 {
		return errors.New("--count must be at least 1")
	}
	return nil
}

type greetTool struct{}

func (greetTool) Name() string      { return "greet" }
func (greetTool) Aliases() []string { return []string{"hello"} }

func (greetTool) Description() string {
	return "Print a greeting\nGreets --name and every non-option argument."
}

func (greetTool) NewArgs() cli.Args {
	return &greetArgs{Name: "world", Count: 1, Style: stylePlain}
}

func (greetTool) Exec(ctx context.Context, args cli.Args, env *cli.Env) error {
	a := args.(*greetArgs)
	names := append([]string{a.Name}, a.Others...)
	msg := "Hello, " + strings.Join(names, " and ")
	if a.Style == styleFancy {
		msg = "*** " + msg + "! ***"
	}
	if a.Shout {
		msg = strings.ToUpper(msg)
	}
	for range a.Count {
		fmt.Fprintln(env.Stdout, msg)
	}
	return nil
}

type sumArgs struct {
	Values []int64 `help:"Numbers to add"`
	Scale  int64   `help:"Multiply the total by this"`
}

func (a *sumArgs) Validate() error {
	if len(a.Values) == 0 {
		return errors.New("at least one --values entry is required")
	}
	return nil
}

type sumTool struct{}

func (sumTool) Name() string        { return "sum" }
func (sumTool) Description() string { return "Add up integers given as --values=1,2,3" }
func (sumTool) NewArgs() cli.Args   { return &sumArgs{Scale: 1} }

func (sumTool) Exec(ctx context.Context, args cli.Args, env *cli.Env) error {
	a := args.(*sumArgs)
	var total int64
	for _, v := range a.Values {
		total += v
	}
	fmt.Fprintln(env.Stdout, total*a.Scale)
	return nil
}

type connArgs struct {
	Host    string `help:"Server host"`
	Port    int    `help:"Server port"`
	Retries *int   `help:"Connection retries (unset: library default)"`
}

type inspectArgs struct {
	Input   optbind.Path `short:"i" help:"File to inspect"`
	Tags    []string     `help:"Labels to attach"`
	Source  connArgs     `opt:"delegate" prefix:"src-"`
	Target  *connArgs    `opt:"delegate" prefix:"dst-"`
	Verbose bool         `opt:"simple" short:"v"`
	Files   []string     `opt:"args" help:"Extra files"`
}

func (a *inspectArgs) Validate() error { return nil }

type inspectTool struct{}

func (inspectTool) Name() string { return "inspect" }

func (inspectTool) Description() string {
	return "Show how arguments bind\nPrints every bound field and the leftover arguments."
}

func (inspectTool) NewArgs() cli.Args {
	return &inspectArgs{
		Source: connArgs{Host: "localhost", Port: 5432},
	}
}

func (inspectTool) Exec(ctx context.Context, args cli.Args, env *cli.Env) error {
	return env.Schema.WriteValues(env.Stdout)
}
