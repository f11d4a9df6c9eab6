// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/yeetrun/optbind/pkg/cli"
	"github.com/yeetrun/optbind/pkg/optbind"
)

func TestParseGlobalFlags(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantFlags globalFlagsParsed
		wantArgs  []string
	}{
		{
			name:      "before tool",
			args:      []string{"--debug", "--no-color", "greet", "--name", "x"},
			wantFlags: globalFlagsParsed{Debug: true, NoColor: true},
			wantArgs:  []string{"greet", "--name", "x"},
		},
		{
			name:      "width value",
			args:      []string{"--width", "60", "sum", "--values=1"},
			wantFlags: globalFlagsParsed{Width: 60},
			wantArgs:  []string{"sum", "--values=1"},
		},
		{
			name:      "after tool belongs to tool",
			args:      []string{"greet", "--debug"},
			wantFlags: globalFlagsParsed{},
			wantArgs:  []string{"greet", "--debug"},
		},
		{
			name:      "unknown global left for dispatch",
			args:      []string{"--bogus", "greet"},
			wantFlags: globalFlagsParsed{},
			wantArgs:  []string{"--bogus", "greet"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags, args, err := parseGlobalFlags(tt.args)
			if err != nil {
				t.Fatalf("parseGlobalFlags failed: %v", err)
			}
			if flags != tt.wantFlags {
				t.Errorf("flags = %+v, want %+v", flags, tt.wantFlags)
			}
			if !reflect.DeepEqual(args, tt.wantArgs) {
				t.Errorf("args = %q, want %q", args, tt.wantArgs)
			}
		})
	}
}

func TestHelpOptions(t *testing.T) {
	defer func(fn func(int) bool) { isTerminalFn = fn }(isTerminalFn)

	isTerminalFn = func(int) bool { return false }
	opts := helpOptions(globalFlagsParsed{Width: 72}, -1)
	if opts.Color || opts.Width != 72 {
		t.Errorf("non-terminal opts = %+v, want no color and width 72", opts)
	}

	isTerminalFn = func(int) bool { return true }
	opts = helpOptions(globalFlagsParsed{NoColor: true, Width: 90}, -1)
	if opts.Color || opts.Width != 90 {
		t.Errorf("--no-color opts = %+v, want no color and width 90", opts)
	}
}

func runTool(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	env := &cli.Env{
		Stdout: &stdout,
		Stderr: &stderr,
		Help:   optbind.HelpOptions{Width: 200},
	}
	code := newRegistry().Main(context.Background(), args, env)
	return code, stdout.String(), stderr.String()
}

func TestGreet(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"greet"}, "Hello, world\n"},
		{[]string{"greet", "--name", "cat", "dog"}, "Hello, cat and dog\n"},
		{[]string{"hello", "-n", "2", "--shout"}, "HELLO, WORLD\nHELLO, WORLD\n"},
		{[]string{"greet", "--style", "fancy"}, "*** Hello, world! ***\n"},
	}
	for _, tt := range tests {
		code, out, errOut := runTool(t, tt.args...)
		if code != 0 {
			t.Errorf("%q exit = %d, stderr:\n%s", tt.args, code, errOut)
			continue
		}
		if out != tt.want {
			t.Errorf("%q output = %q, want %q", tt.args, out, tt.want)
		}
	}
}

func TestGreetRejectsBadStyle(t *testing.T) {
	code, _, errOut := runTool(t, "greet", "--style", "loud")
	if code != 1 {
		t.Fatalf("exit = %d, want 1", code)
	}
	for _, want := range []string{
		`Illegal arguments: invalid value "loud" for --style (field Style)`,
		"(possible values: plain (Hello, name), fancy (with decorations))",
	} {
		if !strings.Contains(errOut, want) {
			t.Errorf("stderr missing %q:\n%s", want, errOut)
		}
	}
}

func TestSum(t *testing.T) {
	code, out, errOut := runTool(t, "sum", "--values", "1,2", "--values=3", "--scale", "10")
	if code != 0 {
		t.Fatalf("exit = %d, stderr:\n%s", code, errOut)
	}
	if out != "60\n" {
		t.Errorf("output = %q, want %q", out, "60\n")
	}

	code, _, errOut = runTool(t, "sum")
	if code != 1 || !strings.Contains(errOut, "at least one --values entry is required") {
		t.Errorf("sum without values: exit = %d, stderr:\n%s", code, errOut)
	}
}

func TestInspect(t *testing.T) {
	code, _, errOut := runTool(t, "inspect", "-i", "a.txt", "--dst-host", "db2", "--retries", "3", "x")
	if code != 1 {
		t.Fatalf("unknown --retries: exit = %d, want 1", code)
	}
	if !strings.Contains(errOut, "unknown flag: --retries") {
		t.Errorf("stderr missing unknown flag error:\n%s", errOut)
	}

	code, out, errOut := runTool(t, "inspect", "-i", "a.txt", "--dst-host", "db2", "--dst-retries", "3", "-v", "x", "--", "-y")
	if code != 0 {
		t.Fatalf("exit = %d, stderr:\n%s", code, errOut)
	}
	want := strings.Join([]string{
		"Input: a.txt",
		"Tags: []",
		"Host: localhost",
		"Port: 5432",
		"Retries: <nil>",
		"Host: db2",
		"Port: 0",
		"Retries: 3",
		"Verbose: true",
		"Remaining args: [x -y]",
	}, "\n") + "\n"
	if out != want {
		t.Errorf("output =\n%s\nwant\n%s", out, want)
	}
}
