// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

type echoArgs struct {
	Message string   `help:"Text to print"`
	Times   int      `help:"Repeat count"`
	Fail    bool     `opt:"simple"`
	Rest    []string `opt:"args"`
}

func (a *echoArgs) Validate() error {
	if a.Times < 0 {
		return errors.New("times must not be negative")
	}
	return nil
}

type echoTool struct {
	sawSchema *bool
}

func (echoTool) Name() string        { return "echo" }
func (echoTool) Description() string { return "Print a message\nRepeats --message --times times." }
func (echoTool) Aliases() []string   { return []string{"say"} }
func (echoTool) NewArgs() Args       { return &echoArgs{Message: "hi", Times: 1} }

func (e echoTool) Exec(ctx context.Context, args Args, env *Env) error {
	a := args.(*echoArgs)
	if e.sawSchema != nil {
		*e.sawSchema = env.Schema != nil
	}
	if a.Fail {
		return errors.New("boom")
	}
	for range a.Times {
		env.Stdout.Write([]byte(strings.Join(append([]string{a.Message}, a.Rest...), " ") + "\n"))
	}
	return nil
}

type testEnv struct {
	*Env
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newTestEnv() testEnv {
	var stdout, stderr bytes.Buffer
	return testEnv{
		Env:    &Env{Stdout: &stdout, Stderr: &stderr},
		stdout: &stdout,
		stderr: &stderr,
	}
}

func TestExecRunsTool(t *testing.T) {
	env := newTestEnv()
	var sawSchema bool
	code := Exec(context.Background(), echoTool{sawSchema: &sawSchema}, []string{"--times", "2", "world"}, env.Env)
	if code != 0 {
		t.Fatalf("Exec = %d, want 0; stderr:\n%s", code, env.stderr)
	}
	if got, want := env.stdout.String(), "hi world\nhi world\n"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
	if !sawSchema {
		t.Error("tool did not receive the bound schema in Env")
	}
	if env.Schema != nil {
		t.Error("Exec modified the caller's Env")
	}
}

func TestExecIllegalArguments(t *testing.T) {
	tests := []struct {
		name string
		argv []string
		want string
	}{
		{"conversion", []string{"--times", "many"}, `Illegal arguments: invalid value "many" for --times`},
		{"unknown flag", []string{"--loud"}, "Illegal arguments: unknown flag: --loud"},
		{"validation", []string{"--times", "-1"}, "Illegal arguments: times must not be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()
			if code := Exec(context.Background(), echoTool{}, tt.argv, env.Env); code != 1 {
				t.Fatalf("Exec = %d, want 1", code)
			}
			out := env.stderr.String()
			for _, want := range []string{
				tt.want,
				"echo: Print a message",
				"--message <string>",
				"(default: hi)",
			} {
				if !strings.Contains(out, want) {
					t.Errorf("stderr missing %q:\n%s", want, out)
				}
			}
			if env.stdout.Len() != 0 {
				t.Errorf("stdout = %q, want empty", env.stdout)
			}
		})
	}
}

func TestExecHelpFlag(t *testing.T) {
	env := newTestEnv()
	if code := Exec(context.Background(), echoTool{}, []string{"--help"}, env.Env); code != 0 {
		t.Fatalf("Exec = %d, want 0", code)
	}
	out := env.stdout.String()
	if !strings.HasPrefix(out, "echo: Print a message\nRepeats") {
		t.Errorf("help does not start with the description:\n%s", out)
	}
	if !strings.Contains(out, "ARGUMENTS:\nOption") {
		t.Errorf("help missing ARGUMENTS section:\n%s", out)
	}
}

func TestExecToolError(t *testing.T) {
	env := newTestEnv()
	if code := Exec(context.Background(), echoTool{}, []string{"--fail"}, env.Env); code != 1 {
		t.Fatalf("Exec = %d, want 1", code)
	}
	if got, want := env.stderr.String(), "echo: boom\n"; got != want {
		t.Errorf("stderr = %q, want %q", got, want)
	}
}

func TestExecDebugLogging(t *testing.T) {
	env := newTestEnv()
	var logs []string
	env.Logf = func(format string, args ...any) {
		logs = append(logs, format)
	}
	if code := Exec(context.Background(), echoTool{}, nil, env.Env); code != 0 {
		t.Fatalf("Exec = %d, want 0", code)
	}
	if len(logs) == 0 {
		t.Error("no debug output with Logf set")
	}
}

func newTestRegistry() *Registry {
	r := &Registry{Name: "demo"}
	r.Register(echoTool{})
	return r
}

func TestRegistryMain(t *testing.T) {
	tests := []struct {
		name       string
		argv       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{"no args", nil, 1, "", "Available tools:\n  echo: Print a message\n"},
		{"help flag", []string{"--help"}, 0, "Help: $ demo help {tool}", ""},
		{"help without tool", []string{"help"}, 1, "", "Help command must be specified\n"},
		{"help tool", []string{"help", "echo"}, 0, "ARGUMENTS:", ""},
		{"help alias", []string{"help", "say"}, 0, "echo: Print a message", ""},
		{"help unknown", []string{"help", "nope"}, 1, "", "Tool not exist: nope\n"},
		{"unknown tool", []string{"nope", "--x"}, 1, "", "Tool not exist: nope\n"},
		{"flag first", []string{"--times", "2"}, 1, "", "Tool not exist: --times\n"},
		{"run", []string{"echo", "--message", "yo"}, 0, "yo\n", ""},
		{"run alias", []string{"say", "--times=2"}, 0, "hi\nhi\n", ""},
		{"run with leftovers", []string{"echo", "--", "a", "--b"}, 0, "hi a --b\n", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()
			code := newTestRegistry().Main(context.Background(), tt.argv, env.Env)
			if code != tt.wantCode {
				t.Errorf("Main = %d, want %d; stderr:\n%s", code, tt.wantCode, env.stderr)
			}
			if !strings.Contains(env.stdout.String(), tt.wantStdout) {
				t.Errorf("stdout = %q, want it to contain %q", env.stdout, tt.wantStdout)
			}
			if !strings.Contains(env.stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want it to contain %q", env.stderr, tt.wantStderr)
			}
		})
	}
}

type namedTool struct {
	name string
}

func (n namedTool) Name() string                         { return n.name }
func (namedTool) Description() string                    { return "" }
func (namedTool) NewArgs() Args                          { return &echoArgs{} }
func (namedTool) Exec(context.Context, Args, *Env) error { return nil }

func TestRegisterRejectsDuplicates(t *testing.T) {
	r := newTestRegistry()
	defer func() {
		if recover() == nil {
			t.Error("Register of an alias collision did not panic")
		}
	}()
	r.Register(namedTool{name: "say"})
}

func TestRegistryToolsInOrder(t *testing.T) {
	r := &Registry{}
	r.Register(namedTool{name: "b"})
	r.Register(namedTool{name: "a"})
	var got []string
	for _, tool := range r.Tools() {
		got = append(got, tool.Name())
	}
	if strings.Join(got, ",") != "b,a" {
		t.Errorf("Tools() = %v, want [b a]", got)
	}
}

func TestSummary(t *testing.T) {
	long := strings.Repeat("x", 80)
	tests := []struct {
		in, want string
	}{
		{"one line", "one line"},
		{"first\nsecond", "first"},
		{"first\r\nsecond", "first"},
		{long, long[:maxSummaryLength]},
	}
	for _, tt := range tests {
		if got := summary(tt.in); got != tt.want {
			t.Errorf("summary(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
