// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package optbind binds the exported fields of a struct to command-line
// options.
//
// A Schema is derived once from a pointer to a struct: every exported field
// becomes one option named after the field (lower-cased) unless a struct tag
// says otherwise. Parse then runs the arguments through a pflag.FlagSet,
// converts each raw value to the field's type and writes it back into the
// struct.
//
//	type Args struct {
//	    Name    string   `help:"Who to greet"`
//	    Count   int      `help:"How many times"`
//	    Verbose bool     `opt:"simple" help:"Chatty output"`
//	    Mode    Mode     `help:"Processing mode"`
//	    Tags    []string `help:"Extra tags"`
//	    Rest    []string `opt:"args" help:"Files to process"`
//	}
//
//	args := Args{Name: "default", Count: 1}
//	s, err := optbind.New(&args)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := s.Parse(os.Args[1:]); err != nil {
//	    fmt.Fprintln(os.Stderr, err)
//	    s.WriteHelp(os.Stderr, optbind.HelpOptions{})
//	    os.Exit(1)
//	}
//
// # Struct Tags
//
//   - flag:"name"   option name (default: lower-cased field name); flag:"-" skips the field
//   - short:"n"     one-letter shorthand
//   - help:"text"   documentation shown in help output
//   - opt:"skip"    field is not an option
//   - opt:"simple"  bool field set by presence alone (--verbose)
//   - opt:"args"    []string field receiving the non-option arguments
//   - opt:"delegate" nested struct whose fields are flattened into this schema;
//     prefix:"db-" is prepended to every option name derived from it
//
// Embedded struct fields are flattened as if tagged opt:"delegate".
//
// # Supported Types
//
//   - int, int32, int64, string, bool
//   - Path (a filesystem path, kept verbatim)
//   - named string types implementing Enum
//   - pointers to any of the above; a nil pointer means "no default"
//   - slices of any of the above element types, given as comma-separated
//     values (--tags=a,b,c); repeating the flag appends
//
// Plain bool fields take an explicit value which must be "true" or "false"
// (any case). Anything else is a ConversionError rather than a silent false.
//
// # Defaults
//
// The value a field holds when New is called is its default. If an option is
// absent from the command line the default is written back; a field with no
// default (zero value, nil pointer, empty slice) is left untouched.
package optbind
