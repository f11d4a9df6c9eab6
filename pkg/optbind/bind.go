// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optbind

import (
	"errors"
	"reflect"
	"slices"

	"github.com/spf13/pflag"
	"tailscale.com/util/mak"
)

// ParsedOptions is the raw result of one Parse: which options were given,
// the strings given for them, and the leftover non-option arguments.
type ParsedOptions struct {
	present map[string]bool
	values  map[string][]string
	rest    []string
}

// Has reports whether the option appeared on the command line.
func (p *ParsedOptions) Has(option string) bool {
	return p.present[option]
}

// Values returns every raw value given for the option, in order. For
// sequence options comma-separated values are already split.
func (p *ParsedOptions) Values(option string) []string {
	return p.values[option]
}

// Value returns the last raw value given for the option.
func (p *ParsedOptions) Value(option string) (string, bool) {
	vals := p.values[option]
	if len(vals) == 0 {
		return "", false
	}
	return vals[len(vals)-1], true
}

// NonOptionArgs returns the arguments that were not consumed by an option.
func (p *ParsedOptions) NonOptionArgs() []string {
	return p.rest
}

// Parse parses args (without the program name) and writes the converted
// values into the configuration struct. Options are assigned in schema order;
// on a conversion failure the fields before the failing one have already been
// written.
//
// Parse returns ErrHelp if -h or --help is given and not declared, a
// *ParseError if the arguments cannot be tokenized, and a *ConversionError if
// a value does not fit its field.
func (s *Schema) Parse(args []string) error {
	s.reset()
	if err := s.fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return ErrHelp
		}
		return &ParseError{Err: err}
	}
	p := s.collect()
	s.parsed = p

	for _, f := range s.fields {
		if err := s.bind(f, p); err != nil {
			return err
		}
	}
	if s.sink != nil {
		rest := slices.Clone(p.rest)
		if rest == nil {
			rest = []string{}
		}
		s.assign(s.sink, reflect.ValueOf(rest))
	}
	return nil
}

// Parsed returns the raw result of the last successful tokenization, or nil
// if Parse has not been called.
func (s *Schema) Parsed() *ParsedOptions {
	return s.parsed
}

// NonOptionArgs returns the leftover arguments of the last Parse.
func (s *Schema) NonOptionArgs() []string {
	if s.parsed == nil {
		return nil
	}
	return slices.Clone(s.parsed.rest)
}

func (s *Schema) reset() {
	s.parsed = nil
	s.fs.VisitAll(func(fl *pflag.Flag) {
		fl.Changed = false
		if r, ok := fl.Value.(resetter); ok {
			r.reset()
		}
	})
}

func (s *Schema) collect() *ParsedOptions {
	p := &ParsedOptions{rest: s.fs.Args()}
	for _, f := range s.fields {
		if !f.Flag.Changed {
			continue
		}
		mak.Set(&p.present, f.Option, true)
		switch v := f.Flag.Value.(type) {
		case *listValue:
			mak.Set(&p.values, f.Option, slices.Clone(v.vals))
		case *rawValue:
			mak.Set(&p.values, f.Option, []string{v.val})
		}
	}
	return p
}

func (s *Schema) bind(f *FieldSpec, p *ParsedOptions) error {
	if f.Kind == KindSimpleBool {
		v := reflect.ValueOf(p.Has(f.Option)).Convert(f.typ)
		s.assign(f, f.wrap(v))
		return nil
	}
	if !p.Has(f.Option) {
		if f.hasDef {
			s.assign(f, f.defaultValue())
		}
		return nil
	}

	if f.Kind == KindSeq {
		raw := p.Values(f.Option)
		out := reflect.MakeSlice(f.field.Type(), 0, len(raw))
		for _, r := range raw {
			v, err := convert(f.Elem, f.typ, f.enum, r)
			if err != nil {
				return &ConversionError{Field: f.Name, Flag: f.Option, Value: r, Err: err}
			}
			out = reflect.Append(out, v)
		}
		s.assign(f, out)
		return nil
	}

	raw, _ := p.Value(f.Option)
	v, err := convert(f.Kind, f.typ, f.enum, raw)
	if err != nil {
		return &ConversionError{Field: f.Name, Flag: f.Option, Value: raw, Err: err}
	}
	s.assign(f, f.wrap(v))
	return nil
}

// wrap turns a converted scalar into a value assignable to the field,
// allocating a fresh pointer for pointer fields.
func (f *FieldSpec) wrap(v reflect.Value) reflect.Value {
	if !f.pointer {
		return v
	}
	p := reflect.New(f.typ)
	p.Elem().Set(v)
	return p
}

// defaultValue returns a copy of the default that does not alias the
// snapshot.
func (f *FieldSpec) defaultValue() reflect.Value {
	switch {
	case f.Kind == KindSeq:
		return cloneSlice(f.def)
	case f.pointer:
		return f.wrap(f.def.Elem())
	}
	return f.def
}

func (s *Schema) assign(f *FieldSpec, v reflect.Value) {
	f.field.Set(v)
	if s.Logf != nil {
		s.Logf("optbind: %s = %s", f.Name, formatValue(v))
	}
}
