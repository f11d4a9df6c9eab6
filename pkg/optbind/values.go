// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optbind

import (
	"errors"
	"strings"

	"github.com/spf13/pflag"
)

// The pflag.Value implementations below only collect raw strings. Conversion
// happens in Parse so that failures can name the field they belong to.

type resetter interface {
	reset()
}

// rawValue holds the last string given for a single-valued option.
type rawValue struct {
	typ string
	val string
}

var _ pflag.Value = (*rawValue)(nil)

func (v *rawValue) String() string     { return v.val }
func (v *rawValue) Set(s string) error { v.val = s; return nil }
func (v *rawValue) Type() string       { return v.typ }
func (v *rawValue) reset()             { v.val = "" }

// listValue collects comma-separated values. Repeating the flag appends; an
// empty value contributes nothing, so --items= yields an empty list.
type listValue struct {
	typ  string
	vals []string
}

var _ pflag.Value = (*listValue)(nil)

func (v *listValue) String() string { return strings.Join(v.vals, ",") }

func (v *listValue) Set(s string) error {
	for part := range strings.SplitSeq(s, ",") {
		if part == "" {
			continue
		}
		v.vals = append(v.vals, part)
	}
	return nil
}

func (v *listValue) Type() string { return v.typ }
func (v *listValue) reset()       { v.vals = nil }

// presenceValue backs simple booleans. pflag feeds it NoOptDefVal when the
// flag is given bare; an explicit value is rejected.
type presenceValue struct {
	set bool
}

var _ pflag.Value = (*presenceValue)(nil)

func (v *presenceValue) String() string {
	if v.set {
		return "true"
	}
	return "false"
}

func (v *presenceValue) Set(s string) error {
	if s != "true" {
		return errors.New("option does not take an argument")
	}
	v.set = true
	return nil
}

func (v *presenceValue) Type() string { return "bool" }
func (v *presenceValue) reset()       { v.set = false }

// newValue returns the raw collector registered with pflag for f.
func (f *FieldSpec) newValue() pflag.Value {
	switch f.Kind {
	case KindSimpleBool:
		return &presenceValue{}
	case KindSeq:
		return &listValue{typ: f.Elem.String() + "s"}
	case KindEnum:
		return &rawValue{typ: f.typ.Name()}
	}
	return &rawValue{typ: f.Kind.String()}
}
