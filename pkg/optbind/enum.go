// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optbind

import (
	"reflect"
	"strings"
)

// EnumLiteral is one accepted value of an enumerated option.
type EnumLiteral struct {
	// Name is the exact token accepted on the command line.
	Name string
	// Help documents the literal; optional.
	Help string
}

// Enum is implemented by named string types whose fields should bind as
// enumerated options. EnumLiterals is called on the zero value and must list
// the accepted names in the order they should be documented.
type Enum interface {
	EnumLiterals() []EnumLiteral
}

// EnumDoc may be implemented by an Enum type to document the type itself.
type EnumDoc interface {
	EnumHelp() string
}

type enumInfo struct {
	typ      reflect.Type
	literals []EnumLiteral
	help     string
}

func newEnumInfo(t reflect.Type) *enumInfo {
	zero := reflect.Zero(t).Interface()
	info := &enumInfo{typ: t}
	if e, ok := zero.(Enum); ok {
		info.literals = e.EnumLiterals()
	}
	if d, ok := zero.(EnumDoc); ok {
		info.help = d.EnumHelp()
	}
	return info
}

// lookup returns the value of the literal named name. Matching is exact and
// case-sensitive.
func (e *enumInfo) lookup(name string) (reflect.Value, bool) {
	for _, l := range e.literals {
		if l.Name == name {
			return reflect.ValueOf(name).Convert(e.typ), true
		}
	}
	return reflect.Value{}, false
}

func (e *enumInfo) names() []string {
	names := make([]string, len(e.literals))
	for i, l := range e.literals {
		names[i] = l.Name
	}
	return names
}

// doc renders the enum's help block: the type's own help followed by the
// accepted literals in declaration order.
func (e *enumInfo) doc() string {
	var b strings.Builder
	if e.help != "" {
		b.WriteString(e.help)
		b.WriteString(" ")
	}
	b.WriteString("(possible values:")
	for i, l := range e.literals {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(" ")
		b.WriteString(l.Name)
		if l.Help != "" {
			b.WriteString(" (")
			b.WriteString(l.Help)
			b.WriteString(")")
		}
	}
	b.WriteString(")")
	return b.String()
}
