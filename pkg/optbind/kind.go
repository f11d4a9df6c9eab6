// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optbind

import (
	"errors"
	"fmt"
	"reflect"
)

// Path is a filesystem path option value. It is stored exactly as given.
type Path string

// Kind is the closed set of field shapes a Schema knows how to bind.
type Kind int

const (
	KindInvalid Kind = iota
	KindInt
	KindLong
	KindString
	KindPath
	KindBool
	KindSimpleBool
	KindEnum
	KindSeq
)

var kindNames = [...]string{
	KindInvalid:    "invalid",
	KindInt:        "int",
	KindLong:       "long",
	KindString:     "string",
	KindPath:       "path",
	KindBool:       "bool",
	KindSimpleBool: "simple-bool",
	KindEnum:       "enum",
	KindSeq:        "seq",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

var (
	pathType = reflect.TypeFor[Path]()
	enumType = reflect.TypeFor[Enum]()
)

// scalarKind classifies a non-pointer, non-slice type. Named types other than
// Path and Enum implementations are rejected so that types such as
// time.Duration do not silently bind as plain integers.
func scalarKind(t reflect.Type) Kind {
	if t == pathType {
		return KindPath
	}
	if t.Kind() == reflect.String && t.Implements(enumType) {
		return KindEnum
	}
	if t.PkgPath() != "" {
		return KindInvalid
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int32:
		return KindInt
	case reflect.Int64:
		return KindLong
	case reflect.String:
		return KindString
	case reflect.Bool:
		return KindBool
	}
	return KindInvalid
}

// classify resolves the field's declared type into its Kind. For slices the
// element kind is recorded in f.Elem and f.typ holds the element type; for
// pointers f.typ holds the pointee.
func (f *FieldSpec) classify(t reflect.Type, simple bool) error {
	switch t.Kind() {
	case reflect.Slice:
		et := t.Elem()
		if et.Kind() == reflect.Interface {
			return errors.New("sequence element type is not statically known")
		}
		k := scalarKind(et)
		if k == KindInvalid {
			return fmt.Errorf("unsupported sequence element type %s", et)
		}
		f.Kind, f.Elem, f.typ = KindSeq, k, et
	case reflect.Pointer:
		k := scalarKind(t.Elem())
		if k == KindInvalid {
			return fmt.Errorf("unsupported field type %s", t)
		}
		f.Kind, f.typ, f.pointer = k, t.Elem(), true
	default:
		k := scalarKind(t)
		if k == KindInvalid {
			return fmt.Errorf("unsupported field type %s", t)
		}
		f.Kind, f.typ = k, t
	}

	if simple {
		if f.Kind != KindBool {
			return fmt.Errorf("opt:\"simple\" requires a bool field, not %s", t)
		}
		f.Kind = KindSimpleBool
	}
	if f.Kind == KindEnum || f.Elem == KindEnum {
		f.enum = newEnumInfo(f.typ)
		if len(f.enum.literals) == 0 {
			return fmt.Errorf("enum type %s declares no literals", f.typ)
		}
	}
	return nil
}

// valueKind is the kind used to convert a single raw token for f.
func (f *FieldSpec) valueKind() Kind {
	if f.Kind == KindSeq {
		return f.Elem
	}
	return f.Kind
}
