// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optbind

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"slices"
	"strings"

	"github.com/spf13/pflag"
	"tailscale.com/util/set"
)

// Undocumented is the help text of fields without a help tag.
const Undocumented = "Undocumented"

// Schema is the option schema derived from one configuration struct. It owns
// the pflag.FlagSet the options are registered with and remembers the fields
// it writes to. A Schema is not safe for concurrent use.
type Schema struct {
	// Logf, if non-nil, is called once for every field assignment made by
	// Parse.
	Logf func(format string, args ...any)

	fs     *pflag.FlagSet
	fields []*FieldSpec
	sink   *FieldSpec
	parsed *ParsedOptions
}

// FieldSpec describes one bindable field.
type FieldSpec struct {
	Name   string // Go field name
	Option string // option name without dashes; empty for the non-option sink
	Kind   Kind
	Elem   Kind   // element kind when Kind is KindSeq
	Help   string // synthesized help text
	Flag   *pflag.Flag

	field   reflect.Value // addressable field in the configuration struct
	typ     reflect.Type  // scalar type, pointee type or slice element type
	pointer bool
	enum    *enumInfo
	def     reflect.Value
	hasDef  bool
}

// HasDefault reports whether the field held a default when the schema was
// built.
func (f *FieldSpec) HasDefault() bool { return f.hasDef }

// Default returns the rendered default value, or "" if there is none.
func (f *FieldSpec) Default() string {
	if !f.hasDef {
		return ""
	}
	return formatValue(f.def)
}

// New derives a Schema from target, which must be a non-nil pointer to a
// struct. The values the struct holds now become the option defaults.
func New(target any) (*Schema, error) {
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return nil, &SchemaError{
			Type:   fmt.Sprintf("%T", target),
			Reason: "target must be a non-nil pointer to a struct",
		}
	}
	st := v.Elem().Type()

	fs := pflag.NewFlagSet(st.Name(), pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	fs.SortFlags = false

	b := &builder{
		s:      &Schema{fs: fs},
		names:  make(set.Set[string]),
		shorts: make(set.Set[string]),
		path:   make(set.Set[reflect.Type]),
	}
	if err := b.walk(v.Elem(), ""); err != nil {
		return nil, err
	}
	return b.s, nil
}

type builder struct {
	s      *Schema
	names  set.Set[string]
	shorts set.Set[string]
	path   set.Set[reflect.Type] // delegate types being walked, for cycle detection
}

type markers struct {
	skip     bool
	simple   bool
	sink     bool
	delegate bool
}

func parseMarkers(sf reflect.StructField) (markers, error) {
	var m markers
	if sf.Tag.Get("flag") == "-" {
		m.skip = true
	}
	tag, ok := sf.Tag.Lookup("opt")
	if !ok {
		return m, nil
	}
	for word := range strings.SplitSeq(tag, ",") {
		switch strings.TrimSpace(word) {
		case "":
		case "skip":
			m.skip = true
		case "simple":
			m.simple = true
		case "args":
			m.sink = true
		case "delegate":
			m.delegate = true
		default:
			return m, fmt.Errorf("unknown opt marker %q", word)
		}
	}
	return m, nil
}

func (b *builder) walk(sv reflect.Value, prefix string) error {
	st := sv.Type()
	b.path.Add(st)
	defer b.path.Delete(st)

	for i := range st.NumField() {
		sf := st.Field(i)
		if !sf.IsExported() {
			continue
		}
		m, err := parseMarkers(sf)
		if err != nil {
			return fieldError(sf, err.Error())
		}
		if !m.delegate && sf.Anonymous && isStructish(sf.Type) && sf.Tag.Get("flag") == "" {
			m.delegate = true
		}
		fv := sv.Field(i)
		switch {
		case m.skip:
		case m.sink:
			err = b.addSink(sf, fv)
		case m.delegate:
			err = b.delegate(sf, fv, prefix)
		default:
			err = b.addOption(sf, fv, prefix, m)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func isStructish(t reflect.Type) bool {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Kind() == reflect.Struct
}

func fieldError(sf reflect.StructField, reason string) *SchemaError {
	return &SchemaError{Field: sf.Name, Type: sf.Type.String(), Reason: reason}
}

func (b *builder) addSink(sf reflect.StructField, fv reflect.Value) error {
	if sf.Type != reflect.TypeFor[[]string]() {
		return fieldError(sf, `opt:"args" requires a []string field`)
	}
	if b.s.sink != nil {
		return fieldError(sf, fmt.Sprintf("non-option arguments already bound to %s", b.s.sink.Name))
	}
	b.s.sink = &FieldSpec{
		Name:  sf.Name,
		Kind:  KindSeq,
		Elem:  KindString,
		Help:  helpTag(sf),
		field: fv,
		typ:   sf.Type.Elem(),
	}
	return nil
}

func (b *builder) delegate(sf reflect.StructField, fv reflect.Value, prefix string) error {
	if !isStructish(sf.Type) {
		return fieldError(sf, "delegate must be a struct or a pointer to a struct")
	}
	if fv.Kind() == reflect.Pointer {
		if fv.IsNil() {
			fv.Set(reflect.New(sf.Type.Elem()))
		}
		fv = fv.Elem()
	}
	if b.path.Contains(fv.Type()) {
		return fieldError(sf, "delegate cycle")
	}
	return b.walk(fv, prefix+sf.Tag.Get("prefix"))
}

func (b *builder) addOption(sf reflect.StructField, fv reflect.Value, prefix string, m markers) error {
	f := &FieldSpec{
		Name:   sf.Name,
		Option: prefix + optionName(sf),
		field:  fv,
	}
	if err := validOptionName(f.Option); err != nil {
		return fieldError(sf, err.Error())
	}
	if err := f.classify(sf.Type, m.simple); err != nil {
		return fieldError(sf, err.Error())
	}
	if b.names.Contains(f.Option) {
		return fieldError(sf, fmt.Sprintf("duplicate option name %q", f.Option))
	}
	short := sf.Tag.Get("short")
	if short != "" {
		if len(short) != 1 || short == "-" {
			return fieldError(sf, fmt.Sprintf("shorthand %q must be a single character", short))
		}
		if b.shorts.Contains(short) {
			return fieldError(sf, fmt.Sprintf("duplicate shorthand %q", short))
		}
	}
	if err := f.snapshotDefault(); err != nil {
		return fieldError(sf, err.Error())
	}
	f.Help = helpTag(sf)
	if f.enum != nil {
		f.Help += "\n" + f.enum.doc()
	}

	f.Flag = b.s.fs.VarPF(f.newValue(), f.Option, short, f.Help)
	f.Flag.DefValue = f.Default()
	if f.Kind == KindSimpleBool {
		f.Flag.NoOptDefVal = "true"
	}
	b.names.Add(f.Option)
	if short != "" {
		b.shorts.Add(short)
	}
	b.s.fields = append(b.s.fields, f)
	return nil
}

func optionName(sf reflect.StructField) string {
	if name := sf.Tag.Get("flag"); name != "" {
		return name
	}
	return strings.ToLower(sf.Name)
}

func validOptionName(name string) error {
	switch {
	case name == "":
		return errors.New("empty option name")
	case strings.HasPrefix(name, "-"):
		return fmt.Errorf("option name %q must not start with '-'", name)
	case strings.ContainsAny(name, "= \t\n"):
		return fmt.Errorf("option name %q contains '=' or whitespace", name)
	}
	return nil
}

func helpTag(sf reflect.StructField) string {
	if h := sf.Tag.Get("help"); h != "" {
		return h
	}
	return Undocumented
}

// snapshotDefault records the field's current value as its default.
// Presence booleans never have one.
func (f *FieldSpec) snapshotDefault() error {
	fv := f.field
	switch {
	case f.Kind == KindSimpleBool:
		return nil
	case f.Kind == KindSeq:
		if fv.Len() == 0 {
			return nil
		}
		f.def = cloneSlice(fv)
	case fv.IsZero():
		return nil
	default:
		f.def = reflect.New(fv.Type()).Elem()
		f.def.Set(fv)
		if f.pointer {
			// Detach from the caller's pointee so later writes through the
			// original pointer do not change the default.
			p := reflect.New(f.typ)
			p.Elem().Set(fv.Elem())
			f.def = p
		}
	}
	f.hasDef = true

	if f.enum != nil {
		if err := f.checkEnumDefault(); err != nil {
			f.hasDef = false
			f.def = reflect.Value{}
			return err
		}
	}
	return nil
}

func (f *FieldSpec) checkEnumDefault() error {
	d := f.def
	if d.Kind() == reflect.Pointer {
		d = d.Elem()
	}
	vals := []reflect.Value{d}
	if d.Kind() == reflect.Slice {
		vals = vals[:0]
		for i := range d.Len() {
			vals = append(vals, d.Index(i))
		}
	}
	for _, v := range vals {
		if _, ok := f.enum.lookup(v.String()); !ok {
			return fmt.Errorf("default %q is not one of %s", v.String(), strings.Join(f.enum.names(), ", "))
		}
	}
	return nil
}

func cloneSlice(v reflect.Value) reflect.Value {
	return reflect.AppendSlice(reflect.MakeSlice(v.Type(), 0, v.Len()), v)
}

// Options returns the option fields in schema order. The non-option sink is
// not included.
func (s *Schema) Options() []*FieldSpec {
	return slices.Clone(s.fields)
}

// Lookup returns the field bound to the named option, or nil.
func (s *Schema) Lookup(option string) *FieldSpec {
	for _, f := range s.fields {
		if f.Option == option {
			return f
		}
	}
	return nil
}

// HasNonOptionArgs reports whether the schema has a field receiving the
// non-option arguments.
func (s *Schema) HasNonOptionArgs() bool {
	return s.sink != nil
}

// FlagSet returns the underlying flag set. It must not be modified.
func (s *Schema) FlagSet() *pflag.FlagSet {
	return s.fs
}
