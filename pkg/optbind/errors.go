// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optbind

import (
	"errors"
	"fmt"
)

// ErrHelp is returned by Parse when -h or --help is given and the schema
// does not declare an option by that name.
var ErrHelp = errors.New("help requested")

// SchemaError reports a configuration type that cannot be turned into a
// schema. It is a programming error, not a user error.
type SchemaError struct {
	Field  string // Go field name; empty for errors about the target itself
	Type   string
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("optbind: %s: %s", e.Type, e.Reason)
	}
	return fmt.Sprintf("optbind: field %s (%s): %s", e.Field, e.Type, e.Reason)
}

// ParseError wraps a tokenizer failure such as an unknown flag or a flag
// missing its value.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ConversionError reports a raw value that could not be converted to the
// type of the field it was given for.
type ConversionError struct {
	Field string // Go field name
	Flag  string // option name without dashes
	Value string // offending token
	Err   error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("invalid value %q for --%s (field %s): %v", e.Value, e.Flag, e.Field, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}
