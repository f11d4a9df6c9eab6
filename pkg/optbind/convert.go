// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optbind

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// parseStrictBool accepts only "true" and "false", in any case.
func parseStrictBool(s string) (bool, error) {
	switch {
	case strings.EqualFold(s, "true"):
		return true, nil
	case strings.EqualFold(s, "false"):
		return false, nil
	}
	return false, errors.New("'true' or 'false' expected")
}

// convert turns a single raw token into a value of type t under the rules of
// kind k.
func convert(k Kind, t reflect.Type, enum *enumInfo, raw string) (reflect.Value, error) {
	switch k {
	case KindInt, KindLong:
		n, err := strconv.ParseInt(raw, 10, t.Bits())
		if err != nil {
			var ne *strconv.NumError
			if errors.As(err, &ne) {
				err = ne.Err
			}
			return reflect.Value{}, fmt.Errorf("invalid %s: %w", k, err)
		}
		v := reflect.New(t).Elem()
		v.SetInt(n)
		return v, nil
	case KindString, KindPath:
		return reflect.ValueOf(raw).Convert(t), nil
	case KindBool, KindSimpleBool:
		b, err := parseStrictBool(raw)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(b).Convert(t), nil
	case KindEnum:
		v, ok := enum.lookup(raw)
		if !ok {
			return reflect.Value{}, fmt.Errorf("not one of %s", strings.Join(enum.names(), ", "))
		}
		return v, nil
	}
	return reflect.Value{}, fmt.Errorf("cannot convert to %s", k)
}

// formatValue renders v the way it would be written on the command line.
// Pointers are dereferenced and slices are comma-joined.
func formatValue(v reflect.Value) string {
	switch v.Kind() {
	case reflect.Pointer:
		if v.IsNil() {
			return "<nil>"
		}
		return formatValue(v.Elem())
	case reflect.Slice:
		parts := make([]string, v.Len())
		for i := range parts {
			parts[i] = formatValue(v.Index(i))
		}
		return strings.Join(parts, ",")
	}
	return fmt.Sprint(v.Interface())
}
