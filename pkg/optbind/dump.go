// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optbind

import (
	"fmt"
	"io"
	"strings"
)

// String renders the current value of every option field, one
// "Field: value" line each in schema order, followed by the leftover
// arguments of the last Parse.
func (s *Schema) String() string {
	var b strings.Builder
	for _, f := range s.fields {
		fmt.Fprintf(&b, "%s: %s\n", f.Name, dumpValue(f))
	}
	fmt.Fprintf(&b, "Remaining args: [%s]", strings.Join(s.NonOptionArgs(), " "))
	return b.String()
}

// WriteValues writes String followed by a newline to w.
func (s *Schema) WriteValues(w io.Writer) error {
	_, err := fmt.Fprintln(w, s.String())
	return err
}

func dumpValue(f *FieldSpec) string {
	v := f.field
	if f.Kind == KindSeq {
		parts := make([]string, v.Len())
		for i := range parts {
			parts[i] = formatValue(v.Index(i))
		}
		return "[" + strings.Join(parts, " ") + "]"
	}
	return formatValue(v)
}
