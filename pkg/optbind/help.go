// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optbind

import (
	"io"
	"strings"

	"github.com/mitchellh/go-wordwrap"
	"github.com/yeetrun/optbind/pkg/tui"
)

const (
	defaultHelpWidth = 80
	maxOptionColumn  = 32
	minDescWidth     = 20
)

// HelpOptions controls WriteHelp.
type HelpOptions struct {
	// Width is the total line width descriptions are wrapped to. Zero means 80.
	Width int
	// Color enables ANSI styling, subject to NO_COLOR and TERM.
	Color bool
}

// WriteHelp writes one entry per option, in schema order, followed by the
// documentation of the non-option arguments if the schema binds them. It does
// not modify the schema or the configuration struct.
func (s *Schema) WriteHelp(w io.Writer, opts HelpOptions) error {
	width := opts.Width
	if width <= 0 {
		width = defaultHelpWidth
	}
	c := tui.NewColorizer(opts.Color)

	var b strings.Builder
	if len(s.fields) == 0 {
		b.WriteString("No options specified\n")
	} else {
		indent := false
		for _, f := range s.fields {
			if f.Flag.Shorthand != "" {
				indent = true
				break
			}
		}
		lefts := make([]string, len(s.fields))
		col := len("Option")
		for i, f := range s.fields {
			lefts[i] = f.optionColumn(indent)
			col = max(col, len(lefts[i]))
		}
		col = min(col, maxOptionColumn) + 2
		descWidth := max(width-col, minDescWidth)

		writeRow(&b, col, "Option", c.Header("Option"), []string{c.Header("Description")})
		writeRow(&b, col, "------", "------", []string{"-----------"})
		for i, f := range s.fields {
			writeRow(&b, col, lefts[i], c.Flag(lefts[i]), f.helpLines(descWidth))
		}
	}
	if s.sink != nil {
		b.WriteString("\n")
		b.WriteString(c.Header("Remaining arguments:"))
		b.WriteString(" ")
		b.WriteString(s.sink.Help)
		b.WriteString("\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// writeRow writes left padded to col followed by the first line, then the
// remaining lines indented to col. A left column wider than col gets a line
// of its own.
func writeRow(b *strings.Builder, col int, left, styled string, lines []string) {
	pad := strings.Repeat(" ", col)
	b.WriteString(styled)
	if len(left)+2 > col {
		b.WriteString("\n")
		b.WriteString(pad)
	} else {
		b.WriteString(pad[len(left):])
	}
	for i, l := range lines {
		if i > 0 {
			b.WriteString(pad)
		}
		b.WriteString(l)
		b.WriteString("\n")
	}
	if len(lines) == 0 {
		b.WriteString("\n")
	}
}

func (f *FieldSpec) optionColumn(indent bool) string {
	var b strings.Builder
	switch {
	case f.Flag.Shorthand != "":
		b.WriteString("-" + f.Flag.Shorthand + ", ")
	case indent:
		b.WriteString("    ")
	}
	b.WriteString("--")
	b.WriteString(f.Option)
	if p := f.placeholder(); p != "" {
		b.WriteString(" ")
		b.WriteString(p)
	}
	return b.String()
}

// placeholder describes the value an option takes, or "" for presence flags.
func (f *FieldSpec) placeholder() string {
	switch f.Kind {
	case KindSimpleBool:
		return ""
	case KindSeq:
		e := kindPlaceholder(f.Elem, f)
		return e + "[," + e + "...]"
	}
	return kindPlaceholder(f.Kind, f)
}

func kindPlaceholder(k Kind, f *FieldSpec) string {
	switch k {
	case KindBool:
		return "<true|false>"
	case KindEnum:
		return "<" + f.typ.Name() + ">"
	}
	return "<" + k.String() + ">"
}

// helpLines wraps the field's help text to width. The default, if any, is
// appended to the first paragraph.
func (f *FieldSpec) helpLines(width int) []string {
	paras := strings.Split(f.Help, "\n")
	if f.hasDef {
		paras[0] += " (default: " + f.Default() + ")"
	}
	var lines []string
	for _, p := range paras {
		lines = append(lines, strings.Split(wordwrap.WrapString(p, uint(width)), "\n")...)
	}
	return lines
}
