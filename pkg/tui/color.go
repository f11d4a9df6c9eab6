// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tui

import (
	"os"

	"github.com/fatih/color"
)

// Styles used by help and error output.
var (
	StyleHeader = newStyle(color.Bold, color.Underline)
	StyleFlag   = newStyle(color.FgCyan)
	StyleError  = newStyle(color.FgRed)
	StyleDim    = newStyle(color.Faint)
)

func newStyle(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	// fatih/color decides on its own whether stdout is a terminal; the
	// Colorizer makes that call instead so output to any writer is consistent.
	c.EnableColor()
	return c
}

type Colorizer struct {
	Enabled bool
}

// NewColorizer returns a Colorizer that is enabled only if enabled is true
// and the environment does not opt out via NO_COLOR or a dumb terminal.
func NewColorizer(enabled bool) Colorizer {
	if !enabled {
		return Colorizer{}
	}
	if os.Getenv("NO_COLOR") != "" {
		return Colorizer{}
	}
	term := os.Getenv("TERM")
	if term == "" || term == "dumb" {
		return Colorizer{}
	}
	return Colorizer{Enabled: true}
}

func (c Colorizer) Wrap(style *color.Color, text string) string {
	if !c.Enabled || style == nil || text == "" {
		return text
	}
	return style.Sprint(text)
}

func (c Colorizer) Header(text string) string { return c.Wrap(StyleHeader, text) }
func (c Colorizer) Flag(text string) string   { return c.Wrap(StyleFlag, text) }
func (c Colorizer) Error(text string) string  { return c.Wrap(StyleError, text) }
func (c Colorizer) Dim(text string) string    { return c.Wrap(StyleDim, text) }
