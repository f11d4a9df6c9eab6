// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tui

import (
	"strings"
	"testing"
)

func TestNewColorizer(t *testing.T) {
	tests := []struct {
		name    string
		enabled bool
		noColor string
		term    string
		want    bool
	}{
		{"disabled", false, "", "xterm-256color", false},
		{"enabled", true, "", "xterm-256color", true},
		{"no color env", true, "1", "xterm-256color", false},
		{"dumb terminal", true, "", "dumb", false},
		{"no terminal", true, "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", tt.noColor)
			t.Setenv("TERM", tt.term)
			if got := NewColorizer(tt.enabled).Enabled; got != tt.want {
				t.Errorf("Enabled = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestColorizerWrap(t *testing.T) {
	off := Colorizer{}
	if got := off.Header("Option"); got != "Option" {
		t.Errorf("disabled Header = %q, want plain text", got)
	}

	on := Colorizer{Enabled: true}
	got := on.Error("bad")
	if !strings.HasPrefix(got, "\x1b[31m") || !strings.Contains(got, "bad") || !strings.HasSuffix(got, "m") {
		t.Errorf("enabled Error = %q, want ANSI-wrapped text", got)
	}
	if got := on.Flag(""); got != "" {
		t.Errorf("Flag(\"\") = %q, want empty", got)
	}
}
