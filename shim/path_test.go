// Copyright 2026 The shimctl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shim

import "testing"

func TestResolvePath(t *testing.T) {
	const home = "/home/shim"
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"absolute", "/etc/shim.yaml", "/etc/shim.yaml"},
		{"bare-tilde", "~", "/home/shim"},
		{"tilde", "~/waveforms/a.txt", "/home/shim/waveforms/a.txt"},
		{"relative", "waveforms/a.txt", "/home/shim/waveforms/a.txt"},
		{"double-quoted", `"waveforms/a.txt"`, "/home/shim/waveforms/a.txt"},
		{"single-quoted", "'/etc/shim.yaml'", "/etc/shim.yaml"},
		{"mismatched-quotes", `"/etc/shim.yaml'`, "/etc/shim.yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolvePath(home, tt.raw); got != tt.want {
				t.Errorf("ResolvePath(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestStripQuotes(t *testing.T) {
	tests := []struct{ in, want string }{
		{`"abc"`, "abc"},
		{"'abc'", "abc"},
		{"abc", "abc"},
		{`"abc`, "abc"},
		{`abc"`, "abc"},
		{`"abc'`, "abc"},
		{`a`, `a`},
	}
	for _, tt := range tests {
		if got := stripQuotes(tt.in); got != tt.want {
			t.Errorf("stripQuotes(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
