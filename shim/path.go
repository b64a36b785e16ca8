// Copyright 2026 The shimctl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shim

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ResolvePath strips a leading and a trailing quote character (' or "),
// independently of each other, expands a bare "~" or a leading "~/" to
// home, and resolves a relative remainder against home. Absolute paths
// are returned verbatim.
func ResolvePath(home, raw string) string {
	p := stripQuotes(raw)
	switch {
	case p == "~":
		return home
	case strings.HasPrefix(p, "~/"):
		return filepath.Join(home, p[2:])
	case filepath.IsAbs(p):
		return p
	default:
		return filepath.Join(home, p)
	}
}

// stripQuotes strips one leading quote char and one trailing quote char,
// each independently: a mismatched or single quote still loses the side
// it appears on.
func stripQuotes(s string) string {
	if len(s) > 0 && (s[0] == '\'' || s[0] == '"') {
		s = s[1:]
	}
	if len(s) > 0 {
		if last := s[len(s)-1]; last == '\'' || last == '"' {
			s = s[:len(s)-1]
		}
	}
	return s
}

// openAppend opens path for appending, creating it with permissions 0666
// if it does not already exist.
func openAppend(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return nil, err
	}
	if err := f.Chmod(0666); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

// writeDecimalLines appends one decimal integer per line and flushes.
func writeDecimalLines(f *os.File, values []int32) error {
	w := bufio.NewWriter(f)
	for _, v := range values {
		if _, err := fmt.Fprintf(w, "%d\n", v); err != nil {
			return err
		}
	}
	return w.Flush()
}
