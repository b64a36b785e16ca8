// Copyright 2026 The shimctl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shim

import (
	"errors"
	"testing"

	"github.com/revdshim/shimctl/shim/internal/regs"
)

func TestCheckBoard(t *testing.T) {
	if err := checkBoard(0, regs.NumDACBoards); err != nil {
		t.Errorf("checkBoard(0) = %v, want nil", err)
	}
	if err := checkBoard(regs.NumDACBoards-1, regs.NumDACBoards); err != nil {
		t.Errorf("checkBoard(last) = %v, want nil", err)
	}

	var ce *ConfigError
	if err := checkBoard(-1, regs.NumDACBoards); !errors.As(err, &ce) {
		t.Errorf("checkBoard(-1) = %v, want ConfigError", err)
	}
	if err := checkBoard(regs.NumDACBoards, regs.NumDACBoards); !errors.As(err, &ce) {
		t.Errorf("checkBoard(n) = %v, want ConfigError", err)
	}
}

func TestDefaultConfigAndWithDevPath(t *testing.T) {
	cfg := newConfig()
	if cfg.devPath != "/dev/mem" {
		t.Errorf("default devPath = %q, want /dev/mem", cfg.devPath)
	}

	WithDevPath("/tmp/fake-mem")(&cfg)
	if cfg.devPath != "/tmp/fake-mem" {
		t.Errorf("devPath = %q, want /tmp/fake-mem", cfg.devPath)
	}
}
