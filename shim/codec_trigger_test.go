// Copyright 2026 The shimctl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shim

import (
	"testing"

	"github.com/revdshim/shimctl/shim/internal/regs"
)

func TestEncodeTrigSetLockout(t *testing.T) {
	if _, err := EncodeTrigSetLockout(0); err == nil {
		t.Fatalf("expected error for zero lockout cycles")
	}
	w, err := EncodeTrigSetLockout(regs.TrigValueMask)
	if err != nil {
		t.Fatalf("EncodeTrigSetLockout: %v", err)
	}
	if op := (w >> regs.TrigOpcodeShift) & regs.TrigOpcodeMask; op != regs.TrigOpSetLockout {
		t.Errorf("opcode = %#x, want %#x", op, regs.TrigOpSetLockout)
	}
	if w&regs.TrigValueMask != regs.TrigValueMask {
		t.Errorf("value = %#x, want %#x", w&regs.TrigValueMask, regs.TrigValueMask)
	}
}

func TestEncodeTrigDelayRejectsOversizedValue(t *testing.T) {
	if _, err := EncodeTrigDelay(regs.TrigValueMask + 1); err == nil {
		t.Fatalf("expected error for oversized delay")
	}
}

func TestEncodeTrigStaticCommands(t *testing.T) {
	tests := []struct {
		name string
		word uint32
		want uint32
	}{
		{"sync", EncodeTrigSyncChannels(), regs.TrigOpSync},
		{"force", EncodeTrigForce(), regs.TrigOpForce},
		{"cancel", EncodeTrigCancel(), regs.TrigOpCancel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if op := (tt.word >> regs.TrigOpcodeShift) & regs.TrigOpcodeMask; op != tt.want {
				t.Errorf("opcode = %#x, want %#x", op, tt.want)
			}
		})
	}
}

func TestDecodeTrigData64(t *testing.T) {
	got := DecodeTrigData64(0x89abcdef, 0x01234567)
	want := uint64(0x0123456789abcdef)
	if got != want {
		t.Errorf("DecodeTrigData64 = %#x, want %#x", got, want)
	}
}
