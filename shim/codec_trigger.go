// Copyright 2026 The shimctl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shim

import (
	"fmt"

	"github.com/revdshim/shimctl/shim/internal/regs"
)

func trigCmdWord(opcode uint32, value uint32) (uint32, error) {
	if value > regs.TrigValueMask {
		return 0, &ConfigError{Msg: fmt.Sprintf("trigger value %d exceeds %d", value, regs.TrigValueMask)}
	}
	return opcode<<regs.TrigOpcodeShift | value&regs.TrigValueMask, nil
}

// EncodeTrigSyncChannels encodes the trigger-sync-channels command.
func EncodeTrigSyncChannels() uint32 { return regs.TrigOpSync << regs.TrigOpcodeShift }

// EncodeTrigForce encodes the force-trigger command.
func EncodeTrigForce() uint32 { return regs.TrigOpForce << regs.TrigOpcodeShift }

// EncodeTrigCancel encodes the trigger-cancel command.
func EncodeTrigCancel() uint32 { return regs.TrigOpCancel << regs.TrigOpcodeShift }

// EncodeTrigSetLockout encodes a lockout-cycles command, 1..0x1FFFFFFF.
func EncodeTrigSetLockout(cycles uint32) (uint32, error) {
	if cycles < 1 {
		return 0, &ConfigError{Msg: "trigger lockout cycles must be >= 1"}
	}
	return trigCmdWord(regs.TrigOpSetLockout, cycles)
}

// EncodeTrigDelay encodes a delay-cycles command, 0..0x1FFFFFFF.
func EncodeTrigDelay(cycles uint32) (uint32, error) {
	return trigCmdWord(regs.TrigOpDelay, cycles)
}

// EncodeTrigExpectExternal encodes an expect-external-count command,
// 0..0x1FFFFFFF.
func EncodeTrigExpectExternal(count uint32) (uint32, error) {
	return trigCmdWord(regs.TrigOpExpectExt, count)
}

// DecodeTrigData64 assembles a 64-bit trigger data value from two
// consecutive 32-bit pops, the second carrying the high half.
func DecodeTrigData64(first, second uint32) uint64 {
	return uint64(second)<<32 | uint64(first)
}
