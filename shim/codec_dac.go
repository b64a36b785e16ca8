// Copyright 2026 The shimctl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shim

import (
	"fmt"

	"github.com/revdshim/shimctl/shim/internal/regs"
)

// dacCmdWord packs the common no-op / write-update header layout: opcode
// in the top nibble, trig/continue/ldac flags, and a 25-bit value.
func dacCmdWord(opcode uint32, trig, cont, ldac bool, value uint32) (uint32, error) {
	if value > regs.CmdValueMask {
		return 0, &ConfigError{Msg: fmt.Sprintf("dac value %d exceeds %d", value, regs.CmdValueMask)}
	}
	w := opcode << regs.CmdOpcodeShift
	if trig {
		w |= 1 << regs.CmdTrigBit
	}
	if cont {
		w |= 1 << regs.CmdContinueBit
	}
	if ldac {
		w |= 1 << regs.CmdLdacBit
	}
	w |= value & regs.CmdValueMask
	return w, nil
}

// EncodeDACNoOp encodes a DAC no-op command.
func EncodeDACNoOp(trig, cont, ldac bool, value uint32) (uint32, error) {
	return dacCmdWord(regs.DACOpNoOp, trig, cont, ldac, value)
}

// EncodeDACCancel encodes a DAC cancel command (no payload).
func EncodeDACCancel() uint32 {
	return regs.DACOpCancel << regs.CmdOpcodeShift
}

// EncodeDACWriteSingle encodes a single-channel DAC write.
func EncodeDACWriteSingle(channel int, value int16) (uint32, error) {
	if channel < 0 || channel > 7 {
		return 0, &ConfigError{Msg: fmt.Sprintf("dac channel %d out of range [0,8)", channel)}
	}
	if value < -32767 || value > 32767 {
		return 0, &ConfigError{Msg: fmt.Sprintf("dac channel value %d out of range [-32767,32767]", value)}
	}
	w := regs.DACOpWriteSingle<<regs.CmdOpcodeShift | uint32(channel)<<regs.CmdChannelShift
	w |= uint32(uint16(value))
	return w, nil
}

// EncodeDACWriteUpdate encodes the 5-word write-update sequence: a header
// word (same layout as a no-op, tagged DACOpWriteUpdate) followed by four
// payload words. ch holds the eight channel values in channel-index
// order; channel 2k occupies the low half of payload word k, channel
// 2k+1 the high half.
func EncodeDACWriteUpdate(trig, cont, ldac bool, value uint32, ch [8]int16) ([5]uint32, error) {
	var words [5]uint32
	for i, v := range ch {
		if v < -32767 || v > 32767 {
			return words, &ConfigError{Msg: fmt.Sprintf("dac channel %d value %d out of range [-32767,32767]", i, v)}
		}
	}
	header, err := dacCmdWord(regs.DACOpWriteUpdate, trig, cont, ldac, value)
	if err != nil {
		return words, err
	}
	words[0] = header
	for k := 0; k < 4; k++ {
		lo := uint32(uint16(ch[2*k]))
		hi := uint32(uint16(ch[2*k+1]))
		words[1+k] = lo | hi<<16
	}
	return words, nil
}

// DecodeDACWriteUpdate reverses EncodeDACWriteUpdate's payload words.
func DecodeDACWriteUpdate(payload [4]uint32) [8]int16 {
	var ch [8]int16
	for k := 0; k < 4; k++ {
		ch[2*k] = int16(uint16(payload[k]))
		ch[2*k+1] = int16(uint16(payload[k] >> 16))
	}
	return ch
}
