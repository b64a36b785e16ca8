// Copyright 2026 The shimctl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shim

import (
	"fmt"

	"github.com/revdshim/shimctl/shim/internal/regs"
)

func adcCmdWord(opcode uint32, trig, cont bool, value uint32) (uint32, error) {
	if value > regs.CmdValueMask {
		return 0, &ConfigError{Msg: fmt.Sprintf("adc value %d exceeds %d", value, regs.CmdValueMask)}
	}
	w := opcode << regs.CmdOpcodeShift
	if trig {
		w |= 1 << regs.CmdTrigBit
	}
	if cont {
		w |= 1 << regs.CmdContinueBit
	}
	w |= value & regs.CmdValueMask
	return w, nil
}

// EncodeADCNoOp encodes an ADC no-op (trigger- or delay-mode) command.
func EncodeADCNoOp(trig, cont bool, value uint32) (uint32, error) {
	return adcCmdWord(regs.ADCOpNoOp, trig, cont, value)
}

// EncodeADCRead encodes a one-shot ADC read command.
func EncodeADCRead(trig, cont bool, delay uint32) (uint32, error) {
	return adcCmdWord(regs.ADCOpRead, trig, cont, delay)
}

// EncodeADCReadSingle encodes a single-channel ADC read.
func EncodeADCReadSingle(channel int) (uint32, error) {
	if channel < 0 || channel > 7 {
		return 0, &ConfigError{Msg: fmt.Sprintf("adc channel %d out of range [0,8)", channel)}
	}
	return regs.ADCOpReadSingle<<regs.CmdOpcodeShift | uint32(channel)<<regs.CmdChannelShift, nil
}

// EncodeADCLoopNext encodes a loop-next command: the next command in the
// stream repeats count times.
func EncodeADCLoopNext(count uint32) (uint32, error) {
	if count < 1 || count > regs.CmdValueMask {
		return 0, &ConfigError{Msg: fmt.Sprintf("adc loop count %d out of range [1,%d]", count, regs.CmdValueMask)}
	}
	return regs.ADCOpLoopNext<<regs.CmdOpcodeShift | count, nil
}

// EncodeADCSetOrder encodes the eight 3-bit channel-order fields.
func EncodeADCSetOrder(order [8]int) (uint32, error) {
	w := uint32(regs.ADCOpSetOrder) << regs.CmdOpcodeShift
	for i, s := range order {
		if s < 0 || s > 7 {
			return 0, &ConfigError{Msg: fmt.Sprintf("adc order field %d value %d out of range [0,8)", i, s)}
		}
		w |= uint32(s) << (uint(i) * regs.OrderFieldBits)
	}
	return w, nil
}

// EncodeADCCancel encodes an ADC cancel command (no payload).
func EncodeADCCancel() uint32 {
	return regs.ADCOpCancel << regs.CmdOpcodeShift
}

// DecodeADCSamples splits a 32-bit ADC data word into its two offset-binary
// samples (low half first) and converts each to a signed value, 0x8000
// mapping to zero.
func DecodeADCSamples(word uint32) (lo, hi int32) {
	return offsetToSigned(uint16(word)), offsetToSigned(uint16(word >> 16))
}

func offsetToSigned(v uint16) int32 {
	return int32(v) - regs.OffsetBinaryMidScale
}
