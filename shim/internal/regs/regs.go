// Copyright 2026 The shimctl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package regs holds the physical address map and register offsets for
// the shim fabric. All values here are fixed constants dictated by the
// hardware design; nothing in this package performs I/O.
package regs

const (
	// NumDACBoards is the number of DAC boards addressable on the fabric.
	NumDACBoards = 8
	// NumADCBoards is the number of ADC boards addressable on the fabric.
	NumADCBoards = 8

	// FifoCapacity is the depth, in 32-bit words, of every command and
	// data FIFO on the fabric.
	FifoCapacity = 1024

	// PageSize is the host's page granularity, used to round mapped
	// windows up to whole pages.
	PageSize = 4096
)

// Physical base addresses, per project's original_source/ headers and the
// physical address map table.
const (
	SysCtrlBase   = 0x40000000
	SysStatusBase = 0x40100000
	SpiClockBase  = 0x40200000

	dacFifoBase  = 0x80000000
	adcFifoBase  = 0x80001000
	trigFifoBase = 0x80100000

	boardStride = 0x10000
)

// DACFifoAddr returns the physical base address of board b's DAC FIFO.
func DACFifoAddr(b int) uintptr { return dacFifoBase + uintptr(b)*boardStride }

// ADCFifoAddr returns the physical base address of board b's ADC FIFO.
func ADCFifoAddr(b int) uintptr { return adcFifoBase + uintptr(b)*boardStride }

// TrigFifoAddr returns the physical base address of the trigger FIFO.
// The trigger engine is singular; b is always 0, kept as a parameter for
// symmetry with the DAC/ADC accessors.
func TrigFifoAddr(b int) uintptr { return trigFifoBase + uintptr(b)*boardStride }

// System control region: 6 named 32-bit words (SysCtrlWordCount), per the
// physical address map. SetCmdBufReset/SetDataBufReset both target
// BufferReset; SetDebug/SetBootTestSkip both target BootTestSkip. See
// DESIGN.md for why these pairs share a single word rather than each
// owning a dedicated one.
const (
	SysCtrlWordCount = 6

	SystemEnableOffset               = 0
	BufferResetOffset                = 1
	IntegratorThresholdAverageOffset = 2
	IntegratorWindowOffset           = 3
	IntegratorEnableOffset           = 4
	BootTestSkipOffset               = 5
)

// System status region: hw_status plus per-board FIFO status words, plus
// trigger FIFO status. 1 + 3*8 + 2 = 27 words.
const (
	SysStatusWordCount = 1 + 3*NumDACBoards + 2

	HwStatusOffset = 0

	TrigCmdFifoStatusOffset  = 25
	TrigDataFifoStatusOffset = 26
)

// DACCmdFifoStatusOffset returns the status-bank word offset for board b's
// DAC command FIFO status.
func DACCmdFifoStatusOffset(b int) int { return 1 + 3*b }

// ADCCmdFifoStatusOffset returns the status-bank word offset for board b's
// ADC command FIFO status.
func ADCCmdFifoStatusOffset(b int) int { return 2 + 3*b }

// ADCDataFifoStatusOffset returns the status-bank word offset for board b's
// ADC data FIFO status.
func ADCDataFifoStatusOffset(b int) int { return 3 + 3*b }

// SPI clock region: only the polarity-invert words are named; the rest of
// the 2048-word window belongs to the clock generator IP and is never
// addressed by this package.
const (
	SpiClockWordCount = 2048

	MosiPolarityOffset = 0
	MisoPolarityOffset = 1
)

// FIFO status bit layout (host-chosen; see Open Question #1 in spec.md and
// its resolution in DESIGN.md). Bit 31 marks the FIFO present in this
// fabric build; bits [10:0] carry the current occupancy in 32-bit words
// (0..FifoCapacity).
const (
	FifoStatusPresentBit = 31
	FifoStatusCountMask  = 0x7FF
)

// Command-word opcode layout (host-chosen; see Open Question #2 and its
// resolution in DESIGN.md). Each FIFO family reserves its own opcode tag
// width, sized to the widest payload that must coexist with it.
const (
	// DAC/ADC command FIFOs: 4-bit opcode tag in the top nibble, flags in
	// the next 3 bits, value in the low 25 bits.
	CmdOpcodeShift = 28
	CmdOpcodeMask  = 0xF

	CmdTrigBit     = 27
	CmdContinueBit = 26
	CmdLdacBit     = 25

	CmdValueMask = 0x1FFFFFF // 25 bits, matches the file-parser bound.

	// CmdChannelShift/Mask reuse the same three bit positions as the
	// trig/continue/ldac flags above, for the single-channel opcode
	// variants (DACOpWriteSingle, ADCOpReadSingle) that carry a channel
	// index instead of flags. The opcode tag disambiguates which
	// interpretation applies; no command word uses both.
	CmdChannelShift = 25
	CmdChannelMask  = 0x7

	DACOpNoOp        = 0x0
	DACOpCancel      = 0x1
	DACOpWriteUpdate = 0x2
	DACOpWriteSingle = 0x3
	ADCOpNoOp        = 0x0
	ADCOpRead        = 0x1
	ADCOpReadSingle  = 0x2
	ADCOpLoopNext    = 0x3
	ADCOpSetOrder    = 0x4
	ADCOpCancel      = 0x5

	// Trigger command FIFO: 3-bit opcode tag, 29-bit payload — wide enough
	// for the full 0..0x1FFFFFFF ranges the spec names verbatim.
	TrigOpcodeShift = 29
	TrigOpcodeMask  = 0x7
	TrigValueMask   = 0x1FFFFFFF

	TrigOpSync       = 0x0
	TrigOpForce      = 0x1
	TrigOpCancel     = 0x2
	TrigOpSetLockout = 0x3
	TrigOpDelay      = 0x4
	TrigOpExpectExt  = 0x5
)

// ADC channel-order field layout: eight 3-bit fields packed low to high.
const (
	OrderFieldBits = 3
	OrderFieldMask = 0x7
	OrderChannels  = 8
)

// OffsetBinaryMidScale is the unsigned code representing analog zero in
// the fabric's offset-binary ADC sample encoding.
const OffsetBinaryMidScale = 0x8000
