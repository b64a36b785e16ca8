// Copyright 2026 The shimctl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shim

import (
	"io"
	"log"
	"sync"

	"github.com/revdshim/shimctl/shim/internal/regs"
)

// memBacking is an in-memory stand-in for a mapped MMIO window: it
// satisfies rwer so reg32 bindings can be exercised without a real
// /dev/mem. Each FIFO data register is modeled on its own memBacking (a
// board's ADC command and data registers share one, as on the device),
// and the status words share one backing at their real offsets, so
// pushes/pops never perturb unrelated boards.
type memBacking struct {
	mu  sync.Mutex
	buf []byte
}

func newMemBacking(words int) *memBacking {
	return &memBacking{buf: make([]byte, words*4)}
}

func (m *memBacking) ReadAt(p []byte, off int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := copy(p, m.buf[off:])
	return n, nil
}

func (m *memBacking) WriteAt(p []byte, off int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := copy(m.buf[off:], p)
	return n, nil
}

// wrap builds a *Device whose registers are all backed by independent
// in-memory buffers rather than a real MMIO mapping, mirroring the
// register-injection style of the teacher's fake device helper.
func wrap() *Device {
	dev := &Device{msg: log.New(io.Discard, "", 0)}

	ctrl := newMemBacking(regs.SysCtrlWordCount)
	status := newMemBacking(regs.SysStatusWordCount)
	clk := newMemBacking(regs.SpiClockWordCount)

	dev.sysCtrl = sysCtrlRegs{
		systemEnable: newReg32(ctrl, int64(regs.SystemEnableOffset)*4),
		bufferReset:  newReg32(ctrl, int64(regs.BufferResetOffset)*4),
		intThreshAvg: newReg32(ctrl, int64(regs.IntegratorThresholdAverageOffset)*4),
		intWindow:    newReg32(ctrl, int64(regs.IntegratorWindowOffset)*4),
		intEnable:    newReg32(ctrl, int64(regs.IntegratorEnableOffset)*4),
		bootTestSkip: newReg32(ctrl, int64(regs.BootTestSkipOffset)*4),
	}

	dev.sysStatus.hwStatus = newReg32(status, int64(regs.HwStatusOffset)*4)
	dev.sysStatus.trigCmdSts = newReg32(status, int64(regs.TrigCmdFifoStatusOffset)*4)
	dev.sysStatus.trigDataSts = newReg32(status, int64(regs.TrigDataFifoStatusOffset)*4)
	for b := 0; b < regs.NumDACBoards; b++ {
		dev.sysStatus.dacCmdSts[b] = newReg32(status, int64(regs.DACCmdFifoStatusOffset(b))*4)
	}
	for b := 0; b < regs.NumADCBoards; b++ {
		dev.sysStatus.adcCmdSts[b] = newReg32(status, int64(regs.ADCCmdFifoStatusOffset(b))*4)
		dev.sysStatus.adcDataSts[b] = newReg32(status, int64(regs.ADCDataFifoStatusOffset(b))*4)
	}

	dev.spiClock = spiClockRegs{
		mosiPolarity: newReg32(clk, int64(regs.MosiPolarityOffset)*4),
		misoPolarity: newReg32(clk, int64(regs.MisoPolarityOffset)*4),
	}

	for b := 0; b < regs.NumDACBoards; b++ {
		dev.dacFifo[b] = newReg32(newMemBacking(1), 0)
	}
	for b := 0; b < regs.NumADCBoards; b++ {
		adcBuf := newMemBacking(1)
		dev.adcCmd[b] = newReg32(adcBuf, 0)
		dev.adcData[b] = newReg32(adcBuf, 0)
	}
	dev.trigFifo = newReg32(newMemBacking(1), 0)

	return dev
}

// setFifoStatus writes a synthetic status word: present plus the given
// word count, into the backing reg32 r.
func setFifoStatus(r reg32, wordCount int) {
	w := uint32(1<<regs.FifoStatusPresentBit) | uint32(wordCount)&regs.FifoStatusCountMask
	r.w(w)
}
