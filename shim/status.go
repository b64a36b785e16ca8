// Copyright 2026 The shimctl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shim

import "github.com/revdshim/shimctl/shim/internal/regs"

// HwStatus returns the raw hardware-status word. It is a pure decoder;
// callers interpret bits as needed.
func (dev *Device) HwStatus() uint32 {
	return dev.sysStatus.hwStatus.r()
}

// DebugRegisters returns the raw debug-register word (aliased onto
// boot_test_skip; see DESIGN.md).
func (dev *Device) DebugRegisters() uint32 {
	return dev.sysCtrl.bootTestSkip.r()
}

// DACCmdFifoStatus returns board b's decoded DAC command FIFO status.
func (dev *Device) DACCmdFifoStatus(b int) (FifoStatus, error) {
	if err := checkBoard(b, regs.NumDACBoards); err != nil {
		return 0, err
	}
	return decodeFifoStatus(dev.sysStatus.dacCmdSts[b].r()), nil
}

// ADCCmdFifoStatus returns board b's decoded ADC command FIFO status.
func (dev *Device) ADCCmdFifoStatus(b int) (FifoStatus, error) {
	if err := checkBoard(b, regs.NumADCBoards); err != nil {
		return 0, err
	}
	return decodeFifoStatus(dev.sysStatus.adcCmdSts[b].r()), nil
}

// ADCDataFifoStatus returns board b's decoded ADC data FIFO status.
func (dev *Device) ADCDataFifoStatus(b int) (FifoStatus, error) {
	if err := checkBoard(b, regs.NumADCBoards); err != nil {
		return 0, err
	}
	return decodeFifoStatus(dev.sysStatus.adcDataSts[b].r()), nil
}

// TrigCmdFifoStatus returns the decoded trigger command FIFO status.
func (dev *Device) TrigCmdFifoStatus() FifoStatus {
	return decodeFifoStatus(dev.sysStatus.trigCmdSts.r())
}

// TrigDataFifoStatus returns the decoded trigger data FIFO status.
func (dev *Device) TrigDataFifoStatus() FifoStatus {
	return decodeFifoStatus(dev.sysStatus.trigDataSts.r())
}
