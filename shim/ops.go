// Copyright 2026 The shimctl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shim

import "github.com/revdshim/shimctl/shim/internal/regs"

func (dev *Device) rejectIfDACStreamRunning(b int) error {
	if dev.IsDACStreamRunning(b) {
		return &StreamStateError{Msg: "DAC stream owns this board's command FIFO"}
	}
	return nil
}

func (dev *Device) rejectIfADCProgramRunning(b int) error {
	if dev.IsADCProgramStreamRunning(b) {
		return &StreamStateError{Msg: "ADC program stream owns this board's command FIFO"}
	}
	return nil
}

func (dev *Device) rejectIfADCCaptureRunning(b int) error {
	if dev.IsADCCaptureStreamRunning(b) {
		return &StreamStateError{Msg: "ADC capture stream owns this board's data FIFO"}
	}
	return nil
}

// DACNoOp pushes a single DAC no-op command to board b.
func (dev *Device) DACNoOp(b int, trig, cont bool, value uint32) error {
	if err := checkBoard(b, regs.NumDACBoards); err != nil {
		return err
	}
	if err := dev.rejectIfDACStreamRunning(b); err != nil {
		return err
	}
	word, err := EncodeDACNoOp(trig, cont, false, value)
	if err != nil {
		return err
	}
	return pushCommand(dev.sysStatus.dacCmdSts[b], dev.dacFifo[b], word)
}

// DACCancel pushes a DAC cancel command to board b.
func (dev *Device) DACCancel(b int) error {
	if err := checkBoard(b, regs.NumDACBoards); err != nil {
		return err
	}
	if err := dev.rejectIfDACStreamRunning(b); err != nil {
		return err
	}
	return pushCommand(dev.sysStatus.dacCmdSts[b], dev.dacFifo[b], EncodeDACCancel())
}

// DACWriteUpdate pushes the 5-word write-update sequence to board b.
func (dev *Device) DACWriteUpdate(b int, trig, cont bool, value uint32, ch [8]int16) error {
	if err := checkBoard(b, regs.NumDACBoards); err != nil {
		return err
	}
	if err := dev.rejectIfDACStreamRunning(b); err != nil {
		return err
	}
	words, err := EncodeDACWriteUpdate(trig, cont, true, value, ch)
	if err != nil {
		return err
	}
	return pushCommand(dev.sysStatus.dacCmdSts[b], dev.dacFifo[b], words[:]...)
}

// DACWriteSingle pushes a single-channel DAC write to board b.
func (dev *Device) DACWriteSingle(b, channel int, value int16) error {
	if err := checkBoard(b, regs.NumDACBoards); err != nil {
		return err
	}
	if err := dev.rejectIfDACStreamRunning(b); err != nil {
		return err
	}
	word, err := EncodeDACWriteSingle(channel, value)
	if err != nil {
		return err
	}
	return pushCommand(dev.sysStatus.dacCmdSts[b], dev.dacFifo[b], word)
}

// ADCNoOp pushes a single ADC no-op command to board b.
func (dev *Device) ADCNoOp(b int, trig, cont bool, value uint32) error {
	if err := checkBoard(b, regs.NumADCBoards); err != nil {
		return err
	}
	if err := dev.rejectIfADCProgramRunning(b); err != nil {
		return err
	}
	word, err := EncodeADCNoOp(trig, cont, value)
	if err != nil {
		return err
	}
	return pushCommand(dev.sysStatus.adcCmdSts[b], dev.adcCmd[b], word)
}

// ADCRead pushes a one-shot ADC read command to board b.
func (dev *Device) ADCRead(b int, trig, cont bool, delay uint32) error {
	if err := checkBoard(b, regs.NumADCBoards); err != nil {
		return err
	}
	if err := dev.rejectIfADCProgramRunning(b); err != nil {
		return err
	}
	word, err := EncodeADCRead(trig, cont, delay)
	if err != nil {
		return err
	}
	return pushCommand(dev.sysStatus.adcCmdSts[b], dev.adcCmd[b], word)
}

// ADCReadSingle pushes a single-channel ADC read to board b.
func (dev *Device) ADCReadSingle(b, channel int) error {
	if err := checkBoard(b, regs.NumADCBoards); err != nil {
		return err
	}
	if err := dev.rejectIfADCProgramRunning(b); err != nil {
		return err
	}
	word, err := EncodeADCReadSingle(channel)
	if err != nil {
		return err
	}
	return pushCommand(dev.sysStatus.adcCmdSts[b], dev.adcCmd[b], word)
}

// ADCLoopNext pushes a loop-next command to board b.
func (dev *Device) ADCLoopNext(b int, count uint32) error {
	if err := checkBoard(b, regs.NumADCBoards); err != nil {
		return err
	}
	if err := dev.rejectIfADCProgramRunning(b); err != nil {
		return err
	}
	word, err := EncodeADCLoopNext(count)
	if err != nil {
		return err
	}
	return pushCommand(dev.sysStatus.adcCmdSts[b], dev.adcCmd[b], word)
}

// ADCSetOrder pushes a channel-order command to board b.
func (dev *Device) ADCSetOrder(b int, order [8]int) error {
	if err := checkBoard(b, regs.NumADCBoards); err != nil {
		return err
	}
	if err := dev.rejectIfADCProgramRunning(b); err != nil {
		return err
	}
	word, err := EncodeADCSetOrder(order)
	if err != nil {
		return err
	}
	return pushCommand(dev.sysStatus.adcCmdSts[b], dev.adcCmd[b], word)
}

// ADCCancel pushes an ADC cancel command to board b.
func (dev *Device) ADCCancel(b int) error {
	if err := checkBoard(b, regs.NumADCBoards); err != nil {
		return err
	}
	if err := dev.rejectIfADCProgramRunning(b); err != nil {
		return err
	}
	return pushCommand(dev.sysStatus.adcCmdSts[b], dev.adcCmd[b], EncodeADCCancel())
}

// ReadADCSample pops exactly one ADC data word from board b and returns
// its two decoded signed samples.
func (dev *Device) ReadADCSample(b int) (lo, hi int32, err error) {
	if err := checkBoard(b, regs.NumADCBoards); err != nil {
		return 0, 0, err
	}
	if err := dev.rejectIfADCCaptureRunning(b); err != nil {
		return 0, 0, err
	}
	w, err := popData(dev.sysStatus.adcDataSts[b], dev.adcData[b])
	if err != nil {
		return 0, 0, err
	}
	lo, hi = DecodeADCSamples(w)
	return lo, hi, nil
}

// ReadADCAll drains board b's ADC data FIFO, returning every decoded
// sample in pop order.
func (dev *Device) ReadADCAll(b int) ([]int32, error) {
	if err := checkBoard(b, regs.NumADCBoards); err != nil {
		return nil, err
	}
	if err := dev.rejectIfADCCaptureRunning(b); err != nil {
		return nil, err
	}
	var out []int32
	for {
		st := decodeFifoStatus(dev.sysStatus.adcDataSts[b].r())
		if !st.Present() {
			return out, &FifoStateError{Msg: "fifo not present"}
		}
		if st.Empty() {
			return out, nil
		}
		lo, hi := DecodeADCSamples(popWord(dev.adcData[b]))
		out = append(out, lo, hi)
	}
}

// TrigSyncChannels pushes the sync-channels command.
func (dev *Device) TrigSyncChannels() error {
	return pushCommand(dev.sysStatus.trigCmdSts, dev.trigFifo, EncodeTrigSyncChannels())
}

// TrigForce pushes the force-trigger command.
func (dev *Device) TrigForce() error {
	return pushCommand(dev.sysStatus.trigCmdSts, dev.trigFifo, EncodeTrigForce())
}

// TrigCancel pushes the trigger-cancel command.
func (dev *Device) TrigCancel() error {
	return pushCommand(dev.sysStatus.trigCmdSts, dev.trigFifo, EncodeTrigCancel())
}

// TrigSetLockout pushes a set-lockout command.
func (dev *Device) TrigSetLockout(cycles uint32) error {
	word, err := EncodeTrigSetLockout(cycles)
	if err != nil {
		return err
	}
	return pushCommand(dev.sysStatus.trigCmdSts, dev.trigFifo, word)
}

// TrigDelay pushes a delay command.
func (dev *Device) TrigDelay(cycles uint32) error {
	word, err := EncodeTrigDelay(cycles)
	if err != nil {
		return err
	}
	return pushCommand(dev.sysStatus.trigCmdSts, dev.trigFifo, word)
}

// TrigExpectExternal pushes an expect-external command.
func (dev *Device) TrigExpectExternal(count uint32) error {
	word, err := EncodeTrigExpectExternal(count)
	if err != nil {
		return err
	}
	return pushCommand(dev.sysStatus.trigCmdSts, dev.trigFifo, word)
}

// ReadTrigData pops one 64-bit trigger data value, which requires two
// consecutive 32-bit words to be available.
func (dev *Device) ReadTrigData() (uint64, error) {
	st := decodeFifoStatus(dev.sysStatus.trigDataSts.r())
	if !st.Present() {
		return 0, &FifoStateError{Msg: "fifo not present"}
	}
	if st.WordCount() < 2 {
		return 0, &FifoStateError{Msg: "fewer than 2 words available for a 64-bit trigger read"}
	}
	first := popWord(dev.trigFifo)
	second := popWord(dev.trigFifo)
	return DecodeTrigData64(first, second), nil
}
