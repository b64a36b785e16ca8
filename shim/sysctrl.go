// Copyright 2026 The shimctl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shim

const bufResetAllMask = 0x1FFFF // bits [16:0]: one bit per board plus bit 16 for the trigger FIFO.

// TurnOn writes system_enable=1. Starting the hardware-manager IRQ
// monitor is a best-effort side effect: a failure is logged but does not
// fail TurnOn.
func (dev *Device) TurnOn() error {
	dev.sysCtrl.systemEnable.w(1)
	if err := dev.startIRQMonitor(); err != nil {
		dev.msg.Printf("warning: could not start IRQ monitor: %v", err)
	}
	return nil
}

// TurnOff writes system_enable=0.
func (dev *Device) TurnOff() error {
	dev.sysCtrl.systemEnable.w(0)
	return nil
}

// startIRQMonitor is a placeholder for the hardware-manager IRQ monitor
// invoked from TurnOn; the fabric used in this deployment has no attached
// IRQ line, so there is nothing to start.
func (dev *Device) startIRQMonitor() error {
	return nil
}

// SetBootTestSkip zero-extends v into the boot_test_skip register.
func (dev *Device) SetBootTestSkip(v uint16) {
	dev.sysCtrl.bootTestSkip.w(uint32(v))
}

// SetDebug zero-extends v into the same physical register as
// SetBootTestSkip; see DESIGN.md for why they share a word.
func (dev *Device) SetDebug(v uint16) {
	dev.sysCtrl.bootTestSkip.w(uint32(v))
}

// SetCmdBufReset writes a 17-bit command-buffer reset mask (bit b clears
// board b's FIFO; bit 16 affects the trigger FIFO).
func (dev *Device) SetCmdBufReset(mask uint32) error {
	if mask > bufResetAllMask {
		return &ConfigError{Msg: "cmd buf reset mask exceeds 17 bits"}
	}
	dev.sysCtrl.bufferReset.w(mask)
	return nil
}

// SetDataBufReset writes a 17-bit data-buffer reset mask, same layout as
// SetCmdBufReset, to the same physical register; see DESIGN.md.
func (dev *Device) SetDataBufReset(mask uint32) error {
	if mask > bufResetAllMask {
		return &ConfigError{Msg: "data buf reset mask exceeds 17 bits"}
	}
	dev.sysCtrl.bufferReset.w(mask)
	return nil
}

// InvertMosiSck toggles the MOSI SPI-clock polarity. The register is
// edge-triggered in hardware: writing 1 pulses the toggle, so no
// read-modify-write is needed.
func (dev *Device) InvertMosiSck() {
	dev.spiClock.mosiPolarity.w(1)
}

// InvertMisoSck toggles the MISO SPI-clock polarity, same convention as
// InvertMosiSck.
func (dev *Device) InvertMisoSck() {
	dev.spiClock.misoPolarity.w(1)
}

// HardReset stops every running stream, turns the system off, zeroes the
// debug and boot_test_skip registers, and cycles both buffer-reset
// registers through their all-ones mask back to zero.
func (dev *Device) HardReset() error {
	if err := dev.StopAllStreams(); err != nil {
		return err
	}

	if err := dev.TurnOff(); err != nil {
		return err
	}
	dev.SetDebug(0)
	dev.SetBootTestSkip(0)
	if err := dev.SetCmdBufReset(bufResetAllMask); err != nil {
		return err
	}
	if err := dev.SetDataBufReset(bufResetAllMask); err != nil {
		return err
	}
	if err := dev.SetCmdBufReset(0); err != nil {
		return err
	}
	if err := dev.SetDataBufReset(0); err != nil {
		return err
	}
	return nil
}
