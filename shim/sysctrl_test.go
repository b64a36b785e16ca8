// Copyright 2026 The shimctl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shim

import "testing"

func TestTurnOnOff(t *testing.T) {
	dev := wrap()
	if err := dev.TurnOn(); err != nil {
		t.Fatalf("TurnOn: %v", err)
	}
	if got := dev.sysCtrl.systemEnable.r(); got != 1 {
		t.Errorf("system_enable = %d, want 1", got)
	}
	if err := dev.TurnOff(); err != nil {
		t.Fatalf("TurnOff: %v", err)
	}
	if got := dev.sysCtrl.systemEnable.r(); got != 0 {
		t.Errorf("system_enable = %d, want 0", got)
	}
}

func TestSetDebugAndBootTestSkipShareRegister(t *testing.T) {
	dev := wrap()
	dev.SetBootTestSkip(7)
	if got := dev.DebugRegisters(); got != 7 {
		t.Errorf("DebugRegisters() = %d, want 7 (shared with boot_test_skip)", got)
	}
	dev.SetDebug(9)
	if got := dev.sysCtrl.bootTestSkip.r(); got != 9 {
		t.Errorf("boot_test_skip = %d, want 9 (shared with debug)", got)
	}
}

func TestCmdAndDataBufResetShareRegister(t *testing.T) {
	dev := wrap()
	if err := dev.SetCmdBufReset(bufResetAllMask); err != nil {
		t.Fatalf("SetCmdBufReset: %v", err)
	}
	if got := dev.sysCtrl.bufferReset.r(); got != bufResetAllMask {
		t.Errorf("buffer_reset = %#x, want %#x", got, bufResetAllMask)
	}
	if err := dev.SetDataBufReset(0); err != nil {
		t.Fatalf("SetDataBufReset: %v", err)
	}
	if got := dev.sysCtrl.bufferReset.r(); got != 0 {
		t.Errorf("buffer_reset = %#x, want 0 after SetDataBufReset", got)
	}
}

func TestSetCmdBufResetRejectsOversizedMask(t *testing.T) {
	dev := wrap()
	if err := dev.SetCmdBufReset(bufResetAllMask + 1); err == nil {
		t.Fatalf("expected error for oversized mask")
	}
}

func TestInvertPolarityPulses(t *testing.T) {
	dev := wrap()
	dev.InvertMosiSck()
	if got := dev.spiClock.mosiPolarity.r(); got != 1 {
		t.Errorf("mosi_polarity = %d, want 1", got)
	}
	dev.InvertMisoSck()
	if got := dev.spiClock.misoPolarity.r(); got != 1 {
		t.Errorf("miso_polarity = %d, want 1", got)
	}
}

func TestHardReset(t *testing.T) {
	dev := wrap()
	dev.SetDebug(3)
	dev.SetBootTestSkip(3)
	if err := dev.TurnOn(); err != nil {
		t.Fatalf("TurnOn: %v", err)
	}
	if err := dev.HardReset(); err != nil {
		t.Fatalf("HardReset: %v", err)
	}
	if got := dev.sysCtrl.systemEnable.r(); got != 0 {
		t.Errorf("system_enable = %d, want 0 after HardReset", got)
	}
	if got := dev.sysCtrl.bootTestSkip.r(); got != 0 {
		t.Errorf("boot_test_skip = %d, want 0 after HardReset", got)
	}
	if got := dev.sysCtrl.bufferReset.r(); got != 0 {
		t.Errorf("buffer_reset = %#x, want 0 after HardReset", got)
	}
}
