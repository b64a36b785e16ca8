// Copyright 2026 The shimctl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shim

import (
	"testing"
	"time"
)

func TestDACStreamLifecycle(t *testing.T) {
	dev := wrap()
	setFifoStatus(dev.sysStatus.dacCmdSts[0], 0) // plenty of free space throughout

	cfg := DACStreamConfig{
		Board:     0,
		Commands:  []WaveformCommand{{Trig: false, Value: 1}},
		LoopCount: 1 << 30,
	}
	if err := dev.StartDACStream(cfg); err != nil {
		t.Fatalf("StartDACStream: %v", err)
	}
	if !dev.IsDACStreamRunning(0) {
		t.Fatalf("expected DAC stream running on board 0")
	}

	if err := dev.StartDACStream(cfg); err == nil {
		t.Fatalf("expected error starting a second stream on the same board")
	}

	time.Sleep(2 * time.Millisecond)
	if err := dev.StopDACStream(0); err != nil {
		t.Fatalf("StopDACStream: %v", err)
	}
	if dev.IsDACStreamRunning(0) {
		t.Fatalf("expected DAC stream stopped on board 0")
	}
}

func TestStopDACStreamNotRunning(t *testing.T) {
	dev := wrap()
	if err := dev.StopDACStream(1); err == nil {
		t.Fatalf("expected error stopping a stream that was never started")
	}
}

func TestDACStreamAbortsWhenFifoAbsent(t *testing.T) {
	dev := wrap() // sysStatus.dacCmdSts[0] left at zero value: Present() == false
	cfg := DACStreamConfig{
		Board:     0,
		Commands:  []WaveformCommand{{Trig: false, Value: 1}},
		LoopCount: 1,
	}
	if err := dev.StartDACStream(cfg); err != nil {
		t.Fatalf("StartDACStream: %v", err)
	}
	// The worker observes the absent FIFO and exits on its own, without
	// waiting for a stop request, so it should no longer be running.
	deadline := time.Now().Add(50 * time.Millisecond)
	for dev.IsDACStreamRunning(0) && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if dev.IsDACStreamRunning(0) {
		t.Fatalf("expected DAC stream to have aborted on its own")
	}
	// Having already exited, a subsequent Stop reports it as not running.
	if err := dev.StopDACStream(0); err == nil {
		t.Fatalf("expected error stopping an already-aborted stream")
	}
}

func TestADCCaptureStreamLifecycle(t *testing.T) {
	dev := wrap()
	setFifoStatus(dev.sysStatus.adcDataSts[0], 0)

	dir := t.TempDir()
	cfg := ADCCaptureConfig{Board: 0, File: dir + "/capture.txt"}
	if err := dev.StartADCCaptureStream(cfg); err != nil {
		t.Fatalf("StartADCCaptureStream: %v", err)
	}
	if !dev.IsADCCaptureStreamRunning(0) {
		t.Fatalf("expected ADC capture stream running")
	}
	time.Sleep(2 * time.Millisecond)
	if err := dev.StopADCCaptureStream(0); err != nil {
		t.Fatalf("StopADCCaptureStream: %v", err)
	}
}

func TestADCProgramStreamLifecycle(t *testing.T) {
	dev := wrap()
	setFifoStatus(dev.sysStatus.adcCmdSts[0], 0)

	cfg := ADCProgramConfig{
		Board:     0,
		Commands:  []ADCProgramCommand{{Op: ADCProgTrig, Value: 1}},
		LoopCount: 1 << 30,
	}
	if err := dev.StartADCProgramStream(cfg); err != nil {
		t.Fatalf("StartADCProgramStream: %v", err)
	}
	if !dev.IsADCProgramStreamRunning(0) {
		t.Fatalf("expected ADC program stream running")
	}
	time.Sleep(2 * time.Millisecond)
	if err := dev.StopADCProgramStream(0); err != nil {
		t.Fatalf("StopADCProgramStream: %v", err)
	}
}

func TestStopAllStreams(t *testing.T) {
	dev := wrap()
	for b := 0; b < 8; b++ {
		setFifoStatus(dev.sysStatus.dacCmdSts[b], 0)
		setFifoStatus(dev.sysStatus.adcCmdSts[b], 0)
		setFifoStatus(dev.sysStatus.adcDataSts[b], 0)
	}

	cfgs := make([]DACStreamConfig, 8)
	for b := range cfgs {
		cfgs[b] = DACStreamConfig{
			Board:     b,
			Commands:  []WaveformCommand{{Trig: false, Value: 1}},
			LoopCount: 10000,
		}
	}
	if err := dev.StartAllDACStreams(cfgs); err != nil {
		t.Fatalf("StartAllDACStreams: %v", err)
	}
	for b := 0; b < 8; b++ {
		if err := dev.StartADCProgramStream(ADCProgramConfig{
			Board:     b,
			Commands:  []ADCProgramCommand{{Op: ADCProgTrig, Value: 1}},
			LoopCount: 10000,
		}); err != nil {
			t.Fatalf("StartADCProgramStream(%d): %v", b, err)
		}
	}

	time.Sleep(2 * time.Millisecond)
	if err := dev.StopAllStreams(); err != nil {
		t.Fatalf("StopAllStreams: %v", err)
	}
	for b := 0; b < 8; b++ {
		if dev.IsDACStreamRunning(b) {
			t.Errorf("DAC stream %d still running after StopAllStreams", b)
		}
		if dev.IsADCProgramStreamRunning(b) {
			t.Errorf("ADC program stream %d still running after StopAllStreams", b)
		}
	}
}
