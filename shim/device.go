// Copyright 2026 The shimctl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package shim implements the host-side register, FIFO, command-codec, and
// streaming layers for the shim data-acquisition fabric: eight DAC boards,
// eight ADC boards, a trigger engine, a system-control bank, a system-
// status bank, and an SPI clock controller, all reachable through a
// memory-mapped physical address window.
package shim // import "github.com/revdshim/shimctl/shim"

import (
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/revdshim/shimctl/shim/internal/regs"
)

// Device owns the MMIO mapping and every register/FIFO binding derived
// from it. It is safe for concurrent use: status reads are pure volatile
// loads, and each FIFO has a single host-side writer or reader by
// construction (enforced by the streaming-state bookkeeping in stream.go).
type Device struct {
	msg *log.Logger

	ctrl   *region
	status *region
	clk    *region
	dac    [regs.NumDACBoards]*region
	adc    [regs.NumADCBoards]*region
	trig   *region

	sysCtrl   sysCtrlRegs
	sysStatus sysStatusRegs
	spiClock  spiClockRegs

	dacFifo  [regs.NumDACBoards]reg32
	adcCmd   [regs.NumADCBoards]reg32
	adcData  [regs.NumADCBoards]reg32
	trigFifo reg32

	streamMu  sync.Mutex
	dacSt     [regs.NumDACBoards]*streamHandle
	adcCapSt  [regs.NumADCBoards]*streamHandle
	adcProgSt [regs.NumADCBoards]*streamHandle
}

type sysCtrlRegs struct {
	systemEnable reg32
	bufferReset  reg32
	intThreshAvg reg32
	intWindow    reg32
	intEnable    reg32
	bootTestSkip reg32
}

type sysStatusRegs struct {
	hwStatus    reg32
	dacCmdSts   [regs.NumDACBoards]reg32
	adcCmdSts   [regs.NumADCBoards]reg32
	adcDataSts  [regs.NumADCBoards]reg32
	trigCmdSts  reg32
	trigDataSts reg32
}

type spiClockRegs struct {
	mosiPolarity reg32
	misoPolarity reg32
}

// Option configures a Device at construction time.
type Option func(*config)

type config struct {
	devPath string
	logger  *log.Logger
}

func newConfig() config {
	return config{
		devPath: "/dev/mem",
		logger:  log.New(os.Stderr, "shim: ", 0),
	}
}

// WithDevPath overrides the backing MMIO device, "/dev/mem" by default.
func WithDevPath(path string) Option {
	return func(c *config) { c.devPath = path }
}

// WithLogger overrides the Device's logger.
func WithLogger(l *log.Logger) Option {
	return func(c *config) { c.logger = l }
}

// Open maps every region of the fabric's physical address space and
// returns a ready-to-use Device. Mapping failures are fatal: the caller
// should treat a non-nil error as unrecoverable at startup.
func Open(opts ...Option) (*Device, error) {
	cfg := newConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	dev := &Device{msg: cfg.logger}

	var err error
	dev.ctrl, err = openRegion(cfg.devPath, regs.SysCtrlBase, regs.SysCtrlWordCount)
	if err != nil {
		return nil, fmt.Errorf("shim: could not map system-control region: %w", err)
	}
	dev.status, err = openRegion(cfg.devPath, regs.SysStatusBase, regs.SysStatusWordCount)
	if err != nil {
		dev.ctrl.close()
		return nil, fmt.Errorf("shim: could not map system-status region: %w", err)
	}
	dev.clk, err = openRegion(cfg.devPath, regs.SpiClockBase, regs.SpiClockWordCount)
	if err != nil {
		dev.ctrl.close()
		dev.status.close()
		return nil, fmt.Errorf("shim: could not map SPI-clock region: %w", err)
	}

	for b := 0; b < regs.NumDACBoards; b++ {
		dev.dac[b], err = openRegion(cfg.devPath, regs.DACFifoAddr(b), regs.FifoCapacity)
		if err != nil {
			dev.closeMapped()
			return nil, fmt.Errorf("shim: could not map DAC FIFO board=%d: %w", b, err)
		}
	}
	for b := 0; b < regs.NumADCBoards; b++ {
		dev.adc[b], err = openRegion(cfg.devPath, regs.ADCFifoAddr(b), regs.FifoCapacity)
		if err != nil {
			dev.closeMapped()
			return nil, fmt.Errorf("shim: could not map ADC FIFO board=%d: %w", b, err)
		}
	}
	dev.trig, err = openRegion(cfg.devPath, regs.TrigFifoAddr(0), regs.FifoCapacity)
	if err != nil {
		dev.closeMapped()
		return nil, fmt.Errorf("shim: could not map trigger FIFO: %w", err)
	}

	dev.bind()
	return dev, nil
}

func (dev *Device) closeMapped() {
	for _, r := range []*region{dev.ctrl, dev.status, dev.clk} {
		if r != nil {
			r.close()
		}
	}
	for _, r := range dev.dac {
		if r != nil {
			r.close()
		}
	}
	for _, r := range dev.adc {
		if r != nil {
			r.close()
		}
	}
	if dev.trig != nil {
		dev.trig.close()
	}
}

func (dev *Device) bind() {
	dev.sysCtrl = sysCtrlRegs{
		systemEnable: dev.ctrl.reg(regs.SystemEnableOffset),
		bufferReset:  dev.ctrl.reg(regs.BufferResetOffset),
		intThreshAvg: dev.ctrl.reg(regs.IntegratorThresholdAverageOffset),
		intWindow:    dev.ctrl.reg(regs.IntegratorWindowOffset),
		intEnable:    dev.ctrl.reg(regs.IntegratorEnableOffset),
		bootTestSkip: dev.ctrl.reg(regs.BootTestSkipOffset),
	}

	dev.sysStatus.hwStatus = dev.status.reg(regs.HwStatusOffset)
	dev.sysStatus.trigCmdSts = dev.status.reg(regs.TrigCmdFifoStatusOffset)
	dev.sysStatus.trigDataSts = dev.status.reg(regs.TrigDataFifoStatusOffset)
	for b := 0; b < regs.NumDACBoards; b++ {
		dev.sysStatus.dacCmdSts[b] = dev.status.reg(regs.DACCmdFifoStatusOffset(b))
	}
	for b := 0; b < regs.NumADCBoards; b++ {
		dev.sysStatus.adcCmdSts[b] = dev.status.reg(regs.ADCCmdFifoStatusOffset(b))
		dev.sysStatus.adcDataSts[b] = dev.status.reg(regs.ADCDataFifoStatusOffset(b))
	}

	dev.spiClock = spiClockRegs{
		mosiPolarity: dev.clk.reg(regs.MosiPolarityOffset),
		misoPolarity: dev.clk.reg(regs.MisoPolarityOffset),
	}

	for b := 0; b < regs.NumDACBoards; b++ {
		dev.dacFifo[b] = dev.dac[b].reg(0)
	}
	for b := 0; b < regs.NumADCBoards; b++ {
		dev.adcCmd[b] = dev.adc[b].reg(0)
		dev.adcData[b] = dev.adc[b].reg(0)
	}
	dev.trigFifo = dev.trig.reg(0)
}

// Close unmaps every region. It is safe to call once after all streams
// have been stopped.
func (dev *Device) Close() error {
	var firstErr error
	note := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	note(dev.ctrl.close())
	note(dev.status.close())
	note(dev.clk.close())
	for _, r := range dev.dac {
		note(r.close())
	}
	for _, r := range dev.adc {
		note(r.close())
	}
	note(dev.trig.close())
	return firstErr
}

func checkBoard(b, n int) error {
	if b < 0 || b >= n {
		return &ConfigError{Msg: fmt.Sprintf("board index %d out of range [0,%d)", b, n)}
	}
	return nil
}
