// Copyright 2026 The shimctl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shim

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/revdshim/shimctl/shim/internal/regs"
	"golang.org/x/sync/errgroup"
)

const backpressureSleep = 100 * time.Microsecond
const adcProgramBackpressureSleep = time.Millisecond

// streamHandle is the orchestrator's joinable reference to one running
// worker. stopRequest is a one-way latch set by the orchestrator and
// polled by the worker; running is cleared by the worker just before it
// returns. Both fields are atomic so the "is this stream active?"
// predicate never races with the worker's exit.
type streamHandle struct {
	stopRequest atomic.Bool
	running     atomic.Bool
	wg          sync.WaitGroup
	lastErr     error
}

func (h *streamHandle) stop() {
	h.stopRequest.Store(true)
	h.wg.Wait()
}

// DACStreamConfig describes one DAC-playback invocation.
type DACStreamConfig struct {
	Board     int
	Commands  []WaveformCommand
	LoopCount int
}

// StartDACStream begins streaming parsed waveform commands into board b's
// DAC command FIFO. It returns StreamStateError if a stream is already
// running on that board.
func (dev *Device) StartDACStream(cfg DACStreamConfig) error {
	if err := checkBoard(cfg.Board, regs.NumDACBoards); err != nil {
		return err
	}
	if cfg.LoopCount < 1 {
		return &ConfigError{Msg: "loop count must be >= 1"}
	}
	if len(cfg.Commands) == 0 {
		return &ConfigError{Msg: "empty command list"}
	}

	dev.streamMu.Lock()
	defer dev.streamMu.Unlock()
	if dev.dacSt[cfg.Board] != nil && dev.dacSt[cfg.Board].running.Load() {
		return &StreamStateError{Msg: "DAC stream already running on this board"}
	}

	h := &streamHandle{}
	h.running.Store(true)
	dev.dacSt[cfg.Board] = h
	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		defer h.running.Store(false)
		h.lastErr = dev.dacPlaybackLoop(cfg, h)
	}()
	return nil
}

// StopDACStream requests the DAC stream on board b to exit and joins it.
// Stopping a stream that is not running is a no-op, reported as an
// informational StreamStateError.
func (dev *Device) StopDACStream(b int) error {
	if err := checkBoard(b, regs.NumDACBoards); err != nil {
		return err
	}
	dev.streamMu.Lock()
	h := dev.dacSt[b]
	dev.streamMu.Unlock()
	if h == nil || !h.running.Load() {
		return &StreamStateError{Msg: "DAC stream not running on this board"}
	}
	h.stop()
	return h.lastErr
}

// IsDACStreamRunning reports whether board b currently has an active DAC
// playback stream.
func (dev *Device) IsDACStreamRunning(b int) bool {
	dev.streamMu.Lock()
	h := dev.dacSt[b]
	dev.streamMu.Unlock()
	return h != nil && h.running.Load()
}

func (dev *Device) dacPlaybackLoop(cfg DACStreamConfig, h *streamHandle) error {
	status := dev.sysStatus.dacCmdSts[cfg.Board]
	fifo := dev.dacFifo[cfg.Board]

	for loop := 0; loop < cfg.LoopCount; loop++ {
		for ci, cmd := range cfg.Commands {
			last := loop == cfg.LoopCount-1 && ci == len(cfg.Commands)-1
			cont := !last

			words, needed, err := cmd.encode(cont)
			if err != nil {
				return err
			}

			for {
				if h.stopRequest.Load() {
					return nil
				}
				st := decodeFifoStatus(status.r())
				if !st.Present() {
					return &WorkerAbort{Board: cfg.Board, Direction: "dac", Err: &FifoStateError{Msg: "fifo not present"}}
				}
				if st.Free() >= needed {
					pushWords(fifo, words[:needed]...)
					break
				}
				time.Sleep(backpressureSleep)
				if h.stopRequest.Load() {
					return nil
				}
			}
		}
	}
	return nil
}

// ADCCaptureConfig describes one ADC-capture-to-file invocation.
type ADCCaptureConfig struct {
	Board int
	File  string
}

// StartADCCaptureStream begins popping board b's ADC data FIFO and
// appending decoded samples to File, in batches of a whole multiple of
// four words.
func (dev *Device) StartADCCaptureStream(cfg ADCCaptureConfig) error {
	if err := checkBoard(cfg.Board, regs.NumADCBoards); err != nil {
		return err
	}
	if cfg.File == "" {
		return &ConfigError{Msg: "empty capture file path"}
	}

	dev.streamMu.Lock()
	defer dev.streamMu.Unlock()
	if dev.adcCapSt[cfg.Board] != nil && dev.adcCapSt[cfg.Board].running.Load() {
		return &StreamStateError{Msg: "ADC capture stream already running on this board"}
	}

	h := &streamHandle{}
	h.running.Store(true)
	dev.adcCapSt[cfg.Board] = h
	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		defer h.running.Store(false)
		h.lastErr = dev.adcCaptureLoop(cfg, h)
	}()
	return nil
}

// StopADCCaptureStream requests board b's ADC capture stream to exit and
// joins it.
func (dev *Device) StopADCCaptureStream(b int) error {
	if err := checkBoard(b, regs.NumADCBoards); err != nil {
		return err
	}
	dev.streamMu.Lock()
	h := dev.adcCapSt[b]
	dev.streamMu.Unlock()
	if h == nil || !h.running.Load() {
		return &StreamStateError{Msg: "ADC capture stream not running on this board"}
	}
	h.stop()
	return h.lastErr
}

// IsADCCaptureStreamRunning reports whether board b currently has an
// active ADC capture stream.
func (dev *Device) IsADCCaptureStreamRunning(b int) bool {
	dev.streamMu.Lock()
	h := dev.adcCapSt[b]
	dev.streamMu.Unlock()
	return h != nil && h.running.Load()
}

func (dev *Device) adcCaptureLoop(cfg ADCCaptureConfig, h *streamHandle) error {
	status := dev.sysStatus.adcDataSts[cfg.Board]
	fifo := dev.adcData[cfg.Board]

	f, err := openAppend(cfg.File)
	if err != nil {
		return &IoError{Op: "open capture file", Err: err}
	}
	defer f.Close()

	for {
		if h.stopRequest.Load() {
			return nil
		}
		st := decodeFifoStatus(status.r())
		if !st.Present() {
			return &WorkerAbort{Board: cfg.Board, Direction: "adc-capture", Err: &FifoStateError{Msg: "fifo not present"}}
		}
		wc := st.WordCount()
		batch := (wc / 4) * 4
		if batch == 0 {
			time.Sleep(backpressureSleep)
			continue
		}
		var lines []int32
		for i := 0; i < batch; i++ {
			w := popWord(fifo)
			lo, hi := DecodeADCSamples(w)
			lines = append(lines, lo, hi)
		}
		if err := writeDecimalLines(f, lines); err != nil {
			return &IoError{Op: "write capture file", Err: err}
		}
	}
}

// ADCProgramConfig describes one ADC-program-stream invocation.
type ADCProgramConfig struct {
	Board      int
	Commands   []ADCProgramCommand
	LoopCount  int
	SimpleMode bool
}

// StartADCProgramStream begins streaming a parsed ADC program into board
// b's ADC command FIFO.
func (dev *Device) StartADCProgramStream(cfg ADCProgramConfig) error {
	if err := checkBoard(cfg.Board, regs.NumADCBoards); err != nil {
		return err
	}
	if cfg.LoopCount < 1 {
		return &ConfigError{Msg: "loop count must be >= 1"}
	}
	if len(cfg.Commands) == 0 {
		return &ConfigError{Msg: "empty program"}
	}

	dev.streamMu.Lock()
	defer dev.streamMu.Unlock()
	if dev.adcProgSt[cfg.Board] != nil && dev.adcProgSt[cfg.Board].running.Load() {
		return &StreamStateError{Msg: "ADC program stream already running on this board"}
	}

	h := &streamHandle{}
	h.running.Store(true)
	dev.adcProgSt[cfg.Board] = h
	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		defer h.running.Store(false)
		h.lastErr = dev.adcProgramLoop(cfg, h)
	}()
	return nil
}

// StopADCProgramStream requests board b's ADC program stream to exit and
// joins it.
func (dev *Device) StopADCProgramStream(b int) error {
	if err := checkBoard(b, regs.NumADCBoards); err != nil {
		return err
	}
	dev.streamMu.Lock()
	h := dev.adcProgSt[b]
	dev.streamMu.Unlock()
	if h == nil || !h.running.Load() {
		return &StreamStateError{Msg: "ADC program stream not running on this board"}
	}
	h.stop()
	return h.lastErr
}

// IsADCProgramStreamRunning reports whether board b currently has an
// active ADC program stream.
func (dev *Device) IsADCProgramStreamRunning(b int) bool {
	dev.streamMu.Lock()
	h := dev.adcProgSt[b]
	dev.streamMu.Unlock()
	return h != nil && h.running.Load()
}

func (dev *Device) adcProgramLoop(cfg ADCProgramConfig, h *streamHandle) error {
	status := dev.sysStatus.adcCmdSts[cfg.Board]
	fifo := dev.adcCmd[cfg.Board]

	cmds := cfg.Commands
	if cfg.SimpleMode {
		cmds = unrollSimpleMode(cmds)
	}

	push := func(word uint32) error {
		for {
			if h.stopRequest.Load() {
				return errStopped
			}
			st := decodeFifoStatus(status.r())
			if !st.Present() {
				return &WorkerAbort{Board: cfg.Board, Direction: "adc-program", Err: &FifoStateError{Msg: "fifo not present"}}
			}
			if !st.Full() {
				pushWords(fifo, word)
				return nil
			}
			time.Sleep(adcProgramBackpressureSleep)
		}
	}

	for loop := 0; loop < cfg.LoopCount; loop++ {
		for _, cmd := range cmds {
			word, err := cmd.encode()
			if err != nil {
				return err
			}
			if err := push(word); err != nil {
				if err == errStopped {
					return nil
				}
				return err
			}
		}
	}
	return nil
}

// unrollSimpleMode expands native L <count> loop-next commands by
// repeating the command that follows count times host-side, per
// simple-mode semantics.
func unrollSimpleMode(cmds []ADCProgramCommand) []ADCProgramCommand {
	var out []ADCProgramCommand
	i := 0
	for i < len(cmds) {
		c := cmds[i]
		if c.Op == ADCProgLoop && i+1 < len(cmds) {
			next := cmds[i+1]
			for n := uint32(0); n < c.Value; n++ {
				out = append(out, next)
			}
			i += 2
			continue
		}
		out = append(out, c)
		i++
	}
	return out
}

var errStopped = &StreamStateError{Msg: "stopped"}

// StartAllDACStreams starts a DAC stream on every board named by cfgs,
// joining the first error via errgroup.
func (dev *Device) StartAllDACStreams(cfgs []DACStreamConfig) error {
	var g errgroup.Group
	for _, cfg := range cfgs {
		cfg := cfg
		g.Go(func() error { return dev.StartDACStream(cfg) })
	}
	return g.Wait()
}

// StopAllDACStreams stops every currently-running DAC stream.
func (dev *Device) StopAllDACStreams() error {
	var g errgroup.Group
	for b := 0; b < regs.NumDACBoards; b++ {
		b := b
		if !dev.IsDACStreamRunning(b) {
			continue
		}
		g.Go(func() error { return dev.StopDACStream(b) })
	}
	return g.Wait()
}

// StopAllADCStreams stops every currently-running ADC capture and program
// stream.
func (dev *Device) StopAllADCStreams() error {
	var g errgroup.Group
	for b := 0; b < regs.NumADCBoards; b++ {
		b := b
		if dev.IsADCCaptureStreamRunning(b) {
			g.Go(func() error { return dev.StopADCCaptureStream(b) })
		}
		if dev.IsADCProgramStreamRunning(b) {
			g.Go(func() error { return dev.StopADCProgramStream(b) })
		}
	}
	return g.Wait()
}

// StopAllStreams stops every running DAC and ADC stream across all
// boards, used by HardReset.
func (dev *Device) StopAllStreams() error {
	var g errgroup.Group
	g.Go(dev.StopAllDACStreams)
	g.Go(dev.StopAllADCStreams)
	return g.Wait()
}
