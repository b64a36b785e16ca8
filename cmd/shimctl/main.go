// Copyright 2026 The shimctl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command shimctl drives the shim data-acquisition fabric: turning the
// system on and off, hard-resetting it, printing FIFO status, and
// starting or stopping the streaming waveform, ADC-capture, and
// ADC-program workers. It has no subcommand for direct DAC/ADC/trigger
// commands.
package main // import "github.com/revdshim/shimctl/cmd/shimctl"

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/revdshim/shimctl"
	"github.com/revdshim/shimctl/shim"
)

func main() {
	log.SetPrefix("shimctl: ")
	log.SetFlags(0)

	if err := xmain(os.Args[1:]); err != nil {
		log.Fatalf("%+v", err)
	}
}

func xmain(args []string) error {
	fs := flag.NewFlagSet("shimctl", flag.ContinueOnError)
	confPath := fs.String("conf", defaultConfPath(), "path to shimctl YAML config")
	devPath := fs.String("dev", "", "override the MMIO device path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	rest := fs.Args()
	if len(rest) == 0 {
		usage()
		return fmt.Errorf("shimctl: missing command")
	}
	if rest[0] == "version" {
		return runVersion()
	}

	cfg, err := loadConfig(*confPath)
	if err != nil {
		return fmt.Errorf("could not load config %q: %w", *confPath, err)
	}
	if *devPath != "" {
		cfg.DevPath = *devPath
	}

	dev, err := shim.Open(shim.WithDevPath(cfg.DevPath))
	if err != nil {
		return fmt.Errorf("could not open shim device: %w", err)
	}
	defer dev.Close()

	switch cmd := rest[0]; cmd {
	case "on":
		return dev.TurnOn()
	case "off":
		return dev.TurnOff()
	case "reset":
		return dev.HardReset()
	case "status":
		return runStatus(dev)
	case "dac-waveform":
		return runDACWaveform(dev, cfg.Home, rest[1:])
	case "adc-capture":
		return runADCCapture(dev, cfg.Home, rest[1:])
	case "adc-program":
		return runADCProgram(dev, cfg.Home, rest[1:])
	case "stop-all":
		return dev.StopAllStreams()
	default:
		usage()
		return fmt.Errorf("shimctl: unknown command %q", cmd)
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `usage: shimctl [-conf path] [-dev path] <command> [args]

Commands:
  on                turn the system on
  off               turn the system off
  reset             stop every stream and hard-reset the fabric
  status            print hardware and FIFO status
  version           print the shimctl build version
  dac-waveform      stream a waveform file to a DAC board
  adc-capture       stream ADC samples from a board to a file
  adc-program       stream an ADC program to a board
  stop-all          stop every running stream
`)
}

func defaultConfPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".shimctl.yaml"
	}
	return filepath.Join(home, ".shimctl.yaml")
}

func runStatus(dev *shim.Device) error {
	fmt.Printf("hw_status: %#x\n", dev.HwStatus())
	for b := 0; b < 8; b++ {
		st, err := dev.DACCmdFifoStatus(b)
		if err != nil {
			return err
		}
		fmt.Printf("dac[%d].cmd: present=%v words=%d\n", b, st.Present(), st.WordCount())
	}
	for b := 0; b < 8; b++ {
		cst, err := dev.ADCCmdFifoStatus(b)
		if err != nil {
			return err
		}
		dst, err := dev.ADCDataFifoStatus(b)
		if err != nil {
			return err
		}
		fmt.Printf("adc[%d].cmd: present=%v words=%d  adc[%d].data: present=%v words=%d\n",
			b, cst.Present(), cst.WordCount(), b, dst.Present(), dst.WordCount())
	}
	fmt.Printf("trig.cmd: present=%v words=%d\n", dev.TrigCmdFifoStatus().Present(), dev.TrigCmdFifoStatus().WordCount())
	fmt.Printf("trig.data: present=%v words=%d\n", dev.TrigDataFifoStatus().Present(), dev.TrigDataFifoStatus().WordCount())
	return nil
}

func runVersion() error {
	version, sum := shimctl.Version()
	if version == "" {
		fmt.Println("shimctl: version unknown (not built with module support)")
		return nil
	}
	fmt.Printf("shimctl %s %s\n", version, sum)
	return nil
}

func runDACWaveform(dev *shim.Device, home string, args []string) error {
	fs := flag.NewFlagSet("dac-waveform", flag.ExitOnError)
	board := fs.Int("board", 0, "DAC board index [0,8)")
	file := fs.String("file", "", "waveform file path")
	loop := fs.Int("loop", 1, "loop count")
	fs.Parse(args)

	cmds, err := shim.ParseWaveformFile(shim.ResolvePath(home, *file))
	if err != nil {
		return err
	}
	return dev.StartDACStream(shim.DACStreamConfig{Board: *board, Commands: cmds, LoopCount: *loop})
}

func runADCCapture(dev *shim.Device, home string, args []string) error {
	fs := flag.NewFlagSet("adc-capture", flag.ExitOnError)
	board := fs.Int("board", 0, "ADC board index [0,8)")
	file := fs.String("file", "", "capture output file path")
	fs.Parse(args)

	return dev.StartADCCaptureStream(shim.ADCCaptureConfig{Board: *board, File: shim.ResolvePath(home, *file)})
}

func runADCProgram(dev *shim.Device, home string, args []string) error {
	fs := flag.NewFlagSet("adc-program", flag.ExitOnError)
	board := fs.Int("board", 0, "ADC board index [0,8)")
	file := fs.String("file", "", "ADC program file path")
	loop := fs.Int("loop", 1, "loop count")
	simple := fs.Bool("simple", false, "simple-mode: unroll loop-next commands host-side")
	fs.Parse(args)

	cmds, err := shim.ParseADCProgramFile(shim.ResolvePath(home, *file))
	if err != nil {
		return err
	}
	return dev.StartADCProgramStream(shim.ADCProgramConfig{
		Board:      *board,
		Commands:   cmds,
		LoopCount:  *loop,
		SimpleMode: *simple,
	})
}
