// Copyright 2026 The shimctl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shim

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ADCProgOp names the four line kinds an ADC program file can contain.
type ADCProgOp int

const (
	ADCProgLoop ADCProgOp = iota
	ADCProgTrig
	ADCProgDelay
	ADCProgOrder
)

// ADCProgramCommand is one parsed line of an ADC program file.
type ADCProgramCommand struct {
	Op    ADCProgOp
	Value uint32  // for Loop/Trig/Delay
	Order [8]int  // for Order
}

func (c ADCProgramCommand) encode() (uint32, error) {
	switch c.Op {
	case ADCProgLoop:
		return EncodeADCLoopNext(c.Value)
	case ADCProgTrig:
		return EncodeADCNoOp(true, false, c.Value)
	case ADCProgDelay:
		return EncodeADCNoOp(false, false, c.Value)
	case ADCProgOrder:
		return EncodeADCSetOrder(c.Order)
	default:
		return 0, &ConfigError{Msg: "unknown ADC program opcode"}
	}
}

const maxADCProgramValue = 0x1FFFFFF // 25 bits, matches parse_adc_command_file's own bound.

// ParseADCProgramFile reads a line-oriented ADC program: blank lines and
// lines starting with '#' are ignored. Valid forms are "L <count>",
// "T <value>", "D <value>", and "O <s0>..<s7>" with each order field in
// [0,8). A file with zero significant lines is a ParseError.
func ParseADCProgramFile(path string) ([]ADCProgramCommand, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IoError{Op: "open ADC program file", Err: err}
	}
	defer f.Close()
	return parseADCProgram(f)
}

func parseADCProgram(r io.Reader) ([]ADCProgramCommand, error) {
	var cmds []ADCProgramCommand
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		cmd, err := parseADCProgramLine(line, lineNo)
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, cmd)
	}
	if err := sc.Err(); err != nil {
		return nil, &IoError{Op: "read ADC program file", Err: err}
	}
	if len(cmds) == 0 {
		return nil, &ParseError{Line: 0, Msg: "empty program"}
	}
	return cmds, nil
}

func parseADCProgramLine(line string, lineNo int) (ADCProgramCommand, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ADCProgramCommand{}, &ParseError{Line: lineNo, Msg: "empty line"}
	}

	switch fields[0] {
	case "L", "T", "D":
		if len(fields) != 2 {
			return ADCProgramCommand{}, &ParseError{Line: lineNo, Msg: fmt.Sprintf("wrong field count %d (want 2)", len(fields))}
		}
		value, err := strconv.ParseUint(fields[1], 10, 32)
		if err != nil {
			return ADCProgramCommand{}, &ParseError{Line: lineNo, Msg: fmt.Sprintf("invalid value %q", fields[1])}
		}
		op := ADCProgTrig
		switch fields[0] {
		case "L":
			op = ADCProgLoop
			if value < 1 {
				return ADCProgramCommand{}, &ParseError{Line: lineNo, Msg: "loop count must be >= 1"}
			}
		case "D":
			op = ADCProgDelay
		}
		if value > maxADCProgramValue {
			return ADCProgramCommand{}, &ParseError{Line: lineNo, Msg: fmt.Sprintf("value %d out of range (max %d)", value, maxADCProgramValue)}
		}
		return ADCProgramCommand{Op: op, Value: uint32(value)}, nil

	case "O":
		if len(fields) != 9 {
			return ADCProgramCommand{}, &ParseError{Line: lineNo, Msg: fmt.Sprintf("wrong field count %d (want 9)", len(fields))}
		}
		var order [8]int
		for i := 0; i < 8; i++ {
			v, err := strconv.Atoi(fields[1+i])
			if err != nil || v < 0 || v > 7 {
				return ADCProgramCommand{}, &ParseError{Line: lineNo, Msg: fmt.Sprintf("order field %d value %q out of range", i, fields[1+i])}
			}
			order[i] = v
		}
		return ADCProgramCommand{Op: ADCProgOrder, Order: order}, nil

	default:
		return ADCProgramCommand{}, &ParseError{Line: lineNo, Msg: fmt.Sprintf("unknown opcode char %q", fields[0])}
	}
}
