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

const maxWaveformValue = 0x1FFFFFF // 25 bits, matches parse_waveform_file's own bound.

// WaveformCommand is one parsed line of a waveform file: either a bare
// delay/trigger no-op, or a full 8-channel write-update. The continue bit
// is assigned by the streaming worker, not by the parser.
type WaveformCommand struct {
	Trig        bool // true for "T" lines, false for "D" lines.
	Value       uint32
	HasChannels bool
	Channels    [8]int16
}

// encode returns the word(s) to push for this command with the given
// continue bit, and how many of the returned words are meaningful.
func (c WaveformCommand) encode(cont bool) ([5]uint32, int, error) {
	var words [5]uint32
	if !c.HasChannels {
		w, err := EncodeDACNoOp(c.Trig, cont, false, c.Value)
		words[0] = w
		return words, 1, err
	}
	full, err := EncodeDACWriteUpdate(c.Trig, cont, true, c.Value, c.Channels)
	if err != nil {
		return words, 0, err
	}
	return full, 5, nil
}

// ParseWaveformFile reads a line-oriented waveform program: blank lines
// and lines starting with '#' are ignored. Each significant line is
// "D <value>", "T <value>", "D <value> <c0>..<c7>", or
// "T <value> <c0>..<c7>", channels as signed decimals in
// [-32767,32767]. A file with zero significant lines is a ParseError.
func ParseWaveformFile(path string) ([]WaveformCommand, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IoError{Op: "open waveform file", Err: err}
	}
	defer f.Close()
	return parseWaveform(f)
}

func parseWaveform(r io.Reader) ([]WaveformCommand, error) {
	var cmds []WaveformCommand
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		cmd, err := parseWaveformLine(line, lineNo)
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, cmd)
	}
	if err := sc.Err(); err != nil {
		return nil, &IoError{Op: "read waveform file", Err: err}
	}
	if len(cmds) == 0 {
		return nil, &ParseError{Line: 0, Msg: "empty program"}
	}
	return cmds, nil
}

func parseWaveformLine(line string, lineNo int) (WaveformCommand, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return WaveformCommand{}, &ParseError{Line: lineNo, Msg: "empty line"}
	}

	var trig bool
	switch fields[0] {
	case "D":
		trig = false
	case "T":
		trig = true
	default:
		return WaveformCommand{}, &ParseError{Line: lineNo, Msg: fmt.Sprintf("unknown opcode char %q", fields[0])}
	}

	if len(fields) != 2 && len(fields) != 10 {
		return WaveformCommand{}, &ParseError{Line: lineNo, Msg: fmt.Sprintf("wrong field count %d (want 2 or 10)", len(fields))}
	}

	value, err := strconv.ParseUint(fields[1], 10, 32)
	if err != nil {
		return WaveformCommand{}, &ParseError{Line: lineNo, Msg: fmt.Sprintf("invalid value %q", fields[1])}
	}
	if value > maxWaveformValue {
		return WaveformCommand{}, &ParseError{Line: lineNo, Msg: fmt.Sprintf("value %d out of range (max %d)", value, maxWaveformValue)}
	}

	cmd := WaveformCommand{Trig: trig, Value: uint32(value)}
	if len(fields) == 2 {
		return cmd, nil
	}

	cmd.HasChannels = true
	for i := 0; i < 8; i++ {
		v, err := strconv.ParseInt(fields[2+i], 10, 32)
		if err != nil || v < -32767 || v > 32767 {
			return WaveformCommand{}, &ParseError{Line: lineNo, Msg: fmt.Sprintf("channel %d value %q out of range", i, fields[2+i])}
		}
		cmd.Channels[i] = int16(v)
	}
	return cmd, nil
}
