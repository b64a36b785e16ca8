// Copyright 2026 The shimctl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shim

import (
	"encoding/binary"
	"fmt"
	"io"
)

// rwer is the minimal mapped-window interface a register or FIFO binding
// needs: random-access byte reads and writes into the MMIO window.
type rwer interface {
	io.ReaderAt
	io.WriterAt
}

// reg32 is a volatile 32-bit register binding. r and w are function
// values rather than a stored offset so that tests can swap them out for
// canned sequences without a real mapping; see wrap() in fake_test.go.
type reg32 struct {
	r func() uint32
	w func(v uint32)
}

// newReg32 binds r/w to a fixed offset into rw. Status registers in
// particular may be read concurrently by a stream worker and an
// orchestrator call on the same board, so each read or write uses a
// stack-local scratch buffer rather than one shared across calls.
func newReg32(rw rwer, offset int64) reg32 {
	return reg32{
		r: func() uint32 { return readU32(rw, offset) },
		w: func(v uint32) { writeU32(rw, offset, v) },
	}
}

func readU32(r io.ReaderAt, offset int64) uint32 {
	var buf [4]byte
	if _, err := r.ReadAt(buf[:], offset); err != nil {
		panic(fmt.Sprintf("shim: register read out of bounds at offset %d", offset))
	}
	return binary.LittleEndian.Uint32(buf[:])
}

func writeU32(w io.WriterAt, offset int64, v uint32) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	if _, err := w.WriteAt(buf[:], offset); err != nil {
		panic(fmt.Sprintf("shim: register write out of bounds at offset %d", offset))
	}
}
