// Copyright 2026 The shimctl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shim

import "github.com/revdshim/shimctl/shim/internal/regs"

// FifoStatus is the decoded form of a raw FIFO status word: the three
// predicates and one projection the core contracts upon, per the fabric's
// status-register convention (bit 31 present, bits [10:0] occupancy).
type FifoStatus uint32

func decodeFifoStatus(raw uint32) FifoStatus { return FifoStatus(raw) }

// Present reports whether this FIFO exists in the current fabric build.
func (s FifoStatus) Present() bool {
	return s&(1<<regs.FifoStatusPresentBit) != 0
}

// WordCount is the current occupancy, in 32-bit words.
func (s FifoStatus) WordCount() int {
	return int(s) & regs.FifoStatusCountMask
}

// Empty reports whether the FIFO currently holds no words.
func (s FifoStatus) Empty() bool {
	return s.WordCount() == 0
}

// Free returns the number of words that can be pushed before the FIFO is
// full, given the hardware convention that one slot is always reserved.
func (s FifoStatus) Free() int {
	free := regs.FifoCapacity - s.WordCount() - 1
	if free < 0 {
		return 0
	}
	return free
}

// Full reports whether zero free slots remain.
func (s FifoStatus) Full() bool {
	return s.Free() == 0
}

// pushWords writes words to fifo's data register in order, after the
// caller has already verified sufficient free space. It never checks
// status itself: callers own the precondition so a multi-word command
// commits atomically from the caller's point of view.
func pushWords(fifo reg32, words ...uint32) {
	for _, w := range words {
		fifo.w(w)
	}
}

// popWord reads the next word from a data FIFO. Callers must have already
// verified the FIFO is not empty.
func popWord(fifo reg32) uint32 {
	return fifo.r()
}

// pushCommand validates free space against the FIFO's current status and
// pushes words, or returns a FifoStateError.
func pushCommand(status reg32, fifo reg32, words ...uint32) error {
	st := decodeFifoStatus(status.r())
	if !st.Present() {
		return &FifoStateError{Msg: "fifo not present"}
	}
	if st.Free() < len(words) {
		return &FifoStateError{Msg: "insufficient free space for command"}
	}
	pushWords(fifo, words...)
	return nil
}

// popData validates the FIFO is non-empty and pops one word.
func popData(status reg32, fifo reg32) (uint32, error) {
	st := decodeFifoStatus(status.r())
	if !st.Present() {
		return 0, &FifoStateError{Msg: "fifo not present"}
	}
	if st.Empty() {
		return 0, &FifoStateError{Msg: "fifo empty"}
	}
	return popWord(fifo), nil
}
