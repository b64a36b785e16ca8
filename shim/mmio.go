// Copyright 2026 The shimctl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shim

import (
	"github.com/revdshim/shimctl/internal/mmap"
	"github.com/revdshim/shimctl/shim/internal/regs"
)

// region is a mapped physical address window together with the byte
// offset of its named base within that window (the window itself starts
// on a page boundary, which need not coincide with the region's base).
type region struct {
	h    *mmap.Handle
	base int64
}

func openRegion(devPath string, physBase uintptr, words int) (*region, error) {
	h, off, err := mmap.Open(devPath, physBase, words, regs.PageSize)
	if err != nil {
		return nil, &IoError{Op: "mmap region", Err: err}
	}
	return &region{h: h, base: off}, nil
}

func (r *region) reg(wordOffset int) reg32 {
	return newReg32(r.h, r.base+int64(wordOffset)*4)
}

func (r *region) close() error {
	return r.h.Close()
}
