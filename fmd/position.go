// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package fmd

import (
	"fmt"

	"github.com/grailbio/fmd/rlcsa"
)

// Position is a bi-interval: two equal-length row ranges, one over the
// forward strand and one over the reverse complement.  Ranges are stored
// as the two start rows plus a shared end offset; EndOffset == -1 is the
// canonical empty bi-interval (both starts are then meaningless).
// Positions are small pure values; they can be in BWT or SA coordinates
// depending on context.
type Position struct {
	ForwardStart int64
	ReverseStart int64
	EndOffset    int64
}

// EmptyPosition is the canonical empty bi-interval.  Extension of an empty
// bi-interval is empty with any character in either direction.
var EmptyPosition = Position{0, 0, -1}

// IsEmpty reports whether the bi-interval selects no rows.
func (p Position) IsEmpty() bool { return p.EndOffset < 0 }

// Size returns the number of rows in each of the two ranges.
func (p Position) Size() int64 {
	if p.EndOffset < 0 {
		return 0
	}
	return p.EndOffset + 1
}

// Flip swaps the forward and reverse ranges.  Flip is its own inverse;
// searching the flipped bi-interval searches the opposite strand.
func (p Position) Flip() Position {
	return Position{p.ReverseStart, p.ForwardStart, p.EndOffset}
}

// Range returns the index of the partition part containing the whole
// forward range, or -1 when the range is empty or straddles a part
// boundary.  The partition marks the first row of each part with a set
// bit.
func (p Position) Range(parts *rlcsa.BitVector) int64 {
	if p.IsEmpty() {
		return -1
	}
	first := parts.Rank(p.ForwardStart, false)
	last := parts.Rank(p.ForwardStart+p.EndOffset, false)
	if first != last {
		return -1
	}
	return first - 1
}

// Ranges returns the number of partition parts the forward range overlaps.
func (p Position) Ranges(parts *rlcsa.BitVector) int64 {
	if p.IsEmpty() {
		return 0
	}
	return parts.Rank(p.ForwardStart+p.EndOffset, false) - parts.Rank(p.ForwardStart, false) + 1
}

// String renders the bi-interval for debugging.
func (p Position) String() string {
	if p.IsEmpty() {
		return "[empty]"
	}
	return fmt.Sprintf("[%d-%d|%d-%d]", p.ForwardStart, p.ForwardStart+p.EndOffset,
		p.ReverseStart, p.ReverseStart+p.EndOffset)
}
