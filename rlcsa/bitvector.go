// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package rlcsa

import (
	"math/bits"
	"sort"

	"github.com/grailbio/base/bitset"
	"github.com/grailbio/base/log"
)

// BitVector is a plain bit vector over [0, Size()) with rank and select
// support.  Bits are set during construction; Finish() seals the vector and
// builds the rank directory.  A sealed vector is immutable and safe for
// concurrent readers.
//
// The two rank boundary conventions follow RLCSA:
//   Rank(i, false) counts ones in [0, i]   (inclusive rank)
//   Rank(i, true)  counts ones in [0, i) and adds one
// The at_least variant is the one consistent with the FM-index literature's
// Occ(c, i)+1.
type BitVector struct {
	words []uintptr
	size  int64
	ones  int64
	// rank[k] holds the number of ones in words[:k].  len(rank) == len(words)+1.
	rank []int64
}

// NewBitVector returns an unsealed all-zero vector of the given size.
func NewBitVector(size int64) *BitVector {
	if size < 0 {
		log.Panicf("rlcsa: negative bit vector size %d", size)
	}
	nWords := (size + int64(bitset.BitsPerWord) - 1) / int64(bitset.BitsPerWord)
	return &BitVector{
		words: make([]uintptr, nWords),
		size:  size,
	}
}

// Set sets bit i.  Must be called before Finish.
func (v *BitVector) Set(i int64) {
	if v.rank != nil {
		log.Panicf("rlcsa: Set on a sealed bit vector")
	}
	if i < 0 || i >= v.size {
		log.Panicf("rlcsa: bit %d out of range [0, %d)", i, v.size)
	}
	v.words[i/int64(bitset.BitsPerWord)] |= uintptr(1) << uint(i%int64(bitset.BitsPerWord))
}

// Finish seals the vector and builds the rank directory.
func (v *BitVector) Finish() {
	if v.rank != nil {
		return
	}
	v.rank = make([]int64, len(v.words)+1)
	var total int64
	for k, w := range v.words {
		v.rank[k] = total
		total += int64(bits.OnesCount(uint(w)))
	}
	v.rank[len(v.words)] = total
	v.ones = total
}

// Size returns the number of bit positions.
func (v *BitVector) Size() int64 { return v.size }

// OneCount returns the number of set bits.
func (v *BitVector) OneCount() int64 { return v.ones }

// Bit reports whether bit i is set.
func (v *BitVector) Bit(i int64) bool {
	if i < 0 || i >= v.size {
		return false
	}
	return bitset.Test(v.words, int(i))
}

// rankInclusive returns the number of ones in [0, i], clamping i to the
// vector bounds.
func (v *BitVector) rankInclusive(i int64) int64 {
	if i < 0 {
		return 0
	}
	if i >= v.size-1 {
		return v.ones
	}
	word := i / int64(bitset.BitsPerWord)
	bit := uint(i % int64(bitset.BitsPerWord))
	// Mask covers bits [0, bit] of the word.
	mask := uintptr(1)<<bit | (uintptr(1)<<bit - 1)
	return v.rank[word] + int64(bits.OnesCount(uint(v.words[word]&mask)))
}

// Rank implements the two RLCSA rank conventions; see the type comment.
// The at_least result is deliberately not clamped to OneCount: callers rely
// on Rank(i, true) == ones-in-[0,i) + 1 even when no one exists at or after
// i.
func (v *BitVector) Rank(i int64, atLeast bool) int64 {
	if atLeast {
		return v.rankInclusive(i-1) + 1
	}
	return v.rankInclusive(i)
}

// Select returns the position of the k-th set bit, 0-based, so that
// Rank(Select(k), false) == k+1.  k must be in [0, OneCount()).
func (v *BitVector) Select(k int64) int64 {
	if k < 0 || k >= v.ones {
		log.Panicf("rlcsa: Select(%d) out of range, vector has %d ones", k, v.ones)
	}
	// Find the word holding the k-th one, then walk its bits.
	word := sort.Search(len(v.words), func(w int) bool { return v.rank[w+1] > k })
	remaining := k - v.rank[word]
	w := uint(v.words[word])
	for {
		bit := bits.TrailingZeros(w)
		if remaining == 0 {
			return int64(word*bitset.BitsPerWord + bit)
		}
		w &= w - 1
		remaining--
	}
}
