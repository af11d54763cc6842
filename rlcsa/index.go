// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package rlcsa

import (
	"sort"

	"github.com/grailbio/base/log"
)

// Index is a read-only compressed suffix array over a text collection.
// All methods are safe for concurrent use once the index is built.
type Index struct {
	numSequences int64
	dataSize     int64 // concatenation length, end markers included
	alphabet     *Alphabet
	vectors      [256]*BitVector // per-character BWT occurrence vectors
	sampleRate   int64
	sampledRows  *BitVector // BWT rows whose SA value is sampled
	samples      []int64    // SA values of sampled rows, in row order
	starts       []int64    // text start offsets in the concatenation
}

// NumSequences returns the number of texts in the collection.
func (x *Index) NumSequences() int64 { return x.numSequences }

// DataSize returns the total collection length, end markers included.
func (x *Index) DataSize() int64 { return x.dataSize }

// Alphabet returns the character distribution of the collection.
func (x *Index) Alphabet() *Alphabet { return x.alphabet }

// Cumulative returns the number of indexed characters strictly below c.
func (x *Index) Cumulative(c byte) int64 { return x.alphabet.Cumulative(c) }

// CharRange returns the SA-space row range of suffixes starting with c.
func (x *Index) CharRange(c byte) Range { return x.alphabet.CharRange(c) }

// Vector returns the BWT occurrence vector for c, or nil when c never
// occurs in the collection.
func (x *Index) Vector(c byte) *BitVector { return x.vectors[c] }

// ConvertToBWTRange shifts an SA-space range up past the end-marker rows.
func (x *Index) ConvertToBWTRange(r Range) Range {
	return Range{r.Start + x.numSequences, r.End + x.numSequences}
}

// ConvertToSAIndex shifts a BWT row down to an SA index.
func (x *Index) ConvertToSAIndex(row int64) int64 { return row - x.numSequences }

// bwtCharAt returns the BWT character at the given row.  The row's BWT
// character must not be an end marker, i.e. its suffix must not start a
// text.
func (x *Index) bwtCharAt(row int64) byte {
	for _, c := range x.alphabet.Symbols() {
		if v := x.vectors[c]; v != nil && v.Bit(row) {
			return c
		}
	}
	log.Panicf("rlcsa: no BWT character at row %d", row)
	return 0
}

// lf returns the BWT row reached by one LF step from row, whose BWT
// character is c.
func (x *Index) lf(row int64, c byte) int64 {
	return x.numSequences + x.alphabet.Cumulative(c) + x.vectors[c].Rank(row, true) - 1
}

// LF maps a BWT row range through one backward-search step with character
// c.  Both input and output are BWT rows.
func (x *Index) LF(r Range, c byte) Range {
	v := x.vectors[c]
	if v == nil || r.IsEmpty() {
		return emptyRange
	}
	base := x.numSequences + x.alphabet.Cumulative(c)
	return Range{
		Start: base + v.Rank(r.Start, true) - 1,
		End:   base + v.Rank(r.End+1, true) - 2,
	}
}

// Locate returns the collection offset of the suffix at the given SA index.
func (x *Index) Locate(saIndex int64) int64 {
	if saIndex < 0 || saIndex >= x.dataSize-x.numSequences {
		log.Panicf("rlcsa: SA index %d out of range [0, %d)", saIndex, x.dataSize-x.numSequences)
	}
	row := saIndex + x.numSequences
	var steps int64
	for !x.sampledRows.Bit(row) {
		// Every text start is sampled, so the walk stays clear of the
		// end-marker rows.
		row = x.lf(row, x.bwtCharAt(row))
		steps++
	}
	return x.samples[x.sampledRows.Rank(row, false)-1] + steps
}

// RelativePosition converts a collection offset into a (text, offset) pair.
func (x *Index) RelativePosition(pos int64) (text int64, offset int64) {
	if pos < 0 || pos >= x.dataSize {
		log.Panicf("rlcsa: position %d out of range [0, %d)", pos, x.dataSize)
	}
	t := sort.Search(len(x.starts), func(i int) bool { return x.starts[i] > pos }) - 1
	return int64(t), pos - x.starts[t]
}

// Count returns the number of occurrences of pattern in the collection,
// using classical backward search.
func (x *Index) Count(pattern string) int64 {
	if len(pattern) == 0 {
		return x.dataSize - x.numSequences
	}
	r := x.ConvertToBWTRange(x.CharRange(pattern[len(pattern)-1]))
	for i := len(pattern) - 2; i >= 0 && !r.IsEmpty(); i-- {
		r = x.LF(r, pattern[i])
	}
	return r.Len()
}
