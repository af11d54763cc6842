// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package rlcsa

// Range is an inclusive [Start, End] row range.  End < Start means empty.
type Range struct {
	Start int64
	End   int64
}

// Len returns the number of rows in the range, 0 for an empty range.
func (r Range) Len() int64 {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start + 1
}

// IsEmpty reports whether the range contains no rows.
func (r Range) IsEmpty() bool { return r.End < r.Start }

// emptyRange is the canonical empty range.
var emptyRange = Range{0, -1}

// Alphabet holds the character distribution of the indexed collection, end
// markers excluded.  It backs the C array of the FM-index: Cumulative(c) is
// the number of indexed characters strictly below c in byte order.
type Alphabet struct {
	counts  [256]int64
	cum     [256]int64
	symbols []byte
	total   int64
}

func newAlphabet(counts [256]int64) *Alphabet {
	a := &Alphabet{counts: counts}
	var running int64
	for c := 0; c < 256; c++ {
		a.cum[c] = running
		running += counts[c]
		if counts[c] > 0 {
			a.symbols = append(a.symbols, byte(c))
		}
	}
	a.total = running
	return a
}

// Count returns the number of occurrences of c in the collection.
func (a *Alphabet) Count(c byte) int64 { return a.counts[c] }

// Cumulative returns the number of indexed characters strictly below c.
func (a *Alphabet) Cumulative(c byte) int64 { return a.cum[c] }

// Contains reports whether c occurs in the collection.
func (a *Alphabet) Contains(c byte) bool { return a.counts[c] > 0 }

// Symbols returns the distinct characters of the collection in byte order.
func (a *Alphabet) Symbols() []byte { return a.symbols }

// Total returns the number of indexed characters, end markers excluded.
func (a *Alphabet) Total() int64 { return a.total }

// CharRange returns the SA-space row range of suffixes starting with c.
func (a *Alphabet) CharRange(c byte) Range {
	if a.counts[c] == 0 {
		return emptyRange
	}
	return Range{a.cum[c], a.cum[c] + a.counts[c] - 1}
}
