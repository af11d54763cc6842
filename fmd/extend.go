// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package fmd

import (
	"strings"

	"github.com/grailbio/base/log"
)

// Extend produces the bi-interval of the pattern obtained by prepending
// (backward) or appending (forward) character c to the pattern whose
// bi-interval is rng.  Bi-intervals are in BWT coordinates.  An empty rng,
// a character outside the DNA alphabet, or a character absent from the
// collection all produce the empty bi-interval.
//
// Implemented off algorithms 2 and 3 of Li (2012), with one deviation:
// the reverse-strand interval is subdivided in reverse-complement
// alphabetical order (BasesReverseComplement), not the paper's N-last
// order, so that it mirrors the byte order of the complements in the BWT.
func (x *Index) Extend(rng Position, c byte, backward bool) Position {
	if rng.IsEmpty() || !IsBase(c) {
		return EmptyPosition
	}
	if !backward {
		// Appending c forward is prepending its complement on the
		// reverse strand.
		return x.Extend(rng.Flip(), ReverseComplement(c), true).Flip()
	}
	if x.csa.Vector(c) == nil {
		return EmptyPosition
	}

	numSequences := x.csa.NumSequences()

	// One candidate per base, filled in by a tiny dynamic program.  The
	// end-of-text occurrences have no vector of their own and are
	// accounted for separately below.
	var answers [NumBases]Position
	for i := 0; i < NumBases; i++ {
		b := Bases[i]
		// Characters below b, counting the end markers at the front of
		// the BWT.
		start := x.csa.Cumulative(b) + numSequences - 1
		v := x.csa.Vector(b)
		if v == nil {
			// b never occurs.  The candidate is empty, but it still
			// carries the exact forward boundary where b's rows would
			// begin, which the iterator's end-of-text peek relies on.
			answers[i] = Position{ForwardStart: start + 1, EndOffset: -1}
			continue
		}
		atLeast := v.Rank(rng.ForwardStart, true)
		answers[i] = Position{
			ForwardStart: start + atLeast,
			EndOffset:    v.Rank(rng.ForwardStart+rng.EndOffset, false) - atLeast,
		}
	}

	// Elements of rng followed by an end marker are exactly the ones not
	// claimed by any base candidate.
	var used int64
	for i := range answers {
		used += answers[i].Size()
	}
	endOfText := rng.Size() - used
	if endOfText < 0 {
		log.Panicf("fmd: extension produced %d rows from an interval of %d", used, rng.Size())
	}

	// Lay out the reverse starts: the reverse range of rng is subdivided
	// with the end-of-text share first, then the bases in
	// reverse-complement alphabetical order.
	revStart := rng.ReverseStart + endOfText
	for k := 0; k < NumBases; k++ {
		i := strings.IndexByte(Bases, BasesReverseComplement[k])
		answers[i].ReverseStart = revStart
		revStart += answers[i].Size()
	}

	i := strings.IndexByte(Bases, c)
	if i < 0 {
		log.Panicf("fmd: unrecognized base %q", c)
	}
	return answers[i]
}
