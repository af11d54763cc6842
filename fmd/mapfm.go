// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package fmd

import (
	"github.com/grailbio/fmd/rlcsa"
)

// countUntilUnique walks leftward from index with classical LF backward
// search, shrinking the row range until it becomes singleton or empty or
// the pattern runs out.  It returns the final range in BWT coordinates and
// the number of characters consumed.  An empty pattern or index 0 covers
// the whole suffix array with nothing consumed.
func (x *Index) countUntilUnique(pattern string, index int) (rlcsa.Range, int64) {
	csa := x.csa
	if len(pattern) == 0 || index == 0 {
		return csa.ConvertToBWTRange(rlcsa.Range{Start: 0, End: csa.DataSize() - csa.NumSequences() - 1}), 0
	}
	r := csa.ConvertToBWTRange(csa.CharRange(pattern[index]))
	var characters int64 = 1
	for i := index - 1; i >= 0 && r.Len() > 1; i-- {
		next := csa.LF(r, pattern[i])
		if next.IsEmpty() {
			return next, characters
		}
		r = next
		characters++
	}
	return r, characters
}

// MapFM is a baseline implementation of Map that uses plain LF-based
// backward search instead of the bidirectional one.  It agrees with Map on
// every base either reports as mapped, except the base at query index 0:
// countUntilUnique gives that base the whole suffix array, so MapFM always
// reports it unmapped.  It exists for benchmarking and cross-checking.
func (x *Index) MapFM(query string, start, length int) []Mapping {
	length = resolveLength(query, start, length)
	if length <= 0 {
		return nil
	}
	mappings := make([]Mapping, 0, length)
	for i := start; i < start+length; i++ {
		r, characters := x.countUntilUnique(query, i)
		if r.Len() == 1 {
			text, offset := x.csa.RelativePosition(x.csa.Locate(x.csa.ConvertToSAIndex(r.Start)))
			mappings = append(mappings, Mapping{
				TextID: text,
				Offset: offset + characters - 1,
				Mapped: true,
			})
		} else {
			mappings = append(mappings, Mapping{})
		}
	}
	return mappings
}
