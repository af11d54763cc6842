// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package fmd

import (
	"sync/atomic"

	"github.com/grailbio/fmd/rlcsa"
)

// MapPositionRange maps the base at the given index of pattern against a
// partition of BWT space, starting from scratch: it extends forward base
// by base until the bi-interval's forward range falls inside a single part
// (mapped), becomes empty (unmapped; the last non-empty interval is
// returned so the caller can retry), or the right edge of the pattern is
// reached.
//
// The partition marks the first row of each part with a set bit and must
// be a bi-range partition: each part's reverse complement is also a part.
func (x *Index) MapPositionRange(parts *rlcsa.BitVector, pattern string, index int) MapAttempt {
	result := MapAttempt{
		Position:   x.charPosition(pattern[index]),
		Characters: 1,
	}
	if result.Position.IsEmpty() {
		return result
	}
	if result.Position.Range(parts) != -1 {
		result.Mapped = true
		return result
	}
	for i := index + 1; i < len(pattern); i++ {
		atomic.AddInt64(&x.extends, 1)
		next := x.Extend(result.Position, pattern[i], false)
		if next.IsEmpty() {
			break
		}
		result.Position = next
		result.Characters++
		if next.Range(parts) != -1 {
			result.Mapped = true
			break
		}
	}
	return result
}

// MapToRange maps every base of query[start:start+length] (length -1
// meaning to the end) to the index of the partition part its bi-interval
// is contained in, or -1 for unmappable bases.  The scan runs right to
// left, carrying context by backward extension; results are returned in
// input order.
func (x *Index) MapToRange(parts *rlcsa.BitVector, query string, start, length int) []int64 {
	length = resolveLength(query, start, length)
	if length <= 0 {
		return nil
	}
	mappings := make([]int64, 0, length)
	location := MapAttempt{Position: EmptyPosition}
	for i := start + length - 1; i >= start; i-- {
		if location.Position.IsEmpty() {
			atomic.AddInt64(&x.restarts, 1)
			location = x.MapPositionRange(parts, query, i)
		} else {
			atomic.AddInt64(&x.extends, 1)
			location.Position = x.Extend(location.Position, query[i], true)
			location.Characters++
		}
		part := location.Position.Range(parts)
		switch {
		case location.Mapped && part != -1:
			mappings = append(mappings, part)
		case location.Mapped && location.Position.IsEmpty():
			// Over-extended.  Move back toward the base that failed: the
			// direction opposite to the scan's progress.
			i++
		default:
			mappings = append(mappings, -1)
			location.Mapped = true
		}
	}
	// The scan produced results right to left; realign with the input.
	for l, r := 0, len(mappings)-1; l < r; l, r = l+1, r-1 {
		mappings[l], mappings[r] = mappings[r], mappings[l]
	}
	return mappings
}
