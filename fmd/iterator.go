// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package fmd

import "github.com/grailbio/base/log"

// iteratorFrame is one level of the DFS: the bi-interval reached and the
// base number of the edge taken into it.
type iteratorFrame struct {
	position Position
	base     int
}

// Iterator enumerates every suffix of exactly the requested depth that
// occurs in the index, as (pattern, bi-interval) pairs with the
// bi-interval in SA coordinates.  With reportDeadEnds it additionally
// yields, once each, shorter patterns some of whose occurrences continue
// only with end-of-text; those bi-intervals cover just the dead-ended
// rows and their reverse side is not meaningful.
//
// Traversal is depth-first in alphabetical base order, extending forward.
// Iterators are single-threaded; Copy returns an independent iterator.
type Iterator struct {
	parent         *Index
	depth          int
	reportDeadEnds bool

	started bool
	deadEnd bool // the last yield was a dead end
	stack   []iteratorFrame
	pattern []byte

	current        Position
	currentPattern string
}

// NewIterator returns an iterator positioned before the first suffix of
// the given depth.  depth must be at least 1.
func NewIterator(parent *Index, depth int, reportDeadEnds bool) *Iterator {
	if depth < 1 {
		log.Panicf("fmd: iterator depth %d < 1", depth)
	}
	return &Iterator{parent: parent, depth: depth, reportDeadEnds: reportDeadEnds}
}

// Scan advances to the next pattern, returning false when the traversal
// is exhausted.
func (it *Iterator) Scan() bool {
	if !it.started {
		it.started = true
		return it.tryRecurseToDepth(0, false)
	}
	if it.deadEnd {
		// The node whose dead end was just reported has not had its
		// children explored yet.  Descend through it, skipping its
		// already-reported check.
		it.deadEnd = false
		if it.tryRecurseToDepth(0, true) {
			return true
		}
	}
	for len(it.stack) > 0 {
		f := it.pop()
		if it.tryRecurseToDepth(f.base+1, true) {
			return true
		}
	}
	return false
}

// Get returns the pattern and bi-interval yielded by the last Scan.
func (it *Iterator) Get() (string, Position) {
	return it.currentPattern, it.current
}

// DeadEnd reports whether the last yield was a dead-end pattern shorter
// than the requested depth.
func (it *Iterator) DeadEnd() bool { return it.deadEnd }

// tryRecurse descends one level, appending the first base at or after
// the given base number that yields a non-empty child.
func (it *Iterator) tryRecurse(base int) bool {
	for ; base < NumBases; base++ {
		var next Position
		if len(it.stack) == 0 {
			next = it.parent.charPosition(Bases[base])
		} else {
			next = it.parent.Extend(it.stack[len(it.stack)-1].position, Bases[base], false)
		}
		if next.IsEmpty() {
			continue
		}
		it.stack = append(it.stack, iteratorFrame{next, base})
		it.pattern = append(it.pattern, Bases[base])
		return true
	}
	return false
}

// tryRecurseToDepth drives the DFS from the current node down to the full
// depth, starting with the given base number at the current level, and
// backtracking no higher than where it began.  It yields and returns true
// on reaching the full depth, or earlier on detecting a dead end.
// skipCheck suppresses the dead-end check for the node the call starts
// at, which has already been checked on a previous visit.
func (it *Iterator) tryRecurseToDepth(base int, skipCheck bool) bool {
	startDepth := len(it.stack)
	for len(it.stack) < it.depth {
		if it.reportDeadEnds && !skipCheck && len(it.stack) > 0 {
			// Rows of the current interval that precede the first
			// A-child are the occurrences followed by end-of-text.
			top := it.stack[len(it.stack)-1].position
			childA := it.parent.Extend(top, Bases[0], false)
			if childA.ForwardStart != top.ForwardStart {
				dead := top
				dead.EndOffset = childA.ForwardStart - top.ForwardStart - 1
				it.yield(dead)
				it.deadEnd = true
				return true
			}
		}
		skipCheck = false
		if it.tryRecurse(base) {
			base = 0
			continue
		}
		if len(it.stack) == startDepth {
			return false
		}
		f := it.pop()
		base = f.base + 1
		skipCheck = true
	}
	it.yield(it.stack[len(it.stack)-1].position)
	it.deadEnd = false
	return true
}

func (it *Iterator) pop() iteratorFrame {
	f := it.stack[len(it.stack)-1]
	it.stack = it.stack[:len(it.stack)-1]
	it.pattern = it.pattern[:len(it.pattern)-1]
	return f
}

// yield records a result, translated from BWT to SA coordinates.
func (it *Iterator) yield(p Position) {
	it.current = it.parent.convertToSAPosition(p)
	it.currentPattern = string(it.pattern)
}

// Copy returns an independent iterator at the same traversal state.
func (it *Iterator) Copy() *Iterator {
	n := *it
	n.stack = append([]iteratorFrame(nil), it.stack...)
	n.pattern = append([]byte(nil), it.pattern...)
	return &n
}

// Equal reports whether two iterators are at the same state of the same
// traversal: same parent, depth, dead-end flag, stack contents, and
// pattern.
func (it *Iterator) Equal(other *Iterator) bool {
	if it.parent != other.parent || it.depth != other.depth ||
		it.reportDeadEnds != other.reportDeadEnds ||
		it.started != other.started || it.deadEnd != other.deadEnd ||
		len(it.stack) != len(other.stack) ||
		string(it.pattern) != string(other.pattern) {
		return false
	}
	for i := range it.stack {
		if it.stack[i] != other.stack[i] {
			return false
		}
	}
	return true
}
