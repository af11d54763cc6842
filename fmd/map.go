// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package fmd

import "sync/atomic"

// Mapping asserts that a query base corresponds uniquely to a (text,
// offset) position of the indexed collection, given the minimum
// surrounding context needed to disambiguate.  Offset refers to the
// queried base itself, not to the start of the matched context.
type Mapping struct {
	TextID int64
	Offset int64
	Mapped bool
}

// MapAttempt carries the working state of a per-base mapping between
// steps: the current bi-interval, whether the last extension pinned a
// unique answer, and how many pattern characters the interval covers.
// Mapped with an empty interval means the last extension overshot and the
// base must be retried from scratch.
type MapAttempt struct {
	Position   Position
	Mapped     bool
	Characters int64
}

// MapPosition maps the base at the given index of pattern, starting from
// scratch: it extends backward base by base until the bi-interval becomes
// singleton (mapped), empty (unmapped; the last non-empty interval is
// returned so the caller can retry), or the left edge of the pattern is
// reached (unmapped with maximal context).
func (x *Index) MapPosition(pattern string, index int) MapAttempt {
	result := MapAttempt{
		Position:   x.charPosition(pattern[index]),
		Characters: 1,
	}
	if result.Position.IsEmpty() {
		return result
	}
	if result.Position.Size() == 1 {
		result.Mapped = true
		return result
	}
	for i := index - 1; i >= 0; i-- {
		atomic.AddInt64(&x.extends, 1)
		next := x.Extend(result.Position, pattern[i], true)
		if next.IsEmpty() {
			break
		}
		result.Position = next
		result.Characters++
		if next.Size() == 1 {
			result.Mapped = true
			break
		}
	}
	return result
}

// resolveLength interprets the map family's length argument: -1 means "to
// the end of the query".
func resolveLength(query string, start, length int) int {
	if length == -1 {
		return len(query) - start
	}
	return length
}

// Map maps every base of query[start:start+length] (length -1 meaning to
// the end) and returns one Mapping per base.  Context carried over from a
// previous base is extended forward; when an extension overshoots into the
// void the base is retried from scratch.
func (x *Index) Map(query string, start, length int) []Mapping {
	length = resolveLength(query, start, length)
	if length <= 0 {
		return nil
	}
	mappings := make([]Mapping, 0, length)
	location := MapAttempt{Position: EmptyPosition}
	for i := start; i < start+length; i++ {
		if location.Position.IsEmpty() {
			atomic.AddInt64(&x.restarts, 1)
			location = x.MapPosition(query, i)
		} else {
			atomic.AddInt64(&x.extends, 1)
			location.Position = x.Extend(location.Position, query[i], false)
			location.Characters++
		}
		switch {
		case location.Mapped && location.Position.Size() == 1:
			saIndex := x.csa.ConvertToSAIndex(location.Position.ForwardStart)
			text, offset := x.csa.RelativePosition(x.csa.Locate(saIndex))
			// Locate reports the start of the matched context; the
			// queried base sits at its right end.
			mappings = append(mappings, Mapping{
				TextID: text,
				Offset: offset + location.Characters - 1,
				Mapped: true,
			})
		case location.Mapped && location.Position.IsEmpty():
			// Over-extended.  Retry this base under restart semantics.
			i--
		default:
			mappings = append(mappings, Mapping{})
			// Attempt extension on the next base if any interval remains.
			location.Mapped = true
		}
	}
	return mappings
}
