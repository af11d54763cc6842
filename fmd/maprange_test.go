// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package fmd

import (
	"testing"

	"github.com/grailbio/testutil/expect"
	"github.com/grailbio/testutil/h"
)

// The {AC} index has six BWT rows: the two end markers, then the A, C, G,
// T suffixes in byte order.  The partitions below are built against that
// layout.
func TestMapToRange(t *testing.T) {
	index := buildIndex(t, "AC")
	size := index.CSA().DataSize()
	expect.EQ(t, size, int64(6))

	// Two parts: rows 0-3 (markers, A, C) and rows 4-5 (G, T).
	parts := partition(size, 0, 4)
	expect.That(t, index.MapToRange(parts, "AC", 0, -1), h.ElementsAre(int64(0), int64(0)))

	// Two parts split between the A and C rows.
	parts = partition(size, 0, 3)
	expect.That(t, index.MapToRange(parts, "AC", 0, -1), h.ElementsAre(int64(0), int64(1)))

	// Three parts.
	parts = partition(size, 0, 2, 4)
	expect.That(t, index.MapToRange(parts, "AC", 0, -1), h.ElementsAre(int64(1), int64(1)))
}

// TestMapToRangeRestart drives the over-extension path: TC does not occur,
// so the scan restarts on the base that failed and maps it from scratch.
func TestMapToRangeRestart(t *testing.T) {
	index := buildIndex(t, "AC")
	index.GetStats()
	parts := partition(index.CSA().DataSize(), 0, 4)

	expect.That(t, index.MapToRange(parts, "TC", 0, -1), h.ElementsAre(int64(1), int64(0)))
	expect.GE(t, index.GetStats().Restarts, int64(2))
}

// TestMapPositionRange needs right context: the A row range of {AAC}
// straddles the part boundary until a second character pins it.
func TestMapPositionRange(t *testing.T) {
	index := buildIndex(t, "AAC")
	size := index.CSA().DataSize()
	expect.EQ(t, size, int64(8))

	// Parts: rows 0-2 and rows 3-7.  The two A rows are 2 and 3.
	parts := partition(size, 0, 3)
	attempt := index.MapPositionRange(parts, "AAC", 0)
	expect.True(t, attempt.Mapped)
	expect.EQ(t, attempt.Characters, int64(2))
	expect.EQ(t, attempt.Position.Range(parts), int64(0))

	expect.That(t, index.MapToRange(parts, "AAC", 0, -1),
		h.ElementsAre(int64(0), int64(1), int64(1)))

	// A base with no occurrences is unmappable, and it poisons the
	// restarted right-context of the base before it.
	expect.That(t, index.MapToRange(parts, "AXC", 0, -1),
		h.ElementsAre(int64(-1), int64(-1), int64(1)))
}

func TestMapToRangeWindow(t *testing.T) {
	index := buildIndex(t, "AC")
	parts := partition(index.CSA().DataSize(), 0, 4)
	expect.EQ(t, len(index.MapToRange(parts, "AC", 0, 0)), 0)
	expect.That(t, index.MapToRange(parts, "AC", 1, 1), h.ElementsAre(int64(0)))
}
