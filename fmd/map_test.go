// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package fmd

import (
	"testing"

	"github.com/grailbio/testutil/expect"
)

// TestMapAgainstNaive compares Map with a naive mapper that runs the same
// restart policy on plain substring counting.
func TestMapAgainstNaive(t *testing.T) {
	tests := []struct {
		seqs    []string
		queries []string
	}{
		{
			seqs:    []string{"ACGGTCA"},
			queries: []string{"ACGGTCA", "TGACCGT", "GGT", "TTTT", "ACGGTCAACG"},
		},
		{
			seqs:    []string{"ACACAC"},
			queries: []string{"ACACAC", "GTGTGT", "CACA"},
		},
		{
			// Over-extension: ACG is absent although AC and CG both occur.
			seqs:    []string{"AC", "CG"},
			queries: []string{"ACG", "CGA"},
		},
		{
			seqs:    []string{"ACGTACGT", "GGGTTACA", "ACNNA"},
			queries: []string{"GGGTTACA", "ACGTACGTA", "NNA", "ACXGT"},
		},
	}
	for _, test := range tests {
		index := buildIndex(t, test.seqs...)
		texts := doubled(test.seqs...)
		for _, q := range test.queries {
			expect.EQ(t, index.Map(q, 0, -1), naiveMap(texts, q),
				"seqs", test.seqs, "query", q)
		}
	}
}

// TestMapRepeats covers the symmetric-repeat scenario: the first base has
// no disambiguating left context, the last one does.
func TestMapRepeats(t *testing.T) {
	index := buildIndex(t, "ACACAC")
	got := index.Map("ACACAC", 0, -1)
	expect.EQ(t, len(got), 6)
	expect.False(t, got[0].Mapped)
	expect.EQ(t, got[4], Mapping{TextID: 0, Offset: 4, Mapped: true})
	expect.EQ(t, got[5], Mapping{TextID: 0, Offset: 5, Mapped: true})
}

// TestMapHomopolymer maps a homopolymer: only the final base carries
// enough left context to pin a unique occurrence.
func TestMapHomopolymer(t *testing.T) {
	index := buildIndex(t, "AAAA")
	got := index.Map("AAAA", 0, -1)
	want := []Mapping{{}, {}, {}, {TextID: 0, Offset: 3, Mapped: true}}
	expect.EQ(t, got, want)
	expect.EQ(t, got, naiveMap(doubled("AAAA"), "AAAA"))
}

// TestMapReverseComplementText maps the reverse-complement strand back to
// its own text id.
func TestMapReverseComplementText(t *testing.T) {
	const seq = "ACGGTCA"
	index := buildIndex(t, seq)
	rc := ReverseComplementString(seq)
	for i, m := range index.Map(rc, 0, -1) {
		if m.Mapped {
			expect.EQ(t, m.TextID, int64(1), "base", i)
			expect.EQ(t, m.Offset, int64(i), "base", i)
		}
	}
}

func TestMapWindow(t *testing.T) {
	seqs := []string{"ACGTACGT", "GGGTTACA"}
	index := buildIndex(t, seqs...)
	texts := doubled(seqs...)
	const q = "GGGTTACA"

	expect.EQ(t, len(index.Map(q, 0, 0)), 0)
	expect.EQ(t, index.Map(q, 2, 3), naiveMapWindow(texts, q, 2, 3))
	expect.EQ(t, index.Map(q, 3, -1), naiveMapWindow(texts, q, 3, len(q)-3))
}

// TestMapInvalidBase checks that a non-DNA base poisons exactly the bases
// whose context windows include it, without panicking.
func TestMapInvalidBase(t *testing.T) {
	index := buildIndex(t, "ACGGTCA")
	got := index.Map("ACXGT", 0, -1)
	expect.EQ(t, len(got), 5)
	expect.False(t, got[2].Mapped)
	expect.EQ(t, got, naiveMap(doubled("ACGGTCA"), "ACXGT"))
}

// TestMapFMAgreement checks that the bidirectional mapper and the plain
// LF-based baseline agree on every base either one maps.
func TestMapFMAgreement(t *testing.T) {
	seqs := []string{"ACGGTCA", "ACACAC", "GGGTTACA"}
	index := buildIndex(t, seqs...)
	queries := []string{"ACGGTCA", "GTGTGT", "ACACAC", "TTACA", "ACGTT", "CCCAA"}
	for _, q := range queries {
		bidir := index.Map(q, 0, -1)
		baseline := index.MapFM(q, 0, -1)
		expect.EQ(t, len(bidir), len(baseline), "query", q)
		for i := range bidir {
			if bidir[i].Mapped || baseline[i].Mapped {
				expect.EQ(t, bidir[i], baseline[i], "query", q, "base", i)
			}
		}
	}
}

func TestMapStats(t *testing.T) {
	index := buildIndex(t, "ACGGTCA")
	index.Map("ACGGTCA", 0, -1)
	stats := index.GetStats()
	expect.GE(t, stats.Extends, int64(1))
	expect.GE(t, stats.Restarts, int64(1))
	// GetStats clears the counters.
	expect.EQ(t, index.GetStats(), Stats{})
}

func TestMapPosition(t *testing.T) {
	index := buildIndex(t, "ACACAC")

	// CACA pins a unique occurrence after consuming four characters.
	attempt := index.MapPosition("ACACAC", 4)
	expect.True(t, attempt.Mapped)
	expect.EQ(t, attempt.Characters, int64(4))
	expect.EQ(t, attempt.Position.Size(), int64(1))

	// The left edge is reached while still ambiguous.
	attempt = index.MapPosition("ACACAC", 3)
	expect.False(t, attempt.Mapped)
	expect.False(t, attempt.Position.IsEmpty())
	expect.EQ(t, attempt.Characters, int64(4))

	// A base absent from the index restarts with an empty interval.
	attempt = index.MapPosition("XA", 0)
	expect.False(t, attempt.Mapped)
	expect.True(t, attempt.Position.IsEmpty())
}
