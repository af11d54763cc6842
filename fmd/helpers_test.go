// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package fmd

import (
	"testing"

	"github.com/grailbio/fmd/rlcsa"
	"github.com/grailbio/testutil/assert"
)

// buildIndex indexes the given sequences plus their reverse complements,
// with a small sample rate so locate walks get exercised.
func buildIndex(t *testing.T, seqs ...string) *Index {
	t.Helper()
	index, err := Build(seqs, rlcsa.Opts{SampleRate: 2})
	assert.NoError(t, err)
	return index
}

// buildRawCollection builds a suffix array over the literal texts,
// without adding reverse complements.
func buildRawCollection(t *testing.T, texts ...string) *rlcsa.Index {
	t.Helper()
	csa, err := rlcsa.New(texts, rlcsa.Opts{SampleRate: 2})
	assert.NoError(t, err)
	return csa
}

// doubled returns the collection that Build indexes: every sequence
// followed by its reverse complement.
func doubled(seqs ...string) []string {
	out := make([]string, 0, 2*len(seqs))
	for _, s := range seqs {
		out = append(out, s, ReverseComplementString(s))
	}
	return out
}

type occurrence struct {
	text   int64
	offset int64
}

// naiveOccurrences scans the collection for every occurrence of pattern.
func naiveOccurrences(texts []string, pattern string) []occurrence {
	var out []occurrence
	if len(pattern) == 0 {
		return out
	}
	for t, text := range texts {
		for off := 0; off+len(pattern) <= len(text); off++ {
			if text[off:off+len(pattern)] == pattern {
				out = append(out, occurrence{int64(t), int64(off)})
			}
		}
	}
	return out
}

// distinctSubstrings returns every distinct length-k substring of the
// collection with its occurrence count.
func distinctSubstrings(texts []string, k int) map[string]int {
	out := map[string]int{}
	for _, text := range texts {
		for off := 0; off+k <= len(text); off++ {
			out[text[off:off+k]]++
		}
	}
	return out
}

// naiveAttempt mirrors MapAttempt for the naive mapper: the context
// window is query[lo:hi+1].
type naiveAttempt struct {
	lo, hi     int
	count      int
	mapped     bool
	empty      bool
	characters int64
}

func naiveMapPosition(texts []string, query string, index int) naiveAttempt {
	a := naiveAttempt{lo: index, hi: index, characters: 1}
	a.count = len(naiveOccurrences(texts, query[index:index+1]))
	if a.count == 0 {
		a.empty = true
		return a
	}
	if a.count == 1 {
		a.mapped = true
		return a
	}
	for j := index - 1; j >= 0; j-- {
		n := len(naiveOccurrences(texts, query[j:index+1]))
		if n == 0 {
			break
		}
		a.lo = j
		a.count = n
		a.characters++
		if n == 1 {
			a.mapped = true
			break
		}
	}
	return a
}

// naiveMap reimplements the Map control flow on top of naive substring
// counting, independently of the index machinery.
func naiveMap(texts []string, query string) []Mapping {
	return naiveMapWindow(texts, query, 0, len(query))
}

func naiveMapWindow(texts []string, query string, start, length int) []Mapping {
	var mappings []Mapping
	a := naiveAttempt{empty: true}
	for i := start; i < start+length; i++ {
		if a.empty {
			a = naiveMapPosition(texts, query, i)
		} else {
			a.hi = i
			a.count = len(naiveOccurrences(texts, query[a.lo:i+1]))
			a.characters++
			if a.count == 0 {
				a.empty = true
			}
		}
		switch {
		case a.mapped && !a.empty && a.count == 1:
			o := naiveOccurrences(texts, query[a.lo:i+1])[0]
			mappings = append(mappings, Mapping{
				TextID: o.text,
				Offset: o.offset + a.characters - 1,
				Mapped: true,
			})
		case a.mapped && a.empty:
			i--
		default:
			mappings = append(mappings, Mapping{})
			a.mapped = true
		}
	}
	return mappings
}

// allPatterns enumerates strings over the DNA alphabet up to maxLen.
func allPatterns(maxLen int) []string {
	patterns := []string{""}
	for start, end := 0, 1; maxLen > 0; maxLen-- {
		for _, p := range patterns[start:end] {
			for _, c := range Bases {
				patterns = append(patterns, p+string(c))
			}
		}
		start, end = end, len(patterns)
	}
	return patterns[1:]
}
