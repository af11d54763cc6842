// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package rlcsa

import (
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
)

// endMarker terminates each text in the concatenation.  It sorts below
// every indexable character, so the end-marker suffixes occupy the first
// NumSequences BWT rows.
const endMarker = 0

// Opts controls index construction.
type Opts struct {
	// SampleRate is the text-position spacing of suffix-array samples.
	// Smaller is faster to locate, larger is smaller in memory.
	SampleRate int
}

// DefaultOpts is a reasonable default for query-heavy workloads.
var DefaultOpts = Opts{SampleRate: 32}

// New builds an index over the given texts.  Texts must be non-empty and
// must not contain the zero byte.  The returned index is immutable.
func New(texts []string, opts Opts) (*Index, error) {
	if len(texts) == 0 {
		return nil, errors.E("rlcsa.New: empty collection")
	}
	if opts.SampleRate <= 0 {
		opts.SampleRate = DefaultOpts.SampleRate
	}
	var total int
	for i, t := range texts {
		if len(t) == 0 {
			return nil, errors.E("rlcsa.New: text", i, "is empty")
		}
		for j := 0; j < len(t); j++ {
			if t[j] == endMarker {
				return nil, errors.E("rlcsa.New: text", i, "contains a zero byte")
			}
		}
		total += len(t) + 1
	}

	data := make([]byte, 0, total)
	starts := make([]int64, 0, len(texts))
	isStart := make([]bool, total)
	for _, t := range texts {
		starts = append(starts, int64(len(data)))
		isStart[len(data)] = true
		data = append(data, t...)
		data = append(data, endMarker)
	}
	n := int64(len(data))
	numSequences := int64(len(texts))
	log.Debug.Printf("rlcsa: indexing %d texts, %d bytes", numSequences, n)

	sa := buildSuffixArray(data)

	x := &Index{
		numSequences: numSequences,
		dataSize:     n,
		sampleRate:   int64(opts.SampleRate),
		starts:       starts,
	}

	// BWT character distribution and per-character occurrence vectors.
	var counts [256]int64
	for _, c := range data {
		if c != endMarker {
			counts[c]++
		}
	}
	x.alphabet = newAlphabet(counts)
	for _, c := range x.alphabet.Symbols() {
		x.vectors[c] = NewBitVector(n)
	}
	x.sampledRows = NewBitVector(n)
	sampled := 0
	for row := int64(0); row < n; row++ {
		p := sa[row]
		if p > 0 {
			if c := data[p-1]; c != endMarker {
				x.vectors[c].Set(row)
			}
		}
		// Sample every SampleRate-th position plus every text start, so
		// that Locate's LF walk always terminates inside a text.
		if p%x.sampleRate == 0 || isStart[p] {
			x.sampledRows.Set(row)
			sampled++
		}
	}
	for _, c := range x.alphabet.Symbols() {
		x.vectors[c].Finish()
	}
	x.sampledRows.Finish()

	x.samples = make([]int64, 0, sampled)
	for row := int64(0); row < n; row++ {
		if x.sampledRows.Bit(row) {
			x.samples = append(x.samples, sa[row])
		}
	}
	return x, nil
}
