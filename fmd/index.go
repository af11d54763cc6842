// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package fmd

import (
	"sync/atomic"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/fmd/rlcsa"
)

// Index is an FMD-index over a compressed suffix array whose collection
// holds every sequence together with its reverse complement.  The index is
// read-only; any number of queries may run concurrently.
type Index struct {
	csa *rlcsa.Index

	// Mapping telemetry, flushed and cleared by GetStats.
	extends  int64
	restarts int64
}

// New wraps a previously built compressed suffix array.  The collection
// must be over the DNA alphabet; it is the caller's responsibility that
// every text is present with its reverse complement.
func New(csa *rlcsa.Index) (*Index, error) {
	for _, c := range csa.Alphabet().Symbols() {
		if !IsBase(c) {
			return nil, errors.E("fmd.New: collection contains non-DNA character", string(c))
		}
	}
	return &Index{csa: csa}, nil
}

// Build indexes the given sequences together with their reverse
// complements.  It is a convenience wrapper; all construction work happens
// in the rlcsa package.
func Build(seqs []string, opts rlcsa.Opts) (*Index, error) {
	texts := make([]string, 0, 2*len(seqs))
	for i, s := range seqs {
		for j := 0; j < len(s); j++ {
			if !IsBase(s[j]) {
				return nil, errors.E("fmd.Build: sequence", i, "has non-DNA character", string(s[j]))
			}
		}
		texts = append(texts, s, ReverseComplementString(s))
	}
	csa, err := rlcsa.New(texts, opts)
	if err != nil {
		return nil, err
	}
	return New(csa)
}

// CSA returns the underlying compressed suffix array.
func (x *Index) CSA() *rlcsa.Index { return x.csa }

// Stats holds the mapping telemetry counters.
type Stats struct {
	Extends  int64
	Restarts int64
}

// GetStats returns the number of extension and restart operations
// performed by the mapping calls since the last GetStats, and clears the
// counters.
func (x *Index) GetStats() Stats {
	return Stats{
		Extends:  atomic.SwapInt64(&x.extends, 0),
		Restarts: atomic.SwapInt64(&x.restarts, 0),
	}
}

// saPosition returns the bi-interval covering the whole suffix array, in
// SA coordinates.
func (x *Index) saPosition() Position {
	return Position{0, 0, x.csa.DataSize() - x.csa.NumSequences() - 1}
}

// charPosition returns the bi-interval of single-character matches of c,
// in BWT coordinates.
func (x *Index) charPosition(c byte) Position {
	if !IsBase(c) {
		return EmptyPosition
	}
	fwd := x.csa.CharRange(c)
	if fwd.IsEmpty() {
		return EmptyPosition
	}
	fwd = x.csa.ConvertToBWTRange(fwd)
	// In a well-formed bidirectional collection the complement's range has
	// the same length.
	rev := x.csa.ConvertToBWTRange(x.csa.CharRange(ReverseComplement(c)))
	return Position{fwd.Start, rev.Start, fwd.End - fwd.Start}
}

// convertToSAPosition shifts a BWT-coordinate bi-interval down past the
// end-marker rows.
func (x *Index) convertToSAPosition(p Position) Position {
	p.ForwardStart -= x.csa.NumSequences()
	p.ReverseStart -= x.csa.NumSequences()
	return p
}
