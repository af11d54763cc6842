// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package fmd implements an FMD-index: a bidirectional FM-index over the
// DNA alphabet {A, C, G, T, N} in which every text is present together
// with its reverse complement.  A single backward search therefore finds
// forward and reverse-complement occurrences at once, and a search
// interval can be extended by one character at either end in O(1).
//
// See "Exploring single-sample SNP and INDEL calling with whole-genome de
// novo assembly" (Li, 2012), which defines the FMD-index.
//
// The headline operation is per-base mapping: Map reports, for each base
// of a query, the unique (text, offset) the base must correspond to given
// enough left context, or that the base is unmappable.  MapToRange is the
// analogue against a caller-supplied partition of BWT space.
package fmd
