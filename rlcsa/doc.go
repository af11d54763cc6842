// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package rlcsa implements a compressed suffix array over a collection of
// texts, in the style of Mäkinen & Navarro's RLCSA.  The collection is
// stored as a BWT with one end marker per text; the end markers occupy the
// first NumSequences rows of the BWT.  Per-character occurrence vectors
// provide rank/select, a sparse set of suffix-array samples provides
// locate, and the whole structure is immutable after construction.
//
// Coordinate conventions: "BWT rows" include the end-marker rows at the
// front; "SA indices" are BWT rows shifted down by NumSequences.  Locate
// answers are offsets into the concatenated collection (end markers
// included); RelativePosition converts them to (text, offset) pairs.
package rlcsa
