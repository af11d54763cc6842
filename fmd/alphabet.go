// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package fmd

import (
	"github.com/grailbio/base/log"
	gunsafe "github.com/grailbio/base/unsafe"
	"github.com/grailbio/bio/biosimd"
)

// NumBases is the size of the DNA alphabet.
const NumBases = 5

// Bases lists the alphabet in alphabetical order.
const Bases = "ACGTN"

// BasesReverseComplement lists the alphabet ordered alphabetically by
// reverse complement.  Backward extension subdivides the reverse-strand
// interval in this order; using the N-last order from the paper instead
// silently corrupts the reverse side of every bi-interval.
const BasesReverseComplement = "TGCNA"

// IsBase reports whether c is a valid DNA base.  Only capital letters are
// allowed, and N counts.
func IsBase(c byte) bool {
	switch c {
	case 'A', 'C', 'G', 'T', 'N':
		return true
	}
	return false
}

// ReverseComplement returns the complement of a single base.  N is its own
// complement.  Any other input is a programmer error; callers must
// pre-sanitise.
func ReverseComplement(c byte) byte {
	switch c {
	case 'A':
		return 'T'
	case 'C':
		return 'G'
	case 'G':
		return 'C'
	case 'T':
		return 'A'
	case 'N':
		return 'N'
	}
	log.Panicf("fmd: cannot reverse complement %q", c)
	return 0
}

// ReverseComplementString returns the reverse complement of a sequence.
// The sequence must already be over {A,C,G,T,N}; callers pre-sanitise.
func ReverseComplementString(s string) string {
	out := make([]byte, len(s))
	biosimd.ReverseComp8NoValidate(out, gunsafe.StringToBytes(s))
	return gunsafe.BytesToString(out)
}
