// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package fasta parses FASTA files into memory for indexing.  FASTA files
// consist of a number of named sequences that may be interrupted by
// newlines.  For example:
//
// >chr7
// ACGTAC
// GAGGAC
// GCG
// >chr8
// ACGT
//
// Note: Sequence names are defined to be the stretch of characters
// excluding spaces immediately after '>'.  Any text after a space is
// ignored.  For example, '>chr1 A viral sequence' becomes 'chr1'.
//
// With Opts.Normalize, sequences are upper-cased and IUPAC ambiguity
// codes are collapsed to N, so that every base is in the {A,C,G,T,N}
// alphabet expected by the FMD-index.
package fasta

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// Fasta represents FASTA-formatted data, consisting of a set of named
// sequences.
type Fasta interface {
	// Get returns a substring of the given sequence name at the given
	// coordinates, which are treated as a 0-based half-open interval
	// [start, end).  Get is thread-safe.
	Get(seqName string, start, end uint64) (string, error)

	// Len returns the length of the given sequence.
	Len(seqName string) (uint64, error)

	// SeqNames returns the names of all sequences, in the order of
	// appearance in the FASTA file.
	SeqNames() []string

	// Seqs returns all sequences, in the order of appearance in the
	// FASTA file.
	Seqs() []string
}

// Opts controls parsing.
type Opts struct {
	// Normalize upper-cases every base and maps other letters, '*' and
	// '-' to N.  Any other character is rejected with an error.
	Normalize bool
}

type fasta struct {
	seqs     map[string]string
	seqNames []string
}

// normalizeBase maps one raw FASTA byte to the DNA alphabet.  Lowercase
// (soft-masked) bases are upper-cased; IUPAC ambiguity codes, any other
// letter, '*' and '-' become N.  It returns false for any other byte.
func normalizeBase(c byte) (byte, bool) {
	if 'a' <= c && c <= 'z' {
		c -= 'a' - 'A'
	}
	switch c {
	case 'A', 'C', 'G', 'T', 'N':
		return c, true
	}
	if 'A' <= c && c <= 'Z' || c == '*' || c == '-' {
		return 'N', true
	}
	return 0, false
}

func normalize(line string) (string, error) {
	out := make([]byte, len(line))
	for i := 0; i < len(line); i++ {
		c, ok := normalizeBase(line[i])
		if !ok {
			return "", errors.Errorf("invalid sequence character %q", line[i])
		}
		out[i] = c
	}
	return string(out), nil
}

// New parses FASTA data from r, holding every sequence in memory.
func New(r io.Reader, opts Opts) (Fasta, error) {
	f := &fasta{seqs: make(map[string]string)}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(nil, 1024*1024*300)
	var seqName string
	var seq strings.Builder
	flush := func() error {
		if seq.Len() == 0 {
			return nil
		}
		if seqName == "" {
			return errors.Errorf("malformed FASTA file")
		}
		if _, ok := f.seqs[seqName]; ok {
			return errors.Errorf("duplicate sequence name %s", seqName)
		}
		f.seqs[seqName] = seq.String()
		f.seqNames = append(f.seqNames, seqName)
		seq.Reset()
		return nil
	}
	for scanner.Scan() {
		line := scanner.Text()
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' { // Start a new sequence.
			if err := flush(); err != nil {
				return nil, err
			}
			seqName = strings.Split(line[1:], " ")[0]
			continue
		}
		if opts.Normalize {
			var err error
			if line, err = normalize(line); err != nil {
				return nil, errors.Wrapf(err, "sequence %s", seqName)
			}
		}
		seq.WriteString(line)
	}
	if scanner.Err() != nil {
		return nil, errors.Wrap(scanner.Err(), "couldn't read FASTA data")
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return f, nil
}

// Get implements Fasta.Get().
func (f *fasta) Get(seqName string, start, end uint64) (string, error) {
	s, ok := f.seqs[seqName]
	if !ok {
		return "", errors.Errorf("sequence not found: %s", seqName)
	}
	if end <= start {
		return "", errors.Errorf("start must be less than end")
	}
	if end > uint64(len(s)) {
		return "", errors.Errorf("invalid query range %d - %d for sequence %s with length %d",
			start, end, seqName, len(s))
	}
	return s[start:end], nil
}

// Len implements Fasta.Len().
func (f *fasta) Len(seqName string) (uint64, error) {
	s, ok := f.seqs[seqName]
	if !ok {
		return 0, errors.Errorf("sequence not found: %s", seqName)
	}
	return uint64(len(s)), nil
}

// SeqNames implements Fasta.SeqNames().
func (f *fasta) SeqNames() []string {
	return f.seqNames
}

// Seqs implements Fasta.Seqs().
func (f *fasta) Seqs() []string {
	out := make([]string, len(f.seqNames))
	for i, name := range f.seqNames {
		out[i] = f.seqs[name]
	}
	return out
}
