// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package rlcsa

import (
	"encoding/binary"
	"io"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/recordio"
	"github.com/grailbio/base/recordio/recordiozstd"
)

func init() {
	recordiozstd.Init()
}

// The index is persisted as a recordio stream of flat little-endian
// sections: one meta record, one alphabet record, one record per
// per-character vector, one record for the sample-row vector, and one for
// the sample values.
const (
	ioMagicHeader = "rlcsa_index"
	ioVersion     = 1
)

func appendUint64(b []byte, v uint64) []byte {
	var t [8]byte
	binary.LittleEndian.PutUint64(t[:], v)
	return append(b, t[:]...)
}

func marshalVector(v *BitVector) []byte {
	b := make([]byte, 0, 16+8*len(v.words))
	b = appendUint64(b, uint64(v.size))
	b = appendUint64(b, uint64(len(v.words)))
	for _, w := range v.words {
		b = appendUint64(b, uint64(w))
	}
	return b
}

func unmarshalVector(b []byte) (*BitVector, error) {
	if len(b) < 16 {
		return nil, errors.E("rlcsa: truncated bit vector record")
	}
	size := int64(binary.LittleEndian.Uint64(b[:8]))
	nWords := int(binary.LittleEndian.Uint64(b[8:16]))
	if len(b) != 16+8*nWords {
		return nil, errors.E("rlcsa: bit vector record length mismatch")
	}
	v := NewBitVector(size)
	if len(v.words) != nWords {
		return nil, errors.E("rlcsa: bit vector word count mismatch")
	}
	for k := range v.words {
		v.words[k] = uintptr(binary.LittleEndian.Uint64(b[16+8*k:]))
	}
	v.Finish()
	return v, nil
}

// Save writes the index to w.  The stream can be read back with Load.
func (x *Index) Save(w io.Writer) error {
	rw := recordio.NewWriter(w, recordio.WriterOpts{
		Marshal:      func(scratch []byte, v interface{}) ([]byte, error) { return v.([]byte), nil },
		Transformers: []string{recordiozstd.Name},
	})
	rw.AddHeader(ioMagicHeader, true)

	meta := make([]byte, 0, 32+8*len(x.starts))
	meta = appendUint64(meta, ioVersion)
	meta = appendUint64(meta, uint64(x.numSequences))
	meta = appendUint64(meta, uint64(x.dataSize))
	meta = appendUint64(meta, uint64(x.sampleRate))
	for _, s := range x.starts {
		meta = appendUint64(meta, uint64(s))
	}
	rw.Append(meta)

	symbols := x.alphabet.Symbols()
	alpha := make([]byte, 0, 8+9*len(symbols))
	alpha = appendUint64(alpha, uint64(len(symbols)))
	for _, c := range symbols {
		alpha = append(alpha, c)
		alpha = appendUint64(alpha, uint64(x.alphabet.Count(c)))
	}
	rw.Append(alpha)

	for _, c := range symbols {
		rw.Append(marshalVector(x.vectors[c]))
	}
	rw.Append(marshalVector(x.sampledRows))

	samples := make([]byte, 0, 8+8*len(x.samples))
	samples = appendUint64(samples, uint64(len(x.samples)))
	for _, s := range x.samples {
		samples = appendUint64(samples, uint64(s))
	}
	rw.Append(samples)
	return rw.Finish()
}

// Load reads an index written by Save.
func Load(r io.ReadSeeker) (*Index, error) {
	sc := recordio.NewScanner(r, recordio.ScannerOpts{})
	found := false
	for _, kv := range sc.Header() {
		if kv.Key == ioMagicHeader {
			found = true
		}
	}
	if !found {
		return nil, errors.E("rlcsa.Load: not an rlcsa index stream")
	}
	next := func() ([]byte, error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return nil, err
			}
			return nil, errors.E("rlcsa.Load: unexpected end of stream")
		}
		// Copy: the scanner may reuse its buffer on the next Scan.
		in := sc.Get().([]byte)
		out := make([]byte, len(in))
		copy(out, in)
		return out, nil
	}

	meta, err := next()
	if err != nil {
		return nil, err
	}
	if len(meta) < 32 {
		return nil, errors.E("rlcsa.Load: truncated meta record")
	}
	if v := binary.LittleEndian.Uint64(meta[:8]); v != ioVersion {
		return nil, errors.E("rlcsa.Load: unsupported version", v)
	}
	x := &Index{
		numSequences: int64(binary.LittleEndian.Uint64(meta[8:16])),
		dataSize:     int64(binary.LittleEndian.Uint64(meta[16:24])),
		sampleRate:   int64(binary.LittleEndian.Uint64(meta[24:32])),
	}
	if int64(len(meta)) != 32+8*x.numSequences {
		return nil, errors.E("rlcsa.Load: meta record length mismatch")
	}
	x.starts = make([]int64, x.numSequences)
	for i := range x.starts {
		x.starts[i] = int64(binary.LittleEndian.Uint64(meta[32+8*i:]))
	}

	alpha, err := next()
	if err != nil {
		return nil, err
	}
	if len(alpha) < 8 {
		return nil, errors.E("rlcsa.Load: truncated alphabet record")
	}
	nSymbols := int(binary.LittleEndian.Uint64(alpha[:8]))
	if len(alpha) != 8+9*nSymbols {
		return nil, errors.E("rlcsa.Load: alphabet record length mismatch")
	}
	var counts [256]int64
	symbols := make([]byte, nSymbols)
	for i := 0; i < nSymbols; i++ {
		c := alpha[8+9*i]
		symbols[i] = c
		counts[c] = int64(binary.LittleEndian.Uint64(alpha[9+9*i:]))
	}
	x.alphabet = newAlphabet(counts)

	for _, c := range symbols {
		rec, err := next()
		if err != nil {
			return nil, err
		}
		if x.vectors[c], err = unmarshalVector(rec); err != nil {
			return nil, err
		}
	}
	rec, err := next()
	if err != nil {
		return nil, err
	}
	if x.sampledRows, err = unmarshalVector(rec); err != nil {
		return nil, err
	}

	rec, err = next()
	if err != nil {
		return nil, err
	}
	if len(rec) < 8 {
		return nil, errors.E("rlcsa.Load: truncated samples record")
	}
	nSamples := int(binary.LittleEndian.Uint64(rec[:8]))
	if len(rec) != 8+8*nSamples {
		return nil, errors.E("rlcsa.Load: samples record length mismatch")
	}
	x.samples = make([]int64, nSamples)
	for i := range x.samples {
		x.samples[i] = int64(binary.LittleEndian.Uint64(rec[8+8*i:]))
	}
	return x, nil
}
