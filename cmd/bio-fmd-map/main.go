// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Command bio-fmd-map maps every base of every query sequence to its
// unique position in a reference, using an FMD-index over the reference
// and its reverse complement.
//
// Usage:
//
//	bio-fmd-map -ref ref.fa[.gz] -queries reads.fa[.gz] [-out out.tsv]
//
// The output has one row per query base:
//
//	query   offset  ref     strand  pos
//
// with "." in the last three columns for unmappable bases.  Queries are
// mapped in parallel.
package main

import (
	"flag"
	"runtime"
	"strconv"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/traverse"
	"github.com/grailbio/base/tsv"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/fmd/encoding/fasta"
	"github.com/grailbio/fmd/fmd"
	"github.com/grailbio/fmd/rlcsa"
)

var (
	refFlag     = flag.String("ref", "", "Reference FASTA file, optionally gzipped.")
	queriesFlag = flag.String("queries", "", "Query FASTA file, optionally gzipped.")
	outFlag     = flag.String("out", "/dev/stdout", "Output TSV path.")
	sampleRate  = flag.Int("sample-rate", rlcsa.DefaultOpts.SampleRate, "Suffix array sample rate of the built index.")
	parallelism = flag.Int("parallelism", runtime.NumCPU(), "Number of queries mapped concurrently.")
)

func main() {
	shutdown := grail.Init()
	defer shutdown()
	if *refFlag == "" || *queriesFlag == "" {
		log.Panicf("-ref and -queries are required")
	}
	ctx := vcontext.Background()

	ref, err := fasta.ReadPath(ctx, *refFlag, fasta.Opts{Normalize: true})
	if err != nil {
		log.Panicf("read %s: %v", *refFlag, err)
	}
	queries, err := fasta.ReadPath(ctx, *queriesFlag, fasta.Opts{Normalize: true})
	if err != nil {
		log.Panicf("read %s: %v", *queriesFlag, err)
	}

	log.Printf("indexing %d sequences", len(ref.SeqNames()))
	index, err := fmd.Build(ref.Seqs(), rlcsa.Opts{SampleRate: *sampleRate})
	if err != nil {
		log.Panicf("build index: %v", err)
	}

	// The index is read-only; queries map independently.
	querySeqs := queries.Seqs()
	results := make([][]fmd.Mapping, len(querySeqs))
	err = traverse.Each(*parallelism, func(job int) error {
		for i := job; i < len(querySeqs); i += *parallelism {
			results[i] = index.Map(querySeqs[i], 0, -1)
		}
		return nil
	})
	if err != nil {
		log.Panicf("map: %v", err)
	}

	out, err := file.Create(ctx, *outFlag)
	if err != nil {
		log.Panicf("create %s: %v", *outFlag, err)
	}
	w := tsv.NewWriter(out.Writer(ctx))
	w.WriteString("#query\toffset\tref\tstrand\tpos")
	if err := w.EndLine(); err != nil {
		log.Panicf("write %s: %v", *outFlag, err)
	}
	refNames := ref.SeqNames()
	for i, name := range queries.SeqNames() {
		for off, m := range results[i] {
			w.WriteString(name)
			w.WriteUint32(uint32(off))
			if m.Mapped {
				w.WriteString(refNames[m.TextID/2])
				if m.TextID%2 == 0 {
					w.WriteByte('+')
				} else {
					w.WriteByte('-')
				}
				w.WriteString(strconv.FormatInt(m.Offset, 10))
			} else {
				w.WriteString(".")
				w.WriteString(".")
				w.WriteString(".")
			}
			if err := w.EndLine(); err != nil {
				log.Panicf("write %s: %v", *outFlag, err)
			}
		}
	}
	if err := w.Flush(); err != nil {
		log.Panicf("flush %s: %v", *outFlag, err)
	}
	if err := out.Close(ctx); err != nil {
		log.Panicf("close %s: %v", *outFlag, err)
	}
	stats := index.GetStats()
	log.Printf("mapped %d queries: %d extends, %d restarts", len(querySeqs), stats.Extends, stats.Restarts)
}
