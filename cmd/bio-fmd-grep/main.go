// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Command bio-fmd-grep searches a FASTA reference for exact occurrences of
// a DNA pattern, on both strands at once, using an FMD-index.
//
// Usage:
//
//	bio-fmd-grep [-total] -ref ref.fa[.gz] pattern
//
// By default every occurrence is printed as "sequence<TAB>offset", with
// "(-)" marking reverse-strand hits.  With -total only the occurrence
// count is printed.  -save-index and -index persist and reuse the built
// index.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/fmd/encoding/fasta"
	"github.com/grailbio/fmd/fmd"
	"github.com/grailbio/fmd/rlcsa"
)

var (
	refFlag       = flag.String("ref", "", "Reference FASTA file, optionally gzipped.")
	indexFlag     = flag.String("index", "", "Load a previously saved index instead of building one.")
	saveIndexFlag = flag.String("save-index", "", "After building the index, save it to this path.")
	totalFlag     = flag.Bool("total", false, "Print only the total number of occurrences.")
	sampleRate    = flag.Int("sample-rate", rlcsa.DefaultOpts.SampleRate, "Suffix array sample rate of the built index.")
)

func main() {
	shutdown := grail.Init()
	defer shutdown()
	if flag.NArg() != 1 || *refFlag == "" {
		fmt.Fprintln(os.Stderr, "usage: bio-fmd-grep [flags] -ref ref.fa pattern")
		flag.PrintDefaults()
		os.Exit(1)
	}
	pattern := flag.Arg(0)
	ctx := vcontext.Background()

	fa, err := fasta.ReadPath(ctx, *refFlag, fasta.Opts{Normalize: true})
	if err != nil {
		log.Panicf("read %s: %v", *refFlag, err)
	}
	index := buildOrLoadIndex(fa)

	pos := index.Count(pattern, true)
	if forward := index.Count(pattern, false); forward.Size() != pos.Size() {
		log.Panicf("forward count %d != backward count %d", forward.Size(), pos.Size())
	}
	// The bidirectional search and the plain backward search must agree.
	if n := index.CSA().Count(pattern); n != pos.Size() {
		log.Panicf("FMD count %d != RLCSA count %d", pos.Size(), n)
	}

	if *totalFlag {
		fmt.Println(pos.Size())
		return
	}
	names := fa.SeqNames()
	csa := index.CSA()
	for row := int64(0); row < pos.Size(); row++ {
		text, offset := csa.RelativePosition(csa.Locate(pos.ForwardStart + row))
		// Even text ids are references, odd ids their reverse complements.
		name := names[text/2]
		if text%2 == 1 {
			name += "(-)"
		}
		fmt.Printf("%s\t%d\n", name, offset)
	}
}

func buildOrLoadIndex(fa fasta.Fasta) *fmd.Index {
	ctx := vcontext.Background()
	if *indexFlag != "" {
		in, err := file.Open(ctx, *indexFlag)
		if err != nil {
			log.Panicf("open %s: %v", *indexFlag, err)
		}
		csa, err := rlcsa.Load(in.Reader(ctx))
		if err != nil {
			log.Panicf("load %s: %v", *indexFlag, err)
		}
		if err := in.Close(ctx); err != nil {
			log.Panicf("close %s: %v", *indexFlag, err)
		}
		index, err := fmd.New(csa)
		if err != nil {
			log.Panicf("%v", err)
		}
		return index
	}
	index, err := fmd.Build(fa.Seqs(), rlcsa.Opts{SampleRate: *sampleRate})
	if err != nil {
		log.Panicf("build index: %v", err)
	}
	if *saveIndexFlag != "" {
		out, err := file.Create(ctx, *saveIndexFlag)
		if err != nil {
			log.Panicf("create %s: %v", *saveIndexFlag, err)
		}
		if err := index.CSA().Save(out.Writer(ctx)); err != nil {
			log.Panicf("save index: %v", err)
		}
		if err := out.Close(ctx); err != nil {
			log.Panicf("close %s: %v", *saveIndexFlag, err)
		}
	}
	return index
}
