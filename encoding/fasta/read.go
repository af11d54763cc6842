// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package fasta

import (
	"context"
	"io"
	"strings"

	"github.com/grailbio/base/file"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

// ReadPath reads a FASTA file from a path, transparently decompressing
// ".gz" files.
func ReadPath(ctx context.Context, path string, opts Opts) (fa Fasta, err error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer file.CloseAndReport(ctx, in, &err)
	r := io.Reader(in.Reader(ctx))
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, errors.Wrapf(err, "gunzip %s", path)
		}
		defer gz.Close() // nolint: errcheck
		r = gz
	}
	return New(r, opts)
}
