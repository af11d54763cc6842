// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package rlcsa

import "sort"

// buildSuffixArray computes the suffix array of data by prefix doubling
// (Manber-Myers).  O(n log^2 n); construction is a one-time cost and is not
// part of the query path.
func buildSuffixArray(data []byte) []int64 {
	n := len(data)
	if n == 0 {
		return nil
	}
	sa := make([]int, n)
	rank := make([]int, n)
	tmp := make([]int, n)
	for i := 0; i < n; i++ {
		sa[i] = i
		rank[i] = int(data[i])
	}
	rankAt := func(i int) int {
		if i >= n {
			return -1
		}
		return rank[i]
	}
	for k := 1; ; k *= 2 {
		less := func(a, b int) bool {
			if rank[a] != rank[b] {
				return rank[a] < rank[b]
			}
			return rankAt(a+k) < rankAt(b+k)
		}
		sort.Slice(sa, func(i, j int) bool { return less(sa[i], sa[j]) })
		tmp[sa[0]] = 0
		for i := 1; i < n; i++ {
			tmp[sa[i]] = tmp[sa[i-1]]
			if less(sa[i-1], sa[i]) {
				tmp[sa[i]]++
			}
		}
		copy(rank, tmp)
		if rank[sa[n-1]] == n-1 {
			break
		}
	}
	out := make([]int64, n)
	for i, p := range sa {
		out[i] = int64(p)
	}
	return out
}
