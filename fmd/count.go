// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package fmd

// Count returns the bi-interval of all occurrences of pattern, in SA
// coordinates, searching backward (right to left) or forward.  The empty
// pattern matches the whole suffix array.  Both directions return
// bi-intervals of the same size for any pattern in the index.
func (x *Index) Count(pattern string, backward bool) Position {
	if len(pattern) == 0 {
		return x.saPosition()
	}
	var pos Position
	if backward {
		pos = x.charPosition(pattern[len(pattern)-1])
		for i := len(pattern) - 2; i >= 0 && !pos.IsEmpty(); i-- {
			pos = x.Extend(pos, pattern[i], true)
		}
	} else {
		pos = x.charPosition(pattern[0])
		for i := 1; i < len(pattern) && !pos.IsEmpty(); i++ {
			pos = x.Extend(pos, pattern[i], false)
		}
	}
	if pos.IsEmpty() {
		return EmptyPosition
	}
	return x.convertToSAPosition(pos)
}
