// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package huff

import "github.com/dsnet/huff/internal/errors"

// Code is the path from the root of a tree to a leaf.
// The path is stored in the lower Len bits of Val, where the most-significant
// of those bits is the first step taken and a 0 bit descends left.
type Code struct {
	Val uint64
	Len uint
}

func (c Code) String() string {
	b := make([]byte, c.Len)
	for i := range b {
		b[i] = '0' + byte(c.Val>>(c.Len-1-uint(i))&1)
	}
	return string(b)
}

// Codes maps every byte value to its code.
// Values without a leaf in the tree have a zero-length code.
type Codes [256]Code

// Codes derives the code of every leaf in the tree.
//
// If the tree holds the same value in several leaves, the code of the leaf
// visited last in preorder is kept; decoding any of them yields the same value.
// It reports an error if some path is longer than 64 bits, which cannot happen
// for trees built from inputs of at most MaxInputSize bytes.
func (t *Tree) Codes() (cs Codes, err error) {
	defer errors.Recover(&err)
	t.walkCodes(&cs, t.root, Code{})
	return cs, nil
}

func (t *Tree) walkCodes(cs *Codes, i int, c Code) {
	n := &t.nodes[i]
	if n.leaf {
		cs[n.sym] = c
		return
	}
	if c.Len == 64 {
		errors.Panic(errCodeTooLong)
	}
	t.walkCodes(cs, n.left, Code{Val: c.Val << 1, Len: c.Len + 1})
	t.walkCodes(cs, n.right, Code{Val: c.Val<<1 | 1, Len: c.Len + 1})
}

// Len reports the number of bits needed to encode data with these codes.
// Bytes without a code are counted as zero bits.
func (cs *Codes) Len(data []byte) (n uint64) {
	for _, b := range data {
		n += uint64(cs[b].Len)
	}
	return n
}
