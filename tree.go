// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package huff

import (
	"bytes"
	"container/heap"
	"io"

	"github.com/dsnet/huff/internal/bitstream"
	"github.com/dsnet/huff/internal/errors"
)

const (
	maxLeaves = 256             // One leaf per byte value
	maxNodes  = 2*maxLeaves - 1 // Size of a full binary tree with maxLeaves
)

// node is an element of the Tree arena. Internal nodes refer to their
// children by index; every index is referenced by at most one parent.
type node struct {
	weight uint64 // Sum of descendant leaf counts; zero for decoded trees
	left   int    // Index of the 0-branch child (internal nodes only)
	right  int    // Index of the 1-branch child (internal nodes only)
	sym    byte   // Symbol value (leaf nodes only)
	leaf   bool
}

// Tree is a full binary tree whose leaves hold byte values.
// The root is always an internal node, so every leaf has a non-empty path.
//
// A Tree is either built from symbol frequencies by BuildTree, in which case
// its nodes carry weights, or decoded from its canonical serialization, in
// which case they do not.
type Tree struct {
	nodes    []node
	root     int
	weighted bool
}

// BuildTree builds the Huffman tree for data.
//
// Equal weights are resolved by insertion order: leaves are inserted in
// ascending byte order, followed by any dummy leaves, followed by internal
// nodes in the order they are created. The node removed first becomes the
// left child. Thus, the same input always yields the same tree.
//
// If data has fewer than two distinct byte values, zero-weight dummy leaves
// with the value 0 are added so that the root is internal.
func BuildTree(data []byte) *Tree {
	var freqs [256]uint64
	for _, b := range data {
		freqs[b]++
	}
	return buildTree(&freqs)
}

func buildTree(freqs *[256]uint64) *Tree {
	t := &Tree{nodes: make([]node, 0, maxNodes), weighted: true}
	for sym, cnt := range freqs {
		if cnt > 0 {
			t.nodes = append(t.nodes, node{weight: cnt, sym: byte(sym), leaf: true})
		}
	}
	for len(t.nodes) < 2 {
		t.nodes = append(t.nodes, node{leaf: true})
	}

	h := nodeHeap{t: t, idxs: make([]int, len(t.nodes))}
	for i := range h.idxs {
		h.idxs[i] = i
	}
	heap.Init(&h)
	for h.Len() > 1 {
		l := heap.Pop(&h).(int)
		r := heap.Pop(&h).(int)
		w := t.nodes[l].weight + t.nodes[r].weight
		t.nodes = append(t.nodes, node{weight: w, left: l, right: r})
		heap.Push(&h, len(t.nodes)-1)
	}
	t.root = h.idxs[0]
	return t
}

// nodeHeap is a min-heap of arena indices ordered by weight, then by index.
type nodeHeap struct {
	t    *Tree
	idxs []int
}

func (h *nodeHeap) Len() int      { return len(h.idxs) }
func (h *nodeHeap) Swap(i, j int) { h.idxs[i], h.idxs[j] = h.idxs[j], h.idxs[i] }
func (h *nodeHeap) Less(i, j int) bool {
	ni, nj := h.idxs[i], h.idxs[j]
	wi, wj := h.t.nodes[ni].weight, h.t.nodes[nj].weight
	return wi < wj || (wi == wj && ni < nj)
}
func (h *nodeHeap) Push(x interface{}) { h.idxs = append(h.idxs, x.(int)) }
func (h *nodeHeap) Pop() interface{} {
	n := len(h.idxs) - 1
	x := h.idxs[n]
	h.idxs = h.idxs[:n]
	return x
}

// NumLeaves reports the number of leaf nodes, including dummy leaves.
func (t *Tree) NumLeaves() int {
	var n int
	for _, nd := range t.nodes {
		if nd.leaf {
			n++
		}
	}
	return n
}

// NumNodes reports the total number of nodes.
func (t *Tree) NumNodes() int { return len(t.nodes) }

// Weight reports the total weight of the tree, which is the length of the
// input it was built from. It is zero for decoded trees.
func (t *Tree) Weight() uint64 { return t.nodes[t.root].weight }

// write serializes the tree in preorder: a 0 bit for an internal node,
// followed by its left and right subtrees, or a 1 bit for a leaf, followed by
// its 8-bit value.
func (t *Tree) write(bw *bitstream.Writer) {
	t.writeNode(bw, t.root)
}

func (t *Tree) writeNode(bw *bitstream.Writer, i int) {
	n := &t.nodes[i]
	if n.leaf {
		bw.WriteBit(true)
		bw.WriteBits(uint64(n.sym), 8)
		return
	}
	bw.WriteBit(false)
	t.writeNode(bw, n.left)
	t.writeNode(bw, n.right)
}

// readTree decodes a tree serialized by write.
// The node limit bounds both the number of leaves and the recursion depth.
func readTree(br *bitstream.Reader) *Tree {
	t := &Tree{nodes: make([]node, 0, maxNodes)}
	t.root = t.readNode(br)
	if t.nodes[t.root].leaf {
		errors.Panic(errLeafRoot)
	}
	return t
}

func (t *Tree) readNode(br *bitstream.Reader) int {
	if len(t.nodes) >= maxNodes {
		errors.Panic(errTreeSize)
	}
	i := len(t.nodes)
	if br.ReadBit() {
		sym := byte(br.ReadBits(8))
		t.nodes = append(t.nodes, node{sym: sym, leaf: true})
		return i
	}
	t.nodes = append(t.nodes, node{})
	l := t.readNode(br)
	r := t.readNode(br)
	t.nodes[i].left, t.nodes[i].right = l, r
	return i
}

// decodeSymbol walks from the root to a leaf, reading one bit per level.
func (t *Tree) decodeSymbol(br *bitstream.Reader) byte {
	n := &t.nodes[t.root]
	for !n.leaf {
		if br.ReadBit() {
			n = &t.nodes[n.right]
		} else {
			n = &t.nodes[n.left]
		}
	}
	return n.sym
}

// MarshalBinary returns the canonical serialization of the tree, padded with
// zero bits to a whole number of bytes. Weights are not serialized.
func (t *Tree) MarshalBinary() (b []byte, err error) {
	defer errors.Recover(&err)

	var buf bytes.Buffer
	bw := bitstream.NewWriter(&buf)
	t.write(bw)
	if _, err := bw.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary decodes a tree produced by MarshalBinary.
// Trailing bits after the tree are ignored.
func (t *Tree) UnmarshalBinary(b []byte) (err error) {
	defer translateEOF(&err)
	defer errors.Recover(&err)

	*t =*readTree(bitstream.NewReader(bytes.NewReader(b)))
	return nil
}

// translateEOF converts a premature end of the bit stream into a format error.
// It must be deferred before errors.Recover so that it runs afterwards.
func translateEOF(err *error) {
	if *err == io.ErrUnexpectedEOF {
		*err = errTruncated
	}
}
