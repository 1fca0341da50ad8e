// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package huff implements a static Huffman container format.
//
// A container holds a whole input compressed with a single code derived from
// the byte frequencies of that input. It is laid out as follows:
//
//	+---------+------------------+----------------+---------+
//	| N (32b) | tree (preorder)  | N symbol codes | padding |
//	+---------+------------------+----------------+---------+
//
// N is the number of encoded symbols in big-endian order. Everything after it
// is a bit region packed most-significant-bit first and padded with zero bits
// to a byte boundary. The tree is serialized in preorder, where an internal
// node is a 0 bit followed by its left and right subtrees and a leaf is a 1 bit
// followed by its 8-bit value. Each symbol code is the path from the root to
// the symbol's leaf, with 0 selecting the left child.
//
// Errors returned by this package that are not I/O errors from an underlying
// reader or writer implement the following methods:
//
//	IsInvalid() bool   // Misuse of the API, such as an oversized input
//	IsCorrupted() bool // Malformed or truncated container
//	IsClosed() bool    // Use of a closed Reader or Writer
package huff

import (
	"math"

	"github.com/dsnet/huff/internal/errors"
)

// MaxInputSize is the largest input that a container can describe.
const MaxInputSize = math.MaxUint32

func errorf(code int, msg string) errors.Error {
	return errors.Error{Code: code, Pkg: "huff", Msg: msg}
}

var (
	errTruncated   error = errorf(errors.Corrupted, "truncated container")
	errTreeSize    error = errorf(errors.Corrupted, "tree has more than 256 leaves")
	errLeafRoot    error = errorf(errors.Corrupted, "tree root is a leaf")
	errTooLarge    error = errorf(errors.Invalid, "input exceeds 4GiB")
	errCodeTooLong error = errorf(errors.Invalid, "code exceeds 64 bits")
	errMissingCode error = errorf(errors.Internal, "symbol has no code")
	errClosed      error = errorf(errors.Closed, "")
)
