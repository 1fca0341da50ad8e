// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package bitstream implements bit-granular reading and writing over byte
// oriented streams.
//
// Bits are packed most-significant-bit first: the first bit of a stream is
// bit 7 of the first byte. Multi-bit values are likewise written with their
// most-significant bit first, so a byte-aligned 32-bit value is stored in
// big-endian order.
//
// Like the other internal packages, the Reader and Writer report failures by
// calling errors.Panic. Public packages must recover with errors.Recover.
package bitstream

import (
	"io"

	"github.com/icza/bitio"

	"github.com/dsnet/huff/internal/errors"
)

// Reader reads individual bits from an underlying io.Reader.
//
// If the underlying reader does not implement io.ByteReader, it is wrapped
// in a bufio.Reader and may consume more bytes than strictly necessary.
type Reader struct {
	br     *bitio.Reader
	offset int64 // Number of bits read
}

// NewReader returns a Reader reading from r.
func NewReader(r io.Reader) *Reader {
	br := new(Reader)
	br.Init(r)
	return br
}

// Init resets the Reader to read from r.
func (br *Reader) Init(r io.Reader) {
	*br = Reader{br: bitio.NewReader(r)}
}

// BitsRead reports the number of bits consumed so far.
func (br *Reader) BitsRead() int64 { return br.offset }

// BytesRead reports the number of bytes the consumed bits span.
func (br *Reader) BytesRead() int64 { return (br.offset + 7) / 8 }

// BitPos reports the position of the cursor within the current byte (0..7).
func (br *Reader) BitPos() uint { return uint(br.offset & 7) }

// ReadBit reads a single bit.
// Hitting the end of the stream panics with io.ErrUnexpectedEOF.
func (br *Reader) ReadBit() bool {
	bit, err := br.br.ReadBool()
	if err != nil {
		errors.Panic(unexpectedEOF(err))
	}
	br.offset++
	return bit
}

// ReadBits reads nb bits, most-significant first, where nb is at most 64.
// Hitting the end of the stream panics with io.ErrUnexpectedEOF.
func (br *Reader) ReadBits(nb uint) uint64 {
	if nb == 0 {
		return 0
	}
	v, err := br.br.ReadBits(uint8(nb))
	if err != nil {
		errors.Panic(unexpectedEOF(err))
	}
	br.offset += int64(nb)
	return v
}

// ReadPads discards the bits up to the next byte boundary and returns them.
func (br *Reader) ReadPads() uint {
	nb := -uint(br.offset) & 7
	return uint(br.ReadBits(nb))
}

func unexpectedEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}
