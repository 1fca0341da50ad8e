// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bitstream

import (
	"io"

	"github.com/icza/bitio"

	"github.com/dsnet/huff/internal/errors"
)

// Writer writes individual bits to an underlying io.Writer.
//
// Bits are cached until a byte is complete. Flush must be called to emit the
// final partial byte.
type Writer struct {
	bw     *bitio.Writer
	offset int64 // Number of bits written, excluding padding
	pads   int64 // Number of padding bits emitted by Flush
}

// NewWriter returns a Writer writing to w.
func NewWriter(w io.Writer) *Writer {
	bw := new(Writer)
	bw.Init(w)
	return bw
}

// Init resets the Writer to write to w.
func (bw *Writer) Init(w io.Writer) {
	*bw = Writer{bw: bitio.NewWriter(w)}
}

// BitsWritten reports the number of bits written so far, excluding padding.
func (bw *Writer) BitsWritten() int64 { return bw.offset }

// BytesWritten reports the number of bytes emitted once the stream is flushed.
func (bw *Writer) BytesWritten() int64 { return (bw.offset + bw.pads + 7) / 8 }

// BitPos reports the position of the cursor within the current byte (0..7).
func (bw *Writer) BitPos() uint { return uint((bw.offset + bw.pads) & 7) }

// WriteBit writes a single bit.
func (bw *Writer) WriteBit(bit bool) {
	if err := bw.bw.WriteBool(bit); err != nil {
		errors.Panic(err)
	}
	bw.offset++
}

// WriteBits writes the lower nb bits of v, most-significant first, where nb
// is at most 64.
func (bw *Writer) WriteBits(v uint64, nb uint) {
	if nb == 0 {
		return
	}
	if nb < 64 {
		v &= 1<<nb - 1
	}
	if err := bw.bw.WriteBits(v, uint8(nb)); err != nil {
		errors.Panic(err)
	}
	bw.offset += int64(nb)
}

// Flush pads the current byte with zero bits and writes all cached data to
// the underlying writer. It returns the number of padding bits written.
//
// Unlike the other methods, Flush reports failures as an error value.
func (bw *Writer) Flush() (uint, error) {
	nb := uint(-(bw.offset + bw.pads) & 7)
	if err := bw.bw.Close(); err != nil {
		return 0, err
	}
	bw.pads += int64(nb)
	return nb, nil
}
