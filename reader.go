// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package huff

import (
	"bytes"
	"io"

	"github.com/dsnet/huff/internal/bitstream"
	"github.com/dsnet/huff/internal/errors"
)

// Header is the part of a container that precedes the encoded symbols.
type Header struct {
	Count    uint32 // Number of encoded symbols
	Tree     *Tree  // Decoded code tree
	TreeBits int64  // Size of the serialized tree in bits
}

// ReadHeader reads the symbol count and the code tree from the start of a
// container without decoding any symbols.
func ReadHeader(r io.Reader) (hdr Header, err error) {
	defer translateEOF(&err)
	defer errors.Recover(&err)

	return readHeader(bitstream.NewReader(r)), nil
}

func readHeader(br *bitstream.Reader) Header {
	cnt := uint32(br.ReadBits(32))
	pos := br.BitsRead()
	t := readTree(br)
	return Header{Count: cnt, Tree: t, TreeBits: br.BitsRead() - pos}
}

// Decompress returns the data held by a container.
// Any bytes following the last encoded symbol are ignored.
func Decompress(container []byte) (data []byte, err error) {
	defer translateEOF(&err)
	defer errors.Recover(&err)

	br := bitstream.NewReader(bytes.NewReader(container))
	hdr := readHeader(br)

	// Every symbol takes at least one bit, so a count beyond what the
	// container could hold is certain to fail; avoid allocating for it.
	n := uint64(hdr.Count)
	if limit := 8 * uint64(len(container)); n > limit {
		n = limit
	}
	data = make([]byte, 0, n)
	for i := uint32(0); i < hdr.Count; i++ {
		data = append(data, hdr.Tree.decodeSymbol(br))
	}
	return data, nil
}

// Reader decodes the symbols of a container read from an io.Reader.
//
// The header is read upon the first call to Read. Read returns io.EOF once
// exactly the number of symbols given in the header have been returned.
// Any error is persistent.
type Reader struct {
	InputOffset  int64 // Total number of bytes spanned by the bits consumed
	OutputOffset int64 // Total number of bytes returned by Read

	rd     io.Reader
	br     bitstream.Reader
	hdr    *Header
	toRead uint32 // Number of symbols left to decode
	err    error
}

// NewReader returns a new Reader that decompresses the container in r.
//
// If r does not implement io.ByteReader, the Reader may read more bytes from r
// than the container occupies.
func NewReader(r io.Reader) *Reader {
	zr := new(Reader)
	zr.Reset(r)
	return zr
}

func (zr *Reader) Read(buf []byte) (int, error) {
	if zr.err != nil {
		return 0, zr.err
	}
	cnt, err := zr.read(buf)
	zr.OutputOffset += int64(cnt)
	zr.InputOffset = zr.br.BytesRead()
	zr.err = err
	return cnt, err
}

func (zr *Reader) read(buf []byte) (cnt int, err error) {
	defer translateEOF(&err)
	defer errors.Recover(&err)

	if zr.hdr == nil {
		hdr := readHeader(&zr.br)
		zr.hdr, zr.toRead = &hdr, hdr.Count
	}
	if zr.toRead == 0 {
		return 0, io.EOF
	}
	for cnt < len(buf) && zr.toRead > 0 {
		buf[cnt] = zr.hdr.Tree.decodeSymbol(&zr.br)
		cnt++
		zr.toRead--
	}
	return cnt, nil
}

// Header returns the header of the container, reading it if necessary.
func (zr *Reader) Header() (Header, error) {
	if zr.hdr == nil {
		if _, err := zr.Read(nil); err != nil && err != io.EOF {
			return Header{}, err
		}
	}
	if zr.hdr == nil {
		return Header{}, zr.err
	}
	return *zr.hdr, nil
}

// Close ends the use of the Reader. It does not close the underlying
// io.Reader. It reports any error other than io.EOF encountered while reading.
func (zr *Reader) Close() error {
	if zr.err == errClosed || zr.err == io.EOF {
		zr.err = errClosed
		return nil
	}
	err := zr.err
	zr.err = errClosed
	return err
}

// Reset discards the Reader's state and makes it equivalent to the result of
// NewReader, but reading from r instead.
func (zr *Reader) Reset(r io.Reader) error {
	*zr = Reader{rd: r}
	zr.br.Init(r)
	return nil
}
