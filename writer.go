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

// Compress returns the container for data.
func Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := encode(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// encode writes the container for data to w and returns the number of bytes
// written.
func encode(w io.Writer, data []byte) (n int64, err error) {
	if uint64(len(data)) > MaxInputSize {
		return 0, errTooLarge
	}

	t := BuildTree(data)
	cs, err := t.Codes()
	if err != nil {
		return 0, err
	}

	var bw bitstream.Writer
	defer func() { n = bw.BytesWritten() }()
	defer errors.Recover(&err)

	bw.Init(w)
	bw.WriteBits(uint64(len(data)), 32)
	t.write(&bw)
	for _, b := range data {
		c := cs[b]
		if c.Len == 0 {
			errors.Panic(errMissingCode)
		}
		bw.WriteBits(c.Val, c.Len)
	}
	_, err = bw.Flush()
	return n, err
}

// Writer compresses everything written to it into a single container.
//
// Since the code depends on the frequencies of the whole input, data is
// buffered in memory and nothing is written to the underlying io.Writer until
// Close is called.
type Writer struct {
	InputOffset  int64 // Total number of bytes issued to Write
	OutputOffset int64 // Total number of bytes written to underlying io.Writer

	wr  io.Writer
	buf []byte
	err error
}

// NewWriter returns a new Writer that writes a container to w.
func NewWriter(w io.Writer) *Writer {
	zw := new(Writer)
	zw.Reset(w)
	return zw
}

func (zw *Writer) Write(buf []byte) (int, error) {
	if zw.err != nil {
		return 0, zw.err
	}
	if uint64(len(zw.buf))+uint64(len(buf)) > MaxInputSize {
		zw.err = errTooLarge
		return 0, zw.err
	}
	zw.buf = append(zw.buf, buf...)
	zw.InputOffset += int64(len(buf))
	return len(buf), nil
}

// Close encodes the buffered input and writes the container.
// It does not close the underlying io.Writer.
func (zw *Writer) Close() error {
	if zw.err == errClosed {
		return nil
	}
	if zw.err != nil {
		return zw.err
	}

	n, err := encode(zw.wr, zw.buf)
	zw.OutputOffset += n
	if err != nil {
		zw.err = err
		return err
	}
	zw.err = errClosed
	return nil
}

// Reset discards the Writer's state and makes it equivalent to the result of
// NewWriter, but writing to w instead. The input buffer is reused.
func (zw *Writer) Reset(w io.Writer) error {
	*zw = Writer{wr: w, buf: zw.buf[:0]}
	return nil
}
