// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bitstream

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsnet/huff/internal/errors"
	"github.com/dsnet/huff/internal/testutil"
)

const testSize = 1000

func TestWriter(t *testing.T) {
	db := testutil.MustDecodeBitGen

	var vectors = []struct {
		desc   string
		write  func(*Writer)
		output []byte
		pads   uint
	}{{
		desc:   "empty stream",
		write:  func(*Writer) {},
		output: nil,
	}, {
		desc:   "single set bit is the MSB",
		write:  func(bw *Writer) { bw.WriteBit(true) },
		output: db(">>> > 1"),
		pads:   7,
	}, {
		desc: "big-endian 32-bit header",
		write: func(bw *Writer) {
			bw.WriteBits(0x01020304, 32)
		},
		output: db(">>> X:01020304"),
	}, {
		desc: "unaligned byte values",
		write: func(bw *Writer) {
			bw.WriteBit(false)
			bw.WriteBit(true)
			bw.WriteBits('A', 8)
			bw.WriteBit(true)
			bw.WriteBits(0, 8)
		},
		output: db(">>> > 0 1 H8:41 1 H8:00"),
		pads:   5,
	}, {
		desc: "upper bits are ignored",
		write: func(bw *Writer) {
			bw.WriteBits(0xfff5, 4)
		},
		output: db(">>> > 0101"),
		pads:   4,
	}, {
		desc: "full 64-bit value",
		write: func(bw *Writer) {
			bw.WriteBits(0x0123456789abcdef, 64)
		},
		output: db(">>> X:0123456789abcdef"),
	}}

	for i, v := range vectors {
		var buf bytes.Buffer
		bw := NewWriter(&buf)
		v.write(bw)
		pads, err := bw.Flush()
		if err != nil {
			t.Errorf("test %d (%s), unexpected Flush error: %v", i, v.desc, err)
			continue
		}
		if pads != v.pads {
			t.Errorf("test %d (%s), padding mismatch: got %d, want %d", i, v.desc, pads, v.pads)
		}
		if got := buf.Bytes(); !bytes.Equal(got, v.output) {
			t.Errorf("test %d (%s), output mismatch:\ngot  %x\nwant %x", i, v.desc, got, v.output)
		}
		if got, want := bw.BytesWritten(), int64(len(v.output)); got != want {
			t.Errorf("test %d (%s), BytesWritten mismatch: got %d, want %d", i, v.desc, got, want)
		}
		if bw.BitPos() != 0 {
			t.Errorf("test %d (%s), cursor not aligned after Flush: %d", i, v.desc, bw.BitPos())
		}
	}
}

func TestRoundTrip(t *testing.T) {
	r := testutil.NewRand(0)

	type item struct {
		val uint64
		nb  uint
	}
	var items []item
	var buf bytes.Buffer
	bw := NewWriter(&buf)
	for bw.BitsWritten() < 8*testSize {
		nb := uint(r.Intn(65))
		val := uint64(r.Int()) << 2
		if nb < 64 {
			val &= 1<<nb - 1
		}
		if nb == 1 {
			bw.WriteBit(val == 1)
		} else {
			bw.WriteBits(val, nb)
		}
		items = append(items, item{val, nb})
	}
	_, err := bw.Flush()
	require.NoError(t, err)

	br := NewReader(bytes.NewReader(buf.Bytes()))
	for i, it := range items {
		var got uint64
		if it.nb == 1 {
			if br.ReadBit() {
				got = 1
			}
		} else {
			got = br.ReadBits(it.nb)
		}
		if got != it.val {
			t.Fatalf("item %d, value mismatch: got 0x%x, want 0x%x (%d bits)", i, got, it.val, it.nb)
		}
	}
	assert.Equal(t, bw.BitsWritten(), br.BitsRead())
	assert.Equal(t, uint(0), br.ReadPads())
	assert.Equal(t, int64(buf.Len()), br.BytesRead())
	assert.Equal(t, uint(0), br.BitPos())
}

func TestReaderEOF(t *testing.T) {
	read := func(br *Reader, nb uint) (v uint64, err error) {
		defer errors.Recover(&err)
		return br.ReadBits(nb), nil
	}

	br := NewReader(strings.NewReader("\xa5"))
	v, err := read(br, 3)
	assert.NoError(t, err)
	assert.Equal(t, uint64(0x5), v)
	v, err = read(br, 5)
	assert.NoError(t, err)
	assert.Equal(t, uint64(0x05), v)
	_, err = read(br, 1)
	assert.Equal(t, io.ErrUnexpectedEOF, err)

	errBoom := errors.Error{Code: errors.Unknown, Msg: "boom"}
	br = NewReader(&testutil.BuggyReader{R: strings.NewReader("\xff\xff"), N: 1, Err: errBoom})
	_, err = read(br, 8)
	assert.NoError(t, err)
	_, err = read(br, 8)
	assert.Equal(t, errBoom, err)
}

func TestWriterError(t *testing.T) {
	errBoom := errors.Error{Code: errors.Unknown, Msg: "boom"}
	write := func(bw *Writer, n int) (err error) {
		defer errors.Recover(&err)
		for i := 0; i < n; i++ {
			bw.WriteBits(0xff, 8)
		}
		_, err = bw.Flush()
		return err
	}

	bw := NewWriter(&testutil.BuggyWriter{W: io.Discard, N: 17, Err: errBoom})
	assert.NoError(t, write(bw, 16))

	bw = NewWriter(&testutil.BuggyWriter{W: io.Discard, N: 16, Err: errBoom})
	assert.Equal(t, errBoom, write(bw, 1<<16))
}
