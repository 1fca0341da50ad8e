// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bench

import (
	"io"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"

	"github.com/dsnet/huff"
)

func init() {
	// The Huffman container has no levels.
	RegisterEncoder("huff",
		func(w io.Writer, lvl int) (io.WriteCloser, error) {
			return huff.NewWriter(w), nil
		})
	RegisterDecoder("huff",
		func(r io.Reader) (io.ReadCloser, error) {
			return huff.NewReader(r), nil
		})

	RegisterEncoder("flate",
		func(w io.Writer, lvl int) (io.WriteCloser, error) {
			return flate.NewWriter(w, lvl)
		})
	RegisterDecoder("flate",
		func(r io.Reader) (io.ReadCloser, error) {
			return flate.NewReader(r), nil
		})

	// DEFLATE without LZ77 matching is the closest relative of the container.
	RegisterEncoder("flatehuff",
		func(w io.Writer, lvl int) (io.WriteCloser, error) {
			return flate.NewWriter(w, flate.HuffmanOnly)
		})
	RegisterDecoder("flatehuff",
		func(r io.Reader) (io.ReadCloser, error) {
			return flate.NewReader(r), nil
		})

	RegisterEncoder("gzip",
		func(w io.Writer, lvl int) (io.WriteCloser, error) {
			return gzip.NewWriterLevel(w, lvl)
		})
	RegisterDecoder("gzip",
		func(r io.Reader) (io.ReadCloser, error) {
			return gzip.NewReader(r)
		})

	RegisterEncoder("zstd",
		func(w io.Writer, lvl int) (io.WriteCloser, error) {
			return zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(lvl)))
		})
	RegisterDecoder("zstd",
		func(r io.Reader) (io.ReadCloser, error) {
			zr, err := zstd.NewReader(r)
			if err != nil {
				return nil, err
			}
			return zr.IOReadCloser(), nil
		})

	// The xz encoder has no levels.
	RegisterEncoder("xz",
		func(w io.Writer, lvl int) (io.WriteCloser, error) {
			return xz.NewWriter(w)
		})
	RegisterDecoder("xz",
		func(r io.Reader) (io.ReadCloser, error) {
			zr, err := xz.NewReader(r)
			if err != nil {
				return nil, err
			}
			return io.NopCloser(zr), nil
		})
}
