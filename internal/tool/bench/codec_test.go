// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bench

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sortedNames(m map[string]Encoder) []string {
	var s []string
	for k := range m {
		s = append(s, k)
	}
	sort.Strings(s)
	return s
}

// TestCodecs tests that the output of each registered encoder is a valid input
// for the decoder of the same name.
func TestCodecs(t *testing.T) {
	want := []string{"flate", "flatehuff", "gzip", "huff", "xz", "zstd"}
	require.Equal(t, want, sortedNames(Encoders))
	for _, name := range want {
		require.Contains(t, Decoders, name)
	}

	for _, fl := range []string{"digits.txt", "random.bin", "repeats.bin", "skewed.bin", "zeros.bin"} {
		dd, err := LoadInput(fl, 1<<16)
		require.NoError(t, err)
		t.Run(fmt.Sprintf("File:%v", fl), func(t *testing.T) { testCodecs(t, dd) })
	}
}

func testCodecs(t *testing.T, dd []byte) {
	t.Parallel()
	const level = 6 // Default compression on all encoders
	for _, name := range sortedNames(Encoders) {
		name := name
		t.Run(fmt.Sprintf("Codec:%v", name), func(t *testing.T) {
			be := new(bytes.Buffer)
			zw, err := Encoders[name](be, level)
			require.NoError(t, err)
			if _, err := io.Copy(zw, bytes.NewReader(dd)); err != nil {
				t.Fatalf("unexpected Write error: %v", err)
			}
			if err := zw.Close(); err != nil {
				t.Fatalf("unexpected Close error: %v", err)
			}

			zr, err := Decoders[name](bytes.NewReader(be.Bytes()))
			require.NoError(t, err)
			h := xxhash.New()
			cnt, err := io.Copy(h, zr)
			if err != nil {
				t.Fatalf("unexpected Read error: %v", err)
			}
			if err := zr.Close(); err != nil {
				t.Fatalf("unexpected Close error: %v", err)
			}
			assert.Equal(t, int64(len(dd)), cnt)
			assert.Equal(t, xxhash.Sum64(dd), h.Sum64(), "mismatching checksum")
		})
	}
}

func TestGenerators(t *testing.T) {
	for name, gen := range Generators {
		a, b := gen(5000), gen(5000)
		assert.Len(t, a, 5000, name)
		assert.Equal(t, a, b, "%s is not deterministic", name)
	}

	b, err := LoadInput("zeros.bin", -1)
	require.NoError(t, err)
	assert.Len(t, b, defaultGenSize)
}
