// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bench

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetName(t *testing.T) {
	var vectors = []struct {
		file  string
		level int
		size  int
		want  string
	}{
		{"skewed.bin", 6, 1e4, "skewed.bin:6:1e4"},
		{"/tmp/twain.txt", 1, 1e6, "twain.txt:1:1e6"},
	}
	for i, v := range vectors {
		assert.Equal(t, v.want, getName(v.file, v.level, v.size), "test %d", i)
	}
}

func TestRatioSuite(t *testing.T) {
	codecs := []string{"huff", "flatehuff", "zstd"}
	files := []string{"zeros.bin", "skewed.bin", "missing.bin"}
	var ticks int
	results, names := BenchmarkRatioSuite(codecs, files, []int{6}, []int{1e4}, func() { ticks++ })

	require.Len(t, results, len(files))
	require.Len(t, names, len(files))
	assert.Equal(t, len(codecs)*len(files), ticks)
	assert.Equal(t, "skewed.bin:6:1e4", names[1])

	// A byte-wise Huffman code needs at least one bit per symbol.
	huff := results[0][0]
	assert.InDelta(t, 8, huff.R, 0.1)
	assert.Equal(t, 1.0, huff.D)

	// Skewed data compresses with every codec.
	for j, r := range results[1] {
		assert.Greater(t, r.R, 1.0, "codec %s", codecs[j])
	}

	// Inputs that cannot be loaded produce no result.
	for _, r := range results[2] {
		assert.Zero(t, r.R)
	}
}
