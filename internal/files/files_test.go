// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsnet/huff"
	"github.com/dsnet/huff/internal/errors"
	"github.com/dsnet/huff/internal/testutil"
)

func writeTemp(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func dirNames(t *testing.T, dir string) []string {
	t.Helper()
	ents, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range ents {
		names = append(names, e.Name())
	}
	return names
}

func TestRoundTrip(t *testing.T) {
	r := testutil.NewRand(0)
	var vectors = []struct {
		name string
		data []byte
	}{
		{"empty.bin", nil},
		{"text.txt", testutil.ResizeData([]byte("the quick brown fox jumps over the lazy dog\n"), 10000)},
		{"skewed.bin", r.SkewedBytes(50000, 32)},
		{"random.bin", r.Bytes(4096)},
	}

	for _, v := range vectors {
		srcDir, dstDir := t.TempDir(), t.TempDir()
		src := writeTemp(t, srcDir, v.name, v.data)
		want, err := huff.Compress(v.data)
		require.NoError(t, err)

		logger, hook := test.NewNullLogger()
		logger.SetLevel(logrus.DebugLevel)
		c := Converter{Log: logger, Verify: true}

		cres, err := c.CompressFile(src, "", "")
		require.NoError(t, err, v.name)
		assert.Equal(t, src+Suffix, cres.Dst)
		assert.Equal(t, int64(len(v.data)), cres.InSize)
		assert.Equal(t, int64(len(want)), cres.OutSize)
		assert.Equal(t, xxhash.Sum64(v.data), cres.Digest)
		got, err := os.ReadFile(cres.Dst)
		require.NoError(t, err)
		assert.Equal(t, want, got, v.name)

		require.NotNil(t, hook.LastEntry())
		assert.Equal(t, "compressed", hook.LastEntry().Message)
		assert.Equal(t, src, hook.LastEntry().Data["src"])

		dres, err := c.DecompressFile(cres.Dst, dstDir, "")
		require.NoError(t, err, v.name)
		assert.Equal(t, filepath.Join(dstDir, v.name), dres.Dst)
		assert.Equal(t, cres.OutSize, dres.InSize)
		assert.Equal(t, cres.InSize, dres.OutSize)
		assert.Equal(t, cres.Digest, dres.Digest)
		assert.Equal(t, "decompressed", hook.LastEntry().Message)
		got, err = os.ReadFile(dres.Dst)
		require.NoError(t, err)
		assert.Equal(t, len(v.data), len(got))
		assert.Equal(t, xxhash.Sum64(v.data), xxhash.Sum64(got))
	}
}

func TestOutputNames(t *testing.T) {
	dir := t.TempDir()
	src := writeTemp(t, dir, "input.txt", []byte("hello, world"))

	var c Converter
	res, err := c.CompressFile(src, "", "custom")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "custom"+Suffix), res.Dst)

	res, err = c.CompressFile(src, "", "named"+Suffix)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "named"+Suffix), res.Dst)

	res, err = c.DecompressFile(res.Dst, "", "output.txt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "output.txt"), res.Dst)
	got, err := os.ReadFile(res.Dst)
	require.NoError(t, err)
	assert.Equal(t, "hello, world", string(got))
	assert.InDelta(t, float64(res.InSize)/12, res.Ratio(), 1e-9)
}

func TestErrors(t *testing.T) {
	dir := t.TempDir()
	var c Converter

	src := writeTemp(t, dir, "plain.txt", []byte("data"))
	_, err := c.DecompressFile(src, "", "")
	assert.True(t, errors.IsInvalid(err), "missing suffix: %v", err)

	bare := writeTemp(t, dir, Suffix, []byte("data"))
	_, err = c.DecompressFile(bare, "", "")
	assert.True(t, errors.IsInvalid(err), "empty name: %v", err)

	// A truncated container leaves no partial output behind.
	container, err := huff.Compress([]byte("some data to truncate"))
	require.NoError(t, err)
	bad := writeTemp(t, dir, "bad.txt"+Suffix, container[:len(container)-1])
	_, err = c.DecompressFile(bad, "", "")
	assert.True(t, errors.IsCorrupted(err), "truncated: %v", err)
	assert.ElementsMatch(t, []string{"plain.txt", Suffix, "bad.txt" + Suffix}, dirNames(t, dir))

	_, err = c.CompressFile(filepath.Join(dir, "missing"), "", "")
	assert.True(t, os.IsNotExist(err), "missing input: %v", err)

	_, err = c.CompressFile(bad, "", "")
	assert.True(t, errors.IsInvalid(err), "overwrite input: %v", err)
}
