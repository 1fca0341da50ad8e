// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package huff

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDumpBits(t *testing.T) {
	var vectors = []struct {
		input  string
		output string
	}{
		{"", ""},
		{"\x00", "00000000"},
		{"\x80", "10000000"},
		{"A", "01000001"},
		{"\x01\xfe", "0000000111111110"},
	}

	for i, v := range vectors {
		if got := DumpBits([]byte(v.input)); got != v.output {
			t.Errorf("test %d, output mismatch: got %q, want %q", i, got, v.output)
		}
	}

	// The dump of a container shows the header and tree bits verbatim.
	output, err := Compress([]byte("AAAA"))
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("0", 29)+"100"+"0100000000101000001"+"1111"+"0", DumpBits(output))
}

func TestDumpBitsTo(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, DumpBitsTo(&sb, []byte("Hello"), 2))
	want := strings.Join([]string{
		"00000000: 01001000 01100101",
		"00000002: 01101100 01101100",
		"00000004: 01101111",
		"",
	}, "\n")
	assert.Equal(t, want, sb.String())

	sb.Reset()
	require.NoError(t, DumpBitsTo(&sb, nil, 0))
	assert.Equal(t, "", sb.String())
}
