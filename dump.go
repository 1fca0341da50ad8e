// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package huff

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/dsnet/huff/internal/bitstream"
)

// DumpBits returns the bits of data as a string of '0' and '1' characters,
// in the same most-significant-bit first order used by containers.
func DumpBits(data []byte) string {
	var sb strings.Builder
	sb.Grow(8 * len(data))
	br := bitstream.NewReader(bytes.NewReader(data))
	for i := 0; i < 8*len(data); i++ {
		if br.ReadBit() {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// DumpBitsTo writes the bits of data to w, one space-separated group of eight
// per byte and width bytes per line. Each line is prefixed with the offset of
// its first byte. A width less than one is treated as eight.
func DumpBitsTo(w io.Writer, data []byte, width int) error {
	if width < 1 {
		width = 8
	}
	bits := DumpBits(data)
	bw := bufio.NewWriter(w)
	for off := 0; off < len(data); off += width {
		end := off + width
		if end > len(data) {
			end = len(data)
		}
		fmt.Fprintf(bw, "%08x:", off)
		for i := off; i < end; i++ {
			bw.WriteByte(' ')
			bw.WriteString(bits[8*i : 8*i+8])
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
