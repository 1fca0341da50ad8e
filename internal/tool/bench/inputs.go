// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bench

import "github.com/dsnet/huff/internal/testutil"

// defaultGenSize is the size of generated inputs when no size is requested.
const defaultGenSize = 1 << 18

// Generators produce synthetic inputs of a requested size. The output for a
// given name and size is always the same.
var Generators = map[string]func(n int) []byte{
	"zeros.bin":   genZeros,
	"random.bin":  genRandom,
	"digits.txt":  genDigits,
	"skewed.bin":  genSkewed,
	"repeats.bin": genRepeats,
}

// genZeros is the best case for every codec.
func genZeros(n int) []byte { return make([]byte, n) }

// genRandom is incompressible; a Huffman container only adds overhead.
func genRandom(n int) []byte { return testutil.NewRand(0).Bytes(n) }

// genDigits has ten equally likely symbols, which a byte-wise Huffman code
// packs into 3 or 4 bits each.
func genDigits(n int) []byte {
	r := testutil.NewRand(1)
	b := make([]byte, n)
	for i := range b {
		b[i] = '0' + byte(r.Intn(10))
	}
	return b
}

// genSkewed has a geometric symbol distribution, which favors prefix coding.
func genSkewed(n int) []byte { return testutil.NewRand(2).SkewedBytes(n, 64) }

// genRepeats heavily favors LZ77 based compression since a large bulk of its
// data is a copy from some distance ago. Since the source data is mostly
// random, prefix encoding does not benefit as much.
func genRepeats(n int) []byte {
	var b []byte
	r := testutil.NewRand(3)

	randLen := func() int {
		switch p := r.Intn(100); {
		case p < 15: // 4..8
			return 4 + r.Intn(4)
		case p < 30: // 8..16
			return 8 + r.Intn(8)
		case p < 45: // 16..32
			return 16 + r.Intn(16)
		case p < 60: // 32..64
			return 32 + r.Intn(32)
		case p < 75: // 64..128
			return 64 + r.Intn(64)
		case p < 90: // 128..256
			return 128 + r.Intn(128)
		default: // 256..512
			return 256 + r.Intn(256)
		}
	}

	// Distances are drawn from power-of-two buckets, up to 32KiB.
	randDist := func() (d int) {
		for d == 0 || d > len(b) {
			shift := uint(r.Intn(15))
			d = 1<<shift + r.Intn(1<<shift)
		}
		return d
	}

	writeRand := func(l int) {
		b = append(b, r.Bytes(l)...)
	}

	writeCopy := func(d, l int) {
		for i := 0; i < l; i++ {
			b = append(b, b[len(b)-d])
		}
	}

	writeRand(randLen())
	for len(b) < n {
		switch p := r.Intn(10); {
		case p < 1:
			// Generate random new data.
			writeRand(randLen())
		case p < 9:
			// Write a long distance copy.
			d, l := randDist(), randLen()
			for d <= l && len(b) > l {
				d, l = randDist(), randLen()
			}
			writeCopy(d, l)
		default:
			// Write a possibly short distance copy.
			writeCopy(randDist(), randLen())
		}
	}
	return b[:n]
}
