// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Benchmark tool to compare the Huffman container against other compression
// codecs. Each codec decodes the output of its own encoder.
//
// Example usage:
//
//	$ huffbench \
//		-tests   encRate,ratio        \
//		-codecs  huff,flatehuff,zstd  \
//		-files   skewed.bin,twain.txt \
//		-levels  6                    \
//		-sizes   1e4,1e5,1e6
//
// Inputs named in -files are read from the -paths directories unless they are
// one of the generated inputs (digits.txt, random.bin, repeats.bin,
// skewed.bin, zeros.bin).
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"regexp"
	"sort"
	"strings"
	"time"

	strconv "github.com/dsnet/golib/unitconv"
	"github.com/sirupsen/logrus"

	"github.com/dsnet/huff/internal/tool/bench"
)

const (
	defaultLevels = "6"
	defaultSizes  = "1e4,1e5,1e6"
)

var (
	testToEnum = map[string]int{
		"encRate": bench.TestEncodeRate,
		"decRate": bench.TestDecodeRate,
		"ratio":   bench.TestCompressRatio,
	}
	enumToTest = map[int]string{
		bench.TestEncodeRate:    "encRate",
		bench.TestDecodeRate:    "decRate",
		bench.TestCompressRatio: "ratio",
	}
)

func defaultTests() string {
	var d []int
	for k := range enumToTest {
		d = append(d, k)
	}
	sort.Ints(d)
	var s []string
	for _, v := range d {
		s = append(s, enumToTest[v])
	}
	return strings.Join(s, ",")
}

func defaultFiles() string {
	var s []string
	for k := range bench.Generators {
		s = append(s, k)
	}
	sort.Strings(s)
	return strings.Join(s, ",")
}

func defaultCodecs() string {
	m := make(map[string]bool)
	for k := range bench.Encoders {
		m[k] = true
	}
	hasHuff := m["huff"]
	delete(m, "huff")
	var s []string
	for k := range m {
		s = append(s, k)
	}
	sort.Strings(s)
	if hasHuff {
		s = append([]string{"huff"}, s...) // Ensure "huff" always appears first
	}
	return strings.Join(s, ",")
}

func main() {
	log := logrus.New()

	// Setup flag arguments.
	f1 := flag.String("tests", defaultTests(), "List of different benchmark tests")
	f2 := flag.String("codecs", defaultCodecs(), "List of codecs to benchmark")
	f3 := flag.String("paths", "testdata", "List of paths to search for test files")
	f4 := flag.String("files", defaultFiles(), "List of input files to benchmark")
	f5 := flag.String("levels", defaultLevels, "List of compression levels to benchmark")
	f6 := flag.String("sizes", defaultSizes, "List of input sizes to benchmark")
	flag.Parse()

	// Parse the flag arguments.
	var sep = regexp.MustCompile("[,:]")
	var codecs, paths, files []string
	var tests, levels, sizes []int
	paths = sep.Split(*f3, -1)
	files = sep.Split(*f4, -1)
	for _, s := range sep.Split(*f2, -1) {
		if _, ok := bench.Encoders[s]; !ok {
			log.Fatalf("invalid codec: %q", s)
		}
		codecs = append(codecs, s)
	}
	for _, s := range sep.Split(*f1, -1) {
		if _, ok := testToEnum[s]; !ok {
			log.Fatalf("invalid test: %q", s)
		}
		tests = append(tests, testToEnum[s])
	}
	for _, s := range sep.Split(*f5, -1) {
		lvl, err := strconv.ParsePrefix(s, strconv.AutoParse)
		if err != nil {
			log.Fatalf("invalid level: %q", s)
		}
		levels = append(levels, int(lvl))
	}
	for _, s := range sep.Split(*f6, -1) {
		nf, err := strconv.ParsePrefix(s, strconv.AutoParse)
		if err != nil || nf < 0 || nf > math.MaxInt32 {
			log.Fatalf("invalid size: %q", s)
		}
		sizes = append(sizes, int(nf))
	}

	ts := time.Now()
	bench.Paths = paths
	runBenchmarks(files, codecs, tests, levels, sizes)
	log.WithField("runtime", time.Since(ts)).Info("done")
}

func runBenchmarks(files, codecs []string, tests, levels, sizes []int) {
	var decs []string
	for _, c := range codecs {
		if _, ok := bench.Decoders[c]; ok {
			decs = append(decs, c)
		}
	}

	for _, t := range tests {
		var results [][]bench.Result
		var names, cols []string
		var title, suffix string

		fmt.Printf("BENCHMARK: %s\n", enumToTest[t])

		// Progress ticker.
		var cnt int
		tick := func() {
			total := len(cols) * len(files) * len(levels) * len(sizes)
			pct := 100.0 * float64(cnt) / float64(total)
			fmt.Fprintf(os.Stderr, "\t[%6.2f%%] %d of %d\r", pct, cnt, total)
			cnt++
		}

		// Perform the bench. This may take some time.
		switch t {
		case bench.TestEncodeRate:
			cols, title, suffix = codecs, "MB/s", ""
			results, names = bench.BenchmarkEncoderSuite(codecs, files, levels, sizes, tick)
		case bench.TestDecodeRate:
			cols, title, suffix = decs, "MB/s", ""
			results, names = bench.BenchmarkDecoderSuite(decs, files, levels, sizes, tick)
		case bench.TestCompressRatio:
			cols, title, suffix = codecs, "ratio", "x"
			results, names = bench.BenchmarkRatioSuite(codecs, files, levels, sizes, tick)
		}

		// Print all of the results.
		printResults(results, names, cols, title, suffix)
		fmt.Println()
	}
}

func printResults(results [][]bench.Result, names, codecs []string, title, suffix string) {
	// Allocate result table.
	cells := make([][]string, 1+len(names))
	for i := range cells {
		cells[i] = make([]string, 1+2*len(codecs))
	}

	// Label the first row.
	cells[0][0] = "benchmark"
	for i, c := range codecs {
		cells[0][1+2*i] = c + " " + title
		cells[0][2+2*i] = "delta"
	}

	// Insert all rows.
	for j, row := range results {
		cells[1+j][0] = names[j]
		for i, r := range row {
			if r.R != 0 && !math.IsNaN(r.R) && !math.IsInf(r.R, 0) {
				cells[1+j][1+2*i] = fmt.Sprintf("%.2f", r.R) + suffix
			}
			if r.D != 0 && !math.IsNaN(r.D) && !math.IsInf(r.D, 0) {
				cells[1+j][2+2*i] = fmt.Sprintf("%.2f", r.D) + "x"
			}
		}
	}

	// Compute the maximum lengths.
	maxLens := make([]int, 1+2*len(codecs))
	for _, row := range cells {
		for i, s := range row {
			if maxLens[i] < len(s) {
				maxLens[i] = len(s)
			}
		}
	}

	// Print padded versions of all cells.
	for _, row := range cells {
		fmt.Print("\t")
		for i, s := range row {
			switch {
			case i == 0: // Column 0
				row[i] = s + strings.Repeat(" ", maxLens[i]-len(s))
			case i%2 == 1: // Column 1, 3, 5, 7, ...
				row[i] = strings.Repeat(" ", 6+maxLens[i]-len(s)) + s
			case i%2 == 0: // Column 2, 4, 6, 8, ...
				row[i] = strings.Repeat(" ", 2+maxLens[i]-len(s)) + s
			}
			fmt.Print(row[i])
		}
		fmt.Println()
	}
}
