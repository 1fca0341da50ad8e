// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package files compresses and decompresses whole files into Huffman
// containers named with the Suffix extension.
package files

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/sirupsen/logrus"

	"github.com/dsnet/huff"
	"github.com/dsnet/huff/internal/errors"
)

// Suffix is the file extension of compressed files.
const Suffix = ".huff"

func errorf(code int, f string, x ...interface{}) error {
	return errors.Error{Code: code, Pkg: "files", Msg: fmt.Sprintf(f, x...)}
}

// Result describes a single conversion.
type Result struct {
	Src     string // Path of the input file
	Dst     string // Path of the output file
	InSize  int64  // Size of the input file
	OutSize int64  // Size of the output file
	Digest  uint64 // XXH64 of the uncompressed data
}

// Ratio reports the size of the compressed file relative to the raw file.
func (r Result) Ratio() float64 {
	raw, comp := r.InSize, r.OutSize
	if strings.HasSuffix(r.Src, Suffix) {
		raw, comp = comp, raw
	}
	if raw == 0 {
		return 0
	}
	return float64(comp) / float64(raw)
}

// Converter converts files to and from containers.
//
// Output is first written to a temporary file in the destination directory,
// which is renamed into place only if the conversion succeeds.
type Converter struct {
	// Log receives a record for every conversion. If nil, nothing is logged.
	Log logrus.FieldLogger

	// Verify decodes every newly written container and checks that it
	// reproduces the digest of the input.
	Verify bool
}

func (c *Converter) log() logrus.FieldLogger {
	if c.Log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		return l
	}
	return c.Log
}

// CompressFile compresses src into the directory dstDir, which defaults to the
// directory of src. The output is named name, which defaults to the base name
// of src, with Suffix appended unless already present.
func (c *Converter) CompressFile(src, dstDir, name string) (res Result, err error) {
	if name == "" {
		name = filepath.Base(src)
	}
	if !strings.HasSuffix(name, Suffix) {
		name += Suffix
	}
	res.Src, res.Dst = src, outputPath(src, dstDir, name)
	if filepath.Clean(res.Src) == filepath.Clean(res.Dst) {
		return res, errorf(errors.Invalid, "%s: output would overwrite input", src)
	}

	f, err := os.Open(src)
	if err != nil {
		return res, err
	}
	defer f.Close()

	var h xxhash.Digest
	h.Reset()
	zw := huff.NewWriter(nil)
	res.OutSize, err = writeFile(res.Dst, func(w io.Writer) error {
		zw.Reset(w)
		if _, err := io.Copy(io.MultiWriter(zw, &h), f); err != nil {
			return err
		}
		return zw.Close()
	})
	if err != nil {
		return res, err
	}
	res.InSize, res.Digest = zw.InputOffset, h.Sum64()

	if c.Verify {
		if err := verifyFile(res.Dst, res.Digest); err != nil {
			os.Remove(res.Dst)
			return res, err
		}
	}
	c.logResult("compressed", res)
	return res, nil
}

// DecompressFile decompresses src into the directory dstDir, which defaults to
// the directory of src. The name of src must end with Suffix. The output is
// named name, which defaults to the base name of src without Suffix.
func (c *Converter) DecompressFile(src, dstDir, name string) (res Result, err error) {
	if !strings.HasSuffix(src, Suffix) {
		return res, errorf(errors.Invalid, "%s: missing %s suffix", src, Suffix)
	}
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(src), Suffix)
	}
	if name == "" {
		return res, errorf(errors.Invalid, "%s: empty output name", src)
	}
	res.Src, res.Dst = src, outputPath(src, dstDir, name)

	f, err := os.Open(src)
	if err != nil {
		return res, err
	}
	defer f.Close()

	var h xxhash.Digest
	h.Reset()
	zr := huff.NewReader(f)
	res.OutSize, err = writeFile(res.Dst, func(w io.Writer) error {
		if _, err := io.Copy(io.MultiWriter(w, &h), zr); err != nil {
			return err
		}
		return zr.Close()
	})
	if err != nil {
		return res, err
	}
	if fi, err := f.Stat(); err == nil {
		res.InSize = fi.Size()
	}
	res.Digest = h.Sum64()

	c.logResult("decompressed", res)
	return res, nil
}

func (c *Converter) logResult(op string, res Result) {
	c.log().WithFields(logrus.Fields{
		"src":    res.Src,
		"dst":    res.Dst,
		"in":     res.InSize,
		"out":    res.OutSize,
		"ratio":  fmt.Sprintf("%.3f", res.Ratio()),
		"xxhash": fmt.Sprintf("%016x", res.Digest),
	}).Debug(op)
}

func outputPath(src, dstDir, name string) string {
	if dstDir == "" {
		dstDir = filepath.Dir(src)
	}
	return filepath.Join(dstDir, name)
}

// writeFile calls fn with a temporary file in the directory of dst and renames
// it to dst if fn succeeds. It returns the number of bytes written.
func writeFile(dst string, fn func(io.Writer) error) (n int64, err error) {
	f, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".*")
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(f.Name())
		}
	}()

	cw := &countWriter{w: f}
	if err = fn(cw); err != nil {
		return 0, err
	}
	if err = f.Close(); err != nil {
		return 0, err
	}
	if err = os.Rename(f.Name(), dst); err != nil {
		return 0, err
	}
	return cw.n, nil
}

// verifyFile decodes the container at path and compares its digest.
func verifyFile(path string, want uint64) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	h := xxhash.New()
	if _, err := io.Copy(h, huff.NewReader(f)); err != nil {
		return err
	}
	if got := h.Sum64(); got != want {
		return errorf(errors.Internal, "%s: digest mismatch: got %016x, want %016x", path, got, want)
	}
	return nil
}

type countWriter struct {
	w io.Writer
	n int64
}

func (cw *countWriter) Write(b []byte) (int, error) {
	n, err := cw.w.Write(b)
	cw.n += int64(n)
	return n, err
}
