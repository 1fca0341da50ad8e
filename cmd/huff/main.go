// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Command huff compresses and decompresses files with a static Huffman code.
//
// Usage:
//
//	huff compress   [-o dir] [-name file] [-verify] [-j n] files...
//	huff decompress [-o dir] [-name file] [-j n] files...
//	huff dump       [-width n] files...
//	huff info       files...
//
// Compressed files are named after their source with a ".huff" suffix, and
// decompression requires that suffix. File arguments may be glob patterns,
// including "**" to match any number of directories.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	strconv "github.com/dsnet/golib/unitconv"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/dsnet/huff"
	"github.com/dsnet/huff/internal/files"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type config struct {
	outDir  string
	name    string
	verify  bool
	jobs    int
	width   int
	verbose bool
	quiet   bool
}

var commands = map[string]func(*config, *logrus.Logger, []string, io.Writer) error{
	"compress":   compress,
	"decompress": decompress,
	"dump":       dump,
	"info":       info,
}

func usage(w io.Writer) {
	var names []string
	for k := range commands {
		names = append(names, k)
	}
	sort.Strings(names)
	fmt.Fprintf(w, "usage: huff %v [flags] files...\n", names)
}

// run executes the command line args and returns the process exit status.
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 || commands[args[0]] == nil {
		usage(stderr)
		return 2
	}
	cmd := commands[args[0]]

	var c config
	fs := flag.NewFlagSet("huff "+args[0], flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&c.outDir, "o", "", "Output directory (default: next to each input)")
	fs.StringVar(&c.name, "name", "", "Output file name (only with a single input)")
	fs.BoolVar(&c.verify, "verify", false, "Decode each new container and compare digests")
	fs.IntVar(&c.jobs, "j", 1, "Number of files to convert concurrently")
	fs.IntVar(&c.width, "width", 8, "Bytes per line for dump")
	fs.BoolVar(&c.verbose, "v", false, "Log every conversion")
	fs.BoolVar(&c.quiet, "q", false, "Only log warnings and errors")
	if err := fs.Parse(args[1:]); err != nil {
		return 2
	}

	log := logrus.New()
	log.SetOutput(stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	switch {
	case c.verbose:
		log.SetLevel(logrus.DebugLevel)
	case c.quiet:
		log.SetLevel(logrus.WarnLevel)
	}

	paths, err := expand(fs.Args())
	if err == nil && len(paths) == 0 {
		err = fmt.Errorf("no input files")
	}
	if err == nil && c.name != "" && len(paths) > 1 {
		err = fmt.Errorf("-name requires a single input, got %d", len(paths))
	}
	if err == nil {
		err = cmd(&c, log, paths, stdout)
	}
	if err != nil {
		log.Error(err)
		return 1
	}
	return 0
}

// expand resolves glob patterns. Arguments without matches are kept as is so
// that missing files are reported when they are opened.
func expand(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		ms, err := doublestar.FilepathGlob(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %v", arg, err)
		}
		if len(ms) == 0 {
			ms = []string{arg}
		}
		paths = append(paths, ms...)
	}
	return paths, nil
}

func formatSize(n int64) string {
	return strconv.FormatPrefix(float64(n), strconv.Base1024, 2) + "B"
}

type convertFunc func(c *files.Converter, src, dstDir, name string) (files.Result, error)

// convert applies fn to every path using up to cfg.jobs workers.
// Every failure is logged; the first one is returned.
func convert(cfg *config, log *logrus.Logger, paths []string, fn convertFunc) error {
	conv := &files.Converter{Log: log, Verify: cfg.verify}

	var g errgroup.Group
	if cfg.jobs > 0 {
		g.SetLimit(cfg.jobs)
	}
	for _, p := range paths {
		p := p
		g.Go(func() error {
			res, err := fn(conv, p, cfg.outDir, cfg.name)
			if err != nil {
				log.WithField("src", p).Error(err)
				return err
			}
			log.Infof("%s -> %s (%s -> %s)", res.Src, res.Dst, formatSize(res.InSize), formatSize(res.OutSize))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("conversion failed")
	}
	return nil
}

func compress(cfg *config, log *logrus.Logger, paths []string, _ io.Writer) error {
	return convert(cfg, log, paths, (*files.Converter).CompressFile)
}

func decompress(cfg *config, log *logrus.Logger, paths []string, _ io.Writer) error {
	return convert(cfg, log, paths, (*files.Converter).DecompressFile)
}

func dump(cfg *config, log *logrus.Logger, paths []string, w io.Writer) error {
	for _, p := range paths {
		b, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		if len(paths) > 1 {
			fmt.Fprintf(w, "==> %s <==\n", p)
		}
		if err := huff.DumpBitsTo(w, b, cfg.width); err != nil {
			return err
		}
	}
	return nil
}

func info(cfg *config, log *logrus.Logger, paths []string, w io.Writer) error {
	for _, p := range paths {
		if err := infoFile(p, w); err != nil {
			return fmt.Errorf("%s: %v", p, err)
		}
	}
	return nil
}

func infoFile(path string, w io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	fi, err := f.Stat()
	if err != nil {
		return err
	}

	hdr, err := huff.ReadHeader(bufio.NewReader(f))
	if err != nil {
		return err
	}
	payload := 8*fi.Size() - 32 - hdr.TreeBits
	fmt.Fprintf(w, "file:     %s\n", path)
	fmt.Fprintf(w, "size:     %s\n", formatSize(fi.Size()))
	fmt.Fprintf(w, "symbols:  %d\n", hdr.Count)
	fmt.Fprintf(w, "leaves:   %d\n", hdr.Tree.NumLeaves())
	fmt.Fprintf(w, "tree:     %d bits\n", hdr.TreeBits)
	fmt.Fprintf(w, "payload:  %d bits, including padding\n", payload)
	if hdr.Count > 0 {
		fmt.Fprintf(w, "average:  %.3f bits per symbol\n", float64(payload)/float64(hdr.Count))
	}
	fmt.Fprintf(w, "%v\n", hdr.Tree)
	if cs, err := hdr.Tree.Codes(); err == nil {
		fmt.Fprintf(w, "%v\n", cs)
	} else {
		fmt.Fprintf(w, "codes:    %v\n", err)
	}
	return nil
}
