// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package treeio implements reading and writing
// of phylogenetic tree streams.
//
// A tree stream is either a file with a Newick tree per line,
// or a NEXUS file with a TREES block.
package treeio

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/evolbioinfo/gotree/io/newick"
	"github.com/evolbioinfo/gotree/io/nexus"
	"github.com/evolbioinfo/gotree/tree"
	"github.com/js-arias/phyltr/phylo"
	"github.com/mattn/go-isatty"
	"golang.org/x/sync/errgroup"
)

var (
	ErrInvalidFormat  = errors.New("invalid format")
	ErrInvalidOptions = errors.New("invalid options")
	ErrEmpty          = errors.New("empty tree stream")
	ErrTerminal       = errors.New("standard input is a terminal")
)

// maxLine is the maximum size of a line in a Newick stream.
const maxLine = 64 * 1024 * 1024

// Options are the options used to filter a tree stream.
type Options struct {
	// Burnin is the percentage of trees
	// discarded from the beginning of each file.
	Burnin int

	// Subsample keeps only one of each Subsample trees
	// (after the burn-in).
	Subsample int
}

// Validate returns an error if the options are not valid.
func (o Options) Validate() error {
	if o.Burnin < 0 || o.Burnin >= 100 {
		return fmt.Errorf("%w: burn-in %d%% must be in [0, 100)", ErrInvalidOptions, o.Burnin)
	}
	if o.Subsample < 0 {
		return fmt.Errorf("%w: sub-sample %d must be positive", ErrInvalidOptions, o.Subsample)
	}
	return nil
}

func (o Options) filter(ts []*phylo.Tree) []*phylo.Tree {
	skip := int(math.Round(float64(o.Burnin) / 100 * float64(len(ts))))
	ts = ts[skip:]

	step := o.Subsample
	if step <= 1 {
		return ts
	}
	kept := make([]*phylo.Tree, 0, len(ts)/step+1)
	for i, t := range ts {
		if i%step == 0 {
			kept = append(kept, t)
		}
	}
	return kept
}

// ReadFiles reads the trees from a list of files,
// and returns them in the order of the files.
// If no file is given,
// or the file name is "-",
// the trees will be read from the given standard input.
// Files are parsed concurrently.
func ReadFiles(stdin io.Reader, files []string, opts Options) ([]*phylo.Tree, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		files = []string{"-"}
	}
	var nStdin int
	for _, f := range files {
		if f == "-" {
			nStdin++
		}
	}
	if nStdin > 1 {
		return nil, fmt.Errorf("%w: standard input used more than once", ErrInvalidOptions)
	}
	if nStdin > 0 && IsTerminal(stdin) {
		return nil, ErrTerminal
	}

	// gotree can be noisy
	lout := log.Writer()
	log.SetOutput(io.Discard)
	defer log.SetOutput(lout)

	sets := make([][]*phylo.Tree, len(files))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, name := range files {
		g.Go(func() error {
			ts, err := readFile(stdin, name)
			if err != nil {
				return err
			}
			sets[i] = opts.filter(ts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var trees []*phylo.Tree
	for _, s := range sets {
		trees = append(trees, s...)
	}
	return trees, nil
}

// IsTerminal reports whether a reader
// is an interactive terminal.
func IsTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func readFile(stdin io.Reader, name string) ([]*phylo.Tree, error) {
	r := stdin
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	} else {
		name = "stdin"
	}

	ts, err := ReadTrees(r)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %w", name, err)
	}
	return ts, nil
}

// ReadTrees reads all the trees in a stream.
//
// If the first non-blank line of the stream is "#NEXUS",
// the stream is read as a NEXUS file.
// Otherwise,
// each line that contains a tree is read as a Newick tree.
// Any text before the first parenthesis of a line
// (for example "tree STATE_10 = [&R]")
// is ignored.
func ReadTrees(r io.Reader) ([]*phylo.Tree, error) {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), maxLine)

	var trees []*phylo.Tree
	first := true
	for ln := 1; s.Scan(); ln++ {
		line := strings.TrimSpace(s.Text())
		if line == "" {
			continue
		}
		if first {
			first = false
			if strings.EqualFold(line, "#NEXUS") {
				return readNexus(line, s)
			}
		}

		t, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("%w: on line %d: %v", ErrInvalidFormat, ln, err)
		}
		if t == nil {
			continue
		}
		trees = append(trees, t)
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return trees, nil
}

func readNexus(head string, s *bufio.Scanner) ([]*phylo.Tree, error) {
	var buf bytes.Buffer
	buf.WriteString(head)
	buf.WriteByte('\n')
	for s.Scan() {
		buf.Write(s.Bytes())
		buf.WriteByte('\n')
	}
	if err := s.Err(); err != nil {
		return nil, err
	}

	nex, err := nexus.NewParser(&buf).Parse()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	var trees []*phylo.Tree
	nex.IterateTrees(func(name string, t *tree.Tree) {
		trees = append(trees, convert(t))
	})
	return trees, nil
}

// parseLine parses a line with a Newick tree.
// It returns nil if the line does not contain a tree.
func parseLine(line string) (*phylo.Tree, error) {
	end := strings.LastIndexByte(line, ';')
	if end < 0 {
		return nil, nil
	}
	start := strings.IndexByte(line, '(')
	if start < 0 {
		return singleLeaf(line[:end])
	}
	if start > end || strings.Count(line, "(") != strings.Count(line, ")") {
		return nil, errors.New("unbalanced parenthesis")
	}

	gt, err := newick.NewParser(strings.NewReader(line[start : end+1])).Parse()
	if err != nil {
		return nil, err
	}
	return convert(gt), nil
}

// singleLeaf parses a tree made of a single terminal,
// for example "A:0.5;".
func singleLeaf(s string) (*phylo.Tree, error) {
	if i := strings.LastIndexByte(s, '='); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSpace(s)
	name, l, hasLen := strings.Cut(s, ":")
	name = unquoteName(strings.TrimSpace(name))
	if name == "" || strings.ContainsAny(name, "()[],") {
		return nil, fmt.Errorf("invalid tree %q", s)
	}

	t := phylo.New()
	t.SetName(t.Root(), name)
	if hasLen {
		v, err := strconv.ParseFloat(strings.TrimSpace(l), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid branch length %q: %v", l, err)
		}
		t.SetLength(t.Root(), v)
	}
	return t, nil
}

// unquoteName removes the single quotes
// of a quoted Newick name.
// Inside a quoted name,
// a doubled quote is a literal quote.
func unquoteName(name string) string {
	if len(name) < 2 {
		return name
	}
	if name[0] == '"' && name[len(name)-1] == '"' {
		return name[1 : len(name)-1]
	}
	if name[0] != '\'' || name[len(name)-1] != '\'' {
		return name
	}
	return strings.ReplaceAll(name[1:len(name)-1], "''", "'")
}

// convert transforms a gotree tree into a phylo tree.
func convert(gt *tree.Tree) *phylo.Tree {
	t := phylo.New()
	ids := make(map[*tree.Node]int)
	gt.PreOrder(func(cur, prev *tree.Node, e *tree.Edge) (keep bool) {
		id := t.Root()
		if prev != nil {
			id = t.Add(ids[prev], "", 0)
		}
		ids[cur] = id
		t.SetName(id, unquoteName(cur.Name()))

		for _, c := range cur.Comments() {
			setFeatures(t, id, c)
		}
		if e == nil {
			return true
		}
		if l := e.Length(); l != tree.NIL_LENGTH {
			t.SetLength(id, l)
		}
		if s := e.Support(); s != tree.NIL_SUPPORT && !cur.Tip() {
			t.SetSupport(id, s)
		}
		for _, c := range e.Comments() {
			setFeatures(t, id, c)
		}
		return true
	})

	// numeric labels of internal nodes are support values
	for _, id := range t.Nodes() {
		if t.IsTerm(id) {
			continue
		}
		if _, ok := t.Support(id); ok {
			continue
		}
		if s, err := strconv.ParseFloat(t.Name(id), 64); err == nil {
			t.SetSupport(id, s)
			t.SetName(id, "")
		}
	}
	return t
}
