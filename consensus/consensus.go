// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package consensus implements majority-rule consensus trees
// built from the clades of a sample of trees.
package consensus

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/bits-and-blooms/bitset"
	"github.com/js-arias/phyltr/clade"
	"github.com/js-arias/phyltr/phylo"
	"github.com/js-arias/phyltr/summary"
)

// ErrLeafSetMismatch is returned when the clade
// with all the terminals is not found in every tree.
var ErrLeafSetMismatch = errors.New("trees with different terminals")

// majority is the frequency above which
// clades are always compatible.
const majority = 0.5

// Options are the options used to build a consensus tree.
type Options struct {
	// Threshold is the minimum frequency
	// of a clade to be included in the consensus.
	Threshold float64

	// Lengths is the method used to set the age of each clade,
	// and therefore,
	// the branch lengths of the consensus.
	Lengths summary.Method
}

// A cand is a candidate clade.
type cand struct {
	key  string
	prob float64
	size int
	set  *bitset.BitSet
}

// Build returns the consensus tree
// of the clades in a sample.
//
// Clades with a frequency below 0.5
// are accepted in order of frequency
// only if they are compatible
// with all the previously accepted clades.
//
// Internal nodes are annotated with the age statistics
// (age_mean, age_median, and age_HPD)
// of its clade,
// as well as the statistics of any numeric annotation
// found in the sample.
func Build(p *clade.Probs, opts Options) (*phylo.Tree, error) {
	if err := p.Compute(); err != nil {
		return nil, err
	}

	taxa := p.Taxa()
	if len(taxa) == 1 {
		t := phylo.New()
		t.SetName(t.Root(), taxa[0])
		return t, nil
	}

	all := clade.Key(taxa)
	if pr := p.Prob(all); pr != 1 {
		return nil, fmt.Errorf("%w: clade with all terminals has a frequency of %.4f", ErrLeafSetMismatch, pr)
	}

	idx := make(map[string]uint, len(taxa))
	for i, n := range taxa {
		idx[n] = uint(i)
	}

	var cs []cand
	for _, k := range p.Clades() {
		if k == all {
			continue
		}
		pr := p.Prob(k)
		if pr < opts.Threshold {
			continue
		}
		leaves := p.Leaves(k)
		set := bitset.New(uint(len(taxa)))
		for _, n := range leaves {
			set.Set(idx[n])
		}
		cs = append(cs, cand{
			key:  k,
			prob: pr,
			size: len(leaves),
			set:  set,
		})
	}
	if opts.Threshold < majority {
		cs = consistent(cs)
	}

	slices.SortStableFunc(cs, func(a, b cand) int {
		if c := b.size - a.size; c != 0 {
			return c
		}
		if a.prob != b.prob {
			if a.prob > b.prob {
				return -1
			}
			return 1
		}
		return strings.Compare(a.key, b.key)
	})

	root := newRoot(taxa, all)
	root.resolve(cs)

	t, nodes := root.tree(taxa)
	checkTree(t, opts.Threshold)
	annotate(t, nodes, p, opts.Lengths)
	return t, nil
}

// consistent removes the clades with a frequency below 0.5
// that are incompatible with a more frequent clade.
// Clades must be sorted by frequency.
func consistent(cs []cand) []cand {
	var accepted []cand
	for _, c := range cs {
		if c.prob >= majority {
			accepted = append(accepted, c)
			continue
		}
		ok := true
		for _, a := range accepted {
			if !clade.Compatible(a.set, c.set) {
				ok = false
				break
			}
		}
		if ok {
			accepted = append(accepted, c)
		}
	}
	return accepted
}

// checkTree panics if the tree is not a valid consensus.
func checkTree(t *phylo.Tree, threshold float64) {
	for _, id := range t.Nodes() {
		if t.IsTerm(id) {
			if t.Name(id) == "" {
				panic(fmt.Sprintf("consensus: terminal node %d without name", id))
			}
			continue
		}
		if len(t.Children(id)) == 1 {
			panic(fmt.Sprintf("consensus: node %d with a single descendant", id))
		}
		if s, _ := t.Support(id); s < threshold {
			panic(fmt.Sprintf("consensus: node %d with support %.6f below threshold %.6f", id, s, threshold))
		}
	}
}

// annotate sets the branch lengths
// and the annotations of a consensus tree.
func annotate(t *phylo.Tree, nodes map[int]*group, p *clade.Probs, lengths summary.Method) {
	attrs := p.Attributes()
	for _, id := range t.PostOrder() {
		key := nodes[id].key
		if !t.IsTerm(id) {
			ages := p.Ages(key)
			summary.Annotate(t, id, "age", ages)

			age := lengths.Apply(ages)
			for _, c := range t.Children(id) {
				t.SetLength(c, age-t.Height(c))
			}
		}
		for _, a := range attrs {
			summary.Annotate(t, id, a, p.Attribute(a, key))
		}
	}

	// a terminal below the top of the tree
	// has a shorter branch
	leafMethod := lengths.LeafHeight()
	for _, id := range t.Nodes() {
		if !t.IsTerm(id) {
			continue
		}
		h := leafMethod.Apply(p.LeafHeights(t.Name(id)))
		t.SetLength(id, t.Length(id)-h)
	}
}
