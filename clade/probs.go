// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package clade

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/js-arias/phyltr/phylo"
)

var (
	ErrEmpty        = errors.New("no trees in sample")
	ErrNotComputed  = errors.New("clade probabilities not computed")
	ErrUnknownClade = errors.New("clade not found in sample")
	ErrInconsistent = errors.New("inconsistent terminal sets")
)

// Probs stores the clades found in a sample of trees,
// as well as the ages and numeric annotations
// of each clade.
//
// Trees are added with Add.
// After all trees are added,
// Compute must be called
// before asking for clade probabilities.
type Probs struct {
	trees int

	counts map[string]int
	leaves map[string][]string
	ages   map[string][]float64

	// attributes store the numeric annotations,
	// by annotation name and clade key.
	attributes map[string]map[string][]float64

	// leafHeights store the distance
	// from the top of each tree
	// to each terminal.
	leafHeights map[string][]float64

	probs map[string]float64
}

// NewProbs creates a new empty clade sample.
func NewProbs() *Probs {
	return &Probs{
		counts:      make(map[string]int),
		leaves:      make(map[string][]string),
		ages:        make(map[string][]float64),
		attributes:  make(map[string]map[string][]float64),
		leafHeights: make(map[string][]float64),
	}
}

// Add adds the clades of a tree to the sample.
//
// For each clade with two or more terminals
// it records the clade and its age
// (i.e. the distance to its farthest terminal).
// Numeric annotations are recorded for every node,
// including terminals.
// For each terminal it records its distance
// from the top of the tree.
func (p *Probs) Add(t *phylo.Tree) {
	p.trees++

	sets := t.LeafSets()
	heights := t.Heights()
	seen := make(map[string]bool)
	for _, id := range t.Nodes() {
		key := strings.Join(sets[id], " ")
		if len(sets[id]) > 1 && !seen[key] {
			seen[key] = true
			if _, ok := p.leaves[key]; !ok {
				p.leaves[key] = sets[id]
			}
			p.counts[key]++
			p.ages[key] = append(p.ages[key], heights[id])
		}

		for _, f := range t.Features(id) {
			v, ok := f.Value.Float()
			if !ok {
				continue
			}
			a, ok := p.attributes[f.Name]
			if !ok {
				a = make(map[string][]float64)
				p.attributes[f.Name] = a
			}
			a[key] = append(a[key], v)
		}
	}

	depths := t.Depths()
	var top float64
	for id, d := range depths {
		if t.IsTerm(id) && d > top {
			top = d
		}
	}
	for id, d := range depths {
		if !t.IsTerm(id) {
			continue
		}
		name := t.Name(id)
		p.leafHeights[name] = append(p.leafHeights[name], top-d)
	}
}

// Compute sets the probability of each clade
// as its frequency in the sample.
// It can be called several times,
// and always reflects the current state of the sample.
func (p *Probs) Compute() error {
	if p.trees == 0 {
		return ErrEmpty
	}
	p.probs = make(map[string]float64, len(p.counts))
	for c, n := range p.counts {
		p.probs[c] = float64(n) / float64(p.trees)
	}
	return nil
}

// Trees returns the number of trees in the sample.
func (p *Probs) Trees() int {
	return p.trees
}

// Count returns the number of trees
// in which a clade was found.
func (p *Probs) Count(key string) int {
	return p.counts[key]
}

// Prob returns the probability of a clade.
// It returns 0 if the clade is not in the sample,
// or if probabilities were not computed.
func (p *Probs) Prob(key string) float64 {
	return p.probs[key]
}

// Leaves returns the terminal names of a clade.
func (p *Probs) Leaves(key string) []string {
	return slices.Clone(p.leaves[key])
}

// Ages returns the ages of a clade
// in the order in which they were found.
func (p *Probs) Ages(key string) []float64 {
	return slices.Clone(p.ages[key])
}

// Attributes returns the names
// of the numeric annotations found in the sample.
func (p *Probs) Attributes() []string {
	names := make([]string, 0, len(p.attributes))
	for n := range p.attributes {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Attribute returns the values of a numeric annotation
// for a clade.
func (p *Probs) Attribute(name, key string) []float64 {
	return slices.Clone(p.attributes[name][key])
}

// LeafHeights returns the distances from the top of each tree
// to a terminal.
func (p *Probs) LeafHeights(name string) []float64 {
	return slices.Clone(p.leafHeights[name])
}

// Taxa returns the names of all the terminals
// found in the sample.
func (p *Probs) Taxa() []string {
	names := make([]string, 0, len(p.leafHeights))
	for n := range p.leafHeights {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Clades returns the keys of all clades in the sample
// ordered by frequency,
// then by size (larger first),
// and then alphabetically,
// ignoring case.
func (p *Probs) Clades() []string {
	keys := make([]string, 0, len(p.counts))
	for k := range p.counts {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b string) int {
		if c := p.counts[b] - p.counts[a]; c != 0 {
			return c
		}
		if c := len(p.leaves[b]) - len(p.leaves[a]); c != 0 {
			return c
		}
		if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
	return keys
}

// LogProb returns the log probability of a tree,
// as the sum of the log probabilities
// of its clades
// (except the root and the terminals).
func (p *Probs) LogProb(t *phylo.Tree) (float64, error) {
	if p.probs == nil {
		return 0, ErrNotComputed
	}
	sets := t.LeafSets()
	var lp float64
	for _, id := range t.Nodes() {
		if id == t.Root() || len(sets[id]) < 2 {
			continue
		}
		key := strings.Join(sets[id], " ")
		pp, ok := p.probs[key]
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrUnknownClade, key)
		}
		lp += math.Log(pp)
	}
	return lp, nil
}

// Annotate sets the support of each internal node of a tree
// as the probability of its clade.
func (p *Probs) Annotate(t *phylo.Tree) error {
	if p.probs == nil {
		return ErrNotComputed
	}
	sets := t.LeafSets()
	supp := make(map[int]float64)
	for id, ls := range sets {
		if len(ls) < 2 {
			continue
		}
		key := strings.Join(ls, " ")
		pp, ok := p.probs[key]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownClade, key)
		}
		supp[id] = pp
	}
	for id, s := range supp {
		t.SetSupport(id, s)
	}
	return nil
}
