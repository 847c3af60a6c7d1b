// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package uniq implements merging of trees
// that share the same topology.
package uniq

import (
	"fmt"
	"os"
	"slices"

	"github.com/js-arias/phyltr/clade"
	"github.com/js-arias/phyltr/phylo"
	"github.com/js-arias/phyltr/summary"
	"github.com/js-arias/phyltr/treeio"
)

// A Class is a set of trees with the same topology.
type Class struct {
	// Trees are the trees of the class,
	// the first tree is the representative of the class.
	Trees []*phylo.Tree

	// Freq is the frequency of the class
	// in the sample.
	Freq float64
}

// Merger collects trees into topology classes.
type Merger struct {
	total   int
	classes []*Class
}

// Add adds a tree to the class with the same topology,
// or creates a new class.
func (m *Merger) Add(t *phylo.Tree) {
	m.total++
	for _, c := range m.classes {
		if clade.SameTopology(c.Trees[0], t) {
			c.Trees = append(c.Trees, t)
			return
		}
	}
	m.classes = append(m.classes, &Class{Trees: []*phylo.Tree{t}})
}

// Total returns the number of trees added.
func (m *Merger) Total() int {
	return m.total
}

// Classes returns the topology classes
// sorted from the most to the least frequent.
// Classes with the same frequency are kept
// in the order in which they were found.
func (m *Merger) Classes() []*Class {
	cs := slices.Clone(m.classes)
	for _, c := range cs {
		c.Freq = float64(len(c.Trees)) / float64(m.total)
	}
	slices.SortStableFunc(cs, func(a, b *Class) int {
		return len(b.Trees) - len(a.Trees)
	})
	return cs
}

// Merge returns the representative tree of the class,
// with each branch length set by aggregating
// the lengths of the same branch in every tree of the class.
// The root is annotated with the frequency of the class
// as its support,
// and with the statistics of the tree heights.
func (c *Class) Merge(method summary.Method) *phylo.Tree {
	t := c.Trees[0].Clone()
	sets := t.LeafSets()
	splits := clade.SplitKeys(t)

	lens := make([][]float64, t.Size())
	heights := make([]float64, 0, len(c.Trees))
	for _, ct := range c.Trees {
		byClade, bySplit := branches(ct)
		for id, ls := range sets {
			l, ok := byClade[clade.Key(ls)]
			if !ok {
				l, ok = bySplit[splits[id]]
			}
			if !ok {
				continue
			}
			lens[id] = append(lens[id], l)
		}
		heights = append(heights, ct.Height(ct.Root()))
	}

	for id, ls := range lens {
		if len(ls) == 0 {
			continue
		}
		t.SetLength(id, method.Apply(ls))
	}

	t.SetSupport(t.Root(), c.Freq)
	summary.Annotate(t, t.Root(), "age", heights)
	return t
}

// branches returns the branch length of each node of a tree
// indexed by its clade,
// and by its split.
func branches(t *phylo.Tree) (byClade, bySplit map[string]float64) {
	sets := t.LeafSets()
	splits := clade.SplitKeys(t)
	byClade = make(map[string]float64, len(sets))
	bySplit = make(map[string]float64, len(sets))
	for _, id := range t.Nodes() {
		k := clade.Key(sets[id])
		if _, ok := byClade[k]; !ok {
			byClade[k] = t.Length(id)
		}
		if id == t.Root() {
			continue
		}
		if _, ok := bySplit[splits[id]]; !ok {
			bySplit[splits[id]] = t.Length(id)
		}
	}
	return byClade, bySplit
}

// Options are the options used to merge the classes.
type Options struct {
	// Lengths is the method used to aggregate
	// the branch lengths.
	Lengths summary.Method

	// MinFreq is the minimum frequency of a class
	// to be merged.
	MinFreq float64

	// Cumulative stops the merge
	// when the total frequency of the merged classes
	// reaches this value.
	// If zero,
	// all classes are merged.
	Cumulative float64

	// Separate is the prefix used to write the trees
	// of each merged class,
	// in a file <prefix>-<n>.trees.
	// If empty,
	// no file is written.
	Separate string
}

// Merge merges the classes of trees
// from the most to the least frequent.
func (m *Merger) Merge(opts Options) ([]*phylo.Tree, error) {
	var merged []*phylo.Tree
	var n int
	for i, c := range m.Classes() {
		if c.Freq < opts.MinFreq {
			break
		}
		merged = append(merged, c.Merge(opts.Lengths))
		if opts.Separate != "" {
			name := fmt.Sprintf("%s-%d.trees", opts.Separate, i+1)
			if err := writeClass(name, c); err != nil {
				return nil, err
			}
		}

		n += len(c.Trees)
		if opts.Cumulative > 0 && float64(n)/float64(m.total) >= opts.Cumulative {
			break
		}
	}
	return merged, nil
}

func writeClass(name string, c *Class) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	if err := treeio.WriteTrees(f, c.Trees, phylo.NewickOptions{}); err != nil {
		return fmt.Errorf("while writing to %q: %v", name, err)
	}
	return nil
}
