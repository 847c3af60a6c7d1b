// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package consensus

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/js-arias/phyltr/phylo"
)

// A group is a node of a consensus tree
// under construction.
type group struct {
	key  string
	prob float64
	set  *bitset.BitSet

	// taxon is the index of the terminal,
	// or -1 for internal nodes.
	taxon int

	children []*group
}

// newRoot returns a star tree.
func newRoot(taxa []string, key string) *group {
	n := uint(len(taxa))
	root := &group{
		key:   key,
		prob:  1,
		set:   bitset.New(n),
		taxon: -1,
	}
	for i, tx := range taxa {
		set := bitset.New(n)
		set.Set(uint(i))
		root.set.Set(uint(i))
		root.children = append(root.children, &group{
			key:   tx,
			set:   set,
			taxon: i,
		})
	}
	return root
}

// resolve groups the descendants of a group
// using the given clades,
// that must be sorted from the largest to the smallest.
func (g *group) resolve(cs []cand) {
	for _, c := range cs {
		if c.set.Equal(g.set) || !g.set.IsSuperSet(c.set) {
			continue
		}

		var in, out []*group
		union := bitset.New(g.set.Len())
		for _, d := range g.children {
			if c.set.IsSuperSet(d.set) {
				in = append(in, d)
				union.InPlaceUnion(d.set)
				continue
			}
			out = append(out, d)
		}

		// the clade is already a descendant,
		// or it is nested inside a descendant
		if len(in) < 2 {
			continue
		}
		// the clade is in conflict
		// with a descendant
		if !union.Equal(c.set) {
			continue
		}

		g.children = append(out, &group{
			key:      c.key,
			prob:     c.prob,
			set:      c.set,
			taxon:    -1,
			children: in,
		})
	}

	for _, d := range g.children {
		if d.taxon >= 0 {
			continue
		}
		var sub []cand
		for _, c := range cs {
			if d.set.IsSuperSet(c.set) && !d.set.Equal(c.set) {
				sub = append(sub, c)
			}
		}
		d.resolve(sub)
	}
}

// tree returns the group as a tree,
// and the group of each node of the tree.
func (g *group) tree(taxa []string) (*phylo.Tree, map[int]*group) {
	t := phylo.New()
	nodes := make(map[int]*group)

	var add func(id int, g *group)
	add = func(id int, g *group) {
		nodes[id] = g
		if g.taxon >= 0 {
			return
		}
		t.SetSupport(id, g.prob)
		for _, d := range g.children {
			var name string
			if d.taxon >= 0 {
				name = taxa[d.taxon]
			}
			add(t.Add(id, name, 0), d)
		}
	}
	add(t.Root(), g)
	return t, nodes
}
