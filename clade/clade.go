// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package clade implements clade identity,
// topology comparison,
// and clade frequencies over a sample of trees.
//
// A clade is identified by the set of its terminal names,
// independently of the tree in which it was found.
package clade

import (
	"slices"
	"strings"

	"github.com/bits-and-blooms/bitset"
	"github.com/js-arias/phyltr/phylo"
)

// Key returns the canonical key of a clade:
// its sorted terminal names joined by a space.
func Key(names []string) string {
	if !slices.IsSorted(names) {
		names = slices.Clone(names)
		slices.Sort(names)
	}
	return strings.Join(names, " ")
}

// Compatible returns true if two clades can be found
// in the same tree,
// i.e. they are disjoint,
// or one is nested in the other.
func Compatible(a, b *bitset.BitSet) bool {
	if a.IntersectionCardinality(b) == 0 {
		return true
	}
	return a.IsSuperSet(b) || b.IsSuperSet(a)
}

// SplitKeys returns the unrooted bipartition
// defined by the branch of each node,
// indexed by node ID.
// Each split is represented by the side
// that does not include the first terminal
// (in alphabetic order).
// The root has no branch,
// so its key is empty.
func SplitKeys(t *phylo.Tree) []string {
	terms := t.Terms()
	idx := make(map[string]uint, len(terms))
	for i, n := range terms {
		idx[n] = uint(i)
	}

	n := uint(len(terms))
	sets := make([]*bitset.BitSet, t.Size())
	for _, id := range t.PostOrder() {
		b := bitset.New(n)
		if t.IsTerm(id) {
			b.Set(idx[t.Name(id)])
		}
		for _, c := range t.Children(id) {
			b.InPlaceUnion(sets[c])
		}
		sets[id] = b
	}

	keys := make([]string, t.Size())
	for id, b := range sets {
		if id == t.Root() {
			continue
		}
		s := b
		if s.Test(0) {
			s = b.Complement()
		}
		keys[id] = s.String()
	}
	return keys
}

// splits returns the non-trivial splits of a tree.
func splits(t *phylo.Tree) map[string]bool {
	sets := t.LeafSets()
	n := len(sets[t.Root()])
	sp := make(map[string]bool)
	for id, k := range SplitKeys(t) {
		if id == t.Root() {
			continue
		}
		if size := len(sets[id]); size < 2 || size > n-2 {
			continue
		}
		sp[k] = true
	}
	return sp
}

// SameTopology returns true if two trees
// have the same unrooted topology,
// ignoring branch lengths and annotations.
// Trees with different terminals are never equal.
func SameTopology(t1, t2 *phylo.Tree) bool {
	if !slices.Equal(t1.Terms(), t2.Terms()) {
		return false
	}
	s1 := splits(t1)
	s2 := splits(t2)
	if len(s1) != len(s2) {
		return false
	}
	for k := range s1 {
		if !s2[k] {
			return false
		}
	}
	return true
}
