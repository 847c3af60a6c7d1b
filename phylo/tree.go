// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package phylo implements rooted phylogenetic trees
// with branch lengths,
// clade support values,
// and arbitrary node annotations.
//
// Nodes are stored in an arena
// and identified by an integer ID.
// The root node is always the node 0,
// and its parent is -1.
package phylo

import (
	"fmt"
	"slices"
)

type node struct {
	parent   int
	children []int

	name    string
	length  float64
	support float64
	hasSupp bool

	features Features
}

// A Tree is a rooted phylogenetic tree.
type Tree struct {
	nodes []*node
}

// New creates a new tree with a single node,
// the root.
func New() *Tree {
	return &Tree{
		nodes: []*node{{parent: -1}},
	}
}

// Add adds a new node as a child of the indicated parent,
// and returns the ID of the new node.
func (t *Tree) Add(parent int, name string, length float64) int {
	p := t.node(parent)
	id := len(t.nodes)
	t.nodes = append(t.nodes, &node{
		parent: parent,
		name:   name,
		length: length,
	})
	p.children = append(p.children, id)
	return id
}

// Root returns the ID of the root node.
func (t *Tree) Root() int {
	return 0
}

// Size returns the number of nodes in the tree.
func (t *Tree) Size() int {
	return len(t.nodes)
}

// Parent returns the ID of the parent of a node.
// The parent of the root is -1.
func (t *Tree) Parent(id int) int {
	return t.node(id).parent
}

// Children returns the IDs of the children of a node.
func (t *Tree) Children(id int) []int {
	return slices.Clone(t.node(id).children)
}

// IsTerm returns true if the node is a terminal
// (i.e., a leaf).
func (t *Tree) IsTerm(id int) bool {
	return len(t.node(id).children) == 0
}

// Name returns the name of a node.
func (t *Tree) Name(id int) string {
	return t.node(id).name
}

// SetName sets the name of a node.
func (t *Tree) SetName(id int, name string) {
	t.node(id).name = name
}

// Length returns the length of the branch
// that connects a node with its parent.
func (t *Tree) Length(id int) float64 {
	return t.node(id).length
}

// SetLength sets the branch length of a node.
func (t *Tree) SetLength(id int, length float64) {
	t.node(id).length = length
}

// Support returns the support value of a node,
// and true if the support was set.
func (t *Tree) Support(id int) (float64, bool) {
	n := t.node(id)
	return n.support, n.hasSupp
}

// SetSupport sets the support value of a node.
func (t *Tree) SetSupport(id int, s float64) {
	n := t.node(id)
	n.support = s
	n.hasSupp = true
}

// ClearSupport removes the support value of a node.
func (t *Tree) ClearSupport(id int) {
	n := t.node(id)
	n.support = 0
	n.hasSupp = false
}

// Nodes returns the IDs of all the nodes of the tree
// in pre-order.
func (t *Tree) Nodes() []int {
	ids := make([]int, 0, len(t.nodes))
	stack := []int{t.Root()}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		ids = append(ids, id)

		children := t.nodes[id].children
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
	return ids
}

// PostOrder returns the IDs of all the nodes of the tree
// in post-order,
// so every node is visited after its children.
func (t *Tree) PostOrder() []int {
	ids := t.Nodes()
	post := make([]int, 0, len(ids))
	var visit func(id int)
	visit = func(id int) {
		for _, c := range t.nodes[id].children {
			visit(c)
		}
		post = append(post, id)
	}
	visit(t.Root())
	return post
}

// Terms returns the sorted names of the terminals
// of the tree.
func (t *Tree) Terms() []string {
	return t.Leaves(t.Root())
}

// Leaves returns the sorted names of the terminals
// descendant of a node.
func (t *Tree) Leaves(id int) []string {
	var names []string
	stack := []int{id}
	for len(stack) > 0 {
		n := t.node(stack[len(stack)-1])
		stack = stack[:len(stack)-1]
		if len(n.children) == 0 {
			names = append(names, n.name)
			continue
		}
		stack = append(stack, n.children...)
	}
	slices.Sort(names)
	return names
}

// LeafSets returns the sorted names of the terminals
// descendant of each node,
// indexed by node ID.
// All sets are calculated in a single pass.
func (t *Tree) LeafSets() [][]string {
	sets := make([][]string, len(t.nodes))
	for _, id := range t.PostOrder() {
		n := t.nodes[id]
		if len(n.children) == 0 {
			sets[id] = []string{n.name}
			continue
		}
		var ls []string
		for _, c := range n.children {
			ls = append(ls, sets[c]...)
		}
		slices.Sort(ls)
		sets[id] = ls
	}
	return sets
}

// Heights returns the distance from each node
// to its farthest descendant terminal,
// indexed by node ID.
func (t *Tree) Heights() []float64 {
	h := make([]float64, len(t.nodes))
	for _, id := range t.PostOrder() {
		for _, c := range t.nodes[id].children {
			if d := h[c] + t.nodes[c].length; d > h[id] {
				h[id] = d
			}
		}
	}
	return h
}

// Height returns the distance from a node
// to its farthest descendant terminal.
func (t *Tree) Height(id int) float64 {
	var max float64
	for _, c := range t.node(id).children {
		if d := t.Height(c) + t.nodes[c].length; d > max {
			max = d
		}
	}
	return max
}

// Depths returns the distance from the root
// to each node,
// indexed by node ID.
func (t *Tree) Depths() []float64 {
	d := make([]float64, len(t.nodes))
	for _, id := range t.Nodes() {
		if p := t.nodes[id].parent; p >= 0 {
			d[id] = d[p] + t.nodes[id].length
		}
	}
	return d
}

// TotalLength returns the sum of all branch lengths
// of the tree.
func (t *Tree) TotalLength() float64 {
	var sum float64
	for _, n := range t.nodes {
		sum += n.length
	}
	return sum
}

// Scale multiplies all branch lengths by a factor.
func (t *Tree) Scale(f float64) {
	for _, n := range t.nodes {
		n.length *= f
	}
}

// Clone returns a deep copy of the tree.
func (t *Tree) Clone() *Tree {
	nt := &Tree{
		nodes: make([]*node, len(t.nodes)),
	}
	for i, n := range t.nodes {
		nn := *n
		nn.children = slices.Clone(n.children)
		nn.features = n.features.clone()
		nt.nodes[i] = &nn
	}
	return nt
}

func (t *Tree) node(id int) *node {
	if id < 0 || id >= len(t.nodes) {
		panic(fmt.Sprintf("phylo: node %d not in tree", id))
	}
	return t.nodes[id]
}
