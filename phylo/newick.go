// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package phylo

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// NewickOptions control the output of a tree
// in Newick format.
type NewickOptions struct {
	// Topology writes only the terminal names
	// and the tree structure.
	Topology bool

	// NoFeatures omits node annotations.
	NoFeatures bool

	// NoRootFeatures omits the annotations of the root node.
	NoRootFeatures bool
}

// Newick writes the tree in Newick (parenthetical) format.
// Node annotations are written as BEAST-style comments,
// i.e.,
// name[&key=value,key=value]:length.
func (t *Tree) Newick(w io.Writer, opts NewickOptions) error {
	bw := bufio.NewWriter(w)
	t.writeNode(bw, t.Root(), opts)
	bw.WriteString(";\n")
	return bw.Flush()
}

// String returns the tree in Newick format,
// without the final new line.
func (t *Tree) String() string {
	var sb strings.Builder
	t.Newick(&sb, NewickOptions{})
	return strings.TrimSpace(sb.String())
}

func (t *Tree) writeNode(w *bufio.Writer, id int, opts NewickOptions) {
	n := t.nodes[id]
	if len(n.children) > 0 {
		w.WriteByte('(')
		for i, c := range n.children {
			if i > 0 {
				w.WriteByte(',')
			}
			t.writeNode(w, c, opts)
		}
		w.WriteByte(')')
	}

	if opts.Topology {
		if len(n.children) == 0 {
			w.WriteString(quoteName(n.name))
		}
		return
	}

	fs := n.features.All()
	switch {
	case n.name != "":
		w.WriteString(quoteName(n.name))
		if n.hasSupp && len(n.children) > 0 {
			fs = append(fs, Feature{Name: "support", Value: Number(n.support)})
		}
	case n.hasSupp && len(n.children) > 0:
		w.WriteString(formatFloat(n.support))
	}

	writeFeatures := !opts.NoFeatures
	if id == t.Root() && opts.NoRootFeatures {
		writeFeatures = false
	}
	if writeFeatures && len(fs) > 0 {
		w.WriteString("[&")
		for i, f := range fs {
			if i > 0 {
				w.WriteByte(',')
			}
			w.WriteString(f.Name)
			w.WriteByte('=')
			w.WriteString(f.Value.String())
		}
		w.WriteByte(']')
	}

	if n.parent >= 0 || n.length != 0 {
		w.WriteByte(':')
		w.WriteString(formatFloat(n.length))
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// quoteName returns a name
// quoted with single quotes
// if it contains any Newick punctuation.
func quoteName(name string) string {
	if !strings.ContainsAny(name, " \t()[]':;,") {
		return name
	}
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}
