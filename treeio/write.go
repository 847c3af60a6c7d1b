// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package treeio

import (
	"bufio"
	"io"

	"github.com/js-arias/phyltr/phylo"
)

// WriteTrees writes a tree stream,
// with a Newick tree per line.
func WriteTrees(w io.Writer, trees []*phylo.Tree, opts phylo.NewickOptions) error {
	bw := bufio.NewWriter(w)
	for _, t := range trees {
		if err := t.Newick(bw, opts); err != nil {
			return err
		}
	}
	return bw.Flush()
}
