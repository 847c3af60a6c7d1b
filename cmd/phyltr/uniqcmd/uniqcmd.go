// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package uniqcmd implements a command to merge
// the trees that share the same topology.
package uniqcmd

import (
	"fmt"

	"github.com/js-arias/command"
	"github.com/js-arias/phyltr/phylo"
	"github.com/js-arias/phyltr/summary"
	"github.com/js-arias/phyltr/treeio"
	"github.com/js-arias/phyltr/uniq"
)

var Command = &command.Command{
	Usage: `uniq [-l|--lengths <method>]
	[--min <value>] [--cumulative <value>]
	[--separate <prefix>]
	[<tree-file>...]`,
	Short: "merge trees with the same topology",
	Long: `
Command uniq reads the trees from one or more files, and merges the trees
that share the same topology. For each topology, a single tree is printed,
from the most to the least frequent topology.

One or more tree files can be given as arguments. If no file is given the
trees will be read from the standard input.

The root of each merged tree is annotated with the frequency of the topology
as its support, and with the mean, median, and 95% interval of the heights of
the trees with that topology (as age_mean, age_median, and age_HPD).

The branch lengths of a merged tree are calculated from the length of the
same branch in the trees with that topology. By default, the mean length is
used. The flag --lengths, or -l, sets the method used to calculate the branch
lengths. Valid methods are:

	mean    the mean length.
	median  the median length.
	min     the minimum length.
	max     the maximum length.

The flag --min defines the minimum frequency of a topology to be printed. The
flag --cumulative stops the output when the printed topologies reach the
indicated cumulative frequency.

If the flag --separate is defined, the trees of each printed topology are
written in a file with the given prefix and the rank of the topology, for
example, with --separate top, the trees of the most frequent topology will
be written in the file 'top-1.trees'.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var lengths summary.Method
var minFreq float64
var cumulative float64
var separate string

func setFlags(c *command.Command) {
	c.Flags().Var(&lengths, "lengths", "")
	c.Flags().Var(&lengths, "l", "")
	c.Flags().Float64Var(&minFreq, "min", 0, "")
	c.Flags().Float64Var(&cumulative, "cumulative", 0, "")
	c.Flags().StringVar(&separate, "separate", "", "")
}

func run(c *command.Command, args []string) error {
	if minFreq < 0 || minFreq > 1 {
		return c.UsageError(fmt.Sprintf("invalid minimum frequency %.6f: must be in [0, 1]", minFreq))
	}
	if cumulative < 0 || cumulative > 1 {
		return c.UsageError(fmt.Sprintf("invalid cumulative frequency %.6f: must be in [0, 1]", cumulative))
	}

	ts, err := treeio.ReadFiles(c.Stdin(), args, treeio.Options{})
	if err != nil {
		return err
	}
	if len(ts) == 0 {
		return nil
	}

	m := &uniq.Merger{}
	for _, t := range ts {
		m.Add(t)
	}
	merged, err := m.Merge(uniq.Options{
		Lengths:    lengths,
		MinFreq:    minFreq,
		Cumulative: cumulative,
		Separate:   separate,
	})
	if err != nil {
		return err
	}
	return treeio.WriteTrees(c.Stdout(), merged, phylo.NewickOptions{})
}
