// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package conscmd implements a command to build
// a majority-rule consensus tree.
package conscmd

import (
	"fmt"

	"github.com/js-arias/command"
	"github.com/js-arias/phyltr/clade"
	"github.com/js-arias/phyltr/consensus"
	"github.com/js-arias/phyltr/phylo"
	"github.com/js-arias/phyltr/summary"
	"github.com/js-arias/phyltr/treeio"
)

var Command = &command.Command{
	Usage: `consensus [-f|--frequency <value>] [-l|--lengths <method>]
	[<tree-file>...]`,
	Short: "build a majority-rule consensus tree",
	Long: `
Command consensus reads the trees from one or more files and prints the
majority-rule consensus tree of the trees.

One or more tree files can be given as arguments. If no file is given the
trees will be read from the standard input. All trees must have the same
terminals.

The flag --frequency, or -f, defines the minimum support of a clade to be
included in the consensus. By default it is 0.5. If the value is below 0.5,
clades are accepted from the most to the least supported, only if they are
compatible with all accepted clades. A value of 1 produces the strict
consensus.

The age of each node is calculated from the ages of its clade in the input
trees. By default, the mean age is used. The flag --lengths, or -l, sets the
method used to calculate the age. Valid methods are:

	mean    the mean age.
	median  the median age.
	min     the minimum age.
	max     the maximum age.

The nodes of the consensus are annotated with its support, the mean, median,
and 95% interval of its age, as well as the same statistics for every numeric
annotation found in the input trees.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var freqFlag float64
var lengths summary.Method

func setFlags(c *command.Command) {
	c.Flags().Float64Var(&freqFlag, "frequency", 0.5, "")
	c.Flags().Float64Var(&freqFlag, "f", 0.5, "")
	c.Flags().Var(&lengths, "lengths", "")
	c.Flags().Var(&lengths, "l", "")
}

func run(c *command.Command, args []string) error {
	if freqFlag < 0 || freqFlag > 1 {
		return c.UsageError(fmt.Sprintf("invalid frequency %.6f: must be in [0, 1]", freqFlag))
	}

	ts, err := treeio.ReadFiles(c.Stdin(), args, treeio.Options{})
	if err != nil {
		return err
	}

	p := clade.NewProbs()
	for _, t := range ts {
		p.Add(t)
	}

	t, err := consensus.Build(p, consensus.Options{
		Threshold: freqFlag,
		Lengths:   lengths,
	})
	if err != nil {
		return err
	}
	return t.Newick(c.Stdout(), phylo.NewickOptions{})
}
