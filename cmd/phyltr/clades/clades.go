// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package clades implements a command to print
// the clade support of a tree stream.
package clades

import (
	"fmt"

	"github.com/js-arias/command"
	"github.com/js-arias/phyltr/clade"
	"github.com/js-arias/phyltr/treeio"
)

var Command = &command.Command{
	Usage: `clades [-a|--ages] [-f|--frequency <value>]
	[<tree-file>...]`,
	Short: "print a clade support report",
	Long: `
Command clades reads the trees from one or more files and prints the support
of each clade found in the trees, i.e., the proportion of trees that have the
clade.

One or more tree files can be given as arguments. If no file is given the
trees will be read from the standard input.

The output is a comma-delimited table with the following columns:

	- support    the proportion of trees with the clade.
	- age-mean   the mean age of the clade.
	- age-lower  the lower bound of the 95% interval of the clade age.
	- age-upper  the upper bound of the 95% interval of the clade age.
	- clade      the terminals of the clade, separated by spaces.

Age columns are printed only if the flag --ages, or -a, is defined.

Clades are sorted from the most to the least supported. The flag --frequency,
or -f, defines the minimum support of the printed clades. By default, all
clades are printed.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var agesFlag bool
var freqFlag float64

func setFlags(c *command.Command) {
	c.Flags().BoolVar(&agesFlag, "ages", false, "")
	c.Flags().BoolVar(&agesFlag, "a", false, "")
	c.Flags().Float64Var(&freqFlag, "frequency", 0, "")
	c.Flags().Float64Var(&freqFlag, "f", 0, "")
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
	if err := p.Compute(); err != nil {
		return err
	}

	return p.Report(c.Stdout(), clade.ReportOptions{
		Threshold: freqFlag,
		Ages:      agesFlag,
	})
}
