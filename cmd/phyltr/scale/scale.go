// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package scale implements a command to scale
// the branch lengths of a tree stream.
package scale

import (
	"fmt"

	"github.com/js-arias/command"
	"github.com/js-arias/phyltr/phylo"
	"github.com/js-arias/phyltr/treeio"
)

var Command = &command.Command{
	Usage: "scale [-s|--scale <value>] [<tree-file>...]",
	Short: "scale branch lengths",
	Long: `
Command scale reads the trees from one or more files and prints the trees
with its branch lengths multiplied by a constant factor.

One or more tree files can be given as arguments. If no file is given the
trees will be read from the standard input.

The flag --scale, or -s, sets the scaling factor. By default it is 1. For
example, to transform branch lengths from years to million years use:

	$ phyltr scale -s 0.000001 beast.trees
	`,
	SetFlags: setFlags,
	Run:      run,
}

var factor float64

func setFlags(c *command.Command) {
	c.Flags().Float64Var(&factor, "scale", 1, "")
	c.Flags().Float64Var(&factor, "s", 1, "")
}

func run(c *command.Command, args []string) error {
	if factor <= 0 {
		return c.UsageError(fmt.Sprintf("invalid scale %.6f: must be positive", factor))
	}

	ts, err := treeio.ReadFiles(c.Stdin(), args, treeio.Options{})
	if err != nil {
		return err
	}
	for _, t := range ts {
		t.Scale(factor)
	}
	return treeio.WriteTrees(c.Stdout(), ts, phylo.NewickOptions{})
}
