// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package taxa implements a command to print
// the terminals of a tree stream.
package taxa

import (
	"fmt"

	"github.com/js-arias/command"
	"github.com/js-arias/phyltr/treeio"
)

var Command = &command.Command{
	Usage: "taxa [<tree-file>...]",
	Short: "print a list of tree terminals",
	Long: `
Command taxa reads the trees from one or more files and prints the names of
the terminals of the first tree, in alphabetical order, with a name per line.

One or more tree files can be given as arguments. If no file is given the
trees will be read from the standard input.
	`,
	Run: run,
}

func run(c *command.Command, args []string) error {
	ts, err := treeio.ReadFiles(c.Stdin(), args, treeio.Options{})
	if err != nil {
		return err
	}
	if len(ts) == 0 {
		return nil
	}

	for _, term := range ts[0].Terms() {
		fmt.Fprintf(c.Stdout(), "%s\n", term)
	}
	return nil
}
