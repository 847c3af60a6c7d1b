// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package length implements a command to print
// the length of each tree in a tree stream.
package length

import (
	"bufio"
	"strconv"

	"github.com/js-arias/command"
	"github.com/js-arias/phyltr/treeio"
)

var Command = &command.Command{
	Usage: "length [<tree-file>...]",
	Short: "print tree lengths",
	Long: `
Command length reads the trees from one or more files and prints the length
of each tree, i.e., the sum of all its branch lengths, with a value per line.

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

	w := bufio.NewWriter(c.Stdout())
	for _, t := range ts {
		w.WriteString(strconv.FormatFloat(t.TotalLength(), 'f', -1, 64))
		w.WriteByte('\n')
	}
	return w.Flush()
}
