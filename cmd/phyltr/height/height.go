// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package height implements a command to print
// the height of each tree in a tree stream.
package height

import (
	"bufio"
	"strconv"

	"github.com/js-arias/command"
	"github.com/js-arias/phyltr/treeio"
)

var Command = &command.Command{
	Usage: "height [<tree-file>...]",
	Short: "print tree heights",
	Long: `
Command height reads the trees from one or more files and prints the height
of each tree, i.e., the distance from the root to its farthest terminal, with
a value per line.

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
		w.WriteString(strconv.FormatFloat(t.Height(t.Root()), 'f', -1, 64))
		w.WriteByte('\n')
	}
	return w.Flush()
}
