// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package cat implements a command to read
// and print a tree stream.
package cat

import (
	"github.com/js-arias/command"
	"github.com/js-arias/phyltr/phylo"
	"github.com/js-arias/phyltr/treeio"
)

var Command = &command.Command{
	Usage: `cat [-b|--burnin <percent>] [-s|--subsample <number>]
	[--no-annotations] [--no-root-annotations]
	[--topology-only] [<tree-file>...]`,
	Short: "print a tree stream",
	Long: `
Command cat reads the trees from one or more files and prints them as a Newick
tree stream, with a tree per line. The input files can be Newick streams or
NEXUS files.

One or more tree files can be given as arguments. If no file is given the
trees will be read from the standard input. Use "-" to read the standard
input in a list of files.

The flag --burnin, or -b, defines the percentage of trees discarded from the
beginning of each file. By default no tree is discarded.

The flag --subsample, or -s, keeps only one of each indicated number of trees
(after the burn-in). For example, -s 10 keeps every tenth tree. By default,
all trees are kept.

By default, node annotations are printed. Use the flag --no-annotations to
print only branch lengths and node supports. Use the flag
--no-root-annotations to remove only the annotations of the root, for example,
the tree height statistics added by 'phyltr uniq'. Use the flag
--topology-only to print only the terminal names and the tree structure.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var burnin int
var subsample int
var noAnnotations bool
var noRootAnnotations bool
var topologyOnly bool

func setFlags(c *command.Command) {
	c.Flags().IntVar(&burnin, "burnin", 0, "")
	c.Flags().IntVar(&burnin, "b", 0, "")
	c.Flags().IntVar(&subsample, "subsample", 1, "")
	c.Flags().IntVar(&subsample, "s", 1, "")
	c.Flags().BoolVar(&noAnnotations, "no-annotations", false, "")
	c.Flags().BoolVar(&noRootAnnotations, "no-root-annotations", false, "")
	c.Flags().BoolVar(&topologyOnly, "topology-only", false, "")
}

func run(c *command.Command, args []string) error {
	opts := treeio.Options{
		Burnin:    burnin,
		Subsample: subsample,
	}
	if err := opts.Validate(); err != nil {
		return c.UsageError(err.Error())
	}

	ts, err := treeio.ReadFiles(c.Stdin(), args, opts)
	if err != nil {
		return err
	}

	return treeio.WriteTrees(c.Stdout(), ts, newickOptions())
}

func newickOptions() phylo.NewickOptions {
	return phylo.NewickOptions{
		Topology:       topologyOnly,
		NoFeatures:     noAnnotations,
		NoRootFeatures: noRootAnnotations,
	}
}
