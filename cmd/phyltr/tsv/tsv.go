// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package tsv implements a command to convert
// a tree stream into a collection of time-calibrated trees.
package tsv

import (
	"fmt"
	"strings"

	"github.com/js-arias/command"
	"github.com/js-arias/phyltr/phylo"
	"github.com/js-arias/phyltr/treeio"
	"github.com/js-arias/timetree"
)

var Command = &command.Command{
	Usage: `tsv [--name <name>] [--age <value>]
	[<tree-file>...]`,
	Short: "convert trees into a tab-delimited tree file",
	Long: `
Command tsv reads the trees from one or more files, and prints them as a
collection of time-calibrated trees in a tab-delimited file, the format used
by PhyGeo and other tools based on the timetree package.

One or more tree files can be given as arguments. If no file is given the
trees will be read from the standard input.

Branch lengths are expected to be in million years. By default, the age of
the root will be calculated from the largest distance between any terminal
and the root. To set a different root age, use the flag --age, with a value
in million years.

By default the trees will be named "tree", followed by its position in the
stream (except the first tree, that will be named only as "tree"). Use the
flag --name to set a different base name.
	`,
	SetFlags: setFlags,
	Run:      run,
}

// millionYears is used to transform ages in million years
// to years.
const millionYears = 1_000_000

var treeName string
var rootAge float64

func setFlags(c *command.Command) {
	c.Flags().StringVar(&treeName, "name", "tree", "")
	c.Flags().Float64Var(&rootAge, "age", 0, "")
}

func run(c *command.Command, args []string) error {
	if treeName == "" {
		return c.UsageError("flag --name must be defined")
	}
	if rootAge < 0 {
		return c.UsageError(fmt.Sprintf("invalid age %.6f: must be positive", rootAge))
	}

	ts, err := treeio.ReadFiles(c.Stdin(), args, treeio.Options{})
	if err != nil {
		return err
	}

	tc := timetree.NewCollection()
	for i, t := range ts {
		tn := treeName
		if i > 0 {
			tn = fmt.Sprintf("%s.%d", treeName, i)
		}
		nc, err := convert(t, tn)
		if err != nil {
			return fmt.Errorf("on tree %d: %v", i+1, err)
		}
		for _, n := range nc.Names() {
			if err := tc.Add(nc.Tree(n)); err != nil {
				return fmt.Errorf("when adding tree %d: %v", i+1, err)
			}
		}
	}

	if err := tc.TSV(c.Stdout()); err != nil {
		return fmt.Errorf("when writing data: %v", err)
	}
	return nil
}

// convert returns a collection with a single tree,
// with the topology and branch lengths of a tree.
func convert(t *phylo.Tree, name string) (*timetree.Collection, error) {
	t = t.Clone()
	for _, id := range t.Nodes() {
		t.ClearSupport(id)
	}
	t.ClearFeatures()

	var sb strings.Builder
	if err := t.Newick(&sb, phylo.NewickOptions{}); err != nil {
		return nil, err
	}
	return timetree.Newick(strings.NewReader(sb.String()), name, int64(rootAge*millionYears))
}
