// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package support implements a command to annotate
// the trees of a tree stream with the support of its clades.
package support

import (
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/js-arias/command"
	"github.com/js-arias/phyltr/clade"
	"github.com/js-arias/phyltr/phylo"
	"github.com/js-arias/phyltr/treeio"
)

var Command = &command.Command{
	Usage: `support [-s|--sort] [-o|--output <file>]
	[-a|--ages] [-f|--frequency <value>]
	[<tree-file>...]`,
	Short: "annotate trees with clade support",
	Long: `
Command support reads the trees from one or more files, and prints the trees
with each internal node annotated with the support of its clade, i.e., the
proportion of trees in the stream that have the clade.

One or more tree files can be given as arguments. If no file is given the
trees will be read from the standard input.

By default, trees are printed in the input order. If the flag --sort, or -s,
is defined, the trees are printed from the highest to the lowest product of
clade supports.

If the flag --output, or -o, is defined, a clade support report is written in
the indicated file. If the file name is "-", the report is written in the
standard output, before the trees. The report is a comma-delimited table, as the one produced
by 'phyltr clades'. The flag --ages, or -a, adds the clade ages to the report.
The flag --frequency, or -f, defines the minimum support of the clades in the
report.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var sortFlag bool
var agesFlag bool
var freqFlag float64
var output string

func setFlags(c *command.Command) {
	c.Flags().BoolVar(&sortFlag, "sort", false, "")
	c.Flags().BoolVar(&sortFlag, "s", false, "")
	c.Flags().BoolVar(&agesFlag, "ages", false, "")
	c.Flags().BoolVar(&agesFlag, "a", false, "")
	c.Flags().Float64Var(&freqFlag, "frequency", 0, "")
	c.Flags().Float64Var(&freqFlag, "f", 0, "")
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
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

	if output != "" {
		if err := writeReport(c.Stdout(), p); err != nil {
			return err
		}
	}

	for _, t := range ts {
		if err := p.Annotate(t); err != nil {
			return err
		}
	}

	if sortFlag {
		ts, err = sortTrees(p, ts)
		if err != nil {
			return err
		}
	}

	return treeio.WriteTrees(c.Stdout(), ts, phylo.NewickOptions{})
}

// sortTrees sorts the trees
// from the highest to the lowest log probability.
// Trees with the same probability
// are kept in the input order.
func sortTrees(p *clade.Probs, ts []*phylo.Tree) ([]*phylo.Tree, error) {
	type scored struct {
		lp float64
		t  *phylo.Tree
	}
	ss := make([]scored, 0, len(ts))
	for _, t := range ts {
		lp, err := p.LogProb(t)
		if err != nil {
			return nil, err
		}
		ss = append(ss, scored{lp: lp, t: t})
	}
	slices.SortStableFunc(ss, func(a, b scored) int {
		if a.lp > b.lp {
			return -1
		}
		if a.lp < b.lp {
			return 1
		}
		return 0
	})

	sorted := make([]*phylo.Tree, 0, len(ss))
	for _, s := range ss {
		sorted = append(sorted, s.t)
	}
	return sorted, nil
}

// writeReport writes the clade report
// in the output file,
// or in the given writer if the file name is "-".
func writeReport(stdout io.Writer, p *clade.Probs) (err error) {
	opts := clade.ReportOptions{
		Threshold: freqFlag,
		Ages:      agesFlag,
	}
	if output == "-" {
		return p.Report(stdout, opts)
	}

	f, err := os.Create(output)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	if err := p.Report(f, opts); err != nil {
		return fmt.Errorf("while writing to %q: %v", output, err)
	}
	return nil
}
