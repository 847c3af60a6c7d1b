// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package stat implements a command to print
// basic properties of a tree stream.
package stat

import (
	"fmt"
	"io"
	"math"

	"github.com/js-arias/command"
	"github.com/js-arias/phyltr/clade"
	"github.com/js-arias/phyltr/phylo"
	"github.com/js-arias/phyltr/summary"
	"github.com/js-arias/phyltr/treeio"
	"gopkg.in/yaml.v3"
)

var Command = &command.Command{
	Usage: "stat [--yaml] [<tree-file>...]",
	Short: "print basic properties of a tree stream",
	Long: `
Command stat reads the trees from one or more files and prints basic
properties of the tree stream: the number of terminals (in the first tree),
the number of trees, the number of unique topologies, whether all trees are
ultrametric, and the mean, minimum, and maximum tree heights.

One or more tree files can be given as arguments. If no file is given the
trees will be read from the standard input.

A tree is ultrametric if the difference between the largest and the smallest
distance from the root to a terminal is not greater than a thousandth of the
largest distance.

By default, the output is a human readable list. If the flag --yaml is
defined, the output will be a YAML document.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var yamlFlag bool

func setFlags(c *command.Command) {
	c.Flags().BoolVar(&yamlFlag, "yaml", false, "")
}

func run(c *command.Command, args []string) error {
	ts, err := treeio.ReadFiles(c.Stdin(), args, treeio.Options{})
	if err != nil {
		return err
	}
	if len(ts) == 0 {
		return treeio.ErrEmpty
	}

	s := newStats(ts)
	if yamlFlag {
		return writeYAML(c.Stdout(), s)
	}
	return s.write(c.Stdout())
}

// Stats are the properties of a tree stream.
type Stats struct {
	Taxa        int     `yaml:"taxa"`
	Trees       int     `yaml:"trees"`
	Topologies  int     `yaml:"topologies"`
	Ultrametric bool    `yaml:"ultrametric"`
	MeanHeight  float64 `yaml:"mean-height"`
	MinHeight   float64 `yaml:"min-height"`
	MaxHeight   float64 `yaml:"max-height"`
}

func newStats(ts []*phylo.Tree) Stats {
	s := Stats{
		Taxa:        len(ts[0].Terms()),
		Trees:       len(ts),
		Ultrametric: true,
	}

	var uniq []*phylo.Tree
	heights := make([]float64, 0, len(ts))
	for _, t := range ts {
		heights = append(heights, t.Height(t.Root()))
		if !isUltrametric(t) {
			s.Ultrametric = false
		}

		found := false
		for _, u := range uniq {
			if clade.SameTopology(u, t) {
				found = true
				break
			}
		}
		if !found {
			uniq = append(uniq, t)
		}
	}

	s.Topologies = len(uniq)
	s.MeanHeight = summary.Mean(heights)
	s.MinHeight = summary.Min(heights)
	s.MaxHeight = summary.Max(heights)
	return s
}

func isUltrametric(t *phylo.Tree) bool {
	d := t.Depths()
	min := math.Inf(1)
	var max float64
	for _, id := range t.Nodes() {
		if !t.IsTerm(id) {
			continue
		}
		min = math.Min(min, d[id])
		max = math.Max(max, d[id])
	}
	return max-min <= max/1000
}

func (s Stats) write(w io.Writer) error {
	fmt.Fprintf(w, "Total taxa: %d\n", s.Taxa)
	fmt.Fprintf(w, "Total trees: %d\n", s.Trees)
	fmt.Fprintf(w, "Unique topologies: %d\n", s.Topologies)
	fmt.Fprintf(w, "Are trees ultrametric? %v\n", s.Ultrametric)
	fmt.Fprintf(w, "Mean tree height: %f\n", s.MeanHeight)
	fmt.Fprintf(w, "Min tree height: %f\n", s.MinHeight)
	_, err := fmt.Fprintf(w, "Max tree height: %f\n", s.MaxHeight)
	return err
}

func writeYAML(w io.Writer, s Stats) error {
	e := yaml.NewEncoder(w)
	e.SetIndent(2)
	if err := e.Encode(s); err != nil {
		return fmt.Errorf("when writing data: %v", err)
	}
	return e.Close()
}
