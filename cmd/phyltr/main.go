// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Phyltr is a tool for filtering and summarizing
// streams of phylogenetic trees.
package main

import (
	"github.com/js-arias/command"
	"github.com/js-arias/phyltr/cmd/phyltr/cat"
	"github.com/js-arias/phyltr/cmd/phyltr/clades"
	"github.com/js-arias/phyltr/cmd/phyltr/conscmd"
	"github.com/js-arias/phyltr/cmd/phyltr/height"
	"github.com/js-arias/phyltr/cmd/phyltr/length"
	"github.com/js-arias/phyltr/cmd/phyltr/scale"
	"github.com/js-arias/phyltr/cmd/phyltr/stat"
	"github.com/js-arias/phyltr/cmd/phyltr/support"
	"github.com/js-arias/phyltr/cmd/phyltr/taxa"
	"github.com/js-arias/phyltr/cmd/phyltr/tsv"
	"github.com/js-arias/phyltr/cmd/phyltr/uniqcmd"
)

var app = &command.Command{
	Usage: "phyltr <command> [<argument>...]",
	Short: "a tool for filtering phylogenetic tree streams",
}

func init() {
	app.Add(cat.Command)
	app.Add(clades.Command)
	app.Add(conscmd.Command)
	app.Add(height.Command)
	app.Add(length.Command)
	app.Add(scale.Command)
	app.Add(stat.Command)
	app.Add(support.Command)
	app.Add(taxa.Command)
	app.Add(tsv.Command)
	app.Add(uniqcmd.Command)
}

func main() {
	app.Main()
}
