// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package main

import "github.com/js-arias/command"

func init() {
	app.Add(annotationsGuide)
	app.Add(treeStreamsGuide)
}

var treeStreamsGuide = &command.Command{
	Usage: "tree-streams",
	Short: "about tree streams",
	Long: `
Phyltr commands read and write tree streams. A tree stream is a sequence of
rooted phylogenetic trees, usually a posterior sample produced by a Bayesian
phylogenetic program such as BEAST or MrBayes.

In the input, a tree stream can be given in two formats:

	- A Newick stream, with a tree per line. Any text before the first
	  parenthesis of a line is ignored, so the tree lines of a BEAST
	  output (for example "tree STATE_10 = [&R] ((A:1,B:1):1,C:2);")
	  can be read directly.
	- A NEXUS file, with a TREES block. The file is recognized when its
	  first non-blank line is "#NEXUS". If the file has a translate
	  table, terminal names are translated.

All commands read the trees from the files given as arguments, in the order of
the arguments. The file name "-" is used for the standard input. If no file is
given, the trees will be read from the standard input. Phyltr refuses to read
the standard input when it is a terminal.

The output of commands that produce trees is always a Newick stream, so
commands can be chained using the pipes of the shell, for example:

	$ phyltr cat -b 10 beast.trees | phyltr support -o clades.csv | phyltr consensus

Here is an example of a Newick stream:

	(((A:1,B:1)[&rate=0.5]:1,C:2):1,(D:2,E:2):1);
	(((A:1,C:1)[&rate=0.7]:1,B:2):1,(D:2,E:2):1);

Branch lengths are expected to be in time units, and the age of a node is the
distance from the node to its farthest terminal.
	`,
}

var annotationsGuide = &command.Command{
	Usage: "annotations",
	Short: "about node annotations",
	Long: `
Nodes of a tree in a tree stream can have annotations, stored as Newick
comments after the node label. Phyltr reads annotations in the BEAST format:

	[&rate=0.5,location="Asia"]

and in the NHX format:

	[&&NHX:rate=0.5:location=Asia]

Annotations with a numeric value (quoted or not) are used to calculate the
mean, median, and the 95% interval of the annotation for each clade, when
summarizing a tree stream (for example, with 'phyltr consensus').

Summarized values are stored as annotations with the name of the annotation
and a suffix:

	- <name>_mean    for the mean value.
	- <name>_median  for the median value.
	- <name>_HPD     for the 95% interval, as {lower-upper}.

Clade ages are reported as the annotations age_mean, age_median, and age_HPD.
The support of a clade is stored as the label of the node. A numeric label of
an internal node, or an annotation named "support", is read as the support of
the node.

Use the flag --no-annotations of 'phyltr cat' to remove annotations from a
tree stream.
	`,
}
