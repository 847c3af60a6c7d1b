// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package summary implements descriptive statistics
// used to summarize values
// (for example clade ages or branch lengths)
// collected from a sample of trees.
package summary

import (
	"fmt"
	"slices"

	"github.com/js-arias/phyltr/phylo"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Cut points of the 95% interval.
const (
	lowerCut = 0.025
	upperCut = 0.975
)

// Mean returns the arithmetic mean of a set of values.
func Mean(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return stat.Mean(x, nil)
}

// Median returns the median of a set of values.
// If the number of values is even,
// the median is the mean of the two middle values.
func Median(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	s := slices.Clone(x)
	slices.Sort(s)
	n := len(s)
	if n%2 == 1 {
		return s[n/2]
	}
	return (s[n/2-1] + s[n/2]) / 2
}

// Min returns the minimum value.
func Min(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return floats.Min(x)
}

// Max returns the maximum value.
func Max(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return floats.Max(x)
}

// Quantile returns the value at the indicated fraction
// of a sorted set of values,
// using the nearest rank,
// i.e. the element at index int(p*n).
func Quantile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	i := int(p * float64(len(sorted)))
	if i >= len(sorted) {
		i = len(sorted) - 1
	}
	if i < 0 {
		i = 0
	}
	return sorted[i]
}

// Stats are the summary statistics of a set of values.
type Stats struct {
	Mean   float64
	Median float64

	// Lower and Upper are the bounds
	// of the 95% interval.
	Lower float64
	Upper float64
}

// HPD returns the 95% interval
// formatted as {lower-upper}.
func (s Stats) HPD() string {
	return fmt.Sprintf("{%f-%f}", s.Lower, s.Upper)
}

// Interval returns the mean,
// and the median and 95% interval bounds
// taken by nearest rank.
func Interval(x []float64) Stats {
	if len(x) == 0 {
		return Stats{}
	}
	s := slices.Clone(x)
	slices.Sort(s)
	return Stats{
		Mean:   Mean(s),
		Median: Quantile(s, 0.5),
		Lower:  Quantile(s, lowerCut),
		Upper:  Quantile(s, upperCut),
	}
}

// Annotate sets the summary of a set of values
// as features of a tree node,
// using the names <prefix>_mean,
// <prefix>_median,
// and <prefix>_HPD.
func Annotate(t *phylo.Tree, id int, prefix string, values []float64) {
	if len(values) == 0 {
		return
	}
	s := Interval(values)
	t.SetFeature(id, prefix+"_mean", phylo.Number(s.Mean))
	t.SetFeature(id, prefix+"_median", phylo.Number(s.Median))
	t.SetFeature(id, prefix+"_HPD", phylo.String(s.HPD()))
}
