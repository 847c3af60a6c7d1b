// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package clade

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/js-arias/phyltr/summary"
)

// ReportOptions are the options of a clade report.
type ReportOptions struct {
	// Threshold is the minimum probability
	// of a clade to be reported.
	Threshold float64

	// Ages add the mean age
	// and the 95% interval of each clade.
	Ages bool
}

// Report writes the clades of the sample
// as a CSV table.
//
// Clades are sorted by probability,
// size,
// and name.
// The first reported clade must be the clade
// with all the terminals,
// found in every tree.
func (p *Probs) Report(w io.Writer, opts ReportOptions) error {
	if p.probs == nil {
		return ErrNotComputed
	}

	var keys []string
	for _, k := range p.Clades() {
		if p.probs[k] < opts.Threshold {
			continue
		}
		keys = append(keys, k)
	}
	if len(keys) > 0 {
		if len(p.leaves[keys[0]]) != len(p.leafHeights) || p.probs[keys[0]] != 1 {
			return fmt.Errorf("%w: top clade %q with probability %.4f", ErrInconsistent, keys[0], p.probs[keys[0]])
		}
	}

	tab := csv.NewWriter(w)
	header := []string{"support"}
	if opts.Ages {
		header = append(header, "age-mean", "age-lower", "age-upper")
	}
	header = append(header, "clade")
	if err := tab.Write(header); err != nil {
		return fmt.Errorf("unable to write header: %v", err)
	}

	for _, k := range keys {
		row := []string{
			strconv.FormatFloat(p.probs[k], 'f', 4, 64),
		}
		if opts.Ages {
			s := summary.Interval(p.ages[k])
			row = append(row,
				strconv.FormatFloat(s.Mean, 'f', 2, 64),
				strconv.FormatFloat(s.Lower, 'f', 2, 64),
				strconv.FormatFloat(s.Upper, 'f', 2, 64),
			)
		}
		row = append(row, k)
		if err := tab.Write(row); err != nil {
			return fmt.Errorf("when writing data: %v", err)
		}
	}

	tab.Flush()
	if err := tab.Error(); err != nil {
		return fmt.Errorf("when writing data: %v", err)
	}
	return nil
}
