// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package summary

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidMethod is returned when an aggregation method
// is not recognized.
var ErrInvalidMethod = errors.New("invalid aggregation method")

// Method is a method used to aggregate
// a set of branch lengths,
// or clade ages,
// into a single value.
type Method string

// Valid aggregation methods.
const (
	MeanMethod   Method = "mean"
	MedianMethod Method = "median"
	MinMethod    Method = "min"
	MaxMethod    Method = "max"
)

// ParseMethod returns a method from a string.
func ParseMethod(s string) (Method, error) {
	m := Method(strings.ToLower(strings.TrimSpace(s)))
	switch m {
	case MeanMethod, MedianMethod, MinMethod, MaxMethod:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q: must be one of max, mean, median, or min", ErrInvalidMethod, s)
}

// Apply aggregates a set of values.
func (m Method) Apply(x []float64) float64 {
	switch m {
	case MedianMethod:
		return Median(x)
	case MinMethod:
		return Min(x)
	case MaxMethod:
		return Max(x)
	}
	return Mean(x)
}

// LeafHeight returns the method used
// to calibrate the height of a terminal
// when branch lengths are aggregated with m.
//
// A terminal with the minimum height has the longest branch,
// so min and max are swapped.
func (m Method) LeafHeight() Method {
	switch m {
	case MinMethod:
		return MaxMethod
	case MaxMethod:
		return MinMethod
	}
	return m
}

// String implements the flag.Value interface.
func (m *Method) String() string {
	if *m == "" {
		return string(MeanMethod)
	}
	return string(*m)
}

// Set implements the flag.Value interface.
func (m *Method) Set(s string) error {
	v, err := ParseMethod(s)
	if err != nil {
		return err
	}
	*m = v
	return nil
}
