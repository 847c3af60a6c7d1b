// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package summary_test

import (
	"errors"
	"flag"
	"io"
	"testing"

	"github.com/js-arias/phyltr/phylo"
	"github.com/js-arias/phyltr/summary"
)

func TestStats(t *testing.T) {
	x := []float64{4, 1, 3, 2}

	if m := summary.Mean(x); m != 2.5 {
		t.Errorf("mean: got %.3f, want %.3f", m, 2.5)
	}
	if m := summary.Median(x); m != 2.5 {
		t.Errorf("median: got %.3f, want %.3f", m, 2.5)
	}
	if m := summary.Median([]float64{5, 1, 3}); m != 3 {
		t.Errorf("median: got %.3f, want %.3f", m, 3.0)
	}
	if m := summary.Min(x); m != 1 {
		t.Errorf("min: got %.3f, want %.3f", m, 1.0)
	}
	if m := summary.Max(x); m != 4 {
		t.Errorf("max: got %.3f, want %.3f", m, 4.0)
	}

	// input is not modified
	if x[0] != 4 {
		t.Errorf("input modified: got %v", x)
	}

	for _, f := range []func([]float64) float64{summary.Mean, summary.Median, summary.Min, summary.Max} {
		if v := f(nil); v != 0 {
			t.Errorf("empty: got %.3f, want %.3f", v, 0.0)
		}
	}
}

func TestQuantile(t *testing.T) {
	sorted := make([]float64, 10)
	for i := range sorted {
		sorted[i] = float64(i)
	}

	tests := []struct {
		p    float64
		want float64
	}{
		{0, 0},
		{0.025, 0},
		{0.099, 0},
		{0.1, 1},
		{0.5, 5},
		{0.975, 9},
		{1, 9},
	}
	for _, test := range tests {
		if q := summary.Quantile(sorted, test.p); q != test.want {
			t.Errorf("quantile %.3f: got %.3f, want %.3f", test.p, q, test.want)
		}
	}

	// nearest rank by truncation
	x := make([]float64, 40)
	for i := range x {
		x[i] = float64(i + 1)
	}
	if q := summary.Quantile(x, 0.975); q != 40 {
		t.Errorf("quantile 0.975: got %.3f, want %.3f", q, 40.0)
	}
	if q := summary.Quantile(x[:39], 0.975); q != 39 {
		t.Errorf("quantile 0.975: got %.3f, want %.3f", q, 39.0)
	}
	if q := summary.Quantile(x[:39], 0.025); q != 1 {
		t.Errorf("quantile 0.025: got %.3f, want %.3f", q, 1.0)
	}
}

func TestInterval(t *testing.T) {
	x := []float64{3, 1, 4, 2}
	s := summary.Interval(x)
	want := summary.Stats{
		Mean:   2.5,
		Median: 3,
		Lower:  1,
		Upper:  4,
	}
	if s != want {
		t.Errorf("interval: got %v, want %v", s, want)
	}
	if h := s.HPD(); h != "{1.000000-4.000000}" {
		t.Errorf("HPD: got %q, want %q", h, "{1.000000-4.000000}")
	}
}

func TestAnnotate(t *testing.T) {
	tr := phylo.New()
	tr.Add(tr.Root(), "A", 1)
	tr.Add(tr.Root(), "B", 1)

	summary.Annotate(tr, tr.Root(), "age", []float64{1, 2, 3})
	want := map[string]string{
		"age_mean":   "2",
		"age_median": "2",
		"age_HPD":    "{1.000000-3.000000}",
	}
	for name, w := range want {
		v, ok := tr.Feature(tr.Root(), name)
		if !ok {
			t.Errorf("feature %q not found", name)
			continue
		}
		if v.String() != w {
			t.Errorf("feature %q: got %q, want %q", name, v.String(), w)
		}
	}

	summary.Annotate(tr, 1, "age", nil)
	if fs := tr.Features(1); len(fs) != 0 {
		t.Errorf("empty values: got features %v", fs)
	}
}

func TestMethod(t *testing.T) {
	x := []float64{1, 2, 3, 10}
	tests := []struct {
		name string
		want summary.Method
		val  float64
		leaf summary.Method
	}{
		{"mean", summary.MeanMethod, 4, summary.MeanMethod},
		{"Median", summary.MedianMethod, 2.5, summary.MedianMethod},
		{"min", summary.MinMethod, 1, summary.MaxMethod},
		{" max ", summary.MaxMethod, 10, summary.MinMethod},
	}
	for _, test := range tests {
		m, err := summary.ParseMethod(test.name)
		if err != nil {
			t.Errorf("method %q: unexpected error: %v", test.name, err)
			continue
		}
		if m != test.want {
			t.Errorf("method %q: got %q, want %q", test.name, m, test.want)
		}
		if v := m.Apply(x); v != test.val {
			t.Errorf("method %q: apply: got %.3f, want %.3f", test.name, v, test.val)
		}
		if l := m.LeafHeight(); l != test.leaf {
			t.Errorf("method %q: leaf height: got %q, want %q", test.name, l, test.leaf)
		}
	}

	if _, err := summary.ParseMethod("mode"); !errors.Is(err, summary.ErrInvalidMethod) {
		t.Errorf("method %q: got error %v, want %v", "mode", err, summary.ErrInvalidMethod)
	}
}

func TestMethodFlag(t *testing.T) {
	var m summary.Method
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Var(&m, "lengths", "")

	if s := m.String(); s != "mean" {
		t.Errorf("default: got %q, want %q", s, "mean")
	}
	if err := fs.Parse([]string{"--lengths", "max"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m != summary.MaxMethod {
		t.Errorf("flag: got %q, want %q", m, summary.MaxMethod)
	}
	if err := fs.Parse([]string{"--lengths", "average"}); err == nil {
		t.Errorf("flag: expecting error")
	}
}
