// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package clade_test

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/js-arias/phyltr/clade"
)

func newProbs(t testing.TB, trees string) *clade.Probs {
	t.Helper()

	p := clade.NewProbs()
	for _, tr := range readTrees(t, trees) {
		p.Add(tr)
	}
	if err := p.Compute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return p
}

func TestProbs(t *testing.T) {
	p := newProbs(t, basicTrees)

	if n := p.Trees(); n != 6 {
		t.Errorf("trees: got %d, want %d", n, 6)
	}
	want := map[string]int{
		"A B C D E F": 6,
		"A B C":       5,
		"D E F":       5,
		"A B":         4,
		"E F":         3,
		"A C":         2,
		"A B D":       1,
		"C E F":       1,
		"C E":         1,
		"D E":         1,
		"D F":         1,
	}
	for c, n := range want {
		if got := p.Count(c); got != n {
			t.Errorf("clade %q: count: got %d, want %d", c, got, n)
		}
		prob := float64(n) / 6
		if got := p.Prob(c); got != prob {
			t.Errorf("clade %q: prob: got %.6f, want %.6f", c, got, prob)
		}
	}
	if pr := p.Prob("A B C D E F"); pr != 1 {
		t.Errorf("all terminals: got %.6f, want %.6f", pr, 1.0)
	}
	if pr := p.Prob("A D"); pr != 0 {
		t.Errorf("unknown clade: got %.6f, want %.6f", pr, 0.0)
	}

	clades := []string{
		"A B C D E F",
		"A B C",
		"D E F",
		"A B",
		"E F",
		"A C",
		"A B D",
		"C E F",
		"C E",
		"D E",
		"D F",
	}
	if got := p.Clades(); !reflect.DeepEqual(got, clades) {
		t.Errorf("clades: got %v, want %v", got, clades)
	}

	taxa := []string{"A", "B", "C", "D", "E", "F"}
	if got := p.Taxa(); !reflect.DeepEqual(got, taxa) {
		t.Errorf("taxa: got %v, want %v", got, taxa)
	}
	if got := p.Leaves("D E F"); !reflect.DeepEqual(got, []string{"D", "E", "F"}) {
		t.Errorf("leaves: got %v, want %v", got, []string{"D", "E", "F"})
	}

	ages := map[string][]float64{
		"A B C D E F": {3, 3, 3, 3, 3, 3},
		"A B":         {1, 1, 1, 1},
		"A C":         {1, 1.5},
		"E F":         {1, 1, 0.5},
	}
	for c, a := range ages {
		if got := p.Ages(c); !reflect.DeepEqual(got, a) {
			t.Errorf("clade %q: ages: got %v, want %v", c, got, a)
		}
	}
	for _, tx := range taxa {
		if got := p.LeafHeights(tx); !reflect.DeepEqual(got, []float64{0, 0, 0, 0, 0, 0}) {
			t.Errorf("taxon %q: leaf heights: got %v", tx, got)
		}
	}
}

func TestComputeIdempotent(t *testing.T) {
	p := newProbs(t, basicTrees)
	first := make(map[string]float64)
	for _, c := range p.Clades() {
		first[c] = p.Prob(c)
	}

	if err := p.Compute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, c := range p.Clades() {
		if got := p.Prob(c); got != first[c] {
			t.Errorf("clade %q: got %.6f, want %.6f", c, got, first[c])
		}
	}

	// a new tree changes the probabilities
	p.Add(readTrees(t, "(((A,B),C),((E,F),D));")[0])
	if err := p.Compute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := p.Prob("A B"), 5.0/7; got != want {
		t.Errorf("clade %q: got %.6f, want %.6f", "A B", got, want)
	}
}

func TestComputeEmpty(t *testing.T) {
	p := clade.NewProbs()
	if err := p.Compute(); !errors.Is(err, clade.ErrEmpty) {
		t.Errorf("empty: got error %v, want %v", err, clade.ErrEmpty)
	}
}

func TestAttributes(t *testing.T) {
	trees := `((A[&rate=1]:1,B[&rate='2']:1)[&rate=0.5]:1,C:2);
((A[&rate=3]:1,B:1)[&rate="1.5",loc=Asia]:1,C:2);
((A:1,B:0.5):1,C:1);
`
	p := newProbs(t, trees)

	if got := p.Attributes(); !reflect.DeepEqual(got, []string{"rate"}) {
		t.Errorf("attributes: got %v, want %v", got, []string{"rate"})
	}
	tests := map[string][]float64{
		"A":   {1, 3},
		"B":   {2},
		"A B": {0.5, 1.5},
		"C":   nil,
	}
	for c, want := range tests {
		got := p.Attribute("rate", c)
		if len(got) == 0 && len(want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("clade %q: rate: got %v, want %v", c, got, want)
		}
	}

	heights := map[string][]float64{
		"A": {0, 0, 0},
		"B": {0, 0, 0.5},
		"C": {0, 0, 1},
	}
	for tx, want := range heights {
		if got := p.LeafHeights(tx); !reflect.DeepEqual(got, want) {
			t.Errorf("taxon %q: leaf heights: got %v, want %v", tx, got, want)
		}
	}
}

func TestLogProb(t *testing.T) {
	p := clade.NewProbs()
	ts := readTrees(t, basicTrees)
	for _, tr := range ts {
		p.Add(tr)
	}
	if _, err := p.LogProb(ts[0]); !errors.Is(err, clade.ErrNotComputed) {
		t.Errorf("log prob: got error %v, want %v", err, clade.ErrNotComputed)
	}
	if err := p.Annotate(ts[0]); !errors.Is(err, clade.ErrNotComputed) {
		t.Errorf("annotate: got error %v, want %v", err, clade.ErrNotComputed)
	}
	if err := p.Compute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lp, err := p.LogProb(ts[0])
	if err != nil {
		t.Fatalf("log prob: unexpected error: %v", err)
	}
	want := math.Log(4.0/6) + math.Log(5.0/6) + math.Log(3.0/6) + math.Log(5.0/6)
	if math.Abs(lp-want) > 1e-9 {
		t.Errorf("log prob: got %.6f, want %.6f", lp, want)
	}

	// trees with the most frequent clades are more probable
	lp5, _ := p.LogProb(ts[5])
	if lp5 >= lp {
		t.Errorf("log prob: got %.6f for tree 5, want less than %.6f", lp5, lp)
	}

	unknown := readTrees(t, "(((A,D),B),((C,E),F));")[0]
	if _, err := p.LogProb(unknown); !errors.Is(err, clade.ErrUnknownClade) {
		t.Errorf("log prob: got error %v, want %v", err, clade.ErrUnknownClade)
	}
	if err := p.Annotate(unknown); !errors.Is(err, clade.ErrUnknownClade) {
		t.Errorf("annotate: got error %v, want %v", err, clade.ErrUnknownClade)
	}
	for _, id := range unknown.Nodes() {
		if _, ok := unknown.Support(id); ok {
			t.Errorf("annotate: node %d annotated after an error", id)
		}
	}
}

func TestAnnotate(t *testing.T) {
	p := newProbs(t, basicTrees)
	tr := readTrees(t, basicTrees)[0]
	if err := p.Annotate(tr); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for id, ls := range tr.LeafSets() {
		s, ok := tr.Support(id)
		if tr.IsTerm(id) {
			if ok {
				t.Errorf("terminal %q: unexpected support", ls[0])
			}
			continue
		}
		key := strings.Join(ls, " ")
		if want := p.Prob(key); !ok || s != want {
			t.Errorf("clade %q: got %.6f, want %.6f", key, s, want)
		}
	}
	if s, _ := tr.Support(tr.Root()); s != 1 {
		t.Errorf("root: got %.6f, want %.6f", s, 1.0)
	}
}
