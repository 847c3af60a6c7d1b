// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package clade_test

import (
	"strings"
	"testing"

	"github.com/bits-and-blooms/bitset"
	"github.com/js-arias/phyltr/clade"
	"github.com/js-arias/phyltr/phylo"
	"github.com/js-arias/phyltr/treeio"
)

// basicTrees is a sample of six trees
// with the clades:
// A B (4 trees),
// A B C (5 trees),
// D E F (5 trees),
// and E F (3 trees).
const basicTrees = `(((A:1,B:1):1,C:2):1,((E:1,F:1):1,D:2):1);
(((A:1,B:1):1,C:2):1,((D:1,F:1):1,E:2):1);
(((A:1,B:1):1,C:2):1,((D:1,E:1):1,F:2):1);
(((A:1,C:1):1,B:2):1,((E:1,F:1):1,D:2):1);
(((A:1.5,C:1.5):0.5,B:2):1,((E:0.5,F:0.5):1.5,D:2):1);
(((A:1,B:1):1,D:2):1,((C:1,E:1):1,F:2):1);
`

func readTrees(t testing.TB, s string) []*phylo.Tree {
	t.Helper()

	ts, err := treeio.ReadTrees(strings.NewReader(s))
	if err != nil {
		t.Fatalf("unable to read trees: %v", err)
	}
	return ts
}

func TestKey(t *testing.T) {
	names := []string{"C", "A", "B"}
	if k := clade.Key(names); k != "A B C" {
		t.Errorf("key: got %q, want %q", k, "A B C")
	}
	if names[0] != "C" {
		t.Errorf("key: input modified: %v", names)
	}
}

func TestSameTopology(t *testing.T) {
	basic := readTrees(t, basicTrees)

	tests := map[string]struct {
		t1, t2 string
		want   bool
	}{
		"identical": {
			t1:   "((A,B),(C,(D,E)));",
			t2:   "((A,B),(C,(D,E)));",
			want: true,
		},
		"rotated": {
			t1:   "((A,B),(C,(D,E)));",
			t2:   "(((E,D),C),(B,A));",
			want: true,
		},
		"unrooted": {
			t1:   "((A,B),(C,(D,E)));",
			t2:   "(A,B,(C,(D,E)));",
			want: true,
		},
		"rerooted": {
			t1:   "((A,B),(C,(D,E)));",
			t2:   "(((A,B),C),(D,E));",
			want: true,
		},
		"different": {
			t1: "((A,B),(C,(D,E)));",
			t2: "((A,C),(B,(D,E)));",
		},
		"star": {
			t1:   "(A,B,C,D);",
			t2:   "(D,C,B,A);",
			want: true,
		},
		"star and resolved": {
			t1: "(A,B,C,D,E);",
			t2: "((A,B),(C,(D,E)));",
		},
		"single leaf": {
			t1:   "A;",
			t2:   "A;",
			want: true,
		},
		"different terminals": {
			t1: "((A,B),C);",
			t2: "((A,B),D);",
		},
	}

	for name, test := range tests {
		t1 := readTrees(t, test.t1)[0]
		t2 := readTrees(t, test.t2)[0]
		if got := clade.SameTopology(t1, t2); got != test.want {
			t.Errorf("%s: got %v, want %v", name, got, test.want)
		}
		if got := clade.SameTopology(t2, t1); got != test.want {
			t.Errorf("%s: reversed: got %v, want %v", name, got, test.want)
		}
	}

	for i, t1 := range basic {
		for j, t2 := range basic {
			want := i == j || (i == 3 && j == 4) || (i == 4 && j == 3)
			if got := clade.SameTopology(t1, t2); got != want {
				t.Errorf("basic trees %d and %d: got %v, want %v", i, j, got, want)
			}
		}
	}
}

func TestSplitKeys(t *testing.T) {
	t1 := readTrees(t, "((A,B),(C,(D,E)));")[0]
	t2 := readTrees(t, "(((D,E),C),(A,B));")[0]

	k1 := splitsByClade(t1)
	k2 := splitsByClade(t2)
	for _, c := range []string{"A B", "D E", "C D E", "A", "E"} {
		if k1[c] == "" {
			t.Errorf("clade %q: empty split", c)
			continue
		}
		if k1[c] != k2[c] {
			t.Errorf("clade %q: got %q, want %q", c, k2[c], k1[c])
		}
	}

	// both sides of the root define the same split
	if k1["A B"] != k1["C D E"] {
		t.Errorf("root split: got %q and %q", k1["A B"], k1["C D E"])
	}
}

func splitsByClade(t *phylo.Tree) map[string]string {
	keys := clade.SplitKeys(t)
	m := make(map[string]string)
	for id, ls := range t.LeafSets() {
		m[clade.Key(ls)] = keys[id]
	}
	return m
}

func TestCompatible(t *testing.T) {
	set := func(bits ...uint) *bitset.BitSet {
		b := bitset.New(6)
		for _, x := range bits {
			b.Set(x)
		}
		return b
	}

	tests := []struct {
		a, b *bitset.BitSet
		want bool
	}{
		{set(0, 1), set(0, 1, 2), true},
		{set(0, 1, 2), set(0, 1), true},
		{set(0, 1), set(2, 3), true},
		{set(0, 1), set(0, 1), true},
		{set(0, 1), set(1, 2), false},
		{set(0, 1, 2), set(2, 3, 4), false},
	}
	for _, test := range tests {
		if got := clade.Compatible(test.a, test.b); got != test.want {
			t.Errorf("compatible %v %v: got %v, want %v", test.a, test.b, got, test.want)
		}
	}
}
