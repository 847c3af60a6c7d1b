// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package phylo_test

import (
	"strings"
	"testing"

	"github.com/js-arias/phyltr/phylo"
)

func TestNewick(t *testing.T) {
	tr := newTree()
	tr.SetSupport(1, 0.8)
	tr.SetFeature(2, "rate", phylo.Number(0.25))
	tr.SetFeature(2, "location", phylo.String("Asia"))
	tr.SetFeature(tr.Root(), "age_HPD", phylo.String("{1-2}"))

	tests := map[string]struct {
		opts phylo.NewickOptions
		want string
	}{
		"default": {
			want: "((A[&rate=0.25,location=Asia]:1,B:1)0.8:1,C:2)[&age_HPD={1-2}];\n",
		},
		"no features": {
			opts: phylo.NewickOptions{NoFeatures: true},
			want: "((A:1,B:1)0.8:1,C:2);\n",
		},
		"no root features": {
			opts: phylo.NewickOptions{NoRootFeatures: true},
			want: "((A[&rate=0.25,location=Asia]:1,B:1)0.8:1,C:2);\n",
		},
		"topology": {
			opts: phylo.NewickOptions{Topology: true},
			want: "((A,B),C);\n",
		},
	}

	for name, test := range tests {
		var sb strings.Builder
		if err := tr.Newick(&sb, test.opts); err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		if got := sb.String(); got != test.want {
			t.Errorf("%s: got %q, want %q", name, got, test.want)
		}
	}
}

func TestNewickNames(t *testing.T) {
	tr := phylo.New()
	tr.SetName(tr.Root(), "root")
	tr.SetSupport(tr.Root(), 1)
	tr.Add(tr.Root(), "Homo sapiens", 1)
	tr.Add(tr.Root(), "O'Neil", 1)

	want := "('Homo sapiens':1,'O''Neil':1)root[&support=1];"
	if got := tr.String(); got != want {
		t.Errorf("newick: got %q, want %q", got, want)
	}
}

func TestValueFloat(t *testing.T) {
	tests := []struct {
		v     phylo.Value
		f     float64
		isNum bool
	}{
		{phylo.Number(1.5), 1.5, true},
		{phylo.String("2.25"), 2.25, true},
		{phylo.String(`"3"`), 3, true},
		{phylo.String(`'"-4.5"'`), -4.5, true},
		{phylo.String("Asia"), 0, false},
		{phylo.String(`"Asia"`), 0, false},
		{phylo.String(`"`), 0, false},
		{phylo.String("{1-2}"), 0, false},
	}
	for _, test := range tests {
		f, ok := test.v.Float()
		if ok != test.isNum {
			t.Errorf("value %q: got numeric %v, want %v", test.v.String(), ok, test.isNum)
			continue
		}
		if f != test.f {
			t.Errorf("value %q: got %.3f, want %.3f", test.v.String(), f, test.f)
		}
	}
}

func TestFeatures(t *testing.T) {
	var fs phylo.Features
	fs.Set("b", phylo.Number(1))
	fs.Set("a", phylo.String("x"))
	fs.Set("b", phylo.Number(2))

	if fs.Len() != 2 {
		t.Fatalf("len: got %d, want %d", fs.Len(), 2)
	}
	all := fs.All()
	if all[0].Name != "b" || all[1].Name != "a" {
		t.Errorf("order: got %v", all)
	}
	if v, ok := fs.Get("b"); !ok || v.String() != "2" {
		t.Errorf("get b: got %q", v.String())
	}
}
