// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package phylo

import (
	"slices"
	"strconv"
	"strings"
)

// A Value is the value of a node annotation.
// It is either a string or a number.
type Value struct {
	s   string
	f   float64
	num bool
}

// String returns a string annotation value.
func String(s string) Value {
	return Value{s: s}
}

// Number returns a numeric annotation value.
func Number(f float64) Value {
	return Value{f: f, num: true}
}

// Float returns the value as a float,
// and true if the value is numeric.
// A string value is numeric if it can be parsed as a float
// after removing any enclosing pair
// of single or double quotes.
func (v Value) Float() (float64, bool) {
	if v.num {
		return v.f, true
	}
	s := unquote(strings.TrimSpace(v.s))
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// String returns the value as a string.
func (v Value) String() string {
	if v.num {
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	}
	return v.s
}

func unquote(s string) string {
	for len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			s = s[1 : len(s)-1]
			continue
		}
		break
	}
	return s
}

// A Feature is a named annotation of a node.
type Feature struct {
	Name  string
	Value Value
}

// Features is an ordered set of node annotations.
type Features struct {
	list []Feature
}

// Get returns the value of a feature.
func (fs *Features) Get(name string) (Value, bool) {
	i := fs.index(name)
	if i < 0 {
		return Value{}, false
	}
	return fs.list[i].Value, true
}

// Set sets the value of a feature.
// If the feature is new,
// it will be added at the end of the set.
func (fs *Features) Set(name string, v Value) {
	if i := fs.index(name); i >= 0 {
		fs.list[i].Value = v
		return
	}
	fs.list = append(fs.list, Feature{Name: name, Value: v})
}

// All returns the features in insertion order.
func (fs *Features) All() []Feature {
	return slices.Clone(fs.list)
}

// Len returns the number of features.
func (fs *Features) Len() int {
	return len(fs.list)
}

func (fs *Features) index(name string) int {
	return slices.IndexFunc(fs.list, func(f Feature) bool {
		return f.Name == name
	})
}

func (fs Features) clone() Features {
	return Features{list: slices.Clone(fs.list)}
}

// Feature returns the value of a feature of a node.
func (t *Tree) Feature(id int, name string) (Value, bool) {
	return t.node(id).features.Get(name)
}

// SetFeature sets the value of a feature of a node.
func (t *Tree) SetFeature(id int, name string, v Value) {
	t.node(id).features.Set(name, v)
}

// Features returns the features of a node,
// in insertion order.
func (t *Tree) Features(id int) []Feature {
	return t.node(id).features.All()
}

// ClearFeatures removes all the features of all the nodes.
func (t *Tree) ClearFeatures() {
	for _, n := range t.nodes {
		n.features = Features{}
	}
}
