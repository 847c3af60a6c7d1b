// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package treeio

import (
	"strings"

	"github.com/js-arias/phyltr/phylo"
)

// reserved are names of node properties
// that are not stored as features.
var reserved = map[string]bool{
	"name":    true,
	"dist":    true,
	"support": true,
}

// setFeatures stores the annotations of a comment
// as features of a node.
// Valid annotations are BEAST-style comments,
// "[&key=value,key={v1,v2}]",
// and NHX comments,
// "[&&NHX:key=value:key=value]".
// Any other comment is ignored.
func setFeatures(t *phylo.Tree, id int, comment string) {
	for _, f := range parseComment(comment) {
		if f.Name == "support" {
			if s, ok := f.Value.Float(); ok && !t.IsTerm(id) {
				t.SetSupport(id, s)
			}
			continue
		}
		if reserved[f.Name] {
			continue
		}
		t.SetFeature(id, f.Name, f.Value)
	}
}

func parseComment(c string) []phylo.Feature {
	c = strings.TrimSpace(c)
	c = strings.TrimPrefix(c, "[")
	c = strings.TrimSuffix(c, "]")
	c, ok := strings.CutPrefix(strings.TrimSpace(c), "&")
	if !ok {
		return nil
	}

	var parts []string
	if nhx, ok := strings.CutPrefix(c, "&NHX:"); ok {
		parts = strings.Split(nhx, ":")
	} else {
		parts = splitFields(c)
	}

	var fs []phylo.Feature
	for _, p := range parts {
		k, v, ok := strings.Cut(p, "=")
		if !ok {
			continue
		}
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		fs = append(fs, phylo.Feature{
			Name:  k,
			Value: phylo.String(strings.TrimSpace(v)),
		})
	}
	return fs
}

// splitFields splits a BEAST annotation by commas
// that are outside braces or quotes.
func splitFields(s string) []string {
	var fields []string
	var depth int
	var quote rune
	start := 0
	for i, r := range s {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '"' || r == '\'':
			quote = r
		case r == '{':
			depth++
		case r == '}':
			if depth > 0 {
				depth--
			}
		case r == ',' && depth == 0:
			fields = append(fields, s[start:i])
			start = i + 1
		}
	}
	return append(fields, s[start:])
}
