// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package fingerprint

import (
	"sort"

	"github.com/DataDog/sqlfingerprint/pkg/sqlfingerprint/ast"
)

// unorderedFields lists the fields whose items are hashed independently of
// their order. Nested lists inherit the field name of the list holding them.
var unorderedFields = map[string]bool{
	"fromClause":  true,
	"targetList":  true,
	"cols":        true,
	"rexpr":       true,
	"valuesLists": true,
	"args":        true,
}

// listCache maps a list to the positions of its items in canonical order,
// duplicates removed.
type listCache map[*ast.List][]int

type itemHash struct {
	hash uint64
	pos  int
}

func (s *session) visitList(l *ast.List, parent ast.Node, field string, depth int) {
	if !unorderedFields[field] || l.Len() < 2 {
		for _, item := range l.Items {
			s.visitItem(item, parent, field, depth+1)
		}
		return
	}
	order, ok := s.shared.lists[l]
	if !ok {
		order = s.canonicalOrder(l, parent, field, depth)
		s.shared.lists[l] = order
	}
	for _, pos := range order {
		s.visitItem(l.Items[pos], parent, field, depth+1)
	}
}

// canonicalOrder hashes every item of l on its own and returns the item
// positions sorted by hash, keeping the first of each run of equal hashes.
func (s *session) canonicalOrder(l *ast.List, parent ast.Node, field string, depth int) []int {
	hashes := make([]itemHash, len(l.Items))
	for i, item := range l.Items {
		sub := s.fork()
		sub.visitItem(item, parent, field, depth+1)
		hashes[i] = itemHash{hash: sub.st.sum(), pos: i}
	}
	sort.Slice(hashes, func(i, j int) bool {
		if hashes[i].hash != hashes[j].hash {
			return hashes[i].hash < hashes[j].hash
		}
		return hashes[i].pos < hashes[j].pos
	})
	order := make([]int, 0, len(hashes))
	for i, h := range hashes {
		if i > 0 && h.hash == hashes[i-1].hash {
			continue
		}
		order = append(order, h.pos)
	}
	return order
}

// visitItem visits a list item. Empty slots, as in DISTINCT's one element
// list, still mark their position.
func (s *session) visitItem(item, parent ast.Node, field string, depth int) {
	if item == nil {
		if depth < MaxDepth {
			s.st.write("NULL")
		}
		return
	}
	s.visit(item, parent, field, depth)
}
