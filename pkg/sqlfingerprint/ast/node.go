// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

// Package ast holds the PostgreSQL raw parse tree consumed by the fingerprinting
// and normalization passes.
//
// Every node type reports its fields in PostgreSQL struct order through
// WalkFields. Fingerprinting hashes that field list and the constant locator
// follows its Child entries. Source locations are never reported as fields.
package ast

import (
	"fmt"
)

// Node is a raw parse tree node.
type Node interface {
	// Tag identifies the node type.
	Tag() NodeTag
	// WalkFields reports the node's fields to v in a stable order.
	WalkFields(v FieldVisitor)
}

// FieldVisitor receives the fields of a node. Child is called for node and
// list fields, nil children included.
type FieldVisitor interface {
	Child(name string, n Node)
	Str(name string, value string)
	Int(name string, value int64)
	Bool(name string, value bool)
	Enum(name string, value fmt.Stringer)
}

// List is an ordered collection of nodes. Items may be nil.
type List struct {
	Items []Node
}

// NewList returns a list holding items.
func NewList(items ...Node) *List {
	return &List{Items: items}
}

// Tag implements Node.
func (*List) Tag() NodeTag { return TagList }

// WalkFields implements Node. A list has no named fields of its own; callers
// iterate Items.
func (*List) WalkFields(FieldVisitor) {}

// Len returns the number of items, zero for a nil list.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.Items)
}

// Append adds n to the end of the list and returns it.
func (l *List) Append(n Node) *List {
	if l == nil {
		return NewList(n)
	}
	l.Items = append(l.Items, n)
	return l
}

// opt converts a typed node pointer into a Node, mapping nil pointers to a
// nil interface.
func opt[E any, P interface {
	*E
	Node
}](p P) Node {
	if p == nil {
		return nil
	}
	return p
}

type childFunc func(name string, n Node)

func (f childFunc) Child(name string, n Node) {
	if n != nil {
		f(name, n)
	}
}
func (childFunc) Str(string, string)        {}
func (childFunc) Int(string, int64)         {}
func (childFunc) Bool(string, bool)         {}
func (childFunc) Enum(string, fmt.Stringer) {}

// VisitChildren calls fn for every non-nil node or list field of n, in field
// order. Lists are passed whole; use Items to descend into them.
func VisitChildren(n Node, fn func(name string, child Node)) {
	if n == nil {
		return
	}
	if l, ok := n.(*List); ok {
		for _, item := range l.Items {
			if item != nil {
				fn("", item)
			}
		}
		return
	}
	n.WalkFields(childFunc(fn))
}

// Inspect traverses the tree rooted at n in depth-first order, calling fn for
// each node before its children. If fn returns false the children of that
// node are skipped.
func Inspect(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	VisitChildren(n, func(_ string, child Node) {
		Inspect(child, fn)
	})
}
