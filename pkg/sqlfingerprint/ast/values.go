// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package ast

// Integer is an integer value node.
type Integer struct {
	Ival int64
}

// Float holds a numeric literal in its source spelling.
type Float struct {
	Fval string
}

// Boolean is a boolean value node.
type Boolean struct {
	Boolval bool
}

// String is a string value node, also used for identifiers in name lists.
type String struct {
	Sval string
}

// BitString holds a bit string literal prefixed with 'b' or 'x'.
type BitString struct {
	Bsval string
}

// MakeString returns a String node holding s.
func MakeString(s string) *String { return &String{Sval: s} }

// StringList returns a list of String nodes.
func StringList(names ...string) *List {
	l := &List{Items: make([]Node, 0, len(names))}
	for _, n := range names {
		l.Items = append(l.Items, MakeString(n))
	}
	return l
}

func (*Integer) Tag() NodeTag   { return TagInteger }
func (*Float) Tag() NodeTag     { return TagFloat }
func (*Boolean) Tag() NodeTag   { return TagBoolean }
func (*String) Tag() NodeTag    { return TagString }
func (*BitString) Tag() NodeTag { return TagBitString }

func (n *Integer) WalkFields(v FieldVisitor)   { v.Int("ival", n.Ival) }
func (n *Float) WalkFields(v FieldVisitor)     { v.Str("fval", n.Fval) }
func (n *Boolean) WalkFields(v FieldVisitor)   { v.Bool("boolval", n.Boolval) }
func (n *String) WalkFields(v FieldVisitor)    { v.Str("sval", n.Sval) }
func (n *BitString) WalkFields(v FieldVisitor) { v.Str("bsval", n.Bsval) }
