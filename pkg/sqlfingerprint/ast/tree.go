// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package ast

import "fmt"

// Tree converts n into nested maps and slices suitable for JSON or YAML
// encoding. Each node becomes {"TypeName": {fields}}; lists become slices.
// Empty strings, zero integers, false booleans and nil children are left out.
func Tree(n Node) interface{} {
	if n == nil {
		return nil
	}
	if l, ok := n.(*List); ok {
		items := make([]interface{}, len(l.Items))
		for i, item := range l.Items {
			items[i] = Tree(item)
		}
		return items
	}
	fields := treeFields{}
	n.WalkFields(fields)
	if raw, ok := n.(*RawStmt); ok {
		fields.Int("stmt_location", int64(raw.StmtLocation))
		fields.Int("stmt_len", int64(raw.StmtLen))
	}
	return map[string]interface{}{n.Tag().String(): map[string]interface{}(fields)}
}

type treeFields map[string]interface{}

func (f treeFields) Child(name string, n Node) {
	if n != nil {
		f[name] = Tree(n)
	}
}

func (f treeFields) Str(name string, value string) {
	if value != "" {
		f[name] = value
	}
}

func (f treeFields) Int(name string, value int64) {
	if value != 0 {
		f[name] = value
	}
}

func (f treeFields) Bool(name string, value bool) {
	if value {
		f[name] = true
	}
}

func (f treeFields) Enum(name string, value fmt.Stringer) {
	f[name] = value.String()
}
