// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func selectOne() *RawStmt {
	return &RawStmt{
		Stmt: &SelectStmt{
			TargetList: NewList(&ResTarget{
				Val:      &AConst{Val: &Integer{Ival: 1}, Location: 7},
				Location: 7,
			}),
		},
		StmtLen: 8,
	}
}

func TestTree(t *testing.T) {
	assert.Equal(t, map[string]interface{}{
		"RawStmt": map[string]interface{}{
			"stmt_len": int64(8),
			"stmt": map[string]interface{}{
				"SelectStmt": map[string]interface{}{
					"targetList": []interface{}{
						map[string]interface{}{
							"ResTarget": map[string]interface{}{
								"val": map[string]interface{}{
									"A_Const": map[string]interface{}{
										"val": map[string]interface{}{
											"Integer": map[string]interface{}{"ival": int64(1)},
										},
									},
								},
							},
						},
					},
					"limitOption": "LIMIT_OPTION_DEFAULT",
					"op":          "SETOP_NONE",
				},
			},
		},
	}, Tree(selectOne()))
}

func TestTreeNilListItem(t *testing.T) {
	assert.Equal(t, []interface{}{nil, map[string]interface{}{"String": map[string]interface{}{"sval": "a"}}},
		Tree(NewList(nil, MakeString("a"))))
	assert.Nil(t, Tree(nil))
}

func TestInspect(t *testing.T) {
	var tags []NodeTag
	Inspect(selectOne(), func(n Node) bool {
		tags = append(tags, n.Tag())
		return n.Tag() != TagResTarget
	})
	assert.Equal(t, []NodeTag{TagRawStmt, TagSelectStmt, TagList, TagResTarget}, tags)
}

func TestListAppend(t *testing.T) {
	var l *List
	assert.Equal(t, 0, l.Len())
	l = l.Append(MakeString("a")).Append(nil)
	assert.Equal(t, 2, l.Len())
}
