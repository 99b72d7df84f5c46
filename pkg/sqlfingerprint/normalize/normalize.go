// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

// Package normalize replaces the constants of a query with positional
// parameters, so that queries differing only in their literal values
// normalize to the same text.
//
// Constants are located on the parse tree, then their exact extent is found
// by rescanning the query text. New parameters are numbered after the
// highest parameter already present in the query.
package normalize

import (
	"github.com/DataDog/sqlfingerprint/pkg/errors"
	"github.com/DataDog/sqlfingerprint/pkg/sqlfingerprint/ast"
	"github.com/DataDog/sqlfingerprint/pkg/sqlfingerprint/parser"
)

// Normalize parses query and returns it with its constants replaced.
func Normalize(query string) (string, error) {
	stmts, err := parser.Parse(query)
	if err != nil {
		return "", err
	}
	return Tree(query, stmts)
}

// Tree normalizes query given stmts, the result of parsing it.
func Tree(query string, stmts []*ast.RawStmt) (out string, err error) {
	defer errors.Recover(&err)
	l := locate(query, stmts)
	return rewrite(query, l.locs, l.highestExtern), nil
}

// Constant is a constant found in a query.
type Constant struct {
	Offset int `json:"offset" yaml:"offset"`
	Length int `json:"length" yaml:"length"`
	Param  int `json:"param" yaml:"param"`
}

// Constants returns the constants Tree replaces, in query order.
func Constants(query string, stmts []*ast.RawStmt) (consts []Constant, err error) {
	defer errors.Recover(&err)
	l := locate(query, stmts)
	for _, loc := range l.locs {
		if loc.length < 0 {
			continue
		}
		consts = append(consts, Constant{
			Offset: loc.offset,
			Length: loc.length,
			Param:  paramNumber(loc.paramID, l.highestExtern),
		})
	}
	return consts, nil
}

func locate(query string, stmts []*ast.RawStmt) *locator {
	l := newLocator(query)
	for _, stmt := range stmts {
		if stmt != nil {
			l.walk(stmt)
		}
	}
	fillLengths(query, l.locs)
	return l
}
