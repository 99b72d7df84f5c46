// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package normalize

import (
	"strings"

	"github.com/DataDog/sqlfingerprint/pkg/sqlfingerprint/ast"
	"github.com/DataDog/sqlfingerprint/pkg/sqlfingerprint/fingerprint"
)

// location is a constant to replace. A negative paramID -n means the n-th
// generated parameter, numbered after the highest parameter of the query.
type location struct {
	offset  int
	length  int
	paramID int
}

// targetRefs remembers the parameters used by one select list entry.
type targetRefs struct {
	fp   uint64
	refs []int
}

// locator collects the locations of the constants of a parse tree.
type locator struct {
	query string
	locs  []location

	// nextParam is the magnitude of the next generated paramID.
	nextParam int
	// highestExtern is the highest $n written in the query.
	highestExtern int

	// refs, when non-nil, receives every parameter used or assigned.
	refs *[]int
}

func newLocator(query string) *locator {
	return &locator{query: query, nextParam: 1}
}

func (l *locator) record(offset int) {
	if offset < 0 {
		return
	}
	id := -l.nextParam
	l.nextParam++
	l.locs = append(l.locs, location{offset: offset, length: -1, paramID: id})
	if l.refs != nil {
		*l.refs = append(*l.refs, id)
	}
}

// recordOptionValue records the first quote or dollar sign at or after
// offset, which starts the literal value of an option.
func (l *locator) recordOptionValue(offset int) {
	if offset < 0 || offset > len(l.query) {
		return
	}
	if i := strings.IndexAny(l.query[offset:], "'$"); i >= 0 {
		l.record(offset + i)
	}
}

// recordMatchingString records the quote preceding the first occurrence of
// s in the query.
func (l *locator) recordMatchingString(s string) {
	if i := strings.Index(l.query, s); i >= 0 {
		l.record(i - 1)
	}
}

func (l *locator) walk(n ast.Node) {
	if n == nil {
		return
	}
	switch v := n.(type) {
	case *ast.AConst:
		l.record(v.Location)
	case *ast.ParamRef:
		if v.Number > l.highestExtern {
			l.highestExtern = v.Number
		}
		if l.refs != nil {
			*l.refs = append(*l.refs, v.Number)
		}
	case *ast.DefElem:
		if isStringArg(v.Arg) {
			l.recordOptionValue(v.Location)
		}
		l.walk(v.Arg)
	case *ast.RawStmt:
		l.walk(v.Stmt)
	case *ast.VariableSetStmt:
		l.walk(opt(v.Args))
	case *ast.ExplainStmt:
		l.walk(v.Query)
	case *ast.CreateRoleStmt:
		l.walk(opt(v.Options))
	case *ast.DoStmt:
		l.walk(opt(v.Args))
	case *ast.CreateSubscriptionStmt:
		l.recordMatchingString(v.Conninfo)
	case *ast.TypeName:
		// typmods and array bounds keep their values
	case *ast.SelectStmt:
		l.walkSelect(v)
	case *ast.PrepareStmt, *ast.ExecuteStmt, *ast.DeallocateStmt,
		*ast.TransactionStmt, *ast.CallStmt, *ast.VariableShowStmt:
		// utility statements carry no normalizable expressions
	default:
		ast.VisitChildren(n, func(_ string, child ast.Node) {
			l.walk(child)
		})
	}
}

func isStringArg(arg ast.Node) bool {
	switch a := arg.(type) {
	case *ast.String:
		return true
	case *ast.List:
		if a.Len() == 1 {
			_, ok := a.Items[0].(*ast.String)
			return ok
		}
	}
	return false
}

// walkSelect visits the clauses of a SELECT in order. Select list entries
// are fingerprinted so that matching GROUP BY expressions reuse their
// parameters, and integer GROUP BY and ORDER BY positions are left alone.
func (l *locator) walkSelect(stmt *ast.SelectStmt) {
	l.walk(opt(stmt.DistinctClause))

	var targets []*targetRefs
	for _, item := range listItems(stmt.TargetList) {
		t := &targetRefs{}
		l.refs = &t.refs
		l.walk(item)
		l.refs = nil
		if rt, ok := item.(*ast.ResTarget); ok {
			t.fp = fingerprint.Node(rt.Val)
		} else {
			t.fp = fingerprint.Node(item)
		}
		targets = append(targets, t)
	}

	l.walk(opt(stmt.FromClause))
	l.walk(stmt.WhereClause)

	for _, item := range listItems(stmt.GroupClause) {
		if isIntegerConst(item) {
			continue
		}
		fp := fingerprint.Node(item)
		var match *targetRefs
		for i, t := range targets {
			if t.fp == fp {
				match = t
				targets = append(targets[:i], targets[i+1:]...)
				break
			}
		}
		before := len(l.locs)
		l.walk(item)
		if match != nil && len(match.refs) == len(l.locs)-before {
			for i := before; i < len(l.locs); i++ {
				l.locs[i].paramID = match.refs[i-before]
			}
			l.nextParam -= len(match.refs)
		}
	}

	for _, item := range listItems(stmt.SortClause) {
		if sb, ok := item.(*ast.SortBy); ok && isIntegerConst(sb.Node) {
			continue
		}
		l.walk(item)
	}

	l.walk(stmt.HavingClause)
	l.walk(opt(stmt.WindowClause))
	l.walk(opt(stmt.ValuesLists))
	l.walk(stmt.LimitOffset)
	l.walk(stmt.LimitCount)
	l.walk(opt(stmt.LockingClause))
	if stmt.WithClause != nil {
		l.walk(stmt.WithClause)
	}
	if stmt.Larg != nil {
		l.walk(stmt.Larg)
	}
	if stmt.Rarg != nil {
		l.walk(stmt.Rarg)
	}
}

func isIntegerConst(n ast.Node) bool {
	c, ok := n.(*ast.AConst)
	if !ok {
		return false
	}
	_, ok = c.Val.(*ast.Integer)
	return ok
}

func listItems(l *ast.List) []ast.Node {
	if l == nil {
		return nil
	}
	return l.Items
}

// opt maps a nil list to a nil Node.
func opt(l *ast.List) ast.Node {
	if l == nil {
		return nil
	}
	return l
}
