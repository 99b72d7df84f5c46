// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package parser

import (
	"github.com/DataDog/sqlfingerprint/pkg/sqlfingerprint/ast"
	"github.com/DataDog/sqlfingerprint/pkg/sqlfingerprint/scanner"
)

func isSelectStart(t scanner.Token) bool {
	return isKeywordTok(t, "select") || isKeywordTok(t, "values") || isKeywordTok(t, "with") || isKeywordTok(t, "table")
}

// isSelectWithParens reports whether the next tokens open a parenthesized
// select, allowing nested parentheses.
func (p *parser) isSelectWithParens() bool {
	i := 0
	for isCharTok(p.peekN(i), '(') {
		i++
	}
	return i > 0 && isSelectStart(p.peekN(i))
}

// isSubqueryStart reports whether the next tokens are '(' directly followed
// by a select.
func (p *parser) isSubqueryStart() bool {
	return p.isChar('(') && isSelectStart(p.peekN(1))
}

func (p *parser) selectWithParens() ast.Node {
	p.expectChar('(')
	stmt := p.selectStmt()
	p.expectChar(')')
	return stmt
}

// selectStmt parses a complete select: WITH, set operations and the
// trailing ORDER BY, LIMIT and locking clauses.
func (p *parser) selectStmt() *ast.SelectStmt {
	var with *ast.WithClause
	if p.isKeyword("with") {
		with = p.withClause()
	}
	return p.selectRest(with)
}

func (p *parser) selectRest(with *ast.WithClause) *ast.SelectStmt {
	stmt := p.selectBody()
	p.selectOptions(stmt, with)
	return stmt
}

func (p *parser) selectBody() *ast.SelectStmt {
	left := p.selectTerm()
	for p.isKeyword("union") || p.isKeyword("except") {
		op := ast.SetOpUnion
		if p.next().Value == "except" {
			op = ast.SetOpExcept
		}
		all := p.setQuantifier()
		left = &ast.SelectStmt{Op: op, All: all, Larg: left, Rarg: p.selectTerm()}
	}
	return left
}

func (p *parser) selectTerm() *ast.SelectStmt {
	left := p.selectPrimary()
	for p.acceptKeyword("intersect") {
		all := p.setQuantifier()
		left = &ast.SelectStmt{Op: ast.SetOpIntersect, All: all, Larg: left, Rarg: p.selectPrimary()}
	}
	return left
}

func (p *parser) setQuantifier() bool {
	if p.acceptKeyword("all") {
		return true
	}
	p.acceptKeyword("distinct")
	return false
}

func (p *parser) selectPrimary() *ast.SelectStmt {
	t := p.peek()
	switch {
	case isCharTok(t, '('):
		p.next()
		stmt := p.selectStmt()
		p.expectChar(')')
		return stmt
	case isKeywordTok(t, "select"):
		return p.simpleSelect()
	case isKeywordTok(t, "values"):
		return p.valuesClause()
	case isKeywordTok(t, "table"):
		p.next()
		rv := p.relationExpr()
		star := &ast.ColumnRef{Fields: ast.NewList(&ast.AStar{}), Location: -1}
		return &ast.SelectStmt{
			TargetList: ast.NewList(&ast.ResTarget{Val: star, Location: -1}),
			FromClause: ast.NewList(rv),
		}
	}
	p.syntaxError(t)
	return nil
}

// selectOptions attaches the trailing clauses of a select to stmt.
func (p *parser) selectOptions(stmt *ast.SelectStmt, with *ast.WithClause) {
	if p.isKeyword("order") {
		loc := p.peek().Pos
		sort := p.sortClause()
		if stmt.SortClause != nil {
			p.errorAt(loc, "multiple ORDER BY clauses not allowed")
		}
		stmt.SortClause = sort
	}
	for {
		switch {
		case p.isKeyword("limit"), p.isKeyword("offset"), p.isKeyword("fetch"):
			p.limitClause(stmt)
		case p.isKeyword("for"):
			p.lockingClause(stmt)
		default:
			if with != nil {
				if stmt.WithClause != nil {
					p.errorAt(with.Location, "multiple WITH clauses not allowed")
				}
				stmt.WithClause = with
			}
			return
		}
	}
}

func (p *parser) limitClause(stmt *ast.SelectStmt) {
	t := p.next()
	switch t.Value {
	case "limit":
		if stmt.LimitCount != nil {
			p.errorAt(t.Pos, "multiple LIMIT clauses not allowed")
		}
		if all := p.peek(); isKeywordTok(all, "all") {
			p.next()
			stmt.LimitCount = &ast.AConst{Isnull: true, Location: all.Pos}
		} else {
			stmt.LimitCount = p.parseExpr()
		}
		if p.isChar(',') {
			p.errorAt(p.peek().Pos, "LIMIT #,# syntax is not supported")
		}
		if stmt.LimitOption == ast.LimitOptionDefault {
			stmt.LimitOption = ast.LimitOptionCount
		}
	case "offset":
		if stmt.LimitOffset != nil {
			p.errorAt(t.Pos, "multiple OFFSET clauses not allowed")
		}
		stmt.LimitOffset = p.parseExpr()
		if !p.acceptKeyword("row") {
			p.acceptKeyword("rows")
		}
		if stmt.LimitOption == ast.LimitOptionDefault {
			stmt.LimitOption = ast.LimitOptionCount
		}
	case "fetch":
		if stmt.LimitCount != nil {
			p.errorAt(t.Pos, "multiple LIMIT clauses not allowed")
		}
		if !p.acceptKeyword("first") {
			p.expectKeyword("next")
		}
		var count ast.Node
		if p.isKeyword("row") || p.isKeyword("rows") {
			count = makeIntConst(1, -1)
		} else {
			count = p.parseUnary()
		}
		if !p.acceptKeyword("row") {
			p.expectKeyword("rows")
		}
		stmt.LimitCount = count
		stmt.LimitOption = ast.LimitOptionCount
		if p.acceptKeyword("with") {
			p.expectKeyword("ties")
			stmt.LimitOption = ast.LimitOptionWithTies
		} else {
			p.expectKeyword("only")
		}
	}
}

func (p *parser) lockingClause(stmt *ast.SelectStmt) {
	if p.isKeywordAt(1, "read") {
		p.next()
		p.next()
		p.expectKeyword("only")
		return
	}
	for p.acceptKeyword("for") {
		lc := &ast.LockingClause{}
		switch {
		case p.acceptKeyword("update"):
			lc.Strength = ast.LCSForUpdate
		case p.acceptKeyword("share"):
			lc.Strength = ast.LCSForShare
		case p.acceptKeyword("no"):
			p.expectKeyword("key")
			p.expectKeyword("update")
			lc.Strength = ast.LCSForNoKeyUpdate
		default:
			p.expectKeyword("key")
			p.expectKeyword("share")
			lc.Strength = ast.LCSForKeyShare
		}
		if p.acceptKeyword("of") {
			lc.LockedRels = &ast.List{}
			for {
				lc.LockedRels.Append(p.qualifiedName())
				if !p.acceptChar(',') {
					break
				}
			}
		}
		switch {
		case p.acceptKeyword("nowait"):
			lc.WaitPolicy = ast.LockWaitError
		case p.acceptKeyword("skip"):
			p.expectKeyword("locked")
			lc.WaitPolicy = ast.LockWaitSkip
		}
		stmt.LockingClause = stmt.LockingClause.Append(lc)
	}
}

func (p *parser) simpleSelect() *ast.SelectStmt {
	p.expectKeyword("select")
	s := &ast.SelectStmt{}
	if !p.acceptKeyword("all") && p.acceptKeyword("distinct") {
		if p.acceptKeyword("on") {
			p.expectChar('(')
			s.DistinctClause = p.exprList()
			p.expectChar(')')
		} else {
			s.DistinctClause = ast.NewList(nil)
		}
	}
	if !p.atTargetListEnd() {
		s.TargetList = p.targetList()
	}
	if p.acceptKeyword("from") {
		s.FromClause = p.fromList()
	}
	if p.acceptKeyword("where") {
		s.WhereClause = p.parseExpr()
	}
	if p.acceptKeyword("group") {
		p.expectKeyword("by")
		if p.acceptKeyword("distinct") {
			s.GroupDistinct = true
		} else {
			p.acceptKeyword("all")
		}
		s.GroupClause = &ast.List{}
		for {
			s.GroupClause.Append(p.groupByItem())
			if !p.acceptChar(',') {
				break
			}
		}
	}
	if p.acceptKeyword("having") {
		s.HavingClause = p.parseExpr()
	}
	if p.acceptKeyword("window") {
		s.WindowClause = &ast.List{}
		for {
			name, _ := p.colID()
			p.expectKeyword("as")
			w := p.windowSpecification()
			w.Name = name
			s.WindowClause.Append(w)
			if !p.acceptChar(',') {
				break
			}
		}
	}
	return s
}

var targetListEnd = keywordSet(
	"from", "where", "group", "having", "window", "order", "limit", "offset",
	"fetch", "for", "union", "intersect", "except", "into",
)

func (p *parser) atTargetListEnd() bool {
	t := p.peek()
	return t.Kind == scanner.EOF || isCharTok(t, ';') || isCharTok(t, ')') ||
		(t.Kind == scanner.Ident && targetListEnd[t.Value])
}

func (p *parser) targetList() *ast.List {
	l := &ast.List{}
	for {
		l.Append(p.targetEl())
		if !p.acceptChar(',') {
			return l
		}
	}
}

func (p *parser) targetEl() *ast.ResTarget {
	start := p.peek()
	if isCharTok(start, '*') {
		p.next()
		star := &ast.ColumnRef{Fields: ast.NewList(&ast.AStar{}), Location: start.Pos}
		return &ast.ResTarget{Val: star, Location: start.Pos}
	}
	rt := &ast.ResTarget{Val: p.parseExpr(), Location: start.Pos}
	if p.acceptKeyword("as") {
		rt.Name, _ = p.colLabel()
	} else if p.isBareLabel() {
		rt.Name = p.next().Value
	}
	return rt
}

func (p *parser) isBareLabel() bool {
	t := p.peek()
	return t.Kind == scanner.QuotedIdent ||
		(t.Kind == scanner.Ident && !reservedKeywords[t.Value] && !bareLabelExcluded[t.Value])
}

func (p *parser) valuesClause() *ast.SelectStmt {
	p.expectKeyword("values")
	s := &ast.SelectStmt{ValuesLists: &ast.List{}}
	for {
		p.expectChar('(')
		s.ValuesLists.Append(p.exprList())
		p.expectChar(')')
		if !p.acceptChar(',') {
			return s
		}
	}
}

func (p *parser) groupByItem() ast.Node {
	t := p.peek()
	switch {
	case isCharTok(t, '(') && isCharTok(p.peekN(1), ')'):
		p.next()
		p.next()
		return &ast.GroupingSet{Kind: ast.GroupingSetEmpty, Location: t.Pos}
	case (isKeywordTok(t, "rollup") || isKeywordTok(t, "cube")) && isCharTok(p.peekN(1), '('):
		p.next()
		p.next()
		kind := ast.GroupingSetRollup
		if t.Value == "cube" {
			kind = ast.GroupingSetCube
		}
		content := p.exprList()
		p.expectChar(')')
		return &ast.GroupingSet{Kind: kind, Content: content, Location: t.Pos}
	case isKeywordTok(t, "grouping") && p.isKeywordAt(1, "sets"):
		p.next()
		p.next()
		p.expectChar('(')
		content := &ast.List{}
		for {
			content.Append(p.groupByItem())
			if !p.acceptChar(',') {
				break
			}
		}
		p.expectChar(')')
		return &ast.GroupingSet{Kind: ast.GroupingSetSets, Content: content, Location: t.Pos}
	}
	return p.parseExpr()
}

func (p *parser) sortClause() *ast.List {
	p.expectKeyword("order")
	p.expectKeyword("by")
	l := &ast.List{}
	for {
		l.Append(p.sortBy())
		if !p.acceptChar(',') {
			return l
		}
	}
}

func (p *parser) sortBy() *ast.SortBy {
	s := &ast.SortBy{Node: p.parseExpr(), Location: -1}
	switch {
	case p.acceptKeyword("asc"):
		s.SortbyDir = ast.SortByAsc
	case p.acceptKeyword("desc"):
		s.SortbyDir = ast.SortByDesc
	case p.acceptKeyword("using"):
		op := p.next()
		if op.Kind == scanner.Ident || op.Kind == scanner.EOF {
			p.syntaxError(op)
		}
		s.SortbyDir = ast.SortByUsing
		s.UseOp = ast.StringList(op.Value)
		s.Location = op.Pos
	}
	if p.acceptKeyword("nulls") {
		if p.acceptKeyword("first") {
			s.SortbyNulls = ast.SortByNullsFirst
		} else {
			p.expectKeyword("last")
			s.SortbyNulls = ast.SortByNullsLast
		}
	}
	return s
}

func (p *parser) withClause() *ast.WithClause {
	t := p.expectKeyword("with")
	w := &ast.WithClause{Ctes: &ast.List{}, Location: t.Pos}
	w.Recursive = p.acceptKeyword("recursive")
	for {
		name, loc := p.colID()
		cte := &ast.CommonTableExpr{Ctename: name, Location: loc}
		if p.acceptChar('(') {
			cte.Aliascolnames = p.nameList()
			p.expectChar(')')
		}
		p.expectKeyword("as")
		switch {
		case p.acceptKeyword("materialized"):
			cte.Ctematerialized = ast.CTEMaterializeAlways
		case p.isKeyword("not") && p.isKeywordAt(1, "materialized"):
			p.next()
			p.next()
			cte.Ctematerialized = ast.CTEMaterializeNever
		}
		p.expectChar('(')
		cte.Ctequery = p.preparableStmt()
		p.expectChar(')')
		w.Ctes.Append(cte)
		if !p.acceptChar(',') {
			return w
		}
	}
}

// FROM clause

func (p *parser) fromList() *ast.List {
	l := &ast.List{}
	for {
		l.Append(p.tableRef())
		if !p.acceptChar(',') {
			return l
		}
	}
}

func (p *parser) tableRef() ast.Node {
	n := p.tablePrimary()
	for {
		j := p.joinTail(n)
		if j == nil {
			return n
		}
		n = j
	}
}

func (p *parser) tablePrimary() ast.Node {
	lateral := p.acceptKeyword("lateral")
	switch {
	case p.isSelectWithParens():
		sub := &ast.RangeSubselect{Lateral: lateral, Subquery: p.selectWithParens()}
		sub.Alias = p.optAlias("")
		return sub
	case p.isChar('(') && !lateral:
		p.next()
		j := p.tableRef()
		p.expectChar(')')
		if alias := p.optAlias(""); alias != nil {
			je, ok := j.(*ast.JoinExpr)
			if !ok {
				p.syntaxError(p.toks[p.pos-1])
			}
			je.Alias = alias
		}
		return j
	case p.isFuncTable():
		fn := p.parsePrimary()
		rf := &ast.RangeFunction{Lateral: lateral, Functions: ast.NewList(ast.NewList(fn, nil))}
		if p.isKeyword("with") && p.isKeywordAt(1, "ordinality") {
			p.next()
			p.next()
			rf.Ordinality = true
		}
		rf.Alias = p.optAlias("")
		return rf
	case lateral:
		p.syntaxError(p.peek())
	}
	rv := p.relationExpr()
	rv.Alias = p.optAlias("")
	return rv
}

func (p *parser) isFuncTable() bool {
	i := 0
	for {
		t := p.peekN(i)
		if t.Kind != scanner.Ident && t.Kind != scanner.QuotedIdent {
			return false
		}
		if t.Kind == scanner.Ident && reservedKeywords[t.Value] {
			return false
		}
		switch {
		case isCharTok(p.peekN(i+1), '('):
			return true
		case isCharTok(p.peekN(i+1), '.'):
			i += 2
		default:
			return false
		}
	}
}

// optAlias parses [AS] ColId [(name_list)]. A bare alias equal to stop is
// not taken.
func (p *parser) optAlias(stop string) *ast.Alias {
	if !p.acceptKeyword("as") {
		if !p.isColID() || (stop != "" && p.isKeyword(stop)) {
			return nil
		}
	}
	name, _ := p.colID()
	alias := &ast.Alias{Aliasname: name}
	if p.acceptChar('(') {
		alias.Colnames = p.nameList()
		p.expectChar(')')
	}
	return alias
}

func (p *parser) relationExpr() *ast.RangeVar {
	if p.acceptKeyword("only") {
		paren := p.acceptChar('(')
		rv := p.qualifiedName()
		rv.Inh = false
		if paren {
			p.expectChar(')')
		}
		return rv
	}
	rv := p.qualifiedName()
	p.acceptChar('*')
	return rv
}

func (p *parser) qualifiedName() *ast.RangeVar {
	name, loc := p.colID()
	rv := &ast.RangeVar{Relname: name, Inh: true, Relpersistence: 'p', Location: loc}
	if p.acceptChar('.') {
		second, _ := p.colLabel()
		if p.acceptChar('.') {
			third, _ := p.colLabel()
			rv.Catalogname, rv.Schemaname, rv.Relname = name, second, third
		} else {
			rv.Schemaname, rv.Relname = name, second
		}
	}
	return rv
}

func (p *parser) joinTail(left ast.Node) ast.Node {
	j := &ast.JoinExpr{Larg: left}
	switch {
	case p.isKeyword("cross"):
		p.next()
		p.expectKeyword("join")
		j.Jointype = ast.JoinInner
		j.Rarg = p.tablePrimary()
		return j
	case p.isKeyword("natural"):
		p.next()
		j.IsNatural = true
		j.Jointype = p.joinType()
		p.expectKeyword("join")
		j.Rarg = p.tablePrimary()
		return j
	case p.isKeyword("join"), p.isKeyword("inner"), p.isKeyword("left"), p.isKeyword("right"), p.isKeyword("full"):
		j.Jointype = p.joinType()
		p.expectKeyword("join")
		j.Rarg = p.tablePrimary()
	default:
		return nil
	}
	switch {
	case p.acceptKeyword("on"):
		j.Quals = p.parseExpr()
	case p.acceptKeyword("using"):
		p.expectChar('(')
		j.UsingClause = p.nameList()
		p.expectChar(')')
		if p.acceptKeyword("as") {
			name, _ := p.colID()
			j.JoinUsingAlias = &ast.Alias{Aliasname: name}
		}
	default:
		p.syntaxError(p.peek())
	}
	return j
}

func (p *parser) joinType() ast.JoinType {
	switch {
	case p.acceptKeyword("inner"):
		return ast.JoinInner
	case p.acceptKeyword("left"):
		p.acceptKeyword("outer")
		return ast.JoinLeft
	case p.acceptKeyword("right"):
		p.acceptKeyword("outer")
		return ast.JoinRight
	case p.acceptKeyword("full"):
		p.acceptKeyword("outer")
		return ast.JoinFull
	}
	return ast.JoinInner
}
