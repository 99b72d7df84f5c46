// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package parser

import (
	"strconv"

	"github.com/DataDog/sqlfingerprint/pkg/sqlfingerprint/ast"
	"github.com/DataDog/sqlfingerprint/pkg/sqlfingerprint/scanner"
)

// binding strength of infix operators, loosest first
const (
	precNone = iota
	precOr
	precAnd
	precNot
	precIs
	precCmp
	precLike
	precOp
	precAdd
	precMul
	precExp
	precAt
	precCollate
	precUnary
)

func (p *parser) parseExpr() ast.Node { return p.parseExprPrec(precOr) }

func (p *parser) parseExprPrec(min int) ast.Node {
	left := p.parseUnary()
	for {
		prec := p.infixPrec()
		if prec == precNone || prec < min {
			return left
		}
		left = p.parseInfix(left, prec)
	}
}

func (p *parser) exprList() *ast.List {
	l := &ast.List{}
	for {
		l.Append(p.parseExpr())
		if !p.acceptChar(',') {
			return l
		}
	}
}

func (p *parser) parseUnary() ast.Node {
	t := p.peek()
	switch {
	case isKeywordTok(t, "not"):
		p.next()
		return makeNotExpr(p.parseExprPrec(precNot), t.Pos)
	case isCharTok(t, '-'):
		p.next()
		return doNegate(p.parseExprPrec(precUnary), t.Pos)
	case isCharTok(t, '+'):
		p.next()
		return makeSimpleAExpr(ast.AExprOp, "+", nil, p.parseExprPrec(precUnary), t.Pos)
	case t.Kind == scanner.Op:
		p.next()
		return makeSimpleAExpr(ast.AExprOp, t.Value, nil, p.parseExprPrec(precAdd), t.Pos)
	}
	return p.parsePostfix(p.parsePrimary())
}

var likeKeywords = keywordSet("between", "in", "like", "ilike", "similar")

func (p *parser) infixPrec() int {
	t := p.peek()
	switch t.Kind {
	case scanner.Ident:
		switch t.Value {
		case "or":
			return precOr
		case "and":
			return precAnd
		case "is", "isnull", "notnull":
			return precIs
		case "between", "in", "like", "ilike", "similar":
			return precLike
		case "not":
			if n := p.peekN(1); n.Kind == scanner.Ident && likeKeywords[n.Value] {
				return precLike
			}
		case "at":
			if p.isKeywordAt(1, "time") {
				return precAt
			}
		case "collate":
			return precCollate
		}
	case scanner.Char:
		switch t.Value {
		case "<", ">", "=":
			return precCmp
		case "+", "-":
			return precAdd
		case "*", "/", "%":
			return precMul
		case "^":
			return precExp
		}
	case scanner.LessEquals, scanner.GreaterEquals, scanner.NotEquals:
		return precCmp
	case scanner.Op:
		return precOp
	}
	return precNone
}

func (p *parser) parseInfix(left ast.Node, prec int) ast.Node {
	op := p.next()
	switch prec {
	case precOr:
		return makeBoolExpr(ast.OrExpr, left, p.parseExprPrec(precOr+1), op.Pos)
	case precAnd:
		return makeBoolExpr(ast.AndExpr, left, p.parseExprPrec(precAnd+1), op.Pos)
	case precIs:
		return p.parseIs(left, op)
	case precLike:
		return p.parseLike(left, op)
	case precAt:
		p.expectKeyword("time")
		p.expectKeyword("zone")
		zone := p.parseExprPrec(precAt + 1)
		return makeFuncCall(systemFuncName("timezone"), ast.NewList(zone, left), ast.CoerceSQLSyntax, op.Pos)
	case precCollate:
		return &ast.CollateClause{Arg: left, Collname: p.anyName(), Location: op.Pos}
	case precCmp, precOp:
		if n := p.peek(); (isKeywordTok(n, "any") || isKeywordTok(n, "some") || isKeywordTok(n, "all")) && isCharTok(p.peekN(1), '(') {
			return p.parseSubqueryOp(left, op)
		}
	}
	return makeSimpleAExpr(ast.AExprOp, op.Value, left, p.parseExprPrec(prec+1), op.Pos)
}

// parseSubqueryOp handles "expr op ANY|SOME|ALL (...)" where the operand is a
// subquery or an array expression.
func (p *parser) parseSubqueryOp(left ast.Node, op scanner.Token) ast.Node {
	all := p.next().Value == "all"
	if p.isSelectWithParens() {
		kind := ast.AnySubLink
		if all {
			kind = ast.AllSubLink
		}
		return &ast.SubLink{
			SubLinkType: kind,
			Testexpr:    left,
			OperName:    ast.StringList(op.Value),
			Subselect:   p.selectWithParens(),
			Location:    op.Pos,
		}
	}
	p.expectChar('(')
	arg := p.parseExpr()
	p.expectChar(')')
	kind := ast.AExprOpAny
	if all {
		kind = ast.AExprOpAll
	}
	return makeSimpleAExpr(kind, op.Value, left, arg, op.Pos)
}

func (p *parser) parseIs(left ast.Node, op scanner.Token) ast.Node {
	switch op.Value {
	case "isnull":
		return &ast.NullTest{Arg: left, Nulltesttype: ast.IsNull, Location: op.Pos}
	case "notnull":
		return &ast.NullTest{Arg: left, Nulltesttype: ast.IsNotNull, Location: op.Pos}
	}
	not := p.acceptKeyword("not")
	t := p.next()
	switch {
	case isKeywordTok(t, "null"):
		kind := ast.IsNull
		if not {
			kind = ast.IsNotNull
		}
		return &ast.NullTest{Arg: left, Nulltesttype: kind, Location: op.Pos}
	case isKeywordTok(t, "true"), isKeywordTok(t, "false"), isKeywordTok(t, "unknown"):
		kinds := map[string][2]ast.BoolTestType{
			"true":    {ast.IsTrue, ast.IsNotTrue},
			"false":   {ast.IsFalse, ast.IsNotFalse},
			"unknown": {ast.IsUnknown, ast.IsNotUnknown},
		}[t.Value]
		kind := kinds[0]
		if not {
			kind = kinds[1]
		}
		return &ast.BooleanTest{Arg: left, Booltesttype: kind, Location: op.Pos}
	case isKeywordTok(t, "distinct"):
		p.expectKeyword("from")
		right := p.parseExprPrec(precIs + 1)
		kind := ast.AExprDistinct
		if not {
			kind = ast.AExprNotDistinct
		}
		return makeSimpleAExpr(kind, "=", left, right, op.Pos)
	}
	p.syntaxError(t)
	return nil
}

func (p *parser) parseLike(left ast.Node, op scanner.Token) ast.Node {
	kw := op
	not := false
	if op.Value == "not" {
		not = true
		kw = p.next()
	}
	switch kw.Value {
	case "between":
		name := "BETWEEN"
		kind := ast.AExprBetween
		if p.acceptKeyword("symmetric") {
			name, kind = "BETWEEN SYMMETRIC", ast.AExprBetweenSym
		} else {
			p.acceptKeyword("asymmetric")
		}
		if not {
			name = "NOT " + name
			kind++
		}
		lo := p.parseExprPrec(precLike + 1)
		p.expectKeyword("and")
		hi := p.parseExprPrec(precLike + 1)
		return makeSimpleAExpr(kind, name, left, ast.NewList(lo, hi), op.Pos)
	case "in":
		if p.isSelectWithParens() {
			sub := &ast.SubLink{SubLinkType: ast.AnySubLink, Testexpr: left, Subselect: p.selectWithParens(), Location: op.Pos}
			if not {
				return makeNotExpr(sub, op.Pos)
			}
			return sub
		}
		p.expectChar('(')
		list := p.exprList()
		p.expectChar(')')
		name := "="
		if not {
			name = "<>"
		}
		return makeSimpleAExpr(ast.AExprIn, name, left, list, op.Pos)
	case "like", "ilike":
		kind, name := ast.AExprLike, "~~"
		if kw.Value == "ilike" {
			kind, name = ast.AExprILike, "~~*"
		}
		if not {
			name = "!" + name
		}
		pattern := p.parseExprPrec(precLike + 1)
		if p.acceptKeyword("escape") {
			esc := p.parseExprPrec(precLike + 1)
			pattern = makeFuncCall(systemFuncName("like_escape"), ast.NewList(pattern, esc), ast.CoerceExplicitCall, op.Pos)
		}
		return makeSimpleAExpr(kind, name, left, pattern, op.Pos)
	case "similar":
		p.expectKeyword("to")
		args := ast.NewList(p.parseExprPrec(precLike + 1))
		if p.acceptKeyword("escape") {
			args.Append(p.parseExprPrec(precLike + 1))
		}
		name := "~"
		if not {
			name = "!~"
		}
		pattern := makeFuncCall(systemFuncName("similar_to_escape"), args, ast.CoerceExplicitCall, op.Pos)
		return makeSimpleAExpr(ast.AExprSimilar, name, left, pattern, op.Pos)
	}
	p.syntaxError(kw)
	return nil
}

// parsePostfix applies subscripts, field selections and :: casts.
func (p *parser) parsePostfix(n ast.Node) ast.Node {
	for {
		switch t := p.peek(); {
		case t.Kind == scanner.Typecast:
			p.next()
			n = &ast.TypeCast{Arg: n, TypeName: p.parseTypename(), Location: t.Pos}
		case isCharTok(t, '[') || isCharTok(t, '.'):
			ind := p.indirection()
			if ref, ok := n.(*ast.ColumnRef); ok {
				n = makeColumnRef(ref, ind)
				continue
			}
			if in, ok := n.(*ast.AIndirection); ok {
				in.Indirection.Items = append(in.Indirection.Items, ind.Items...)
				continue
			}
			n = &ast.AIndirection{Arg: n, Indirection: ind}
		default:
			return n
		}
	}
}

// indirection parses a run of .name, .* and [subscript] elements.
func (p *parser) indirection() *ast.List {
	l := &ast.List{}
	for {
		switch {
		case p.isChar('.'):
			p.next()
			if p.acceptChar('*') {
				l.Append(&ast.AStar{})
				continue
			}
			name, _ := p.colLabel()
			l.Append(ast.MakeString(name))
		case p.isChar('['):
			p.next()
			ind := &ast.AIndices{}
			if !p.isChar(':') {
				ind.Uidx = p.parseExpr()
			}
			if p.acceptChar(':') {
				ind.IsSlice = true
				ind.Lidx = ind.Uidx
				ind.Uidx = nil
				if !p.isChar(']') {
					ind.Uidx = p.parseExpr()
				}
			}
			p.expectChar(']')
			l.Append(ind)
		default:
			return l
		}
	}
}

// makeColumnRef appends ind to ref's fields up to the first subscript; the
// remainder wraps the reference in an A_Indirection.
func makeColumnRef(ref *ast.ColumnRef, ind *ast.List) ast.Node {
	for i, n := range ind.Items {
		if _, ok := n.(*ast.AIndices); ok {
			ref.Fields.Items = append(ref.Fields.Items, ind.Items[:i]...)
			return &ast.AIndirection{Arg: ref, Indirection: &ast.List{Items: ind.Items[i:]}}
		}
	}
	ref.Fields.Items = append(ref.Fields.Items, ind.Items...)
	return ref
}

func (p *parser) parsePrimary() ast.Node {
	t := p.peek()
	switch t.Kind {
	case scanner.IConst:
		p.next()
		v, err := strconv.ParseInt(t.Value, 10, 64)
		if err != nil {
			return makeAConst(&ast.Float{Fval: t.Value}, t.Pos)
		}
		return makeIntConst(v, t.Pos)
	case scanner.FConst:
		p.next()
		return makeAConst(&ast.Float{Fval: t.Value}, t.Pos)
	case scanner.SConst:
		p.next()
		return makeStringConst(t.Value, t.Pos)
	case scanner.BConst, scanner.XConst:
		p.next()
		return makeAConst(&ast.BitString{Bsval: t.Value}, t.Pos)
	case scanner.Param:
		p.next()
		n, err := strconv.Atoi(t.Value)
		if err != nil {
			p.syntaxError(t)
		}
		return &ast.ParamRef{Number: n, Location: t.Pos}
	case scanner.Char:
		if t.Value == "(" {
			return p.parseParenExpr()
		}
	case scanner.QuotedIdent:
		return p.parseNameExpr()
	case scanner.Ident:
		if n := p.parseKeywordExpr(t); n != nil {
			return n
		}
		if reservedKeywords[t.Value] {
			break
		}
		return p.parseNameExpr()
	}
	p.syntaxError(t)
	return nil
}

func (p *parser) parseParenExpr() ast.Node {
	open := p.peek()
	if p.isSubqueryStart() {
		return &ast.SubLink{SubLinkType: ast.ExprSubLink, Subselect: p.selectWithParens(), Location: open.Pos}
	}
	p.next()
	first := p.parseExpr()
	if !p.isChar(',') {
		p.expectChar(')')
		return first
	}
	args := ast.NewList(first)
	for p.acceptChar(',') {
		args.Append(p.parseExpr())
	}
	p.expectChar(')')
	return &ast.RowExpr{Args: args, RowFormat: ast.CoerceImplicitCast, Location: open.Pos}
}

var sqlValueFunctions = map[string][2]ast.SQLValueFunctionOp{
	"current_date":      {ast.SVFOpCurrentDate, ast.SVFOpCurrentDate},
	"current_time":      {ast.SVFOpCurrentTime, ast.SVFOpCurrentTimeN},
	"current_timestamp": {ast.SVFOpCurrentTimestamp, ast.SVFOpCurrentTimestampN},
	"localtime":         {ast.SVFOpLocaltime, ast.SVFOpLocaltimeN},
	"localtimestamp":    {ast.SVFOpLocaltimestamp, ast.SVFOpLocaltimestampN},
	"current_role":      {ast.SVFOpCurrentRole, ast.SVFOpCurrentRole},
	"current_user":      {ast.SVFOpCurrentUser, ast.SVFOpCurrentUser},
	"user":              {ast.SVFOpUser, ast.SVFOpUser},
	"session_user":      {ast.SVFOpSessionUser, ast.SVFOpSessionUser},
	"current_catalog":   {ast.SVFOpCurrentCatalog, ast.SVFOpCurrentCatalog},
	"current_schema":    {ast.SVFOpCurrentSchema, ast.SVFOpCurrentSchema},
}

// parseKeywordExpr handles keywords with dedicated expression syntax. It
// returns nil when t does not start one.
func (p *parser) parseKeywordExpr(t scanner.Token) ast.Node {
	next := p.peekN(1)
	switch t.Value {
	case "true", "false":
		p.next()
		return makeAConst(&ast.Boolean{Boolval: t.Value == "true"}, t.Pos)
	case "null":
		p.next()
		return &ast.AConst{Isnull: true, Location: t.Pos}
	case "default":
		p.next()
		return &ast.SetToDefault{Location: t.Pos}
	case "case":
		return p.parseCase()
	case "cast":
		p.next()
		p.expectChar('(')
		arg := p.parseExpr()
		p.expectKeyword("as")
		tn := p.parseTypename()
		p.expectChar(')')
		return &ast.TypeCast{Arg: arg, TypeName: tn, Location: t.Pos}
	case "exists":
		p.next()
		return &ast.SubLink{SubLinkType: ast.ExistsSubLink, Subselect: p.selectWithParens(), Location: t.Pos}
	case "array":
		p.next()
		if p.isSelectWithParens() {
			return &ast.SubLink{SubLinkType: ast.ArraySubLink, Subselect: p.selectWithParens(), Location: t.Pos}
		}
		arr := p.parseArrayExpr()
		arr.Location = t.Pos
		return arr
	case "row":
		if !isCharTok(next, '(') {
			return nil
		}
		p.next()
		p.next()
		row := &ast.RowExpr{RowFormat: ast.CoerceExplicitCall, Location: t.Pos}
		if !p.isChar(')') {
			row.Args = p.exprList()
		}
		p.expectChar(')')
		return row
	case "coalesce", "greatest", "least", "nullif":
		if !isCharTok(next, '(') {
			return nil
		}
		p.next()
		p.next()
		args := p.exprList()
		p.expectChar(')')
		switch t.Value {
		case "coalesce":
			return &ast.CoalesceExpr{Args: args, Location: t.Pos}
		case "greatest":
			return &ast.MinMaxExpr{Op: ast.IsGreatest, Args: args, Location: t.Pos}
		case "least":
			return &ast.MinMaxExpr{Op: ast.IsLeast, Args: args, Location: t.Pos}
		}
		if args.Len() != 2 {
			p.errorAt(t.Pos, "NULLIF requires two arguments")
		}
		return makeSimpleAExpr(ast.AExprNullIf, "=", args.Items[0], args.Items[1], t.Pos)
	case "extract":
		if !isCharTok(next, '(') {
			return nil
		}
		p.next()
		p.next()
		field := p.next()
		if field.Kind != scanner.Ident && field.Kind != scanner.SConst {
			p.syntaxError(field)
		}
		p.expectKeyword("from")
		arg := p.parseExpr()
		p.expectChar(')')
		args := ast.NewList(makeStringConst(field.Value, field.Pos), arg)
		return makeFuncCall(systemFuncName("extract"), args, ast.CoerceSQLSyntax, t.Pos)
	case "position":
		if !isCharTok(next, '(') {
			return nil
		}
		p.next()
		p.next()
		sub := p.parseExprPrec(precLike + 1)
		p.expectKeyword("in")
		str := p.parseExprPrec(precLike + 1)
		p.expectChar(')')
		return makeFuncCall(systemFuncName("position"), ast.NewList(str, sub), ast.CoerceSQLSyntax, t.Pos)
	case "substring":
		if !isCharTok(next, '(') {
			return nil
		}
		return p.parseSubstring(t)
	case "trim":
		if !isCharTok(next, '(') {
			return nil
		}
		return p.parseTrim(t)
	}
	if ops, ok := sqlValueFunctions[t.Value]; ok {
		p.next()
		fn := &ast.SQLValueFunction{Op: ops[0], Typmod: -1, Location: t.Pos}
		if ops[0] != ops[1] && p.isChar('(') {
			p.next()
			fn.Op = ops[1]
			fn.Typmod = int(p.intValue(p.expectKind(scanner.IConst)))
			p.expectChar(')')
		}
		return fn
	}
	return nil
}

func (p *parser) parseCase() ast.Node {
	c := &ast.CaseExpr{Location: p.next().Pos}
	if !p.isKeyword("when") {
		c.Arg = p.parseExpr()
	}
	c.Args = &ast.List{}
	for p.isKeyword("when") {
		w := &ast.CaseWhen{Location: p.next().Pos}
		w.Expr = p.parseExpr()
		p.expectKeyword("then")
		w.Result = p.parseExpr()
		c.Args.Append(w)
	}
	if c.Args.Len() == 0 {
		p.syntaxError(p.peek())
	}
	if p.acceptKeyword("else") {
		c.Defresult = p.parseExpr()
	}
	p.expectKeyword("end")
	return c
}

// parseArrayExpr parses a bracketed ARRAY constructor body.
func (p *parser) parseArrayExpr() *ast.AArrayExpr {
	open := p.expectChar('[')
	arr := &ast.AArrayExpr{Location: open.Pos}
	if p.acceptChar(']') {
		return arr
	}
	arr.Elements = &ast.List{}
	for {
		if p.isChar('[') {
			arr.Elements.Append(p.parseArrayExpr())
		} else {
			arr.Elements.Append(p.parseExpr())
		}
		if !p.acceptChar(',') {
			break
		}
	}
	p.expectChar(']')
	return arr
}

func (p *parser) parseSubstring(t scanner.Token) ast.Node {
	p.next()
	p.next()
	first := p.parseExpr()
	if p.isChar(',') {
		args := ast.NewList(first)
		for p.acceptChar(',') {
			args.Append(p.parseExpr())
		}
		p.expectChar(')')
		return makeFuncCall(ast.StringList("substring"), args, ast.CoerceExplicitCall, t.Pos)
	}
	args := ast.NewList(first)
	var from, length ast.Node
	if p.acceptKeyword("from") {
		from = p.parseExpr()
	}
	if p.acceptKeyword("for") {
		length = p.parseExpr()
	}
	if from == nil && length == nil {
		p.syntaxError(p.peek())
	}
	p.expectChar(')')
	if from == nil {
		from = makeIntConst(1, -1)
	}
	args.Append(from)
	if length != nil {
		args.Append(length)
	}
	return makeFuncCall(systemFuncName("substring"), args, ast.CoerceSQLSyntax, t.Pos)
}

func (p *parser) parseTrim(t scanner.Token) ast.Node {
	p.next()
	p.next()
	name := "btrim"
	switch {
	case p.acceptKeyword("leading"):
		name = "ltrim"
	case p.acceptKeyword("trailing"):
		name = "rtrim"
	default:
		p.acceptKeyword("both")
	}
	var args *ast.List
	if p.acceptKeyword("from") {
		args = p.exprList()
	} else {
		first := p.parseExpr()
		if p.acceptKeyword("from") {
			args = p.exprList()
			args.Append(first)
		} else {
			args = ast.NewList(first)
			for p.acceptChar(',') {
				args.Append(p.parseExpr())
			}
		}
	}
	p.expectChar(')')
	return makeFuncCall(systemFuncName(name), args, ast.CoerceSQLSyntax, t.Pos)
}

// parseNameExpr parses a column reference, a function call or a typed
// literal such as date '2020-01-01'.
func (p *parser) parseNameExpr() ast.Node {
	t := p.next()
	if p.peek().Kind == scanner.SConst && t.Kind == scanner.Ident {
		return p.typedLiteral(t)
	}
	names := ast.StringList(t.Value)
	for p.isChar('.') && (p.peekN(1).Kind == scanner.Ident || p.peekN(1).Kind == scanner.QuotedIdent) {
		p.next()
		names.Append(ast.MakeString(p.next().Value))
	}
	if p.isChar('(') {
		if t.Kind == scanner.Ident && names.Len() == 1 && colNameKeywords[t.Value] {
			p.syntaxError(p.peek())
		}
		return p.parseFuncCall(names, t.Pos)
	}
	if t.Kind == scanner.Ident && names.Len() == 1 && typeFuncNameKeywords[t.Value] {
		p.syntaxError(t)
	}
	return &ast.ColumnRef{Fields: names, Location: t.Pos}
}

func (p *parser) typedLiteral(t scanner.Token) ast.Node {
	var tn *ast.TypeName
	if sqlStandardTypes[t.Value] {
		p.pos--
		tn = p.simpleTypename()
	} else {
		tn = &ast.TypeName{Names: ast.StringList(t.Value), Typemod: -1, Location: t.Pos}
	}
	str := p.expectKind(scanner.SConst)
	if tn.Names.Len() == 2 && tn.Names.Items[1].(*ast.String).Sval == "interval" {
		p.intervalFields()
	}
	return &ast.TypeCast{Arg: makeStringConst(str.Value, str.Pos), TypeName: tn, Location: -1}
}

func (p *parser) parseFuncCall(names *ast.List, loc int) ast.Node {
	p.expectChar('(')
	fc := makeFuncCall(names, nil, ast.CoerceExplicitCall, loc)
	switch {
	case p.isChar('*'):
		p.next()
		fc.AggStar = true
	case p.isChar(')'):
	default:
		if p.acceptKeyword("distinct") {
			fc.AggDistinct = true
		} else {
			p.acceptKeyword("all")
		}
		fc.Args = &ast.List{}
		for {
			if p.acceptKeyword("variadic") {
				fc.FuncVariadic = true
			}
			fc.Args.Append(p.parseExpr())
			if !p.acceptChar(',') {
				break
			}
		}
		if p.isKeyword("order") {
			fc.AggOrder = p.sortClause()
		}
	}
	p.expectChar(')')

	if p.isKeyword("within") {
		p.next()
		p.expectKeyword("group")
		p.expectChar('(')
		fc.AggOrder = p.sortClause()
		p.expectChar(')')
		fc.AggWithinGroup = true
	}
	if p.isKeyword("filter") && isCharTok(p.peekN(1), '(') {
		p.next()
		p.next()
		p.expectKeyword("where")
		fc.AggFilter = p.parseExpr()
		p.expectChar(')')
	}
	if p.isKeyword("over") {
		p.next()
		fc.Over = p.overClause()
	}
	return fc
}

func (p *parser) overClause() *ast.WindowDef {
	if p.isChar('(') {
		return p.windowSpecification()
	}
	name, loc := p.colID()
	return &ast.WindowDef{Name: name, FrameOptions: ast.FrameOptionDefaults, Location: loc}
}

func (p *parser) windowSpecification() *ast.WindowDef {
	open := p.expectChar('(')
	w := &ast.WindowDef{FrameOptions: ast.FrameOptionDefaults, Location: open.Pos}
	if p.isColID() && !p.isKeyword("partition") && !p.isKeyword("range") && !p.isKeyword("rows") && !p.isKeyword("groups") {
		w.Refname, _ = p.colID()
	}
	if p.isKeyword("partition") {
		p.next()
		p.expectKeyword("by")
		w.PartitionClause = p.exprList()
	}
	if p.isKeyword("order") {
		w.OrderClause = p.sortClause()
	}
	p.frameClause(w)
	p.expectChar(')')
	return w
}

func (p *parser) frameClause(w *ast.WindowDef) {
	var mode int
	switch {
	case p.acceptKeyword("range"):
		mode = ast.FrameOptionRange
	case p.acceptKeyword("rows"):
		mode = ast.FrameOptionRows
	case p.acceptKeyword("groups"):
		mode = ast.FrameOptionGroups
	default:
		return
	}
	var opts int
	if p.acceptKeyword("between") {
		start, startOff := p.frameBound()
		p.expectKeyword("and")
		end, endOff := p.frameBound()
		opts = start | end<<1 | ast.FrameOptionBetween
		w.StartOffset, w.EndOffset = startOff, endOff
	} else {
		start, startOff := p.frameBound()
		opts = start | ast.FrameOptionEndCurrentRow
		w.StartOffset = startOff
	}
	if p.acceptKeyword("exclude") {
		switch {
		case p.acceptKeyword("current"):
			p.expectKeyword("row")
			opts |= ast.FrameOptionExcludeCurrentRow
		case p.acceptKeyword("group"):
			opts |= ast.FrameOptionExcludeGroup
		case p.acceptKeyword("ties"):
			opts |= ast.FrameOptionExcludeTies
		default:
			p.expectKeyword("no")
			p.expectKeyword("others")
		}
	}
	w.FrameOptions = opts | mode | ast.FrameOptionNonDefault
}

// frameBound returns the start-bound option bits and the offset expression.
func (p *parser) frameBound() (int, ast.Node) {
	switch {
	case p.acceptKeyword("unbounded"):
		if p.acceptKeyword("preceding") {
			return ast.FrameOptionStartUnboundedPreceding, nil
		}
		p.expectKeyword("following")
		return ast.FrameOptionStartUnboundedFollowing, nil
	case p.acceptKeyword("current"):
		p.expectKeyword("row")
		return ast.FrameOptionStartCurrentRow, nil
	}
	off := p.parseExprPrec(precAnd + 1)
	if p.acceptKeyword("preceding") {
		return ast.FrameOptionStartOffsetPreceding, off
	}
	p.expectKeyword("following")
	return ast.FrameOptionStartOffsetFollowing, off
}
