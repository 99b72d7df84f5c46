// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

// Package parser turns PostgreSQL query text into raw parse trees.
//
// The parser is hand written and covers the DML, utility and expression
// grammar that query fingerprinting and normalization deal with. Node shapes
// and source locations follow the PostgreSQL grammar so that the constant
// locations recorded from a tree line up with the tokens found by rescanning
// the text.
package parser

import (
	"strconv"

	"github.com/DataDog/sqlfingerprint/pkg/errors"
	"github.com/DataDog/sqlfingerprint/pkg/sqlfingerprint/ast"
	"github.com/DataDog/sqlfingerprint/pkg/sqlfingerprint/scanner"
)

// Parse parses query into one RawStmt per statement. Empty statements are
// dropped; an empty query yields an empty slice.
func Parse(query string) (stmts []*ast.RawStmt, err error) {
	toks, err := tokenize(query)
	if err != nil {
		return nil, err
	}
	defer errors.Recover(&err)
	p := &parser{src: query, toks: toks}
	return p.parseStmtMulti(), nil
}

func tokenize(query string) ([]scanner.Token, error) {
	s := scanner.New(query)
	var toks []scanner.Token
	for {
		tok, err := s.Scan()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == scanner.EOF {
			return toks, nil
		}
	}
}

type parser struct {
	src  string
	toks []scanner.Token
	pos  int
}

func (p *parser) parseStmtMulti() []*ast.RawStmt {
	stmts := []*ast.RawStmt{}
	stmtStart := 0
	var last *ast.RawStmt
	for {
		if p.isChar(';') {
			semi := p.next()
			if last != nil && last.StmtLen == 0 {
				last.StmtLen = semi.Pos - last.StmtLocation
			}
			stmtStart = semi.Pos + 1
			continue
		}
		if p.peek().Kind == scanner.EOF {
			return stmts
		}
		last = &ast.RawStmt{Stmt: p.parseStmt(), StmtLocation: stmtStart}
		stmts = append(stmts, last)
		if !p.isChar(';') && p.peek().Kind != scanner.EOF {
			p.syntaxError(p.peek())
		}
	}
}

// token helpers

func (p *parser) peek() scanner.Token { return p.toks[p.pos] }

func (p *parser) peekN(n int) scanner.Token {
	if p.pos+n < len(p.toks) {
		return p.toks[p.pos+n]
	}
	return p.toks[len(p.toks)-1]
}

func (p *parser) next() scanner.Token {
	t := p.toks[p.pos]
	if t.Kind != scanner.EOF {
		p.pos++
	}
	return t
}

func isKeywordTok(t scanner.Token, kw string) bool {
	return t.Kind == scanner.Ident && t.Value == kw
}

func (p *parser) isKeyword(kw string) bool { return isKeywordTok(p.peek(), kw) }

func (p *parser) isKeywordAt(n int, kw string) bool { return isKeywordTok(p.peekN(n), kw) }

func (p *parser) acceptKeyword(kw string) bool {
	if p.isKeyword(kw) {
		p.pos++
		return true
	}
	return false
}

func (p *parser) expectKeyword(kw string) scanner.Token {
	if !p.isKeyword(kw) {
		p.syntaxError(p.peek())
	}
	return p.next()
}

func isCharTok(t scanner.Token, c byte) bool {
	return t.Kind == scanner.Char && len(t.Value) == 1 && t.Value[0] == c
}

func (p *parser) isChar(c byte) bool { return isCharTok(p.peek(), c) }

func (p *parser) acceptChar(c byte) bool {
	if p.isChar(c) {
		p.pos++
		return true
	}
	return false
}

func (p *parser) expectChar(c byte) scanner.Token {
	if !p.isChar(c) {
		p.syntaxError(p.peek())
	}
	return p.next()
}

func (p *parser) expectKind(kind scanner.Kind) scanner.Token {
	if p.peek().Kind != kind {
		p.syntaxError(p.peek())
	}
	return p.next()
}

// syntaxError aborts parsing with the PostgreSQL syntax error for t.
func (p *parser) syntaxError(t scanner.Token) {
	if t.Kind == scanner.EOF {
		panic(errors.New(len(p.src), "syntax error at end of input"))
	}
	panic(errors.New(t.Pos, "syntax error at or near \"%s\"", p.src[t.Pos:t.End]))
}

func (p *parser) errorAt(pos int, format string, args ...interface{}) {
	panic(errors.New(pos, format, args...))
}

// colID accepts an identifier usable as a column or table name.
func (p *parser) colID() (string, int) {
	t := p.peek()
	switch {
	case t.Kind == scanner.QuotedIdent:
	case t.Kind == scanner.Ident && !reservedKeywords[t.Value] && !typeFuncNameKeywords[t.Value]:
	default:
		p.syntaxError(t)
	}
	p.pos++
	return t.Value, t.Pos
}

func (p *parser) isColID() bool {
	t := p.peek()
	return t.Kind == scanner.QuotedIdent ||
		(t.Kind == scanner.Ident && !reservedKeywords[t.Value] && !typeFuncNameKeywords[t.Value])
}

// colLabel accepts any identifier or keyword.
func (p *parser) colLabel() (string, int) {
	t := p.peek()
	if t.Kind != scanner.Ident && t.Kind != scanner.QuotedIdent {
		p.syntaxError(t)
	}
	p.pos++
	return t.Value, t.Pos
}

// name list helpers

func (p *parser) nameList() *ast.List {
	l := &ast.List{}
	for {
		name, _ := p.colID()
		l.Append(ast.MakeString(name))
		if !p.acceptChar(',') {
			return l
		}
	}
}

// anyName parses ColId { . ColLabel }.
func (p *parser) anyName() *ast.List {
	name, _ := p.colID()
	l := ast.StringList(name)
	for p.isChar('.') {
		p.next()
		attr, _ := p.colLabel()
		l.Append(ast.MakeString(attr))
	}
	return l
}

func (p *parser) intValue(t scanner.Token) int64 {
	v, err := strconv.ParseInt(t.Value, 10, 64)
	if err != nil {
		p.syntaxError(t)
	}
	return v
}

// signedIconst parses an optionally signed integer constant.
func (p *parser) signedIconst() int64 {
	neg := false
	if p.acceptChar('-') {
		neg = true
	} else {
		p.acceptChar('+')
	}
	v := p.intValue(p.expectKind(scanner.IConst))
	if neg {
		return -v
	}
	return v
}

// node constructors mirroring the grammar's helpers

func makeAConst(val ast.Node, loc int) *ast.AConst {
	return &ast.AConst{Val: val, Location: loc}
}

func makeStringConst(s string, loc int) *ast.AConst {
	return makeAConst(ast.MakeString(s), loc)
}

func makeIntConst(v int64, loc int) *ast.AConst {
	return makeAConst(&ast.Integer{Ival: v}, loc)
}

func makeSimpleAExpr(kind ast.AExprKind, op string, l, r ast.Node, loc int) *ast.AExpr {
	return &ast.AExpr{Kind: kind, Name: ast.StringList(op), Lexpr: l, Rexpr: r, Location: loc}
}

func makeBoolExpr(op ast.BoolExprType, l, r ast.Node, loc int) ast.Node {
	if b, ok := l.(*ast.BoolExpr); ok && b.Boolop == op && op != ast.NotExpr {
		b.Args.Append(r)
		return b
	}
	return &ast.BoolExpr{Boolop: op, Args: ast.NewList(l, r), Location: loc}
}

func makeNotExpr(arg ast.Node, loc int) ast.Node {
	return &ast.BoolExpr{Boolop: ast.NotExpr, Args: ast.NewList(arg), Location: loc}
}

func systemFuncName(name string) *ast.List {
	return ast.StringList("pg_catalog", name)
}

func makeFuncCall(name *ast.List, args *ast.List, format ast.CoercionForm, loc int) *ast.FuncCall {
	return &ast.FuncCall{Funcname: name, Args: args, Funcformat: format, Location: loc}
}

// doNegate negates a numeric constant in place, moving its location to the
// minus sign; anything else becomes a unary minus expression.
func doNegate(n ast.Node, loc int) ast.Node {
	if c, ok := n.(*ast.AConst); ok {
		c.Location = loc
		switch v := c.Val.(type) {
		case *ast.Integer:
			v.Ival = -v.Ival
			return c
		case *ast.Float:
			if len(v.Fval) > 0 && v.Fval[0] == '-' {
				v.Fval = v.Fval[1:]
			} else {
				v.Fval = "-" + v.Fval
			}
			return c
		}
	}
	return makeSimpleAExpr(ast.AExprOp, "-", nil, n, loc)
}
