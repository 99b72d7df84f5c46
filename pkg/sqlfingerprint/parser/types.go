// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package parser

import (
	"github.com/DataDog/sqlfingerprint/pkg/sqlfingerprint/ast"
	"github.com/DataDog/sqlfingerprint/pkg/sqlfingerprint/scanner"
)

func systemTypeName(name string, loc int) *ast.TypeName {
	return &ast.TypeName{Names: ast.StringList("pg_catalog", name), Typemod: -1, Location: loc}
}

// sqlStandardTypes begin type names with SQL standard syntax; they map to
// pg_catalog types.
var sqlStandardTypes = keywordSet(
	"int", "integer", "smallint", "bigint", "real", "float", "double",
	"decimal", "dec", "numeric", "boolean", "bit", "character", "char",
	"varchar", "timestamp", "time", "interval",
)

func (p *parser) parseTypename() *ast.TypeName {
	setof := p.acceptKeyword("setof")
	tn := p.simpleTypename()
	tn.Setof = setof
	switch {
	case p.isChar('['):
		bounds := &ast.List{}
		for p.acceptChar('[') {
			if p.peek().Kind == scanner.IConst {
				bounds.Append(&ast.Integer{Ival: p.intValue(p.next())})
			} else {
				bounds.Append(&ast.Integer{Ival: -1})
			}
			p.expectChar(']')
		}
		tn.ArrayBounds = bounds
	case p.isKeyword("array"):
		p.next()
		bound := int64(-1)
		if p.acceptChar('[') {
			bound = p.intValue(p.expectKind(scanner.IConst))
			p.expectChar(']')
		}
		tn.ArrayBounds = ast.NewList(&ast.Integer{Ival: bound})
	}
	return tn
}

func (p *parser) simpleTypename() *ast.TypeName {
	t := p.peek()
	if t.Kind == scanner.Ident && sqlStandardTypes[t.Value] {
		return p.sqlStandardTypename()
	}
	return p.genericTypename()
}

func (p *parser) genericTypename() *ast.TypeName {
	t := p.peek()
	if t.Kind != scanner.QuotedIdent && (t.Kind != scanner.Ident || reservedKeywords[t.Value] || colNameKeywords[t.Value]) {
		p.syntaxError(t)
	}
	p.next()
	tn := &ast.TypeName{Names: ast.StringList(t.Value), Typemod: -1, Location: t.Pos}
	for p.isChar('.') {
		p.next()
		attr, _ := p.colLabel()
		tn.Names.Append(ast.MakeString(attr))
	}
	tn.Typmods = p.optTypeModifiers()
	return tn
}

func (p *parser) optTypeModifiers() *ast.List {
	if !p.acceptChar('(') {
		return nil
	}
	mods := p.exprList()
	p.expectChar(')')
	return mods
}

func (p *parser) sqlStandardTypename() *ast.TypeName {
	t := p.next()
	loc := t.Pos
	switch t.Value {
	case "int", "integer":
		return systemTypeName("int4", loc)
	case "smallint":
		return systemTypeName("int2", loc)
	case "bigint":
		return systemTypeName("int8", loc)
	case "real":
		return systemTypeName("float4", loc)
	case "double":
		p.expectKeyword("precision")
		return systemTypeName("float8", loc)
	case "boolean":
		return systemTypeName("bool", loc)
	case "float":
		if !p.acceptChar('(') {
			return systemTypeName("float8", loc)
		}
		prec := p.expectKind(scanner.IConst)
		p.expectChar(')')
		switch v := p.intValue(prec); {
		case v < 1:
			p.errorAt(prec.Pos, "precision for type float must be at least 1 bit")
		case v <= 24:
			return systemTypeName("float4", loc)
		case v <= 53:
			return systemTypeName("float8", loc)
		default:
			p.errorAt(prec.Pos, "precision for type float must be less than 54 bits")
		}
	case "decimal", "dec", "numeric":
		tn := systemTypeName("numeric", loc)
		tn.Typmods = p.optTypeModifiers()
		return tn
	case "bit":
		name := "bit"
		if p.acceptKeyword("varying") {
			name = "varbit"
		}
		tn := systemTypeName(name, loc)
		tn.Typmods = p.optTypeModifiers()
		if tn.Typmods == nil && name == "bit" {
			tn.Typmods = ast.NewList(makeIntConst(1, -1))
		}
		return tn
	case "character", "char", "varchar":
		name := "bpchar"
		if t.Value == "varchar" || p.acceptKeyword("varying") {
			name = "varchar"
		}
		tn := systemTypeName(name, loc)
		tn.Typmods = p.optTypeModifiers()
		if tn.Typmods == nil && name == "bpchar" {
			tn.Typmods = ast.NewList(makeIntConst(1, -1))
		}
		return tn
	case "timestamp", "time":
		var mods *ast.List
		if p.acceptChar('(') {
			prec := p.expectKind(scanner.IConst)
			mods = ast.NewList(makeIntConst(p.intValue(prec), prec.Pos))
			p.expectChar(')')
		}
		name := t.Value
		if p.isKeyword("with") && p.isKeywordAt(1, "time") {
			p.next()
			p.next()
			p.expectKeyword("zone")
			name += "tz"
		} else if p.acceptKeyword("without") {
			p.expectKeyword("time")
			p.expectKeyword("zone")
		}
		tn := systemTypeName(name, loc)
		tn.Typmods = mods
		return tn
	case "interval":
		tn := systemTypeName("interval", loc)
		p.intervalFields()
		if p.acceptChar('(') {
			prec := p.expectKind(scanner.IConst)
			tn.Typmods = ast.NewList(makeIntConst(p.intValue(prec), prec.Pos))
			p.expectChar(')')
		}
		return tn
	}
	p.syntaxError(t)
	return nil
}

var intervalUnits = keywordSet("year", "month", "day", "hour", "minute", "second")

// intervalFields consumes an optional interval qualifier such as
// DAY TO SECOND. The qualifier does not change the fingerprint-relevant
// shape of the type, so it is not kept.
func (p *parser) intervalFields() {
	t := p.peek()
	if t.Kind != scanner.Ident || !intervalUnits[t.Value] {
		return
	}
	p.next()
	if p.acceptKeyword("to") {
		u := p.peek()
		if u.Kind != scanner.Ident || !intervalUnits[u.Value] {
			p.syntaxError(u)
		}
		p.next()
	}
	if t.Value == "second" || p.toks[p.pos-1].Value == "second" {
		if p.isChar('(') && p.peekN(1).Kind == scanner.IConst {
			p.next()
			p.next()
			p.expectChar(')')
		}
	}
}
